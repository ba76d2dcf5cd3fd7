package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// RecordedAtLayout is ISO-8601 UTC with millisecond precision
const RecordedAtLayout = "2006-01-02T15:04:05.000Z"

var (
	ErrWarrantyListMalformed = errors.New("warranty list is not valid JSON")
	ErrWarrantyListNotArray  = errors.New("warranty list is not a JSON array")
)

// WarrantyEntry is one registered product purchase
type WarrantyEntry struct {
	ProductID  json.RawMessage `json:"product_id"`
	Handle     string          `json:"handle"`
	Title      string          `json:"title"`
	Month      json.RawMessage `json:"month,omitempty"`
	Year       json.RawMessage `json:"year,omitempty"`
	RecordedAt string          `json:"recordedAt"`
}

// NewWarrantyEntry builds the entry for a registration request. An absent
// or falsy product id is stored as an empty string; month and year keep the
// JSON value the caller sent, and are omitted when the caller sent none.
func NewWarrantyEntry(req *RegistrationRequest, recordedAt time.Time) WarrantyEntry {
	productID := req.ProductID
	if isFalsy(productID) {
		productID = json.RawMessage(`""`)
	}

	return WarrantyEntry{
		ProductID:  productID,
		Handle:     req.ProductHandle,
		Title:      req.ProductTitle,
		Month:      req.Month,
		Year:       req.Year,
		RecordedAt: recordedAt.UTC().Format(RecordedAtLayout),
	}
}

// Admissible reports whether the entry names a product at all
func (e WarrantyEntry) Admissible() bool {
	return e.Title != "" || e.Handle != ""
}

// AddResult describes what WarrantyList.Add did with an entry
type AddResult string

const (
	EntryAdded     AddResult = "added"
	EntryDuplicate AddResult = "duplicate"
	EntrySkipped   AddResult = "skipped"
)

// WarrantyList is the JSON array stored in the customer's warranty metafield.
// Stored items are kept as raw JSON so fields written by other systems
// survive the read-modify-write untouched.
type WarrantyList struct {
	items []json.RawMessage
}

// NewWarrantyList returns an empty list
func NewWarrantyList() *WarrantyList {
	return &WarrantyList{}
}

// ParseWarrantyList parses a metafield value. An empty value is an empty
// list. On error the returned list is empty and usable, so callers can fall
// back to it after reporting the error.
func ParseWarrantyList(value string) (*WarrantyList, error) {
	trimmed := bytes.TrimSpace([]byte(value))
	if len(trimmed) == 0 {
		return NewWarrantyList(), nil
	}

	if !json.Valid(trimmed) {
		return NewWarrantyList(), ErrWarrantyListMalformed
	}
	if trimmed[0] != '[' {
		return NewWarrantyList(), ErrWarrantyListNotArray
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return NewWarrantyList(), fmt.Errorf("%w: %v", ErrWarrantyListMalformed, err)
	}

	return &WarrantyList{items: items}, nil
}

// Len returns the number of stored entries
func (l *WarrantyList) Len() int {
	return len(l.items)
}

// Items returns the stored entries as raw JSON
func (l *WarrantyList) Items() []json.RawMessage {
	return l.items
}

// Contains reports whether a stored entry has the same handle, month and
// year as e. Values are compared the way a strict equality would: 3 and "3"
// differ, an absent month only matches an absent month.
func (l *WarrantyList) Contains(e WarrantyEntry) bool {
	handle, _ := json.Marshal(e.Handle)

	for _, item := range l.items {
		var key struct {
			Handle json.RawMessage `json:"handle"`
			Month  json.RawMessage `json:"month"`
			Year   json.RawMessage `json:"year"`
		}
		if err := json.Unmarshal(item, &key); err != nil {
			// not an object
			continue
		}
		if strictEqual(key.Handle, handle) && strictEqual(key.Month, e.Month) && strictEqual(key.Year, e.Year) {
			return true
		}
	}

	return false
}

// Add appends e unless it is not admissible or already present
func (l *WarrantyList) Add(e WarrantyEntry) (AddResult, error) {
	if !e.Admissible() {
		return EntrySkipped, nil
	}
	if l.Contains(e) {
		return EntryDuplicate, nil
	}

	raw, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("failed to encode warranty entry: %w", err)
	}
	l.items = append(l.items, raw)

	return EntryAdded, nil
}

// MarshalJSON encodes the list as a JSON array, never null
func (l *WarrantyList) MarshalJSON() ([]byte, error) {
	if len(l.items) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(l.items)
}

// Value returns the metafield value to write back
func (l *WarrantyList) Value() (string, error) {
	raw, err := l.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func strictEqual(a, b json.RawMessage) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == 0 && len(b) == 0
	}

	var av, bv any
	if err := json.Unmarshal(a, &av); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bv); err != nil {
		return false
	}

	switch av.(type) {
	case map[string]any, []any:
		return false
	}
	switch bv.(type) {
	case map[string]any, []any:
		return false
	}

	return av == bv
}

// isFalsy reports absent, null, false, 0 and "" values
func isFalsy(raw json.RawMessage) bool {
	if len(bytes.TrimSpace(raw)) == 0 {
		return true
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return true
	}

	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return !val
	case float64:
		return val == 0
	case string:
		return val == ""
	}
	return false
}
