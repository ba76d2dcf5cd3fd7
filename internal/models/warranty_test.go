package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func entry(handle, title, month, year string) WarrantyEntry {
	return NewWarrantyEntry(&RegistrationRequest{
		ProductHandle: handle,
		ProductTitle:  title,
		Month:         json.RawMessage(month),
		Year:          json.RawMessage(year),
	}, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestParseWarrantyList(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantLen int
		wantErr error
	}{
		{name: "empty value", value: "", wantLen: 0},
		{name: "empty array", value: "[]", wantLen: 0},
		{name: "two entries", value: `[{"handle":"a"},{"handle":"b"}]`, wantLen: 2},
		{name: "invalid json", value: `[{"handle":`, wantErr: ErrWarrantyListMalformed},
		{name: "object instead of array", value: `{"handle":"a"}`, wantErr: ErrWarrantyListNotArray},
		{name: "null", value: `null`, wantErr: ErrWarrantyListNotArray},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := ParseWarrantyList(tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseWarrantyList() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("ParseWarrantyList() unexpected error = %v", err)
			}
			if list == nil {
				t.Fatal("ParseWarrantyList() returned nil list")
			}
			if list.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", list.Len(), tt.wantLen)
			}
		})
	}
}

func TestWarrantyList_AddIsIdempotentPerTriple(t *testing.T) {
	list := NewWarrantyList()

	result, err := list.Add(entry("filter-x", "", "3", "2024"))
	if err != nil || result != EntryAdded {
		t.Fatalf("first Add() = %v, %v; want added", result, err)
	}

	result, err = list.Add(entry("filter-x", "Filtro X", "3", "2024"))
	if err != nil || result != EntryDuplicate {
		t.Fatalf("second Add() = %v, %v; want duplicate", result, err)
	}

	if list.Len() != 1 {
		t.Errorf("Len() = %d, want 1", list.Len())
	}
}

func TestWarrantyList_DistinctTriplesKeepOrder(t *testing.T) {
	list := NewWarrantyList()
	for _, e := range []WarrantyEntry{
		entry("filter-x", "", "3", "2024"),
		entry("filter-x", "", "4", "2024"),
		entry("filter-y", "", "3", "2024"),
	} {
		if result, err := list.Add(e); err != nil || result != EntryAdded {
			t.Fatalf("Add(%s) = %v, %v", e.Handle, result, err)
		}
	}

	var handles []string
	for _, item := range list.Items() {
		var decoded WarrantyEntry
		if err := json.Unmarshal(item, &decoded); err != nil {
			t.Fatalf("stored entry is not decodable: %v", err)
		}
		handles = append(handles, decoded.Handle+"/"+string(decoded.Month))
	}

	want := []string{"filter-x/3", "filter-x/4", "filter-y/3"}
	if len(handles) != len(want) {
		t.Fatalf("got %v, want %v", handles, want)
	}
	for i := range want {
		if handles[i] != want[i] {
			t.Errorf("entry %d = %s, want %s", i, handles[i], want[i])
		}
	}
}

func TestWarrantyList_SkipsEntriesWithoutTitleOrHandle(t *testing.T) {
	list := NewWarrantyList()

	result, err := list.Add(entry("", "", "7", "2031"))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if result != EntrySkipped {
		t.Errorf("Add() = %v, want skipped", result)
	}
	if list.Len() != 0 {
		t.Errorf("Len() = %d, want 0", list.Len())
	}

	if result, _ := list.Add(entry("", "Solo título", "7", "2031")); result != EntryAdded {
		t.Errorf("title-only entry: Add() = %v, want added", result)
	}
}

func TestWarrantyList_StrictEquality(t *testing.T) {
	stored := `[{"product_id":"","handle":"filter-x","title":"","month":3,"year":2024,"recordedAt":"2024-01-01T00:00:00.000Z"}]`

	tests := []struct {
		name  string
		month string
		year  string
		want  bool
	}{
		{"same numbers", "3", "2024", true},
		{"same numbers different spelling", "3.0", "2024", true},
		{"string month differs from number", `"3"`, "2024", false},
		{"absent month differs from number", "", "2024", false},
		{"different year", "3", "2025", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := ParseWarrantyList(stored)
			if err != nil {
				t.Fatalf("ParseWarrantyList() error = %v", err)
			}
			if got := list.Contains(entry("filter-x", "", tt.month, tt.year)); got != tt.want {
				t.Errorf("Contains() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWarrantyList_AbsentMonthMatchesAbsentMonth(t *testing.T) {
	list, err := ParseWarrantyList(`[{"handle":"filter-x","title":""}]`)
	if err != nil {
		t.Fatalf("ParseWarrantyList() error = %v", err)
	}
	if !list.Contains(entry("filter-x", "", "", "")) {
		t.Error("Expected entries without month and year to match")
	}
}

func TestWarrantyList_PreservesUnknownFieldsAndNonObjects(t *testing.T) {
	list, err := ParseWarrantyList(`[{"handle":"old","serial":"SN-1","month":1,"year":2020}, 42]`)
	if err != nil {
		t.Fatalf("ParseWarrantyList() error = %v", err)
	}

	if _, err := list.Add(entry("new", "", "2", "2024")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	value, err := list.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}

	want := `[{"handle":"old","serial":"SN-1","month":1,"year":2020},42,` +
		`{"product_id":"","handle":"new","title":"","month":2,"year":2024,"recordedAt":"2024-01-01T00:00:00.000Z"}]`
	if value != want {
		t.Errorf("Value() = %s\nwant %s", value, want)
	}
}

func TestWarrantyList_EmptyValueIsArray(t *testing.T) {
	value, err := NewWarrantyList().Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if value != "[]" {
		t.Errorf("Value() = %s, want []", value)
	}
}
