package models

import (
	"bytes"
	"encoding/json"
)

// Response messages shown by the storefront form
const (
	MessageRegistered = "Te registramos en Club Dvigi y guardamos tu producto 💙"
	MessageUpdated    = "Actualizamos tus datos y tu producto en Club Dvigi 💧"
)

// RegistrationRequest is the body of the upsert endpoint.
//
// Decoding is lenient: string fields holding another JSON type are treated
// as absent, tags that are not an array are ignored, and month, year and
// product_id keep whatever JSON value the form sent.
type RegistrationRequest struct {
	Email         string          `json:"email" validate:"required" example:"ana@example.com"`
	FirstName     string          `json:"first_name,omitempty" example:"Ana"`
	LastName      string          `json:"last_name,omitempty" example:"Pérez"`
	WhatsApp      string          `json:"whatsapp,omitempty" example:"+5491122334455"`
	NotifyChannel string          `json:"notify_channel,omitempty" example:"whatsapp"`
	ProductID     json.RawMessage `json:"product_id,omitempty" swaggertype:"string" example:"gid://shopify/Product/1"`
	ProductHandle string          `json:"product_handle,omitempty" example:"filter-x"`
	ProductTitle  string          `json:"product_title,omitempty" example:"Filtro X"`
	Month         json.RawMessage `json:"month,omitempty" swaggertype:"integer" example:"3"`
	Year          json.RawMessage `json:"year,omitempty" swaggertype:"integer" example:"2024"`
	Tags          []string        `json:"tags,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler
func (r *RegistrationRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = RegistrationRequest{
		Email:         jsonString(raw["email"]),
		FirstName:     jsonString(raw["first_name"]),
		LastName:      jsonString(raw["last_name"]),
		WhatsApp:      jsonString(raw["whatsapp"]),
		NotifyChannel: jsonString(raw["notify_channel"]),
		ProductID:     raw["product_id"],
		ProductHandle: jsonString(raw["product_handle"]),
		ProductTitle:  jsonString(raw["product_title"]),
		Month:         raw["month"],
		Year:          raw["year"],
		Tags:          jsonStrings(raw["tags"]),
	}

	return nil
}

// LookupRequest is the body of the lookup endpoint
type LookupRequest struct {
	Email string `json:"email" validate:"required" example:"ana@example.com"`
}

// UnmarshalJSON implements json.Unmarshaler
func (r *LookupRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Email = jsonString(raw["email"])
	return nil
}

// RegistrationResult is the success body of the upsert endpoint
type RegistrationResult struct {
	OK      bool   `json:"ok"`
	Existed bool   `json:"existed"`
	Message string `json:"message"`
}

// NewRegistrationResult picks the message for a new or returning customer
func NewRegistrationResult(existed bool) *RegistrationResult {
	message := MessageRegistered
	if existed {
		message = MessageUpdated
	}
	return &RegistrationResult{OK: true, Existed: existed, Message: message}
}

// ContactDetails is the success body of the lookup endpoint
type ContactDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func jsonString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func jsonStrings(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	values := make([]string, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '"' {
			continue
		}
		values = append(values, jsonString(item))
	}
	return values
}
