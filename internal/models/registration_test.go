package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestMergeTags(t *testing.T) {
	tests := []struct {
		name          string
		existing      []string
		caller        []string
		notifyChannel string
		want          []string
	}{
		{
			name: "new customer without channel",
			want: []string{TagClub, TagFormCompleted},
		},
		{
			name:          "whatsapp channel adds whatsapp tag",
			notifyChannel: "whatsapp",
			want:          []string{TagWhatsApp, TagClub, TagFormCompleted},
		},
		{
			name:          "other channel does not add whatsapp tag",
			notifyChannel: "email",
			want:          []string{TagClub, TagFormCompleted},
		},
		{
			name:          "channel match is exact",
			notifyChannel: "WhatsApp",
			want:          []string{TagClub, TagFormCompleted},
		},
		{
			name:     "union with existing tags without duplicates",
			existing: []string{"vip", TagClub},
			caller:   []string{"promo", "vip", "promo"},
			want:     []string{"vip", TagClub, "promo", TagFormCompleted},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeTags(tt.existing, tt.caller, tt.notifyChannel)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("MergeTags() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeTags_SequentialRegistrationsAccumulate(t *testing.T) {
	first := MergeTags(nil, []string{"a", "b"}, "")
	second := MergeTags(first, []string{"b", "c"}, "whatsapp")

	want := []string{"a", "b", TagClub, TagFormCompleted, "c", TagWhatsApp}
	if diff := cmp.Diff(want, second); diff != "" {
		t.Errorf("accumulated tags mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistrationRequest_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want RegistrationRequest
	}{
		{
			name: "full body",
			body: `{"email":"a@b.com","first_name":"Ana","last_name":"Pérez","whatsapp":"+54911","notify_channel":"whatsapp",
				"product_id":123,"product_handle":"filter-x","product_title":"Filtro X","month":3,"year":"2024","tags":["x","y"]}`,
			want: RegistrationRequest{
				Email:         "a@b.com",
				FirstName:     "Ana",
				LastName:      "Pérez",
				WhatsApp:      "+54911",
				NotifyChannel: "whatsapp",
				ProductID:     json.RawMessage(`123`),
				ProductHandle: "filter-x",
				ProductTitle:  "Filtro X",
				Month:         json.RawMessage(`3`),
				Year:          json.RawMessage(`"2024"`),
				Tags:          []string{"x", "y"},
			},
		},
		{
			name: "non array tags are ignored",
			body: `{"email":"a@b.com","tags":"vip"}`,
			want: RegistrationRequest{Email: "a@b.com"},
		},
		{
			name: "non string tag elements are dropped",
			body: `{"email":"a@b.com","tags":["vip",7,null]}`,
			want: RegistrationRequest{Email: "a@b.com", Tags: []string{"vip"}},
		},
		{
			name: "non string email counts as missing",
			body: `{"email":42}`,
			want: RegistrationRequest{},
		},
		{
			name: "null body",
			body: `null`,
			want: RegistrationRequest{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got RegistrationRequest
			if err := json.Unmarshal([]byte(tt.body), &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RegistrationRequest mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRegistrationRequest_UnmarshalJSONRejectsNonObject(t *testing.T) {
	var req RegistrationRequest
	if err := json.Unmarshal([]byte(`[1,2]`), &req); err == nil {
		t.Error("Expected error for array body")
	}
}

func TestNewRegistrationResult(t *testing.T) {
	if got := NewRegistrationResult(true); !got.OK || !got.Existed || got.Message != MessageUpdated {
		t.Errorf("Unexpected result for existing customer: %+v", got)
	}
	if got := NewRegistrationResult(false); !got.OK || got.Existed || got.Message != MessageRegistered {
		t.Errorf("Unexpected result for new customer: %+v", got)
	}
}

func TestNewWarrantyEntry(t *testing.T) {
	at := time.Date(2024, 3, 5, 14, 7, 9, 123456789, time.FixedZone("ART", -3*3600))

	t.Run("falsy product id becomes empty string", func(t *testing.T) {
		for _, id := range []string{``, `null`, `0`, `false`, `""`} {
			entry := NewWarrantyEntry(&RegistrationRequest{ProductID: json.RawMessage(id)}, at)
			if string(entry.ProductID) != `""` {
				t.Errorf("product_id %q: got %s, want \"\"", id, entry.ProductID)
			}
		}
	})

	t.Run("encodes fields in order with millisecond UTC timestamp", func(t *testing.T) {
		entry := NewWarrantyEntry(&RegistrationRequest{
			ProductID:     json.RawMessage(`"p1"`),
			ProductHandle: "filter-x",
			ProductTitle:  "Filtro X",
			Month:         json.RawMessage(`3`),
			Year:          json.RawMessage(`2024`),
		}, at)

		raw, err := json.Marshal(entry)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		want := `{"product_id":"p1","handle":"filter-x","title":"Filtro X","month":3,"year":2024,"recordedAt":"2024-03-05T17:07:09.123Z"}`
		if string(raw) != want {
			t.Errorf("got %s\nwant %s", raw, want)
		}
	})

	t.Run("absent month and year are omitted", func(t *testing.T) {
		entry := NewWarrantyEntry(&RegistrationRequest{ProductHandle: "h"}, at)
		raw, _ := json.Marshal(entry)
		want := `{"product_id":"","handle":"h","title":"","recordedAt":"2024-03-05T17:07:09.123Z"}`
		if string(raw) != want {
			t.Errorf("got %s\nwant %s", raw, want)
		}
	})
}
