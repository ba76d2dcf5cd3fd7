package models

// Fixed customer tags applied by every registration
const (
	TagClub          = "clubdvigi"
	TagFormCompleted = "Completó Formulario Web"
	TagWhatsApp      = "clubdvigi_whatsapp"
)

// NotifyChannelWhatsApp is the notify_channel value that opts into WhatsApp
const NotifyChannelWhatsApp = "whatsapp"

// MergeTags returns the union of the customer's existing tags and the tags
// this registration adds. Order follows first occurrence: existing tags,
// then caller tags, then the WhatsApp tag when requested, then the fixed tags.
// Duplicates are collapsed by exact string equality.
func MergeTags(existing, caller []string, notifyChannel string) []string {
	added := make([]string, 0, len(caller)+3)
	added = append(added, caller...)
	if notifyChannel == NotifyChannelWhatsApp {
		added = append(added, TagWhatsApp)
	}
	added = append(added, TagClub, TagFormCompleted)

	seen := make(map[string]struct{}, len(existing)+len(added))
	merged := make([]string, 0, len(existing)+len(added))
	for _, group := range [][]string{existing, added} {
		for _, tag := range group {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			merged = append(merged, tag)
		}
	}

	return merged
}
