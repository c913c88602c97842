package model

import "encoding/json"

// EncodeTags serialises dietary tags for storage in a single text column.
// An empty or absent tag set is stored as an empty string, not as "[]".
func EncodeTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return ""
	}
	return string(data)
}

// DecodeTags parses the stored tag column. Malformed column data yields no
// tags rather than an error, so a corrupt row can still be served.
func DecodeTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil
	}
	return tags
}
