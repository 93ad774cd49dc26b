// Package serialize converts between the persisted scalar representation
// of list-typed product fields (sizes, colors, images) and their semantic
// ordered-list form. Decoding is total: malformed stored data yields an
// empty list, never an error, so the read path stays available.
package serialize

import (
	"encoding/json"
	"strings"
)

// EncodeList produces the stored representation of a list field.
// A nil or empty input stores the canonical empty list. A single string
// is first treated as an already-serialized list; if that fails it is
// split on commas, trimmed, and emptied items dropped.
func EncodeList(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	out, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(out)
}

// EncodeListField encodes a raw form value that may be a JSON array
// string or a comma-separated string.
func EncodeListField(raw string) string {
	return EncodeList(SplitList(raw))
}

// DecodeList parses a stored list field. Any failure yields the empty list.
func DecodeList(stored string) []string {
	if stored == "" {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal([]byte(stored), &values); err != nil {
		return []string{}
	}
	if values == nil {
		return []string{}
	}
	return values
}

// SplitList normalizes a raw string into an ordered list. A JSON array
// passes through; anything else is treated as comma-separated, with
// items trimmed and empties dropped.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err == nil {
		if values == nil {
			return []string{}
		}
		return values
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// DecodeImages parses the stored image list. Unlike DecodeList, a stored
// value that is a bare non-JSON string is recovered as a single-element
// list, and empty entries are filtered out.
func DecodeImages(stored string) []string {
	if stored == "" {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal([]byte(stored), &values); err != nil {
		return []string{stored}
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
