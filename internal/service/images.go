package service

import (
	"encoding/json"

	"nova-commerce/internal/domain"
	"nova-commerce/internal/serialize"
)

// parseURLList interprets the image-URL form field, which may hold a
// JSON array, a JSON string, or a comma-separated string. ok is false
// when the field is malformed and the caller should fall back.
func parseURLList(raw string) (urls []string, ok bool) {
	if raw == "" {
		return []string{}, true
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		out := make([]string, 0, len(list))
		for _, u := range list {
			if u != "" {
				out = append(out, u)
			}
		}
		return out, true
	}
	var scalar string
	if err := json.Unmarshal([]byte(raw), &scalar); err == nil {
		return serialize.SplitList(scalar), true
	}
	return nil, false
}

// reconcileImages merges uploaded-file references and client-supplied
// URLs into the ordered, bounded image list: uploads first, then URLs,
// truncated to the maximum. A create with no images at all is a
// validation error; an update falls back to the record's current
// primary image so a product never ends up with zero images. A
// malformed URL field is swallowed (empty on create, existing images on
// update) to keep the admin form's save path available.
func reconcileImages(uploaded []string, urlField *string, existing *domain.Product) ([]string, error) {
	creating := existing == nil

	var urls []string
	switch {
	case urlField != nil:
		parsed, ok := parseURLList(*urlField)
		if ok {
			urls = parsed
		} else if !creating {
			urls = existing.Images
		}
	case !creating:
		urls = existing.Images
	}

	merged := make([]string, 0, len(uploaded)+len(urls))
	merged = append(merged, uploaded...)
	merged = append(merged, urls...)
	if len(merged) > domain.MaxProductImages {
		merged = merged[:domain.MaxProductImages]
	}

	if len(merged) == 0 {
		if creating {
			return nil, NewValidationError("at least one product image is required")
		}
		merged = append(merged, existing.ImageURL)
	}

	return merged, nil
}
