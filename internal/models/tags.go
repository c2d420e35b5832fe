package models

import (
	"encoding/json"
	"fmt"
)

// emptyTags is the canonical serialized form of an empty tag list.
const emptyTags = "[]"

// EncodeTags serializes a tag list to the JSON-array text stored in the
// tags column. A nil or empty list encodes as "[]". Order is preserved.
func EncodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return emptyTags, nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

// DecodeTags parses the stored JSON-array text back into a tag list.
// An empty string decodes as an empty list.
func DecodeTags(s string) ([]string, error) {
	if s == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}
