package projects

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/good-yellow-bee/practicelog/internal/models"
)

// ValidateTitle rejects empty or whitespace-only titles.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

// TagsField accepts tags as a JSON array of strings or as a string holding
// an encoded array (older clients re-serialize tags before sending), and
// canonicalizes to the JSON-array text stored in the tags column.
type TagsField struct {
	Text string
	Set  bool
}

func (f *TagsField) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		text, err := models.EncodeTags(list)
		if err != nil {
			return err
		}
		f.Text = text
		f.Set = true
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		list, err := models.DecodeTags(s)
		if err != nil {
			return fmt.Errorf("tags must encode a JSON array: %w", err)
		}
		text, err := models.EncodeTags(list)
		if err != nil {
			return err
		}
		f.Text = text
		f.Set = true
		return nil
	}

	return fmt.Errorf("tags must be an array of strings")
}
