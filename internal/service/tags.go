package service

import (
	"encoding/json"
	"errors"
	"strings"
)

// NormalizeTags trims every entry and drops the empty ones, keeping order.
// Duplicates are kept.
func NormalizeTags(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SplitTags normalises a comma-separated tag string.
func SplitTags(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}

// TagList is the request-side tag field.  The dashboard sends either a
// comma-separated string or an array of strings; both decode to the same
// normalised list.
type TagList []string

func (t *TagList) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = SplitTags(s)
		return nil
	}
	var arr []string
	if err := json.Unmarshal(b, &arr); err != nil {
		return errors.New("tags must be a string or an array of strings")
	}
	*t = NormalizeTags(arr)
	return nil
}

// UnmarshalParam lets echo bind tags from url-encoded form fields.
func (t *TagList) UnmarshalParam(param string) error {
	*t = SplitTags(param)
	return nil
}
