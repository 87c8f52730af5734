package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// FormText is a free-text form field.  Site forms sometimes post numbers
// (phone, budget) unquoted, so JSON numbers keep their literal text.  false
// and null decode as empty, which the required-field check then rejects.
type FormText string

func (f *FormText) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*f = ""
	case string:
		*f = FormText(t)
	case json.Number:
		*f = FormText(t.String())
	case bool:
		*f = ""
		if t {
			*f = "true"
		}
	default:
		return errors.New("expected a string, number or boolean")
	}
	return nil
}

// UnmarshalParam lets echo bind the field from url-encoded forms.
func (f *FormText) UnmarshalParam(param string) error {
	*f = FormText(param)
	return nil
}

func (f FormText) trimmed() string {
	return strings.TrimSpace(string(f))
}
