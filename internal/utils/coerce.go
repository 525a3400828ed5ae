package utils

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/spf13/cast"
)

// SafeInt converts a loosely typed upstream value to an int. Missing,
// null and non-numeric values yield 0.
func SafeInt(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case string:
		s := strings.TrimSpace(t)
		// cast parses base-prefixed strings; keep "010" decimal
		s = strings.TrimLeft(s, "0")
		if s == "" || s[0] == '.' {
			return 0
		}
		return cast.ToInt(s)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i)
		}
		if f, err := t.Float64(); err == nil {
			return int(f)
		}
		return 0
	default:
		return cast.ToInt(t)
	}
}

// FlexInt is a JSON integer that tolerates numbers, numeric strings, null
// and garbage. It never fails to unmarshal.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(SafeInt(v))
	return nil
}

// Int returns the value as an int
func (f FlexInt) Int() int {
	return int(f)
}

// FlexString is a JSON scalar kept in its textual form. Numbers are rendered
// as their decimal text; null leaves it unset.
type FlexString struct {
	Value string
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*f = FlexString{}
		return nil
	}

	var v any
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch t := v.(type) {
	case string:
		*f = FlexString{Value: t, Set: true}
	case json.Number:
		*f = FlexString{Value: t.String(), Set: true}
	case bool:
		*f = FlexString{Value: cast.ToString(t), Set: true}
	default:
		*f = FlexString{Value: string(trimmed), Set: true}
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (f FlexString) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// IsEmptyJSON reports whether a raw JSON value carries no information:
// absent, null, "", {}, [], false, 0 or "N".
func IsEmptyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return true
	}

	var v any
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return true
	}

	switch t := v.(type) {
	case nil:
		return true
	case string:
		s := strings.TrimSpace(t)
		return s == "" || strings.EqualFold(s, "N") || s == "0"
	case bool:
		return !t
	case json.Number:
		return SafeInt(t) == 0
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	default:
		return false
	}
}
