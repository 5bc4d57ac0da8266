package core

import (
	"encoding/json"

	"aptos-etl/domainerr"
)

// JSONString is an embedded JSON-encoded value (Event.Data, Resource.Data).
// It is carried as raw bytes rather than a plain string so that marshaling
// a record containing one emits the nested JSON value itself, not an
// escaped string, per spec §4.9. Mirrors the original's JsonObjectString,
// which validates its input is legal JSON on construction.
type JSONString []byte

// NewJSONString validates raw as legal JSON and wraps it.
func NewJSONString(raw string) (JSONString, error) {
	if !json.Valid([]byte(raw)) {
		return nil, &domainerr.JSONStringError{Input: raw}
	}
	return JSONString(raw), nil
}

// MarshalJSON emits the wrapped value verbatim so it nests in the
// surrounding JSON rather than being re-quoted.
func (j JSONString) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return []byte(j), nil
}

// UnmarshalJSON keeps whatever nested value was present, unparsed, so a
// round trip through JSON reproduces it exactly.
func (j *JSONString) UnmarshalJSON(data []byte) error {
	out := make([]byte, len(data))
	copy(out, data)
	*j = out
	return nil
}

// String returns the wrapped JSON text.
func (j JSONString) String() string { return string(j) }
