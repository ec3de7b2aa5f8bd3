// Package params binds a handler's positional JSON input array to named,
// validated parameters.
//
// Position 0 is the search term (required string). Position 1, when the
// handler accepts it, is the property list: a comma-separated string, a
// list of strings, or a list of lists of strings. Positions beyond the
// declared ones are ignored.
package params

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is wrapped by every binding failure.
var ErrInvalidInput = errors.New("invalid input")

// DefaultProperties is used when no property list is supplied.
var DefaultProperties = []string{"description"}

// Params are the bound handler parameters.
type Params struct {
	Search     string
	Properties []string
}

// Field names, used in error messages.
const (
	FieldSearch     = "search"
	FieldProperties = "properties"
)

// BindSearch binds an input that declares only the search term.
func BindSearch(raw []byte) (*Params, error) {
	values, err := decodeArray(raw)
	if err != nil {
		return nil, err
	}
	search, err := bindSearch(values)
	if err != nil {
		return nil, err
	}
	return &Params{Search: search}, nil
}

// BindProperties binds an input that declares the search term and an
// optional property list. Property names are lower-cased and trimmed.
func BindProperties(raw []byte) (*Params, error) {
	values, err := decodeArray(raw)
	if err != nil {
		return nil, err
	}
	search, err := bindSearch(values)
	if err != nil {
		return nil, err
	}

	properties := DefaultProperties
	if len(values) > 1 {
		properties, err = coerceList(values[1])
		if err != nil {
			return nil, invalid(FieldProperties, err.Error())
		}
	}

	return &Params{Search: search, Properties: Normalize(properties)}, nil
}

// Split expands comma-separated property lists into one name per element.
func Split(lists ...string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, strings.Split(l, ",")...)
	}
	return out
}

// Normalize lower-cases and trims each property name.
func Normalize(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(strings.TrimSpace(n))
	}
	return out
}

func decodeArray(raw []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: input must be a JSON array", ErrInvalidInput)
	}
	var values []json.RawMessage
	if err := json.Unmarshal(trimmed, &values); err != nil {
		return nil, fmt.Errorf("%w: malformed JSON: %v", ErrInvalidInput, err)
	}
	return values, nil
}

func bindSearch(values []json.RawMessage) (string, error) {
	if len(values) == 0 {
		return "", invalid(FieldSearch, "required field")
	}
	var search string
	if err := json.Unmarshal(values[0], &search); err != nil || isNull(values[0]) {
		return "", invalid(FieldSearch, "must be of string type")
	}
	return search, nil
}

// coerceList accepts a comma-separated string, a list of strings, or a list
// of lists of strings flattened one level.
func coerceList(raw json.RawMessage) ([]string, error) {
	if isNull(raw) {
		return nil, errors.New("null value not allowed")
	}

	if s, ok := stringValue(raw); ok {
		return Split(s), nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errors.New("must be a string or a list of strings")
	}

	errNotStrings := errors.New("must be a list with only string values")
	out := make([]string, 0, len(items))
	for _, item := range items {
		if name, ok := stringValue(item); ok {
			out = append(out, name)
			continue
		}
		var inner []json.RawMessage
		if isNull(item) || json.Unmarshal(item, &inner) != nil {
			return nil, errNotStrings
		}
		for _, elem := range inner {
			name, ok := stringValue(elem)
			if !ok {
				return nil, errNotStrings
			}
			out = append(out, name)
		}
	}
	return out, nil
}

// stringValue decodes raw as a JSON string. null is not a string.
func stringValue(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func invalid(field, msg string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidInput, field, msg)
}
