// Package lookup reads values out of nested JSON documents by key path,
// returning a default whenever any segment of the path is missing.
//
// Path segments are plain keys or array indexes ("0"). They are escaped
// before being handed to gjson, so keys containing dots or wildcards
// (entity IDs, language codes, URLs) are matched literally.
package lookup

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Path joins segments into an escaped gjson path.
func Path(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = gjson.Escape(s)
	}
	return strings.Join(escaped, ".")
}

// Get returns the value at the given path below r. The result's Exists()
// is false when any segment is missing.
func Get(r gjson.Result, segments ...string) gjson.Result {
	if len(segments) == 0 {
		return r
	}
	return r.Get(Path(segments...))
}

// String returns the value at the path as a string, or def when the path
// does not resolve. Numbers come back in their original textual form.
// Objects and arrays come back as raw JSON.
func String(r gjson.Result, def string, segments ...string) string {
	v := Get(r, segments...)
	if !v.Exists() || v.Type == gjson.Null {
		return def
	}
	return v.String()
}

// Parse wraps a raw JSON document for lookups. Invalid JSON parses to an
// empty result, so every lookup on it yields its default.
func Parse(doc []byte) gjson.Result {
	return gjson.ParseBytes(doc)
}

// Valid reports whether doc is well-formed JSON.
func Valid(doc []byte) bool {
	return gjson.ValidBytes(doc)
}
