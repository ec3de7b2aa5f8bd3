package enrich

import "github.com/flexiodata/functions-wikipedia/internal/catalog"

// Merge combines basic entity fields and projected claim values into one
// lookup table. Claim values are applied last.
func Merge(basic, claims map[string]string) map[string]string {
	merged := make(map[string]string, len(basic)+len(claims))
	for k, v := range basic {
		merged[k] = v
	}
	for k, v := range claims {
		merged[k] = v
	}
	return merged
}

// IsWildcard reports whether requested is exactly ["*"].
func IsWildcard(requested []string) bool {
	return len(requested) == 1 && requested[0] == catalog.Wildcard
}

// Select projects table down to the requested names, in request order. A
// wildcard request expands to defaults. Unknown names and empty values
// yield "".
func Select(table map[string]string, requested, defaults []string) []string {
	names := requested
	if IsWildcard(requested) {
		names = defaults
	}
	row := make([]string, len(names))
	for i, name := range names {
		row[i] = table[name]
	}
	return row
}
