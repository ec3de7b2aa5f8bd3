package lookup

import "testing"

const doc = `{
	"entities": {
		"Q95": {
			"labels": {"en": {"language": "en", "value": "Google"}},
			"sitelinks": {"enwiki": {"url": "https://en.wikipedia.org/wiki/Google"}},
			"claims": {
				"P17": [{"mainsnak": {"datavalue": {"type": "wikibase-entityid", "value": {"id": "Q30"}}}}]
			}
		}
	},
	"query": {"pages": {"1092923": {"extract": "Google LLC is a company."}}},
	"count": 1092923,
	"amount": "+12345.6789",
	"nothing": null,
	"odd.key": {"a*b": "literal"}
}`

func TestString(t *testing.T) {
	r := Parse([]byte(doc))

	tests := []struct {
		name     string
		def      string
		segments []string
		want     string
	}{
		{"label", "", []string{"entities", "Q95", "labels", "en", "value"}, "Google"},
		{"sitelink url", "", []string{"entities", "Q95", "sitelinks", "enwiki", "url"}, "https://en.wikipedia.org/wiki/Google"},
		{"array index", "", []string{"entities", "Q95", "claims", "P17", "0", "mainsnak", "datavalue", "value", "id"}, "Q30"},
		{"numeric key", "", []string{"query", "pages", "1092923", "extract"}, "Google LLC is a company."},
		{"integer keeps text", "", []string{"count"}, "1092923"},
		{"string amount", "", []string{"amount"}, "+12345.6789"},
		{"missing leaf", "", []string{"entities", "Q95", "descriptions", "en", "value"}, ""},
		{"missing root", "fallback", []string{"nope", "deeper"}, "fallback"},
		{"null value", "fallback", []string{"nothing"}, "fallback"},
		{"index past end", "", []string{"entities", "Q95", "claims", "P17", "3", "mainsnak"}, ""},
		{"special characters", "", []string{"odd.key", "a*b"}, "literal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := String(r, tt.def, tt.segments...); got != tt.want {
				t.Errorf("String(%v) = %q, want %q", tt.segments, got, tt.want)
			}
		})
	}
}

func TestInvalidDocumentYieldsDefaults(t *testing.T) {
	raw := []byte(`<html>not json</html>`)
	if Valid(raw) {
		t.Fatal("expected HTML to be reported invalid")
	}
	if got := String(Parse(raw), "d", "query", "search"); got != "d" {
		t.Errorf("lookup on invalid doc = %q, want default", got)
	}
}

func TestGetWithoutSegments(t *testing.T) {
	r := Parse([]byte(`{"a":1}`))
	if got := Get(r).Raw; got != `{"a":1}` {
		t.Errorf("Get() with no segments = %q, want document", got)
	}
}
