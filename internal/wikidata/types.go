package wikidata

// Language is the only locale labels, descriptions and sitelinks are read
// in.
const Language = "en"

// ClaimKind is the datavalue type of a claim's main snak.
type ClaimKind string

const (
	KindNone            ClaimKind = ""
	KindString          ClaimKind = "string"
	KindTime            ClaimKind = "time"
	KindQuantity        ClaimKind = "quantity"
	KindMonolingualText ClaimKind = "monolingualtext"
	KindEntityRef       ClaimKind = "wikibase-entityid"
)

// Claim is one statement's main value. Value holds the string, the raw time
// string, the quantity amount, the monolingual text, or, for KindEntityRef,
// the referenced entity ID that still needs a label. A claim of KindNone
// has an empty Value.
type Claim struct {
	Kind  ClaimKind
	Value string
}

// IsReference reports whether the claim points at another entity.
func (c Claim) IsReference() bool {
	return c.Kind == KindEntityRef && c.Value != ""
}

// Entity is the subset of a Wikidata item the enrichment handlers read.
type Entity struct {
	ID           string
	Label        string
	Description  string
	Modified     string
	WikipediaURL string

	// Claims maps property IDs (P569) to statements in the order the API
	// lists them.
	Claims map[string][]Claim
}

// FirstClaim returns the first listed statement for a property, or an empty
// claim when the property has none.
func (e *Entity) FirstClaim(property string) Claim {
	if e == nil {
		return Claim{}
	}
	statements := e.Claims[property]
	if len(statements) == 0 {
		return Claim{}
	}
	return statements[0]
}

// SearchHit is one ranked result of an entity search.
type SearchHit struct {
	ID          string
	Label       string
	Description string
}
