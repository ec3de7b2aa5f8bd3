package wikidata

import (
	"github.com/flexiodata/functions-wikipedia/internal/lookup"
	"github.com/tidwall/gjson"
)

// DecodeClaim turns a snak datavalue into a Claim. Unknown or missing types
// decode to an empty claim.
func DecodeClaim(datavalue gjson.Result) Claim {
	kind := ClaimKind(lookup.String(datavalue, "", "type"))
	switch kind {
	case KindString:
		return Claim{Kind: kind, Value: lookup.String(datavalue, "", "value")}
	case KindTime:
		return Claim{Kind: kind, Value: lookup.String(datavalue, "", "value", "time")}
	case KindQuantity:
		return Claim{Kind: kind, Value: lookup.String(datavalue, "", "value", "amount")}
	case KindMonolingualText:
		return Claim{Kind: kind, Value: lookup.String(datavalue, "", "value", "text")}
	case KindEntityRef:
		return Claim{Kind: kind, Value: lookup.String(datavalue, "", "value", "id")}
	}
	return Claim{}
}

// decodeEntity reads entity id out of a wbgetentities response. Missing
// fields are left empty.
func decodeEntity(doc gjson.Result, id string) *Entity {
	item := lookup.Get(doc, "entities", id)
	e := &Entity{
		ID:           id,
		Label:        lookup.String(item, "", "labels", Language, "value"),
		Description:  lookup.String(item, "", "descriptions", Language, "value"),
		Modified:     lookup.String(item, "", "modified"),
		WikipediaURL: lookup.String(item, "", "sitelinks", Language+"wiki", "url"),
		Claims:       make(map[string][]Claim),
	}

	lookup.Get(item, "claims").ForEach(func(property, statements gjson.Result) bool {
		var claims []Claim
		statements.ForEach(func(_, statement gjson.Result) bool {
			claims = append(claims, DecodeClaim(lookup.Get(statement, "mainsnak", "datavalue")))
			return true
		})
		e.Claims[property.String()] = claims
		return true
	})

	return e
}

// decodeLabels reads the label of every requested ID out of a
// wbgetentities response. IDs without a label in Language are omitted.
func decodeLabels(doc gjson.Result, ids []string) map[string]string {
	labels := make(map[string]string, len(ids))
	for _, id := range ids {
		if label := lookup.String(doc, "", "entities", id, "labels", Language, "value"); label != "" {
			labels[id] = label
		}
	}
	return labels
}
