package enrich

import (
	"context"
	"fmt"

	"github.com/flexiodata/functions-wikipedia/internal/catalog"
	"github.com/flexiodata/functions-wikipedia/internal/wikidata"
)

// LabelResolver resolves entity IDs to labels in one request.
type LabelResolver interface {
	GetLabels(ctx context.Context, ids []string) (map[string]string, error)
}

// ProjectClaims maps every catalog property to the value of the entity's
// first statement for it. Entity references are collected first and
// resolved with a single GetLabels call, which is made even when there are
// none. References that do not resolve project to "".
func ProjectClaims(ctx context.Context, e *wikidata.Entity, cat *catalog.Catalog, resolver LabelResolver) (map[string]string, error) {
	properties := cat.Properties()
	claims := make([]wikidata.Claim, len(properties))

	var refs []string
	seen := make(map[string]bool)
	for i, p := range properties {
		claims[i] = e.FirstClaim(p.ID)
		if claims[i].IsReference() && !seen[claims[i].Value] {
			seen[claims[i].Value] = true
			refs = append(refs, claims[i].Value)
		}
	}

	labels, err := resolver.GetLabels(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve referenced entities: %w", err)
	}

	values := make(map[string]string, len(properties))
	for i, p := range properties {
		values[p.Name] = claimValue(claims[i], labels)
	}
	return values, nil
}

func claimValue(c wikidata.Claim, labels map[string]string) string {
	switch c.Kind {
	case wikidata.KindString, wikidata.KindMonolingualText, wikidata.KindTime, wikidata.KindQuantity:
		return c.Value
	case wikidata.KindEntityRef:
		return labels[c.Value]
	}
	return ""
}

// BasicInfo returns the entity-level fields keyed by their catalog names.
func BasicInfo(e *wikidata.Entity) map[string]string {
	return map[string]string{
		catalog.FieldLabel:        e.Label,
		catalog.FieldDescription:  e.Description,
		catalog.FieldUpdated:      e.Modified,
		catalog.FieldWikipediaURL: e.WikipediaURL,
	}
}
