// Package enrich implements the enrichment handlers. Each handler takes a
// positional JSON input array, queries Wikipedia or Wikidata, and returns a
// single-row result table.
//
// The Wikidata handlers run a fixed pipeline:
//
//  1. search for the term and take the top-ranked entity
//  2. fetch the entity's labels, sitelinks and claims
//  3. project the catalog's claims, resolving entity references in one
//     batch label request
//  4. merge with the basic entity fields and select the requested columns
//
// A search with no results yields the canonical empty row [[""]]. Input
// that fails binding is rejected with params.ErrInvalidInput before any
// request is made; every later failure is reported as a FatalError.
package enrich

import (
	"context"

	"github.com/flexiodata/functions-wikipedia/internal/catalog"
	"github.com/flexiodata/functions-wikipedia/internal/debug"
	"github.com/flexiodata/functions-wikipedia/internal/params"
	"github.com/flexiodata/functions-wikipedia/internal/result"
	"github.com/flexiodata/functions-wikipedia/internal/wikidata"
)

// Handler names, used as CLI subcommands and serve-mode routes.
const (
	NameDescription  = "description"
	NameOrganization = "org"
	NamePeople       = "people"
)

// Handler runs one invocation over a raw JSON input array.
type Handler interface {
	Name() string
	Handle(ctx context.Context, input []byte) (result.Table, error)
}

// ArticleSource is the Wikipedia API surface the description handler uses.
type ArticleSource interface {
	TopPageID(ctx context.Context, query string) (string, bool, error)
	Extract(ctx context.Context, pageID string) (string, error)
}

// EntitySource is the Wikidata API surface the entity handlers use.
type EntitySource interface {
	TopEntityID(ctx context.Context, search string) (string, bool, error)
	GetEntity(ctx context.Context, id string) (*wikidata.Entity, error)
	LabelResolver
}

// Description returns the first sentence of the best-matching Wikipedia
// article.
type Description struct {
	source ArticleSource
}

// NewDescription creates the description handler.
func NewDescription(source ArticleSource) *Description {
	return &Description{source: source}
}

func (h *Description) Name() string { return NameDescription }

// Handle binds input and runs the lookup.
func (h *Description) Handle(ctx context.Context, input []byte) (result.Table, error) {
	p, err := params.BindSearch(input)
	if err != nil {
		return nil, err
	}
	return h.Describe(ctx, p.Search)
}

// Describe searches Wikipedia and returns the top article's first
// sentence.
func (h *Description) Describe(ctx context.Context, search string) (result.Table, error) {
	pageID, ok, err := h.source.TopPageID(ctx, search)
	if err != nil {
		return nil, fatal(h.Name(), err)
	}
	if !ok {
		debug.Logf("Debug: no article found for %q\n", search)
		return result.Empty(), nil
	}

	extract, err := h.source.Extract(ctx, pageID)
	if err != nil {
		return nil, fatal(h.Name(), err)
	}
	return result.Single(extract), nil
}

// Entities enriches a search term from Wikidata using one property catalog.
type Entities struct {
	name    string
	source  EntitySource
	catalog *catalog.Catalog
}

// NewOrganization creates the organization handler.
func NewOrganization(source EntitySource) *Entities {
	return &Entities{name: NameOrganization, source: source, catalog: catalog.Organization}
}

// NewPeople creates the people handler.
func NewPeople(source EntitySource) *Entities {
	return &Entities{name: NamePeople, source: source, catalog: catalog.Person}
}

func (h *Entities) Name() string { return h.name }

// Catalog returns the property catalog the handler projects.
func (h *Entities) Catalog() *catalog.Catalog { return h.catalog }

// Handle binds input and runs the enrichment pipeline.
func (h *Entities) Handle(ctx context.Context, input []byte) (result.Table, error) {
	p, err := params.BindProperties(input)
	if err != nil {
		return nil, err
	}
	return h.Enrich(ctx, p.Search, p.Properties)
}

// Enrich runs the pipeline for an already bound search and property list.
func (h *Entities) Enrich(ctx context.Context, search string, properties []string) (result.Table, error) {
	id, ok, err := h.source.TopEntityID(ctx, search)
	if err != nil {
		return nil, fatal(h.name, err)
	}
	if !ok {
		debug.Logf("Debug: no entity found for %q\n", search)
		return result.Empty(), nil
	}
	debug.Logf("Debug: %q resolved to %s\n", search, id)

	entity, err := h.source.GetEntity(ctx, id)
	if err != nil {
		return nil, fatal(h.name, err)
	}

	claims, err := ProjectClaims(ctx, entity, h.catalog, h.source)
	if err != nil {
		return nil, fatal(h.name, err)
	}

	table := Merge(BasicInfo(entity), claims)
	return result.FromStrings(Select(table, properties, h.catalog.Defaults())), nil
}

// Handlers returns every handler wired to the given sources, in a stable
// order.
func Handlers(articles ArticleSource, entities EntitySource) []Handler {
	return []Handler{
		NewDescription(articles),
		NewOrganization(entities),
		NewPeople(entities),
	}
}
