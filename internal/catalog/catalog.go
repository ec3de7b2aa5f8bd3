// Package catalog holds the fixed property catalogs that map human-readable
// property names to Wikidata property IDs. The catalogs are embedded at
// build time and cannot be changed at runtime.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed catalogs.toml
var catalogsTOML string

// Basic field names are filled from the entity itself rather than from a
// claim.
const (
	FieldLabel        = "label"
	FieldDescription  = "description"
	FieldWikipediaURL = "wikipedia_url"
	FieldUpdated      = "updated_dt"
)

// BasicFields lists the entity-level fields every catalog exposes.
var BasicFields = []string{FieldLabel, FieldDescription, FieldWikipediaURL, FieldUpdated}

// Wildcard requests every default property of a catalog.
const Wildcard = "*"

// Property maps a property name to a Wikidata property ID.
type Property struct {
	Name string `toml:"name"`
	ID   string `toml:"id"`
}

type catalogFile struct {
	Title      string            `toml:"title"`
	Defaults   []string          `toml:"defaults"`
	Properties []Property        `toml:"property"`
	Describe   map[string]string `toml:"describe"`
}

// Catalog is an immutable, ordered property table for one kind of entity.
type Catalog struct {
	kind       string
	title      string
	defaults   []string
	properties []Property
	describe   map[string]string
}

var (
	// Organization is the catalog used by the organization handler.
	Organization *Catalog
	// Person is the catalog used by the people handler.
	Person *Catalog
)

func init() {
	var raw struct {
		Organization catalogFile `toml:"organization"`
		Person       catalogFile `toml:"person"`
	}
	if _, err := toml.Decode(catalogsTOML, &raw); err != nil {
		panic(fmt.Sprintf("catalog: failed to decode embedded catalogs: %v", err))
	}

	var err error
	if Organization, err = newCatalog("organization", raw.Organization); err != nil {
		panic(err)
	}
	if Person, err = newCatalog("person", raw.Person); err != nil {
		panic(err)
	}
}

func newCatalog(kind string, f catalogFile) (*Catalog, error) {
	known := make(map[string]bool, len(BasicFields)+len(f.Properties))
	for _, name := range BasicFields {
		known[name] = true
	}
	for _, p := range f.Properties {
		if p.Name == "" || p.ID == "" {
			return nil, fmt.Errorf("catalog %s: property entry missing name or id", kind)
		}
		known[p.Name] = true
	}
	for _, name := range f.Defaults {
		if !known[name] {
			return nil, fmt.Errorf("catalog %s: default %q is neither a basic field nor a property", kind, name)
		}
	}

	return &Catalog{
		kind:       kind,
		title:      f.Title,
		defaults:   f.Defaults,
		properties: f.Properties,
		describe:   f.Describe,
	}, nil
}

// Lookup returns the catalog for a kind name. It accepts the command names
// ("org", "people") as well as the catalog kinds.
func Lookup(kind string) (*Catalog, bool) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "org", "orgs", "organization", "organizations":
		return Organization, true
	case "people", "person", "persons":
		return Person, true
	}
	return nil, false
}

// All returns every catalog in a stable order.
func All() []*Catalog {
	return []*Catalog{Organization, Person}
}

// Kind returns the catalog kind ("organization" or "person").
func (c *Catalog) Kind() string { return c.kind }

// Title returns the display name of the catalog.
func (c *Catalog) Title() string { return c.title }

// Defaults returns the property names a wildcard request expands to, in
// column order.
func (c *Catalog) Defaults() []string {
	out := make([]string, len(c.defaults))
	copy(out, c.defaults)
	return out
}

// Properties returns the claim-backed properties in projection order.
func (c *Catalog) Properties() []Property {
	out := make([]Property, len(c.properties))
	copy(out, c.properties)
	return out
}

// PropertyID returns the Wikidata property ID for name.
func (c *Catalog) PropertyID(name string) (string, bool) {
	for _, p := range c.properties {
		if p.Name == name {
			return p.ID, true
		}
	}
	return "", false
}

// Describe returns the human description of a property name.
func (c *Catalog) Describe(name string) string {
	return c.describe[name]
}

// Markdown renders the catalog as a markdown list of property names and
// descriptions, in default column order.
func (c *Catalog) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s properties\n\n", c.title)
	for _, name := range c.defaults {
		fmt.Fprintf(&b, "* `%s`", name)
		if id, ok := c.PropertyID(name); ok {
			fmt.Fprintf(&b, " (%s)", id)
		}
		if d := c.Describe(name); d != "" {
			fmt.Fprintf(&b, ": %s", d)
		}
		b.WriteString("\n")
	}
	return b.String()
}
