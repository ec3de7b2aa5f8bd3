// Package wikienrich provides a minimal public API for running the
// enrichment handlers from Go without going through the CLI.
//
// Every call returns a single-row Table. Input that cannot be bound fails
// with an error matching ErrInvalidInput; any later failure matches
// ErrFatal.
package wikienrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/flexiodata/functions-wikipedia/internal/catalog"
	"github.com/flexiodata/functions-wikipedia/internal/enrich"
	"github.com/flexiodata/functions-wikipedia/internal/mediawiki"
	"github.com/flexiodata/functions-wikipedia/internal/params"
	"github.com/flexiodata/functions-wikipedia/internal/result"
	"github.com/flexiodata/functions-wikipedia/internal/wikidata"
	"github.com/flexiodata/functions-wikipedia/internal/wikipedia"
)

// Table is a handler result: exactly one row of values.
type Table = result.Table

// FatalError reports a failed lookup and unwraps to its cause.
type FatalError = enrich.FatalError

// Error kinds.
var (
	ErrInvalidInput = params.ErrInvalidInput
	ErrFatal        = enrich.ErrFatal
)

// Handler names accepted by Client.Handle.
const (
	HandlerDescription  = enrich.NameDescription
	HandlerOrganization = enrich.NameOrganization
	HandlerPeople       = enrich.NamePeople
)

// Wildcard requests every catalog property in default order.
const Wildcard = catalog.Wildcard

// Options configures a Client. Zero values use the public Wikimedia
// endpoints and the default retry policy.
type Options struct {
	WikipediaEndpoint string
	WikidataEndpoint  string
	UserAgent         string
	HTTPClient        *http.Client

	// MaxRetries < 0 disables retrying; 0 means the default.
	MaxRetries int
	RetryDelay time.Duration
}

// Client runs the enrichment handlers.
type Client struct {
	description  *enrich.Description
	organization *enrich.Entities
	people       *enrich.Entities
	byName       map[string]enrich.Handler
}

// New creates a Client.
func New(opts Options) *Client {
	articles := wikipedia.NewClient(opts.api(opts.WikipediaEndpoint, wikipedia.DefaultEndpoint))
	entities := wikidata.NewClient(opts.api(opts.WikidataEndpoint, wikidata.DefaultEndpoint))

	c := &Client{
		description:  enrich.NewDescription(articles),
		organization: enrich.NewOrganization(entities),
		people:       enrich.NewPeople(entities),
	}
	c.byName = map[string]enrich.Handler{
		c.description.Name():  c.description,
		c.organization.Name(): c.organization,
		c.people.Name():       c.people,
	}
	return c
}

func (o Options) api(endpoint, def string) *mediawiki.Client {
	if endpoint == "" {
		endpoint = def
	}
	api := mediawiki.NewClient(endpoint)
	if o.UserAgent != "" {
		api = api.WithUserAgent(o.UserAgent)
	}
	if o.HTTPClient != nil {
		api = api.WithHTTPClient(o.HTTPClient)
	}
	retries, delay := mediawiki.MaxRetries, mediawiki.RetryDelay
	if o.MaxRetries < 0 {
		retries = 0
	} else if o.MaxRetries > 0 {
		retries = o.MaxRetries
	}
	if o.RetryDelay > 0 {
		delay = o.RetryDelay
	}
	return api.WithRetry(retries, delay)
}

// Description returns the first sentence of the best-matching Wikipedia
// article.
func (c *Client) Description(ctx context.Context, search string) (Table, error) {
	return c.description.Describe(ctx, search)
}

// Organization returns the requested organization properties. Each
// argument is a name or a comma-separated list of names, as in the CLI.
// With no properties the default list ("description") is used.
func (c *Client) Organization(ctx context.Context, search string, properties ...string) (Table, error) {
	return c.organization.Enrich(ctx, search, requested(properties))
}

// People returns the requested person properties. Each argument is a name
// or a comma-separated list of names. With no properties the default list
// ("description") is used.
func (c *Client) People(ctx context.Context, search string, properties ...string) (Table, error) {
	return c.people.Enrich(ctx, search, requested(properties))
}

// Handle runs the named handler over a raw JSON input array, exactly as
// the CLI and serve mode do.
func (c *Client) Handle(ctx context.Context, name string, input json.RawMessage) (Table, error) {
	h, ok := c.byName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown handler %q", ErrInvalidInput, name)
	}
	return h.Handle(ctx, input)
}

// Properties returns the property names a handler accepts, in default
// column order. It returns nil for the description handler.
func Properties(name string) []string {
	c, ok := catalog.Lookup(name)
	if !ok {
		return nil
	}
	return c.Defaults()
}

func requested(properties []string) []string {
	if len(properties) == 0 {
		return params.DefaultProperties
	}
	return params.Normalize(params.Split(properties...))
}
