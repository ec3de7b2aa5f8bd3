// Package wikipedia queries the English Wikipedia action API for full-text
// search and plain-text article extracts.
package wikipedia

import (
	"context"
	"fmt"
	"net/url"

	"github.com/flexiodata/functions-wikipedia/internal/lookup"
	"github.com/flexiodata/functions-wikipedia/internal/mediawiki"
	"github.com/tidwall/gjson"
)

// DefaultEndpoint is the public English Wikipedia action API.
const DefaultEndpoint = "https://en.wikipedia.org/w/api.php"

// SearchHit is one ranked full-text search result.
type SearchHit struct {
	PageID    string
	Title     string
	Timestamp string
}

// Client wraps a mediawiki transport pointed at Wikipedia.
type Client struct {
	api *mediawiki.Client
}

// NewClient creates a Wikipedia client on top of api.
func NewClient(api *mediawiki.Client) *Client {
	return &Client{api: api}
}

// Search runs a list=search query and returns hits in relevance order.
func (c *Client) Search(ctx context.Context, query string) ([]SearchHit, error) {
	body, err := c.api.Get(ctx, url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srprop":   {"timestamp"},
		"srsearch": {query},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search articles: %w", err)
	}

	var hits []SearchHit
	lookup.Get(lookup.Parse(body), "query", "search").ForEach(func(_, item gjson.Result) bool {
		hits = append(hits, SearchHit{
			PageID:    lookup.String(item, "", "pageid"),
			Title:     lookup.String(item, "", "title"),
			Timestamp: lookup.String(item, "", "timestamp"),
		})
		return true
	})
	return hits, nil
}

// TopPageID returns the page ID of the best search hit. ok is false when
// the search found nothing or the top hit carries no page ID.
func (c *Client) TopPageID(ctx context.Context, query string) (pageID string, ok bool, err error) {
	hits, err := c.Search(ctx, query)
	if err != nil {
		return "", false, err
	}
	if len(hits) == 0 || hits[0].PageID == "" {
		return "", false, nil
	}
	return hits[0].PageID, true, nil
}

// Extract returns the first sentence of the page's introduction as plain
// text, or "" when the page has no extract.
func (c *Client) Extract(ctx context.Context, pageID string) (string, error) {
	body, err := c.api.Get(ctx, url.Values{
		"action":      {"query"},
		"prop":        {"extracts"},
		"explaintext": {""},
		"exintro":     {""},
		"exsentences": {"1"},
		"pageids":     {pageID},
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch extract for page %s: %w", pageID, err)
	}
	return lookup.String(lookup.Parse(body), "", "query", "pages", pageID, "extract"), nil
}
