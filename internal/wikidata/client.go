// Package wikidata queries the Wikidata action API: entity search, full
// entity fetch and batch label lookup.
package wikidata

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/flexiodata/functions-wikipedia/internal/lookup"
	"github.com/flexiodata/functions-wikipedia/internal/mediawiki"
	"github.com/tidwall/gjson"
)

// DefaultEndpoint is the public Wikidata action API.
const DefaultEndpoint = "https://www.wikidata.org/w/api.php"

// entityProps are the wbgetentities props fetched for a full entity.
const entityProps = "info|sitelinks|sitelinks/urls|labels|descriptions|claims|datatype"

// Client wraps a mediawiki transport pointed at Wikidata.
type Client struct {
	api *mediawiki.Client
}

// NewClient creates a Wikidata client on top of api.
func NewClient(api *mediawiki.Client) *Client {
	return &Client{api: api}
}

// SearchEntities runs wbsearchentities and returns the ranked hits.
func (c *Client) SearchEntities(ctx context.Context, search string) ([]SearchHit, error) {
	body, err := c.api.Get(ctx, url.Values{
		"action":   {"wbsearchentities"},
		"language": {Language},
		"search":   {search},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search entities: %w", err)
	}

	var hits []SearchHit
	lookup.Get(lookup.Parse(body), "search").ForEach(func(_, item gjson.Result) bool {
		hits = append(hits, SearchHit{
			ID:          lookup.String(item, "", "id"),
			Label:       lookup.String(item, "", "label"),
			Description: lookup.String(item, "", "description"),
		})
		return true
	})
	return hits, nil
}

// TopEntityID returns the ID of the best search hit. ok is false when the
// search found nothing.
func (c *Client) TopEntityID(ctx context.Context, search string) (id string, ok bool, err error) {
	hits, err := c.SearchEntities(ctx, search)
	if err != nil {
		return "", false, err
	}
	if len(hits) == 0 {
		return "", false, nil
	}
	return hits[0].ID, true, nil
}

// GetEntity fetches labels, descriptions, sitelinks, modification time and
// claims for id.
func (c *Client) GetEntity(ctx context.Context, id string) (*Entity, error) {
	body, err := c.api.Get(ctx, url.Values{
		"action": {"wbgetentities"},
		"sites":  {"enwiki"},
		"props":  {entityProps},
		"ids":    {id},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entity %s: %w", id, err)
	}
	return decodeEntity(lookup.Parse(body), id), nil
}

// GetLabels resolves the labels of ids in a single request. The request is
// made even for an empty list. IDs that do not resolve are absent from the
// returned map.
func (c *Client) GetLabels(ctx context.Context, ids []string) (map[string]string, error) {
	body, err := c.api.Get(ctx, url.Values{
		"action": {"wbgetentities"},
		"sites":  {"enwiki"},
		"props":  {"labels"},
		"ids":    {strings.Join(ids, "|")},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch labels: %w", err)
	}
	return decodeLabels(lookup.Parse(body), ids), nil
}
