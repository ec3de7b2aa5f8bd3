package main

import (
	"net/http"

	"github.com/flexiodata/functions-wikipedia/internal/config"
	"github.com/flexiodata/functions-wikipedia/internal/enrich"
	"github.com/flexiodata/functions-wikipedia/internal/mediawiki"
	"github.com/flexiodata/functions-wikipedia/internal/wikidata"
	"github.com/flexiodata/functions-wikipedia/internal/wikipedia"
)

// newAPI builds an api.php client for endpoint from the http.* settings.
func newAPI(endpoint string) *mediawiki.Client {
	h := config.GetHTTP()
	delay := h.Backoff
	if delay <= 0 {
		delay = mediawiki.RetryDelay
	}
	c := mediawiki.NewClient(endpoint).WithRetry(h.Retries, delay)
	if h.UserAgent != "" {
		c = c.WithUserAgent(h.UserAgent)
	}
	if h.Timeout > 0 {
		c = c.WithHTTPClient(&http.Client{Timeout: h.Timeout})
	}
	return c
}

// newHandlers wires every handler to the configured endpoints.
func newHandlers() []enrich.Handler {
	articles := wikipedia.NewClient(newAPI(config.GetString(config.KeyWikipediaEndpoint)))
	entities := wikidata.NewClient(newAPI(config.GetString(config.KeyWikidataEndpoint)))
	return enrich.Handlers(articles, entities)
}

// handlerByName returns the configured handler with the given name.
func handlerByName(name string) enrich.Handler {
	for _, h := range newHandlers() {
		if h.Name() == name {
			return h
		}
	}
	return nil
}
