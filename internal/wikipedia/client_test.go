package wikipedia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flexiodata/functions-wikipedia/internal/mediawiki"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(mediawiki.NewClient(srv.URL).WithRetry(0, time.Millisecond))
}

func TestSearchAndExtract(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("list") == "search":
			if q.Get("srsearch") != "Yellowstone National Park" || q.Get("srprop") != "timestamp" {
				t.Errorf("unexpected search query: %v", q)
			}
			_, _ = w.Write([]byte(`{"query":{"search":[
				{"ns":0,"title":"Yellowstone National Park","pageid":34340,"timestamp":"2024-05-01T10:00:00Z"},
				{"ns":0,"title":"Yellowstone Caldera","pageid":1136364,"timestamp":"2024-04-01T10:00:00Z"}
			]}}`))
		case q.Get("prop") == "extracts":
			if q.Get("pageids") != "34340" || q.Get("exsentences") != "1" || !q.Has("explaintext") || !q.Has("exintro") {
				t.Errorf("unexpected extract query: %v", q)
			}
			_, _ = w.Write([]byte(`{"batchcomplete":"","query":{"pages":{"34340":{"pageid":34340,"title":"Yellowstone National Park",
				"extract":"Yellowstone National Park is a national park of the United States located in the northwest corner of Wyoming."}}}}`))
		default:
			t.Errorf("unexpected request: %v", q)
		}
	})

	ctx := context.Background()
	pageID, ok, err := c.TopPageID(ctx, "Yellowstone National Park")
	if err != nil || !ok {
		t.Fatalf("TopPageID = (%q, %v, %v)", pageID, ok, err)
	}
	if pageID != "34340" {
		t.Errorf("pageID = %q, want 34340", pageID)
	}

	extract, err := c.Extract(ctx, pageID)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	want := "Yellowstone National Park is a national park of the United States located in the northwest corner of Wyoming."
	if extract != want {
		t.Errorf("extract = %q, want %q", extract, want)
	}
}

func TestTopPageIDNoResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"query":{"searchinfo":{"totalhits":0},"search":[]}}`))
	})

	pageID, ok, err := c.TopPageID(context.Background(), "qwxzv")
	if err != nil {
		t.Fatalf("TopPageID failed: %v", err)
	}
	if ok || pageID != "" {
		t.Errorf("expected no result, got (%q, %v)", pageID, ok)
	}
}

func TestExtractMissingPage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"query":{"pages":{"-1":{"missing":""}}}}`))
	})

	extract, err := c.Extract(context.Background(), "42")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if extract != "" {
		t.Errorf("extract = %q, want empty", extract)
	}
}
