package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/flexiodata/functions-wikipedia/internal/catalog"
	"github.com/flexiodata/functions-wikipedia/internal/params"
	"github.com/flexiodata/functions-wikipedia/internal/result"
	"github.com/flexiodata/functions-wikipedia/internal/wikidata"
)

// stubEntities is an in-memory EntitySource keyed by search term.
type stubEntities struct {
	ids      map[string]string
	entities map[string]*wikidata.Entity
	labels   map[string]string

	searchErr error
	labelErr  error

	searches   []string
	labelCalls [][]string
}

func (s *stubEntities) TopEntityID(ctx context.Context, search string) (string, bool, error) {
	s.searches = append(s.searches, search)
	if s.searchErr != nil {
		return "", false, s.searchErr
	}
	id, ok := s.ids[search]
	return id, ok, nil
}

func (s *stubEntities) GetEntity(ctx context.Context, id string) (*wikidata.Entity, error) {
	e, ok := s.entities[id]
	if !ok {
		return nil, errors.New("no such entity")
	}
	return e, nil
}

func (s *stubEntities) GetLabels(ctx context.Context, ids []string) (map[string]string, error) {
	s.labelCalls = append(s.labelCalls, append([]string(nil), ids...))
	if s.labelErr != nil {
		return nil, s.labelErr
	}
	out := make(map[string]string)
	for _, id := range ids {
		if l, ok := s.labels[id]; ok {
			out[id] = l
		}
	}
	return out, nil
}

type stubArticles struct {
	pages    map[string]string
	extracts map[string]string
	err      error
}

func (s *stubArticles) TopPageID(ctx context.Context, query string) (string, bool, error) {
	if s.err != nil {
		return "", false, s.err
	}
	id, ok := s.pages[query]
	return id, ok, nil
}

func (s *stubArticles) Extract(ctx context.Context, pageID string) (string, error) {
	return s.extracts[pageID], nil
}

func ref(id string) wikidata.Claim { return wikidata.Claim{Kind: wikidata.KindEntityRef, Value: id} }

func google() *stubEntities {
	return &stubEntities{
		ids: map[string]string{"Google": "Q95"},
		entities: map[string]*wikidata.Entity{
			"Q95": {
				ID:           "Q95",
				Label:        "Google",
				Description:  "American multinational technology company",
				Modified:     "2024-01-02T03:04:05Z",
				WikipediaURL: "https://en.wikipedia.org/wiki/Google",
				Claims: map[string][]wikidata.Claim{
					"P17":   {ref("Q30"), ref("Q145")},
					"P856":  {{Kind: wikidata.KindString, Value: "https://www.google.com/"}},
					"P571":  {{Kind: wikidata.KindTime, Value: "+1998-09-04T00:00:00Z"}},
					"P1448": {{Kind: wikidata.KindMonolingualText, Value: "Google LLC"}},
					"P2002": {{Kind: wikidata.KindNone}},
				},
			},
		},
		labels: map[string]string{"Q30": "United States of America"},
	}
}

func TestEntitiesHandle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  result.Table
	}{
		{
			name:  "label and country",
			input: `["Google","label,country"]`,
			want:  result.Table{{"Google", "United States of America"}},
		},
		{
			name:  "swapped order",
			input: `["Google",["country","label"]]`,
			want:  result.Table{{"United States of America", "Google"}},
		},
		{
			name:  "normalized names",
			input: `["Google"," Label , COUNTRY "]`,
			want:  result.Table{{"Google", "United States of America"}},
		},
		{
			name:  "default property",
			input: `["Google"]`,
			want:  result.Table{{"American multinational technology company"}},
		},
		{
			name:  "claim kinds",
			input: `["Google","website,inception,official_name,twitter_id"]`,
			want:  result.Table{{"https://www.google.com/", "+1998-09-04T00:00:00Z", "Google LLC", ""}},
		},
		{
			name:  "unknown property",
			input: `["Google","label,nope"]`,
			want:  result.Table{{"Google", ""}},
		},
		{
			name:  "no results",
			input: `["zzzz","label"]`,
			want:  result.Empty(),
		},
		{
			name:  "empty search",
			input: `["","label"]`,
			want:  result.Empty(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewOrganization(google())
			got, err := h.Handle(context.Background(), []byte(tt.input))
			if err != nil {
				t.Fatalf("Handle: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Handle mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEntitiesWildcard(t *testing.T) {
	h := NewOrganization(google())
	got, err := h.Handle(context.Background(), []byte(`["Google","*"]`))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	defaults := catalog.Organization.Defaults()
	if len(got) != 1 || len(got[0]) != len(defaults) {
		t.Fatalf("got %d columns, want %d", len(got[0]), len(defaults))
	}
	for i, name := range defaults {
		if name == catalog.FieldLabel && got[0][i] != "Google" {
			t.Errorf("column %d (%s) = %v, want Google", i, name, got[0][i])
		}
		if name == "country" && got[0][i] != "United States of America" {
			t.Errorf("column %d (%s) = %v", i, name, got[0][i])
		}
	}
}

func TestEntitiesRejectsBeforeRequest(t *testing.T) {
	inputs := []string{
		`{"search":"Google"}`,
		`[]`,
		`[42,"label"]`,
		`[null]`,
		`["Google",null]`,
		`["Google",[1,2]]`,
		`["Google",[["label",null]]]`,
		`["Google",[["label",1]]]`,
		`not json`,
	}
	for _, input := range inputs {
		src := google()
		_, err := NewOrganization(src).Handle(context.Background(), []byte(input))
		if !errors.Is(err, params.ErrInvalidInput) {
			t.Errorf("Handle(%s) error = %v, want ErrInvalidInput", input, err)
		}
		if errors.Is(err, ErrFatal) {
			t.Errorf("Handle(%s) returned a fatal error for invalid input", input)
		}
		if len(src.searches) != 0 {
			t.Errorf("Handle(%s) made %d searches", input, len(src.searches))
		}
	}
}

func TestEntitiesFatal(t *testing.T) {
	cause := errors.New("boom")

	src := google()
	src.searchErr = cause
	_, err := NewPeople(src).Handle(context.Background(), []byte(`["Google"]`))
	if !errors.Is(err, ErrFatal) || !errors.Is(err, cause) {
		t.Fatalf("search failure: got %v", err)
	}
	var fe *FatalError
	if !errors.As(err, &fe) || fe.Handler != NamePeople {
		t.Errorf("handler = %+v, want %s", fe, NamePeople)
	}

	src = google()
	src.labelErr = cause
	_, err = NewOrganization(src).Handle(context.Background(), []byte(`["Google","label"]`))
	if !errors.Is(err, ErrFatal) {
		t.Errorf("label failure: got %v", err)
	}

	src = google()
	src.ids["Missing"] = "Q404"
	_, err = NewOrganization(src).Handle(context.Background(), []byte(`["Missing"]`))
	if !errors.Is(err, ErrFatal) {
		t.Errorf("entity failure: got %v", err)
	}
}

func TestProjectClaimsSingleBatch(t *testing.T) {
	src := &stubEntities{labels: map[string]string{"Q1": "one", "Q2": "two"}}
	e := &wikidata.Entity{Claims: map[string][]wikidata.Claim{
		"P21":  {ref("Q1")},
		"P19":  {ref("Q2")},
		"P20":  {ref("Q2")},
		"P27":  {ref("Q9")},
		"P569": {{Kind: wikidata.KindTime, Value: "+1858-10-27T00:00:00Z"}},
	}}

	got, err := ProjectClaims(context.Background(), e, catalog.Person, src)
	if err != nil {
		t.Fatalf("ProjectClaims: %v", err)
	}
	if len(src.labelCalls) != 1 {
		t.Fatalf("GetLabels called %d times, want 1", len(src.labelCalls))
	}
	if diff := cmp.Diff([]string{"Q1", "Q2", "Q9"}, src.labelCalls[0]); diff != "" {
		t.Errorf("label ids (-want +got):\n%s", diff)
	}

	want := map[string]string{
		"gender":      "one",
		"birth_place": "two",
		"death_place": "two",
		"citizenship": "",
		"birth_date":  "+1858-10-27T00:00:00Z",
		"religion":    "",
	}
	for name, v := range want {
		if got[name] != v {
			t.Errorf("%s = %q, want %q", name, got[name], v)
		}
	}
	for _, p := range catalog.Person.Properties() {
		if _, ok := got[p.Name]; !ok {
			t.Errorf("missing projected property %s", p.Name)
		}
	}
}

func TestProjectClaimsNoReferences(t *testing.T) {
	src := &stubEntities{}
	if _, err := ProjectClaims(context.Background(), &wikidata.Entity{}, catalog.Organization, src); err != nil {
		t.Fatalf("ProjectClaims: %v", err)
	}
	if len(src.labelCalls) != 1 || len(src.labelCalls[0]) != 0 {
		t.Errorf("label calls = %v, want one empty call", src.labelCalls)
	}
}

func TestMergeClaimsWin(t *testing.T) {
	got := Merge(map[string]string{"label": "a", "x": "1"}, map[string]string{"label": "b"})
	if got["label"] != "b" || got["x"] != "1" {
		t.Errorf("Merge = %v", got)
	}
}

func TestSelect(t *testing.T) {
	table := map[string]string{"a": "1", "b": "2"}
	tests := []struct {
		requested []string
		want      []string
	}{
		{[]string{"b", "a"}, []string{"2", "1"}},
		{[]string{"*"}, []string{"1", "2", ""}},
		{[]string{"*", "a"}, []string{"", "1"}},
		{[]string{}, []string{}},
	}
	for _, tt := range tests {
		got := Select(table, tt.requested, []string{"a", "b", "c"})
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Select(%v) (-want +got):\n%s", tt.requested, diff)
		}
	}
}

func TestDescriptionHandle(t *testing.T) {
	src := &stubArticles{
		pages:    map[string]string{"Theodore Roosevelt": "30535"},
		extracts: map[string]string{"30535": "Theodore Roosevelt was the 26th president."},
	}
	h := NewDescription(src)

	got, err := h.Handle(context.Background(), []byte(`["Theodore Roosevelt","ignored"]`))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if diff := cmp.Diff(result.Table{{"Theodore Roosevelt was the 26th president."}}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	got, err = h.Handle(context.Background(), []byte(`["nothing"]`))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if diff := cmp.Diff(result.Empty(), got); diff != "" {
		t.Errorf("no results (-want +got):\n%s", diff)
	}

	src.err = errors.New("down")
	if _, err := h.Handle(context.Background(), []byte(`["x"]`)); !errors.Is(err, ErrFatal) {
		t.Errorf("error = %v, want ErrFatal", err)
	}
	if _, err := h.Handle(context.Background(), []byte(`[1]`)); !errors.Is(err, params.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestHandlersNames(t *testing.T) {
	var names []string
	for _, h := range Handlers(&stubArticles{}, &stubEntities{}) {
		names = append(names, h.Name())
	}
	if diff := cmp.Diff([]string{NameDescription, NameOrganization, NamePeople}, names); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
