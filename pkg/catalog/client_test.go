package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wanderio/trek-finder/pkg/types"
)

func TestClient_ListTreks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/treks" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("Expected page 2 but got %s", got)
		}
		w.Write([]byte(`{"results":[{"id":"a"}],"totalPages":5,"totalItems":55}`))
	}))
	defer srv.Close()

	env, err := NewClient(srv.URL).ListTreks(context.Background(), 2, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.TotalPages != 5 || len(env.Results) != 1 {
		t.Errorf("unexpected envelope %+v", env)
	}
}

func TestClient_SearchTreksOmitsEmptyFacets(t *testing.T) {
	var payload map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/treks/search" || r.Method != http.MethodPost {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	sr := &types.DiscoveryRequest{
		Query:    "annapurna",
		Page:     1,
		PageSize: 12,
	}
	sr.Difficulty = []string{"easy"}
	if _, err := NewClient(srv.URL).SearchTreks(context.Background(), sr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, key := range []string{"query", "difficulty", "page", "pageSize"} {
		if _, ok := payload[key]; !ok {
			t.Errorf("Expected %s in payload", key)
		}
	}
	for _, key := range []string{"duration", "location", "price", "organiser"} {
		if _, ok := payload[key]; ok {
			t.Errorf("empty facet %s should be omitted", key)
		}
	}
	var query []string
	if err := json.Unmarshal(payload["query"], &query); err != nil || len(query) != 1 || query[0] != "annapurna" {
		t.Errorf(`Expected query ["annapurna"] but got %s`, payload["query"])
	}
}

func TestClient_NonSuccessStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).ListTreks(context.Background(), 1, 12); err == nil {
		t.Error("Expected an error for a 502 response")
	}
}

func TestClient_FacetCategories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/facets" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[{"name":"Difficulty","options":[{"value":"easy","label":"Easy"}]}]`))
	}))
	defer srv.Close()

	categories, err := NewClient(srv.URL).FacetCategories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Difficulty" {
		t.Errorf("unexpected categories %+v", categories)
	}
}
