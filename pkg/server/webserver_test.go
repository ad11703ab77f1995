package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wanderio/trek-finder/pkg/catalog"
	"github.com/wanderio/trek-finder/pkg/discovery"
	"github.com/wanderio/trek-finder/pkg/facetstore"
	"github.com/wanderio/trek-finder/pkg/types"
)

type fakeCatalog struct{}

func (fakeCatalog) ListTreks(ctx context.Context, page, pageSize int) (*catalog.Envelope, error) {
	return &catalog.Envelope{
		Results:    []types.Trek{{Id: "a", Name: "Annapurna Base Camp"}},
		TotalPages: 1,
		TotalItems: 1,
	}, nil
}

func (fakeCatalog) SearchTreks(ctx context.Context, sr *types.DiscoveryRequest) (*catalog.Envelope, error) {
	return &catalog.Envelope{Results: []types.Trek{}, TotalPages: 1}, nil
}

func (fakeCatalog) FacetCategories(ctx context.Context) ([]types.FacetCategory, error) {
	return []types.FacetCategory{{Name: "Difficulty", Options: []types.FacetOption{
		{Value: "easy", Label: "Easy"},
	}}}, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	fc := fakeCatalog{}
	facets := facetstore.New(fc, nil)
	if err := facets.Load(context.Background()); err != nil {
		t.Fatalf("facet load failed: %v", err)
	}
	ws := &WebServer{
		Manager: discovery.NewManager(fc, nil),
		Facets:  facets,
	}
	srv := httptest.NewServer(ws.MainMux())
	t.Cleanup(srv.Close)

	jar, _ := cookiejar.New(nil)
	return srv, &http.Client{Jar: jar}
}

func postJson(t *testing.T, client *http.Client, url, body string) *http.Response {
	t.Helper()
	res, err := client.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return res
}

func TestHandleDiscover(t *testing.T) {
	srv, client := newTestServer(t)

	res, err := client.Get(srv.URL + "/api/discover")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	var view discovery.View
	if err := json.NewDecoder(res.Body).Decode(&view); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if view.Mode != "server" {
		t.Errorf("Expected server mode but got %s", view.Mode)
	}
	if len(view.Results) != 1 || view.Results[0].Id != "a" {
		t.Errorf("unexpected results %+v", view.Results)
	}
	if len(view.Pages) != 1 || view.Pages[0] != 1 {
		t.Errorf("unexpected page buttons %v", view.Pages)
	}
}

func TestHandleFacets(t *testing.T) {
	srv, client := newTestServer(t)

	res, err := client.Get(srv.URL + "/api/facets")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	var categories []types.FacetCategory
	if err := json.NewDecoder(res.Body).Decode(&categories); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Difficulty" {
		t.Errorf("unexpected categories %+v", categories)
	}
}

func TestCompareFlow(t *testing.T) {
	srv, client := newTestServer(t)

	// ids accumulate on the cookie session
	res := postJson(t, client, srv.URL+"/api/compare/toggle", `{"id":"x"}`)
	res.Body.Close()
	res = postJson(t, client, srv.URL+"/api/compare/toggle", `{"id":"y"}`)

	var state struct {
		Ids        []string `json:"ids"`
		CanCompare bool     `json:"canCompare"`
		Target     string   `json:"target"`
	}
	if err := json.NewDecoder(res.Body).Decode(&state); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	res.Body.Close()
	if !state.CanCompare || state.Target != "/compare?ids=x,y" {
		t.Errorf("unexpected compare state %+v", state)
	}

	res, err := client.Get(srv.URL + "/api/compare/target")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 but got %d", res.StatusCode)
	}

	// dropping one side makes the target unavailable again
	res = postJson(t, client, srv.URL+"/api/compare/toggle", `{"id":"x"}`)
	res.Body.Close()
	res, err = client.Get(srv.URL + "/api/compare/target")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusConflict {
		t.Errorf("Expected 409 but got %d", res.StatusCode)
	}
}

func TestTeardownClearsComparison(t *testing.T) {
	srv, client := newTestServer(t)

	postJson(t, client, srv.URL+"/api/compare/toggle", `{"id":"x"}`).Body.Close()
	postJson(t, client, srv.URL+"/api/compare/toggle", `{"id":"y"}`).Body.Close()
	postJson(t, client, srv.URL+"/api/session/teardown", `{}`).Body.Close()

	res := postJson(t, client, srv.URL+"/api/compare/toggle", `{"id":"z"}`)
	defer res.Body.Close()
	var state struct {
		Ids []string `json:"ids"`
	}
	if err := json.NewDecoder(res.Body).Decode(&state); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if len(state.Ids) != 1 || state.Ids[0] != "z" {
		t.Errorf("Expected a fresh basket after teardown but got %v", state.Ids)
	}
}
