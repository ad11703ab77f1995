package server

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/wanderio/trek-finder/pkg/common"
	"github.com/wanderio/trek-finder/pkg/discovery"
	"github.com/wanderio/trek-finder/pkg/facetstore"
	"github.com/wanderio/trek-finder/pkg/types"
)

var (
	noDiscoveries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trekfinder_discover_requests_total",
		Help: "The total number of processed discovery requests",
	})
	noCompareToggles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trekfinder_compare_toggles_total",
		Help: "The total number of comparison basket toggles",
	})
)

type WebServer struct {
	Manager       *discovery.Manager
	Facets        *facetstore.Store
	Tracking      types.Tracking
	ListenAddress string
}

func (ws *WebServer) HandleDiscover(w http.ResponseWriter, r *http.Request, sessionId int, enc *json.Encoder) error {
	sr, err := types.DiscoveryRequestFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return err
	}
	sess := ws.Manager.Get(sessionId)
	sess.Apply(r.Context(), sr)
	noDiscoveries.Inc()
	return enc.Encode(sess.View())
}

// HandleQuery records one keystroke level query edit. The fetch itself is
// debounced, the response reflects the state before the debounce fires.
func (ws *WebServer) HandleQuery(w http.ResponseWriter, r *http.Request, sessionId int, enc *json.Encoder) error {
	var body struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return err
	}
	sess := ws.Manager.Get(sessionId)
	sess.SetQuery(body.Query)
	return enc.Encode(sess.View())
}

func (ws *WebServer) HandlePage(w http.ResponseWriter, r *http.Request, sessionId int, enc *json.Encoder) error {
	var body struct {
		Page int `json:"page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return err
	}
	sess := ws.Manager.Get(sessionId)
	sess.GoToPage(r.Context(), body.Page)
	return enc.Encode(sess.View())
}

func (ws *WebServer) HandleToggleFacet(w http.ResponseWriter, r *http.Request, sessionId int, enc *json.Encoder) error {
	var body struct {
		Facet string `json:"facet"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return err
	}
	sess := ws.Manager.Get(sessionId)
	sess.ToggleFacet(r.Context(), body.Facet, body.Value)
	return enc.Encode(sess.View())
}

// HandleClear drops one facet when named, otherwise the query and every
// facet selection.
func (ws *WebServer) HandleClear(w http.ResponseWriter, r *http.Request, sessionId int, enc *json.Encoder) error {
	var body struct {
		Facet string `json:"facet"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return err
	}
	sess := ws.Manager.Get(sessionId)
	if body.Facet != "" {
		sess.ClearFacet(r.Context(), body.Facet)
	} else {
		sess.ClearAll(r.Context())
	}
	return enc.Encode(sess.View())
}

func (ws *WebServer) HandleFacets(w http.ResponseWriter, r *http.Request, sessionId int, enc *json.Encoder) error {
	w.Header().Set("Cache-Control", "public, stale-while-revalidate=120")
	return enc.Encode(ws.Facets.Categories())
}

type compareState struct {
	Ids        []string `json:"ids"`
	CanCompare bool     `json:"canCompare"`
	Target     string   `json:"target,omitempty"`
}

func (ws *WebServer) compareStateFor(sess *discovery.Session) compareState {
	state := compareState{
		Ids:        sess.Compare().Ids(),
		CanCompare: sess.Compare().CanCompare(),
	}
	if state.Ids == nil {
		state.Ids = []string{}
	}
	if target, ok := sess.Compare().Target(); ok {
		state.Target = target
	}
	return state
}

func (ws *WebServer) HandleCompareToggle(w http.ResponseWriter, r *http.Request, sessionId int, enc *json.Encoder) error {
	var body struct {
		Id string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return err
	}
	sess := ws.Manager.Get(sessionId)
	sess.Compare().Toggle(body.Id)
	noCompareToggles.Inc()
	if ws.Tracking != nil {
		ws.Tracking.TrackCompare(sessionId, sess.Compare().Ids())
	}
	return enc.Encode(ws.compareStateFor(sess))
}

func (ws *WebServer) HandleCompareClear(w http.ResponseWriter, r *http.Request, sessionId int, enc *json.Encoder) error {
	sess := ws.Manager.Get(sessionId)
	sess.Compare().Clear()
	return enc.Encode(ws.compareStateFor(sess))
}

// HandleCompareTarget answers the navigation target for the side by side
// view, refused while fewer than two treks are selected.
func (ws *WebServer) HandleCompareTarget(w http.ResponseWriter, r *http.Request, sessionId int, enc *json.Encoder) error {
	sess := ws.Manager.Get(sessionId)
	target, ok := sess.Compare().Target()
	if !ok {
		w.WriteHeader(http.StatusConflict)
		return enc.Encode(map[string]string{"error": "select at least two treks to compare"})
	}
	return enc.Encode(map[string]string{"target": target})
}

func (ws *WebServer) HandleTeardown(w http.ResponseWriter, r *http.Request, sessionId int, enc *json.Encoder) error {
	ws.Manager.Teardown(sessionId)
	return enc.Encode(map[string]bool{"ok": true})
}

func (ws *WebServer) MainMux() *http.ServeMux {
	srv := http.NewServeMux()

	srv.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	srv.HandleFunc("/api/discover", common.JsonHandler(ws.Tracking, ws.HandleDiscover))
	srv.HandleFunc("/api/query", common.JsonHandler(ws.Tracking, ws.HandleQuery))
	srv.HandleFunc("/api/page", common.JsonHandler(ws.Tracking, ws.HandlePage))
	srv.HandleFunc("/api/facets", common.JsonHandler(ws.Tracking, ws.HandleFacets))
	srv.HandleFunc("/api/filter/toggle", common.JsonHandler(ws.Tracking, ws.HandleToggleFacet))
	srv.HandleFunc("/api/filter/clear", common.JsonHandler(ws.Tracking, ws.HandleClear))
	srv.HandleFunc("/api/compare/toggle", common.JsonHandler(ws.Tracking, ws.HandleCompareToggle))
	srv.HandleFunc("/api/compare/clear", common.JsonHandler(ws.Tracking, ws.HandleCompareClear))
	srv.HandleFunc("/api/compare/target", common.JsonHandler(ws.Tracking, ws.HandleCompareTarget))
	srv.HandleFunc("/api/session/teardown", common.JsonHandler(ws.Tracking, ws.HandleTeardown))

	return srv
}
