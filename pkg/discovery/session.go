package discovery

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/wanderio/trek-finder/pkg/catalog"
	"github.com/wanderio/trek-finder/pkg/compare"
	"github.com/wanderio/trek-finder/pkg/localfilter"
	"github.com/wanderio/trek-finder/pkg/paging"
	"github.com/wanderio/trek-finder/pkg/tracking"
	"github.com/wanderio/trek-finder/pkg/types"
)

var (
	noSearches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trekfinder_searches_total",
		Help: "The total number of catalog fetches applied",
	})
	noFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trekfinder_fallback_transitions_total",
		Help: "The total number of sessions that entered fallback mode",
	})
	noStaleDiscards = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trekfinder_stale_responses_total",
		Help: "The total number of catalog responses discarded as stale",
	})
	noLocalFilters = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trekfinder_local_filters_total",
		Help: "The total number of local filter evaluations in fallback mode",
	})
)

// Mode tells whether filtering and pagination are delegated to the catalog
// service or recomputed locally from the last unfiltered snapshot.
type Mode int

const (
	ModeServer Mode = iota
	ModeFallback
)

func (m Mode) String() string {
	if m == ModeFallback {
		return "fallback"
	}
	return "server"
}

// Catalog is the remote surface the orchestrator consumes.
type Catalog interface {
	ListTreks(ctx context.Context, page, pageSize int) (*catalog.Envelope, error)
	SearchTreks(ctx context.Context, sr *types.DiscoveryRequest) (*catalog.Envelope, error)
}

// Session owns the discovery state for one storefront visitor: the query,
// the facet selections, the page, the mode machine and the comparison
// basket. All mutations funnel through the session mutex, fetch results are
// matched against a sequence token so only the latest request can win.
type Session struct {
	mu     sync.Mutex
	id     int
	client Catalog
	track  types.Tracking

	query    string
	filters  types.Filters
	page     int
	pageSize int

	mode       Mode
	results    []types.Trek
	pagination types.Pagination
	snapshot   []types.Trek
	loaded     bool
	seq        uint64

	debounce *Debouncer
	selected *compare.Selection
}

func NewSession(id int, client Catalog, track types.Tracking, pageSize int, debounceWindow time.Duration) *Session {
	if pageSize < 1 {
		pageSize = 12
	}
	if track == nil {
		track = tracking.NoopTracking{}
	}
	return &Session{
		id:       id,
		client:   client,
		track:    track,
		page:     1,
		pageSize: pageSize,
		debounce: NewDebouncer(debounceWindow),
		selected: compare.NewSelection(),
	}
}

// Apply is the single transition for a full {query, filters, page} input.
// A changed query or changed facet selection resets the page to 1, a page
// outside the known range is ignored.
func (s *Session) Apply(ctx context.Context, req *types.DiscoveryRequest) {
	s.mu.Lock()
	query := strings.TrimSpace(req.Query)
	changed := s.query != query || !s.filters.Equal(&req.Filters)
	s.query = query
	s.filters = req.Filters.Clone()
	if !s.loaded && req.PageSize > 0 {
		s.pageSize = req.PageSize
	}
	if changed {
		s.page = 1
	} else if req.Page >= 1 && (!s.loaded || paging.Valid(req.Page, s.pagination.TotalPages)) {
		s.page = req.Page
	}
	s.mu.Unlock()
	s.Run(ctx)
}

// SetQuery records a query edit and restarts the debounce window, bursts of
// edits coalesce into one fetch carrying the final value.
func (s *Session) SetQuery(text string) {
	text = strings.TrimSpace(text)
	s.mu.Lock()
	if s.query == text {
		s.mu.Unlock()
		return
	}
	s.query = text
	s.page = 1
	s.mu.Unlock()
	s.debounce.Trigger(func() {
		s.Run(context.Background())
	})
}

// ToggleFacet flips one facet value, selecting it when absent and removing
// it when present. Facet toggles are not debounced.
func (s *Session) ToggleFacet(ctx context.Context, facet, value string) {
	s.mu.Lock()
	before := s.filters.Clone()
	s.filters.Toggle(facet, value)
	if s.filters.Equal(&before) {
		s.mu.Unlock()
		return
	}
	s.page = 1
	s.mu.Unlock()
	s.Run(ctx)
}

func (s *Session) ClearFacet(ctx context.Context, facet string) {
	s.mu.Lock()
	if len(s.filters.Selected(facet)) == 0 {
		s.mu.Unlock()
		return
	}
	s.filters.Clear(facet)
	s.page = 1
	s.mu.Unlock()
	s.Run(ctx)
}

func (s *Session) ClearAll(ctx context.Context) {
	s.mu.Lock()
	if s.query == "" && !s.filters.Active() {
		s.mu.Unlock()
		return
	}
	s.query = ""
	s.filters.ClearAll()
	s.page = 1
	s.mu.Unlock()
	s.Run(ctx)
}

// GoToPage navigates to a page, a target outside [1, totalPages] is a
// no-op.
func (s *Session) GoToPage(ctx context.Context, page int) {
	s.mu.Lock()
	if page < 1 || (s.loaded && !paging.Valid(page, s.pagination.TotalPages)) {
		s.mu.Unlock()
		return
	}
	s.page = page
	s.mu.Unlock()
	s.Run(ctx)
}

// Run executes one round of the orchestration. In server mode it fetches
// from the catalog, picking the listing call when no query or facet is
// active and snapshotting those unfiltered results for later fallback use.
// In fallback mode it recomputes locally, the mode never reverts.
func (s *Session) Run(ctx context.Context) {
	s.mu.Lock()
	if s.mode == ModeFallback {
		s.applyFallbackLocked()
		s.mu.Unlock()
		return
	}
	s.seq++
	seq := s.seq
	req := &types.DiscoveryRequest{
		Filters:  s.filters.Clone(),
		Query:    s.query,
		Page:     s.page,
		PageSize: s.pageSize,
	}
	hasFilters := req.HasFilters()
	s.mu.Unlock()

	var env *catalog.Envelope
	var err error
	if hasFilters {
		env, err = s.client.SearchTreks(ctx, req)
	} else {
		env, err = s.client.ListTreks(ctx, req.Page, req.PageSize)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		// a newer request owns the displayed state
		noStaleDiscards.Inc()
		return
	}
	if err != nil {
		log.Printf("catalog fetch failed for session %d, entering fallback: %v", s.id, err)
		noFallbacks.Inc()
		s.mode = ModeFallback
		s.track.TrackFallback(s.id, err.Error())
		// previous results stay on screen
		return
	}

	noSearches.Inc()
	s.results = env.Results
	s.pagination = types.Pagination{
		CurrentPage: paging.Clamp(req.Page, env.TotalPages),
		TotalPages:  env.TotalPages,
		TotalItems:  env.TotalItems,
		PageSize:    req.PageSize,
	}
	// keep the internal page inside the range the service just reported
	s.page = s.pagination.CurrentPage
	if !hasFilters {
		s.snapshot = env.Results
	}
	s.loaded = true
	s.track.TrackSearch(s.id, &req.Filters, len(env.Results), req.Query, req.Page, s.mode.String())
}

// applyFallbackLocked recomputes the displayed list from the unfiltered
// snapshot. A fallback session without a snapshot is a distinct empty
// state, the previously displayed results are kept.
func (s *Session) applyFallbackLocked() {
	noLocalFilters.Inc()
	if len(s.snapshot) == 0 {
		s.pagination = types.MakePagination(1, 0, s.pageSize)
		return
	}
	filtered := localfilter.Apply(s.snapshot, s.query, &s.filters)
	s.pagination = types.MakePagination(s.page, len(filtered), s.pageSize)
	s.page = s.pagination.CurrentPage
	start := (s.page - 1) * s.pageSize
	end := start + s.pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}
	s.results = filtered[start:end]
}

// View is the state handed to the storefront after a run.
type View struct {
	Results       []types.Trek     `json:"results"`
	Pagination    types.Pagination `json:"pagination"`
	Pages         []int            `json:"pages"`
	Mode          string           `json:"mode"`
	Query         string           `json:"query"`
	Filters       types.Filters    `json:"filters"`
	EmptySnapshot bool             `json:"emptySnapshot,omitempty"`
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	results := s.results
	if results == nil {
		results = []types.Trek{}
	}
	return View{
		Results:       results,
		Pagination:    s.pagination,
		Pages:         paging.VisiblePages(s.pagination.CurrentPage, s.pagination.TotalPages, paging.DefaultWindow),
		Mode:          s.mode.String(),
		Query:         s.query,
		Filters:       s.filters.Clone(),
		EmptySnapshot: s.mode == ModeFallback && len(s.snapshot) == 0,
	}
}

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Session) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

func (s *Session) Snapshot() []types.Trek {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Compare exposes the comparison basket bound to this session.
func (s *Session) Compare() *compare.Selection {
	return s.selected
}

// Teardown is the page navigation hook, it drops the comparison selection
// and stops any pending debounced fetch.
func (s *Session) Teardown() {
	s.debounce.Stop()
	s.selected.Clear()
}
