package tracking

import (
	"net/http"

	"github.com/wanderio/trek-finder/pkg/types"
)

// NoopTracking satisfies types.Tracking when no broker is configured.
type NoopTracking struct{}

func (NoopTracking) TrackSession(session_id int, r *http.Request) {}
func (NoopTracking) TrackSearch(session_id int, filters *types.Filters, resultLen int, query string, page int, mode string) {
}
func (NoopTracking) TrackFallback(session_id int, reason string) {}
func (NoopTracking) TrackCompare(session_id int, ids []string)   {}
func (NoopTracking) Close() error                                { return nil }
