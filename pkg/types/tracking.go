package types

import (
	"net/http"
)

type Tracking interface {
	TrackSession(session_id int, r *http.Request)
	TrackSearch(session_id int, filters *Filters, resultLen int, query string, page int, mode string)
	TrackFallback(session_id int, reason string)
	TrackCompare(session_id int, ids []string)
	Close() error
}
