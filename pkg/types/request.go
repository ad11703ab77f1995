package types

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/schema"
)

// DiscoveryRequest is the atomic {query, filters, page} input for one
// discovery round trip.
type DiscoveryRequest struct {
	Filters
	Query    string `json:"query" schema:"query"`
	Page     int    `json:"page" schema:"page"`
	PageSize int    `json:"pageSize" schema:"size,default:12"`
}

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

func clamp[T int | float64](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func (s *DiscoveryRequest) Sanitize() {
	s.Query = strings.TrimSpace(s.Query)
	s.Page = clamp(s.Page, 1, 1000)
	s.PageSize = clamp(s.PageSize, 1, 100)
}

// HasFilters reports whether the request constrains the result set at all,
// which decides between the plain listing call and the search call.
func (s *DiscoveryRequest) HasFilters() bool {
	return s.Query != "" || s.Filters.Active()
}

func makeBaseRequest() *DiscoveryRequest {
	return &DiscoveryRequest{
		Page:     1,
		PageSize: 12,
	}
}

// DiscoveryRequestFromRequest decodes a request from the query string on GET
// and from a JSON body otherwise.
func DiscoveryRequestFromRequest(r *http.Request) (*DiscoveryRequest, error) {
	sr := makeBaseRequest()
	var err error
	if r.Method == http.MethodGet {
		err = requestFromQuery(r.URL.Query(), sr)
	} else {
		err = json.NewDecoder(r.Body).Decode(sr)
	}
	sr.Sanitize()
	return sr, err
}

func requestFromQuery(query url.Values, result *DiscoveryRequest) error {
	return decoder.Decode(result, query)
}
