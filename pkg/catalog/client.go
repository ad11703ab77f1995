package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/wanderio/trek-finder/pkg/types"
)

// Client talks to the remote trek catalog service. Only the response shapes
// matter to callers, transport failures and shape failures are both just
// errors at this boundary.
type Client struct {
	BaseUrl string
	Http    *http.Client
}

func NewClient(baseUrl string) *Client {
	return &Client{
		BaseUrl: baseUrl,
		Http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// searchPayload mirrors the search contract, every filter field is optional
// and only serialized when non-empty. The query travels as a value list like
// the facet fields.
type searchPayload struct {
	Page       int      `json:"page"`
	PageSize   int      `json:"pageSize"`
	Query      []string `json:"query,omitempty"`
	Difficulty []string `json:"difficulty,omitempty"`
	Duration   []string `json:"duration,omitempty"`
	Location   []string `json:"location,omitempty"`
	Price      []string `json:"price,omitempty"`
	Organiser  []string `json:"organiser,omitempty"`
}

func (c *Client) ListTreks(ctx context.Context, page, pageSize int) (*Envelope, error) {
	u := fmt.Sprintf("%s/treks?page=%d&pageSize=%d", c.BaseUrl, page, pageSize)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req, pageSize)
}

func (c *Client) SearchTreks(ctx context.Context, sr *types.DiscoveryRequest) (*Envelope, error) {
	payload := searchPayload{
		Page:       sr.Page,
		PageSize:   sr.PageSize,
		Difficulty: sr.Difficulty,
		Duration:   sr.Duration,
		Location:   sr.Location,
		Price:      sr.Price,
		Organiser:  sr.Organiser,
	}
	if sr.Query != "" {
		payload.Query = []string{sr.Query}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseUrl+"/treks/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, sr.PageSize)
}

func (c *Client) FacetCategories(ctx context.Context) ([]types.FacetCategory, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseUrl+"/facets", nil)
	if err != nil {
		return nil, err
	}
	raw, err := c.read(req)
	if err != nil {
		return nil, err
	}
	var categories []types.FacetCategory
	if err := sonic.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShape, err)
	}
	return categories, nil
}

func (c *Client) do(req *http.Request, pageSize int) (*Envelope, error) {
	raw, err := c.read(req)
	if err != nil {
		return nil, err
	}
	return parseEnvelope(raw, pageSize)
}

func (c *Client) read(req *http.Request) ([]byte, error) {
	res, err := c.Http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("catalog responded %d for %s", res.StatusCode, req.URL.Path)
	}
	return io.ReadAll(res.Body)
}
