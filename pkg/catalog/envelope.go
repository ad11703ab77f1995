package catalog

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/wanderio/trek-finder/pkg/types"
)

// ErrShape marks a response that matches neither accepted envelope.
var ErrShape = errors.New("unrecognized response shape")

// Envelope is the normalized result of a listing or search call.
type Envelope struct {
	Results    []types.Trek `json:"results"`
	TotalPages int          `json:"totalPages"`
	TotalItems int          `json:"totalItems"`
}

type rawEnvelope struct {
	Results    []types.Trek `json:"results"`
	TotalPages *int         `json:"totalPages"`
	TotalItems *int         `json:"totalItems"`
}

// The catalog answers with either a flat envelope or the same envelope
// nested under "data". Both are accepted here so the ambiguity never
// reaches the orchestrator.
func parseEnvelope(raw []byte, pageSize int) (*Envelope, error) {
	var probe struct {
		Results json.RawMessage `json:"results"`
		Data    json.RawMessage `json:"data"`
	}
	if err := sonic.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShape, err)
	}

	body := raw
	if probe.Results == nil {
		if probe.Data == nil {
			return nil, ErrShape
		}
		body = probe.Data
	}

	var re rawEnvelope
	if err := sonic.Unmarshal(body, &re); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShape, err)
	}
	if re.Results == nil {
		return nil, ErrShape
	}
	return re.normalize(pageSize), nil
}

// normalize fills in pagination metadata the service left out, falling back
// to the size of the returned page.
func (re *rawEnvelope) normalize(pageSize int) *Envelope {
	env := &Envelope{Results: re.Results}
	if re.TotalItems != nil {
		env.TotalItems = *re.TotalItems
	} else {
		env.TotalItems = len(re.Results)
	}
	if re.TotalPages != nil {
		env.TotalPages = *re.TotalPages
	} else if pageSize > 0 {
		env.TotalPages = (env.TotalItems + pageSize - 1) / pageSize
	}
	if env.TotalPages < 1 {
		env.TotalPages = 1
	}
	return env
}
