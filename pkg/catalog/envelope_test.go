package catalog

import (
	"errors"
	"testing"
)

func TestParseEnvelope_Flat(t *testing.T) {
	raw := []byte(`{"results":[{"id":"a","name":"Annapurna"}],"totalPages":3,"totalItems":30}`)
	env, err := parseEnvelope(raw, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.Results) != 1 || env.Results[0].Id != "a" {
		t.Errorf("Expected one result with id a but got %+v", env.Results)
	}
	if env.TotalPages != 3 || env.TotalItems != 30 {
		t.Errorf("Expected 3/30 but got %d/%d", env.TotalPages, env.TotalItems)
	}
}

func TestParseEnvelope_Nested(t *testing.T) {
	raw := []byte(`{"data":{"results":[{"id":"a"},{"id":"b"}],"totalItems":2}}`)
	env, err := parseEnvelope(raw, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.Results) != 2 {
		t.Errorf("Expected two results but got %d", len(env.Results))
	}
	if env.TotalItems != 2 || env.TotalPages != 1 {
		t.Errorf("Expected 1/2 but got %d/%d", env.TotalPages, env.TotalItems)
	}
}

func TestParseEnvelope_MetadataDefaultsFromResults(t *testing.T) {
	raw := []byte(`{"results":[{"id":"a"},{"id":"b"},{"id":"c"}]}`)
	env, err := parseEnvelope(raw, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.TotalItems != 3 {
		t.Errorf("Expected totalItems 3 but got %d", env.TotalItems)
	}
	if env.TotalPages != 2 {
		t.Errorf("Expected totalPages 2 but got %d", env.TotalPages)
	}
}

func TestParseEnvelope_EmptyResults(t *testing.T) {
	env, err := parseEnvelope([]byte(`{"results":[]}`), 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.Results) != 0 || env.TotalPages != 1 {
		t.Errorf("Expected empty first page but got %+v", env)
	}
}

func TestParseEnvelope_ShapeErrors(t *testing.T) {
	for _, raw := range []string{
		`{"items":[]}`,
		`{"data":{"items":[]}}`,
		`[]`,
		`not json`,
		`{"results":"nope"}`,
	} {
		_, err := parseEnvelope([]byte(raw), 12)
		if !errors.Is(err, ErrShape) {
			t.Errorf("%s: Expected ErrShape but got %v", raw, err)
		}
	}
}
