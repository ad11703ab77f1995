package facetstore

import (
	"context"
	"errors"
	"testing"

	"github.com/wanderio/trek-finder/pkg/types"
)

type fakeSource struct {
	calls      int
	fail       bool
	categories []types.FacetCategory
}

func (f *fakeSource) FacetCategories(ctx context.Context) ([]types.FacetCategory, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("metadata unavailable")
	}
	return f.categories, nil
}

func TestStore_LoadOnce(t *testing.T) {
	src := &fakeSource{categories: []types.FacetCategory{{Name: "Difficulty"}}}
	s := New(src, nil)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.calls != 1 {
		t.Errorf("Expected a single source fetch but got %d", src.calls)
	}
	got := s.Categories()
	if len(got) != 1 || got[0].Name != "Difficulty" {
		t.Errorf("unexpected categories %+v", got)
	}
}

func TestStore_FailedLoadLeavesEmptyCategories(t *testing.T) {
	src := &fakeSource{fail: true}
	s := New(src, nil)

	if err := s.Load(context.Background()); err == nil {
		t.Error("Expected the load error to surface for observability")
	}
	got := s.Categories()
	if got == nil {
		t.Error("categories must encode as [] rather than null")
	}
	if len(got) != 0 {
		t.Errorf("Expected no categories but got %+v", got)
	}
}

func TestStore_FailedLoadCanBeRetried(t *testing.T) {
	src := &fakeSource{fail: true}
	s := New(src, nil)

	s.Load(context.Background())
	src.fail = false
	src.categories = []types.FacetCategory{{Name: "Price"}}
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Categories()) != 1 {
		t.Errorf("Expected categories after retry but got %+v", s.Categories())
	}
}
