package facetstore

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/wanderio/trek-finder/pkg/types"
)

const cacheKey = "trek:facets"
const cacheTtl = time.Hour

// Source yields the facet categories, normally the catalog client.
type Source interface {
	FacetCategories(ctx context.Context) ([]types.FacetCategory, error)
}

// Store loads the facet categories once and keeps them immutable for the
// life of the process. A failed load is non-fatal, consumers see an empty
// category list and render no filter controls.
type Store struct {
	mu         sync.RWMutex
	source     Source
	cache      *Cache
	categories []types.FacetCategory
	loaded     bool
}

func New(source Source, cache *Cache) *Store {
	return &Store{source: source, cache: cache}
}

// Load fetches the categories. Repeated calls after a successful load are
// no-ops, a failed load may be retried by the caller.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	if s.cache != nil {
		var cached []types.FacetCategory
		if err := s.cache.Get(cacheKey, &cached); err == nil && len(cached) > 0 {
			s.categories = cached
			s.loaded = true
			return nil
		}
	}

	categories, err := s.source.FacetCategories(ctx)
	if err != nil {
		log.Printf("facet metadata load failed: %v", err)
		return err
	}
	s.categories = categories
	s.loaded = true

	if s.cache != nil {
		if err := s.cache.Set(cacheKey, categories, cacheTtl); err != nil {
			log.Printf("facet metadata cache write failed: %v", err)
		}
	}
	return nil
}

// Categories returns the loaded facet categories, never nil.
func (s *Store) Categories() []types.FacetCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.categories == nil {
		return []types.FacetCategory{}
	}
	return s.categories
}
