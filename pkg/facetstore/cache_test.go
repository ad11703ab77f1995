package facetstore

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestCache_LocalLayerConcurrentAccess(t *testing.T) {
	c := &Cache{memCache: make(map[string]localEntry)}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("trek:facets:%d", n%3)
			for j := 0; j < 200; j++ {
				c.localSet(key, []byte(`{"ok":true}`), time.Minute)
				c.localGet(key)
			}
		}(i)
	}
	wg.Wait()

	if data, found := c.localGet("trek:facets:0"); !found || len(data) == 0 {
		t.Errorf("expected warm entry after concurrent writes, found=%v", found)
	}
}

func TestCache_LocalLayerDropsExpired(t *testing.T) {
	c := &Cache{memCache: make(map[string]localEntry)}
	c.localSet("trek:facets", []byte(`{}`), -time.Second)

	if _, found := c.localGet("trek:facets"); found {
		t.Error("expected expired entry to be dropped")
	}
	if len(c.memCache) != 0 {
		t.Errorf("expected expired entry removed from map, got %d entries", len(c.memCache))
	}
}
