package facetstore

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type localEntry struct {
	Expires time.Time
	Data    []byte
}

// Cache is a redis backed cache with a short lived in-process layer in
// front, used to warm the facet metadata across restarts.
type Cache struct {
	Addr     string
	Password string
	DB       int
	client   *redis.Client
	ctx      context.Context
	mu       sync.Mutex
	memCache map[string]localEntry
}

func NewCache(addr, password string, db int) *Cache {
	ctx := context.Background()

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Cache{Addr: addr, Password: password, DB: db, client: rdb, ctx: ctx, memCache: make(map[string]localEntry)}
}

// localGet returns the payload from the in-process layer, dropping expired
// entries.
func (c *Cache) localGet(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	local, found := c.memCache[key]
	if !found {
		return nil, false
	}
	if !local.Expires.After(time.Now()) {
		delete(c.memCache, key)
		return nil, false
	}
	return local.Data, true
}

func (c *Cache) localSet(key string, data []byte, expiration time.Duration) {
	c.mu.Lock()
	c.memCache[key] = localEntry{Expires: time.Now().Add(expiration), Data: data}
	c.mu.Unlock()
}

func (c *Cache) Get(key string, out any) error {
	if data, found := c.localGet(key); found {
		return json.Unmarshal(data, out)
	}
	data, err := c.client.Get(c.ctx, key).Result()
	if err != nil {
		return err
	}
	c.localSet(key, []byte(data), time.Minute)
	return json.Unmarshal([]byte(data), out)
}

func (c *Cache) Set(key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.localSet(key, data, expiration)
	return c.client.Set(c.ctx, key, data, expiration).Err()
}
