package library

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultTTL is how long a library result stays fresh
const DefaultTTL = 300 * time.Second

// Lookup results reported by Cache.Get
const (
	LookupHit     = "hit"
	LookupMiss    = "miss"
	LookupExpired = "expired"
)

// Entry is a cached library result
type Entry struct {
	Key       string
	Payload   json.RawMessage
	CreatedAt time.Time
}

// Cache is a TTL table of library results. Entries are only evicted by the
// lookup that finds them stale; there is no background janitor.
type Cache struct {
	ttl   time.Duration
	now   func() time.Time
	mu    sync.Mutex
	items *gocache.Cache
}

// CacheOption configures a Cache
type CacheOption func(*Cache)

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache creates an empty cache. A non-positive ttl falls back to DefaultTTL.
func NewCache(ttl time.Duration, opts ...CacheOption) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		ttl:   ttl,
		now:   time.Now,
		items: gocache.New(gocache.NoExpiration, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the payload stored under key if it is younger than the TTL.
// A stale entry is deleted and reported as LookupExpired.
func (c *Cache) Get(key string) (json.RawMessage, string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, found := c.items.Get(key)
	if !found {
		return nil, LookupMiss
	}
	entry := raw.(*Entry)
	if c.now().Sub(entry.CreatedAt) >= c.ttl {
		c.items.Delete(key)
		return nil, LookupExpired
	}
	return entry.Payload, LookupHit
}

// Set stores payload under key, overwriting any previous entry
func (c *Cache) Set(key string, payload json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items.Set(key, &Entry{
		Key:       key,
		Payload:   payload,
		CreatedAt: c.now(),
	}, gocache.NoExpiration)
}

// Len returns the number of stored entries, stale ones included
func (c *Cache) Len() int {
	return c.items.ItemCount()
}

// CacheKey hashes a method together with its canonical JSON parameters.
// encoding/json writes map keys sorted, so equal params give equal keys.
func CacheKey(method string, params interface{}) (string, error) {
	canonical, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize params: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte{0})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}
