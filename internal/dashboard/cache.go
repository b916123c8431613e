package dashboard

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/billmap/internal/bills"
)

// Cache is a concurrent-safe LRU cache of built datasets with TTL expiration.
// Entries are keyed by a fingerprint of the region files, so editing,
// adding or removing a file yields a new key and the stale entry ages out.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]*cacheEntry
	order      []string // LRU order: front=oldest, back=newest
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
	hits       atomic.Int64
	misses     atomic.Int64
}

type cacheEntry struct {
	ds        *Dataset
	createdAt time.Time
}

// CacheStats contains cache performance statistics.
type CacheStats struct {
	Entries    int     `json:"entries"`
	MaxEntries int     `json:"max_entries"`
	Hits       int64   `json:"hits"`
	Misses     int64   `json:"misses"`
	HitRate    float64 `json:"hit_rate"`
}

// NewCache creates a new Cache with the given capacity and TTL.
func NewCache(maxEntries int, ttl time.Duration) *Cache {
	return &Cache{
		entries:    make(map[string]*cacheEntry),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Fingerprint identifies the current contents of a bills directory by the
// name, size and modification time of each region file.
func Fingerprint(dir string) (string, error) {
	paths, err := bills.Discover(dir)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return "", eris.Wrapf(err, "dashboard: stat %s", p)
		}
		fmt.Fprintf(h, "%s\x00%d\x00%d\n", filepath.Base(p), info.Size(), info.ModTime().UnixNano())
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	return abs + "@" + hex.EncodeToString(h.Sum(nil))[:16], nil
}

// Get retrieves a cached dataset. Returns nil on miss or expiration.
func (c *Cache) Get(key string) *Dataset {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		return nil
	}

	// Check TTL.
	if c.now().Sub(entry.createdAt) > c.ttl {
		delete(c.entries, key)
		c.removeFromOrder(key)
		c.misses.Add(1)
		return nil
	}

	// Move to back (most recently used).
	c.removeFromOrder(key)
	c.order = append(c.order, key)
	c.hits.Add(1)
	return entry.ds
}

// Put stores a dataset, evicting the oldest entry if at capacity.
func (c *Cache) Put(key string, ds *Dataset) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.entries[key] = &cacheEntry{ds: ds, createdAt: c.now()}
		c.removeFromOrder(key)
		c.order = append(c.order, key)
		return
	}

	for len(c.entries) >= c.maxEntries && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = &cacheEntry{ds: ds, createdAt: c.now()}
	c.order = append(c.order, key)
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*cacheEntry)
	c.order = nil
}

// Stats returns cache performance statistics.
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	entries := len(c.entries)
	maxEntries := c.maxEntries
	c.mu.RUnlock()

	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return CacheStats{
		Entries:    entries,
		MaxEntries: maxEntries,
		Hits:       hits,
		Misses:     misses,
		HitRate:    hitRate,
	}
}

// removeFromOrder removes a key from the LRU order slice.
func (c *Cache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Source hands out the current dataset for one bills directory, either
// rebuilding it on every call or going through a Cache.
type Source struct {
	dir   string
	cache *Cache
}

// NewSource creates a Source for dir. A nil cache rebuilds on every call.
func NewSource(dir string, cache *Cache) *Source {
	return &Source{dir: dir, cache: cache}
}

// Dir returns the bills directory the source reads.
func (s *Source) Dir() string { return s.dir }

// Dataset returns the dataset for the directory's current contents.
func (s *Source) Dataset(ctx context.Context) (*Dataset, error) {
	if s.cache == nil {
		return Build(ctx, s.dir)
	}

	key, err := Fingerprint(s.dir)
	if err != nil {
		return nil, err
	}
	if ds := s.cache.Get(key); ds != nil {
		return ds, nil
	}

	ds, err := Build(ctx, s.dir)
	if err != nil {
		return nil, err
	}
	s.cache.Put(key, ds)
	zap.L().Debug("dashboard: cached dataset",
		zap.String("component", "dashboard.cache"),
		zap.String("key", key),
	)
	return ds, nil
}
