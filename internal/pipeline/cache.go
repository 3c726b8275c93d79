package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/cespare/xxhash/v2"

	"github.com/crimson-sun/loglens/internal/model"
)

const cacheShards = 16

// Cache holds analysis results for the lifetime of a run, keyed by a hash of
// the document content. Identical inputs (copies, unrotated duplicates) are
// analyzed once.
type Cache struct {
	bc *bigcache.BigCache
}

type cachedAnalysis struct {
	Result  model.AnalysisResult `json:"result"`
	Entries []model.ParsedEntry  `json:"entries"`
}

// NewCache creates a Cache bounded to sizeMB megabytes.
func NewCache(ctx context.Context, sizeMB int) (*Cache, error) {
	cfg := bigcache.DefaultConfig(time.Hour)
	cfg.Shards = cacheShards
	cfg.MaxEntriesInWindow = 1024
	cfg.MaxEntrySize = 4 * 1024
	cfg.HardMaxCacheSize = sizeMB
	cfg.Verbose = false
	bc, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}
	return &Cache{bc: bc}, nil
}

// Key returns the cache key for content.
func Key(content string) string {
	return strconv.FormatUint(xxhash.Sum64String(content), 16)
}

// Get returns the cached analysis for key.
func (c *Cache) Get(key string) (model.AnalysisResult, []model.ParsedEntry, bool) {
	data, err := c.bc.Get(key)
	if err != nil {
		return model.AnalysisResult{}, nil, false
	}
	var ca cachedAnalysis
	if err := json.Unmarshal(data, &ca); err != nil {
		return model.AnalysisResult{}, nil, false
	}
	return ca.Result, ca.Entries, true
}

// Set stores an analysis under key.
func (c *Cache) Set(key string, r model.AnalysisResult, entries []model.ParsedEntry) error {
	data, err := json.Marshal(cachedAnalysis{Result: r, Entries: entries})
	if err != nil {
		return fmt.Errorf("encode cached analysis: %w", err)
	}
	if err := c.bc.Set(key, data); err != nil {
		return fmt.Errorf("cache analysis: %w", err)
	}
	return nil
}

// Len returns the number of cached analyses.
func (c *Cache) Len() int { return c.bc.Len() }

// Close releases the cache.
func (c *Cache) Close() error {
	return c.bc.Close()
}
