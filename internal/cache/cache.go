// Package cache memoizes per-file import extraction between analysis
// runs of the same process (watch mode, workflow retries).
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultSize = 4096

// ExtractionCache is a bounded LRU of raw import token lists keyed by
// file identity. Safe for concurrent use.
type ExtractionCache struct {
	lru *lru.Cache[string, []string]
}

// NewExtractionCache creates a cache holding up to size entries; size
// <= 0 selects the default.
func NewExtractionCache(size int) (*ExtractionCache, error) {
	if size <= 0 {
		size = defaultSize
	}
	inner, err := lru.New[string, []string](size)
	if err != nil {
		return nil, err
	}
	return &ExtractionCache{lru: inner}, nil
}

func (c *ExtractionCache) Get(key string) ([]string, bool) {
	return c.lru.Get(key)
}

func (c *ExtractionCache) Add(key string, tokens []string) {
	c.lru.Add(key, tokens)
}

// Len returns the number of cached entries.
func (c *ExtractionCache) Len() int { return c.lru.Len() }
