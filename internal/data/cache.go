package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"office-pricing/internal/model"
)

// cacheEntry holds one cached provider response.
type cacheEntry struct {
	response  *model.AnalyticsExportResponse
	expiresAt time.Time
}

// ResponseCache is an in-memory TTL cache for analytics export responses.
// It only spares repeated provider calls inside one process; the durable
// copy of provider data lives in the store.
type ResponseCache struct {
	mu    sync.RWMutex
	store map[string]*cacheEntry
	ttl   time.Duration
}

func NewResponseCache(ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	c := &ResponseCache{
		store: make(map[string]*cacheEntry),
		ttl:   ttl,
	}
	go c.cleanup()
	return c
}

func (c *ResponseCache) Get(key string) (*model.AnalyticsExportResponse, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.response, true
}

func (c *ResponseCache) Set(key string, resp *model.AnalyticsExportResponse) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = &cacheEntry{
		response:  resp,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *ResponseCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*cacheEntry)
}

func (c *ResponseCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.store {
			if now.After(entry.expiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}

// CacheKey builds a deterministic key for an export request.
func CacheKey(export, from, to string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%s", export, from, to)))
	return hex.EncodeToString(sum[:])
}
