// Package cache holds the in-process read-through caches for reference data
// and live rates. Entries are replaced whole under a lock, so a concurrent
// reader never observes a partially updated value. Invalidation is driven by
// update events (internal/events) and is eventually consistent.
package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/velamo/remitroute/internal/model"
)

type CorridorCache struct {
	mu      sync.RWMutex
	entries map[string]*model.Corridor // identity key -> corridor
}

func NewCorridorCache() *CorridorCache {
	return &CorridorCache{entries: make(map[string]*model.Corridor)}
}

func CorridorKey(origin, destination, currencyFrom, currencyTo string) string {
	return origin + ":" + destination + ":" + currencyFrom + ":" + currencyTo
}

func (c *CorridorCache) Get(key string) (*model.Corridor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cor, ok := c.entries[key]
	return cor, ok
}

func (c *CorridorCache) Set(key string, cor *model.Corridor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cor
}

// InvalidateID drops any cached corridor with the given id. The next lookup
// falls through to the store.
func (c *CorridorCache) InvalidateID(corridorID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, cor := range c.entries {
		if cor.ID == corridorID {
			delete(c.entries, key)
		}
	}
}

type ProviderCache struct {
	mu     sync.RWMutex
	byCorr map[string][]model.Provider
}

func NewProviderCache() *ProviderCache {
	return &ProviderCache{byCorr: make(map[string][]model.Provider)}
}

func (c *ProviderCache) Get(corridorID string) ([]model.Provider, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	providers, ok := c.byCorr[corridorID]
	return providers, ok
}

func (c *ProviderCache) Set(corridorID string, providers []model.Provider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byCorr[corridorID] = providers
}

// InvalidateProvider drops every cached corridor listing. A provider change
// can add the provider to corridors whose cached listings do not contain it
// yet, so membership-based eviction would leave those listings stale with no
// freshness window to age them out.
func (c *ProviderCache) InvalidateProvider(providerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byCorr = make(map[string][]model.Provider)
}

type rateEntry struct {
	rate      model.ProviderRate
	fetchedAt time.Time
}

// RateCache caches provider-adjusted rates per (pair, provider) with a
// freshness window. Rate-change events for a pair invalidate every matching
// entry regardless of the window.
type RateCache struct {
	mu      sync.RWMutex
	window  time.Duration
	entries map[string]rateEntry
}

func NewRateCache(window time.Duration) *RateCache {
	return &RateCache{window: window, entries: make(map[string]rateEntry)}
}

func RateKey(currencyFrom, currencyTo, providerID string) string {
	return currencyFrom + "/" + currencyTo + "@" + providerID
}

func (c *RateCache) Get(key string, now time.Time) (model.ProviderRate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok || now.Sub(entry.fetchedAt) > c.window {
		return model.ProviderRate{}, false
	}
	return entry.rate, true
}

func (c *RateCache) Set(key string, rate model.ProviderRate, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = rateEntry{rate: rate, fetchedAt: now}
}

func (c *RateCache) InvalidatePair(currencyFrom, currencyTo string) {
	prefix := currencyFrom + "/" + currencyTo + "@"
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}
