package currency

import (
	"sync"
	"time"

	"github.com/girotrack/girotrack-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// DefaultCacheTTL is the freshness window for fetched exchange rates.
const DefaultCacheTTL = time.Hour

// RateCache holds the process-wide exchange-rate table. All conversions in
// all requests share one cache; readers take a snapshot and are never
// blocked by a refresh in flight. Rates are stored as EUR per unit of the
// keyed currency.
type RateCache struct {
	mu         sync.RWMutex
	rates      map[enums.Currency]decimal.Decimal
	fetchedAt  time.Time
	ttl        time.Duration
	refreshing bool
}

// NewRateCache builds an empty cache with the given freshness window.
func NewRateCache(ttl time.Duration) *RateCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RateCache{ttl: ttl}
}

// Snapshot returns the current rate table and its fetch time. The returned
// map is a copy; callers may read it without holding any lock.
func (c *RateCache) Snapshot() (map[enums.Currency]decimal.Decimal, time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.rates) == 0 {
		return nil, c.fetchedAt
	}
	copied := make(map[enums.Currency]decimal.Decimal, len(c.rates))
	for k, v := range c.rates {
		copied[k] = v
	}
	return copied, c.fetchedAt
}

// IsStale reports whether the cache needs a refresh at the given instant.
// An empty cache is always stale.
func (c *RateCache) IsStale(now time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.rates) == 0 {
		return true
	}
	return now.Sub(c.fetchedAt) >= c.ttl
}

// Store replaces the rate table.
func (c *RateCache) Store(rates map[enums.Currency]decimal.Decimal, fetchedAt time.Time) {
	if len(rates) == 0 {
		return
	}
	copied := make(map[enums.Currency]decimal.Decimal, len(rates))
	for k, v := range rates {
		copied[k] = v
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.rates = copied
	c.fetchedAt = fetchedAt
}

// BeginRefresh marks this caller as the single writer. It returns false
// when another refresh is already in flight; that caller should serve the
// stale snapshot instead of fetching.
func (c *RateCache) BeginRefresh() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.refreshing {
		return false
	}
	c.refreshing = true
	return true
}

// EndRefresh releases the writer slot taken by BeginRefresh.
func (c *RateCache) EndRefresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshing = false
}
