package geocode

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a resolved location is reused.
const DefaultCacheTTL = 24 * time.Hour

// Chain tries each geocoder in order and returns the first match. A
// transport failure is only reported when no later geocoder matches.
type Chain []Geocoder

// Geocode implements Geocoder.
func (c Chain) Geocode(ctx context.Context, query string) (*Location, error) {
	var lastErr error
	for _, g := range c {
		loc, err := g.Geocode(ctx, query)
		if err == nil {
			return loc, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if !errors.Is(err, ErrNoMatch) {
			lastErr = err
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("%q: %w", strings.TrimSpace(query), ErrNoMatch)
}

type cacheEntry struct {
	loc       *Location
	noMatch   bool
	expiresAt time.Time
}

// CachedGeocoder memoizes another Geocoder's answers, including misses,
// for a fixed TTL. Transport errors are not cached.
type CachedGeocoder struct {
	next Geocoder
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewCachedGeocoder wraps next. A zero ttl uses DefaultCacheTTL.
func NewCachedGeocoder(next Geocoder, ttl time.Duration) *CachedGeocoder {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedGeocoder{
		next:    next,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Geocode implements Geocoder.
func (c *CachedGeocoder) Geocode(ctx context.Context, query string) (*Location, error) {
	key := strings.ToLower(strings.TrimSpace(query))

	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()

	if ok {
		if entry.noMatch {
			return nil, fmt.Errorf("%q: %w", key, ErrNoMatch)
		}
		loc := *entry.loc
		return &loc, nil
	}

	loc, err := c.next.Geocode(ctx, query)
	switch {
	case err == nil:
		c.store(key, cacheEntry{loc: loc})
		copied := *loc
		return &copied, nil
	case errors.Is(err, ErrNoMatch):
		c.store(key, cacheEntry{noMatch: true})
	}
	return nil, err
}

// Invalidate drops the cached answer for query.
func (c *CachedGeocoder) Invalidate(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, strings.ToLower(strings.TrimSpace(query)))
}

func (c *CachedGeocoder) store(key string, e cacheEntry) {
	e.expiresAt = c.now().Add(c.ttl)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = e
}
