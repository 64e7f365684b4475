// Package analytics – time-bounded result cache
//
// One entry per metric family (plus one for the full snapshot), keyed by the
// family name and a fingerprint of the filter that produced the value. An
// entry is valid while its age is below the fixed expiry; expiry or an
// explicit Clear resets it to empty. The cache is guarded by a mutex because
// the HTTP host serves concurrent requests; overlapping recomputations are
// not deduplicated (no single-flight guard), each caller recomputes
// independently and the last write wins.
package analytics

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/crmkit/go-crm-backend/internal/domain"
)

// Cache key families. The full snapshot has its own entry alongside the
// per-family ones.
const (
	familySnapshot     = "snapshot"
	familyDistribution = "type_distribution"
	familyFollowUps    = "follow_ups"
	familyTrend        = "activity_trend"
	familyPrincipals   = "principals"
)

// DefaultCacheTTL is the fixed expiry applied when none is configured.
const DefaultCacheTTL = 5 * time.Minute

type cacheEntry struct {
	value      any
	computedAt time.Time
}

// Cache holds the last computed result per metric family with a fixed
// expiry. Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

// NewCache returns an empty cache with the given expiry. A non-positive ttl
// falls back to DefaultCacheTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached value for key when present and younger than the
// expiry. The second return reports a hit.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.computedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the current timestamp, replacing any
// previous entry wholesale.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, computedAt: c.now()}
}

// Clear resets every entry to empty. The next read per family recomputes.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Len reports the number of live entries (expired entries may still be
// counted until their next Get). Intended for tests and introspection.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey derives the cache key for a family and filter. Filters are part
// of the key so distinct scopes never alias; the caller is responsible for
// bypassing the cache entirely for free-text searches, which are not a
// stable key.
func cacheKey(family string, f domain.InteractionFilter) string {
	if f.Empty() {
		return family
	}
	var b strings.Builder
	b.WriteString(family)
	b.WriteByte('|')
	for i, t := range f.Types {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(string(t))
	}
	fmt.Fprintf(&b, "|%s|%s|%s", f.OpportunityID, f.ContactID, f.Organization)
	if !f.DateFrom.IsZero() {
		fmt.Fprintf(&b, "|from=%d", f.DateFrom.Unix())
	}
	if !f.DateTo.IsZero() {
		fmt.Fprintf(&b, "|to=%d", f.DateTo.Unix())
	}
	if f.FollowUpNeeded != nil {
		fmt.Fprintf(&b, "|fu=%t", *f.FollowUpNeeded)
	}
	if f.Principal != "" {
		fmt.Fprintf(&b, "|p=%s", f.Principal)
	}
	return b.String()
}
