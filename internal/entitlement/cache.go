// AngelaMos | 2026
// cache.go

package entitlement

import (
	"context"
	"sync"
	"time"
)

const (
	cacheCleanupInterval = 5 * time.Minute
	cacheEntryTTL        = 10 * time.Minute
)

// Cache memoizes resolved snapshots per viewer for a short TTL so one
// page worth of requests gates against one consistent snapshot instead
// of hitting the profile store per gate.
//
// Concurrent refreshes for the same viewer are sequenced: each refresh
// takes a ticket before fetching and only the newest ticket may apply
// its result. A slow, superseded fetch is discarded rather than allowed
// to overwrite a fresher snapshot.
type Cache struct {
	resolver *Resolver
	ttl      time.Duration
	entries  sync.Map
}

type cacheEntry struct {
	mu         sync.Mutex
	snapshot   Snapshot
	resolvedAt time.Time
	hasValue   bool
	nextSeq    uint64
	appliedSeq uint64
	lastAccess int64
}

func NewCache(resolver *Resolver, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	c := &Cache{
		resolver: resolver,
		ttl:      ttl,
	}
	go c.cleanup()
	return c
}

// Get returns the current snapshot for a principal, refreshing it when
// the cached one has expired or none exists yet.
func (c *Cache) Get(ctx context.Context, p Principal, now time.Time) Snapshot {
	entry := c.entry(p)

	entry.mu.Lock()
	entry.lastAccess = now.Unix()
	if entry.hasValue && now.Sub(entry.resolvedAt) < c.ttl {
		snapshot := entry.snapshot
		entry.mu.Unlock()
		return snapshot
	}

	entry.nextSeq++
	seq := entry.nextSeq
	entry.mu.Unlock()

	snapshot := c.resolver.Resolve(ctx, p, now)

	return c.apply(entry, seq, snapshot, now)
}

// Invalidate drops the cached snapshot for a principal so the next Get
// re-resolves. Called on any signal change: login, logout, tier update,
// secret unlock or re-lock.
func (c *Cache) Invalidate(p Principal) {
	c.entries.Delete(cacheKey(p))
}

// apply installs a resolved snapshot unless a newer resolution has
// already been applied, in which case the stale result is discarded and
// the fresher snapshot returned.
func (c *Cache) apply(entry *cacheEntry, seq uint64, snapshot Snapshot, now time.Time) Snapshot {
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if seq <= entry.appliedSeq && entry.hasValue {
		return entry.snapshot
	}

	entry.appliedSeq = seq
	entry.snapshot = snapshot
	entry.resolvedAt = now
	entry.hasValue = true
	return snapshot
}

func (c *Cache) entry(p Principal) *cacheEntry {
	key := cacheKey(p)
	if existing, ok := c.entries.Load(key); ok {
		return existing.(*cacheEntry)
	}
	created, _ := c.entries.LoadOrStore(key, &cacheEntry{})
	return created.(*cacheEntry)
}

func cacheKey(p Principal) string {
	return p.UserID + "|" + p.DeviceID
}

func (c *Cache) cleanup() {
	ticker := time.NewTicker(cacheCleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-cacheEntryTTL).Unix()
		c.entries.Range(func(key, value any) bool {
			entry, ok := value.(*cacheEntry)
			if ok {
				entry.mu.Lock()
				stale := entry.lastAccess < cutoff
				entry.mu.Unlock()
				if stale {
					c.entries.Delete(key)
				}
			}
			return true
		})
	}
}
