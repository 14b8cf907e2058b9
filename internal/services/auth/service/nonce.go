package service

import (
	"time"

	"github.com/maypok86/otter"
)

const (
	// defaultNonceCap bounds replay-cache memory; oldest entries evict first
	defaultNonceCap = 10_000

	defaultNonceTTL = 5 * time.Minute
)

// NonceCache remembers recently seen request nonces for replay defense.
// Entries expire after the TTL; the signature skew window is narrower, so an
// evicted nonce is already stale by the time it could be replayed
type NonceCache struct {
	c otter.Cache[string, int64]
}

// NewNonceCache creates a bounded TTL cache of nonce keys.
// Builder errors are programmer errors (capacity and ttl are validated by the
// caller), so this panics like the Must-style builder it wraps
func NewNonceCache(capacity int, ttl time.Duration) *NonceCache {
	c, err := otter.MustBuilder[string, int64](capacity).
		WithTTL(ttl).
		Build()
	if err != nil {
		panic(err)
	}
	return &NonceCache{c: c}
}

// CheckAndInsert records key and reports whether it was fresh.
// The insert is atomic so concurrent replays of the same nonce race to a
// single winner
func (n *NonceCache) CheckAndInsert(key string, seenAt int64) bool {
	return n.c.SetIfAbsent(key, seenAt)
}

// Close releases the cache's background resources
func (n *NonceCache) Close() { n.c.Close() }
