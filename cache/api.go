package cache

import "time"

// Store is the key/value contract shared by Cache, DecayCache and Sharded.
type Store[K comparable, V any] interface {
	// Set inserts or updates k→v with no TTL.
	Set(k K, v V)

	// SetWithTTL inserts or updates k→v with a relative TTL.
	// A non-positive ttl clears any expiry on the entry.
	SetWithTTL(k K, v V, ttl time.Duration)

	// Get returns the value for k and a presence flag.
	// On hit, the entry is repositioned according to the policy.
	Get(k K) (V, bool)

	// Contains reports whether k is present and unexpired without
	// repositioning it.
	Contains(k K) bool

	// Remove deletes k if present. Removing an absent key is a no-op.
	Remove(k K)

	// Len returns the number of resident entries.
	Len() int

	// Capacity returns the entry limit.
	Capacity() int
}

var (
	_ Store[string, int] = (*Cache[string, int])(nil)
	_ Store[string, int] = (*DecayCache[string, int])(nil)
	_ Store[string, int] = (*Sharded[string, int])(nil)
)
