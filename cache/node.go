package cache

import "github.com/IvanBrykalov/hitcache/policy"

// node is one arena slot. Links are Refs into the same arena, never
// pointers, so growing the arena cannot invalidate them.
type node[K comparable, V any] struct {
	key K
	val V

	prev policy.Ref
	next policy.Ref

	// Absolute expiration deadline in UnixNano. Zero means "no TTL".
	exp int64

	// Policy bookkeeping (decay score, last update).
	meta policy.Meta
}
