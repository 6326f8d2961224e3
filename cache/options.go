package cache

import (
	"log/slog"
	"time"

	"github.com/IvanBrykalov/hitcache/policy"
)

// EvictReason explains why an entry was removed.
type EvictReason int

const (
	// EvictCapacity: dropped from Prev(Tail) to make room for a new key.
	EvictCapacity EvictReason = iota
	// EvictTTL: expired, noticed lazily on access.
	EvictTTL
)

// String returns a stable label for the reason.
func (r EvictReason) String() string {
	switch r {
	case EvictTTL:
		return "ttl"
	default:
		return "capacity"
	}
}

// Metrics exposes cache-level observability hooks.
// NoopMetrics is used by default.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	Size(entries int)
}

// Clock provides time in UnixNano; useful for deterministic tests.
type Clock = policy.Clock

type wallClock struct{}

func (wallClock) NowUnixNano() int64 { return time.Now().UnixNano() }

// WallClock is the default Clock backed by time.Now.
var WallClock Clock = wallClock{}

// Options configures a cache. Zero values are safe except Capacity;
// defaults are applied in New():
//   - nil Policy  => LRU
//   - nil Metrics => NoopMetrics
//   - nil Clock   => WallClock
//   - nil Logger  => discard
type Options[K comparable, V any] struct {
	// Capacity is the entry count limit. Must be > 0.
	Capacity int

	// Policy orders the chain; nil => LRU.
	Policy policy.Policy

	// OnEvict is called for every capacity or TTL eviction (not for Remove).
	OnEvict func(k K, v V, reason EvictReason)
	Metrics Metrics

	// Logger receives debug records for evictions.
	Logger *slog.Logger

	// Clock allows overriding the time source (tests).
	Clock Clock
}
