package cache

import (
	"sync"
	"time"

	"github.com/IvanBrykalov/hitcache/internal/util"
)

// Sharded spreads keys over independent Caches, each guarded by its own
// mutex. It is the caller-side serialization for sharing a cache across
// goroutines: ordering and eviction stay per shard, not global.
type Sharded[K comparable, V any] struct {
	shards []*shard[K, V]
	hash   func(K) uint64
}

type shard[K comparable, V any] struct {
	mu sync.Mutex
	c  *Cache[K, V]

	// hot counters on separate cache lines
	_      util.CacheLinePad
	hits   util.PaddedAtomicInt64
	misses util.PaddedAtomicInt64
}

// Stats is a point-in-time snapshot of Sharded read counters.
type Stats struct {
	Hits   int64
	Misses int64
}

// NewSharded constructs a sharded cache. shards <= 0 picks a count from
// GOMAXPROCS; the count is always a power of two. opt.Capacity is split
// evenly across shards (rounded up). opt.Metrics and opt.OnEvict are shared
// by every shard and must be safe for concurrent use.
func NewSharded[K comparable, V any](opt Options[K, V], shards int) (*Sharded[K, V], error) {
	if opt.Capacity <= 0 {
		return nil, util.InvalidConfig("capacity", opt.Capacity,
			"cache: capacity must be > 0, got %d", opt.Capacity)
	}
	n := util.ShardCount(shards)
	perShard := (opt.Capacity + n - 1) / n // ceil

	s := &Sharded[K, V]{
		shards: make([]*shard[K, V], n),
		hash:   util.Fnv64a[K],
	}
	for i := range s.shards {
		o := opt
		o.Capacity = perShard
		c, err := New(o)
		if err != nil {
			return nil, err
		}
		s.shards[i] = &shard[K, V]{c: c}
	}
	return s, nil
}

func (s *Sharded[K, V]) shardFor(k K) *shard[K, V] {
	return s.shards[util.ShardIndex(s.hash(k), len(s.shards))]
}

// Set inserts or updates k→v with no TTL.
func (s *Sharded[K, V]) Set(k K, v V) { s.SetWithTTL(k, v, 0) }

// SetWithTTL inserts or updates k→v with a relative TTL.
func (s *Sharded[K, V]) SetWithTTL(k K, v V, ttl time.Duration) {
	sh := s.shardFor(k)
	sh.mu.Lock()
	sh.c.SetWithTTL(k, v, ttl)
	sh.mu.Unlock()
}

// Get returns the value for k. Reads reorder the shard's chain, so they
// take the exclusive lock.
func (s *Sharded[K, V]) Get(k K) (V, bool) {
	sh := s.shardFor(k)
	sh.mu.Lock()
	v, ok := sh.c.Get(k)
	sh.mu.Unlock()
	if ok {
		sh.hits.Add(1)
	} else {
		sh.misses.Add(1)
	}
	return v, ok
}

// Contains reports whether k is present and unexpired.
func (s *Sharded[K, V]) Contains(k K) bool {
	sh := s.shardFor(k)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.c.Contains(k)
}

// Remove deletes k if present.
func (s *Sharded[K, V]) Remove(k K) {
	sh := s.shardFor(k)
	sh.mu.Lock()
	sh.c.Remove(k)
	sh.mu.Unlock()
}

// Len returns the total number of resident entries across all shards.
func (s *Sharded[K, V]) Len() int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		total += sh.c.Len()
		sh.mu.Unlock()
	}
	return total
}

// Capacity returns the sum of shard capacities, which may exceed the
// requested capacity by up to one entry per shard.
func (s *Sharded[K, V]) Capacity() int {
	return len(s.shards) * s.shards[0].c.Capacity()
}

// Shards returns the number of shards.
func (s *Sharded[K, V]) Shards() int { return len(s.shards) }

// Stats sums hit/miss counters across shards.
func (s *Sharded[K, V]) Stats() Stats {
	var st Stats
	for _, sh := range s.shards {
		st.Hits += sh.hits.Load()
		st.Misses += sh.misses.Load()
	}
	return st
}
