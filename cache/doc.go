// Package cache provides a bounded in-process key/value cache with a
// pluggable ordering policy, lazy per-entry TTL, and a decay-score variant
// used as the state store for the rate limiters in package limiter.
//
// # Design
//
//   - Storage: an arena of entries addressed by policy.Ref. Slots 0 and 1 are
//     permanent Head/Tail sentinels; live entries form one doubly linked chain
//     between them. A map[K]Ref is the only keyed path into the arena.
//
//   - Ordering: a policy.Policy (LRU by default, or decay) decides where a new
//     or read entry sits in the chain. Head is the entry most worth keeping,
//     Prev(Tail) the first to go.
//
//   - Capacity: inserting a new key into a full cache evicts Prev(Tail) first,
//     so Len() never exceeds Capacity(), not even transiently. Updating an
//     existing key never evicts and never reorders.
//
//   - TTL: entries can carry a deadline. Expiration is lazy: Get and Contains
//     drop an expired entry and report a miss. There is no background sweeper.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict/Size signals. NoopMetrics
//     is the default; metrics/prom exports them to Prometheus.
//
// # Basic usage
//
//	c, err := cache.New[string, []byte](cache.Options[string, []byte]{Capacity: 10_000})
//	if err != nil {
//	    return err
//	}
//	c.Set("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v
//	}
//	c.Remove("a")
//
// # Decay ordering
//
//	d, _ := cache.NewDecay[string, int](cache.Options[string, int]{Capacity: 1024}, time.Minute)
//	d.Set("k", 1)
//	score := d.Hit("k") // decayed score + 1, chain order untouched
//
// # Thread-safety
//
// Cache and DecayCache assume a single logical owner. Concurrent callers must
// serialize access themselves; Sharded does that with one mutex per shard.
package cache
