package cache

import (
	"log/slog"
	"math"
	"time"

	"github.com/IvanBrykalov/hitcache/internal/util"
	"github.com/IvanBrykalov/hitcache/policy"
	"github.com/IvanBrykalov/hitcache/policy/lru"
)

// Cache is a bounded key/value store whose entries are kept in a single
// policy-ordered chain. It is not safe for concurrent use.
type Cache[K comparable, V any] struct {
	m     map[K]policy.Ref
	nodes []node[K, V] // nodes[Head], nodes[Tail] are sentinels
	free  []policy.Ref
	cap   int

	pol policy.ChainPolicy
	opt Options[K, V]
}

// New constructs a cache with the provided Options.
// Capacity must be > 0; anything else is an INVALID_CONFIGURATION error.
func New[K comparable, V any](opt Options[K, V]) (*Cache[K, V], error) {
	if opt.Capacity <= 0 {
		return nil, util.InvalidConfig("capacity", opt.Capacity,
			"cache: capacity must be > 0, got %d", opt.Capacity)
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Policy == nil {
		opt.Policy = lru.New()
	}
	if opt.Clock == nil {
		opt.Clock = WallClock
	}
	if opt.Logger == nil {
		opt.Logger = slog.New(slog.DiscardHandler)
	}

	c := &Cache[K, V]{
		m:     make(map[K]policy.Ref, min(opt.Capacity, 1<<16)),
		nodes: make([]node[K, V], 2, min(opt.Capacity, 1<<16)+2),
		cap:   opt.Capacity,
		opt:   opt,
	}
	c.nodes[policy.Head].prev, c.nodes[policy.Head].next = policy.Head, policy.Tail
	c.nodes[policy.Tail].prev, c.nodes[policy.Tail].next = policy.Head, policy.Tail
	c.pol = opt.Policy.New(chainHooks[K, V]{c: c}, opt.Clock)
	return c, nil
}

// Set inserts or updates k→v with no TTL.
func (c *Cache[K, V]) Set(k K, v V) { c.SetWithTTL(k, v, 0) }

// SetWithTTL inserts or updates k→v. A non-positive ttl clears the expiry;
// a deadline past the clock's range saturates.
//
// A new key is handed to the policy's Attach; if the cache is full the
// lowest-priority entry is evicted first. An existing key keeps its chain
// position: only value, expiry and last-update time change.
func (c *Cache[K, V]) SetWithTTL(k K, v V, ttl time.Duration) {
	now := c.opt.Clock.NowUnixNano()
	var exp int64
	if ttl > 0 {
		exp = now + int64(ttl)
		if exp < now {
			exp = math.MaxInt64
		}
	}

	if r, ok := c.m[k]; ok {
		n := &c.nodes[r]
		n.val = v
		n.exp = exp
		n.meta.LastUpdate = now
		return
	}

	for len(c.m) >= c.cap {
		victim := c.nodes[policy.Tail].prev
		if victim == policy.Head {
			break
		}
		c.evict(victim, EvictCapacity)
	}

	r := c.alloc()
	c.nodes[r] = node[K, V]{
		key:  k,
		val:  v,
		prev: r,
		next: r,
		exp:  exp,
		meta: policy.Meta{LastUpdate: now},
	}
	c.m[k] = r
	c.pol.Attach(r)
	c.opt.Metrics.Size(len(c.m))
}

// Get returns the value for k and a presence flag. An expired entry is
// evicted and reported as a miss; a live one is passed to the policy's Hit.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	r, ok := c.lookup(k)
	if !ok {
		c.opt.Metrics.Miss()
		var zero V
		return zero, false
	}
	c.pol.Hit(r)
	c.opt.Metrics.Hit()
	return c.nodes[r].val, true
}

// Contains reports whether k is present and unexpired. It applies the same
// lazy expiry as Get but never reorders the chain.
func (c *Cache[K, V]) Contains(k K) bool {
	_, ok := c.lookup(k)
	return ok
}

// Remove deletes k if present.
func (c *Cache[K, V]) Remove(k K) {
	r, ok := c.m[k]
	if !ok {
		return
	}
	c.unlink(r)
	delete(c.m, k)
	c.release(r)
	c.opt.Metrics.Size(len(c.m))
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int { return len(c.m) }

// Capacity returns the entry limit.
func (c *Cache[K, V]) Capacity() int { return c.cap }

// Keys returns resident keys in chain order, most worth keeping first.
// Expired entries that have not been touched yet are included.
func (c *Cache[K, V]) Keys() []K {
	out := make([]K, 0, len(c.m))
	for r := c.nodes[policy.Head].next; r != policy.Tail; r = c.nodes[r].next {
		out = append(out, c.nodes[r].key)
	}
	return out
}

// -------------------- internals --------------------

// lookup resolves k, evicting it if expired.
func (c *Cache[K, V]) lookup(k K) (policy.Ref, bool) {
	r, ok := c.m[k]
	if !ok {
		return 0, false
	}
	if exp := c.nodes[r].exp; exp != 0 && exp < c.opt.Clock.NowUnixNano() {
		c.evict(r, EvictTTL)
		return 0, false
	}
	return r, true
}

func (c *Cache[K, V]) alloc() policy.Ref {
	if n := len(c.free); n > 0 {
		r := c.free[n-1]
		c.free = c.free[:n-1]
		return r
	}
	c.nodes = append(c.nodes, node[K, V]{})
	return policy.Ref(len(c.nodes) - 1)
}

// release zeroes the slot so the arena does not pin evicted values.
func (c *Cache[K, V]) release(r policy.Ref) {
	c.nodes[r] = node[K, V]{}
	c.free = append(c.free, r)
}

func (c *Cache[K, V]) insertAfter(at, x policy.Ref) {
	next := c.nodes[at].next
	c.nodes[x].prev = at
	c.nodes[x].next = next
	c.nodes[next].prev = x
	c.nodes[at].next = x
}

func (c *Cache[K, V]) unlink(x policy.Ref) {
	n := &c.nodes[x]
	c.nodes[n.prev].next = n.next
	c.nodes[n.next].prev = n.prev
	n.prev, n.next = x, x
}

// evict removes r, reports it to metrics and calls OnEvict.
func (c *Cache[K, V]) evict(r policy.Ref, reason EvictReason) {
	n := c.nodes[r]
	c.unlink(r)
	delete(c.m, n.key)
	c.release(r)

	c.opt.Metrics.Evict(reason)
	c.opt.Metrics.Size(len(c.m))
	c.opt.Logger.Debug("cache eviction", "key", n.key, "reason", reason.String())
	if cb := c.opt.OnEvict; cb != nil {
		cb(n.key, n.val, reason)
	}
}

// -------------------- policy hooks --------------------

// chainHooks adapts the arena's link operations to policy.Chain.
type chainHooks[K comparable, V any] struct{ c *Cache[K, V] }

func (h chainHooks[K, V]) Next(r policy.Ref) policy.Ref   { return h.c.nodes[r].next }
func (h chainHooks[K, V]) Prev(r policy.Ref) policy.Ref   { return h.c.nodes[r].prev }
func (h chainHooks[K, V]) InsertAfter(at, x policy.Ref)   { h.c.insertAfter(at, x) }
func (h chainHooks[K, V]) Unlink(x policy.Ref)            { h.c.unlink(x) }
func (h chainHooks[K, V]) Meta(r policy.Ref) *policy.Meta { return &h.c.nodes[r].meta }
