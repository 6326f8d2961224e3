// Package policy defines the contract between the cache and its ordering
// policies.
//
// The cache keeps every live entry in a single doubly linked chain between
// two permanent sentinels: Head (highest priority to keep) and Tail (lowest).
// When capacity is exceeded the cache always evicts Prev(Tail). A policy
// decides where entries sit in that chain; it never touches the key map.
package policy

// Ref addresses an entry slot in the cache's arena. Refs are stable for the
// lifetime of an entry and may be reused after the entry is removed.
type Ref int32

// Sentinel refs. They are never stored in the key map and never evicted.
const (
	Head Ref = 0
	Tail Ref = 1
)

// Meta is per-entry bookkeeping a policy may read and write in place.
type Meta struct {
	// Score is the decay score; unused by recency-only policies.
	Score float64
	// LastUpdate is the UnixNano time the entry was last written or rescored.
	LastUpdate int64
}

// Chain exposes O(1) list primitives implemented by the cache.
//
// Important: Chain manages only links; the cache owns the key->entry map and
// the entry count.
type Chain interface {
	// Next returns the entry after r (Tail's Next is Tail).
	Next(r Ref) Ref
	// Prev returns the entry before r (Head's Prev is Head).
	Prev(r Ref) Ref
	// InsertAfter links the detached entry x right after at.
	InsertAfter(at, x Ref)
	// Unlink detaches x from the chain.
	Unlink(x Ref)
	// Meta returns the mutable metadata of r.
	Meta(r Ref) *Meta
}

// Clock provides time in UnixNano.
type Clock interface{ NowUnixNano() int64 }

// ChainPolicy is a policy instance bound to one cache's chain.
//
// Semantics:
//   - Attach is called exactly once per new entry, after it is placed in the
//     key map, and must link it into the chain.
//   - Hit is called on a successful read and repositions the entry if its
//     priority changed.
type ChainPolicy interface {
	Attach(r Ref)
	Hit(r Ref)
}

// Scorer is implemented by policies that can report an entry's score.
// Bump applies one hit worth of weight to r and returns the new score
// without changing the chain order.
type Scorer interface {
	Bump(r Ref) float64
}

// Policy is a factory that binds a policy to a particular cache's chain.
type Policy interface {
	New(ch Chain, clk Clock) ChainPolicy
}
