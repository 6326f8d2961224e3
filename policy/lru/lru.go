// Package lru implements the LRU ordering policy.
package lru

import "github.com/IvanBrykalov/hitcache/policy"

// lru is a classic "move-to-front" Least-Recently-Used policy.
// The most recently touched entry sits right after Head, so the cache's
// eviction of Prev(Tail) removes the least recently touched one.
type lru struct {
	ch policy.Chain
}

type lruPolicy struct{}

// New returns a Policy factory that constructs LRU instances.
func New() policy.Policy { return lruPolicy{} }

// New implements policy.Policy. LRU ignores the clock.
func (lruPolicy) New(ch policy.Chain, _ policy.Clock) policy.ChainPolicy {
	return &lru{ch: ch}
}

// Attach places the new entry at MRU.
func (p *lru) Attach(r policy.Ref) { p.ch.InsertAfter(policy.Head, r) }

// Hit promotes the entry to MRU.
func (p *lru) Hit(r policy.Ref) {
	if p.ch.Next(policy.Head) == r {
		return
	}
	p.ch.Unlink(r)
	p.ch.InsertAfter(policy.Head, r)
}
