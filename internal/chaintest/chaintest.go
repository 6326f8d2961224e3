// Package chaintest provides a standalone policy.Chain for policy unit tests.
package chaintest

import (
	"github.com/IvanBrykalov/hitcache/policy"
)

type link struct {
	prev, next policy.Ref
	meta       policy.Meta
}

// Chain is a minimal arena-backed policy.Chain. Entries are allocated with
// Alloc and linked only by the policy under test.
type Chain struct {
	links []link

	Inserts int
	Unlinks int
}

// New returns an empty chain (Head <-> Tail).
func New() *Chain {
	c := &Chain{links: make([]link, 2)}
	c.links[policy.Head] = link{prev: policy.Head, next: policy.Tail}
	c.links[policy.Tail] = link{prev: policy.Head, next: policy.Tail}
	return c
}

// Alloc reserves a detached entry with the given LastUpdate time.
func (c *Chain) Alloc(now int64) policy.Ref {
	c.links = append(c.links, link{meta: policy.Meta{LastUpdate: now}})
	return policy.Ref(len(c.links) - 1)
}

func (c *Chain) Next(r policy.Ref) policy.Ref { return c.links[r].next }
func (c *Chain) Prev(r policy.Ref) policy.Ref { return c.links[r].prev }

func (c *Chain) InsertAfter(at, x policy.Ref) {
	next := c.links[at].next
	c.links[x].prev = at
	c.links[x].next = next
	c.links[next].prev = x
	c.links[at].next = x
	c.Inserts++
}

func (c *Chain) Unlink(x policy.Ref) {
	l := c.links[x]
	c.links[l.prev].next = l.next
	c.links[l.next].prev = l.prev
	c.links[x].prev, c.links[x].next = x, x
	c.Unlinks++
}

func (c *Chain) Meta(r policy.Ref) *policy.Meta { return &c.links[r].meta }

// Order returns live refs from Head to Tail.
func (c *Chain) Order() []policy.Ref {
	var out []policy.Ref
	for r := c.links[policy.Head].next; r != policy.Tail; r = c.links[r].next {
		out = append(out, r)
	}
	return out
}

// Clock is a settable policy.Clock.
type Clock struct{ T int64 }

func (c *Clock) NowUnixNano() int64 { return c.T }

var _ policy.Chain = (*Chain)(nil)
