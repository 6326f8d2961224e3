// Package decay implements an ordering policy driven by a decaying interest
// score.
//
// Every entry carries a score that halves every half-life of inactivity and
// grows by one per read. The chain is kept in descending score order, so the
// entry evicted under capacity pressure (Prev(Tail)) is the coldest one.
// Scores are refreshed lazily: only the entries a policy step walks over are
// recomputed.
package decay

import (
	"math"
	"time"

	"github.com/IvanBrykalov/hitcache/policy"
)

// DefaultHalfLife is used when a non-positive half-life is requested.
const DefaultHalfLife = 5 * time.Minute

type decayPolicy struct {
	halfLife time.Duration
}

// New returns a Policy factory for the given half-life.
// A non-positive halfLife falls back to DefaultHalfLife.
func New(halfLife time.Duration) policy.Policy {
	if halfLife <= 0 {
		halfLife = DefaultHalfLife
	}
	return decayPolicy{halfLife: halfLife}
}

// New implements policy.Policy.
func (p decayPolicy) New(ch policy.Chain, clk policy.Clock) policy.ChainPolicy {
	return &decay{ch: ch, clk: clk, halfLife: float64(p.halfLife)}
}

type decay struct {
	ch       policy.Chain
	clk      policy.Clock
	halfLife float64 // nanoseconds
}

// rescore brings m up to now: s' = s * 2^((last-now)/halfLife).
// A zero score stays zero.
func rescore(m *policy.Meta, now int64, halfLife float64) {
	delta := float64(m.LastUpdate-now) / halfLife
	m.LastUpdate = now
	if m.Score == 0 {
		return
	}
	m.Score *= math.Exp2(delta)
}

// Attach gives the entry a score of 1 and inserts it before the first entry
// whose decayed score drops below 1. Every entry walked over is rescored in
// place.
func (d *decay) Attach(r policy.Ref) {
	now := d.clk.NowUnixNano()
	m := d.ch.Meta(r)
	m.Score = 1
	m.LastUpdate = now

	next := d.ch.Next(policy.Head)
	for next != policy.Tail {
		nm := d.ch.Meta(next)
		rescore(nm, now, d.halfLife)
		if nm.Score < 1 {
			break
		}
		next = d.ch.Next(next)
	}
	d.ch.InsertAfter(d.ch.Prev(next), r)
}

// Hit decays the entry, adds one, and moves it toward Head past every entry
// with a lower (stored, not recomputed) score.
func (d *decay) Hit(r policy.Ref) {
	m := d.ch.Meta(r)
	rescore(m, d.clk.NowUnixNano(), d.halfLife)
	m.Score++

	prev := d.ch.Prev(r)
	for prev != policy.Head && d.ch.Meta(prev).Score < m.Score {
		prev = d.ch.Prev(prev)
	}
	if prev != d.ch.Prev(r) {
		d.ch.Unlink(r)
		d.ch.InsertAfter(prev, r)
	}
}

// Bump decays the entry, adds one and returns the new score. Chain order is
// left alone.
func (d *decay) Bump(r policy.Ref) float64 {
	m := d.ch.Meta(r)
	rescore(m, d.clk.NowUnixNano(), d.halfLife)
	m.Score++
	return m.Score
}

var _ policy.Scorer = (*decay)(nil)
