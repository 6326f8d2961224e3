package cache

import (
	"time"

	"github.com/IvanBrykalov/hitcache/internal/util"
	"github.com/IvanBrykalov/hitcache/policy"
	"github.com/IvanBrykalov/hitcache/policy/decay"
)

// DecayCache is a Cache ordered by the decay policy. Besides the Store
// contract it exposes Hit, a direct score query used by score-threshold
// consumers such as limiter.Decay.
type DecayCache[K comparable, V any] struct {
	*Cache[K, V]
	scorer policy.Scorer
}

// NewDecay builds a decay-ordered cache. halfLife == 0 selects
// decay.DefaultHalfLife; a negative halfLife is invalid. Options.Policy is
// ignored.
func NewDecay[K comparable, V any](opt Options[K, V], halfLife time.Duration) (*DecayCache[K, V], error) {
	if halfLife < 0 {
		return nil, util.InvalidConfig("half_life", halfLife,
			"cache: half-life must be >= 0, got %s", halfLife)
	}
	opt.Policy = decay.New(halfLife)
	c, err := New(opt)
	if err != nil {
		return nil, err
	}
	return &DecayCache[K, V]{Cache: c, scorer: c.pol.(policy.Scorer)}, nil
}

// Hit decays k's score, adds one hit and returns the result without
// reordering the chain. It returns 0 if k is absent. Expiry is not checked.
func (c *DecayCache[K, V]) Hit(k K) float64 {
	r, ok := c.m[k]
	if !ok {
		return 0
	}
	return c.scorer.Bump(r)
}
