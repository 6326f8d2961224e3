package limiter

import (
	"log/slog"
	"math"
	"time"

	"github.com/IvanBrykalov/hitcache/cache"
	"github.com/IvanBrykalov/hitcache/internal/util"
)

// DecayOptions configures a decay-score limiter.
type DecayOptions struct {
	// Capacity bounds the number of tracked keys.
	Capacity int
	// HalfLife is how long one unit of load takes to halve; 0 => default.
	HalfLife time.Duration
	// Limit is the highest score that is still allowed.
	Limit float64

	Clock   cache.Clock
	Metrics Metrics
	Logger  *slog.Logger
}

// Decay is a leaky-bucket style limiter over a decay cache's scores.
type Decay[K comparable] struct {
	scores  *cache.DecayCache[K, struct{}]
	limit   float64
	metrics Metrics
	log     *slog.Logger
}

// NewDecay validates opt and builds a Decay limiter.
func NewDecay[K comparable](opt DecayOptions) (*Decay[K], error) {
	if !(opt.Limit > 0) || math.IsInf(opt.Limit, 0) {
		return nil, util.InvalidConfig("limit", opt.Limit, "limiter: limit must be a positive number, got %v", opt.Limit)
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Logger == nil {
		opt.Logger = slog.New(slog.DiscardHandler)
	}
	scores, err := cache.NewDecay(cache.Options[K, struct{}]{
		Capacity: opt.Capacity,
		Clock:    opt.Clock,
		Logger:   opt.Logger,
	}, opt.HalfLife)
	if err != nil {
		return nil, err
	}
	return &Decay[K]{scores: scores, limit: opt.Limit, metrics: opt.Metrics, log: opt.Logger}, nil
}

// Hit adds one unit of load to k and reports whether its score is within
// the limit. A key seen for the first time scores 1.
func (d *Decay[K]) Hit(k K) bool {
	score := d.scores.Hit(k)
	if score == 0 {
		d.scores.Set(k, struct{}{})
		score = 1
	}
	if score <= d.limit {
		d.metrics.Allow()
		return true
	}
	d.metrics.Deny()
	d.log.Debug("rate limit exceeded", "key", k, "score", score)
	return false
}

// Len returns the number of tracked keys.
func (d *Decay[K]) Len() int { return d.scores.Len() }
