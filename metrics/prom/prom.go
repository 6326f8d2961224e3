// Package prom exports cache and limiter signals as Prometheus metrics.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/IvanBrykalov/hitcache/cache"
	"github.com/IvanBrykalov/hitcache/limiter"
)

// Adapter implements cache.Metrics and exports Prometheus counters/gauges.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	hits    prometheus.Counter
	misses  prometheus.Counter
	evicts  *prometheus.CounterVec
	entries prometheus.Gauge
}

// New constructs a cache metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hits_total",
			Help:        "Cache hits",
			ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "Cache misses",
			ConstLabels: constLabels,
		}),
		evicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "evictions_total",
				Help:        "Cache evictions by reason",
				ConstLabels: constLabels,
			},
			[]string{"reason"},
		),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "size_entries",
			Help:        "Number of resident entries",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.evicts, a.entries)
	return a
}

// Hit increments the hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// Evict increments the eviction counter with a reason label.
func (a *Adapter) Evict(r cache.EvictReason) {
	a.evicts.WithLabelValues(r.String()).Inc()
}

// Size sets the resident-entries gauge. With a Sharded cache each shard
// reports its own size, so the gauge reflects the last shard written.
func (a *Adapter) Size(entries int) {
	a.entries.Set(float64(entries))
}

var _ cache.Metrics = (*Adapter)(nil)

// LimiterAdapter implements limiter.Metrics as a decisions counter labelled
// allow/deny.
type LimiterAdapter struct {
	allow prometheus.Counter
	deny  prometheus.Counter
}

// NewLimiter constructs a limiter metrics adapter; arguments as for New.
func NewLimiter(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *LimiterAdapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	decisions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "decisions_total",
			Help:        "Rate limiter decisions",
			ConstLabels: constLabels,
		},
		[]string{"decision"},
	)
	reg.MustRegister(decisions)
	return &LimiterAdapter{
		allow: decisions.WithLabelValues("allow"),
		deny:  decisions.WithLabelValues("deny"),
	}
}

// Allow counts an allowed hit.
func (a *LimiterAdapter) Allow() { a.allow.Inc() }

// Deny counts a denied hit.
func (a *LimiterAdapter) Deny() { a.deny.Inc() }

var _ limiter.Metrics = (*LimiterAdapter)(nil)
