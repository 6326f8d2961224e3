package limiter

import (
	"log/slog"
	"slices"
	"time"

	"github.com/IvanBrykalov/hitcache/cache"
	"github.com/IvanBrykalov/hitcache/internal/util"
	"github.com/IvanBrykalov/hitcache/ring"
)

// WindowMode selects how Window treats buffers when a hit is denied.
type WindowMode int

const (
	// CheckThenCommit records a hit in every window or in none.
	CheckThenCommit WindowMode = iota
	// CommitEach records into windows in order until one is full; earlier
	// windows keep the timestamp of a denied hit.
	CommitEach
)

// String returns the config spelling of the mode.
func (m WindowMode) String() string {
	if m == CommitEach {
		return "commit-each"
	}
	return "check-then-commit"
}

// ParseWindowMode accepts "check-then-commit" (or "") and "commit-each".
func ParseWindowMode(s string) (WindowMode, error) {
	switch s {
	case "", "check-then-commit":
		return CheckThenCommit, nil
	case "commit-each":
		return CommitEach, nil
	}
	return 0, util.InvalidConfig("mode", s, "limiter: unknown window mode %q", s)
}

// MaxWindowLimit caps the hits allowed per timeframe. Each tracked key holds
// a buffer of limit+1 timestamps per timeframe, allocated on its first hit.
const MaxWindowLimit = 1 << 20

// WindowOptions configures a sliding-window limiter.
type WindowOptions struct {
	// Limits maps a timeframe to the number of hits allowed within it,
	// each in (0, MaxWindowLimit].
	Limits map[time.Duration]int

	// Capacity bounds the number of tracked keys.
	Capacity int

	// HalfLife of the decay cache holding per-key state; 0 => default.
	HalfLife time.Duration

	Mode    WindowMode
	Clock   cache.Clock
	Metrics Metrics
	Logger  *slog.Logger
}

type frame struct {
	span  int64 // nanoseconds
	limit int
}

// Window is a sliding-window limiter. Per-key state is a slice of ring
// buffers, one per timeframe, stored in a decay-ordered cache.
type Window[K comparable] struct {
	frames  []frame // ascending span
	state   *cache.DecayCache[K, []*ring.Buffer[int64]]
	mode    WindowMode
	clk     cache.Clock
	metrics Metrics
	log     *slog.Logger
}

// NewWindow validates opt and builds a Window.
func NewWindow[K comparable](opt WindowOptions) (*Window[K], error) {
	if len(opt.Limits) == 0 {
		return nil, util.InvalidConfig("limits", opt.Limits, "limiter: at least one timeframe is required")
	}
	frames := make([]frame, 0, len(opt.Limits))
	for span, limit := range opt.Limits {
		if span <= 0 {
			return nil, util.InvalidConfig("limits", span, "limiter: timeframe must be > 0, got %s", span)
		}
		if limit <= 0 || limit > MaxWindowLimit {
			return nil, util.InvalidConfig("limits", limit,
				"limiter: limit for %s must be in (0, %d], got %d", span, MaxWindowLimit, limit)
		}
		frames = append(frames, frame{span: int64(span), limit: limit})
	}
	slices.SortFunc(frames, func(a, b frame) int {
		switch {
		case a.span < b.span:
			return -1
		case a.span > b.span:
			return 1
		}
		return 0
	})
	if opt.Mode != CheckThenCommit && opt.Mode != CommitEach {
		return nil, util.InvalidConfig("mode", int(opt.Mode), "limiter: unknown window mode %d", int(opt.Mode))
	}
	if opt.Clock == nil {
		opt.Clock = cache.WallClock
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Logger == nil {
		opt.Logger = slog.New(slog.DiscardHandler)
	}

	state, err := cache.NewDecay(cache.Options[K, []*ring.Buffer[int64]]{
		Capacity: opt.Capacity,
		Clock:    opt.Clock,
		Logger:   opt.Logger,
	}, opt.HalfLife)
	if err != nil {
		return nil, err
	}

	return &Window[K]{
		frames:  frames,
		state:   state,
		mode:    opt.Mode,
		clk:     opt.Clock,
		metrics: opt.Metrics,
		log:     opt.Logger,
	}, nil
}

// Hit records one event for k and reports whether it fits every window.
func (w *Window[K]) Hit(k K) bool {
	bufs, ok := w.state.Get(k)
	if !ok {
		bufs = w.newState()
		w.state.Set(k, bufs)
	}

	now := w.clk.NowUnixNano()
	var allowed bool
	if w.mode == CommitEach {
		allowed = w.commitEach(bufs, now)
	} else {
		allowed = w.checkThenCommit(bufs, now)
	}

	if allowed {
		w.metrics.Allow()
	} else {
		w.metrics.Deny()
		w.log.Debug("rate limit exceeded", "key", k, "mode", w.mode.String())
	}
	return allowed
}

// Mode returns the configured WindowMode.
func (w *Window[K]) Mode() WindowMode { return w.mode }

// Len returns the number of tracked keys.
func (w *Window[K]) Len() int { return w.state.Len() }

func (w *Window[K]) commitEach(bufs []*ring.Buffer[int64], now int64) bool {
	for i, f := range w.frames {
		b := bufs[i]
		expire(b, now-f.span)
		if !b.Add(now) {
			return false
		}
	}
	return true
}

func (w *Window[K]) checkThenCommit(bufs []*ring.Buffer[int64], now int64) bool {
	full := false
	for i, f := range w.frames {
		b := bufs[i]
		expire(b, now-f.span)
		full = full || b.IsFull()
	}
	if full {
		return false
	}
	for _, b := range bufs {
		b.Add(now)
	}
	return true
}

func (w *Window[K]) newState() []*ring.Buffer[int64] {
	bufs := make([]*ring.Buffer[int64], len(w.frames))
	for i, f := range w.frames {
		b, err := ring.New[int64](f.limit + 1)
		if err != nil {
			panic(err) // limits are validated in NewWindow
		}
		bufs[i] = b
	}
	return bufs
}

// expire drops timestamps strictly older than cutoff.
func expire(b *ring.Buffer[int64], cutoff int64) {
	for {
		ts, ok := b.PeekFirst()
		if !ok || ts >= cutoff {
			return
		}
		b.Shift()
	}
}
