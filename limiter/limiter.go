package limiter

import (
	"sync"

	"github.com/jmgilman/go/errors"
)

// RateLimiter decides whether one more event for k is allowed now.
type RateLimiter[K comparable] interface {
	Hit(k K) bool
}

// Metrics receives one signal per decision. NoopMetrics is the default.
type Metrics interface {
	Allow()
	Deny()
}

// NoopMetrics is a Metrics implementation that does nothing.
type NoopMetrics struct{}

func (NoopMetrics) Allow() {}
func (NoopMetrics) Deny()  {}

var _ Metrics = NoopMetrics{}

// Check calls l.Hit(k) and turns a denial into a RATE_LIMIT_EXCEEDED error
// tagged with the key.
func Check[K comparable](l RateLimiter[K], k K) error {
	if l.Hit(k) {
		return nil
	}
	return errors.WithContext(
		errors.New(errors.CodeRateLimit, "limiter: rate exceeded"),
		"key", k,
	)
}

type locked[K comparable] struct {
	mu sync.Mutex
	l  RateLimiter[K]
}

// Locked serializes every Hit on l behind a single mutex.
func Locked[K comparable](l RateLimiter[K]) RateLimiter[K] {
	return &locked[K]{l: l}
}

func (l *locked[K]) Hit(k K) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.l.Hit(k)
}
