package limiter

import (
	"sync"
	"testing"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type fakeClock struct {
	mu sync.Mutex
	t  int64
}

func (f *fakeClock) NowUnixNano() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) add(d time.Duration) {
	f.mu.Lock()
	f.t += int64(d)
	f.mu.Unlock()
}

type countingMetrics struct{ allow, deny int }

func (m *countingMetrics) Allow() { m.allow++ }
func (m *countingMetrics) Deny()  { m.deny++ }

func TestCheck(t *testing.T) {
	t.Parallel()

	l, err := NewWindow[string](WindowOptions{
		Limits:   map[time.Duration]int{time.Second: 1},
		Capacity: 4,
		Clock:    &fakeClock{},
	})
	require.NoError(t, err)

	require.NoError(t, Check[string](l, "k"))
	err = Check[string](l, "k")
	require.Error(t, err)
	require.Equal(t, errors.CodeRateLimit, errors.GetCode(err))
}

// Locked serializes concurrent callers; the total allowed count stays exact.
func TestLocked_ConcurrentHits(t *testing.T) {
	t.Parallel()

	w, err := NewWindow[string](WindowOptions{
		Limits:   map[time.Duration]int{time.Hour: 50},
		Capacity: 8,
		Clock:    &fakeClock{},
	})
	require.NoError(t, err)
	l := Locked[string](w)

	var mu sync.Mutex
	allowed := 0
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			for j := 0; j < 20; j++ {
				if l.Hit("shared") {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, 50, allowed)
}
