package limiter

import (
	"math"
	"testing"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/require"
)

func newDecayLimiter(t *testing.T, clk *fakeClock, limit float64) *Decay[string] {
	t.Helper()
	d, err := NewDecay[string](DecayOptions{
		Capacity: 8,
		HalfLife: time.Second,
		Limit:    limit,
		Clock:    clk,
	})
	require.NoError(t, err)
	return d
}

// Each hit adds one unit; with no elapsed time the score runs 1, 2, 3, ...
func TestDecay_BurstUpToLimit(t *testing.T) {
	t.Parallel()

	d := newDecayLimiter(t, &fakeClock{}, 3)
	require.True(t, d.Hit("k"))  // 1
	require.True(t, d.Hit("k"))  // 2
	require.True(t, d.Hit("k"))  // 3
	require.False(t, d.Hit("k")) // 4
	require.Equal(t, 1, d.Len())
}

// Load halves every half-life, so capacity comes back over time.
func TestDecay_LeaksOverTime(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{}
	d := newDecayLimiter(t, clk, 3)
	for i := 0; i < 4; i++ {
		d.Hit("k")
	}
	// four hits leave a score of 4; two half-lives later it is 1, +1 = 2
	clk.add(2 * time.Second)
	require.True(t, d.Hit("k"))
}

func TestDecay_NewKeyScoresOne(t *testing.T) {
	t.Parallel()

	d := newDecayLimiter(t, &fakeClock{}, 1)
	require.True(t, d.Hit("a"))
	require.True(t, d.Hit("b"))
	require.False(t, d.Hit("a"))
}

func TestNewDecay_Validation(t *testing.T) {
	t.Parallel()

	cases := map[string]DecayOptions{
		"zero limit":     {Capacity: 1},
		"negative limit": {Capacity: 1, Limit: -1},
		"nan limit":      {Capacity: 1, Limit: math.NaN()},
		"inf limit":      {Capacity: 1, Limit: math.Inf(1)},
		"zero capacity":  {Limit: 1},
		"bad half-life":  {Capacity: 1, Limit: 1, HalfLife: -time.Second},
	}
	for name, opt := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewDecay[string](opt)
			require.Error(t, err)
			require.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
		})
	}
}
