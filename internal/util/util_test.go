package util

import (
	"testing"

	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/require"
)

func TestNextPow2(t *testing.T) {
	t.Parallel()

	cases := map[uint64]uint64{0: 1, 1: 1, 2: 2, 3: 4, 5: 8, 64: 64, 65: 128}
	for in, want := range cases {
		require.Equalf(t, want, NextPow2(in), "NextPow2(%d)", in)
	}
	require.Equal(t, uint64(1<<63), NextPow2(1<<63+1))
}

func TestShardCount(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1, ShardCount(1))
	require.Equal(t, 4, ShardCount(3))
	require.Equal(t, 256, ShardCount(1000))
	require.True(t, IsPowerOfTwo(uint64(ShardCount(0))))
}

func TestShardIndex(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, ShardIndex(12345, 1))
	require.Equal(t, 5, ShardIndex(13, 8))
	require.Equal(t, 1, ShardIndex(13, 3))
}

func TestFnv64a_StableAcrossCalls(t *testing.T) {
	t.Parallel()

	require.Equal(t, Fnv64a("key"), Fnv64a("key"))
	require.NotEqual(t, Fnv64a("a"), Fnv64a("b"))
	require.Equal(t, Fnv64a(42), Fnv64a(42))
	require.Panics(t, func() { Fnv64a(struct{ a int }{1}) })
}

func TestInvalidConfig(t *testing.T) {
	t.Parallel()

	err := InvalidConfig("capacity", 0, "capacity must be > 0, got %d", 0)
	require.Error(t, err)
	require.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
	require.Contains(t, err.Error(), "capacity must be > 0")
}
