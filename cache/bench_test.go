package cache

import (
	"strconv"
	"testing"
	"time"

	"github.com/IvanBrykalov/hitcache/policy"
	"github.com/IvanBrykalov/hitcache/policy/decay"
	"github.com/IvanBrykalov/hitcache/policy/lru"
)

// benchmarkPutGet mirrors the classic put-then-get throughput run: a 2k key
// set cycled through caches of varying capacity.
func benchmarkPutGet(b *testing.B, pol policy.Policy, capacity int) {
	c, err := New(Options[string, string]{Capacity: capacity, Policy: pol})
	if err != nil {
		b.Fatal(err)
	}
	keys := make([]string, 2000)
	for i := range keys {
		keys[i] = strconv.Itoa(i + 1)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := keys[i%len(keys)]
		if i&1 == 0 {
			c.Set(k, k)
		} else {
			c.Get(k)
		}
	}
}

func BenchmarkLRU_Cap1000(b *testing.B)   { benchmarkPutGet(b, lru.New(), 1000) }
func BenchmarkLRU_Cap10000(b *testing.B)  { benchmarkPutGet(b, lru.New(), 10000) }
func BenchmarkDecay_Cap1000(b *testing.B) { benchmarkPutGet(b, decay.New(time.Minute), 1000) }
func BenchmarkDecay_Cap10000(b *testing.B) {
	benchmarkPutGet(b, decay.New(time.Minute), 10000)
}

func BenchmarkSharded_90r10w(b *testing.B) {
	c, err := NewSharded(Options[int, int]{Capacity: 100_000}, 0)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < 50_000; i++ {
		c.Set(i, 1)
	}
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			k := i & (1<<16 - 1)
			if i%10 == 0 {
				c.Set(k, 1)
			} else {
				c.Get(k)
			}
			i++
		}
	})
}
