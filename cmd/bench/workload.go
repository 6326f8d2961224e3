package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/hitcache/cache"
	"github.com/IvanBrykalov/hitcache/limiter"
	"github.com/IvanBrykalov/hitcache/policy"
	"github.com/IvanBrykalov/hitcache/policy/decay"
	"github.com/IvanBrykalov/hitcache/policy/lru"
)

func newPolicy(name string) policy.Policy {
	if name == "decay" {
		return decay.New(decay.DefaultHalfLife)
	}
	return lru.New()
}

type throughputConfig struct {
	policy     string
	capacities []int
	ops        int
	workers    int
	shards     int
	seed       int64
	metrics    cache.Metrics
}

// runThroughput cycles a 2k key set through caches of each capacity and
// prints read/write operations per second.
func runThroughput(w io.Writer, log *slog.Logger, cfg throughputConfig) error {
	keys := make([]string, 1999)
	for i := range keys {
		keys[i] = strconv.Itoa(i + 1)
	}
	r := rand.New(rand.NewSource(cfg.seed))
	values := make([]string, 3999)
	for i := range values {
		values[i] = strconv.Itoa(r.Intn(99_999_999))
	}

	fmt.Fprintf(w, "%s:\n", cfg.policy)
	minRead, minWrite := -1.0, -1.0
	for _, capacity := range cfg.capacities {
		opt := cache.Options[string, string]{
			Capacity: capacity,
			Policy:   newPolicy(cfg.policy),
			Metrics:  cfg.metrics,
			Logger:   log,
		}
		var store cache.Store[string, string]
		var err error
		if cfg.workers > 1 {
			store, err = cache.NewSharded(opt, cfg.shards)
		} else {
			store, err = cache.New(opt)
		}
		if err != nil {
			return err
		}

		write := measure(cfg.ops, cfg.workers, func(i int) {
			store.Set(keys[i%len(keys)], values[(i*7)%len(values)])
		})
		read := measure(cfg.ops, cfg.workers, func(i int) {
			store.Get(keys[i%len(keys)])
		})
		if minWrite < 0 || write < minWrite {
			minWrite = write
		}
		if minRead < 0 || read < minRead {
			minRead = read
		}
		fmt.Fprintf(w, "  cap=%-8d read=%.0f/s write=%.0f/s len=%d\n", capacity, read, write, store.Len())
	}
	fmt.Fprintf(w, "slowest: %.2f write/s - %.2f read/s\n", minWrite, minRead)
	return nil
}

// measure runs fn ops times split across workers and returns ops/second.
func measure(ops, workers int, fn func(i int)) float64 {
	start := time.Now()
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := w; i < ops; i += workers {
				fn(i)
			}
			return nil
		})
	}
	_ = g.Wait()
	elapsed := time.Since(start)
	if elapsed <= 0 {
		elapsed = time.Nanosecond
	}
	return float64(ops) / elapsed.Seconds()
}

// runVerify fills a cache with random puts from a keyspace twice its
// capacity. Every put must read back immediately, and at the end of each
// round Len must equal min(distinct keys ever written, capacity).
func runVerify(w io.Writer, policyName string, capacity, loops int, seed int64) (int, error) {
	c, err := cache.New(cache.Options[string, string]{Capacity: capacity, Policy: newPolicy(policyName)})
	if err != nil {
		return 0, err
	}
	r := rand.New(rand.NewSource(seed))

	passed := 0
	all := map[string]bool{}
	for i := 0; i < loops; i++ {
		ok := true
		for j := 0; j < capacity; j++ {
			k := strconv.Itoa(1 + r.Intn(2*capacity-1))
			v := strconv.Itoa(r.Intn(99_999_999))
			all[k] = true
			c.Set(k, v)
			if got, hit := c.Get(k); ok && (!hit || got != v) {
				fmt.Fprintf(w, "  %s: got %q want %q\n", k, got, v)
				ok = false
			}
		}
		if ok && c.Len() == min(len(all), capacity) {
			passed++
		} else {
			fmt.Fprintf(w, "  failed at step %d (len=%d)\n", i, c.Len())
		}
	}
	fmt.Fprintf(w, "%s: passed %d/%d\n", policyName, passed, loops)
	return passed, nil
}

type limiterWorkload struct {
	workers int
	keys    int
	zipfS   float64
	seed    int64
	metrics limiter.Metrics
}

// runLimiter hits a shared limiter with Zipf-distributed keys until ctx is
// done and reports the allow/deny split.
func runLimiter(ctx context.Context, w io.Writer, log *slog.Logger, cfg limiterConfig, wl limiterWorkload) error {
	base, err := cfg.build(wl.metrics)
	if err != nil {
		return err
	}
	l := limiter.Locked(base)
	log.Info("limiter workload", "kind", cfg.Kind, "mode", cfg.Mode, "capacity", cfg.Capacity, "workers", wl.workers)

	var allowed, denied atomic.Uint64
	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for id := 0; id < wl.workers; id++ {
		g.Go(func() error {
			r := rand.New(rand.NewSource(wl.seed + int64(id)*9973))
			z := rand.NewZipf(r, wl.zipfS, 1, uint64(max(wl.keys-1, 1)))
			for ctx.Err() == nil {
				if l.Hit("k:" + strconv.FormatUint(z.Uint64(), 10)) {
					allowed.Add(1)
				} else {
					denied.Add(1)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	a, d := allowed.Load(), denied.Load()
	total := a + d
	fmt.Fprintf(w, "kind=%s workers=%d keys=%d dur=%v\n", cfg.Kind, wl.workers, wl.keys, elapsed)
	fmt.Fprintf(w, "hits=%d (%.0f/s) allowed=%d denied=%d\n", total, float64(total)/elapsed.Seconds(), a, d)
	return nil
}
