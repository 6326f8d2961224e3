// Command bench measures cache throughput, checks cache consistency, and
// drives a rate-limiter workload, optionally exporting Prometheus metrics.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	pmet "github.com/IvanBrykalov/hitcache/metrics/prom"
)

func main() {
	var (
		mode   = flag.String("mode", "cache", "workload: cache | verify | limiter")
		policy = flag.String("policy", "all", "eviction policy: lru | decay | all")

		caps     = flag.String("caps", "1000,10000,100000,1000000", "comma-separated cache capacities")
		ops      = flag.Int("ops", 1_000_000, "put and get operations per capacity")
		workers  = flag.Int("workers", 1, "worker goroutines (>1 uses a sharded cache)")
		shards   = flag.Int("shards", 0, "number of shards when workers > 1 (0=auto)")
		loops    = flag.Int("loops", 1000, "verify rounds")
		duration = flag.Duration("duration", 5*time.Second, "limiter workload duration")
		keys     = flag.Int("keys", 100_000, "limiter keyspace size")
		zipfS    = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		seed     = flag.Int64("seed", time.Now().UnixNano(), "random seed")

		configPath  = flag.String("config", "", "limiter YAML config (empty = built-in default)")
		metricsAddr = flag.String("http", "", "serve Prometheus metrics at addr; empty = disabled")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *metricsAddr != "" {
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Info("metrics: serving", "addr", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				log.Error("metrics server stopped", "err", err)
			}
		}()
	}

	policies, err := parsePolicies(*policy)
	if err != nil {
		fail(log, err)
	}

	switch *mode {
	case "cache":
		capacities, err := parseCaps(*caps)
		if err != nil {
			fail(log, err)
		}
		m := pmet.New(nil, "hitcache", "bench", nil)
		for _, p := range policies {
			if err := runThroughput(os.Stdout, log, throughputConfig{
				policy:     p,
				capacities: capacities,
				ops:        *ops,
				workers:    max(*workers, 1),
				shards:     *shards,
				seed:       *seed,
				metrics:    m,
			}); err != nil {
				fail(log, err)
			}
		}
	case "verify":
		failed := 0
		for _, p := range policies {
			passed, err := runVerify(os.Stdout, p, 1000, *loops, *seed)
			if err != nil {
				fail(log, err)
			}
			failed += *loops - passed
		}
		if failed > 0 {
			os.Exit(1)
		}
	case "limiter":
		cfg, err := loadLimiterConfig(*configPath)
		if err != nil {
			fail(log, err)
		}
		m := pmet.NewLimiter(nil, "hitcache", "limiter", nil)
		ctx, cancel := context.WithTimeout(context.Background(), *duration)
		defer cancel()
		if err := runLimiter(ctx, os.Stdout, log, cfg, limiterWorkload{
			workers: max(*workers, runtime.GOMAXPROCS(0)),
			keys:    *keys,
			zipfS:   *zipfS,
			seed:    *seed,
			metrics: m,
		}); err != nil {
			fail(log, err)
		}
	default:
		fail(log, fmt.Errorf("unknown mode %q (use cache, verify or limiter)", *mode))
	}
}

func fail(log *slog.Logger, err error) {
	log.Error("bench failed", "err", err)
	os.Exit(2)
}

func parsePolicies(s string) ([]string, error) {
	switch s {
	case "all":
		return []string{"lru", "decay"}, nil
	case "lru", "decay":
		return []string{s}, nil
	}
	return nil, fmt.Errorf("unknown policy %q (use lru, decay or all)", s)
}

func parseCaps(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("capacity %q: %w", f, err)
		}
		out = append(out, n)
	}
	return out, nil
}
