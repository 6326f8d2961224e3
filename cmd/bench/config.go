package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/IvanBrykalov/hitcache/limiter"
)

// limiterConfig is the YAML shape accepted by -config.
//
//	kind: window            # or decay
//	mode: check-then-commit # window only
//	capacity: 10000
//	half_life: 5m
//	limit: 20               # decay only
//	windows:                # window only
//	  1s: 10
//	  1m: 100
type limiterConfig struct {
	Kind     string         `yaml:"kind"`
	Mode     string         `yaml:"mode"`
	Capacity int            `yaml:"capacity"`
	HalfLife time.Duration  `yaml:"half_life"`
	Limit    float64        `yaml:"limit"`
	Windows  map[string]int `yaml:"windows"`
}

func defaultLimiterConfig() limiterConfig {
	return limiterConfig{
		Kind:     "window",
		Capacity: 10_000,
		Windows:  map[string]int{"1s": 10, "1m": 100},
	}
}

func loadLimiterConfig(path string) (limiterConfig, error) {
	cfg := defaultLimiterConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read limiter config: %w", err)
	}
	return parseLimiterConfig(raw)
}

func parseLimiterConfig(raw []byte) (limiterConfig, error) {
	cfg := limiterConfig{Kind: "window", Capacity: 10_000}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse limiter config: %w", err)
	}
	return cfg, nil
}

// build turns the config into a limiter. Field validation is left to the
// limiter constructors.
func (c limiterConfig) build(m limiter.Metrics) (limiter.RateLimiter[string], error) {
	switch c.Kind {
	case "window":
		mode, err := limiter.ParseWindowMode(c.Mode)
		if err != nil {
			return nil, err
		}
		limits := make(map[time.Duration]int, len(c.Windows))
		for span, n := range c.Windows {
			d, err := time.ParseDuration(span)
			if err != nil {
				return nil, fmt.Errorf("window %q: %w", span, err)
			}
			limits[d] = n
		}
		return limiter.NewWindow[string](limiter.WindowOptions{
			Limits:   limits,
			Capacity: c.Capacity,
			HalfLife: c.HalfLife,
			Mode:     mode,
			Metrics:  m,
		})
	case "decay":
		return limiter.NewDecay[string](limiter.DecayOptions{
			Capacity: c.Capacity,
			HalfLife: c.HalfLife,
			Limit:    c.Limit,
			Metrics:  m,
		})
	default:
		return nil, fmt.Errorf("unknown limiter kind %q (use window or decay)", c.Kind)
	}
}
