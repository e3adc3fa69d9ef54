package cpu

import (
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/born-ml/tensorops/internal/parallel"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvWorkers    = "TENSOROPS_WORKERS"
	EnvSeed       = "TENSOROPS_SEED"
	EnvAsyncReads = "TENSOROPS_ASYNC_READS"
)

// Config holds the CPU backend settings.
type Config struct {
	Parallel   parallel.Config // Worker settings for element-wise loops.
	Seed       uint64          // Initial random seed.
	Devices    int             // Number of addressable CPU devices (cpu:0 .. cpu:N-1).
	AsyncReads bool            // Materialize Data on a goroutine as soon as ToData is called.
}

// DefaultConfig returns the configuration used by New when no option is given.
func DefaultConfig() Config {
	return Config{
		Parallel: parallel.DefaultConfig(),
		Seed:     0,
		Devices:  1,
	}
}

// ConfigFromEnv returns DefaultConfig overridden by TENSOROPS_* environment variables.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if v, ok := os.LookupEnv(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return cfg, errors.Errorf("%s=%q: want a positive integer", EnvWorkers, v)
		}
		cfg.Parallel.NumWorkers = n
		cfg.Parallel.Enabled = n > 1
	}
	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return cfg, errors.Wrapf(err, "parsing %s", EnvSeed)
		}
		cfg.Seed = seed
	}
	if v, ok := os.LookupEnv(EnvAsyncReads); ok {
		async, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, errors.Wrapf(err, "parsing %s", EnvAsyncReads)
		}
		cfg.AsyncReads = async
	}
	return cfg, nil
}

// Option configures a Backend.
type Option func(*Config)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) { *c = cfg }
}

// WithParallel sets the worker configuration for element-wise loops.
func WithParallel(p parallel.Config) Option {
	return func(c *Config) { c.Parallel = p }
}

// WithSeed sets the initial random seed.
func WithSeed(seed uint64) Option {
	return func(c *Config) { c.Seed = seed }
}

// WithDevices sets how many CPU devices the backend exposes.
func WithDevices(n int) Option {
	return func(c *Config) { c.Devices = n }
}

// WithAsyncReads makes ToData/IntoData start copying on a goroutine immediately.
func WithAsyncReads(async bool) Option {
	return func(c *Config) { c.AsyncReads = async }
}
