// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/tensorops/internal/backend/cpu"
	"github.com/born-ml/tensorops/internal/parallel"
	"github.com/born-ml/tensorops/tensor"
)

// Backend represents the CPU backend implementation.
//
// The CPU backend provides pure Go implementations of every primitive
// operation, computing float arithmetic in float64 and rounding to FE.
type Backend[FE tensor.FloatElement, IE tensor.IntElement] = internalcpu.Backend[FE, IE]

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend[float32, int64] = (*Backend[float32, int64])(nil)

// Config holds the CPU backend settings.
type Config = internalcpu.Config

// ParallelConfig controls how element-wise loops are split across goroutines.
type ParallelConfig = parallel.Config

// Option configures a Backend.
type Option = internalcpu.Option

// Environment variables read by ConfigFromEnv.
const (
	EnvWorkers    = internalcpu.EnvWorkers
	EnvSeed       = internalcpu.EnvSeed
	EnvAsyncReads = internalcpu.EnvAsyncReads
)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/tensorops/backend/cpu"
//	    "github.com/born-ml/tensorops/tensor"
//	)
//
//	func main() {
//	    b := cpu.New[float32, int64](cpu.WithSeed(42))
//	    x := b.Float().Random(tensor.Shape{2, 3}, tensor.StandardNormal, b.DefaultDevice())
//	}
func New[FE tensor.FloatElement, IE tensor.IntElement](opts ...Option) *Backend[FE, IE] {
	return internalcpu.New[FE, IE](opts...)
}

// DefaultConfig returns the configuration used when no option is given.
func DefaultConfig() Config {
	return internalcpu.DefaultConfig()
}

// ConfigFromEnv returns DefaultConfig overridden by the TENSOROPS_* environment variables.
func ConfigFromEnv() (Config, error) {
	return internalcpu.ConfigFromEnv()
}

// DefaultParallelConfig returns worker settings sized for this machine.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// SequentialConfig returns worker settings that run every loop on the caller's goroutine.
func SequentialConfig() ParallelConfig {
	return parallel.Sequential()
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return internalcpu.WithConfig(cfg)
}

// WithParallel sets the worker configuration for element-wise loops.
func WithParallel(p ParallelConfig) Option {
	return internalcpu.WithParallel(p)
}

// WithSeed sets the initial random seed.
func WithSeed(seed uint64) Option {
	return internalcpu.WithSeed(seed)
}

// WithDevices sets how many CPU devices (cpu:0 .. cpu:n-1) the backend exposes.
func WithDevices(n int) Option {
	return internalcpu.WithDevices(n)
}

// WithAsyncReads makes ToData/IntoData start copying on a goroutine immediately.
func WithAsyncReads(async bool) Option {
	return internalcpu.WithAsyncReads(async)
}
