// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements the reference backend with:
//   - Pure Go implementation (no CGO)
//   - float16, float32 and float64 float kinds over int32 or int64 integers
//   - Element-wise loops and matrix multiplication split across goroutines
//   - Several addressable devices (cpu:0, cpu:1, ...) for placement tests
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/tensorops/backend/cpu"
//	    "github.com/born-ml/tensorops/ops"
//	    "github.com/born-ml/tensorops/tensor"
//	)
//
//	func main() {
//	    b := cpu.New[float32, int64]()
//	    x := ops.Ones(b.Float(), tensor.Shape{2, 3}, b.DefaultDevice())
//	    y := ops.Clamp(b.Float(), b.Float().MulScalar(x, 4), 0, 3)
//	}
//
// # Configuration
//
// New takes functional options. ConfigFromEnv reads TENSOROPS_WORKERS,
// TENSOROPS_SEED and TENSOROPS_ASYNC_READS:
//
//	cfg, err := cpu.ConfigFromEnv()
//	if err != nil {
//	    return err
//	}
//	b := cpu.New[float64, int64](cpu.WithConfig(cfg))
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Tensors are immutable and the
// random generator is guarded by a mutex.
package cpu
