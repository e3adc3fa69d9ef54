// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor defines the backend tensor-operation contract.
//
// # Overview
//
// A backend is a value implementing Backend[FE, IE]. It hands out opaque
// handles of three kinds and implements the primitive operation set on them:
//   - FloatTensor: float-kind tensors with element type FE (float16, float32, float64)
//   - IntTensor: integer-kind tensors with element type IE (int32, int64, ...)
//   - BoolTensor: boolean masks
//
// Everything else (narrow, chunk, clamp, arange, ...) is derived from the
// primitives in package ops, so a new backend only implements Backend.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/tensorops/backend/cpu"
//	    "github.com/born-ml/tensorops/tensor"
//	)
//
//	func main() {
//	    b := cpu.New[float32, int64]()
//	    data, _ := tensor.NewData([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//
//	    x := b.Float().FromData(data, b.DefaultDevice())
//	    y := b.Float().MatMul(x, x)
//	    out, _ := b.Float().ToData(y).Read() // [7 10 15 22]
//	}
//
// # Handles
//
// Handles are values. Operations never modify their operands; every result is
// a new handle. A handle is only meaningful to the backend that created it.
//
// # Shapes
//
// Binary operations require identical shapes: there is no implicit
// broadcasting. Ranks are checked at runtime.
//
// # Errors
//
// Contract violations (shape mismatch, rank violation, index out of range,
// invalid argument) are programmer errors and panic with an error wrapping
// one of the Err* sentinels. Use Try to turn them into an error:
//
//	err := tensor.Try(func() { b.Float().Add(x, z) })
//	errors.Is(err, tensor.ErrShapeMismatch) // true
//
// # Reading Data
//
// ToData and IntoData return a Reader. Obtaining it never blocks; Read waits
// for the values and can be called only once.
package tensor
