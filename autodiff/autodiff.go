// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff adds gradient tracking to any backend.
//
// New wraps a backend so that float handles carry a require-grad flag, the
// flag propagates through every float operation, and operations are recorded
// on a Tape. Gradients themselves are not computed here; the tape is the
// forward graph a caller can differentiate.
//
// Example:
//
//	import (
//	    "github.com/born-ml/tensorops/autodiff"
//	    "github.com/born-ml/tensorops/backend/cpu"
//	    "github.com/born-ml/tensorops/ops"
//	    "github.com/born-ml/tensorops/tensor"
//	)
//
//	func main() {
//	    b := autodiff.New[float32, int64](cpu.New[float32, int64]())
//	    b.Tape().StartRecording()
//
//	    w := ops.SetRequireGrad[float32, int64](b, ops.Ones(b.Float(), tensor.Shape{3}, b.DefaultDevice()), true)
//	    y := b.Float().Mul(w, w)
//	    ops.IsRequireGrad[float32, int64](b, y) // true
//	    entries := b.Tape().Entries()           // [float.Mul]
//	}
package autodiff

import (
	"github.com/born-ml/tensorops/internal/autodiff"
	"github.com/born-ml/tensorops/tensor"
)

// Backend is the gradient-tracking decorator.
type Backend[FE tensor.FloatElement, IE tensor.IntElement] = autodiff.Backend[FE, IE]

// New creates a new autodiff backend wrapping the given backend.
func New[FE tensor.FloatElement, IE tensor.IntElement](inner tensor.Backend[FE, IE]) *Backend[FE, IE] {
	return autodiff.New(inner)
}

// Tape records the float operations executed through a Backend.
type Tape = autodiff.Tape

// Entry is one recorded operation.
type Entry = autodiff.Entry

// NewTape creates an empty tape that is not recording.
func NewTape() *Tape {
	return autodiff.NewTape()
}
