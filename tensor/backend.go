// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/tensorops/internal/tensor"

// Backend is the primitive operation set every compute backend implements.
//
// Implementations:
//   - backend/cpu: pure Go reference backend
//   - autodiff: decorator adding gradient tracking to any backend
type Backend[FE FloatElement, IE IntElement] = tensor.Backend[FE, IE]

// FloatOps is the float-kind primitive operation set.
type FloatOps[FE FloatElement] = tensor.FloatOps[FE]

// IntOps is the integer-kind primitive operation set.
type IntOps[IE IntElement] = tensor.IntOps[IE]

// BoolOps is the boolean-kind primitive operation set.
type BoolOps = tensor.BoolOps
