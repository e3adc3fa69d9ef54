// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ops provides the operations derived from the primitive set.
//
// Each operation is written once against a kind interface and works with the
// float, integer and boolean op sets of any backend:
//
//	b := cpu.New[float32, int64]()
//	parts := ops.Chunk(b.Float(), x, 3, 0)
//	idx := ops.Arange(b.Int(), tensor.Range{Start: 0, End: 4}, b.DefaultDevice())
//	mask := ops.Narrow(b.Bool(), m, 0, 1, 2)
package ops

import (
	"github.com/born-ml/tensorops/internal/ops"
	"github.com/born-ml/tensorops/tensor"
)

// Kind is the element-independent part of an op set.
type Kind[T any] = ops.Kind[T]

// Elemental is a Kind that also converts from and to host Data.
type Elemental[T any, E tensor.Element] = ops.Elemental[T, E]

// Numeric is an Elemental with arithmetic, reductions and indexing.
type Numeric[T any, E tensor.Element] = ops.Numeric[T, E]

// Differentiable is implemented by backends that track gradients.
type Differentiable = ops.Differentiable

// Narrow returns the sub-tensor [start, start+length) along dim.
func Narrow[T any](k Kind[T], t T, dim, start, length int) T {
	return ops.Narrow(k, t, dim, start, length)
}

// Chunk splits t into chunks pieces along dim. The last piece takes the remainder.
func Chunk[T any](k Kind[T], t T, chunks, dim int) []T {
	return ops.Chunk(k, t, chunks, dim)
}

// Repeat tiles the singleton dimension dim times times.
func Repeat[T any](k Kind[T], t T, dim, times int) T {
	return ops.Repeat(k, t, dim, times)
}

// Transpose swaps the last two dimensions.
func Transpose[T any](k Kind[T], t T) T {
	return ops.Transpose(k, t)
}

// Zeros creates a tensor of shape filled with zeros.
func Zeros[T any, E tensor.Element](k Elemental[T, E], shape tensor.Shape, device tensor.Device) T {
	return ops.Zeros(k, shape, device)
}

// Ones creates a tensor of shape filled with ones.
func Ones[T any, E tensor.Element](k Elemental[T, E], shape tensor.Shape, device tensor.Device) T {
	return ops.Ones(k, shape, device)
}

// Full creates a tensor of shape filled with value.
func Full[T any, E tensor.Element](k Numeric[T, E], shape tensor.Shape, value E, device tensor.Device) T {
	return ops.Full(k, shape, value, device)
}

// ClampMin replaces every element lower than min by min.
func ClampMin[T any, E tensor.Element](k Numeric[T, E], t T, min E) T {
	return ops.ClampMin(k, t, min)
}

// ClampMax replaces every element greater than max by max.
func ClampMax[T any, E tensor.Element](k Numeric[T, E], t T, max E) T {
	return ops.ClampMax(k, t, max)
}

// Clamp bounds every element to [min, max].
func Clamp[T any, E tensor.Element](k Numeric[T, E], t T, min, max E) T {
	return ops.Clamp(k, t, min, max)
}

// Neg negates every element.
func Neg[T any, E tensor.Element](k Numeric[T, E], t T) T {
	return ops.Neg(k, t)
}

// Mean averages all elements into a tensor of shape [1].
func Mean[T any, E tensor.Element](k Numeric[T, E], t T) T {
	return ops.Mean(k, t)
}

// Max returns the largest element as a tensor of shape [1].
func Max[T any, E tensor.Element](k Numeric[T, E], t T) T {
	return ops.Max(k, t)
}

// MaxDim returns the largest elements along dim.
func MaxDim[T any, E tensor.Element](k Numeric[T, E], t T, dim int) T {
	return ops.MaxDim(k, t, dim)
}

// MaxDimWithIndices returns MaxDim and the indices of the maxima.
func MaxDimWithIndices[T any, E tensor.Element](k Numeric[T, E], t T, dim int) (T, tensor.IntTensor) {
	return ops.MaxDimWithIndices(k, t, dim)
}

// Min returns the smallest element as a tensor of shape [1].
func Min[T any, E tensor.Element](k Numeric[T, E], t T) T {
	return ops.Min(k, t)
}

// MinDim returns the smallest elements along dim.
func MinDim[T any, E tensor.Element](k Numeric[T, E], t T, dim int) T {
	return ops.MinDim(k, t, dim)
}

// MinDimWithIndices returns MinDim and the indices of the minima.
func MinDimWithIndices[T any, E tensor.Element](k Numeric[T, E], t T, dim int) (T, tensor.IntTensor) {
	return ops.MinDimWithIndices(k, t, dim)
}

// ArangeStep creates the integers of r spaced by step.
func ArangeStep[T any, IE tensor.IntElement](k Elemental[T, IE], r tensor.Range, step int, device tensor.Device) T {
	return ops.ArangeStep(k, r, step, device)
}

// Arange creates the integers of r.
func Arange[T any, IE tensor.IntElement](k Elemental[T, IE], r tensor.Range, device tensor.Device) T {
	return ops.Arange(k, r, device)
}

// Powi raises t element-wise to the integer powers in exp.
func Powi[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE], t tensor.FloatTensor, exp tensor.IntTensor) tensor.FloatTensor {
	return ops.Powi(b, t, exp)
}

// PowiScalar raises every element of t to the integer power exp.
func PowiScalar[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE], t tensor.FloatTensor, exp IE) tensor.FloatTensor {
	return ops.PowiScalar(b, t, exp)
}

// Detach returns t cut off from gradient tracking.
func Detach[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE], t tensor.FloatTensor) tensor.FloatTensor {
	return ops.Detach(b, t)
}

// SetRequireGrad marks t as requiring (or not) a gradient.
func SetRequireGrad[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE], t tensor.FloatTensor, requireGrad bool) tensor.FloatTensor {
	return ops.SetRequireGrad(b, t, requireGrad)
}

// IsRequireGrad reports whether t requires a gradient.
func IsRequireGrad[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE], t tensor.FloatTensor) bool {
	return ops.IsRequireGrad(b, t)
}
