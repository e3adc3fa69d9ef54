// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/tensorops/internal/tensor"
)

// Element constraints.
type (
	// FloatElement is the constraint for float-kind element types.
	FloatElement = tensor.FloatElement
	// IntElement is the constraint for integer-kind element types.
	IntElement = tensor.IntElement
	// Element is any element type a tensor can hold.
	Element = tensor.Element
)

// DataType represents runtime type information for tensors.
type DataType = tensor.DataType

// Data type constants.
const (
	Float16 DataType = tensor.Float16
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Bool    DataType = tensor.Bool
)

// DataTypeOf returns the DataType of E.
func DataTypeOf[E Element]() DataType {
	return tensor.DataTypeOf[E]()
}

// DeviceType names the kind of hardware a device belongs to.
type DeviceType = tensor.DeviceType

// Device type constants.
const (
	CPU    DeviceType = tensor.CPU
	CUDA   DeviceType = tensor.CUDA
	Vulkan DeviceType = tensor.Vulkan
	Metal  DeviceType = tensor.Metal
	WebGPU DeviceType = tensor.WebGPU
)

// Device identifies where a tensor's storage lives.
type Device = tensor.Device

// DefaultCPU is the first CPU device.
var DefaultCPU = tensor.DefaultCPU

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Range is a half-open [Start, End) interval of one dimension.
type Range = tensor.Range

// FullRanges returns one range per dimension of s covering it entirely.
func FullRanges(s Shape) []Range {
	return tensor.FullRanges(s)
}

// Handles.
type (
	// FloatTensor is an opaque handle to a float-kind tensor.
	FloatTensor = tensor.FloatTensor
	// IntTensor is an opaque handle to an integer-kind tensor.
	IntTensor = tensor.IntTensor
	// BoolTensor is an opaque handle to a boolean-kind tensor.
	BoolTensor = tensor.BoolTensor
)

// Data is the host-visible materialization of a tensor.
type Data[E Element] = tensor.Data[E]

// NewData creates Data from row-major values.
func NewData[E Element](values []E, shape Shape) (Data[E], error) {
	return tensor.NewData(values, shape)
}

// Reader is a lazy, single-shot handle to a value being materialized.
type Reader[T any] = tensor.Reader[T]

// Distribution selects how random tensor values are sampled.
type Distribution = tensor.Distribution

// Distributions.
type (
	Default   = tensor.Default
	Uniform   = tensor.Uniform
	Normal    = tensor.Normal
	Bernoulli = tensor.Bernoulli
)

// StandardNormal is Normal{Mean: 0, Std: 1}.
var StandardNormal = tensor.StandardNormal

// Contract violation kinds. Match them with errors.Is.
var (
	ErrShapeMismatch   = tensor.ErrShapeMismatch
	ErrRankViolation   = tensor.ErrRankViolation
	ErrIndexOutOfRange = tensor.ErrIndexOutOfRange
	ErrInvalidArgument = tensor.ErrInvalidArgument
	ErrReaderConsumed  = tensor.ErrReaderConsumed
)

// Try runs fn and returns the contract violation it panicked with, if any.
func Try(fn func()) error {
	return tensor.Try(fn)
}
