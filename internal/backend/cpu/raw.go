package cpu

import (
	"fmt"

	"github.com/born-ml/tensorops/internal/tensor"
)

// RawTensor is the CPU backend's tensor primitive: a typed host slice plus
// shape, device and runtime type information.
//
// A RawTensor is never modified after creation. Operations, including the
// assign-style ones, write into freshly allocated storage, so handles can be
// shared freely between goroutines.
type RawTensor struct {
	data   any // []E where E matches dtype
	shape  tensor.Shape
	dtype  tensor.DataType
	device tensor.Device
}

// newRaw wraps values without copying them.
func newRaw[E tensor.Element](values []E, shape tensor.Shape, device tensor.Device) *RawTensor {
	if len(values) != shape.NumElements() {
		panic(fmt.Sprintf("cpu: %d values for shape %v", len(values), shape))
	}
	return &RawTensor{
		data:   values,
		shape:  shape.Clone(),
		dtype:  tensor.DataTypeOf[E](),
		device: device,
	}
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() tensor.Shape {
	return r.shape
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() tensor.DataType {
	return r.dtype
}

// Device returns the device the tensor lives on.
func (r *RawTensor) Device() tensor.Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// String returns a human-readable description.
func (r *RawTensor) String() string {
	return fmt.Sprintf("RawTensor[%s]%v on %s", r.dtype, r.shape, r.device)
}

// values returns the typed storage of r.
// It panics with ErrInvalidArgument if r does not hold E values, which
// happens when a handle is passed to a backend with another element type.
func values[E tensor.Element](op string, r *RawTensor) []E {
	v, ok := r.data.([]E)
	if !ok {
		tensor.Panicf(tensor.ErrInvalidArgument, "%s: tensor holds %s values, want %s",
			op, r.dtype, tensor.DataTypeOf[E]())
	}
	return v
}

// cloneValues returns a copy of r's typed storage.
func cloneValues[E tensor.Element](op string, r *RawTensor) []E {
	src := values[E](op, r)
	out := make([]E, len(src))
	copy(out, src)
	return out
}

// unwrap extracts the RawTensor behind a handle primitive.
func unwrap(op string, primitive any) *RawTensor {
	r := tensor.Unwrap[*RawTensor](op, primitive)
	if r == nil {
		tensor.Panicf(tensor.ErrInvalidArgument, "%s: nil tensor", op)
	}
	return r
}

// sameDevice panics with ErrInvalidArgument if the operands live on different devices.
func sameDevice(op string, a, b *RawTensor) {
	if a.device != b.device {
		tensor.Panicf(tensor.ErrInvalidArgument, "%s: operands on different devices %s and %s", op, a.device, b.device)
	}
}
