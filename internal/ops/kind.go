// Package ops implements the derived tensor operations: algorithms with one
// backend-independent definition expressed purely through the primitive
// operation sets of tensor.Backend.
//
// Algorithms are written once against the kind interfaces below and
// specialized per kind by passing the backend's op set as the kind selector:
//
//	b := cpu.New[float32, int64]()
//	x := ops.Narrow(b.Float(), t, 0, 1, 2)    // float kind
//	i := ops.Narrow(b.Int(), idx, 0, 1, 2)    // integer kind
//	m := ops.Narrow(b.Bool(), mask, 0, 1, 2)  // boolean kind
package ops

import "github.com/born-ml/tensorops/internal/tensor"

// Kind is the element-independent subset shared by tensor.FloatOps,
// tensor.IntOps and tensor.BoolOps, where T is the kind's handle type.
type Kind[T any] interface {
	Shape(t T) tensor.Shape
	Device(t T) tensor.Device
	ToDevice(t T, device tensor.Device) T
	Empty(shape tensor.Shape, device tensor.Device) T
	Reshape(t T, shape tensor.Shape) T
	SwapDims(t T, dim1, dim2 int) T
	Slice(t T, ranges []tensor.Range) T
	SliceAssign(t T, ranges []tensor.Range, value T) T
	Cat(tensors []T, dim int) T
	Equal(lhs, rhs T) tensor.BoolTensor
}

// Elemental extends Kind with the operations that exchange scalars of type E
// with the host.
type Elemental[T any, E tensor.Element] interface {
	Kind[T]
	FromData(data tensor.Data[E], device tensor.Device) T
	ToData(t T) *tensor.Reader[tensor.Data[E]]
	IntoData(t T) *tensor.Reader[tensor.Data[E]]
	EqualElem(lhs T, rhs E) tensor.BoolTensor
}

// Numeric is the subset shared by the float and integer kinds.
type Numeric[T any, E tensor.Element] interface {
	Elemental[T, E]
	AddScalar(lhs T, rhs E) T
	MulScalar(lhs T, rhs E) T
	DivScalar(lhs T, rhs E) T
	Sum(t T) T
	MaskFill(t T, mask tensor.BoolTensor, value E) T
	LowerElem(lhs T, rhs E) tensor.BoolTensor
	GreaterElem(lhs T, rhs E) tensor.BoolTensor
	Argmax(t T, dim int) tensor.IntTensor
	Argmin(t T, dim int) tensor.IntTensor
	Gather(dim int, t T, indices tensor.IntTensor) T
}

var (
	_ Numeric[tensor.FloatTensor, float32] = tensor.FloatOps[float32](nil)
	_ Numeric[tensor.IntTensor, int64]     = tensor.IntOps[int64](nil)
	_ Elemental[tensor.BoolTensor, bool]   = tensor.BoolOps(nil)
)
