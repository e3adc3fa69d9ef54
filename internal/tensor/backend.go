package tensor

// Backend defines the primitive operation set every compute backend must implement.
// Backends handle the actual computation; everything else in the library
// (derived ops, higher-level algorithms) is expressed through this interface.
//
// FE and IE are the backend's scalar representations for the float and
// integer kinds. The boolean kind is always represented by bool.
//
// Implementations:
//   - cpu: pure Go reference backend (float16, float32 or float64 floats)
//   - autodiff: decorator adding gradient tracking to any backend
type Backend[FE FloatElement, IE IntElement] interface {
	// Name returns a human-readable backend name.
	Name() string
	// DefaultDevice returns the device new tensors are placed on by default.
	DefaultDevice() Device
	// Seed reseeds the backend's random generator.
	Seed(seed uint64)

	Float() FloatOps[FE] // Float-kind primitives.
	Int() IntOps[IE]     // Integer-kind primitives.
	Bool() BoolOps       // Boolean-kind primitives.

	// FullPrecision returns the companion backend operating on the canonical
	// full-precision representation. Handles returned by
	// FloatOps.ToFullPrecision belong to it.
	FullPrecision() Backend[float64, IE]
}

// FloatOps is the float-kind primitive operation set.
//
// Binary operations require identical operand shapes; there is no implicit
// broadcasting. Violations panic with ErrShapeMismatch.
type FloatOps[FE FloatElement] interface {
	// Creation and placement.
	FromData(data Data[FE], device Device) FloatTensor
	Random(shape Shape, distribution Distribution, device Device) FloatTensor
	Empty(shape Shape, device Device) FloatTensor // Contents unspecified.
	Shape(t FloatTensor) Shape
	Device(t FloatTensor) Device
	ToDevice(t FloatTensor, device Device) FloatTensor
	ToData(t FloatTensor) *Reader[Data[FE]]
	IntoData(t FloatTensor) *Reader[Data[FE]]
	IntoInt(t FloatTensor) IntTensor // Truncates toward zero.

	// Element-wise arithmetic.
	Add(lhs, rhs FloatTensor) FloatTensor
	AddScalar(lhs FloatTensor, rhs FE) FloatTensor
	Sub(lhs, rhs FloatTensor) FloatTensor
	SubScalar(lhs FloatTensor, rhs FE) FloatTensor
	Mul(lhs, rhs FloatTensor) FloatTensor
	MulScalar(lhs FloatTensor, rhs FE) FloatTensor
	Div(lhs, rhs FloatTensor) FloatTensor
	DivScalar(lhs FloatTensor, rhs FE) FloatTensor
	MatMul(lhs, rhs FloatTensor) FloatTensor
	Recip(t FloatTensor) FloatTensor

	// Shape transforms.
	SwapDims(t FloatTensor, dim1, dim2 int) FloatTensor
	Reshape(t FloatTensor, shape Shape) FloatTensor

	// Indexing.
	Gather(dim int, t FloatTensor, indices IntTensor) FloatTensor
	Scatter(dim int, t FloatTensor, indices IntTensor, value FloatTensor) FloatTensor
	Select(t FloatTensor, dim int, indices IntTensor) FloatTensor
	SelectAssign(t FloatTensor, dim int, indices IntTensor, value FloatTensor) FloatTensor
	Slice(t FloatTensor, ranges []Range) FloatTensor
	SliceAssign(t FloatTensor, ranges []Range, value FloatTensor) FloatTensor
	MaskWhere(t FloatTensor, mask BoolTensor, value FloatTensor) FloatTensor
	MaskFill(t FloatTensor, mask BoolTensor, value FE) FloatTensor

	// Comparisons.
	Equal(lhs, rhs FloatTensor) BoolTensor
	EqualElem(lhs FloatTensor, rhs FE) BoolTensor
	Greater(lhs, rhs FloatTensor) BoolTensor
	GreaterElem(lhs FloatTensor, rhs FE) BoolTensor
	GreaterEqual(lhs, rhs FloatTensor) BoolTensor
	GreaterEqualElem(lhs FloatTensor, rhs FE) BoolTensor
	Lower(lhs, rhs FloatTensor) BoolTensor
	LowerElem(lhs FloatTensor, rhs FE) BoolTensor
	LowerEqual(lhs, rhs FloatTensor) BoolTensor
	LowerEqualElem(lhs FloatTensor, rhs FE) BoolTensor

	// Reductions.
	Sum(t FloatTensor) FloatTensor // Shape [1].
	SumDim(t FloatTensor, dim int) FloatTensor
	MeanDim(t FloatTensor, dim int) FloatTensor
	Argmax(t FloatTensor, dim int) IntTensor // Ties: lowest index wins.
	Argmin(t FloatTensor, dim int) IntTensor // Ties: lowest index wins.
	Cat(tensors []FloatTensor, dim int) FloatTensor

	// Unary math.
	Exp(t FloatTensor) FloatTensor
	Log(t FloatTensor) FloatTensor
	Log1p(t FloatTensor) FloatTensor
	Powf(lhs, rhs FloatTensor) FloatTensor
	PowfScalar(t FloatTensor, value float32) FloatTensor
	Sqrt(t FloatTensor) FloatTensor
	Abs(t FloatTensor) FloatTensor
	Cos(t FloatTensor) FloatTensor
	Sin(t FloatTensor) FloatTensor
	Tanh(t FloatTensor) FloatTensor
	Erf(t FloatTensor) FloatTensor

	// Precision bridge.
	ToFullPrecision(t FloatTensor) FloatTensor
	FromFullPrecision(t FloatTensor) FloatTensor
}

// IntOps is the integer-kind primitive operation set.
type IntOps[IE IntElement] interface {
	FromData(data Data[IE], device Device) IntTensor
	Empty(shape Shape, device Device) IntTensor
	Shape(t IntTensor) Shape
	Device(t IntTensor) Device
	ToDevice(t IntTensor, device Device) IntTensor
	ToData(t IntTensor) *Reader[Data[IE]]
	IntoData(t IntTensor) *Reader[Data[IE]]
	IntoFloat(t IntTensor) FloatTensor

	Add(lhs, rhs IntTensor) IntTensor
	AddScalar(lhs IntTensor, rhs IE) IntTensor
	Sub(lhs, rhs IntTensor) IntTensor
	SubScalar(lhs IntTensor, rhs IE) IntTensor
	Mul(lhs, rhs IntTensor) IntTensor
	MulScalar(lhs IntTensor, rhs IE) IntTensor
	Div(lhs, rhs IntTensor) IntTensor
	DivScalar(lhs IntTensor, rhs IE) IntTensor
	Abs(t IntTensor) IntTensor

	SwapDims(t IntTensor, dim1, dim2 int) IntTensor
	Reshape(t IntTensor, shape Shape) IntTensor

	Gather(dim int, t IntTensor, indices IntTensor) IntTensor
	Scatter(dim int, t IntTensor, indices IntTensor, value IntTensor) IntTensor
	Select(t IntTensor, dim int, indices IntTensor) IntTensor
	SelectAssign(t IntTensor, dim int, indices IntTensor, value IntTensor) IntTensor
	Slice(t IntTensor, ranges []Range) IntTensor
	SliceAssign(t IntTensor, ranges []Range, value IntTensor) IntTensor
	MaskWhere(t IntTensor, mask BoolTensor, value IntTensor) IntTensor
	MaskFill(t IntTensor, mask BoolTensor, value IE) IntTensor

	Equal(lhs, rhs IntTensor) BoolTensor
	EqualElem(lhs IntTensor, rhs IE) BoolTensor
	Greater(lhs, rhs IntTensor) BoolTensor
	GreaterElem(lhs IntTensor, rhs IE) BoolTensor
	GreaterEqual(lhs, rhs IntTensor) BoolTensor
	GreaterEqualElem(lhs IntTensor, rhs IE) BoolTensor
	Lower(lhs, rhs IntTensor) BoolTensor
	LowerElem(lhs IntTensor, rhs IE) BoolTensor
	LowerEqual(lhs, rhs IntTensor) BoolTensor
	LowerEqualElem(lhs IntTensor, rhs IE) BoolTensor

	Sum(t IntTensor) IntTensor
	SumDim(t IntTensor, dim int) IntTensor
	MeanDim(t IntTensor, dim int) IntTensor // Integer division.
	Argmax(t IntTensor, dim int) IntTensor
	Argmin(t IntTensor, dim int) IntTensor
	Cat(tensors []IntTensor, dim int) IntTensor
}

// BoolOps is the boolean-kind primitive operation set.
type BoolOps interface {
	FromData(data Data[bool], device Device) BoolTensor
	Empty(shape Shape, device Device) BoolTensor
	Shape(t BoolTensor) Shape
	Device(t BoolTensor) Device
	ToDevice(t BoolTensor, device Device) BoolTensor
	ToData(t BoolTensor) *Reader[Data[bool]]
	IntoData(t BoolTensor) *Reader[Data[bool]]
	IntoInt(t BoolTensor) IntTensor     // true -> 1, false -> 0.
	IntoFloat(t BoolTensor) FloatTensor // true -> 1, false -> 0.

	SwapDims(t BoolTensor, dim1, dim2 int) BoolTensor
	Reshape(t BoolTensor, shape Shape) BoolTensor
	Slice(t BoolTensor, ranges []Range) BoolTensor
	SliceAssign(t BoolTensor, ranges []Range, value BoolTensor) BoolTensor
	Cat(tensors []BoolTensor, dim int) BoolTensor

	Equal(lhs, rhs BoolTensor) BoolTensor
	EqualElem(lhs BoolTensor, rhs bool) BoolTensor
	Not(t BoolTensor) BoolTensor
}
