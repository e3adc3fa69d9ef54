package cpu

import (
	"math"

	"k8s.io/klog/v2"

	"github.com/born-ml/tensorops/internal/parallel"
	"github.com/born-ml/tensorops/internal/tensor"
)

// floatOps implements tensor.FloatOps. Element values are widened to float64,
// computed on, and rounded back to FE.
type floatOps[FE tensor.FloatElement, IE tensor.IntElement] struct {
	b *Backend[FE, IE]
}

var _ tensor.FloatOps[float32] = floatOps[float32, int64]{}

func (f floatOps[FE, IE]) cfg() parallel.Config { return f.b.cfg.Parallel }

func (f floatOps[FE, IE]) raw(op string, t tensor.FloatTensor) *RawTensor {
	return unwrap(op, t.Primitive())
}

func wrapFloat(r *RawTensor) tensor.FloatTensor { return tensor.NewFloat(r) }

func (f floatOps[FE, IE]) elementwise(op string, t tensor.FloatTensor, fn func(float64) float64) tensor.FloatTensor {
	to, from := tensor.FloatConverters[FE]()
	return wrapFloat(unary(f.cfg(), op, f.raw(op, t), func(v FE) FE { return from(fn(to(v))) }))
}

func (f floatOps[FE, IE]) arith(op string, lhs, rhs tensor.FloatTensor, fn func(a, b float64) float64) tensor.FloatTensor {
	to, from := tensor.FloatConverters[FE]()
	return wrapFloat(binary(f.cfg(), op, f.raw(op, lhs), f.raw(op, rhs), func(a, b FE) FE { return from(fn(to(a), to(b))) }))
}

func (f floatOps[FE, IE]) compare(op string, lhs, rhs tensor.FloatTensor, fn func(a, b float64) bool) tensor.BoolTensor {
	to, _ := tensor.FloatConverters[FE]()
	return tensor.NewBool(binary(f.cfg(), op, f.raw(op, lhs), f.raw(op, rhs), func(a, b FE) bool { return fn(to(a), to(b)) }))
}

func (f floatOps[FE, IE]) compareElem(op string, lhs tensor.FloatTensor, rhs FE, fn func(a, b float64) bool) tensor.BoolTensor {
	to, _ := tensor.FloatConverters[FE]()
	scalar := to(rhs)
	return tensor.NewBool(unary(f.cfg(), op, f.raw(op, lhs), func(a FE) bool { return fn(to(a), scalar) }))
}

func (f floatOps[FE, IE]) add() func(a, b FE) FE {
	to, from := tensor.FloatConverters[FE]()
	return func(a, b FE) FE { return from(to(a) + to(b)) }
}

// FromData copies data onto device.
func (f floatOps[FE, IE]) FromData(data tensor.Data[FE], device tensor.Device) tensor.FloatTensor {
	return wrapFloat(fromData(f.b, "float.FromData", data, device))
}

// Random samples a tensor from distribution using the backend's generator.
func (f floatOps[FE, IE]) Random(shape tensor.Shape, distribution tensor.Distribution, device tensor.Device) tensor.FloatTensor {
	const op = "float.Random"
	if distribution == nil {
		distribution = tensor.Default{}
	}
	if err := distribution.Validate(); err != nil {
		tensor.Panicf(tensor.ErrInvalidArgument, "%s: %v", op, err)
	}
	f.b.checkDevice(op, device)
	if err := shape.Validate(); err != nil {
		tensor.Panicf(tensor.ErrInvalidArgument, "%s: %v", op, err)
	}
	_, from := tensor.FloatConverters[FE]()
	u := f.b.uniforms(shape.NumElements())
	out := mapValues(f.cfg(), u, func(v float64) FE { return from(distribution.Sample(v)) })
	return wrapFloat(newRaw(out, shape, device))
}

// Empty allocates a tensor; the CPU backend zero-fills it.
func (f floatOps[FE, IE]) Empty(shape tensor.Shape, device tensor.Device) tensor.FloatTensor {
	return wrapFloat(empty[FE](f.b, "float.Empty", shape, device))
}

// Shape returns the tensor's shape.
func (f floatOps[FE, IE]) Shape(t tensor.FloatTensor) tensor.Shape {
	return f.raw("float.Shape", t).shape.Clone()
}

// Device returns the tensor's device.
func (f floatOps[FE, IE]) Device(t tensor.FloatTensor) tensor.Device {
	return f.raw("float.Device", t).device
}

// ToDevice moves the tensor to device.
func (f floatOps[FE, IE]) ToDevice(t tensor.FloatTensor, device tensor.Device) tensor.FloatTensor {
	const op = "float.ToDevice"
	return wrapFloat(toDevice[FE](f.b, op, f.raw(op, t), device))
}

// ToData returns a reader of the tensor's contents.
func (f floatOps[FE, IE]) ToData(t tensor.FloatTensor) *tensor.Reader[tensor.Data[FE]] {
	const op = "float.ToData"
	return reader[FE](f.b, op, f.raw(op, t))
}

// IntoData is ToData for a handle the caller gives up.
func (f floatOps[FE, IE]) IntoData(t tensor.FloatTensor) *tensor.Reader[tensor.Data[FE]] {
	const op = "float.IntoData"
	return reader[FE](f.b, op, f.raw(op, t))
}

// IntoInt converts to the integer kind, truncating toward zero.
func (f floatOps[FE, IE]) IntoInt(t tensor.FloatTensor) tensor.IntTensor {
	const op = "float.IntoInt"
	to, _ := tensor.FloatConverters[FE]()
	return tensor.NewInt(unary(f.cfg(), op, f.raw(op, t), func(v FE) IE { return IE(math.Trunc(to(v))) }))
}

func (f floatOps[FE, IE]) Add(lhs, rhs tensor.FloatTensor) tensor.FloatTensor {
	return f.arith("float.Add", lhs, rhs, func(a, b float64) float64 { return a + b })
}

func (f floatOps[FE, IE]) AddScalar(lhs tensor.FloatTensor, rhs FE) tensor.FloatTensor {
	s := tensor.FloatToFloat64(rhs)
	return f.elementwise("float.AddScalar", lhs, func(a float64) float64 { return a + s })
}

func (f floatOps[FE, IE]) Sub(lhs, rhs tensor.FloatTensor) tensor.FloatTensor {
	return f.arith("float.Sub", lhs, rhs, func(a, b float64) float64 { return a - b })
}

func (f floatOps[FE, IE]) SubScalar(lhs tensor.FloatTensor, rhs FE) tensor.FloatTensor {
	s := tensor.FloatToFloat64(rhs)
	return f.elementwise("float.SubScalar", lhs, func(a float64) float64 { return a - s })
}

func (f floatOps[FE, IE]) Mul(lhs, rhs tensor.FloatTensor) tensor.FloatTensor {
	return f.arith("float.Mul", lhs, rhs, func(a, b float64) float64 { return a * b })
}

func (f floatOps[FE, IE]) MulScalar(lhs tensor.FloatTensor, rhs FE) tensor.FloatTensor {
	s := tensor.FloatToFloat64(rhs)
	return f.elementwise("float.MulScalar", lhs, func(a float64) float64 { return a * s })
}

// Div follows IEEE semantics: x/0 is ±Inf or NaN.
func (f floatOps[FE, IE]) Div(lhs, rhs tensor.FloatTensor) tensor.FloatTensor {
	return f.arith("float.Div", lhs, rhs, func(a, b float64) float64 { return a / b })
}

func (f floatOps[FE, IE]) DivScalar(lhs tensor.FloatTensor, rhs FE) tensor.FloatTensor {
	s := tensor.FloatToFloat64(rhs)
	return f.elementwise("float.DivScalar", lhs, func(a float64) float64 { return a / s })
}

func (f floatOps[FE, IE]) Recip(t tensor.FloatTensor) tensor.FloatTensor {
	return f.elementwise("float.Recip", t, func(a float64) float64 { return 1 / a })
}

func (f floatOps[FE, IE]) SwapDims(t tensor.FloatTensor, dim1, dim2 int) tensor.FloatTensor {
	const op = "float.SwapDims"
	return wrapFloat(swapDims[FE](op, f.raw(op, t), dim1, dim2))
}

func (f floatOps[FE, IE]) Reshape(t tensor.FloatTensor, shape tensor.Shape) tensor.FloatTensor {
	const op = "float.Reshape"
	return wrapFloat(reshape[FE](op, f.raw(op, t), shape))
}

func (f floatOps[FE, IE]) Gather(dim int, t tensor.FloatTensor, indices tensor.IntTensor) tensor.FloatTensor {
	const op = "float.Gather"
	return wrapFloat(gather[FE, IE](op, dim, f.raw(op, t), unwrap(op, indices.Primitive())))
}

// Scatter adds value[i] into the position of t addressed by indices[i].
func (f floatOps[FE, IE]) Scatter(dim int, t tensor.FloatTensor, indices tensor.IntTensor, value tensor.FloatTensor) tensor.FloatTensor {
	const op = "float.Scatter"
	return wrapFloat(scatter[FE, IE](op, dim, f.raw(op, t), unwrap(op, indices.Primitive()), f.raw(op, value), f.add()))
}

func (f floatOps[FE, IE]) Select(t tensor.FloatTensor, dim int, indices tensor.IntTensor) tensor.FloatTensor {
	const op = "float.Select"
	return wrapFloat(selectIndices[FE, IE](op, f.raw(op, t), dim, unwrap(op, indices.Primitive())))
}

// SelectAssign adds slice i of value into slice indices[i] of t along dim.
func (f floatOps[FE, IE]) SelectAssign(t tensor.FloatTensor, dim int, indices tensor.IntTensor, value tensor.FloatTensor) tensor.FloatTensor {
	const op = "float.SelectAssign"
	return wrapFloat(selectAssign[FE, IE](op, f.raw(op, t), dim, unwrap(op, indices.Primitive()), f.raw(op, value), f.add()))
}

func (f floatOps[FE, IE]) Slice(t tensor.FloatTensor, ranges []tensor.Range) tensor.FloatTensor {
	const op = "float.Slice"
	return wrapFloat(slice[FE](op, f.raw(op, t), ranges))
}

func (f floatOps[FE, IE]) SliceAssign(t tensor.FloatTensor, ranges []tensor.Range, value tensor.FloatTensor) tensor.FloatTensor {
	const op = "float.SliceAssign"
	return wrapFloat(sliceAssign[FE](op, f.raw(op, t), ranges, f.raw(op, value)))
}

func (f floatOps[FE, IE]) MaskWhere(t tensor.FloatTensor, mask tensor.BoolTensor, value tensor.FloatTensor) tensor.FloatTensor {
	const op = "float.MaskWhere"
	return wrapFloat(maskWhere[FE](f.cfg(), op, f.raw(op, t), unwrap(op, mask.Primitive()), f.raw(op, value)))
}

func (f floatOps[FE, IE]) MaskFill(t tensor.FloatTensor, mask tensor.BoolTensor, value FE) tensor.FloatTensor {
	const op = "float.MaskFill"
	return wrapFloat(maskFill(f.cfg(), op, f.raw(op, t), unwrap(op, mask.Primitive()), value))
}

func (f floatOps[FE, IE]) Equal(lhs, rhs tensor.FloatTensor) tensor.BoolTensor {
	return f.compare("float.Equal", lhs, rhs, func(a, b float64) bool { return a == b })
}

func (f floatOps[FE, IE]) EqualElem(lhs tensor.FloatTensor, rhs FE) tensor.BoolTensor {
	return f.compareElem("float.EqualElem", lhs, rhs, func(a, b float64) bool { return a == b })
}

func (f floatOps[FE, IE]) Greater(lhs, rhs tensor.FloatTensor) tensor.BoolTensor {
	return f.compare("float.Greater", lhs, rhs, func(a, b float64) bool { return a > b })
}

func (f floatOps[FE, IE]) GreaterElem(lhs tensor.FloatTensor, rhs FE) tensor.BoolTensor {
	return f.compareElem("float.GreaterElem", lhs, rhs, func(a, b float64) bool { return a > b })
}

func (f floatOps[FE, IE]) GreaterEqual(lhs, rhs tensor.FloatTensor) tensor.BoolTensor {
	return f.compare("float.GreaterEqual", lhs, rhs, func(a, b float64) bool { return a >= b })
}

func (f floatOps[FE, IE]) GreaterEqualElem(lhs tensor.FloatTensor, rhs FE) tensor.BoolTensor {
	return f.compareElem("float.GreaterEqualElem", lhs, rhs, func(a, b float64) bool { return a >= b })
}

func (f floatOps[FE, IE]) Lower(lhs, rhs tensor.FloatTensor) tensor.BoolTensor {
	return f.compare("float.Lower", lhs, rhs, func(a, b float64) bool { return a < b })
}

func (f floatOps[FE, IE]) LowerElem(lhs tensor.FloatTensor, rhs FE) tensor.BoolTensor {
	return f.compareElem("float.LowerElem", lhs, rhs, func(a, b float64) bool { return a < b })
}

func (f floatOps[FE, IE]) LowerEqual(lhs, rhs tensor.FloatTensor) tensor.BoolTensor {
	return f.compare("float.LowerEqual", lhs, rhs, func(a, b float64) bool { return a <= b })
}

func (f floatOps[FE, IE]) LowerEqualElem(lhs tensor.FloatTensor, rhs FE) tensor.BoolTensor {
	return f.compareElem("float.LowerEqualElem", lhs, rhs, func(a, b float64) bool { return a <= b })
}

// Sum reduces every element into a tensor of shape [1].
func (f floatOps[FE, IE]) Sum(t tensor.FloatTensor) tensor.FloatTensor {
	const op = "float.Sum"
	r := f.raw(op, t)
	to, from := tensor.FloatConverters[FE]()
	var total float64
	for _, v := range values[FE](op, r) {
		total += to(v)
	}
	return wrapFloat(newRaw([]FE{from(total)}, tensor.Shape{1}, r.device))
}

// SumDim sums along dim, keeping it with size 1.
func (f floatOps[FE, IE]) SumDim(t tensor.FloatTensor, dim int) tensor.FloatTensor {
	return f.reduceDim("float.SumDim", t, dim, false)
}

// MeanDim averages along dim, keeping it with size 1.
func (f floatOps[FE, IE]) MeanDim(t tensor.FloatTensor, dim int) tensor.FloatTensor {
	return f.reduceDim("float.MeanDim", t, dim, true)
}

func (f floatOps[FE, IE]) reduceDim(op string, t tensor.FloatTensor, dim int, mean bool) tensor.FloatTensor {
	r := f.raw(op, t)
	tensor.CheckDim(op, dim, r.shape.Rank())
	to, from := tensor.FloatConverters[FE]()
	sums := reduceDim(values[FE](op, r), r.shape, dim, 0.0, func(acc float64, v FE) float64 { return acc + to(v) })
	n := float64(r.shape[dim])
	out := make([]FE, len(sums))
	for i, s := range sums {
		if mean {
			s /= n
		}
		out[i] = from(s)
	}
	return wrapFloat(newRaw(out, r.shape.With(dim, 1), r.device))
}

// Argmax returns the index of the largest element along dim; ties resolve to the lowest index.
func (f floatOps[FE, IE]) Argmax(t tensor.FloatTensor, dim int) tensor.IntTensor {
	return f.argReduce("float.Argmax", t, dim, func(c, cur float64) bool { return c > cur })
}

// Argmin returns the index of the smallest element along dim; ties resolve to the lowest index.
func (f floatOps[FE, IE]) Argmin(t tensor.FloatTensor, dim int) tensor.IntTensor {
	return f.argReduce("float.Argmin", t, dim, func(c, cur float64) bool { return c < cur })
}

func (f floatOps[FE, IE]) argReduce(op string, t tensor.FloatTensor, dim int, better func(c, cur float64) bool) tensor.IntTensor {
	r := f.raw(op, t)
	to, _ := tensor.FloatConverters[FE]()
	src := mapValues(f.cfg(), values[FE](op, r), to)
	return tensor.NewInt(argIndices[float64, IE](op, r, src, dim, better))
}

func (f floatOps[FE, IE]) Cat(tensors []tensor.FloatTensor, dim int) tensor.FloatTensor {
	const op = "float.Cat"
	return wrapFloat(cat[FE](op, unwrapAll(op, tensors), dim))
}

func (f floatOps[FE, IE]) Exp(t tensor.FloatTensor) tensor.FloatTensor {
	return f.elementwise("float.Exp", t, math.Exp)
}

func (f floatOps[FE, IE]) Log(t tensor.FloatTensor) tensor.FloatTensor {
	return f.elementwise("float.Log", t, math.Log)
}

func (f floatOps[FE, IE]) Log1p(t tensor.FloatTensor) tensor.FloatTensor {
	return f.elementwise("float.Log1p", t, math.Log1p)
}

func (f floatOps[FE, IE]) Powf(lhs, rhs tensor.FloatTensor) tensor.FloatTensor {
	return f.arith("float.Powf", lhs, rhs, math.Pow)
}

func (f floatOps[FE, IE]) PowfScalar(t tensor.FloatTensor, value float32) tensor.FloatTensor {
	exp := float64(value)
	return f.elementwise("float.PowfScalar", t, func(a float64) float64 { return math.Pow(a, exp) })
}

func (f floatOps[FE, IE]) Sqrt(t tensor.FloatTensor) tensor.FloatTensor {
	return f.elementwise("float.Sqrt", t, math.Sqrt)
}

func (f floatOps[FE, IE]) Abs(t tensor.FloatTensor) tensor.FloatTensor {
	return f.elementwise("float.Abs", t, math.Abs)
}

func (f floatOps[FE, IE]) Cos(t tensor.FloatTensor) tensor.FloatTensor {
	return f.elementwise("float.Cos", t, math.Cos)
}

func (f floatOps[FE, IE]) Sin(t tensor.FloatTensor) tensor.FloatTensor {
	return f.elementwise("float.Sin", t, math.Sin)
}

func (f floatOps[FE, IE]) Tanh(t tensor.FloatTensor) tensor.FloatTensor {
	return f.elementwise("float.Tanh", t, math.Tanh)
}

func (f floatOps[FE, IE]) Erf(t tensor.FloatTensor) tensor.FloatTensor {
	return f.elementwise("float.Erf", t, math.Erf)
}

// ToFullPrecision widens the tensor to float64. The result belongs to FullPrecision().
func (f floatOps[FE, IE]) ToFullPrecision(t tensor.FloatTensor) tensor.FloatTensor {
	const op = "float.ToFullPrecision"
	to, _ := tensor.FloatConverters[FE]()
	r := f.raw(op, t)
	klog.V(2).Infof("%s: %s %s -> float64", op, r.shape, r.dtype)
	return wrapFloat(unary(f.cfg(), op, r, to))
}

// FromFullPrecision rounds a FullPrecision() tensor back to FE.
func (f floatOps[FE, IE]) FromFullPrecision(t tensor.FloatTensor) tensor.FloatTensor {
	const op = "float.FromFullPrecision"
	_, from := tensor.FloatConverters[FE]()
	r := f.raw(op, t)
	klog.V(2).Infof("%s: %s float64 -> %s", op, r.shape, tensor.DataTypeOf[FE]())
	return wrapFloat(unary(f.cfg(), op, r, from))
}
