package cpu

import (
	"github.com/born-ml/tensorops/internal/parallel"
	"github.com/born-ml/tensorops/internal/tensor"
)

// intOps implements tensor.IntOps with native integer arithmetic.
// Overflow wraps like Go integer arithmetic; division by zero panics with
// ErrInvalidArgument.
type intOps[FE tensor.FloatElement, IE tensor.IntElement] struct {
	b *Backend[FE, IE]
}

var _ tensor.IntOps[int64] = intOps[float32, int64]{}

func (o intOps[FE, IE]) cfg() parallel.Config { return o.b.cfg.Parallel }

func (o intOps[FE, IE]) raw(op string, t tensor.IntTensor) *RawTensor {
	return unwrap(op, t.Primitive())
}

func wrapInt(r *RawTensor) tensor.IntTensor { return tensor.NewInt(r) }

func (o intOps[FE, IE]) arith(op string, lhs, rhs tensor.IntTensor, fn func(a, b IE) IE) tensor.IntTensor {
	return wrapInt(binary(o.cfg(), op, o.raw(op, lhs), o.raw(op, rhs), fn))
}

func (o intOps[FE, IE]) scalar(op string, t tensor.IntTensor, fn func(a IE) IE) tensor.IntTensor {
	return wrapInt(unary(o.cfg(), op, o.raw(op, t), fn))
}

func (o intOps[FE, IE]) compare(op string, lhs, rhs tensor.IntTensor, fn func(a, b IE) bool) tensor.BoolTensor {
	return tensor.NewBool(binary(o.cfg(), op, o.raw(op, lhs), o.raw(op, rhs), fn))
}

func (o intOps[FE, IE]) compareElem(op string, lhs tensor.IntTensor, rhs IE, fn func(a, b IE) bool) tensor.BoolTensor {
	return tensor.NewBool(unary(o.cfg(), op, o.raw(op, lhs), func(a IE) bool { return fn(a, rhs) }))
}

func addInt[IE tensor.IntElement](a, b IE) IE { return a + b }

func (o intOps[FE, IE]) FromData(data tensor.Data[IE], device tensor.Device) tensor.IntTensor {
	return wrapInt(fromData(o.b, "int.FromData", data, device))
}

func (o intOps[FE, IE]) Empty(shape tensor.Shape, device tensor.Device) tensor.IntTensor {
	return wrapInt(empty[IE](o.b, "int.Empty", shape, device))
}

func (o intOps[FE, IE]) Shape(t tensor.IntTensor) tensor.Shape {
	return o.raw("int.Shape", t).shape.Clone()
}

func (o intOps[FE, IE]) Device(t tensor.IntTensor) tensor.Device {
	return o.raw("int.Device", t).device
}

func (o intOps[FE, IE]) ToDevice(t tensor.IntTensor, device tensor.Device) tensor.IntTensor {
	const op = "int.ToDevice"
	return wrapInt(toDevice[IE](o.b, op, o.raw(op, t), device))
}

func (o intOps[FE, IE]) ToData(t tensor.IntTensor) *tensor.Reader[tensor.Data[IE]] {
	const op = "int.ToData"
	return reader[IE](o.b, op, o.raw(op, t))
}

func (o intOps[FE, IE]) IntoData(t tensor.IntTensor) *tensor.Reader[tensor.Data[IE]] {
	const op = "int.IntoData"
	return reader[IE](o.b, op, o.raw(op, t))
}

// IntoFloat converts to the float kind, rounding to FE's precision.
func (o intOps[FE, IE]) IntoFloat(t tensor.IntTensor) tensor.FloatTensor {
	const op = "int.IntoFloat"
	_, from := tensor.FloatConverters[FE]()
	return wrapFloat(unary(o.cfg(), op, o.raw(op, t), func(v IE) FE { return from(float64(v)) }))
}

func (o intOps[FE, IE]) Add(lhs, rhs tensor.IntTensor) tensor.IntTensor {
	return o.arith("int.Add", lhs, rhs, addInt[IE])
}

func (o intOps[FE, IE]) AddScalar(lhs tensor.IntTensor, rhs IE) tensor.IntTensor {
	return o.scalar("int.AddScalar", lhs, func(a IE) IE { return a + rhs })
}

func (o intOps[FE, IE]) Sub(lhs, rhs tensor.IntTensor) tensor.IntTensor {
	return o.arith("int.Sub", lhs, rhs, func(a, b IE) IE { return a - b })
}

func (o intOps[FE, IE]) SubScalar(lhs tensor.IntTensor, rhs IE) tensor.IntTensor {
	return o.scalar("int.SubScalar", lhs, func(a IE) IE { return a - rhs })
}

func (o intOps[FE, IE]) Mul(lhs, rhs tensor.IntTensor) tensor.IntTensor {
	return o.arith("int.Mul", lhs, rhs, func(a, b IE) IE { return a * b })
}

func (o intOps[FE, IE]) MulScalar(lhs tensor.IntTensor, rhs IE) tensor.IntTensor {
	return o.scalar("int.MulScalar", lhs, func(a IE) IE { return a * rhs })
}

// Div truncates toward zero.
func (o intOps[FE, IE]) Div(lhs, rhs tensor.IntTensor) tensor.IntTensor {
	const op = "int.Div"
	r := o.raw(op, rhs)
	for _, v := range values[IE](op, r) {
		if v == 0 {
			tensor.Panicf(tensor.ErrInvalidArgument, "%s: integer division by zero", op)
		}
	}
	return o.arith(op, lhs, rhs, func(a, b IE) IE { return a / b })
}

func (o intOps[FE, IE]) DivScalar(lhs tensor.IntTensor, rhs IE) tensor.IntTensor {
	const op = "int.DivScalar"
	if rhs == 0 {
		tensor.Panicf(tensor.ErrInvalidArgument, "%s: integer division by zero", op)
	}
	return o.scalar(op, lhs, func(a IE) IE { return a / rhs })
}

func (o intOps[FE, IE]) Abs(t tensor.IntTensor) tensor.IntTensor {
	return o.scalar("int.Abs", t, func(a IE) IE {
		if a < 0 {
			return -a
		}
		return a
	})
}

func (o intOps[FE, IE]) SwapDims(t tensor.IntTensor, dim1, dim2 int) tensor.IntTensor {
	const op = "int.SwapDims"
	return wrapInt(swapDims[IE](op, o.raw(op, t), dim1, dim2))
}

func (o intOps[FE, IE]) Reshape(t tensor.IntTensor, shape tensor.Shape) tensor.IntTensor {
	const op = "int.Reshape"
	return wrapInt(reshape[IE](op, o.raw(op, t), shape))
}

func (o intOps[FE, IE]) Gather(dim int, t tensor.IntTensor, indices tensor.IntTensor) tensor.IntTensor {
	const op = "int.Gather"
	return wrapInt(gather[IE, IE](op, dim, o.raw(op, t), o.raw(op, indices)))
}

func (o intOps[FE, IE]) Scatter(dim int, t tensor.IntTensor, indices tensor.IntTensor, value tensor.IntTensor) tensor.IntTensor {
	const op = "int.Scatter"
	return wrapInt(scatter[IE, IE](op, dim, o.raw(op, t), o.raw(op, indices), o.raw(op, value), addInt[IE]))
}

func (o intOps[FE, IE]) Select(t tensor.IntTensor, dim int, indices tensor.IntTensor) tensor.IntTensor {
	const op = "int.Select"
	return wrapInt(selectIndices[IE, IE](op, o.raw(op, t), dim, o.raw(op, indices)))
}

func (o intOps[FE, IE]) SelectAssign(t tensor.IntTensor, dim int, indices tensor.IntTensor, value tensor.IntTensor) tensor.IntTensor {
	const op = "int.SelectAssign"
	return wrapInt(selectAssign[IE, IE](op, o.raw(op, t), dim, o.raw(op, indices), o.raw(op, value), addInt[IE]))
}

func (o intOps[FE, IE]) Slice(t tensor.IntTensor, ranges []tensor.Range) tensor.IntTensor {
	const op = "int.Slice"
	return wrapInt(slice[IE](op, o.raw(op, t), ranges))
}

func (o intOps[FE, IE]) SliceAssign(t tensor.IntTensor, ranges []tensor.Range, value tensor.IntTensor) tensor.IntTensor {
	const op = "int.SliceAssign"
	return wrapInt(sliceAssign[IE](op, o.raw(op, t), ranges, o.raw(op, value)))
}

func (o intOps[FE, IE]) MaskWhere(t tensor.IntTensor, mask tensor.BoolTensor, value tensor.IntTensor) tensor.IntTensor {
	const op = "int.MaskWhere"
	return wrapInt(maskWhere[IE](o.cfg(), op, o.raw(op, t), unwrap(op, mask.Primitive()), o.raw(op, value)))
}

func (o intOps[FE, IE]) MaskFill(t tensor.IntTensor, mask tensor.BoolTensor, value IE) tensor.IntTensor {
	const op = "int.MaskFill"
	return wrapInt(maskFill(o.cfg(), op, o.raw(op, t), unwrap(op, mask.Primitive()), value))
}

func (o intOps[FE, IE]) Equal(lhs, rhs tensor.IntTensor) tensor.BoolTensor {
	return o.compare("int.Equal", lhs, rhs, func(a, b IE) bool { return a == b })
}

func (o intOps[FE, IE]) EqualElem(lhs tensor.IntTensor, rhs IE) tensor.BoolTensor {
	return o.compareElem("int.EqualElem", lhs, rhs, func(a, b IE) bool { return a == b })
}

func (o intOps[FE, IE]) Greater(lhs, rhs tensor.IntTensor) tensor.BoolTensor {
	return o.compare("int.Greater", lhs, rhs, func(a, b IE) bool { return a > b })
}

func (o intOps[FE, IE]) GreaterElem(lhs tensor.IntTensor, rhs IE) tensor.BoolTensor {
	return o.compareElem("int.GreaterElem", lhs, rhs, func(a, b IE) bool { return a > b })
}

func (o intOps[FE, IE]) GreaterEqual(lhs, rhs tensor.IntTensor) tensor.BoolTensor {
	return o.compare("int.GreaterEqual", lhs, rhs, func(a, b IE) bool { return a >= b })
}

func (o intOps[FE, IE]) GreaterEqualElem(lhs tensor.IntTensor, rhs IE) tensor.BoolTensor {
	return o.compareElem("int.GreaterEqualElem", lhs, rhs, func(a, b IE) bool { return a >= b })
}

func (o intOps[FE, IE]) Lower(lhs, rhs tensor.IntTensor) tensor.BoolTensor {
	return o.compare("int.Lower", lhs, rhs, func(a, b IE) bool { return a < b })
}

func (o intOps[FE, IE]) LowerElem(lhs tensor.IntTensor, rhs IE) tensor.BoolTensor {
	return o.compareElem("int.LowerElem", lhs, rhs, func(a, b IE) bool { return a < b })
}

func (o intOps[FE, IE]) LowerEqual(lhs, rhs tensor.IntTensor) tensor.BoolTensor {
	return o.compare("int.LowerEqual", lhs, rhs, func(a, b IE) bool { return a <= b })
}

func (o intOps[FE, IE]) LowerEqualElem(lhs tensor.IntTensor, rhs IE) tensor.BoolTensor {
	return o.compareElem("int.LowerEqualElem", lhs, rhs, func(a, b IE) bool { return a <= b })
}

// Sum reduces every element into a tensor of shape [1].
func (o intOps[FE, IE]) Sum(t tensor.IntTensor) tensor.IntTensor {
	const op = "int.Sum"
	r := o.raw(op, t)
	var total IE
	for _, v := range values[IE](op, r) {
		total += v
	}
	return wrapInt(newRaw([]IE{total}, tensor.Shape{1}, r.device))
}

func (o intOps[FE, IE]) SumDim(t tensor.IntTensor, dim int) tensor.IntTensor {
	const op = "int.SumDim"
	r := o.raw(op, t)
	tensor.CheckDim(op, dim, r.shape.Rank())
	sums := reduceDim(values[IE](op, r), r.shape, dim, IE(0), addInt[IE])
	return wrapInt(newRaw(sums, r.shape.With(dim, 1), r.device))
}

// MeanDim divides the sum along dim by its size using integer division.
func (o intOps[FE, IE]) MeanDim(t tensor.IntTensor, dim int) tensor.IntTensor {
	const op = "int.MeanDim"
	r := o.raw(op, t)
	tensor.CheckDim(op, dim, r.shape.Rank())
	if r.shape[dim] == 0 {
		tensor.Panicf(tensor.ErrInvalidArgument, "%s: mean over empty dimension %d", op, dim)
	}
	n := IE(r.shape[dim])
	sums := reduceDim(values[IE](op, r), r.shape, dim, IE(0), addInt[IE])
	for i := range sums {
		sums[i] /= n
	}
	return wrapInt(newRaw(sums, r.shape.With(dim, 1), r.device))
}

func (o intOps[FE, IE]) Argmax(t tensor.IntTensor, dim int) tensor.IntTensor {
	const op = "int.Argmax"
	r := o.raw(op, t)
	return wrapInt(argIndices[IE, IE](op, r, values[IE](op, r), dim, func(c, cur IE) bool { return c > cur }))
}

func (o intOps[FE, IE]) Argmin(t tensor.IntTensor, dim int) tensor.IntTensor {
	const op = "int.Argmin"
	r := o.raw(op, t)
	return wrapInt(argIndices[IE, IE](op, r, values[IE](op, r), dim, func(c, cur IE) bool { return c < cur }))
}

func (o intOps[FE, IE]) Cat(tensors []tensor.IntTensor, dim int) tensor.IntTensor {
	const op = "int.Cat"
	return wrapInt(cat[IE](op, unwrapAll(op, tensors), dim))
}
