package cpu

import (
	"github.com/born-ml/tensorops/internal/parallel"
	"github.com/born-ml/tensorops/internal/tensor"
)

// boolOps implements tensor.BoolOps.
type boolOps[FE tensor.FloatElement, IE tensor.IntElement] struct {
	b *Backend[FE, IE]
}

var _ tensor.BoolOps = boolOps[float32, int64]{}

func (o boolOps[FE, IE]) cfg() parallel.Config { return o.b.cfg.Parallel }

func (o boolOps[FE, IE]) raw(op string, t tensor.BoolTensor) *RawTensor {
	return unwrap(op, t.Primitive())
}

func wrapBool(r *RawTensor) tensor.BoolTensor { return tensor.NewBool(r) }

func (o boolOps[FE, IE]) FromData(data tensor.Data[bool], device tensor.Device) tensor.BoolTensor {
	return wrapBool(fromData(o.b, "bool.FromData", data, device))
}

func (o boolOps[FE, IE]) Empty(shape tensor.Shape, device tensor.Device) tensor.BoolTensor {
	return wrapBool(empty[bool](o.b, "bool.Empty", shape, device))
}

func (o boolOps[FE, IE]) Shape(t tensor.BoolTensor) tensor.Shape {
	return o.raw("bool.Shape", t).shape.Clone()
}

func (o boolOps[FE, IE]) Device(t tensor.BoolTensor) tensor.Device {
	return o.raw("bool.Device", t).device
}

func (o boolOps[FE, IE]) ToDevice(t tensor.BoolTensor, device tensor.Device) tensor.BoolTensor {
	const op = "bool.ToDevice"
	return wrapBool(toDevice[bool](o.b, op, o.raw(op, t), device))
}

func (o boolOps[FE, IE]) ToData(t tensor.BoolTensor) *tensor.Reader[tensor.Data[bool]] {
	const op = "bool.ToData"
	return reader[bool](o.b, op, o.raw(op, t))
}

func (o boolOps[FE, IE]) IntoData(t tensor.BoolTensor) *tensor.Reader[tensor.Data[bool]] {
	const op = "bool.IntoData"
	return reader[bool](o.b, op, o.raw(op, t))
}

// IntoInt maps true to 1 and false to 0.
func (o boolOps[FE, IE]) IntoInt(t tensor.BoolTensor) tensor.IntTensor {
	const op = "bool.IntoInt"
	return wrapInt(unary(o.cfg(), op, o.raw(op, t), func(v bool) IE {
		if v {
			return 1
		}
		return 0
	}))
}

// IntoFloat maps true to 1 and false to 0.
func (o boolOps[FE, IE]) IntoFloat(t tensor.BoolTensor) tensor.FloatTensor {
	const op = "bool.IntoFloat"
	_, from := tensor.FloatConverters[FE]()
	one, zero := from(1), from(0)
	return wrapFloat(unary(o.cfg(), op, o.raw(op, t), func(v bool) FE {
		if v {
			return one
		}
		return zero
	}))
}

func (o boolOps[FE, IE]) SwapDims(t tensor.BoolTensor, dim1, dim2 int) tensor.BoolTensor {
	const op = "bool.SwapDims"
	return wrapBool(swapDims[bool](op, o.raw(op, t), dim1, dim2))
}

func (o boolOps[FE, IE]) Reshape(t tensor.BoolTensor, shape tensor.Shape) tensor.BoolTensor {
	const op = "bool.Reshape"
	return wrapBool(reshape[bool](op, o.raw(op, t), shape))
}

func (o boolOps[FE, IE]) Slice(t tensor.BoolTensor, ranges []tensor.Range) tensor.BoolTensor {
	const op = "bool.Slice"
	return wrapBool(slice[bool](op, o.raw(op, t), ranges))
}

func (o boolOps[FE, IE]) SliceAssign(t tensor.BoolTensor, ranges []tensor.Range, value tensor.BoolTensor) tensor.BoolTensor {
	const op = "bool.SliceAssign"
	return wrapBool(sliceAssign[bool](op, o.raw(op, t), ranges, o.raw(op, value)))
}

func (o boolOps[FE, IE]) Cat(tensors []tensor.BoolTensor, dim int) tensor.BoolTensor {
	const op = "bool.Cat"
	return wrapBool(cat[bool](op, unwrapAll(op, tensors), dim))
}

func (o boolOps[FE, IE]) Equal(lhs, rhs tensor.BoolTensor) tensor.BoolTensor {
	const op = "bool.Equal"
	return wrapBool(binary(o.cfg(), op, o.raw(op, lhs), o.raw(op, rhs), func(a, b bool) bool { return a == b }))
}

func (o boolOps[FE, IE]) EqualElem(lhs tensor.BoolTensor, rhs bool) tensor.BoolTensor {
	const op = "bool.EqualElem"
	return wrapBool(unary(o.cfg(), op, o.raw(op, lhs), func(a bool) bool { return a == rhs }))
}

func (o boolOps[FE, IE]) Not(t tensor.BoolTensor) tensor.BoolTensor {
	const op = "bool.Not"
	return wrapBool(unary(o.cfg(), op, o.raw(op, t), func(a bool) bool { return !a }))
}
