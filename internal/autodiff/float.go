package autodiff

import "github.com/born-ml/tensorops/internal/tensor"

// floatOps wraps the inner float primitives: operands are unwrapped, the inner
// operation runs, and float results are tracked.
type floatOps[FE tensor.FloatElement, IE tensor.IntElement] struct {
	b     *Backend[FE, IE]
	inner tensor.FloatOps[FE]
}

func (f floatOps[FE, IE]) unary(op string, t tensor.FloatTensor, fn func(tensor.FloatTensor) tensor.FloatTensor) tensor.FloatTensor {
	v := unwrap(op, t)
	return f.b.track(op, fn(v.inner), v)
}

func (f floatOps[FE, IE]) binary(op string, lhs, rhs tensor.FloatTensor, fn func(a, b tensor.FloatTensor) tensor.FloatTensor) tensor.FloatTensor {
	a, b := unwrap(op, lhs), unwrap(op, rhs)
	return f.b.track(op, fn(a.inner, b.inner), a, b)
}

func (f floatOps[FE, IE]) compare(op string, lhs, rhs tensor.FloatTensor, fn func(a, b tensor.FloatTensor) tensor.BoolTensor) tensor.BoolTensor {
	return fn(unwrap(op, lhs).inner, unwrap(op, rhs).inner)
}

func (f floatOps[FE, IE]) compareElem(op string, lhs tensor.FloatTensor, rhs FE, fn func(tensor.FloatTensor, FE) tensor.BoolTensor) tensor.BoolTensor {
	return fn(unwrap(op, lhs).inner, rhs)
}

func (f floatOps[FE, IE]) FromData(data tensor.Data[FE], device tensor.Device) tensor.FloatTensor {
	return leaf(f.inner.FromData(data, device))
}

func (f floatOps[FE, IE]) Random(shape tensor.Shape, distribution tensor.Distribution, device tensor.Device) tensor.FloatTensor {
	return leaf(f.inner.Random(shape, distribution, device))
}

func (f floatOps[FE, IE]) Empty(shape tensor.Shape, device tensor.Device) tensor.FloatTensor {
	return leaf(f.inner.Empty(shape, device))
}

func (f floatOps[FE, IE]) Shape(t tensor.FloatTensor) tensor.Shape {
	return f.inner.Shape(unwrap("float.Shape", t).inner)
}

func (f floatOps[FE, IE]) Device(t tensor.FloatTensor) tensor.Device {
	return f.inner.Device(unwrap("float.Device", t).inner)
}

func (f floatOps[FE, IE]) ToDevice(t tensor.FloatTensor, device tensor.Device) tensor.FloatTensor {
	return f.unary("float.ToDevice", t, func(x tensor.FloatTensor) tensor.FloatTensor { return f.inner.ToDevice(x, device) })
}

func (f floatOps[FE, IE]) ToData(t tensor.FloatTensor) *tensor.Reader[tensor.Data[FE]] {
	return f.inner.ToData(unwrap("float.ToData", t).inner)
}

func (f floatOps[FE, IE]) IntoData(t tensor.FloatTensor) *tensor.Reader[tensor.Data[FE]] {
	return f.inner.IntoData(unwrap("float.IntoData", t).inner)
}

func (f floatOps[FE, IE]) IntoInt(t tensor.FloatTensor) tensor.IntTensor {
	return f.inner.IntoInt(unwrap("float.IntoInt", t).inner)
}

func (f floatOps[FE, IE]) Add(lhs, rhs tensor.FloatTensor) tensor.FloatTensor {
	return f.binary("float.Add", lhs, rhs, f.inner.Add)
}

func (f floatOps[FE, IE]) AddScalar(lhs tensor.FloatTensor, rhs FE) tensor.FloatTensor {
	return f.unary("float.AddScalar", lhs, func(x tensor.FloatTensor) tensor.FloatTensor { return f.inner.AddScalar(x, rhs) })
}

func (f floatOps[FE, IE]) Sub(lhs, rhs tensor.FloatTensor) tensor.FloatTensor {
	return f.binary("float.Sub", lhs, rhs, f.inner.Sub)
}

func (f floatOps[FE, IE]) SubScalar(lhs tensor.FloatTensor, rhs FE) tensor.FloatTensor {
	return f.unary("float.SubScalar", lhs, func(x tensor.FloatTensor) tensor.FloatTensor { return f.inner.SubScalar(x, rhs) })
}

func (f floatOps[FE, IE]) Mul(lhs, rhs tensor.FloatTensor) tensor.FloatTensor {
	return f.binary("float.Mul", lhs, rhs, f.inner.Mul)
}

func (f floatOps[FE, IE]) MulScalar(lhs tensor.FloatTensor, rhs FE) tensor.FloatTensor {
	return f.unary("float.MulScalar", lhs, func(x tensor.FloatTensor) tensor.FloatTensor { return f.inner.MulScalar(x, rhs) })
}

func (f floatOps[FE, IE]) Div(lhs, rhs tensor.FloatTensor) tensor.FloatTensor {
	return f.binary("float.Div", lhs, rhs, f.inner.Div)
}

func (f floatOps[FE, IE]) DivScalar(lhs tensor.FloatTensor, rhs FE) tensor.FloatTensor {
	return f.unary("float.DivScalar", lhs, func(x tensor.FloatTensor) tensor.FloatTensor { return f.inner.DivScalar(x, rhs) })
}

func (f floatOps[FE, IE]) MatMul(lhs, rhs tensor.FloatTensor) tensor.FloatTensor {
	return f.binary("float.MatMul", lhs, rhs, f.inner.MatMul)
}

func (f floatOps[FE, IE]) Recip(t tensor.FloatTensor) tensor.FloatTensor {
	return f.unary("float.Recip", t, f.inner.Recip)
}

func (f floatOps[FE, IE]) SwapDims(t tensor.FloatTensor, dim1, dim2 int) tensor.FloatTensor {
	return f.unary("float.SwapDims", t, func(x tensor.FloatTensor) tensor.FloatTensor { return f.inner.SwapDims(x, dim1, dim2) })
}

func (f floatOps[FE, IE]) Reshape(t tensor.FloatTensor, shape tensor.Shape) tensor.FloatTensor {
	return f.unary("float.Reshape", t, func(x tensor.FloatTensor) tensor.FloatTensor { return f.inner.Reshape(x, shape) })
}

func (f floatOps[FE, IE]) Gather(dim int, t tensor.FloatTensor, indices tensor.IntTensor) tensor.FloatTensor {
	return f.unary("float.Gather", t, func(x tensor.FloatTensor) tensor.FloatTensor { return f.inner.Gather(dim, x, indices) })
}

func (f floatOps[FE, IE]) Scatter(dim int, t tensor.FloatTensor, indices tensor.IntTensor, value tensor.FloatTensor) tensor.FloatTensor {
	return f.binary("float.Scatter", t, value, func(x, v tensor.FloatTensor) tensor.FloatTensor {
		return f.inner.Scatter(dim, x, indices, v)
	})
}

func (f floatOps[FE, IE]) Select(t tensor.FloatTensor, dim int, indices tensor.IntTensor) tensor.FloatTensor {
	return f.unary("float.Select", t, func(x tensor.FloatTensor) tensor.FloatTensor { return f.inner.Select(x, dim, indices) })
}

func (f floatOps[FE, IE]) SelectAssign(t tensor.FloatTensor, dim int, indices tensor.IntTensor, value tensor.FloatTensor) tensor.FloatTensor {
	return f.binary("float.SelectAssign", t, value, func(x, v tensor.FloatTensor) tensor.FloatTensor {
		return f.inner.SelectAssign(x, dim, indices, v)
	})
}

func (f floatOps[FE, IE]) Slice(t tensor.FloatTensor, ranges []tensor.Range) tensor.FloatTensor {
	return f.unary("float.Slice", t, func(x tensor.FloatTensor) tensor.FloatTensor { return f.inner.Slice(x, ranges) })
}

func (f floatOps[FE, IE]) SliceAssign(t tensor.FloatTensor, ranges []tensor.Range, value tensor.FloatTensor) tensor.FloatTensor {
	return f.binary("float.SliceAssign", t, value, func(x, v tensor.FloatTensor) tensor.FloatTensor {
		return f.inner.SliceAssign(x, ranges, v)
	})
}

func (f floatOps[FE, IE]) MaskWhere(t tensor.FloatTensor, mask tensor.BoolTensor, value tensor.FloatTensor) tensor.FloatTensor {
	return f.binary("float.MaskWhere", t, value, func(x, v tensor.FloatTensor) tensor.FloatTensor {
		return f.inner.MaskWhere(x, mask, v)
	})
}

func (f floatOps[FE, IE]) MaskFill(t tensor.FloatTensor, mask tensor.BoolTensor, value FE) tensor.FloatTensor {
	return f.unary("float.MaskFill", t, func(x tensor.FloatTensor) tensor.FloatTensor { return f.inner.MaskFill(x, mask, value) })
}

func (f floatOps[FE, IE]) Equal(lhs, rhs tensor.FloatTensor) tensor.BoolTensor {
	return f.compare("float.Equal", lhs, rhs, f.inner.Equal)
}

func (f floatOps[FE, IE]) EqualElem(lhs tensor.FloatTensor, rhs FE) tensor.BoolTensor {
	return f.compareElem("float.EqualElem", lhs, rhs, f.inner.EqualElem)
}

func (f floatOps[FE, IE]) Greater(lhs, rhs tensor.FloatTensor) tensor.BoolTensor {
	return f.compare("float.Greater", lhs, rhs, f.inner.Greater)
}

func (f floatOps[FE, IE]) GreaterElem(lhs tensor.FloatTensor, rhs FE) tensor.BoolTensor {
	return f.compareElem("float.GreaterElem", lhs, rhs, f.inner.GreaterElem)
}

func (f floatOps[FE, IE]) GreaterEqual(lhs, rhs tensor.FloatTensor) tensor.BoolTensor {
	return f.compare("float.GreaterEqual", lhs, rhs, f.inner.GreaterEqual)
}

func (f floatOps[FE, IE]) GreaterEqualElem(lhs tensor.FloatTensor, rhs FE) tensor.BoolTensor {
	return f.compareElem("float.GreaterEqualElem", lhs, rhs, f.inner.GreaterEqualElem)
}

func (f floatOps[FE, IE]) Lower(lhs, rhs tensor.FloatTensor) tensor.BoolTensor {
	return f.compare("float.Lower", lhs, rhs, f.inner.Lower)
}

func (f floatOps[FE, IE]) LowerElem(lhs tensor.FloatTensor, rhs FE) tensor.BoolTensor {
	return f.compareElem("float.LowerElem", lhs, rhs, f.inner.LowerElem)
}

func (f floatOps[FE, IE]) LowerEqual(lhs, rhs tensor.FloatTensor) tensor.BoolTensor {
	return f.compare("float.LowerEqual", lhs, rhs, f.inner.LowerEqual)
}

func (f floatOps[FE, IE]) LowerEqualElem(lhs tensor.FloatTensor, rhs FE) tensor.BoolTensor {
	return f.compareElem("float.LowerEqualElem", lhs, rhs, f.inner.LowerEqualElem)
}

func (f floatOps[FE, IE]) Sum(t tensor.FloatTensor) tensor.FloatTensor {
	return f.unary("float.Sum", t, f.inner.Sum)
}

func (f floatOps[FE, IE]) SumDim(t tensor.FloatTensor, dim int) tensor.FloatTensor {
	return f.unary("float.SumDim", t, func(x tensor.FloatTensor) tensor.FloatTensor { return f.inner.SumDim(x, dim) })
}

func (f floatOps[FE, IE]) MeanDim(t tensor.FloatTensor, dim int) tensor.FloatTensor {
	return f.unary("float.MeanDim", t, func(x tensor.FloatTensor) tensor.FloatTensor { return f.inner.MeanDim(x, dim) })
}

func (f floatOps[FE, IE]) Argmax(t tensor.FloatTensor, dim int) tensor.IntTensor {
	return f.inner.Argmax(unwrap("float.Argmax", t).inner, dim)
}

func (f floatOps[FE, IE]) Argmin(t tensor.FloatTensor, dim int) tensor.IntTensor {
	return f.inner.Argmin(unwrap("float.Argmin", t).inner, dim)
}

func (f floatOps[FE, IE]) Cat(tensors []tensor.FloatTensor, dim int) tensor.FloatTensor {
	const op = "float.Cat"
	vars := make([]*variable, len(tensors))
	inners := make([]tensor.FloatTensor, len(tensors))
	for i, t := range tensors {
		vars[i] = unwrap(op, t)
		inners[i] = vars[i].inner
	}
	return f.b.track(op, f.inner.Cat(inners, dim), vars...)
}

func (f floatOps[FE, IE]) Exp(t tensor.FloatTensor) tensor.FloatTensor {
	return f.unary("float.Exp", t, f.inner.Exp)
}

func (f floatOps[FE, IE]) Log(t tensor.FloatTensor) tensor.FloatTensor {
	return f.unary("float.Log", t, f.inner.Log)
}

func (f floatOps[FE, IE]) Log1p(t tensor.FloatTensor) tensor.FloatTensor {
	return f.unary("float.Log1p", t, f.inner.Log1p)
}

func (f floatOps[FE, IE]) Powf(lhs, rhs tensor.FloatTensor) tensor.FloatTensor {
	return f.binary("float.Powf", lhs, rhs, f.inner.Powf)
}

func (f floatOps[FE, IE]) PowfScalar(t tensor.FloatTensor, value float32) tensor.FloatTensor {
	return f.unary("float.PowfScalar", t, func(x tensor.FloatTensor) tensor.FloatTensor { return f.inner.PowfScalar(x, value) })
}

func (f floatOps[FE, IE]) Sqrt(t tensor.FloatTensor) tensor.FloatTensor {
	return f.unary("float.Sqrt", t, f.inner.Sqrt)
}

func (f floatOps[FE, IE]) Abs(t tensor.FloatTensor) tensor.FloatTensor {
	return f.unary("float.Abs", t, f.inner.Abs)
}

func (f floatOps[FE, IE]) Cos(t tensor.FloatTensor) tensor.FloatTensor {
	return f.unary("float.Cos", t, f.inner.Cos)
}

func (f floatOps[FE, IE]) Sin(t tensor.FloatTensor) tensor.FloatTensor {
	return f.unary("float.Sin", t, f.inner.Sin)
}

func (f floatOps[FE, IE]) Tanh(t tensor.FloatTensor) tensor.FloatTensor {
	return f.unary("float.Tanh", t, f.inner.Tanh)
}

func (f floatOps[FE, IE]) Erf(t tensor.FloatTensor) tensor.FloatTensor {
	return f.unary("float.Erf", t, f.inner.Erf)
}

// ToFullPrecision returns a handle owned by FullPrecision(); tracking carries over.
func (f floatOps[FE, IE]) ToFullPrecision(t tensor.FloatTensor) tensor.FloatTensor {
	return f.unary("float.ToFullPrecision", t, f.inner.ToFullPrecision)
}

// FromFullPrecision takes a handle owned by FullPrecision().
func (f floatOps[FE, IE]) FromFullPrecision(t tensor.FloatTensor) tensor.FloatTensor {
	return f.unary("float.FromFullPrecision", t, f.inner.FromFullPrecision)
}
