package cpu

import (
	"github.com/born-ml/tensorops/internal/parallel"
	"github.com/born-ml/tensorops/internal/tensor"
)

// Operations shared by the three kinds, parameterized by the element type.
// Each validates its arguments, runs the matching kernel and wraps the result
// in a new RawTensor.

func fromData[E tensor.Element](b deviceChecker, op string, data tensor.Data[E], device tensor.Device) *RawTensor {
	b.checkDevice(op, device)
	if err := data.Shape.Validate(); err != nil {
		tensor.Panicf(tensor.ErrInvalidArgument, "%s: %v", op, err)
	}
	if len(data.Value) != data.Shape.NumElements() {
		tensor.Panicf(tensor.ErrShapeMismatch, "%s: %d values for shape %v", op, len(data.Value), data.Shape)
	}
	values := make([]E, len(data.Value))
	copy(values, data.Value)
	return newRaw(values, data.Shape, device)
}

func empty[E tensor.Element](b deviceChecker, op string, shape tensor.Shape, device tensor.Device) *RawTensor {
	b.checkDevice(op, device)
	if err := shape.Validate(); err != nil {
		tensor.Panicf(tensor.ErrInvalidArgument, "%s: %v", op, err)
	}
	return newRaw(make([]E, shape.NumElements()), shape, device)
}

// reshape shares storage with r: RawTensors are immutable.
func reshape[E tensor.Element](op string, r *RawTensor, shape tensor.Shape) *RawTensor {
	tensor.CheckNumElements(op, r.shape, shape)
	return newRaw(values[E](op, r), shape, r.device)
}

func swapDims[E tensor.Element](op string, r *RawTensor, dim1, dim2 int) *RawTensor {
	tensor.CheckDim(op, dim1, r.shape.Rank())
	tensor.CheckDim(op, dim2, r.shape.Rank())
	if dim1 == dim2 {
		return r
	}
	out, shape := swapDimsValues(values[E](op, r), r.shape, dim1, dim2)
	return newRaw(out, shape, r.device)
}

func slice[E tensor.Element](op string, r *RawTensor, ranges []tensor.Range) *RawTensor {
	tensor.CheckRanges(op, r.shape, ranges)
	out, shape := sliceValues(values[E](op, r), r.shape, tensor.ExpandRanges(r.shape, ranges))
	return newRaw(out, shape, r.device)
}

func sliceAssign[E tensor.Element](op string, r *RawTensor, ranges []tensor.Range, value *RawTensor) *RawTensor {
	tensor.CheckRanges(op, r.shape, ranges)
	sameDevice(op, r, value)
	full := tensor.ExpandRanges(r.shape, ranges)
	tensor.CheckSameShape(op, tensor.RangesShape(r.shape, full), value.shape)
	out := sliceAssignValues(values[E](op, r), r.shape, full, values[E](op, value))
	return newRaw(out, r.shape, r.device)
}

func gather[E tensor.Element, IE tensor.IntElement](op string, dim int, r, indices *RawTensor) *RawTensor {
	tensor.CheckDim(op, dim, r.shape.Rank())
	sameDevice(op, r, indices)
	checkIndexShape(op, r.shape, indices.shape, dim)
	idx := indexValues[IE](op, indices)
	out := gatherValues(op, dim, values[E](op, r), r.shape, idx, indices.shape)
	return newRaw(out, indices.shape, r.device)
}

func scatter[E tensor.Element, IE tensor.IntElement](op string, dim int, r, indices, value *RawTensor, add func(E, E) E) *RawTensor {
	tensor.CheckDim(op, dim, r.shape.Rank())
	sameDevice(op, r, indices)
	sameDevice(op, r, value)
	checkIndexShape(op, r.shape, indices.shape, dim)
	tensor.CheckSameShape(op, indices.shape, value.shape)
	idx := indexValues[IE](op, indices)
	out := scatterValues(op, dim, values[E](op, r), r.shape, idx, indices.shape, values[E](op, value), add)
	return newRaw(out, r.shape, r.device)
}

func selectIndices[E tensor.Element, IE tensor.IntElement](op string, r *RawTensor, dim int, indices *RawTensor) *RawTensor {
	tensor.CheckDim(op, dim, r.shape.Rank())
	sameDevice(op, r, indices)
	if indices.shape.Rank() != 1 {
		tensor.Panicf(tensor.ErrRankViolation, "%s: indices must have rank 1, got shape %v", op, indices.shape)
	}
	out, shape := selectValues(op, values[E](op, r), r.shape, dim, indexValues[IE](op, indices))
	return newRaw(out, shape, r.device)
}

func selectAssign[E tensor.Element, IE tensor.IntElement](op string, r *RawTensor, dim int, indices, value *RawTensor, add func(E, E) E) *RawTensor {
	tensor.CheckDim(op, dim, r.shape.Rank())
	sameDevice(op, r, indices)
	sameDevice(op, r, value)
	if indices.shape.Rank() != 1 {
		tensor.Panicf(tensor.ErrRankViolation, "%s: indices must have rank 1, got shape %v", op, indices.shape)
	}
	tensor.CheckSameShape(op, r.shape.With(dim, indices.shape[0]), value.shape)
	out := selectAssignValues(op, values[E](op, r), r.shape, dim, indexValues[IE](op, indices), values[E](op, value), add)
	return newRaw(out, r.shape, r.device)
}

func maskWhere[E tensor.Element](cfg parallel.Config, op string, r, mask, value *RawTensor) *RawTensor {
	checkMask(op, r.shape, mask.shape)
	tensor.CheckSameShape(op, r.shape, value.shape)
	sameDevice(op, r, mask)
	sameDevice(op, r, value)
	out := maskWhereValues(cfg, values[E](op, r), values[bool](op, mask), values[E](op, value))
	return newRaw(out, r.shape, r.device)
}

func maskFill[E tensor.Element](cfg parallel.Config, op string, r, mask *RawTensor, value E) *RawTensor {
	checkMask(op, r.shape, mask.shape)
	sameDevice(op, r, mask)
	out := maskFillValues(cfg, values[E](op, r), values[bool](op, mask), value)
	return newRaw(out, r.shape, r.device)
}

func cat[E tensor.Element](op string, rs []*RawTensor, dim int) *RawTensor {
	shapes := make([]tensor.Shape, len(rs))
	parts := make([][]E, len(rs))
	for i, r := range rs {
		shapes[i] = r.shape
		parts[i] = values[E](op, r)
	}
	checkCat(op, shapes, dim)
	for _, r := range rs[1:] {
		sameDevice(op, rs[0], r)
	}
	out, shape := catValues(parts, shapes, dim)
	return newRaw(out, shape, rs[0].device)
}

// unary maps every element of r.
func unary[In, Out tensor.Element](cfg parallel.Config, op string, r *RawTensor, f func(In) Out) *RawTensor {
	return newRaw(mapValues(cfg, values[In](op, r), f), r.shape, r.device)
}

// binary combines two tensors of identical shape element-wise.
func binary[In, Out tensor.Element](cfg parallel.Config, op string, a, b *RawTensor, f func(In, In) Out) *RawTensor {
	tensor.CheckSameShape(op, a.shape, b.shape)
	sameDevice(op, a, b)
	return newRaw(zipValues(cfg, values[In](op, a), values[In](op, b), f), a.shape, a.device)
}

// indexValues reads an integer tensor as int64 indices.
func indexValues[IE tensor.IntElement](op string, r *RawTensor) []int64 {
	src := values[IE](op, r)
	out := make([]int64, len(src))
	for i, v := range src {
		out[i] = int64(v)
	}
	return out
}

// argIndices implements argmax/argmin over src, laid out like r, producing IE indices.
func argIndices[E any, IE tensor.IntElement](op string, r *RawTensor, src []E, dim int, better func(E, E) bool) *RawTensor {
	tensor.CheckDim(op, dim, r.shape.Rank())
	idx := argReduce(op, src, r.shape, dim, better)
	out := make([]IE, len(idx))
	for i, v := range idx {
		out[i] = IE(v)
	}
	return newRaw(out, r.shape.With(dim, 1), r.device)
}

// deviceChecker is satisfied by every Backend instantiation.
type deviceChecker interface {
	checkDevice(string, tensor.Device)
}

func unwrapAll[T interface{ Primitive() any }](op string, ts []T) []*RawTensor {
	if len(ts) == 0 {
		tensor.Panicf(tensor.ErrInvalidArgument, "%s: at least one tensor required", op)
	}
	rs := make([]*RawTensor, len(ts))
	for i, t := range ts {
		rs[i] = unwrap(op, t.Primitive())
	}
	return rs
}
