package cpu

import (
	"github.com/born-ml/tensorops/internal/parallel"
	"github.com/born-ml/tensorops/internal/tensor"
)

// Kind-independent kernels. Every kernel reads its inputs and writes a fresh
// output slice; none of them mutates an input.

// mapValues applies f element-wise.
func mapValues[In, Out any](cfg parallel.Config, src []In, f func(In) Out) []Out {
	out := make([]Out, len(src))
	parallel.For(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = f(src[i])
		}
	}, cfg)
	return out
}

// zipValues applies f element-wise to two slices of equal length.
func zipValues[A, B, Out any](cfg parallel.Config, a []A, b []B, f func(A, B) Out) []Out {
	out := make([]Out, len(a))
	parallel.For(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = f(a[i], b[i])
		}
	}, cfg)
	return out
}

// swapDimsValues exchanges two dimensions.
func swapDimsValues[E any](src []E, shape tensor.Shape, dim1, dim2 int) ([]E, tensor.Shape) {
	outShape := shape.Clone()
	outShape[dim1], outShape[dim2] = shape[dim2], shape[dim1]
	srcStrides := shape.Strides()

	out := make([]E, len(src))
	coords := make([]int, len(shape))
	for i := range out {
		outShape.Unravel(i, coords)
		coords[dim1], coords[dim2] = coords[dim2], coords[dim1]
		out[i] = src[tensor.Offset(coords, srcStrides)]
	}
	return out, outShape
}

// sliceValues copies the region selected by ranges (one per dimension).
func sliceValues[E any](src []E, shape tensor.Shape, ranges []tensor.Range) ([]E, tensor.Shape) {
	outShape := tensor.RangesShape(shape, ranges)
	srcStrides := shape.Strides()

	out := make([]E, outShape.NumElements())
	coords := make([]int, len(shape))
	for i := range out {
		outShape.Unravel(i, coords)
		for d, r := range ranges {
			coords[d] += r.Start
		}
		out[i] = src[tensor.Offset(coords, srcStrides)]
	}
	return out, outShape
}

// sliceAssignValues returns a copy of dst with the region selected by ranges replaced by value.
func sliceAssignValues[E any](dst []E, shape tensor.Shape, ranges []tensor.Range, value []E) []E {
	regionShape := tensor.RangesShape(shape, ranges)
	dstStrides := shape.Strides()

	out := make([]E, len(dst))
	copy(out, dst)
	coords := make([]int, len(shape))
	for i, v := range value {
		regionShape.Unravel(i, coords)
		for d, r := range ranges {
			coords[d] += r.Start
		}
		out[tensor.Offset(coords, dstStrides)] = v
	}
	return out
}

// checkIndexShape validates that indices have the tensor's rank and match its
// shape on every dimension except dim.
func checkIndexShape(op string, shape, indexShape tensor.Shape, dim int) {
	if indexShape.Rank() != shape.Rank() {
		tensor.Panicf(tensor.ErrRankViolation, "%s: index rank %d != tensor rank %d", op, indexShape.Rank(), shape.Rank())
	}
	for d := range shape {
		if d != dim && indexShape[d] != shape[d] {
			tensor.Panicf(tensor.ErrShapeMismatch, "%s: index shape %v incompatible with tensor shape %v at dimension %d",
				op, indexShape, shape, d)
		}
	}
}

// gatherValues picks src elements along dim using indices; the output has the indices' shape.
func gatherValues[E any](op string, dim int, src []E, shape tensor.Shape, indices []int64, indexShape tensor.Shape) []E {
	srcStrides := shape.Strides()
	out := make([]E, len(indices))
	coords := make([]int, len(shape))
	for i, idx := range indices {
		tensor.CheckIndex(op, idx, shape[dim])
		indexShape.Unravel(i, coords)
		coords[dim] = int(idx)
		out[i] = src[tensor.Offset(coords, srcStrides)]
	}
	return out
}

// scatterValues returns a copy of dst where value[i] has been accumulated into
// the position gathered by indices[i].
func scatterValues[E any](op string, dim int, dst []E, shape tensor.Shape, indices []int64, indexShape tensor.Shape,
	value []E, add func(E, E) E,
) []E {
	dstStrides := shape.Strides()
	out := make([]E, len(dst))
	copy(out, dst)
	coords := make([]int, len(shape))
	for i, idx := range indices {
		tensor.CheckIndex(op, idx, shape[dim])
		indexShape.Unravel(i, coords)
		coords[dim] = int(idx)
		off := tensor.Offset(coords, dstStrides)
		out[off] = add(out[off], value[i])
	}
	return out
}

// selectValues picks whole slices along dim in the order given by indices.
func selectValues[E any](op string, src []E, shape tensor.Shape, dim int, indices []int64) ([]E, tensor.Shape) {
	for _, idx := range indices {
		tensor.CheckIndex(op, idx, shape[dim])
	}
	outShape := shape.With(dim, len(indices))
	srcStrides := shape.Strides()

	out := make([]E, outShape.NumElements())
	coords := make([]int, len(shape))
	for i := range out {
		outShape.Unravel(i, coords)
		coords[dim] = int(indices[coords[dim]])
		out[i] = src[tensor.Offset(coords, srcStrides)]
	}
	return out, outShape
}

// selectAssignValues returns a copy of dst where slice i of value along dim
// has been accumulated into slice indices[i].
func selectAssignValues[E any](op string, dst []E, shape tensor.Shape, dim int, indices []int64,
	value []E, add func(E, E) E,
) []E {
	for _, idx := range indices {
		tensor.CheckIndex(op, idx, shape[dim])
	}
	valueShape := shape.With(dim, len(indices))
	dstStrides := shape.Strides()

	out := make([]E, len(dst))
	copy(out, dst)
	coords := make([]int, len(shape))
	for i, v := range value {
		valueShape.Unravel(i, coords)
		coords[dim] = int(indices[coords[dim]])
		off := tensor.Offset(coords, dstStrides)
		out[off] = add(out[off], v)
	}
	return out
}

// catValues concatenates parts along dim. Shapes must already be validated.
func catValues[E any](parts [][]E, shapes []tensor.Shape, dim int) ([]E, tensor.Shape) {
	outShape := shapes[0].Clone()
	outShape[dim] = 0
	for _, s := range shapes {
		outShape[dim] += s[dim]
	}
	outStrides := outShape.Strides()

	out := make([]E, outShape.NumElements())
	coords := make([]int, len(outShape))
	offset := 0
	for p, part := range parts {
		shape := shapes[p]
		for i, v := range part {
			shape.Unravel(i, coords)
			coords[dim] += offset
			out[tensor.Offset(coords, outStrides)] = v
		}
		offset += shape[dim]
	}
	return out, outShape
}

// checkCat validates concatenation inputs: same rank, same shape except along dim.
func checkCat(op string, shapes []tensor.Shape, dim int) {
	if len(shapes) == 0 {
		tensor.Panicf(tensor.ErrInvalidArgument, "%s: at least one tensor required", op)
	}
	first := shapes[0]
	tensor.CheckDim(op, dim, first.Rank())
	for i, s := range shapes[1:] {
		if s.Rank() != first.Rank() {
			tensor.Panicf(tensor.ErrShapeMismatch, "%s: tensor %d has rank %d, expected %d", op, i+1, s.Rank(), first.Rank())
		}
		for d := range s {
			if d != dim && s[d] != first[d] {
				tensor.Panicf(tensor.ErrShapeMismatch, "%s: tensor %d has shape %v, incompatible with %v along dimension %d",
					op, i+1, s, first, d)
			}
		}
	}
}

// dimLayout splits a shape around dim into (outer, size, inner) extents.
func dimLayout(shape tensor.Shape, dim int) (outer, size, inner int) {
	outer, inner = 1, 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}
	for d := dim + 1; d < len(shape); d++ {
		inner *= shape[d]
	}
	return outer, shape[dim], inner
}

// reduceDim folds src along dim; the reduced dimension is kept with size 1.
func reduceDim[E, Acc any](src []E, shape tensor.Shape, dim int, init Acc, step func(Acc, E) Acc) []Acc {
	outer, size, inner := dimLayout(shape, dim)
	out := make([]Acc, outer*inner)
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			acc := init
			for k := 0; k < size; k++ {
				acc = step(acc, src[(o*size+k)*inner+in])
			}
			out[o*inner+in] = acc
		}
	}
	return out
}

// argReduce returns, for every position of the reduced dim, the index of the
// element preferred by better. Only a strictly better element replaces the
// current one, so ties resolve to the lowest index.
func argReduce[E any](op string, src []E, shape tensor.Shape, dim int, better func(candidate, current E) bool) []int64 {
	outer, size, inner := dimLayout(shape, dim)
	if size == 0 {
		tensor.Panicf(tensor.ErrInvalidArgument, "%s: cannot reduce empty dimension %d of shape %v", op, dim, shape)
	}
	out := make([]int64, outer*inner)
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			best := 0
			bestValue := src[o*size*inner+in]
			for k := 1; k < size; k++ {
				v := src[(o*size+k)*inner+in]
				if better(v, bestValue) {
					best, bestValue = k, v
				}
			}
			out[o*inner+in] = int64(best)
		}
	}
	return out
}

// checkMask validates a mask against the masked tensor.
func checkMask(op string, shape, maskShape tensor.Shape) {
	tensor.CheckSameShape(op, shape, maskShape)
}

// maskWhereValues selects value where mask is true, src elsewhere.
func maskWhereValues[E any](cfg parallel.Config, src []E, mask []bool, value []E) []E {
	out := make([]E, len(src))
	parallel.For(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			if mask[i] {
				out[i] = value[i]
			} else {
				out[i] = src[i]
			}
		}
	}, cfg)
	return out
}

// maskFillValues replaces elements where mask is true with value.
func maskFillValues[E any](cfg parallel.Config, src []E, mask []bool, value E) []E {
	return zipValues(cfg, src, mask, func(v E, m bool) E {
		if m {
			return value
		}
		return v
	})
}
