package ops

import "github.com/born-ml/tensorops/internal/tensor"

// Narrow returns the sub-tensor [start, start+length) along dim, taking every
// other dimension in full.
//
// Example:
//
//	// t = [1 2 3 4]
//	ops.Narrow(b.Float(), t, 0, 1, 2) // [2 3]
func Narrow[T any](k Kind[T], t T, dim, start, length int) T {
	const op = "narrow"
	shape := k.Shape(t)
	tensor.CheckDim(op, dim, shape.Rank())
	if start < 0 || length < 0 || start+length > shape[dim] {
		tensor.Panicf(tensor.ErrIndexOutOfRange, "%s: [%d, %d) exceeds dimension %d of size %d",
			op, start, start+length, dim, shape[dim])
	}
	ranges := tensor.FullRanges(shape)
	ranges[dim] = tensor.Range{Start: start, End: start + length}
	return k.Slice(t, ranges)
}

// Chunk splits t into chunks consecutive pieces along dim.
//
// Every piece but the last has floor(size/chunks) elements along dim; the
// last one takes what remains. When the dimension is smaller than chunks,
// the result is one single-element piece per index instead.
//
// Example:
//
//	// t = [1 2 3 4]
//	ops.Chunk(b.Float(), t, 3, 0) // [1] [2] [3 4]
func Chunk[T any](k Kind[T], t T, chunks, dim int) []T {
	const op = "chunk"
	shape := k.Shape(t)
	tensor.CheckDim(op, dim, shape.Rank())
	if chunks < 1 {
		tensor.Panicf(tensor.ErrInvalidArgument, "%s: number of chunks must be >= 1, got %d", op, chunks)
	}

	size := shape[dim]
	if size < chunks {
		out := make([]T, size)
		for i := range out {
			out[i] = Narrow(k, t, dim, i, 1)
		}
		return out
	}

	step := size / chunks
	out := make([]T, chunks)
	for i := 0; i < chunks-1; i++ {
		out[i] = Narrow(k, t, dim, i*step, step)
	}
	last := (chunks - 1) * step
	out[chunks-1] = Narrow(k, t, dim, last, size-last)
	return out
}

// Repeat tiles t times along dim, which must have size 1.
//
// The result is built by writing t into each successive singleton slice of
// an empty tensor of the target shape.
func Repeat[T any](k Kind[T], t T, dim, times int) T {
	const op = "repeat"
	shape := k.Shape(t)
	tensor.CheckDim(op, dim, shape.Rank())
	if shape[dim] != 1 {
		tensor.Panicf(tensor.ErrInvalidArgument, "%s: can only repeat a singleton dimension, dimension %d has size %d",
			op, dim, shape[dim])
	}
	if times < 0 {
		tensor.Panicf(tensor.ErrInvalidArgument, "%s: negative repeat count %d", op, times)
	}

	outShape := shape.With(dim, times)
	out := k.Empty(outShape, k.Device(t))
	ranges := tensor.FullRanges(outShape)
	for i := 0; i < times; i++ {
		ranges[dim] = tensor.Range{Start: i, End: i + 1}
		out = k.SliceAssign(out, ranges, t)
	}
	return out
}

// Transpose swaps the last two dimensions. It requires rank >= 2.
func Transpose[T any](k Kind[T], t T) T {
	shape := k.Shape(t)
	tensor.CheckMinRank("transpose", shape, 2)
	return k.SwapDims(t, shape.Rank()-2, shape.Rank()-1)
}
