package conformance

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/born-ml/tensorops/internal/ops"
	"github.com/born-ml/tensorops/internal/tensor"
)

// Checks returns the full suite in run order.
func Checks[FE tensor.FloatElement, IE tensor.IntElement]() []Check[FE, IE] {
	return []Check[FE, IE]{
		{Name: "reshape_identity", Description: "reshape to the same shape, or away and back, keeps the values", Run: reshapeIdentity[FE, IE]},
		{Name: "value_semantics", Description: "operations never modify their operands", Run: valueSemantics[FE, IE]},
		{Name: "shape_mismatch", Description: "binary operations reject operands of different shapes", Run: shapeMismatch[FE, IE]},
		{Name: "clamp_bounds", Description: "clamp keeps every element within [min, max]", Run: clampBounds[FE, IE]},
		{Name: "clamp_saturation", Description: "clamp with an out-of-range interval saturates", Run: clampSaturation[FE, IE]},
		{Name: "transpose_round_trip", Description: "transposing twice restores the tensor", Run: transposeRoundTrip[FE, IE]},
		{Name: "repeat", Description: "repeat tiles a singleton dimension", Run: repeat[FE, IE]},
		{Name: "chunk_cat_round_trip", Description: "concatenating the chunks restores the tensor", Run: chunkCatRoundTrip[FE, IE]},
		{Name: "chunk_sizes", Description: "chunk puts the remainder in the last chunk", Run: chunkSizes[FE, IE]},
		{Name: "max_with_indices", Description: "max values agree with their indices", Run: maxWithIndices[FE, IE]},
		{Name: "sum_mean", Description: "sum and mean reduce to shape [1]", Run: sumMean[FE, IE]},
		{Name: "arange_step", Description: "arange_step enumerates start, start+step, ...", Run: arangeStep[FE, IE]},
		{Name: "narrow", Description: "narrow selects a sub-range of one dimension", Run: narrow[FE, IE]},
		{Name: "reader_single_shot", Description: "a Reader yields its value once", Run: readerSingleShot[FE, IE]},
		{Name: "precision_round_trip", Description: "widening then narrowing is lossless", Run: precisionRoundTrip[FE, IE]},
	}
}

// env bundles a backend with tensor construction and inspection helpers.
type env[FE tensor.FloatElement, IE tensor.IntElement] struct {
	b   tensor.Backend[FE, IE]
	dev tensor.Device
}

func newEnv[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE]) env[FE, IE] {
	return env[FE, IE]{b: b, dev: b.DefaultDevice()}
}

func (e env[FE, IE]) floats(shape tensor.Shape, values ...float64) tensor.FloatTensor {
	converted := make([]FE, len(values))
	for i, v := range values {
		converted[i] = tensor.ElemFromFloat64[FE](v)
	}
	return e.b.Float().FromData(tensor.Data[FE]{Value: converted, Shape: shape}, e.dev)
}

func (e env[FE, IE]) ints(shape tensor.Shape, values ...int64) tensor.IntTensor {
	converted := make([]IE, len(values))
	for i, v := range values {
		converted[i] = tensor.IntFromInt64[IE](v)
	}
	return e.b.Int().FromData(tensor.Data[IE]{Value: converted, Shape: shape}, e.dev)
}

// readFloats returns the values of t converted to float64.
func (e env[FE, IE]) readFloats(t tensor.FloatTensor) (tensor.Shape, []float64, error) {
	d, err := e.b.Float().ToData(t).Read()
	if err != nil {
		return nil, nil, err
	}
	return d.Shape, d.Float64s(), nil
}

// readInts returns the values of t converted to int64.
func (e env[FE, IE]) readInts(t tensor.IntTensor) (tensor.Shape, []int64, error) {
	d, err := e.b.Int().ToData(t).Read()
	if err != nil {
		return nil, nil, err
	}
	out := make([]int64, len(d.Value))
	for i, v := range d.Value {
		out[i] = tensor.IntToInt64(v)
	}
	return d.Shape, out, nil
}

func (e env[FE, IE]) expectFloats(what string, t tensor.FloatTensor, shape tensor.Shape, values ...float64) error {
	gotShape, got, err := e.readFloats(t)
	if err != nil {
		return errors.WithMessage(err, what)
	}
	return expect(what, gotShape, got, shape, values)
}

func (e env[FE, IE]) expectInts(what string, t tensor.IntTensor, shape tensor.Shape, values ...int64) error {
	gotShape, got, err := e.readInts(t)
	if err != nil {
		return errors.WithMessage(err, what)
	}
	return expect(what, gotShape, got, shape, values)
}

func expect[E comparable](what string, gotShape tensor.Shape, got []E, shape tensor.Shape, values []E) error {
	if !gotShape.Equal(shape) {
		return failf("%s: shape %s, want %s", what, gotShape, shape)
	}
	if !slices.Equal(got, values) {
		return failf("%s: values %v, want %v", what, got, values)
	}
	return nil
}

// expectPanic runs fn and requires it to violate the contract with kind.
func expectPanic(what string, kind error, fn func()) error {
	err := tensor.Try(fn)
	if err == nil {
		return failf("%s: no error, want %v", what, kind)
	}
	if !errors.Is(err, kind) {
		return failf("%s: got %v, want %v", what, err, kind)
	}
	return nil
}

// seq returns 0, 1, ..., n-1.
func seq(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func reshapeIdentity[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE]) error {
	e := newEnv(b)
	f := b.Float()
	shape := tensor.Shape{2, 3, 4}
	x := e.floats(shape, seq(24)...)
	return firstErr(
		e.expectFloats("same shape", f.Reshape(x, shape), shape, seq(24)...),
		e.expectFloats("away and back", f.Reshape(f.Reshape(x, tensor.Shape{6, 4}), shape), shape, seq(24)...),
		expectPanic("element count", tensor.ErrInvalidArgument, func() { f.Reshape(x, tensor.Shape{5, 5}) }),
	)
}

func valueSemantics[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE]) error {
	e := newEnv(b)
	f := b.Float()
	shape := tensor.Shape{2, 2}
	x := e.floats(shape, 1, 2, 3, 4)
	f.Add(x, x)
	f.SliceAssign(x, []tensor.Range{{Start: 0, End: 1}, {Start: 0, End: 2}}, e.floats(tensor.Shape{1, 2}, 9, 9))
	f.MaskFill(x, f.GreaterElem(x, tensor.ElemFromFloat64[FE](2)), 0)
	f.Reshape(x, tensor.Shape{4})
	return e.expectFloats("operand", x, shape, 1, 2, 3, 4)
}

func shapeMismatch[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE]) error {
	e := newEnv(b)
	x, y := e.floats(tensor.Shape{2}, 1, 2), e.floats(tensor.Shape{3}, 1, 2, 3)
	i, j := e.ints(tensor.Shape{2}, 1, 2), e.ints(tensor.Shape{1, 2}, 1, 2)
	return firstErr(
		expectPanic("float add", tensor.ErrShapeMismatch, func() { b.Float().Add(x, y) }),
		expectPanic("int mul", tensor.ErrShapeMismatch, func() { b.Int().Mul(i, j) }),
	)
}

func clampBounds[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE]) error {
	e := newEnv(b)
	shape := tensor.Shape{5}
	x := e.floats(shape, -3, -1, 0, 2, 5)
	lo, hi := tensor.ElemFromFloat64[FE](-1), tensor.ElemFromFloat64[FE](2)
	i := e.ints(shape, -3, -1, 0, 2, 5)
	return firstErr(
		e.expectFloats("float", ops.Clamp(b.Float(), x, lo, hi), shape, -1, -1, 0, 2, 2),
		e.expectFloats("float min", ops.ClampMin(b.Float(), x, lo), shape, -1, -1, 0, 2, 5),
		e.expectFloats("float max", ops.ClampMax(b.Float(), x, hi), shape, -3, -1, 0, 2, 2),
		e.expectInts("int", ops.Clamp(b.Int(), i, tensor.IntFromInt64[IE](-1), tensor.IntFromInt64[IE](2)), shape, -1, -1, 0, 2, 2),
	)
}

func clampSaturation[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE]) error {
	e := newEnv(b)
	shape := tensor.Shape{4}
	x := e.floats(shape, -3, 0, 2, 5)
	c := func(v float64) FE { return tensor.ElemFromFloat64[FE](v) }
	return firstErr(
		e.expectFloats("above", ops.Clamp(b.Float(), x, c(10), c(20)), shape, 10, 10, 10, 10),
		e.expectFloats("below", ops.Clamp(b.Float(), x, c(-20), c(-10)), shape, -10, -10, -10, -10),
		e.expectFloats("inverted", ops.Clamp(b.Float(), x, c(3), c(1)), shape, 3, 3, 3, 3),
	)
}

func transposeRoundTrip[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE]) error {
	e := newEnv(b)
	f := b.Float()
	x := e.floats(tensor.Shape{2, 3}, 0, 1, 2, 3, 4, 5)
	t := ops.Transpose(f, x)
	return firstErr(
		e.expectFloats("transpose", t, tensor.Shape{3, 2}, 0, 3, 1, 4, 2, 5),
		e.expectFloats("round trip", ops.Transpose(f, t), tensor.Shape{2, 3}, 0, 1, 2, 3, 4, 5),
		expectPanic("rank 1", tensor.ErrRankViolation, func() { ops.Transpose(f, e.floats(tensor.Shape{2}, 0, 1)) }),
	)
}

func repeat[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE]) error {
	e := newEnv(b)
	f := b.Float()
	x := e.floats(tensor.Shape{1, 3}, 1, 2, 3)
	return firstErr(
		e.expectFloats("rows", ops.Repeat(f, x, 0, 3), tensor.Shape{3, 3}, 1, 2, 3, 1, 2, 3, 1, 2, 3),
		e.expectInts("int", ops.Repeat(b.Int(), e.ints(tensor.Shape{2, 1}, 4, 5), 1, 2), tensor.Shape{2, 2}, 4, 4, 5, 5),
		expectPanic("non-singleton", tensor.ErrInvalidArgument, func() { ops.Repeat(f, x, 1, 2) }),
	)
}

func chunkCatRoundTrip[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE]) error {
	e := newEnv(b)
	f := b.Float()
	shape := tensor.Shape{7, 2}
	x := e.floats(shape, seq(14)...)
	chunks := ops.Chunk(f, x, 3, 0)
	if len(chunks) != 3 {
		return failf("chunk count %d, want 3", len(chunks))
	}
	return e.expectFloats("cat", f.Cat(chunks, 0), shape, seq(14)...)
}

func chunkSizes[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE]) error {
	e := newEnv(b)
	x := e.floats(tensor.Shape{4}, 1, 2, 3, 4)
	chunks := ops.Chunk(b.Float(), x, 3, 0)
	if len(chunks) != 3 {
		return failf("chunk count %d, want 3", len(chunks))
	}
	singles := ops.Chunk(b.Float(), x, 6, 0)
	if len(singles) != 4 {
		return failf("chunk count %d for 6 chunks of 4, want 4", len(singles))
	}
	return firstErr(
		e.expectFloats("chunk 0", chunks[0], tensor.Shape{1}, 1),
		e.expectFloats("chunk 1", chunks[1], tensor.Shape{1}, 2),
		e.expectFloats("chunk 2", chunks[2], tensor.Shape{2}, 3, 4),
		e.expectFloats("single 3", singles[3], tensor.Shape{1}, 4),
	)
}

func maxWithIndices[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE]) error {
	e := newEnv(b)
	f := b.Float()
	x := e.floats(tensor.Shape{2, 3}, 1, 5, 5, 7, 0, 7)
	values, indices := ops.MaxDimWithIndices(f, x, 1)
	minValues, minIndices := ops.MinDimWithIndices(f, x, 1)
	want := tensor.Shape{2, 1}
	return firstErr(
		e.expectFloats("max values", values, want, 5, 7),
		e.expectInts("max indices", indices, want, 1, 0),
		e.expectFloats("max dim", ops.MaxDim(f, x, 1), want, 5, 7),
		e.expectFloats("gathered", f.Gather(1, x, indices), want, 5, 7),
		e.expectFloats("min values", minValues, want, 1, 0),
		e.expectInts("min indices", minIndices, want, 0, 1),
		e.expectFloats("max", ops.Max(f, x), tensor.Shape{1}, 7),
		e.expectFloats("min", ops.Min(f, x), tensor.Shape{1}, 0),
	)
}

func sumMean[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE]) error {
	e := newEnv(b)
	x := e.floats(tensor.Shape{4}, 1, 2, 3, 4)
	i := e.ints(tensor.Shape{4}, 1, 2, 3, 4)
	return firstErr(
		e.expectFloats("sum", b.Float().Sum(x), tensor.Shape{1}, 10),
		e.expectFloats("mean", ops.Mean(b.Float(), x), tensor.Shape{1}, 2.5),
		e.expectInts("int sum", b.Int().Sum(i), tensor.Shape{1}, 10),
		e.expectInts("int mean", ops.Mean(b.Int(), i), tensor.Shape{1}, 2),
	)
}

func arangeStep[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE]) error {
	e := newEnv(b)
	r := tensor.Range{Start: 0, End: 10}
	return firstErr(
		e.expectInts("step 3", ops.ArangeStep(b.Int(), r, 3, e.dev), tensor.Shape{4}, 0, 3, 6, 9),
		e.expectInts("step 1", ops.Arange(b.Int(), tensor.Range{Start: 2, End: 5}, e.dev), tensor.Shape{3}, 2, 3, 4),
		expectPanic("step 0", tensor.ErrInvalidArgument, func() { ops.ArangeStep(b.Int(), r, 0, e.dev) }),
	)
}

func narrow[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE]) error {
	e := newEnv(b)
	x := e.floats(tensor.Shape{4}, 1, 2, 3, 4)
	mask := b.Bool().FromData(tensor.Data[bool]{Value: []bool{true, false, true, false}, Shape: tensor.Shape{4}}, e.dev)
	if got := b.Bool().Shape(ops.Narrow(b.Bool(), mask, 0, 1, 3)); !got.Equal(tensor.Shape{3}) {
		return failf("bool narrow: shape %s, want [3]", got)
	}
	return firstErr(
		e.expectFloats("float", ops.Narrow(b.Float(), x, 0, 1, 2), tensor.Shape{2}, 2, 3),
		expectPanic("past end", tensor.ErrIndexOutOfRange, func() { ops.Narrow(b.Float(), x, 0, 3, 2) }),
	)
}

func readerSingleShot[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE]) error {
	e := newEnv(b)
	x := e.floats(tensor.Shape{2}, 1, 2)
	r := b.Float().ToData(x)
	if _, err := r.Read(); err != nil {
		return errors.WithMessage(err, "first read")
	}
	if _, err := r.Read(); !errors.Is(err, tensor.ErrReaderConsumed) {
		return failf("second read: got %v, want %v", err, tensor.ErrReaderConsumed)
	}
	// The tensor itself stays readable.
	return e.expectFloats("fresh reader", x, tensor.Shape{2}, 1, 2)
}

func precisionRoundTrip[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE]) error {
	e := newEnv(b)
	f := b.Float()
	shape := tensor.Shape{2, 2}
	x := e.floats(shape, -1.5, 0, 0.25, 1024)
	_, want, err := e.readFloats(x)
	if err != nil {
		return err
	}

	full := f.ToFullPrecision(x)
	d, err := b.FullPrecision().Float().ToData(full).Read()
	if err != nil {
		return errors.WithMessage(err, "full precision read")
	}
	if err := expect("widened", d.Shape, d.Value, shape, want); err != nil {
		return err
	}
	return e.expectFloats("round trip", f.FromFullPrecision(full), shape, want...)
}
