package ops_test

import (
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tensorops/internal/backend/cpu"
	"github.com/born-ml/tensorops/internal/ops"
	"github.com/born-ml/tensorops/internal/parallel"
	"github.com/born-ml/tensorops/internal/tensor"
)

type backend = cpu.Backend[float32, int64]

func newBackend() *backend {
	return cpu.New[float32, int64](cpu.WithParallel(parallel.Sequential()))
}

func floats(b *backend, values []float32, shape ...int) tensor.FloatTensor {
	return b.Float().FromData(must.M1(tensor.NewData(values, tensor.Shape(shape))), b.DefaultDevice())
}

func ints(b *backend, values []int64, shape ...int) tensor.IntTensor {
	return b.Int().FromData(must.M1(tensor.NewData(values, tensor.Shape(shape))), b.DefaultDevice())
}

func bools(b *backend, values []bool, shape ...int) tensor.BoolTensor {
	return b.Bool().FromData(must.M1(tensor.NewData(values, tensor.Shape(shape))), b.DefaultDevice())
}

// read materializes any kind through its Elemental op set.
func read[T any, E tensor.Element](k ops.Elemental[T, E], t T) tensor.Data[E] {
	return must.M1(k.ToData(t).Read())
}

func TestNarrow(t *testing.T) {
	b := newBackend()
	x := floats(b, []float32{1, 2, 3, 4}, 4)

	out := read(b.Float(), ops.Narrow(b.Float(), x, 0, 1, 2))
	assert.Equal(t, tensor.Shape{2}, out.Shape)
	assert.Equal(t, []float32{2, 3}, out.Value)

	m := ints(b, []int64{1, 2, 3, 4, 5, 6}, 2, 3)
	cols := read(b.Int(), ops.Narrow(b.Int(), m, 1, 1, 2))
	assert.Equal(t, tensor.Shape{2, 2}, cols.Shape)
	assert.Equal(t, []int64{2, 3, 5, 6}, cols.Value)

	mask := bools(b, []bool{true, false, false, true}, 4)
	assert.Equal(t, []bool{false, true}, read(b.Bool(), ops.Narrow(b.Bool(), mask, 0, 2, 2)).Value)

	err := tensor.Try(func() { ops.Narrow(b.Float(), x, 0, 3, 2) })
	require.ErrorIs(t, err, tensor.ErrIndexOutOfRange)
	err = tensor.Try(func() { ops.Narrow(b.Float(), x, 1, 0, 1) })
	require.ErrorIs(t, err, tensor.ErrRankViolation)
}

func TestChunk(t *testing.T) {
	b := newBackend()
	f := b.Float()
	x := floats(b, []float32{1, 2, 3, 4}, 4)

	testCases := []struct {
		name   string
		chunks int
		want   [][]float32
	}{
		{"even", 2, [][]float32{{1, 2}, {3, 4}}},
		{"remainder in last", 3, [][]float32{{1}, {2}, {3, 4}}},
		{"one", 1, [][]float32{{1, 2, 3, 4}}},
		{"singletons", 4, [][]float32{{1}, {2}, {3}, {4}}},
		{"more chunks than elements", 6, [][]float32{{1}, {2}, {3}, {4}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parts := ops.Chunk(f, x, tc.chunks, 0)
			require.Len(t, parts, len(tc.want))
			for i, part := range parts {
				assert.Equal(t, tc.want[i], read(f, part).Value)
			}
		})
	}

	err := tensor.Try(func() { ops.Chunk(f, x, 0, 0) })
	require.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestChunkCatRoundTrip(t *testing.T) {
	b := newBackend()
	k := b.Int()
	x := ints(b, []int64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}, 3, 5)
	for chunks := 1; chunks <= 5; chunks++ {
		parts := ops.Chunk(k, x, chunks, 1)
		assert.True(t, read(k, x).Equal(read(k, k.Cat(parts, 1))), "chunks=%d", chunks)
	}
}

func TestRepeat(t *testing.T) {
	b := newBackend()
	f := b.Float()
	x := floats(b, []float32{1, 2, 3}, 1, 3)

	out := read(f, ops.Repeat(f, x, 0, 3))
	assert.Equal(t, tensor.Shape{3, 3}, out.Shape)
	assert.Equal(t, []float32{1, 2, 3, 1, 2, 3, 1, 2, 3}, out.Value)

	col := ints(b, []int64{4, 5}, 2, 1)
	assert.Equal(t, []int64{4, 4, 5, 5}, read(b.Int(), ops.Repeat(b.Int(), col, 1, 2)).Value)

	err := tensor.Try(func() { ops.Repeat(f, x, 1, 2) })
	require.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestTranspose(t *testing.T) {
	b := newBackend()
	f := b.Float()
	x := floats(b, []float32{1, 2, 3, 4, 5, 6}, 2, 3)

	tr := read(f, ops.Transpose(f, x))
	assert.Equal(t, tensor.Shape{3, 2}, tr.Shape)
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, tr.Value)
	assert.True(t, read(f, x).Equal(read(f, ops.Transpose(f, ops.Transpose(f, x)))))

	err := tensor.Try(func() { ops.Transpose(f, floats(b, []float32{1}, 1)) })
	require.ErrorIs(t, err, tensor.ErrRankViolation)
}

func TestCreation(t *testing.T) {
	b := newBackend()
	shape := tensor.Shape{2, 2}

	assert.Equal(t, []float32{0, 0, 0, 0}, read(b.Float(), ops.Zeros(b.Float(), shape, b.DefaultDevice())).Value)
	assert.Equal(t, []int64{1, 1, 1, 1}, read(b.Int(), ops.Ones(b.Int(), shape, b.DefaultDevice())).Value)
	assert.Equal(t, []float32{2.5, 2.5, 2.5, 2.5}, read(b.Float(), ops.Full(b.Float(), shape, 2.5, b.DefaultDevice())).Value)
	assert.Equal(t, []bool{false, false, false, false}, read(b.Bool(), ops.Zeros(b.Bool(), shape, b.DefaultDevice())).Value)
}

func TestClamp(t *testing.T) {
	b := newBackend()
	f := b.Float()
	x := floats(b, []float32{-3, -1, 0, 2, 5}, 5)

	assert.Equal(t, []float32{-1, -1, 0, 2, 5}, read(f, ops.ClampMin(f, x, -1)).Value)
	assert.Equal(t, []float32{-3, -1, 0, 2, 2}, read(f, ops.ClampMax(f, x, 2)).Value)
	assert.Equal(t, []float32{-1, -1, 0, 2, 2}, read(f, ops.Clamp(f, x, -1, 2)).Value)

	// min > max saturates to min.
	assert.Equal(t, []float32{3, 3, 3, 3, 3}, read(f, ops.Clamp(f, x, 3, 1)).Value)

	i := ints(b, []int64{-5, 0, 5}, 3)
	assert.Equal(t, []int64{-1, 0, 1}, read(b.Int(), ops.Clamp(b.Int(), i, -1, 1)).Value)
}

func TestNeg(t *testing.T) {
	b := newBackend()
	assert.Equal(t, []float32{-1, 2}, read(b.Float(), ops.Neg(b.Float(), floats(b, []float32{1, -2}, 2))).Value)
	assert.Equal(t, []int64{-3, 0}, read(b.Int(), ops.Neg(b.Int(), ints(b, []int64{3, 0}, 2))).Value)
}

func TestSumMean(t *testing.T) {
	b := newBackend()
	f := b.Float()
	x := floats(b, []float32{1, 2, 3, 4}, 2, 2)

	sum := read(f, f.Sum(x))
	assert.Equal(t, tensor.Shape{1}, sum.Shape)
	assert.Equal(t, []float32{10}, sum.Value)

	mean := read(f, ops.Mean(f, x))
	assert.Equal(t, tensor.Shape{1}, mean.Shape)
	assert.Equal(t, []float32{2.5}, mean.Value)

	assert.Equal(t, []int64{2}, read(b.Int(), ops.Mean(b.Int(), ints(b, []int64{1, 2, 3, 4}, 2, 2))).Value)
}

func TestMaxMin(t *testing.T) {
	b := newBackend()
	f := b.Float()
	x := floats(b, []float32{3, 9, 1, 7, 2, 8}, 2, 3)

	assert.Equal(t, []float32{9}, read(f, ops.Max(f, x)).Value)
	assert.Equal(t, []float32{1}, read(f, ops.Min(f, x)).Value)

	maxDim := read(f, ops.MaxDim(f, x, 1))
	assert.Equal(t, tensor.Shape{2, 1}, maxDim.Shape)
	assert.Equal(t, []float32{9, 8}, maxDim.Value)
	assert.Equal(t, []float32{1, 2}, read(f, ops.MinDim(f, x, 1)).Value)

	values, indices := ops.MaxDimWithIndices(f, x, 0)
	assert.Equal(t, read(f, ops.MaxDim(f, x, 0)), read(f, values))
	assert.Equal(t, read(b.Int(), f.Argmax(x, 0)), read(b.Int(), indices))
	assert.Equal(t, []int64{1, 0, 1}, read(b.Int(), f.Argmax(x, 0)).Value)

	values, indices = ops.MinDimWithIndices(f, x, 1)
	assert.Equal(t, []float32{1, 2}, read(f, values).Value)
	assert.Equal(t, []int64{2, 1}, read(b.Int(), indices).Value)

	assert.Equal(t, []int64{7}, read(b.Int(), ops.Max(b.Int(), ints(b, []int64{7, -2, 7}, 3))).Value)
}

func TestArange(t *testing.T) {
	b := newBackend()
	k := b.Int()

	out := read(k, ops.ArangeStep(k, tensor.Range{Start: 0, End: 10}, 3, b.DefaultDevice()))
	assert.Equal(t, tensor.Shape{4}, out.Shape)
	assert.Equal(t, []int64{0, 3, 6, 9}, out.Value)

	assert.Equal(t, []int64{2, 3, 4}, read(k, ops.Arange(k, tensor.Range{Start: 2, End: 5}, b.DefaultDevice())).Value)
	assert.Equal(t, tensor.Shape{0}, read(k, ops.Arange(k, tensor.Range{Start: 5, End: 5}, b.DefaultDevice())).Shape)

	err := tensor.Try(func() { ops.ArangeStep(k, tensor.Range{Start: 0, End: 3}, 0, b.DefaultDevice()) })
	require.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestPowi(t *testing.T) {
	b := newBackend()
	x := floats(b, []float32{2, 3, 4}, 3)

	assert.Equal(t, []float32{8, 27, 64}, read(b.Float(), ops.PowiScalar[float32, int64](b, x, 3)).Value)
	assert.Equal(t, []float32{1, 3, 16}, read(b.Float(), ops.Powi[float32, int64](b, x, ints(b, []int64{0, 1, 2}, 3))).Value)
}

func TestDifferentiableHooks_Default(t *testing.T) {
	b := newBackend()
	x := floats(b, []float32{1}, 1)

	assert.Equal(t, x, ops.Detach[float32, int64](b, x))
	assert.Equal(t, x, ops.SetRequireGrad[float32, int64](b, x, true))
	assert.False(t, ops.IsRequireGrad[float32, int64](b, x))
}

// tracking is a minimal Differentiable backend: it remembers which handles require a gradient.
type tracking struct {
	*backend
	tracked map[tensor.FloatTensor]bool
}

func (tb *tracking) FloatDetach(t tensor.FloatTensor) tensor.FloatTensor {
	detached := tb.Float().Reshape(t, tb.Float().Shape(t))
	delete(tb.tracked, detached)
	return detached
}

func (tb *tracking) FloatSetRequireGrad(t tensor.FloatTensor, requireGrad bool) tensor.FloatTensor {
	tb.tracked[t] = requireGrad
	return t
}

func (tb *tracking) FloatIsRequireGrad(t tensor.FloatTensor) bool {
	return tb.tracked[t]
}

func TestDifferentiableHooks_Override(t *testing.T) {
	tb := &tracking{backend: newBackend(), tracked: map[tensor.FloatTensor]bool{}}
	x := floats(tb.backend, []float32{1, 2}, 2)

	x = ops.SetRequireGrad[float32, int64](tb, x, true)
	assert.True(t, ops.IsRequireGrad[float32, int64](tb, x))
	assert.False(t, ops.IsRequireGrad[float32, int64](tb, ops.Detach[float32, int64](tb, x)))
}
