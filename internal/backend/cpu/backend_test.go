package cpu

import (
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"

	"github.com/born-ml/tensorops/internal/parallel"
	"github.com/born-ml/tensorops/internal/tensor"
)

// Helper to create test backend.
func newTestBackend(opts ...Option) *Backend[float32, int64] {
	return New[float32, int64](append([]Option{WithParallel(parallel.Sequential())}, opts...)...)
}

func floats(b *Backend[float32, int64], values []float32, shape ...int) tensor.FloatTensor {
	return b.Float().FromData(must.M1(tensor.NewData(values, tensor.Shape(shape))), b.DefaultDevice())
}

func ints(b *Backend[float32, int64], values []int64, shape ...int) tensor.IntTensor {
	return b.Int().FromData(must.M1(tensor.NewData(values, tensor.Shape(shape))), b.DefaultDevice())
}

func bools(b *Backend[float32, int64], values []bool, shape ...int) tensor.BoolTensor {
	return b.Bool().FromData(must.M1(tensor.NewData(values, tensor.Shape(shape))), b.DefaultDevice())
}

func floatData(b *Backend[float32, int64], x tensor.FloatTensor) tensor.Data[float32] {
	return must.M1(b.Float().ToData(x).Read())
}

func intData(b *Backend[float32, int64], x tensor.IntTensor) tensor.Data[int64] {
	return must.M1(b.Int().ToData(x).Read())
}

func boolData(b *Backend[float32, int64], x tensor.BoolTensor) tensor.Data[bool] {
	return must.M1(b.Bool().ToData(x).Read())
}

func TestBackend_New(t *testing.T) {
	b := New[float32, int64]()
	assert.Equal(t, "cpu<float32,int64>", b.Name())
	assert.Equal(t, tensor.DefaultCPU, b.DefaultDevice())
	assert.Len(t, b.Devices(), 1)

	b16 := New[float16.Float16, int32]()
	assert.Equal(t, "cpu<float16,int32>", b16.Name())
}

func TestBackend_FromDataRoundTrip(t *testing.T) {
	b := newTestBackend()
	x := floats(b, []float32{1, 2, 3, 4, 5, 6}, 2, 3)
	assert.Equal(t, tensor.Shape{2, 3}, b.Float().Shape(x))

	data := floatData(b, x)
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, data.Value)
	assert.Equal(t, tensor.Shape{2, 3}, data.Shape)

	err := tensor.Try(func() {
		b.Float().FromData(tensor.Data[float32]{Value: []float32{1, 2}, Shape: tensor.Shape{3}}, b.DefaultDevice())
	})
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestBackend_ValueSemantics(t *testing.T) {
	b := newTestBackend()
	source := []float32{1, 2, 3}
	x := floats(b, source, 3)
	source[0] = 100

	y := b.Float().SliceAssign(x, []tensor.Range{{Start: 0, End: 1}}, floats(b, []float32{9}, 1))
	assert.Equal(t, []float32{1, 2, 3}, floatData(b, x).Value)
	assert.Equal(t, []float32{9, 2, 3}, floatData(b, y).Value)

	r := b.Float().Reshape(x, tensor.Shape{3, 1})
	data := floatData(b, r)
	data.Value[0] = -1
	assert.Equal(t, []float32{1, 2, 3}, floatData(b, x).Value)
}

func TestBackend_Reader(t *testing.T) {
	b := newTestBackend()
	x := floats(b, []float32{1, 2}, 2)

	reader := b.Float().ToData(x)
	_, err := reader.Read()
	require.NoError(t, err)
	_, err = reader.Read()
	require.ErrorIs(t, err, tensor.ErrReaderConsumed)

	async := newTestBackend(WithAsyncReads(true))
	y := floats(async, []float32{3, 4}, 2)
	assert.Equal(t, []float32{3, 4}, floatData(async, y).Value)
}

func TestBackend_Devices(t *testing.T) {
	b := newTestBackend(WithDevices(2))
	x := floats(b, []float32{1, 2}, 2)
	second := tensor.Device{Type: tensor.CPU, Index: 1}

	moved := b.Float().ToDevice(x, second)
	assert.Equal(t, second, b.Float().Device(moved))
	assert.Equal(t, []float32{1, 2}, floatData(b, moved).Value)

	err := tensor.Try(func() { b.Float().Add(x, moved) })
	require.ErrorIs(t, err, tensor.ErrInvalidArgument)

	err = tensor.Try(func() { b.Float().ToDevice(x, tensor.Device{Type: tensor.CUDA}) })
	require.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestBackend_ForeignHandle(t *testing.T) {
	b := newTestBackend()
	err := tensor.Try(func() { b.Float().Shape(tensor.NewFloat("not a tensor")) })
	require.ErrorIs(t, err, tensor.ErrInvalidArgument)

	b64 := New[float64, int64]()
	x := b64.Float().FromData(tensor.OnesData[float64](tensor.Shape{2}), b64.DefaultDevice())
	err = tensor.Try(func() { b.Float().Exp(x) })
	require.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestFloat_Arithmetic(t *testing.T) {
	b := newTestBackend()
	f := b.Float()
	x := floats(b, []float32{1, 2, 3, 4}, 2, 2)
	y := floats(b, []float32{10, 20, 30, 40}, 2, 2)

	assert.Equal(t, []float32{11, 22, 33, 44}, floatData(b, f.Add(x, y)).Value)
	assert.Equal(t, []float32{9, 18, 27, 36}, floatData(b, f.Sub(y, x)).Value)
	assert.Equal(t, []float32{10, 40, 90, 160}, floatData(b, f.Mul(x, y)).Value)
	assert.Equal(t, []float32{10, 10, 10, 10}, floatData(b, f.Div(y, x)).Value)
	assert.Equal(t, []float32{2, 3, 4, 5}, floatData(b, f.AddScalar(x, 1)).Value)
	assert.Equal(t, []float32{0, 1, 2, 3}, floatData(b, f.SubScalar(x, 1)).Value)
	assert.Equal(t, []float32{3, 6, 9, 12}, floatData(b, f.MulScalar(x, 3)).Value)
	assert.Equal(t, []float32{0.5, 1, 1.5, 2}, floatData(b, f.DivScalar(x, 2)).Value)
	assert.Equal(t, []float32{1, 0.5, 0.25, 0.125}, floatData(b, f.Recip(floats(b, []float32{1, 2, 4, 8}, 4))).Value)

	err := tensor.Try(func() { f.Add(x, floats(b, []float32{1, 2}, 2)) })
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestFloat_Math(t *testing.T) {
	b := newTestBackend()
	f := b.Float()
	x := floats(b, []float32{0, 1, 4}, 3)

	assert.InDeltaSlice(t, []float32{1, 2.7182817, 54.59815}, floatData(b, f.Exp(x)).Value, 1e-4)
	assert.InDeltaSlice(t, []float32{0, 1, 2}, floatData(b, f.Sqrt(x)).Value, 1e-6)
	assert.InDeltaSlice(t, []float32{0, 0.6931472, 1.609438}, floatData(b, f.Log1p(x)).Value, 1e-6)
	assert.InDeltaSlice(t, []float32{0, 1, 16}, floatData(b, f.PowfScalar(x, 2)).Value, 1e-6)
	assert.InDeltaSlice(t, []float32{1, 1, 64}, floatData(b, f.Powf(x, floats(b, []float32{0, 2, 3}, 3))).Value, 1e-6)
	assert.InDeltaSlice(t, []float32{0, 0.7615942, 0.9993293}, floatData(b, f.Tanh(x)).Value, 1e-6)
	assert.InDeltaSlice(t, []float32{0, 0.8427008, 1}, floatData(b, f.Erf(x)).Value, 1e-6)
	assert.InDeltaSlice(t, []float32{1, 0.5403023, -0.6536436}, floatData(b, f.Cos(x)).Value, 1e-6)
	assert.InDeltaSlice(t, []float32{0, 0.84147096, -0.7568025}, floatData(b, f.Sin(x)).Value, 1e-6)
	assert.Equal(t, []float32{1, 2}, floatData(b, f.Abs(floats(b, []float32{-1, 2}, 2))).Value)
	assert.InDeltaSlice(t, []float32{0, 1}, floatData(b, f.Log(floats(b, []float32{1, 2.7182817}, 2))).Value, 1e-6)
}

func TestFloat_MatMul(t *testing.T) {
	b := newTestBackend()
	f := b.Float()

	// [[1 2 3] [4 5 6]] x [[7 8] [9 10] [11 12]]
	x := floats(b, []float32{1, 2, 3, 4, 5, 6}, 2, 3)
	y := floats(b, []float32{7, 8, 9, 10, 11, 12}, 3, 2)
	out := floatData(b, f.MatMul(x, y))
	assert.Equal(t, tensor.Shape{2, 2}, out.Shape)
	assert.Equal(t, []float32{58, 64, 139, 154}, out.Value)

	// Batched: two independent 1x2 x 2x1 products.
	bx := floats(b, []float32{1, 2, 3, 4}, 2, 1, 2)
	by := floats(b, []float32{1, 1, 2, 2}, 2, 2, 1)
	bout := floatData(b, f.MatMul(bx, by))
	assert.Equal(t, tensor.Shape{2, 1, 1}, bout.Shape)
	assert.Equal(t, []float32{3, 14}, bout.Value)

	err := tensor.Try(func() { f.MatMul(x, x) })
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
	err = tensor.Try(func() { f.MatMul(floats(b, []float32{1, 2}, 2), y) })
	require.ErrorIs(t, err, tensor.ErrRankViolation)
}

func TestFloat_Reductions(t *testing.T) {
	b := newTestBackend()
	f := b.Float()
	x := floats(b, []float32{1, 5, 3, 4, 2, 6}, 2, 3)

	sum := floatData(b, f.Sum(x))
	assert.Equal(t, tensor.Shape{1}, sum.Shape)
	assert.Equal(t, []float32{21}, sum.Value)

	rows := floatData(b, f.SumDim(x, 1))
	assert.Equal(t, tensor.Shape{2, 1}, rows.Shape)
	assert.Equal(t, []float32{9, 12}, rows.Value)

	cols := floatData(b, f.MeanDim(x, 0))
	assert.Equal(t, tensor.Shape{1, 3}, cols.Shape)
	assert.Equal(t, []float32{2.5, 3.5, 4.5}, cols.Value)

	argmax := intData(b, f.Argmax(x, 1))
	assert.Equal(t, tensor.Shape{2, 1}, argmax.Shape)
	assert.Equal(t, []int64{1, 2}, argmax.Value)
	assert.Equal(t, []int64{0, 1}, intData(b, f.Argmin(x, 1)).Value)

	// Ties resolve to the lowest index.
	ties := floats(b, []float32{3, 7, 7, 1, 1}, 5)
	assert.Equal(t, []int64{1}, intData(b, f.Argmax(ties, 0)).Value)
	assert.Equal(t, []int64{3}, intData(b, f.Argmin(ties, 0)).Value)

	err := tensor.Try(func() { f.SumDim(x, 2) })
	require.ErrorIs(t, err, tensor.ErrRankViolation)
	err = tensor.Try(func() { f.Argmax(floats(b, nil, 2, 0), 1) })
	require.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestFloat_Comparisons(t *testing.T) {
	b := newTestBackend()
	f := b.Float()
	x := floats(b, []float32{1, 2, 3}, 3)
	y := floats(b, []float32{3, 2, 1}, 3)

	assert.Equal(t, []bool{false, true, false}, boolData(b, f.Equal(x, y)).Value)
	assert.Equal(t, []bool{false, false, true}, boolData(b, f.Greater(x, y)).Value)
	assert.Equal(t, []bool{false, true, true}, boolData(b, f.GreaterEqual(x, y)).Value)
	assert.Equal(t, []bool{true, false, false}, boolData(b, f.Lower(x, y)).Value)
	assert.Equal(t, []bool{true, true, false}, boolData(b, f.LowerEqual(x, y)).Value)
	assert.Equal(t, []bool{false, true, false}, boolData(b, f.EqualElem(x, 2)).Value)
	assert.Equal(t, []bool{false, false, true}, boolData(b, f.GreaterElem(x, 2)).Value)
	assert.Equal(t, []bool{false, true, true}, boolData(b, f.GreaterEqualElem(x, 2)).Value)
	assert.Equal(t, []bool{true, false, false}, boolData(b, f.LowerElem(x, 2)).Value)
	assert.Equal(t, []bool{true, true, false}, boolData(b, f.LowerEqualElem(x, 2)).Value)
}

func TestFloat_Masking(t *testing.T) {
	b := newTestBackend()
	f := b.Float()
	x := floats(b, []float32{1, 2, 3, 4}, 4)
	mask := bools(b, []bool{true, false, true, false}, 4)

	assert.Equal(t, []float32{0, 2, 0, 4}, floatData(b, f.MaskFill(x, mask, 0)).Value)
	assert.Equal(t, []float32{10, 2, 30, 4},
		floatData(b, f.MaskWhere(x, mask, floats(b, []float32{10, 20, 30, 40}, 4))).Value)

	err := tensor.Try(func() { f.MaskFill(x, bools(b, []bool{true}, 1), 0) })
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestFloat_Random(t *testing.T) {
	b := newTestBackend(WithSeed(42))
	f := b.Float()
	shape := tensor.Shape{1000}

	uniform := floatData(b, f.Random(shape, tensor.Uniform{Low: -2, High: 3}, b.DefaultDevice()))
	for _, v := range uniform.Value {
		assert.GreaterOrEqual(t, v, float32(-2))
		assert.Less(t, v, float32(3))
	}

	bernoulli := floatData(b, f.Random(shape, tensor.Bernoulli{Prob: 0.3}, b.DefaultDevice()))
	ones := 0
	for _, v := range bernoulli.Value {
		require.True(t, v == 0 || v == 1)
		if v == 1 {
			ones++
		}
	}
	assert.InDelta(t, 300, ones, 80)

	// Same seed, same draws.
	b.Seed(7)
	first := floatData(b, f.Random(tensor.Shape{8}, tensor.StandardNormal, b.DefaultDevice()))
	b.Seed(7)
	second := floatData(b, f.Random(tensor.Shape{8}, tensor.StandardNormal, b.DefaultDevice()))
	assert.Equal(t, first.Value, second.Value)

	err := tensor.Try(func() { f.Random(shape, tensor.Bernoulli{Prob: 2}, b.DefaultDevice()) })
	require.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestFloat_Conversions(t *testing.T) {
	b := newTestBackend()
	x := floats(b, []float32{-1.7, 0.2, 2.9}, 3)
	assert.Equal(t, []int64{-1, 0, 2}, intData(b, b.Float().IntoInt(x)).Value)

	i := ints(b, []int64{-3, 4}, 2)
	assert.Equal(t, []float32{-3, 4}, floatData(b, b.Int().IntoFloat(i)).Value)

	mask := bools(b, []bool{true, false}, 2)
	assert.Equal(t, []int64{1, 0}, intData(b, b.Bool().IntoInt(mask)).Value)
	assert.Equal(t, []float32{1, 0}, floatData(b, b.Bool().IntoFloat(mask)).Value)
}

func TestFloat_FullPrecision(t *testing.T) {
	b := New[float16.Float16, int64]()
	f := b.Float()
	values := []float16.Float16{float16.Fromfloat32(1.5), float16.Fromfloat32(-2.25)}
	x := f.FromData(must.M1(tensor.NewData(values, tensor.Shape{2})), b.DefaultDevice())

	full := b.FullPrecision()
	wide := f.ToFullPrecision(x)
	wide = full.Float().MulScalar(wide, 2)
	assert.Equal(t, []float64{3, -4.5}, must.M1(full.Float().ToData(wide).Read()).Value)

	back := must.M1(f.ToData(f.FromFullPrecision(wide)).Read())
	assert.Equal(t, []float32{3, -4.5}, []float32{back.Value[0].Float32(), back.Value[1].Float32()})
}

func TestFullPrecision_SharedCompanion(t *testing.T) {
	b := New[float32, int64](WithSeed(7))
	full := b.FullPrecision()
	require.Same(t, full, b.FullPrecision())

	f := full.Float()
	shape := tensor.Shape{16}
	first := must.M1(f.ToData(f.Random(shape, tensor.StandardNormal, b.DefaultDevice())).Read())
	second := must.M1(f.ToData(f.Random(shape, tensor.StandardNormal, b.DefaultDevice())).Read())
	assert.NotEqual(t, first.Value, second.Value)

	// Reseeding the parent reseeds the companion.
	b.Seed(7)
	again := must.M1(f.ToData(f.Random(shape, tensor.StandardNormal, b.DefaultDevice())).Read())
	assert.Equal(t, first.Value, again.Value)

	b64 := New[float64, int64]()
	require.Same(t, tensor.Backend[float64, int64](b64), b64.FullPrecision())
}

func TestEmptyTensor_ParallelConfig(t *testing.T) {
	b := New[float32, int64](WithParallel(parallel.Config{Enabled: true, NumWorkers: 4}))
	f := b.Float()
	x := f.FromData(must.M1(tensor.NewData([]float32{}, tensor.Shape{0})), b.DefaultDevice())
	out := floatData(b, f.Abs(f.AddScalar(x, 1)))
	assert.Equal(t, tensor.Shape{0}, out.Shape)
	assert.Empty(t, out.Value)

	huge := tensor.Data[float32]{Value: []float32{}, Shape: tensor.Shape{1 << 40, 1 << 24}}
	err := tensor.Try(func() { f.FromData(huge, b.DefaultDevice()) })
	require.ErrorIs(t, err, tensor.ErrInvalidArgument)

	y := floats(b, []float32{-1, 2, -3, 4, -5}, 5)
	assert.Equal(t, []float32{1, 2, 3, 4, 5}, floatData(b, f.Abs(y)).Value)
}

func TestInt_Arithmetic(t *testing.T) {
	b := newTestBackend()
	o := b.Int()
	x := ints(b, []int64{7, -7, 9}, 3)
	y := ints(b, []int64{2, 2, 3}, 3)

	assert.Equal(t, []int64{9, -5, 12}, intData(b, o.Add(x, y)).Value)
	assert.Equal(t, []int64{5, -9, 6}, intData(b, o.Sub(x, y)).Value)
	assert.Equal(t, []int64{14, -14, 27}, intData(b, o.Mul(x, y)).Value)
	assert.Equal(t, []int64{3, -3, 3}, intData(b, o.Div(x, y)).Value)
	assert.Equal(t, []int64{7, 7, 9}, intData(b, o.Abs(x)).Value)
	assert.Equal(t, []int64{8, -6, 10}, intData(b, o.AddScalar(x, 1)).Value)
	assert.Equal(t, []int64{6, -8, 8}, intData(b, o.SubScalar(x, 1)).Value)
	assert.Equal(t, []int64{-7, 7, -9}, intData(b, o.MulScalar(x, -1)).Value)
	assert.Equal(t, []int64{3, -3, 4}, intData(b, o.DivScalar(x, 2)).Value)

	err := tensor.Try(func() { o.DivScalar(x, 0) })
	require.ErrorIs(t, err, tensor.ErrInvalidArgument)
	err = tensor.Try(func() { o.Div(x, ints(b, []int64{1, 0, 1}, 3)) })
	require.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestInt_Reductions(t *testing.T) {
	b := newTestBackend()
	o := b.Int()
	x := ints(b, []int64{1, 2, 3, 4, 5, 7}, 2, 3)

	assert.Equal(t, []int64{22}, intData(b, o.Sum(x)).Value)
	assert.Equal(t, []int64{6, 16}, intData(b, o.SumDim(x, 1)).Value)
	assert.Equal(t, []int64{2, 5}, intData(b, o.MeanDim(x, 1)).Value)
	assert.Equal(t, []int64{2, 2}, intData(b, o.Argmax(x, 1)).Value)
	assert.Equal(t, []int64{0, 0, 0}, intData(b, o.Argmin(x, 0)).Value)
	assert.Equal(t, []bool{false, true, false, false, false, false}, boolData(b, o.EqualElem(x, 2)).Value)
	assert.Equal(t, []bool{false, false, true, true, true, true}, boolData(b, o.GreaterElem(x, 2)).Value)
}

func TestBool_Ops(t *testing.T) {
	b := newTestBackend()
	o := b.Bool()
	x := bools(b, []bool{true, false, true, true}, 2, 2)

	assert.Equal(t, []bool{false, true, false, false}, boolData(b, o.Not(x)).Value)
	assert.Equal(t, []bool{true, false, true, true}, boolData(b, o.EqualElem(x, true)).Value)
	assert.Equal(t, []bool{true, true, false, true}, boolData(b, o.SwapDims(x, 0, 1)).Value)
	cat := boolData(b, o.Cat([]tensor.BoolTensor{x, bools(b, []bool{false, true}, 1, 2)}, 0))
	assert.Equal(t, tensor.Shape{3, 2}, cat.Shape)
	assert.Equal(t, []bool{true, false, true, true, false, true}, cat.Value)
	assert.Equal(t, []bool{false}, boolData(b, o.Slice(x, []tensor.Range{{Start: 0, End: 1}, {Start: 1, End: 2}})).Value)
	assert.Equal(t, []bool{true, true, true, true}, boolData(b, o.Equal(x, x)).Value)
	y := bools(b, []bool{true, true, false, true}, 2, 2)
	assert.Equal(t, []bool{true, false, false, true}, boolData(b, o.Equal(x, y)).Value)
}
