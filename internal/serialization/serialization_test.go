package serialization

import (
	"bytes"
	"context"
	"encoding/binary"
	"path/filepath"
	"strings"
	"testing"

	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"

	"github.com/born-ml/tensorops/internal/backend/cpu"
	"github.com/born-ml/tensorops/internal/tensor"
)

func encode(t *testing.T, w *Writer) []byte {
	t.Helper()
	var buf bytes.Buffer
	n, err := w.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)
	return buf.Bytes()
}

func TestWriteRead_AllTypes(t *testing.T) {
	w := NewWriter()
	w.SetMetadata("format", "pt")
	require.NoError(t, Add(w, "f16", tensor.Data[float16.Float16]{
		Value: []float16.Float16{float16.Fromfloat32(1.5), float16.Fromfloat32(-2)},
		Shape: tensor.Shape{2},
	}))
	require.NoError(t, Add(w, "f32", must.M1(tensor.NewData([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}))))
	require.NoError(t, Add(w, "f64", must.M1(tensor.NewData([]float64{0.25}, tensor.Shape{1}))))
	require.NoError(t, Add(w, "i32", must.M1(tensor.NewData([]int32{-7, 8}, tensor.Shape{2, 1}))))
	require.NoError(t, Add(w, "i64", must.M1(tensor.NewData([]int64{1 << 40}, tensor.Shape{1}))))
	require.NoError(t, Add(w, "mask", must.M1(tensor.NewData([]bool{true, false, true}, tensor.Shape{3}))))
	require.Equal(t, 6, w.Len())

	f, err := Read(bytes.NewReader(encode(t, w)))
	require.NoError(t, err)
	assert.Equal(t, []string{"f16", "f32", "f64", "i32", "i64", "mask"}, f.Names())
	assert.Equal(t, "pt", f.Metadata["format"])
	assert.NotEmpty(t, f.Metadata[ChecksumKey])

	info, found := f.Info("f32")
	require.True(t, found)
	assert.Equal(t, tensor.Float32, info.DType)
	assert.Equal(t, tensor.Shape{2, 3}, info.Shape)
	assert.Equal(t, int64(24), info.Size)

	f16 := must.M1(Get[float16.Float16](f, "f16"))
	assert.Equal(t, float32(1.5), f16.Value[0].Float32())
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, must.M1(Get[float32](f, "f32")).Value)
	assert.Equal(t, []float64{0.25}, must.M1(Get[float64](f, "f64")).Value)
	assert.Equal(t, tensor.Shape{2, 1}, must.M1(Get[int32](f, "i32")).Shape)
	assert.Equal(t, []int64{1 << 40}, must.M1(Get[int64](f, "i64")).Value)
	assert.Equal(t, []bool{true, false, true}, must.M1(Get[bool](f, "mask")).Value)
}

func TestGet_ConvertsElementType(t *testing.T) {
	w := NewWriter()
	require.NoError(t, Add(w, "x", must.M1(tensor.NewData([]float32{1, 2.5, -3}, tensor.Shape{3}))))
	f := must.M1(Read(bytes.NewReader(encode(t, w))))

	d := must.M1(Get[float64](f, "x"))
	assert.Equal(t, []float64{1, 2.5, -3}, d.Value)
	i := must.M1(Get[int64](f, "x"))
	assert.Equal(t, []int64{1, 2, -3}, i.Value)
}

func TestWriter_Errors(t *testing.T) {
	w := NewWriter()
	d := must.M1(tensor.NewData([]int64{1}, tensor.Shape{1}))
	require.NoError(t, Add(w, "a", d))
	require.ErrorIs(t, Add(w, "a", d), ErrDuplicateTensor)
	require.ErrorIs(t, Add(w, MetadataKey, d), ErrInvalidFile)
	require.ErrorIs(t, Add(w, "", d), ErrInvalidFile)
	require.Error(t, Add(w, "bad", tensor.Data[int64]{Value: []int64{1, 2}, Shape: tensor.Shape{3}}))
}

func TestRead_Errors(t *testing.T) {
	w := NewWriter()
	require.NoError(t, Add(w, "x", must.M1(tensor.NewData([]float32{1, 2}, tensor.Shape{2}))))
	good := encode(t, w)

	t.Run("not found", func(t *testing.T) {
		f := must.M1(Read(bytes.NewReader(good)))
		_, err := Get[float32](f, "y")
		require.ErrorIs(t, err, ErrTensorNotFound)
	})
	t.Run("corrupted data", func(t *testing.T) {
		bad := bytes.Clone(good)
		bad[len(bad)-1] ^= 0xff
		_, err := Read(bytes.NewReader(bad))
		require.ErrorIs(t, err, ErrChecksumMismatch)
	})
	t.Run("truncated data", func(t *testing.T) {
		_, err := Read(bytes.NewReader(good[:len(good)-4]))
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "out_of_bounds", verr.Type)
	})
	t.Run("header too large", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(MaxHeaderSize+1)))
		_, err := Read(&buf)
		require.ErrorIs(t, err, ErrHeaderTooLarge)
	})
	t.Run("bad json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(3)))
		buf.WriteString("{x}")
		_, err := Read(&buf)
		require.ErrorIs(t, err, ErrInvalidFile)
	})
	t.Run("element count overflow", func(t *testing.T) {
		header := `{"x":{"dtype":"F32","shape":[1099511627776,16777216],"data_offsets":[0,0]}}`
		var buf bytes.Buffer
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(len(header))))
		buf.WriteString(header)
		_, err := Read(&buf)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "invalid_shape", verr.Type)
		require.ErrorIs(t, err, ErrInvalidFile)
	})
	t.Run("unsupported dtype", func(t *testing.T) {
		header := `{"x":{"dtype":"U8","shape":[1],"data_offsets":[0,1]}}`
		var buf bytes.Buffer
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(len(header))))
		buf.WriteString(header)
		buf.WriteByte(0)
		_, err := Read(&buf)
		require.ErrorIs(t, err, ErrUnsupportedDType)
	})
}

func TestValidateTensorOffsets(t *testing.T) {
	testCases := []struct {
		name    string
		tensors []TensorInfo
		errType string
	}{
		{"valid", []TensorInfo{{Name: "a", Size: 4}, {Name: "b", offset: 4, Size: 4}}, ""},
		{"empty tensors share offset", []TensorInfo{{Name: "a"}, {Name: "b"}}, ""},
		{"overlap", []TensorInfo{{Name: "a", Size: 6}, {Name: "b", offset: 4, Size: 4}}, "offset_overlap"},
		{"out of bounds", []TensorInfo{{Name: "a", offset: 8, Size: 4}}, "out_of_bounds"},
		{"negative", []TensorInfo{{Name: "a", offset: -1, Size: 1}}, "negative_offset"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTensorOffsets(tc.tensors, 8)
			if tc.errType == "" {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.errType, verr.Type)
		})
	}
}

func TestValidateTensorName(t *testing.T) {
	require.NoError(t, ValidateTensorName("layer.0.weight"))
	require.Error(t, ValidateTensorName("a\x00b"))
	err := ValidateTensorName(strings.Repeat("x", MaxTensorNameLen+1))
	require.ErrorContains(t, err, "name_too_long")
}

func TestSaveLoad_Backend(t *testing.T) {
	b := cpu.New[float32, int64]()
	device := b.DefaultDevice()
	x := b.Float().FromData(must.M1(tensor.NewData([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})), device)
	idx := b.Int().FromData(must.M1(tensor.NewData([]int64{3, 1}, tensor.Shape{2})), device)

	w := NewWriter()
	ctx := context.Background()
	require.NoError(t, AddTensor(ctx, w, b.Float(), "x", x))
	require.NoError(t, AddTensor(ctx, w, b.Int(), "idx", idx))
	path := filepath.Join(t.TempDir(), "model.safetensors")
	require.NoError(t, w.Save(path))

	f := must.M1(Load(path))
	loaded := must.M1(LoadTensor(f, b.Float(), "x", device))
	assert.Equal(t, tensor.Shape{2, 2}, b.Float().Shape(loaded))
	got := must.M1(b.Float().IntoData(loaded).Read())
	assert.Equal(t, []float32{1, 2, 3, 4}, got.Value)

	loadedIdx := must.M1(LoadTensor(f, b.Int(), "idx", device))
	assert.Equal(t, []int64{3, 1}, must.M1(b.Int().IntoData(loadedIdx).Read()).Value)

	_, err := Load(filepath.Join(t.TempDir(), "missing.safetensors"))
	require.Error(t, err)
}
