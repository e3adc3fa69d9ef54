package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestNewData(t *testing.T) {
	d, err := NewData([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	require.NoError(t, err)
	assert.Equal(t, 6, d.NumElements())
	assert.Equal(t, float32(6), d.At(1, 2))
	assert.Equal(t, float32(2), d.At(0, 1))

	_, err = NewData([]float32{1, 2, 3}, Shape{2, 2})
	require.Error(t, err)
	_, err = NewData([]int64{}, Shape{-1})
	require.Error(t, err)

	require.ErrorIs(t, Try(func() { d.At(0) }), ErrRankViolation)
	require.ErrorIs(t, Try(func() { d.At(2, 0) }), ErrIndexOutOfRange)
}

func TestFilledData(t *testing.T) {
	assert.Equal(t, []int32{0, 0, 0}, ZerosData[int32](Shape{3}).Value)
	assert.Equal(t, []bool{true, true}, OnesData[bool](Shape{2}).Value)
	assert.Equal(t, []float64{1, 1, 1, 1}, OnesData[float64](Shape{2, 2}).Value)

	f := FullData(Shape{1, 2}, float16.Fromfloat32(1.5))
	assert.Equal(t, []float64{1.5, 1.5}, f.Float64s())
	assert.Equal(t, Shape{1, 2}, f.Shape)
}

func TestData_Equal(t *testing.T) {
	a := Data[float32]{Value: []float32{1, 2}, Shape: Shape{2}}
	assert.True(t, a.Equal(Data[float32]{Value: []float32{1, 2}, Shape: Shape{2}}))
	assert.False(t, a.Equal(Data[float32]{Value: []float32{1, 2}, Shape: Shape{1, 2}}))
	assert.False(t, a.Equal(Data[float32]{Value: []float32{1, 3}, Shape: Shape{2}}))
}

func TestConvertData(t *testing.T) {
	d := Data[float32]{Value: []float32{-1.7, 0, 2.5}, Shape: Shape{3}}
	assert.Equal(t, []int64{-1, 0, 2}, ConvertData[int64](d).Value)
	assert.Equal(t, []bool{true, false, true}, ConvertData[bool](d).Value)
	assert.Equal(t, []float64{-1.7000000476837158, 0, 2.5}, ConvertData[float64](d).Value)
}

func TestData_String(t *testing.T) {
	short := Data[int64]{Value: []int64{1, 2}, Shape: Shape{2}}
	assert.Equal(t, "Data[int64][2] (16 B) [1 2]", short.String())

	long := ZerosData[float32](Shape{10})
	assert.Contains(t, long.String(), "...")
	assert.Contains(t, long.String(), "40 B")
}
