package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTry(t *testing.T) {
	require.NoError(t, Try(func() {}))

	err := Try(func() { Panicf(ErrInvalidArgument, "step %d", 0) })
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, "step 0: invalid argument", err.Error())

	assert.Panics(t, func() { _ = Try(func() { panic("not an error") }) })
}

func TestChecks(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
		want error
	}{
		{"same shape", func() { CheckSameShape("add", Shape{2}, Shape{3}) }, ErrShapeMismatch},
		{"dim", func() { CheckDim("sum_dim", 2, 2) }, ErrRankViolation},
		{"negative dim", func() { CheckDim("sum_dim", -1, 2) }, ErrRankViolation},
		{"min rank", func() { CheckMinRank("transpose", Shape{3}, 2) }, ErrRankViolation},
		{"index", func() { CheckIndex("gather", 3, 3) }, ErrIndexOutOfRange},
		{"num elements", func() { CheckNumElements("reshape", Shape{2, 3}, Shape{4}) }, ErrInvalidArgument},
		{"negative shape", func() { CheckNumElements("reshape", Shape{0}, Shape{-1, 0}) }, ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, Try(tt.fn), tt.want)
		})
	}

	require.NoError(t, Try(func() {
		CheckSameShape("add", Shape{2, 3}, Shape{2, 3})
		CheckDim("sum_dim", 1, 2)
		CheckIndex("gather", 0, 1)
		CheckNumElements("reshape", Shape{2, 3}, Shape{6})
	}))
}

func TestHandles(t *testing.T) {
	var zero FloatTensor
	assert.True(t, zero.IsNil())
	h := NewInt(42)
	assert.False(t, h.IsNil())
	assert.Equal(t, 42, Unwrap[int]("test", h.Primitive()))
	require.ErrorIs(t, Try(func() { Unwrap[string]("test", NewBool(1).Primitive()) }), ErrInvalidArgument)
	assert.Equal(t, "cpu:1", Device{Type: CPU, Index: 1}.String())
	assert.Equal(t, "cpu:0", DefaultCPU.String())
}
