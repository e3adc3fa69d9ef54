package conformance_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"

	"github.com/born-ml/tensorops/internal/autodiff"
	"github.com/born-ml/tensorops/internal/backend/cpu"
	"github.com/born-ml/tensorops/internal/conformance"
	"github.com/born-ml/tensorops/internal/tensor"
)

func requirePassed(t *testing.T, report conformance.Report) {
	t.Helper()
	for _, r := range report.Failures() {
		t.Errorf("%s: %s: %+v", report.Backend, r.Name, r.Err)
	}
	require.True(t, report.Passed())
	assert.Len(t, report.Results, len(conformance.Checks[float32, int64]()))
}

func TestRun_CPU(t *testing.T) {
	t.Run("float32", func(t *testing.T) {
		requirePassed(t, conformance.Run[float32, int64](cpu.New[float32, int64]()))
	})
	t.Run("float64", func(t *testing.T) {
		requirePassed(t, conformance.Run[float64, int32](cpu.New[float64, int32]()))
	})
	t.Run("float16", func(t *testing.T) {
		requirePassed(t, conformance.Run[float16.Float16, int64](cpu.New[float16.Float16, int64]()))
	})
	t.Run("async_multi_device", func(t *testing.T) {
		b := cpu.New[float32, int64](cpu.WithAsyncReads(true), cpu.WithDevices(3))
		requirePassed(t, conformance.Run[float32, int64](b))
	})
}

func TestRun_Autodiff(t *testing.T) {
	b := autodiff.New[float32, int64](cpu.New[float32, int64]())
	b.Tape().StartRecording()
	requirePassed(t, conformance.Run[float32, int64](b))
	assert.Positive(t, b.Tape().Len())
}

func TestRunChecks_CapturesFailures(t *testing.T) {
	b := cpu.New[float32, int64]()
	checks := []conformance.Check[float32, int64]{
		{Name: "ok", Run: func(tensor.Backend[float32, int64]) error { return nil }},
		{Name: "reported", Run: func(tensor.Backend[float32, int64]) error {
			return errors.Wrap(conformance.ErrCheckFailed, "values differ")
		}},
		{Name: "panics", Run: func(b tensor.Backend[float32, int64]) error {
			b.Float().Reshape(b.Float().Empty(tensor.Shape{2}, b.DefaultDevice()), tensor.Shape{3})
			return nil
		}},
	}

	report := conformance.RunChecks(b, checks)
	require.Len(t, report.Results, 3)
	assert.Equal(t, b.Name(), report.Backend)
	assert.False(t, report.Passed())

	failures := report.Failures()
	require.Len(t, failures, 2)
	assert.Equal(t, "reported", failures[0].Name)
	assert.ErrorIs(t, failures[0].Err, conformance.ErrCheckFailed)
	assert.Equal(t, "panics", failures[1].Name)
	assert.ErrorIs(t, failures[1].Err, tensor.ErrInvalidArgument)
}

func TestChecks_UniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range conformance.Checks[float32, int64]() {
		assert.False(t, seen[c.Name], "duplicate check %q", c.Name)
		assert.NotEmpty(t, c.Description)
		seen[c.Name] = true
	}
}
