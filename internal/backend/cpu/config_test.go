package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvWorkers, "3")
	t.Setenv(EnvSeed, "99")
	t.Setenv(EnvAsyncReads, "true")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Parallel.NumWorkers)
	assert.True(t, cfg.Parallel.Enabled)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.True(t, cfg.AsyncReads)

	b := New[float32, int64](WithConfig(cfg))
	assert.Equal(t, cfg, b.Config())
}

func TestConfigFromEnv_Invalid(t *testing.T) {
	t.Setenv(EnvWorkers, "zero")
	_, err := ConfigFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvWorkers)
}

func TestNew_ClampsDevices(t *testing.T) {
	b := New[float32, int64](WithDevices(0))
	assert.Equal(t, 1, b.Config().Devices)
}
