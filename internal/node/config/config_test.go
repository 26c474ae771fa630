package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 5555, cfg.Server.BasePort)
	assert.Equal(t, 6666, cfg.Leader.Port)
	assert.Equal(t, StorageBackendDisk, cfg.Storage.Backend)
	assert.Equal(t, DefaultToleranceFile, cfg.Tolerance.File)
	assert.Equal(t, 5*time.Second, cfg.HealthWarmup())
	assert.Equal(t, 10*time.Second, cfg.HealthInterval())
	assert.Zero(t, cfg.RPCTimeout())
}

func TestHealthDurations_Clamp(t *testing.T) {
	cfg := DefaultConfig()

	for _, ms := range []int{0, -5} {
		cfg.Health.IntervalMS = ms
		assert.Equal(t, 10*time.Second, cfg.HealthInterval(), "interval_ms %d", ms)
	}

	cfg.Health.WarmupMS = -1
	assert.Zero(t, cfg.HealthWarmup())

	cfg.Health.IntervalMS = 250
	assert.Equal(t, 250*time.Millisecond, cfg.HealthInterval())
}

func TestLoad_ExplicitMissingPathFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_DefaultPathFallsBackToDefaults(t *testing.T) {
	t.Setenv("ENV", "does-not-exist")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Server, cfg.Server)
}
