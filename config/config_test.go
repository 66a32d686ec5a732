package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "abyss.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Backend)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
backend: sqlite
save_path: /tmp/abyss.db
seed: 42
passive_tick: 2s
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "/tmp/abyss.db", cfg.SavePath)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 2*time.Second, cfg.PassiveTick)
	assert.Equal(t, 250*time.Millisecond, cfg.FastTick, "unset fields keep defaults")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "slot: from-file\nseed: 1\n")
	t.Setenv("ABYSS_SLOT", "from-env")
	t.Setenv("ABYSS_AUTOSAVE_INTERVAL", "1m")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Slot)
	assert.Equal(t, int64(1), cfg.Seed)
	assert.Equal(t, time.Minute, cfg.AutosaveInterval)
}

func TestLoadErrors(t *testing.T) {
	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeFile(t, "backend: [oops"))
		assert.ErrorContains(t, err, "parse config")
	})
	t.Run("bad env", func(t *testing.T) {
		t.Setenv("ABYSS_SEED", "not-a-number")
		_, err := Load("")
		assert.ErrorContains(t, err, "parse env")
	})
	t.Run("invalid values", func(t *testing.T) {
		t.Setenv("ABYSS_BACKEND", "postgres")
		t.Setenv("ABYSS_FAST_TICK", "0s")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown backend "postgres"`)
		assert.Contains(t, err.Error(), "fast_tick must be positive")
	})
}
