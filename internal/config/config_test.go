package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10, cfg.Limits.WorkMin)
	assert.Equal(t, 5000, cfg.Limits.WorkMax)
	assert.Equal(t, 1000, cfg.Limits.LearnMax)
	assert.Equal(t, 500, cfg.Limits.LeakMax)
	assert.Equal(t, "127.0.0.1:8417", cfg.Server.Addr)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadMergesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
limits:
  work_min: 20
  leak_max: 250
server:
  addr: ":9000"
ai:
  model: gemini-2.5-flash
  timeout: 45s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Limits.WorkMin)
	assert.Equal(t, 250, cfg.Limits.LeakMax)
	assert.Equal(t, 5000, cfg.Limits.WorkMax, "unset values keep defaults")
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
	assert.Equal(t, 45*time.Second, cfg.AI.Timeout)
}

func TestLoadLogSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "log:\n  level: warn\n  max_backups: 9\n  compress: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 9, cfg.Log.MaxBackups)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB, "unset values keep defaults")
	assert.Equal(t, 28, cfg.Log.MaxAgeDays)
	assert.False(t, cfg.Log.Compressed())

	assert.True(t, DefaultConfig().Log.Compressed(), "compression is on unless disabled")
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"max below min": "limits:\n  work_min: 100\n  work_max: 50\n",
		"malformed":     "limits: [not, a, map",
		"negative min":  "limits:\n  work_min: -1\n",
		"log level":     "log:\n  level: loud\n",
		"log size":      "log:\n  max_size_mb: -5\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveToFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Server.Addr = "localhost:1234"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost:1234", loaded.Server.Addr)
}
