package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	t.Setenv("EDITOR_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Editor.DefaultWidth)
	assert.Equal(t, 20*time.Millisecond, cfg.Editor.BrushRepeat)
	assert.Zero(t, cfg.Editor.UndoLimit, "история по умолчанию без ограничения")
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.yaml")
	data := []byte("editor:\n  default_width: 64\n  sector_size: 8\n  brush_repeat: 50ms\nmetrics:\n  enabled: true\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Editor.DefaultWidth)
	assert.Equal(t, 100, cfg.Editor.DefaultHeight)
	assert.Equal(t, 8, cfg.Editor.GetSectorSize())
	assert.Equal(t, 50*time.Millisecond, cfg.Editor.BrushRepeat)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.toml")
	data := []byte("[editor]\nmaps_dir = \"worlds\"\nundo_limit = 5\n\n[storage]\nrecent_limit = 3\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "worlds", cfg.Editor.GetMapsDir())
	assert.Equal(t, 5, cfg.Editor.UndoLimit)
	assert.Equal(t, 3, cfg.Storage.RecentLimit)
}

func TestLoadRejectsBadSizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("editor:\n  default_width: -1\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvFallback(t *testing.T) {
	t.Setenv("EDITOR_METRICS_ADDR", ":9999")
	m := MetricsConfig{}
	assert.Equal(t, ":9999", m.GetAddr())

	m.Addr = ":1234"
	assert.Equal(t, ":1234", m.GetAddr())
}
