package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, DEBUG, level)

	level, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, INFO, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestFileLoggerRespectsLevels(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLoggerWithOptions("brush", Options{
		Dir:          dir,
		ToFile:       true,
		ConsoleLevel: ERROR,
		FileLevel:    INFO,
	})
	require.NoError(t, err)

	logger.Debug("скрытое сообщение")
	logger.Info("кисть применена: %d тайлов", 9)
	require.NoError(t, logger.Close())

	files, err := filepath.Glob(filepath.Join(dir, "brush_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "кисть применена: 9 тайлов")
	assert.False(t, strings.Contains(text, "скрытое сообщение"))
}

func TestNopLoggerBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		Info("до инициализации %s", "ok")
		var nilLogger *Logger
		nilLogger.Error("nil логгер")
	})
}

func TestRegistryReusesLoggers(t *testing.T) {
	SetDefaultOptions(Options{ToFile: false, ConsoleLevel: ERROR, FileLevel: ERROR})
	defer SetDefaultOptions(Options{Dir: "logs", ConsoleLevel: INFO, FileLevel: DEBUG})

	r := NewRegistry()
	a := r.For(ComponentScene)
	assert.Same(t, a, r.For(ComponentScene))
	r.For(ComponentBrush)

	require.NoError(t, r.SetLevels(ComponentScene, WARN, WARN))
	assert.Error(t, r.SetLevels(ComponentUndo, WARN, WARN))
	assert.Equal(t, []Component{ComponentBrush, ComponentScene}, r.Names())

	assert.NoError(t, r.Close())
	assert.Empty(t, r.Names())
	_, ok := r.Lookup(ComponentScene)
	assert.False(t, ok)
}

func TestRegistryFallsBackToConsole(t *testing.T) {
	// Каталог логов занят обычным файлом
	blocker := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	SetDefaultOptions(Options{Dir: blocker, ToFile: true, ConsoleLevel: ERROR, FileLevel: DEBUG})
	defer SetDefaultOptions(Options{Dir: "logs", ConsoleLevel: INFO, FileLevel: DEBUG})

	r := NewRegistry()
	l := r.For(ComponentStorage)
	require.NotNil(t, l)
	assert.Equal(t, "storage", l.Component())
	assert.NotPanics(t, func() { l.Error("пишется только в консоль") })
	assert.NoError(t, r.Close())
}
