package main

import (
	"context"
	"testing"

	"github.com/annel0/fabula-editor/internal/config"
	"github.com/annel0/fabula-editor/internal/editor"
	"github.com/annel0/fabula-editor/internal/logging"
	"github.com/annel0/fabula-editor/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	w, h, err := parseSize("120x80")
	require.NoError(t, err)
	assert.Equal(t, 120, w)
	assert.Equal(t, 80, h)

	w, h, err = parseSize("32X16")
	require.NoError(t, err)
	assert.Equal(t, 32, w)
	assert.Equal(t, 16, h)

	for _, bad := range []string{"", "12", "ax3", "3xb"} {
		_, _, err := parseSize(bad)
		assert.Error(t, err, bad)
	}
}

func TestLoggingOptions(t *testing.T) {
	opts := loggingOptions(config.LoggingConfig{ConsoleLevel: "warn", FileLevel: "bogus"})
	assert.Equal(t, logging.WARN, opts.ConsoleLevel)
	assert.Equal(t, logging.DefaultOptions().FileLevel, opts.FileLevel)
	assert.False(t, opts.ToFile)
	assert.Equal(t, "logs", opts.Dir)
}

func TestRunStopsAfterFrames(t *testing.T) {
	opts := editor.DefaultOptions()
	opts.MapsDir = t.TempDir()
	opts.DefaultWidth, opts.DefaultHeight, opts.SectorSize = 8, 8, 4

	session := editor.NewSession(opts, editor.NewTopDownCamera(64, 64, 8), nil, nil)
	require.NoError(t, session.Start())
	defer session.Close()

	assert.Equal(t, 3, run(context.Background(), session, 0, 3))
	assert.Zero(t, session.Scene().Grid().Sectors().DirtyCount())
}

func TestHeadlessTargetCountsFramePasses(t *testing.T) {
	target := &headlessTarget{}
	target.EndFrame("default")
	assert.Zero(t, target.frames, "end without begin")

	target.BeginFrame(scene.MainFrameBuffer, scene.DefaultLights())
	target.DrawSector(nil)
	target.EndFrame("default")
	assert.Equal(t, 1, target.frames)
	assert.Equal(t, 1, target.sectors)
}
