package editor

import (
	"time"

	"github.com/annel0/fabula-editor/internal/brush"
	"github.com/annel0/fabula-editor/internal/config"
	"github.com/annel0/fabula-editor/internal/scene"
	"github.com/annel0/fabula-editor/internal/terrain"
)

// Options - параметры сессии
type Options struct {
	MapsDir        string
	DefaultWidth   int
	DefaultHeight  int
	SectorSize     int
	BrushRepeat    time.Duration
	StatusInterval time.Duration
	UndoLimit      int // 0 - история без ограничения
	Noise          terrain.HeightNoise
}

// DefaultOptions возвращает параметры по умолчанию
func DefaultOptions() Options {
	return Options{
		MapsDir:        scene.DefaultMapsDir,
		DefaultWidth:   100,
		DefaultHeight:  100,
		SectorSize:     terrain.DefaultSectorSize,
		BrushRepeat:    brush.DefaultRepeatInterval,
		StatusInterval: time.Second,
	}
}

// OptionsFromConfig переносит настройки редактора из конфигурации
func OptionsFromConfig(cfg *config.EditorConfig) Options {
	opts := DefaultOptions()
	opts.MapsDir = cfg.GetMapsDir()
	opts.SectorSize = cfg.GetSectorSize()
	if cfg.DefaultWidth > 0 {
		opts.DefaultWidth = cfg.DefaultWidth
	}
	if cfg.DefaultHeight > 0 {
		opts.DefaultHeight = cfg.DefaultHeight
	}
	if cfg.BrushRepeat > 0 {
		opts.BrushRepeat = cfg.BrushRepeat
	}
	if cfg.StatusInterval > 0 {
		opts.StatusInterval = cfg.StatusInterval
	}
	opts.UndoLimit = cfg.UndoLimit
	opts.Noise = terrain.HeightNoise{
		Seed:      cfg.Terrain.Seed,
		Scale:     cfg.Terrain.Scale,
		Amplitude: cfg.Terrain.Amplitude,
	}
	return opts
}
