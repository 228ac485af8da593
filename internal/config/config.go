package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации редактора.
type Config struct {
	Editor  EditorConfig  `yaml:"editor" toml:"editor"`
	Storage StorageConfig `yaml:"storage" toml:"storage"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	Metrics MetricsConfig `yaml:"metrics" toml:"metrics"`
}

type EditorConfig struct {
	MapsDir          string        `yaml:"maps_dir" toml:"maps_dir"`
	DefaultWidth     int           `yaml:"default_width" toml:"default_width"`
	DefaultHeight    int           `yaml:"default_height" toml:"default_height"`
	SectorSize       int           `yaml:"sector_size" toml:"sector_size"`
	BrushRepeat      time.Duration `yaml:"brush_repeat" toml:"brush_repeat"`
	StatusInterval   time.Duration `yaml:"status_interval" toml:"status_interval"`
	UndoLimit        int           `yaml:"undo_limit" toml:"undo_limit"`
	AutosaveInterval time.Duration `yaml:"autosave_interval" toml:"autosave_interval"`
	Terrain          TerrainNoise  `yaml:"terrain" toml:"terrain"`
}

// TerrainNoise задает генерацию высот для новых карт. Seed == 0 - плоская карта.
type TerrainNoise struct {
	Seed      int64   `yaml:"seed" toml:"seed"`
	Scale     float64 `yaml:"scale" toml:"scale"`
	Amplitude float64 `yaml:"amplitude" toml:"amplitude"`
}

type StorageConfig struct {
	DataDir     string `yaml:"data_dir" toml:"data_dir"`
	RecentLimit int    `yaml:"recent_limit" toml:"recent_limit"`
}

type LoggingConfig struct {
	Dir          string `yaml:"dir" toml:"dir"`
	ToFile       bool   `yaml:"to_file" toml:"to_file"`
	ConsoleLevel string `yaml:"console_level" toml:"console_level"`
	FileLevel    string `yaml:"file_level" toml:"file_level"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Addr    string `yaml:"addr" toml:"addr"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			MapsDir:          "maps",
			DefaultWidth:     100,
			DefaultHeight:    100,
			SectorSize:       16,
			BrushRepeat:      20 * time.Millisecond,
			StatusInterval:   time.Second,
			UndoLimit:        0,
			AutosaveInterval: time.Minute,
			Terrain: TerrainNoise{
				Scale:     0.05,
				Amplitude: 4,
			},
		},
		Storage: StorageConfig{
			DataDir:     "data",
			RecentLimit: 10,
		},
		Logging: LoggingConfig{
			Dir:          "logs",
			ToFile:       true,
			ConsoleLevel: "info",
			FileLevel:    "debug",
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

// GetAddr возвращает адрес /metrics с поддержкой fallback значений
func (m *MetricsConfig) GetAddr() string {
	return getStringWithEnvFallback(m.Addr, "EDITOR_METRICS_ADDR", ":2112")
}

// GetDataDir возвращает каталог базы редактора с поддержкой fallback значений
func (s *StorageConfig) GetDataDir() string {
	return getStringWithEnvFallback(s.DataDir, "EDITOR_DATA_DIR", "data")
}

// GetMapsDir возвращает каталог карт с поддержкой fallback значений
func (e *EditorConfig) GetMapsDir() string {
	return getStringWithEnvFallback(e.MapsDir, "EDITOR_MAPS_DIR", "maps")
}

// GetSectorSize возвращает размер сектора с поддержкой fallback значений
func (e *EditorConfig) GetSectorSize() int {
	return getIntWithEnvFallback(e.SectorSize, "EDITOR_SECTOR_SIZE", 16)
}

// getStringWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getStringWithEnvFallback(configValue, envVar, defaultValue string) string {
	if configValue != "" {
		return configValue
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		return envVal
	}
	return defaultValue
}

// getIntWithEnvFallback возвращает положительное значение с приоритетом: config -> env -> default
func getIntWithEnvFallback(configValue int, envVar string, defaultValue int) int {
	if configValue > 0 {
		return configValue
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.Atoi(envVal); err == nil && v > 0 {
			return v
		}
	}
	return defaultValue
}

// Load читает файл конфигурации поверх значений по умолчанию.
// Формат определяется расширением: .yaml/.yml или .toml.
// Если path == "", используется ENV EDITOR_CONFIG, а без него - Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("EDITOR_CONFIG")
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("разбор TOML %s: %w", path, err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("разбор YAML %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("неизвестный формат конфигурации: %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения, которые нельзя исправить fallback-ом
func (c *Config) Validate() error {
	if c.Editor.DefaultWidth <= 0 || c.Editor.DefaultHeight <= 0 {
		return fmt.Errorf("размер карты по умолчанию должен быть положительным: %dx%d",
			c.Editor.DefaultWidth, c.Editor.DefaultHeight)
	}
	if c.Editor.BrushRepeat <= 0 {
		return fmt.Errorf("brush_repeat должен быть положительным")
	}
	if c.Editor.UndoLimit < 0 {
		return fmt.Errorf("undo_limit не может быть отрицательным")
	}
	return nil
}
