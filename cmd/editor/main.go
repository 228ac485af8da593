package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/annel0/fabula-editor/internal/config"
	"github.com/annel0/fabula-editor/internal/editor"
	"github.com/annel0/fabula-editor/internal/logging"
	"github.com/annel0/fabula-editor/internal/metrics"
	"github.com/annel0/fabula-editor/internal/scene"
	"github.com/annel0/fabula-editor/internal/storage"
	"github.com/annel0/fabula-editor/internal/terrain"
)

const frameInterval = time.Second / 60

// headlessTarget считает кадры и отрисованные секторы вместо реального рендера
type headlessTarget struct {
	frames  int
	sectors int
	open    bool
}

func (h *headlessTarget) BeginFrame(string, scene.Lights) { h.open = true }

func (h *headlessTarget) DrawSector(*terrain.SectorGeometry) { h.sectors++ }

func (h *headlessTarget) EndFrame(string) {
	if h.open {
		h.frames++
	}
	h.open = false
}

// nopUniforms отбрасывает параметры шейдера
type nopUniforms struct{}

func (nopUniforms) SetUniformf(string, ...float64) {}

func (nopUniforms) SetUniformi(string, int) {}

func main() {
	configPath := flag.String("config", "", "Путь к файлу конфигурации (.yaml или .toml)")
	mapPath := flag.String("map", "", "Открыть карту .red")
	newSize := flag.String("new", "", "Создать новую карту WxH")
	name := flag.String("name", "", "Имя, под которым карта сохраняется при выходе")
	frames := flag.Int("frames", 0, "Количество кадров (0 - до сигнала)")
	window := flag.String("window", "1280x720", "Размер окна WxH")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	logging.SetDefaultOptions(loggingOptions(cfg.Logging))
	if err := logging.InitDefaultLogger("editor"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	defer logging.Components().Close()

	logging.Info("🗺️  Запуск редактора карт")

	db, err := storage.NewDatabase(cfg.Storage.GetDataDir(), cfg.Storage.RecentLimit)
	if err != nil {
		log.Fatalf("❌ Ошибка открытия базы редактора: %v", err)
	}
	defer db.Close()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		m.StartHTTP(cfg.Metrics.GetAddr())
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			m.Shutdown(ctx)
		}()
	}

	opts := editor.OptionsFromConfig(&cfg.Editor)
	camera := editor.NewTopDownCamera(1280, 720, 32)
	if w, h, err := parseSize(*window); err == nil {
		camera.Resize(float64(w), float64(h))
	} else {
		logging.Warn("Размер окна по умолчанию: %v", err)
	}
	session := editor.NewSession(opts, camera, db, m)
	defer session.Close()

	switch {
	case *mapPath != "":
		if err := session.OpenMap(*mapPath); err != nil {
			logging.Warn("Открыта новая карта вместо %s", *mapPath)
		}
	case *newSize != "":
		w, h, err := parseSize(*newSize)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		if err := session.NewMap(w, h); err != nil {
			log.Fatalf("❌ Ошибка создания карты: %v", err)
		}
	default:
		if err := session.Start(); err != nil {
			logging.Warn("Стартовая карта не открыта: %v", err)
		}
	}

	grid := session.Scene().Grid()
	logging.Info("📐 Карта %dx%d, секторов: %d", grid.Width(), grid.Height(), grid.Sectors().Len())
	if tile, ok := session.StartTile(); ok {
		logging.Info("🚩 Стартовая позиция игрока: %d,%d", tile.X, tile.Y)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run(ctx, session, cfg.Editor.AutosaveInterval, *frames)

	if *name != "" || session.Scene().HasName() {
		if err := session.SaveMap(*name); err != nil {
			logging.Error("❌ Карта не сохранена: %v", err)
		} else {
			logging.Info("💾 Карта сохранена: %s", session.Scene().Path())
		}
	} else if err := session.Autosave(); err != nil {
		logging.Error("Ошибка автосохранения: %v", err)
	}

	logging.Info("👋 Редактор остановлен")
}

// run крутит цикл кадров: обновление, шейдер, рендер.
// Возвращает число выведенных кадров.
func run(ctx context.Context, session *editor.Session, autosave time.Duration, frames int) int {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	target := &headlessTarget{}
	last := time.Now()
	for frame := 0; frames == 0 || frame < frames; frame++ {
		select {
		case <-ctx.Done():
			logging.Info("📡 Получен сигнал, завершение работы...")
			return target.frames
		case now := <-ticker.C:
			session.Update(now.Sub(last))
			last = now
		}

		session.ConfigureShader(nopUniforms{})
		session.Render(target)

		if autosave > 0 && session.SnapshotAge() >= autosave {
			if err := session.Autosave(); err != nil {
				logging.Error("Ошибка автосохранения: %v", err)
			}
			session.ResetSnapshotAge()
		}
		if status := session.StatusLine(); status != "" && frame%60 == 0 {
			logging.Debug("%s", status)
		}
	}
	return target.frames
}

func parseSize(s string) (int, int, error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("размер карты должен быть в виде WxH: %q", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("ширина карты: %w", err)
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("высота карты: %w", err)
	}
	return w, h, nil
}

func loggingOptions(c config.LoggingConfig) logging.Options {
	opts := logging.DefaultOptions()
	if c.Dir != "" {
		opts.Dir = c.Dir
	}
	opts.ToFile = c.ToFile
	if lvl, err := logging.ParseLevel(c.ConsoleLevel); err == nil {
		opts.ConsoleLevel = lvl
	}
	if lvl, err := logging.ParseLevel(c.FileLevel); err == nil {
		opts.FileLevel = lvl
	}
	return opts
}
