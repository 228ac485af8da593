package editor

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/annel0/fabula-editor/internal/brush"
	"github.com/annel0/fabula-editor/internal/logging"
	"github.com/annel0/fabula-editor/internal/metrics"
	"github.com/annel0/fabula-editor/internal/scene"
	"github.com/annel0/fabula-editor/internal/storage"
	"github.com/annel0/fabula-editor/internal/terrain"
	"github.com/annel0/fabula-editor/internal/undo"
	"github.com/annel0/fabula-editor/internal/vec"
)

// Session - состояние редактора одной карты. Все методы вызываются
// из главного цикла: ввод, затем Update, затем Render.
type Session struct {
	opts    Options
	camera  Camera
	store   Store
	metrics *metrics.Metrics
	stats   *ProcessStats
	logger  *logging.Logger
	builder terrain.GeometryBuilder

	scene   *scene.Scene
	picker  *terrain.Picker
	history *undo.Manager
	brushes *brush.Set
	current brush.Brush

	brushTimer  *brush.RepeatTimer
	statusTimer *brush.RepeatTimer
	dragging    bool
	paused      bool

	status      string
	frames      int
	frameTime   time.Duration
	fps         int
	snapshotAge time.Duration
}

// NewSession создает сессию. store и m могут быть nil.
func NewSession(opts Options, camera Camera, store Store, m *metrics.Metrics) *Session {
	s := &Session{
		opts:        opts,
		camera:      camera,
		store:       store,
		metrics:     m,
		stats:       NewProcessStats(),
		logger:      logging.For(logging.ComponentEditor),
		builder:     terrain.HeightfieldBuilder{},
		brushTimer:  brush.NewRepeatTimer(opts.BrushRepeat),
		statusTimer: brush.NewRepeatTimer(opts.StatusInterval),
	}
	s.statusTimer.Start()
	return s
}

// Start открывает карту стартовой позиции игрока, а если ее нет - новую карту
func (s *Session) Start() error {
	if s.store != nil {
		pos, err := s.store.PlayerStartPosition()
		switch {
		case err == nil && pos.MapPath != "":
			return s.OpenMap(pos.MapPath)
		case err != nil && !errors.Is(err, storage.ErrNotFound):
			s.logger.Warn("Не удалось прочитать стартовую позицию: %v", err)
		}
	}
	return s.NewMap(s.opts.DefaultWidth, s.opts.DefaultHeight)
}

// NewMap заменяет текущую сцену новой безымянной картой
func (s *Session) NewMap(width, height int) error {
	sc, err := scene.New("", width, height, s.opts.SectorSize)
	if err != nil {
		return err
	}
	sc.SetMapsDir(s.opts.MapsDir)
	terrain.GenerateHeights(sc.Grid(), s.opts.Noise)

	s.replaceScene(sc)
	s.logger.Info("Создана карта %dx%d (%s)", width, height, sc.UID())
	return nil
}

// OpenMap открывает сцену из файла. При ошибке загрузки создается
// новая карта по умолчанию, а ошибка возвращается вызывающему.
func (s *Session) OpenMap(path string) error {
	sc, err := scene.Open(path, s.opts.SectorSize)
	if err != nil {
		s.metrics.LoadFailed()
		s.logger.Error("Не удалось открыть карту %s: %v", path, err)
		if nerr := s.NewMap(s.opts.DefaultWidth, s.opts.DefaultHeight); nerr != nil {
			return errors.Join(err, nerr)
		}
		return err
	}

	s.replaceScene(sc)
	if s.store != nil {
		if err := s.store.TouchRecent(path, sc.Name()); err != nil {
			s.logger.Warn("Не удалось обновить недавние карты: %v", err)
		}
		if _, err := s.store.LoadSnapshot(sc.UID()); err == nil {
			s.logger.Warn("Для карты %q есть несохраненный снимок, RestoreSnapshot восстановит его", sc.Name())
		}
	}
	return nil
}

// SaveMap сохраняет сцену. Непустое имя переименовывает сцену перед сохранением.
// При ошибке сцена в памяти остается прежней и доступной для правки.
func (s *Session) SaveMap(name string) error {
	if s.scene == nil {
		return fmt.Errorf("нет открытой сцены")
	}

	prevName := s.scene.Name()
	if name != "" {
		s.scene.SetName(name)
	}

	start := time.Now()
	err := s.scene.Save()
	s.metrics.ObserveSave(time.Since(start), err)
	if err != nil {
		s.scene.SetName(prevName)
		s.logger.Error("Ошибка сохранения карты: %v", err)
		return err
	}

	if s.store != nil {
		if err := s.store.TouchRecent(s.scene.Path(), s.scene.Name()); err != nil {
			s.logger.Warn("Не удалось обновить недавние карты: %v", err)
		}
		if err := s.store.DeleteSnapshot(s.scene.UID()); err != nil {
			s.logger.Debug("Снимок не удален: %v", err)
		}
	}
	s.snapshotAge = 0
	return nil
}

// Autosave пишет снимок сцены в базу редактора
func (s *Session) Autosave() error {
	if s.store == nil || s.scene == nil {
		return nil
	}
	data, err := scene.Encode(s.scene)
	if err != nil {
		return err
	}
	return s.store.SaveSnapshot(s.scene.UID(), data)
}

// RestoreSnapshot заменяет текущую сцену ее снимком из базы.
// Возвращает false, если снимка нет.
func (s *Session) RestoreSnapshot() (bool, error) {
	if s.store == nil || s.scene == nil {
		return false, nil
	}
	data, err := s.store.LoadSnapshot(s.scene.UID())
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	sc, err := scene.Decode(data, s.opts.SectorSize)
	if err != nil {
		return false, err
	}
	sc.SetMapsDir(s.scene.MapsDir())
	s.replaceScene(sc)
	s.logger.Info("Карта %q восстановлена из снимка", sc.Name())
	return true, nil
}

func (s *Session) replaceScene(sc *scene.Scene) {
	kind := brush.TypeTerrain
	if s.current != nil {
		kind = s.current.Type()
	}
	s.cancelDrag()

	if s.scene != nil {
		s.scene.Dispose()
	}
	s.scene = sc
	s.picker = terrain.NewPicker(sc.Grid())
	s.history = undo.NewManager(sc.Grid(), s.opts.UndoLimit)
	s.history.SetObserver(s.metrics.ObserveHistory)
	s.brushes = brush.NewSet(sc.Grid(), s.history)
	s.current = s.brushes.ByType(kind)

	s.ResetCamera()
}

// ResetCamera возвращает камеру в исходное положение над центром карты.
// Возвращает false, если камера этого не умеет.
func (s *Session) ResetCamera() bool {
	c, ok := s.camera.(CameraResetter)
	if !ok || s.scene == nil {
		return false
	}
	c.ResetOver(s.scene.Grid().Width(), s.scene.Grid().Height())
	return true
}

// StartTile возвращает тайл стартовой позиции игрока, если она на текущей карте
func (s *Session) StartTile() (vec.Vec2, bool) {
	if s.store == nil || s.scene == nil {
		return vec.Vec2{}, false
	}
	pos, err := s.store.PlayerStartPosition()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("Не удалось прочитать стартовую позицию: %v", err)
		}
		return vec.Vec2{}, false
	}
	if !strings.EqualFold(pos.SceneUID, s.scene.UID()) {
		return vec.Vec2{}, false
	}
	if !s.scene.Grid().InBounds(pos.Tile.X, pos.Tile.Y) {
		s.logger.Warn("Стартовая позиция %v за пределами карты %q", pos.Tile, s.scene.Name())
		return vec.Vec2{}, false
	}
	return pos.Tile, true
}

// Scene возвращает текущую сцену
func (s *Session) Scene() *scene.Scene { return s.scene }

// History возвращает историю правок текущей сцены
func (s *Session) History() *undo.Manager { return s.history }

// Brushes возвращает кисти текущей сцены
func (s *Session) Brushes() *brush.Set { return s.brushes }

// CurrentBrush возвращает выбранную кисть
func (s *Session) CurrentBrush() brush.Brush { return s.current }

// SetCurrentBrush выбирает кисть. Незавершенное перетаскивание отменяется без правок.
func (s *Session) SetCurrentBrush(t brush.Type) {
	s.cancelDrag()
	s.current = s.brushes.ByType(t)
}

func (s *Session) cancelDrag() {
	if s.current != nil {
		s.current.ClearStartPosition()
	}
	s.brushTimer.Stop()
	s.dragging = false
}

// Dragging возвращает true, пока кнопка зажата
func (s *Session) Dragging() bool { return s.dragging }

// SetPaused приостанавливает обновление строки состояния
func (s *Session) SetPaused(paused bool) { s.paused = paused }

// snap возвращает центр тайла под курсором или false при промахе
func (s *Session) snap(x, y float64) (vec.Vec2Float, bool) {
	if s.picker == nil || s.camera == nil {
		return vec.Vec2Float{}, false
	}
	return s.picker.Snap(s.camera.PickRay(x, y))
}

// PointerMoved обновляет подсветку кисти
func (s *Session) PointerMoved(x, y float64) {
	if pos, ok := s.snap(x, y); ok && s.current != nil {
		s.current.SetPosition(pos.X, pos.Y)
	}
}

// PointerDown начинает перетаскивание левой кнопкой
func (s *Session) PointerDown(x, y float64, button Button) bool {
	if button != ButtonLeft || s.current == nil {
		return false
	}
	if pos, ok := s.snap(x, y); ok {
		s.current.SetPosition(pos.X, pos.Y)
		s.current.SetStartPosition(pos.X, pos.Y)
	}
	s.brushTimer.Start()
	s.dragging = true
	return true
}

// PointerDragged двигает кисть во время перетаскивания
func (s *Session) PointerDragged(x, y float64) {
	if !s.dragging || s.current == nil {
		return
	}
	if pos, ok := s.snap(x, y); ok {
		s.current.ApplyStartPositionIfNotSet(pos)
		s.current.SetPosition(pos.X, pos.Y)
	}
}

// PointerUp завершает перетаскивание и применяет кисть.
// Отпускание за пределами карты отменяет правку.
func (s *Session) PointerUp(x, y float64, button Button) bool {
	if button != ButtonLeft || s.current == nil {
		return false
	}
	if pos, ok := s.snap(x, y); ok && s.dragging {
		s.current.SetPosition(pos.X, pos.Y)
		s.current.Apply()
	} else if s.dragging {
		s.logger.Debug("Перетаскивание кисти %s отменено", s.current.Type())
	}
	s.cancelDrag()
	return true
}

// Update продвигает таймеры кадра и перестраивает грязные секторы.
// Вызывается один раз за кадр до Render.
func (s *Session) Update(delta time.Duration) {
	s.frames++
	s.frameTime += delta
	s.snapshotAge += delta

	if s.brushTimer.Update(delta) && s.dragging && s.current != nil && s.current.Mode() == brush.ModePencil {
		s.current.Apply()
	}
	if s.statusTimer.Update(delta) {
		s.refreshStatus()
	}
	s.rebuild()
}

func (s *Session) rebuild() int {
	if s.scene == nil {
		return 0
	}
	grid := s.scene.Grid()
	n := grid.RebuildDirty(s.builder)
	s.metrics.ObserveRebuild(n, grid.Sectors().DirtyCount())
	if n > 0 {
		s.logger.Trace("Перестроено секторов: %d", n)
	}
	return n
}

// Render рисует карту в основной буфер кадра с освещением сцены
// и выводит его финальным шейдером
func (s *Session) Render(target RenderTarget) {
	if s.scene == nil || target == nil {
		return
	}
	s.rebuild()

	target.BeginFrame(scene.MainFrameBuffer, s.scene.Lights())
	sectors := s.scene.Grid().Sectors()
	for id := 0; id < sectors.Len(); id++ {
		if g := sectors.At(id).Geometry(); g != nil {
			target.DrawSector(g)
		}
	}
	target.EndFrame(s.scene.FinalShader())
}

// ConfigureShader передает шейдеру параметры подсветки текущей кисти
func (s *Session) ConfigureShader(sink UniformSink) {
	if s.current == nil || sink == nil {
		return
	}
	b := s.current
	pos := b.Position()
	sink.SetUniformf(UniformBrushPosition, pos.X, pos.Y)
	sink.SetUniformf(UniformBrushSize, float64(b.Size()))
	sink.SetUniformf(UniformLayerStyle, float64(b.LayerStyle()))

	start, ok := b.StartPosition()
	if !ok {
		sink.SetUniformi(UniformBrushType, brush.ShaderNone)
		return
	}
	sink.SetUniformf(UniformBrushStartPosition, start.X, start.Y)
	sink.SetUniformi(UniformBrushType, b.ShaderID())
}

// Undo отменяет последнюю правку. Незавершенное перетаскивание отменяется.
func (s *Session) Undo() bool {
	if s.history == nil {
		return false
	}
	s.cancelDrag()
	return s.history.Undo()
}

// Redo повторяет отмененную правку
func (s *Session) Redo() bool {
	if s.history == nil {
		return false
	}
	s.cancelDrag()
	return s.history.Redo()
}

// SnapshotAge возвращает время с последнего сохранения или снимка
func (s *Session) SnapshotAge() time.Duration { return s.snapshotAge }

// ResetSnapshotAge сбрасывает счетчик после автосохранения
func (s *Session) ResetSnapshotAge() { s.snapshotAge = 0 }

// StatusLine возвращает строку состояния, обновляемую раз в интервал
func (s *Session) StatusLine() string { return s.status }

func (s *Session) refreshStatus() {
	if s.frameTime > 0 {
		s.fps = int(float64(s.frames) / s.frameTime.Seconds())
	}
	s.frames = 0
	s.frameTime = 0

	if s.paused {
		s.status = "Paused"
		return
	}

	line := ""
	if b := s.current; b != nil {
		pos := b.Position()
		line = fmt.Sprintf("X: %.1f Y: %.1f Z: %.1f %s ", pos.X, b.Y(), pos.Y, b.StatusBarInfo())
	}
	s.status = line + fmt.Sprintf("FPS: %d %s Uptime: %s", s.fps, s.stats.Summary(), s.stats.Uptime())
}

// Close освобождает сцену
func (s *Session) Close() {
	s.cancelDrag()
	if s.scene != nil {
		s.scene.Dispose()
	}
}
