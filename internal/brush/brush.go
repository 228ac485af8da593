// Package brush содержит кисти редактора карты.
//
// Все кисти разделяют одно состояние перетаскивания (позиция, якорь,
// размер, режим) и отличаются только телом Apply. Каждое применение
// пишет в карту через terrain.Grid.Set и отдает одну запись undo.
package brush

import (
	"fmt"

	"github.com/annel0/fabula-editor/internal/logging"
	"github.com/annel0/fabula-editor/internal/terrain"
	"github.com/annel0/fabula-editor/internal/undo"
	"github.com/annel0/fabula-editor/internal/vec"
)

// Type - вид кисти
type Type int

const (
	TypeTerrain Type = iota
	TypeAutoTile
	TypePassable
	TypeEvent
	TypeLiquid
	TypeFoliage
)

var typeNames = [...]string{"terrain", "autotile", "passable", "event", "liquid", "foliage"}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// Types перечисляет все виды кистей в порядке панели инструментов
func Types() []Type {
	return []Type{TypeTerrain, TypeAutoTile, TypePassable, TypeEvent, TypeLiquid, TypeFoliage}
}

// Mode - режим применения кисти
type Mode int

const (
	// ModePencil применяет кисть с фиксированным интервалом, пока указатель зажат
	ModePencil Mode = iota
	// ModeRectangle применяет кисть один раз при отпускании на всю выделенную область
	ModeRectangle
)

func (m Mode) String() string {
	if m == ModeRectangle {
		return "rectangle"
	}
	return "pencil"
}

// Идентификаторы подсветки кисти в шейдере (u_brush_type)
const (
	ShaderNone      = 0
	ShaderRectangle = 1
	ShaderSquare    = 2
	ShaderSingle    = 3
)

// Стили слоя подсветки (layer_style)
const (
	LayerTerrain = 0
	LayerEvent   = 1
)

const (
	MinSize = 1
	MaxSize = 32
)

// Recorder принимает записи правок (undo.Manager)
type Recorder interface {
	Record(r *undo.Record)
}

// Brush - общий контракт кистей
type Brush interface {
	Type() Type
	Mode() Mode
	SetMode(m Mode)

	// SetPosition обновляет текущую цель кисти, карту не меняет
	SetPosition(x, z float64)
	Position() vec.Vec2Float
	// Y возвращает высоту тайла под кистью, 0 вне карты
	Y() float64

	SetStartPosition(x, z float64)
	ClearStartPosition()
	StartPosition() (vec.Vec2Float, bool)
	// ApplyStartPositionIfNotSet принимает pos за якорь, если якоря еще нет
	ApplyStartPositionIfNotSet(pos vec.Vec2Float)

	Size() int
	SetSize(size int)

	// Apply применяет кисть. Возвращает nil, если карта не изменилась.
	Apply() *undo.Record

	ShaderID() int
	LayerStyle() int
	StatusBarInfo() string
}

// dragState - общее состояние кисти, встраивается во все виды
type dragState struct {
	kind     Type
	grid     *terrain.Grid
	recorder Recorder
	logger   *logging.Logger

	mode     Mode
	size     int
	pos      vec.Vec2Float
	start    vec.Vec2Float
	hasStart bool
}

func newDragState(kind Type, grid *terrain.Grid, recorder Recorder, mode Mode) dragState {
	return dragState{
		kind:     kind,
		grid:     grid,
		recorder: recorder,
		logger:   logging.For(logging.ComponentBrush),
		mode:     mode,
		size:     MinSize,
	}
}

func (d *dragState) Type() Type { return d.kind }

func (d *dragState) Mode() Mode { return d.mode }

func (d *dragState) SetMode(m Mode) { d.mode = m }

func (d *dragState) SetPosition(x, z float64) {
	d.pos = vec.Vec2Float{X: x, Y: z}
}

func (d *dragState) Position() vec.Vec2Float { return d.pos }

func (d *dragState) Y() float64 {
	t := d.pos.ToVec2()
	state, err := d.grid.State(t.X, t.Y)
	if err != nil {
		return 0
	}
	return float64(state.Height)
}

func (d *dragState) SetStartPosition(x, z float64) {
	d.start = vec.Vec2Float{X: x, Y: z}
	d.hasStart = true
}

func (d *dragState) ClearStartPosition() {
	d.start = vec.Vec2Float{}
	d.hasStart = false
}

func (d *dragState) StartPosition() (vec.Vec2Float, bool) {
	return d.start, d.hasStart
}

func (d *dragState) ApplyStartPositionIfNotSet(pos vec.Vec2Float) {
	if !d.hasStart {
		d.SetStartPosition(pos.X, pos.Y)
	}
}

func (d *dragState) Size() int { return d.size }

func (d *dragState) SetSize(size int) {
	if size < MinSize {
		size = MinSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	d.size = size
}

// ShaderID по умолчанию зависит от режима
func (d *dragState) ShaderID() int {
	if d.mode == ModeRectangle {
		return ShaderRectangle
	}
	return ShaderSquare
}

func (d *dragState) LayerStyle() int { return LayerTerrain }

func (d *dragState) statusPrefix() string {
	return fmt.Sprintf("[%s %s x%d]", d.kind, d.mode, d.size)
}

// area возвращает область применения. Пустая область означает промах мимо карты.
// Прямоугольник с якорем вне карты отклоняется целиком, а не обрезается.
func (d *dragState) area() vec.Rect {
	cur := d.pos.ToVec2()
	if !d.grid.InBounds(cur.X, cur.Y) {
		return vec.Rect{}
	}
	if d.mode == ModeRectangle && d.hasStart {
		anchor := d.start.ToVec2()
		if !d.grid.InBounds(anchor.X, anchor.Y) {
			d.logger.Warn("Кисть %s: якорь %v за пределами карты, прямоугольник отклонен", d.kind, anchor)
			return vec.Rect{}
		}
		return vec.SpanRect(anchor, cur)
	}
	return d.square(cur).Intersect(d.grid.Bounds())
}

// square - квадрат со стороной size вокруг тайла
func (d *dragState) square(center vec.Vec2) vec.Rect {
	half := (d.size - 1) / 2
	return vec.Rect{X: center.X - half, Y: center.Y - half, W: d.size, H: d.size}
}

// paint применяет fn к каждому тайлу области и записывает изменения одной правкой
func (d *dragState) paint(area vec.Rect, fn func(s terrain.TileState) terrain.TileState) *undo.Record {
	if area.Empty() {
		return nil
	}

	changes := make([]undo.Change, 0, area.W*area.H)
	for _, p := range area.Points() {
		before, err := d.grid.State(p.X, p.Y)
		if err != nil {
			d.logger.Warn("Кисть %s за пределами карты: %v", d.kind, err)
			continue
		}
		after := fn(before)
		if after == before {
			continue
		}
		if _, err := d.grid.Set(p.X, p.Y, after); err != nil {
			d.logger.Warn("Кисть %s: %v", d.kind, err)
			continue
		}
		changes = append(changes, undo.Change{Pos: p, Before: before, After: after})
	}
	return d.commit(changes)
}

// paintAutoTiled применяет fn к области и пересчитывает варианты автотайла
// в области и кольце ее соседей. Вариант соседа может измениться, даже если
// сам сосед не менялся.
func (d *dragState) paintAutoTiled(area vec.Rect, fn func(s terrain.TileState) terrain.TileState) *undo.Record {
	if area.Empty() {
		return nil
	}

	ring := vec.Rect{X: area.X - 1, Y: area.Y - 1, W: area.W + 2, H: area.H + 2}.Intersect(d.grid.Bounds())
	points := ring.Points()

	before := make([]terrain.TileState, len(points))
	for i, p := range points {
		s, err := d.grid.State(p.X, p.Y)
		if err != nil {
			d.logger.Warn("Кисть %s за пределами карты: %v", d.kind, err)
			return nil
		}
		before[i] = s
	}

	for i, p := range points {
		if !area.Contains(p) {
			continue
		}
		if next := fn(before[i]); next != before[i] {
			if _, err := d.grid.Set(p.X, p.Y, next); err != nil {
				d.logger.Warn("Кисть %s: %v", d.kind, err)
			}
		}
	}

	changes := make([]undo.Change, 0, len(points))
	for i, p := range points {
		_, after, err := d.grid.RecomputeAutoTile(p.X, p.Y)
		if err != nil {
			d.logger.Warn("Кисть %s: %v", d.kind, err)
			continue
		}
		if after != before[i] {
			changes = append(changes, undo.Change{Pos: p, Before: before[i], After: after})
		}
	}
	return d.commit(changes)
}

func (d *dragState) commit(changes []undo.Change) *undo.Record {
	if len(changes) == 0 {
		return nil
	}
	r := undo.NewRecord(d.kind.String(), changes)
	if d.recorder != nil {
		d.recorder.Record(r)
	}
	d.logger.Trace("Кисть %s изменила %d тайлов", d.kind, r.Len())
	return r
}
