package brush

import (
	"fmt"

	"github.com/annel0/fabula-editor/internal/terrain"
	"github.com/annel0/fabula-editor/internal/undo"
	"github.com/annel0/fabula-editor/internal/vec"
)

// PassableBrush выставляет флаги проходимости
type PassableBrush struct {
	dragState
	passable terrain.Passability
}

func NewPassableBrush(grid *terrain.Grid, recorder Recorder) *PassableBrush {
	return &PassableBrush{
		dragState: newDragState(TypePassable, grid, recorder, ModeRectangle),
		passable:  terrain.PassableNone,
	}
}

func (b *PassableBrush) Passability() terrain.Passability { return b.passable }

func (b *PassableBrush) SetPassability(p terrain.Passability) { b.passable = p & terrain.PassableAll }

func (b *PassableBrush) Apply() *undo.Record {
	return b.paint(b.area(), func(s terrain.TileState) terrain.TileState {
		s.Passable = b.passable
		return s
	})
}

func (b *PassableBrush) StatusBarInfo() string {
	return fmt.Sprintf("%s passable=%04b", b.statusPrefix(), uint8(b.passable))
}

// EventBrush ставит или снимает событие. Всегда действует на один тайл.
type EventBrush struct {
	dragState
	event terrain.EventID
}

func NewEventBrush(grid *terrain.Grid, recorder Recorder) *EventBrush {
	return &EventBrush{
		dragState: newDragState(TypeEvent, grid, recorder, ModeRectangle),
	}
}

func (b *EventBrush) Event() terrain.EventID { return b.event }

// SetEvent задает событие. EventNone стирает события.
func (b *EventBrush) SetEvent(id terrain.EventID) { b.event = id }

func (b *EventBrush) Apply() *undo.Record {
	cur := b.pos.ToVec2()
	if !b.grid.InBounds(cur.X, cur.Y) {
		return nil
	}
	return b.paint(vec.Rect{X: cur.X, Y: cur.Y, W: 1, H: 1}, func(s terrain.TileState) terrain.TileState {
		s.Event = b.event
		return s
	})
}

func (b *EventBrush) ShaderID() int { return ShaderSingle }

func (b *EventBrush) LayerStyle() int { return LayerEvent }

func (b *EventBrush) StatusBarInfo() string {
	cur := b.pos.ToVec2()
	if s, err := b.grid.State(cur.X, cur.Y); err == nil && s.HasEvent() {
		return fmt.Sprintf("[%s] event=%d under=%d", b.kind, b.event, s.Event)
	}
	return fmt.Sprintf("[%s] event=%d", b.kind, b.event)
}

// LiquidBrush заливает или осушает тайлы
type LiquidBrush struct {
	dragState
	liquid terrain.LiquidID
}

func NewLiquidBrush(grid *terrain.Grid, recorder Recorder) *LiquidBrush {
	return &LiquidBrush{
		dragState: newDragState(TypeLiquid, grid, recorder, ModePencil),
	}
}

func (b *LiquidBrush) Liquid() terrain.LiquidID { return b.liquid }

func (b *LiquidBrush) SetLiquid(id terrain.LiquidID) { b.liquid = id }

func (b *LiquidBrush) Apply() *undo.Record {
	return b.paint(b.area(), func(s terrain.TileState) terrain.TileState {
		s.Liquid = b.liquid
		return s
	})
}

func (b *LiquidBrush) StatusBarInfo() string {
	cur := b.pos.ToVec2()
	if s, err := b.grid.State(cur.X, cur.Y); err == nil && s.HasLiquid() {
		return fmt.Sprintf("%s liquid=%d under=%d", b.statusPrefix(), b.liquid, s.Liquid)
	}
	return fmt.Sprintf("%s liquid=%d", b.statusPrefix(), b.liquid)
}

// FoliageBrush сажает или убирает растительность
type FoliageBrush struct {
	dragState
	foliage terrain.FoliageID
}

func NewFoliageBrush(grid *terrain.Grid, recorder Recorder) *FoliageBrush {
	return &FoliageBrush{
		dragState: newDragState(TypeFoliage, grid, recorder, ModePencil),
	}
}

func (b *FoliageBrush) Foliage() terrain.FoliageID { return b.foliage }

func (b *FoliageBrush) SetFoliage(id terrain.FoliageID) { b.foliage = id }

func (b *FoliageBrush) Apply() *undo.Record {
	return b.paint(b.area(), func(s terrain.TileState) terrain.TileState {
		s.Foliage = b.foliage
		return s
	})
}

func (b *FoliageBrush) StatusBarInfo() string {
	cur := b.pos.ToVec2()
	if s, err := b.grid.State(cur.X, cur.Y); err == nil && s.HasFoliage() {
		return fmt.Sprintf("%s foliage=%d under=%d", b.statusPrefix(), b.foliage, s.Foliage)
	}
	return fmt.Sprintf("%s foliage=%d", b.statusPrefix(), b.foliage)
}
