package brush

import (
	"fmt"

	"github.com/annel0/fabula-editor/internal/terrain"
	"github.com/annel0/fabula-editor/internal/undo"
)

// TerrainBrush рисует покрытие и, опционально, выставляет высоту.
// Варианты автотайла в области и вокруг нее пересчитываются сразу.
type TerrainBrush struct {
	dragState
	terrain   terrain.TerrainID
	height    float32
	hasHeight bool
}

// NewTerrainBrush создает кисть покрытия в режиме прямоугольника
func NewTerrainBrush(grid *terrain.Grid, recorder Recorder) *TerrainBrush {
	return &TerrainBrush{
		dragState: newDragState(TypeTerrain, grid, recorder, ModeRectangle),
		terrain:   terrain.DebugTerrain,
	}
}

func (b *TerrainBrush) Terrain() terrain.TerrainID { return b.terrain }

func (b *TerrainBrush) SetTerrain(id terrain.TerrainID) { b.terrain = id }

// SetHeight включает выставление высоты вместе с покрытием
func (b *TerrainBrush) SetHeight(h float32) {
	b.height = h
	b.hasHeight = true
}

func (b *TerrainBrush) ClearHeight() { b.hasHeight = false }

func (b *TerrainBrush) Apply() *undo.Record {
	return b.paintAutoTiled(b.area(), func(s terrain.TileState) terrain.TileState {
		s.Terrain = b.terrain
		if b.hasHeight {
			s.Height = b.height
		}
		return s
	})
}

func (b *TerrainBrush) StatusBarInfo() string {
	if b.hasHeight {
		return fmt.Sprintf("%s terrain=%d height=%.1f", b.statusPrefix(), b.terrain, b.height)
	}
	return fmt.Sprintf("%s terrain=%d", b.statusPrefix(), b.terrain)
}
