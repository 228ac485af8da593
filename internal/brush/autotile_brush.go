package brush

import (
	"fmt"

	"github.com/annel0/fabula-editor/internal/terrain"
	"github.com/annel0/fabula-editor/internal/undo"
)

// AutoTileBrush рисует покрытие и пересчитывает варианты переходов
// в нарисованной области и кольце ее соседей.
type AutoTileBrush struct {
	dragState
	terrain terrain.TerrainID
}

// NewAutoTileBrush создает кисть автотайлов в режиме карандаша
func NewAutoTileBrush(grid *terrain.Grid, recorder Recorder) *AutoTileBrush {
	return &AutoTileBrush{
		dragState: newDragState(TypeAutoTile, grid, recorder, ModePencil),
		terrain:   terrain.DebugTerrain,
	}
}

func (b *AutoTileBrush) Terrain() terrain.TerrainID { return b.terrain }

func (b *AutoTileBrush) SetTerrain(id terrain.TerrainID) { b.terrain = id }

func (b *AutoTileBrush) Apply() *undo.Record {
	return b.paintAutoTiled(b.area(), func(s terrain.TileState) terrain.TileState {
		s.Terrain = b.terrain
		return s
	})
}

func (b *AutoTileBrush) StatusBarInfo() string {
	info := fmt.Sprintf("%s terrain=%d", b.statusPrefix(), b.terrain)
	if v, err := b.grid.AutoTileVariantAt(b.pos.ToVec2().X, b.pos.ToVec2().Y); err == nil {
		info += " variant=" + v.String()
	}
	return info
}
