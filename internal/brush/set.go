package brush

import "github.com/annel0/fabula-editor/internal/terrain"

var (
	_ Brush = (*TerrainBrush)(nil)
	_ Brush = (*AutoTileBrush)(nil)
	_ Brush = (*PassableBrush)(nil)
	_ Brush = (*EventBrush)(nil)
	_ Brush = (*LiquidBrush)(nil)
	_ Brush = (*FoliageBrush)(nil)
)

// Set - по одной кисти каждого вида, все над одной картой
type Set struct {
	Terrain  *TerrainBrush
	AutoTile *AutoTileBrush
	Passable *PassableBrush
	Event    *EventBrush
	Liquid   *LiquidBrush
	Foliage  *FoliageBrush
}

// NewSet создает кисти для карты. Пересоздается при смене сцены.
func NewSet(grid *terrain.Grid, recorder Recorder) *Set {
	return &Set{
		Terrain:  NewTerrainBrush(grid, recorder),
		AutoTile: NewAutoTileBrush(grid, recorder),
		Passable: NewPassableBrush(grid, recorder),
		Event:    NewEventBrush(grid, recorder),
		Liquid:   NewLiquidBrush(grid, recorder),
		Foliage:  NewFoliageBrush(grid, recorder),
	}
}

// ByType возвращает кисть по виду или nil
func (s *Set) ByType(t Type) Brush {
	switch t {
	case TypeTerrain:
		return s.Terrain
	case TypeAutoTile:
		return s.AutoTile
	case TypePassable:
		return s.Passable
	case TypeEvent:
		return s.Event
	case TypeLiquid:
		return s.Liquid
	case TypeFoliage:
		return s.Foliage
	default:
		return nil
	}
}
