package terrain

// TerrainID - тип покрытия тайла
type TerrainID uint16

// LiquidID - тип жидкости на тайле, LiquidNone - нет жидкости
type LiquidID uint16

// FoliageID - набор растительности на тайле, FoliageNone - нет растительности
type FoliageID uint16

// EventID - ссылка на событие тайла, EventNone - нет события
type EventID uint32

const (
	TerrainNone  TerrainID = 0
	DebugTerrain TerrainID = 1 // Отладочное покрытие для новых карт

	LiquidNone  LiquidID  = 0
	FoliageNone FoliageID = 0
	EventNone   EventID   = 0
)

// Passability - битовая маска сторон тайла, через которые можно пройти
type Passability uint8

const (
	PassNorth Passability = 1 << iota
	PassEast
	PassSouth
	PassWest

	PassableNone Passability = 0
	PassableAll              = PassNorth | PassEast | PassSouth | PassWest
)

// Has проверяет, открыты ли все указанные стороны
func (p Passability) Has(side Passability) bool {
	return p&side == side
}

// TileState - атрибуты тайла без позиции. Передается только по значению:
// снимок никогда не ссылается на живые данные карты.
type TileState struct {
	Height   float32
	Terrain  TerrainID
	Passable Passability
	Liquid   LiquidID
	Foliage  FoliageID
	Event    EventID
	AutoTile AutoTileVariant
}

// DefaultState возвращает состояние тайла новой карты
func DefaultState() TileState {
	return TileState{
		Terrain:  DebugTerrain,
		Passable: PassableAll,
	}
}

// HasLiquid возвращает true, если на тайле есть жидкость
func (s TileState) HasLiquid() bool { return s.Liquid != LiquidNone }

// HasFoliage возвращает true, если на тайле есть растительность
func (s TileState) HasFoliage() bool { return s.Foliage != FoliageNone }

// HasEvent возвращает true, если на тайле есть событие
func (s TileState) HasEvent() bool { return s.Event != EventNone }

// Tile - тайл карты с позицией
type Tile struct {
	Col, Row int
	TileState
}

// State возвращает копию атрибутов тайла
func (t Tile) State() TileState {
	return t.TileState
}
