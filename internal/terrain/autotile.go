package terrain

// AutoTileVariant - вариант перехода тайла, выводимый из покрытия соседей
type AutoTileVariant uint8

// Маска соседей: бит выставлен, если покрытие соседа отличается.
// Соседи за пределами карты считаются одинаковыми.
const (
	MaskNorth uint8 = 1 << iota // row-1
	MaskEast                    // col+1
	MaskSouth                   // row+1
	MaskWest                    // col-1
)

const (
	AutoTileCenter AutoTileVariant = iota
	AutoTileEdgeN
	AutoTileEdgeE
	AutoTileEdgeS
	AutoTileEdgeW
	AutoTileCornerNE
	AutoTileCornerSE
	AutoTileCornerSW
	AutoTileCornerNW
	AutoTileChannelNS // Граница слева и справа
	AutoTileChannelEW // Граница сверху и снизу
	AutoTileEndN      // Открыт только на юг
	AutoTileEndE      // Открыт только на запад
	AutoTileEndS      // Открыт только на север
	AutoTileEndW      // Открыт только на восток
	AutoTileIsolated
)

// autoTileTable индексируется маской соседей
var autoTileTable = [16]AutoTileVariant{
	0:                                AutoTileCenter,
	MaskNorth:                        AutoTileEdgeN,
	MaskEast:                         AutoTileEdgeE,
	MaskNorth | MaskEast:             AutoTileCornerNE,
	MaskSouth:                        AutoTileEdgeS,
	MaskNorth | MaskSouth:            AutoTileChannelEW,
	MaskEast | MaskSouth:             AutoTileCornerSE,
	MaskNorth | MaskEast | MaskSouth: AutoTileEndE,
	MaskWest:                         AutoTileEdgeW,
	MaskNorth | MaskWest:             AutoTileCornerNW,
	MaskEast | MaskWest:              AutoTileChannelNS,
	MaskNorth | MaskEast | MaskWest:  AutoTileEndN,
	MaskSouth | MaskWest:             AutoTileCornerSW,
	MaskNorth | MaskSouth | MaskWest: AutoTileEndW,
	MaskEast | MaskSouth | MaskWest:  AutoTileEndS,
	MaskNorth | MaskEast | MaskSouth | MaskWest: AutoTileIsolated,
}

var autoTileNames = [...]string{
	"center", "edge-n", "edge-e", "edge-s", "edge-w",
	"corner-ne", "corner-se", "corner-sw", "corner-nw",
	"channel-ns", "channel-ew",
	"end-n", "end-e", "end-s", "end-w",
	"isolated",
}

func (v AutoTileVariant) String() string {
	if int(v) < len(autoTileNames) {
		return autoTileNames[v]
	}
	return "unknown"
}

// VariantForMask возвращает вариант перехода для маски соседей
func VariantForMask(mask uint8) AutoTileVariant {
	return autoTileTable[mask&0x0F]
}

// AutoTileMask вычисляет маску соседей тайла по текущему покрытию
func (g *Grid) AutoTileMask(col, row int) (uint8, error) {
	self, ok := g.terrainAt(col, row)
	if !ok {
		return 0, &OutOfRangeError{Col: col, Row: row, Width: g.width, Height: g.height}
	}
	return g.maskAround(col, row, self), nil
}

func (g *Grid) maskAround(col, row int, self TerrainID) uint8 {
	var mask uint8
	neighbors := [4]struct {
		dc, dr int
		bit    uint8
	}{
		{0, -1, MaskNorth},
		{1, 0, MaskEast},
		{0, 1, MaskSouth},
		{-1, 0, MaskWest},
	}
	for _, n := range neighbors {
		if t, ok := g.terrainAt(col+n.dc, row+n.dr); ok && t != self {
			mask |= n.bit
		}
	}
	return mask
}

// AutoTileVariantAt вычисляет вариант перехода тайла
func (g *Grid) AutoTileVariantAt(col, row int) (AutoTileVariant, error) {
	mask, err := g.AutoTileMask(col, row)
	if err != nil {
		return AutoTileCenter, err
	}
	return VariantForMask(mask), nil
}

// RecomputeAutoTile записывает вычисленный вариант перехода в тайл.
// Возвращает предыдущее и новое состояние.
func (g *Grid) RecomputeAutoTile(col, row int) (TileState, TileState, error) {
	prev, err := g.State(col, row)
	if err != nil {
		return TileState{}, TileState{}, err
	}
	next := prev
	next.AutoTile = VariantForMask(g.maskAround(col, row, prev.Terrain))
	if _, err := g.Set(col, row, next); err != nil {
		return TileState{}, TileState{}, err
	}
	return prev, next, nil
}
