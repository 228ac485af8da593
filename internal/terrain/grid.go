package terrain

import (
	"errors"
	"fmt"

	"github.com/annel0/fabula-editor/internal/vec"
)

// ErrOutOfRange возвращается при обращении за пределы карты
var ErrOutOfRange = errors.New("координаты вне карты")

// OutOfRangeError описывает конкретное обращение за пределы карты
type OutOfRangeError struct {
	Col, Row      int
	Width, Height int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("тайл (%d,%d) вне карты %dx%d", e.Col, e.Row, e.Width, e.Height)
}

func (e *OutOfRangeError) Unwrap() error {
	return ErrOutOfRange
}

// Grid - плотная карта тайлов фиксированного размера.
// Тайлы хранятся построчно: index = row*width + col.
type Grid struct {
	width   int
	height  int
	tiles   []TileState
	sectors *Partitioner
}

// NewGrid создает карту с пустыми тайлами, разбитую на секторы sectorSize x sectorSize
func NewGrid(width, height, sectorSize int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("некорректный размер карты %dx%d", width, height)
	}

	sectors, err := NewPartitioner(width, height, sectorSize)
	if err != nil {
		return nil, err
	}

	return &Grid{
		width:   width,
		height:  height,
		tiles:   make([]TileState, width*height),
		sectors: sectors,
	}, nil
}

// Width возвращает количество колонок
func (g *Grid) Width() int { return g.width }

// Height возвращает количество рядов
func (g *Grid) Height() int { return g.height }

// Bounds возвращает прямоугольник всей карты
func (g *Grid) Bounds() vec.Rect {
	return vec.Rect{W: g.width, H: g.height}
}

// Sectors возвращает разбиение карты на секторы
func (g *Grid) Sectors() *Partitioner { return g.sectors }

// InBounds проверяет, лежат ли координаты внутри карты
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.width && row >= 0 && row < g.height
}

func (g *Grid) index(col, row int) (int, error) {
	if !g.InBounds(col, row) {
		return 0, &OutOfRangeError{Col: col, Row: row, Width: g.width, Height: g.height}
	}
	return row*g.width + col, nil
}

// Get возвращает копию тайла
func (g *Grid) Get(col, row int) (Tile, error) {
	idx, err := g.index(col, row)
	if err != nil {
		return Tile{}, err
	}
	return Tile{Col: col, Row: row, TileState: g.tiles[idx]}, nil
}

// State возвращает копию атрибутов тайла
func (g *Grid) State(col, row int) (TileState, error) {
	idx, err := g.index(col, row)
	if err != nil {
		return TileState{}, err
	}
	return g.tiles[idx], nil
}

// Set заменяет атрибуты тайла и возвращает предыдущее состояние.
// Сектор тайла помечается грязным, только если состояние реально изменилось.
func (g *Grid) Set(col, row int, state TileState) (TileState, error) {
	idx, err := g.index(col, row)
	if err != nil {
		return TileState{}, err
	}

	prev := g.tiles[idx]
	if prev != state {
		g.tiles[idx] = state
		g.sectors.MarkDirty(g.sectors.SectorFor(col, row))
	}
	return prev, nil
}

// FillWithDefault заполняет всю карту отладочным покрытием
func (g *Grid) FillWithDefault() {
	def := DefaultState()
	for i := range g.tiles {
		g.tiles[i] = def
	}
	g.sectors.MarkAllDirty()
}

// Each обходит все тайлы построчно
func (g *Grid) Each(fn func(t Tile)) {
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			fn(Tile{Col: col, Row: row, TileState: g.tiles[row*g.width+col]})
		}
	}
}

// Neighbors4 возвращает соседей по сторонам света, лежащие в пределах карты
func (g *Grid) Neighbors4(col, row int) []vec.Vec2 {
	out := make([]vec.Vec2, 0, 4)
	at := vec.Vec2{X: col, Y: row}
	for _, d := range [4]vec.Vec2{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}} {
		if n := at.Add(d); g.InBounds(n.X, n.Y) {
			out = append(out, n)
		}
	}
	return out
}

// BuildAll помечает все секторы к перестройке (после создания или загрузки карты)
func (g *Grid) BuildAll() {
	g.sectors.MarkAllDirty()
}

// RebuildDirty перестраивает геометрию грязных секторов
func (g *Grid) RebuildDirty(builder GeometryBuilder) int {
	return g.sectors.RebuildDirty(g, builder)
}

// heightAt без проверки границ, для пикера
func (g *Grid) heightAt(col, row int) float64 {
	return float64(g.tiles[row*g.width+col].Height)
}

// terrainAt возвращает покрытие или false за пределами карты
func (g *Grid) terrainAt(col, row int) (TerrainID, bool) {
	if !g.InBounds(col, row) {
		return TerrainNone, false
	}
	return g.tiles[row*g.width+col].Terrain, true
}
