package terrain

import (
	"fmt"

	"github.com/annel0/fabula-editor/internal/vec"
)

// DefaultSectorSize - сторона сектора в тайлах
const DefaultSectorSize = 16

// Sector - прямоугольный участок карты, перестраиваемый и рисуемый целиком.
// Крайние секторы в ряду/колонке могут быть меньше.
type Sector struct {
	ID       int
	Bounds   vec.Rect
	dirty    bool
	geometry *SectorGeometry
}

// Dirty возвращает true, если сектор ждет перестройки
func (s *Sector) Dirty() bool { return s.dirty }

// Geometry возвращает последний построенный снимок геометрии (nil до первой сборки).
// Снимок неизменяем: при перестройке он заменяется новым.
func (s *Sector) Geometry() *SectorGeometry { return s.geometry }

// SectorGeometry - неизменяемый снимок данных сектора для рендера
type SectorGeometry struct {
	SectorID  int
	Bounds    vec.Rect
	MinHeight float32
	MaxHeight float32
	Heights   []float32         // Построчно, Bounds.W*Bounds.H
	Terrain   []TerrainID       // Построчно
	AutoTile  []AutoTileVariant // Построчно
	Version   uint64
}

// GeometryBuilder строит геометрию сектора по текущему состоянию карты
type GeometryBuilder interface {
	BuildSector(g *Grid, s *Sector, version uint64) *SectorGeometry
}

// HeightfieldBuilder - сборщик по умолчанию: высоты, покрытие и варианты автотайлов
type HeightfieldBuilder struct{}

// BuildSector копирует атрибуты тайлов сектора в новый снимок
func (HeightfieldBuilder) BuildSector(g *Grid, s *Sector, version uint64) *SectorGeometry {
	n := s.Bounds.W * s.Bounds.H
	geom := &SectorGeometry{
		SectorID: s.ID,
		Bounds:   s.Bounds,
		Heights:  make([]float32, 0, n),
		Terrain:  make([]TerrainID, 0, n),
		AutoTile: make([]AutoTileVariant, 0, n),
		Version:  version,
	}

	first := true
	for row := s.Bounds.Y; row < s.Bounds.Y+s.Bounds.H; row++ {
		for col := s.Bounds.X; col < s.Bounds.X+s.Bounds.W; col++ {
			t := g.tiles[row*g.width+col]
			if first || t.Height < geom.MinHeight {
				geom.MinHeight = t.Height
			}
			if first || t.Height > geom.MaxHeight {
				geom.MaxHeight = t.Height
			}
			first = false

			geom.Heights = append(geom.Heights, t.Height)
			geom.Terrain = append(geom.Terrain, t.Terrain)
			geom.AutoTile = append(geom.AutoTile, t.AutoTile)
		}
	}
	return geom
}

// Partitioner делит карту на секторы построчно
type Partitioner struct {
	size       int
	width      int
	height     int
	cols       int
	rows       int
	sectors    []*Sector
	dirtyCount int
	version    uint64
}

// NewPartitioner вычисляет границы секторов для карты width x height
func NewPartitioner(width, height, size int) (*Partitioner, error) {
	if size <= 0 {
		return nil, fmt.Errorf("некорректный размер сектора: %d", size)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("некорректный размер карты %dx%d", width, height)
	}

	cols := (width + size - 1) / size
	rows := (height + size - 1) / size

	p := &Partitioner{
		size:    size,
		width:   width,
		height:  height,
		cols:    cols,
		rows:    rows,
		sectors: make([]*Sector, cols*rows),
	}

	for sy := 0; sy < rows; sy++ {
		for sx := 0; sx < cols; sx++ {
			// Крайние секторы обрезаются по границе карты
			w := min(size, width-sx*size)
			h := min(size, height-sy*size)
			id := sy*cols + sx
			p.sectors[id] = &Sector{
				ID:     id,
				Bounds: vec.Rect{X: sx * size, Y: sy * size, W: w, H: h},
			}
		}
	}
	return p, nil
}

// Size возвращает сторону сектора
func (p *Partitioner) Size() int { return p.size }

// Columns возвращает количество секторов по горизонтали
func (p *Partitioner) Columns() int { return p.cols }

// Rows возвращает количество секторов по вертикали
func (p *Partitioner) Rows() int { return p.rows }

// Len возвращает общее количество секторов
func (p *Partitioner) Len() int { return len(p.sectors) }

// At возвращает сектор по ID или nil
func (p *Partitioner) At(id int) *Sector {
	if id < 0 || id >= len(p.sectors) {
		return nil
	}
	return p.sectors[id]
}

// SectorFor возвращает ID сектора тайла или -1 за пределами карты
func (p *Partitioner) SectorFor(col, row int) int {
	if col < 0 || col >= p.width || row < 0 || row >= p.height {
		return -1
	}
	s := vec.Vec2{X: col, Y: row}.DivFloor(p.size)
	return s.Y*p.cols + s.X
}

// MarkDirty помечает сектор для перестройки
func (p *Partitioner) MarkDirty(id int) {
	s := p.At(id)
	if s == nil || s.dirty {
		return
	}
	s.dirty = true
	p.dirtyCount++
}

// MarkAllDirty помечает все секторы (после создания или загрузки карты)
func (p *Partitioner) MarkAllDirty() {
	for _, s := range p.sectors {
		s.dirty = true
	}
	p.dirtyCount = len(p.sectors)
}

// IsDirty возвращает true для сектора, ожидающего перестройки
func (p *Partitioner) IsDirty(id int) bool {
	s := p.At(id)
	return s != nil && s.dirty
}

// DirtyCount возвращает количество грязных секторов
func (p *Partitioner) DirtyCount() int { return p.dirtyCount }

// DirtyIDs возвращает ID грязных секторов по возрастанию
func (p *Partitioner) DirtyIDs() []int {
	ids := make([]int, 0, p.dirtyCount)
	for _, s := range p.sectors {
		if s.dirty {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// RebuildDirty перестраивает геометрию только грязных секторов и снимает с них флаг.
// Возвращает количество перестроенных секторов.
func (p *Partitioner) RebuildDirty(g *Grid, builder GeometryBuilder) int {
	if p.dirtyCount == 0 {
		return 0
	}
	if builder == nil {
		builder = HeightfieldBuilder{}
	}

	rebuilt := 0
	for _, s := range p.sectors {
		if !s.dirty {
			continue
		}
		p.version++
		s.geometry = builder.BuildSector(g, s, p.version)
		s.dirty = false
		rebuilt++
	}
	p.dirtyCount = 0
	return rebuilt
}

// Release отбрасывает построенную геометрию всех секторов
func (p *Partitioner) Release() {
	for _, s := range p.sectors {
		s.geometry = nil
	}
}
