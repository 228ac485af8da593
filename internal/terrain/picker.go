package terrain

import (
	"math"

	"github.com/annel0/fabula-editor/internal/vec"
)

// Hit - результат пересечения луча с картой высот
type Hit struct {
	Tile     vec.Vec2      // Тайл, в который попал луч
	Point    vec.Vec3Float // Точка пересечения
	Distance float64       // Расстояние от начала луча
}

// Picker пересекает лучи камеры с картой высот. Не хранит состояния между вызовами.
type Picker struct {
	grid *Grid
}

// NewPicker создает пикер для карты
func NewPicker(g *Grid) *Picker {
	return &Picker{grid: g}
}

// Snap возвращает центр тайла (x, z), в который попал луч, или false при промахе
func (p *Picker) Snap(ray vec.Ray) (vec.Vec2Float, bool) {
	hit, ok := p.Pick(ray)
	if !ok {
		return vec.Vec2Float{}, false
	}
	return vec.TileCenter(hit.Tile), true
}

// Pick находит ближайший тайл, верхнюю грань или боковую стенку которого пересекает луч.
// Тайл (col,row) занимает [col,col+1]x[row,row+1] по XZ и поднят на свою высоту.
func (p *Picker) Pick(ray vec.Ray) (Hit, bool) {
	g := p.grid
	o, d := ray.Origin, ray.Direction
	if d.X == 0 && d.Y == 0 && d.Z == 0 {
		return Hit{}, false
	}

	// Отсекаем луч по границам карты в плоскости XZ (slab-тест)
	tmin, tmax := 0.0, math.Inf(1)
	var ok bool
	if tmin, tmax, ok = clipSlab(o.X, d.X, float64(g.width), tmin, tmax); !ok {
		return Hit{}, false
	}
	if tmin, tmax, ok = clipSlab(o.Z, d.Z, float64(g.height), tmin, tmax); !ok {
		return Hit{}, false
	}

	cell := ray.At(tmin).XZ().ToVec2()
	col := clampInt(cell.X, 0, g.width-1)
	row := clampInt(cell.Y, 0, g.height-1)

	stepX, tMaxX, tDeltaX := dda(o.X, d.X, col)
	stepZ, tMaxZ, tDeltaZ := dda(o.Z, d.Z, row)

	tEnter := tmin
	for {
		tExit := math.Min(math.Min(tMaxX, tMaxZ), tmax)
		h := g.heightAt(col, row)

		yEnter := o.Y + d.Y*tEnter
		if yEnter <= h {
			// Луч вошел в тайл ниже его верхней грани - попадание в стенку
			return p.hit(ray, col, row, tEnter), true
		}
		if d.Y < 0 {
			if t := (h - o.Y) / d.Y; t <= tExit {
				return p.hit(ray, col, row, t), true
			}
		}

		if tExit >= tmax {
			return Hit{}, false
		}

		if tMaxX < tMaxZ {
			col += stepX
			tEnter = tMaxX
			tMaxX += tDeltaX
		} else {
			row += stepZ
			tEnter = tMaxZ
			tMaxZ += tDeltaZ
		}

		if !g.InBounds(col, row) {
			return Hit{}, false
		}
	}
}

func (p *Picker) hit(ray vec.Ray, col, row int, t float64) Hit {
	return Hit{
		Tile:     vec.Vec2{X: col, Y: row},
		Point:    ray.At(t),
		Distance: t * ray.Direction.Length(),
	}
}

// clipSlab сужает [tmin,tmax] до участка луча внутри [0,size) по одной оси
func clipSlab(origin, dir, size, tmin, tmax float64) (float64, float64, bool) {
	if dir == 0 {
		if origin < 0 || origin >= size {
			return tmin, tmax, false
		}
		return tmin, tmax, true
	}

	t1 := (0 - origin) / dir
	t2 := (size - origin) / dir
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	tmin = math.Max(tmin, t1)
	tmax = math.Min(tmax, t2)
	return tmin, tmax, tmin <= tmax
}

// dda возвращает шаг, параметр следующей границы ячейки и шаг параметра по оси
func dda(origin, dir float64, cell int) (int, float64, float64) {
	switch {
	case dir > 0:
		return 1, (float64(cell+1) - origin) / dir, 1 / dir
	case dir < 0:
		return -1, (float64(cell) - origin) / dir, -1 / dir
	default:
		return 0, math.Inf(1), math.Inf(1)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
