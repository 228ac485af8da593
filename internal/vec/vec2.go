package vec

// Vec2 представляет 2D координаты тайла (X - колонка, Y - ряд)
type Vec2 struct {
	X, Y int
}

// Add складывает два вектора
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// DivFloor делит координаты на size (для неотрицательных координат - номер сектора)
func (v Vec2) DivFloor(size int) Vec2 {
	return Vec2{X: v.X / size, Y: v.Y / size}
}

// SpanRect возвращает прямоугольник, натянутый на две точки (включительно).
// Порядок точек не важен.
func SpanRect(a, b Vec2) Rect {
	minX, maxX := a.X, b.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := a.Y, b.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return Rect{X: minX, Y: minY, W: maxX - minX + 1, H: maxY - minY + 1}
}

// Rect - прямоугольная область тайлов
type Rect struct {
	X, Y int // Левый верхний угол
	W, H int // Размеры в тайлах
}

// Contains проверяет, лежит ли точка внутри прямоугольника
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Intersect возвращает пересечение двух прямоугольников (может быть пустым)
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.W, o.X+o.W)
	y1 := min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Empty возвращает true для прямоугольника нулевой площади
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Points перечисляет все точки прямоугольника построчно
func (r Rect) Points() []Vec2 {
	if r.Empty() {
		return nil
	}
	points := make([]Vec2, 0, r.W*r.H)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			points = append(points, Vec2{X: x, Y: y})
		}
	}
	return points
}
