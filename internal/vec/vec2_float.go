package vec

import "math"

// Vec2Float представляет 2D координаты с плавающей точкой (x, z на плоскости карты)
type Vec2Float struct {
	X, Y float64
}

// ToVec2 преобразует в координаты тайла (округление вниз, корректно для отрицательных)
func (v Vec2Float) ToVec2() Vec2 {
	return Vec2{X: int(math.Floor(v.X)), Y: int(math.Floor(v.Y))}
}

// TileCenter возвращает центр тайла в мировых координатах
func TileCenter(v Vec2) Vec2Float {
	return Vec2Float{X: float64(v.X) + 0.5, Y: float64(v.Y) + 0.5}
}

// Add складывает два вектора
func (v Vec2Float) Add(other Vec2Float) Vec2Float {
	return Vec2Float{X: v.X + other.X, Y: v.Y + other.Y}
}

// Mul умножает вектор на скаляр
func (v Vec2Float) Mul(scalar float64) Vec2Float {
	return Vec2Float{X: v.X * scalar, Y: v.Y * scalar}
}
