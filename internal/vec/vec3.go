package vec

import "math"

// Vec3Float представляет трехмерный вектор с плавающими координатами.
// Y - высота, плоскость карты - XZ.
type Vec3Float struct {
	X float64
	Y float64
	Z float64
}

// Add складывает два вектора
func (v Vec3Float) Add(other Vec3Float) Vec3Float {
	return Vec3Float{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Mul умножает вектор на скаляр
func (v Vec3Float) Mul(scalar float64) Vec3Float {
	return Vec3Float{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar}
}

// Length возвращает длину вектора
func (v Vec3Float) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// XZ отбрасывает высоту
func (v Vec3Float) XZ() Vec2Float {
	return Vec2Float{X: v.X, Y: v.Z}
}

// Ray - луч в мировом пространстве
type Ray struct {
	Origin    Vec3Float
	Direction Vec3Float
}

// At возвращает точку луча для параметра t
func (r Ray) At(t float64) Vec3Float {
	return r.Origin.Add(r.Direction.Mul(t))
}
