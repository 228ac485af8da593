package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpanRectOrderIndependent(t *testing.T) {
	a := SpanRect(Vec2{X: 4, Y: 2}, Vec2{X: 2, Y: 4})
	b := SpanRect(Vec2{X: 2, Y: 2}, Vec2{X: 4, Y: 4})

	assert.Equal(t, Rect{X: 2, Y: 2, W: 3, H: 3}, a)
	assert.Equal(t, a, b)
	assert.Len(t, a.Points(), 9)
}

func TestRectIntersect(t *testing.T) {
	r := Rect{X: -1, Y: -1, W: 3, H: 3}.Intersect(Rect{W: 10, H: 10})
	assert.Equal(t, Rect{X: 0, Y: 0, W: 2, H: 2}, r)

	empty := Rect{X: 20, Y: 20, W: 2, H: 2}.Intersect(Rect{W: 10, H: 10})
	assert.True(t, empty.Empty())
	assert.Nil(t, empty.Points())
}

func TestToVec2FloorsNegative(t *testing.T) {
	assert.Equal(t, Vec2{X: -1, Y: 2}, Vec2Float{X: -0.25, Y: 2.9}.ToVec2())
	assert.Equal(t, Vec2Float{X: 3.5, Y: 0.5}, TileCenter(Vec2{X: 3}))
}

func TestSectorCellAndPlaneProjection(t *testing.T) {
	assert.Equal(t, Vec2{X: 2, Y: 0}, Vec2{X: 17, Y: 7}.DivFloor(8))
	assert.Equal(t, Vec2{X: 4, Y: 6}, Vec2{X: 3, Y: 7}.Add(Vec2{X: 1, Y: -1}))

	ray := Ray{Origin: Vec3Float{X: 1, Y: 10, Z: 2}, Direction: Vec3Float{X: 0.5, Y: -1, Z: 0.25}}
	assert.Equal(t, Vec2Float{X: 3, Y: 3}, ray.At(4).XZ())
	assert.Equal(t, Vec2Float{X: 2, Y: 1}, Vec2Float{X: 1, Y: 0.5}.Mul(2))
}
