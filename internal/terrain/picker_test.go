package terrain

import (
	"testing"

	"github.com/annel0/fabula-editor/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func down(x, z float64) vec.Ray {
	return vec.Ray{
		Origin:    vec.Vec3Float{X: x, Y: 50, Z: z},
		Direction: vec.Vec3Float{Y: -1},
	}
}

func TestSnapTopDown(t *testing.T) {
	g := newTestGrid(t, 10, 10, 4)
	p := NewPicker(g)

	pos, ok := p.Snap(down(2.3, 3.7))
	require.True(t, ok)
	assert.Equal(t, vec.Vec2Float{X: 2.5, Y: 3.5}, pos)
}

func TestSnapMissesOutsideGrid(t *testing.T) {
	g := newTestGrid(t, 10, 10, 4)
	p := NewPicker(g)

	_, ok := p.Snap(down(-0.5, 3))
	assert.False(t, ok)
	_, ok = p.Snap(down(3, 10.2))
	assert.False(t, ok)

	// Луч вверх никогда не встретит рельеф
	_, ok = p.Snap(vec.Ray{Origin: vec.Vec3Float{X: 1, Y: 5, Z: 1}, Direction: vec.Vec3Float{Y: 1}})
	assert.False(t, ok)

	_, ok = p.Snap(vec.Ray{Origin: vec.Vec3Float{X: 1, Y: 5, Z: 1}})
	assert.False(t, ok)
}

func TestSlantedRayHitsFlatGround(t *testing.T) {
	g := newTestGrid(t, 10, 10, 4)
	p := NewPicker(g)

	ray := vec.Ray{
		Origin:    vec.Vec3Float{X: -5.25, Y: 10, Z: 0.5},
		Direction: vec.Vec3Float{X: 1, Y: -1},
	}
	hit, ok := p.Pick(ray)
	require.True(t, ok)
	assert.Equal(t, vec.Vec2{X: 4, Y: 0}, hit.Tile)
	assert.InDelta(t, 0.0, hit.Point.Y, 1e-9)
}

func TestSlantedRayStopsAtRaisedTileWall(t *testing.T) {
	g := newTestGrid(t, 10, 10, 4)
	raised := DefaultState()
	raised.Height = 6
	_, err := g.Set(3, 0, raised)
	require.NoError(t, err)

	p := NewPicker(g)
	ray := vec.Ray{
		Origin:    vec.Vec3Float{X: -5.25, Y: 10, Z: 0.5},
		Direction: vec.Vec3Float{X: 1, Y: -1},
	}

	first, ok := p.Snap(ray)
	require.True(t, ok)
	assert.Equal(t, vec.Vec2Float{X: 3.5, Y: 0.5}, first)

	// Повторный вызов с тем же лучом дает тот же результат
	second, ok := p.Snap(ray)
	require.True(t, ok)
	assert.Equal(t, first, second)
}

func TestRayLandsOnRaisedTop(t *testing.T) {
	g := newTestGrid(t, 6, 6, 4)
	raised := DefaultState()
	raised.Height = 2
	_, err := g.Set(4, 4, raised)
	require.NoError(t, err)

	hit, ok := NewPicker(g).Pick(down(4.5, 4.5))
	require.True(t, ok)
	assert.Equal(t, vec.Vec2{X: 4, Y: 4}, hit.Tile)
	assert.InDelta(t, 2.0, hit.Point.Y, 1e-9)
	assert.InDelta(t, 48.0, hit.Distance, 1e-9)
}
