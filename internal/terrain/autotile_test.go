package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoTileTableCoversEveryMask(t *testing.T) {
	seen := make(map[AutoTileVariant]bool)
	for mask := uint8(0); mask < 16; mask++ {
		seen[VariantForMask(mask)] = true
	}
	assert.Len(t, seen, 16)
	assert.Equal(t, "isolated", VariantForMask(0x0F).String())
}

func TestAutoTileOneSidedTransition(t *testing.T) {
	g := newTestGrid(t, 5, 5, 4)

	water := DefaultState()
	water.Terrain = 4
	_, err := g.Set(2, 1, water) // сосед сверху от (2,2)
	require.NoError(t, err)

	mask, err := g.AutoTileMask(2, 2)
	require.NoError(t, err)
	assert.Equal(t, MaskNorth, mask)

	v, err := g.AutoTileVariantAt(2, 2)
	require.NoError(t, err)
	assert.Equal(t, AutoTileEdgeN, v)
}

func TestAutoTileEdgesOfMapCountAsSame(t *testing.T) {
	g := newTestGrid(t, 3, 3, 4)

	v, err := g.AutoTileVariantAt(0, 0)
	require.NoError(t, err)
	assert.Equal(t, AutoTileCenter, v)

	_, err = g.AutoTileVariantAt(3, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestGenerateHeightsIsDeterministic(t *testing.T) {
	a := newTestGrid(t, 12, 12, 4)
	b := newTestGrid(t, 12, 12, 4)
	noise := HeightNoise{Seed: 42, Scale: 0.1, Amplitude: 6}

	GenerateHeights(a, noise)
	GenerateHeights(b, noise)

	a.Each(func(tile Tile) {
		other, err := b.Get(tile.Col, tile.Row)
		require.NoError(t, err)
		assert.Equal(t, tile.Height, other.Height)
		assert.GreaterOrEqual(t, tile.Height, float32(0))
		assert.LessOrEqual(t, tile.Height, float32(6))
	})
	assert.Equal(t, a.Sectors().Len(), a.Sectors().DirtyCount())
}

func TestGenerateHeightsZeroSeedKeepsFlat(t *testing.T) {
	g := newTestGrid(t, 4, 4, 4)
	GenerateHeights(g, HeightNoise{})
	g.Each(func(tile Tile) {
		assert.Zero(t, tile.Height)
	})
}
