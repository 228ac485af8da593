package terrain

import (
	"testing"

	"github.com/annel0/fabula-editor/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionerPartialEdgeSectors(t *testing.T) {
	p, err := NewPartitioner(10, 7, 4)
	require.NoError(t, err)

	assert.Equal(t, 3, p.Columns())
	assert.Equal(t, 2, p.Rows())
	assert.Equal(t, 6, p.Len())
	assert.Equal(t, vec.Rect{X: 8, Y: 0, W: 2, H: 4}, p.At(2).Bounds)
	assert.Equal(t, vec.Rect{X: 8, Y: 4, W: 2, H: 3}, p.At(5).Bounds)
}

func TestEveryTileInExactlyOneSector(t *testing.T) {
	p, err := NewPartitioner(13, 9, 5)
	require.NoError(t, err)

	for row := 0; row < 9; row++ {
		for col := 0; col < 13; col++ {
			owners := 0
			for id := 0; id < p.Len(); id++ {
				if p.At(id).Bounds.Contains(vec.Vec2{X: col, Y: row}) {
					owners++
					assert.Equal(t, id, p.SectorFor(col, row))
				}
			}
			assert.Equal(t, 1, owners, "тайл (%d,%d)", col, row)
		}
	}
	assert.Equal(t, -1, p.SectorFor(13, 0))
	assert.Nil(t, p.At(p.Len()))
}

func TestScatteredEditsMarkOnlyTouchedSectors(t *testing.T) {
	g := newTestGrid(t, 32, 32, 8)
	require.Zero(t, g.Sectors().DirtyCount())

	// 6 правок в 3 разных секторах
	edits := [][2]int{{0, 0}, {1, 1}, {7, 7}, {8, 0}, {9, 3}, {31, 31}}
	for _, e := range edits {
		s := DefaultState()
		s.Terrain = 9
		_, err := g.Set(e[0], e[1], s)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, g.Sectors().DirtyCount())
	assert.Equal(t, []int{0, 1, 15}, g.Sectors().DirtyIDs())
	assert.True(t, g.Sectors().IsDirty(1))
	assert.False(t, g.Sectors().IsDirty(2))
	assert.False(t, g.Sectors().IsDirty(-1))

	rebuilt := g.RebuildDirty(nil)
	assert.Equal(t, 3, rebuilt)
	assert.Zero(t, g.Sectors().DirtyCount())
	assert.Zero(t, g.RebuildDirty(nil))
	assert.False(t, g.Sectors().IsDirty(15))
}

func TestSetWithSameStateKeepsSectorClean(t *testing.T) {
	g := newTestGrid(t, 8, 8, 4)

	_, err := g.Set(3, 3, DefaultState())
	require.NoError(t, err)
	assert.Zero(t, g.Sectors().DirtyCount())
}

func TestGeometrySnapshotIsCopyOnWrite(t *testing.T) {
	g := newTestGrid(t, 8, 8, 4)
	before := g.Sectors().At(0).Geometry()
	require.NotNil(t, before)

	s := DefaultState()
	s.Height = 3
	_, err := g.Set(1, 1, s)
	require.NoError(t, err)
	g.RebuildDirty(HeightfieldBuilder{})

	after := g.Sectors().At(0).Geometry()
	assert.NotSame(t, before, after)
	assert.Equal(t, float32(0), before.MaxHeight)
	assert.Equal(t, float32(3), after.MaxHeight)
	assert.Equal(t, float32(3), after.Heights[1*4+1])
	assert.Greater(t, after.Version, before.Version)
}
