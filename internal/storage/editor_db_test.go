package storage

import (
	"errors"
	"testing"

	"github.com/annel0/fabula-editor/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDatabase(t *testing.T, recentLimit int) *Database {
	t.Helper()
	db, err := NewMemoryDatabase(recentLimit)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStartPosition(t *testing.T) {
	db := setupTestDatabase(t, 0)

	_, err := db.PlayerStartPosition()
	assert.True(t, errors.Is(err, ErrNotFound))

	want := StartPosition{SceneUID: "abc", MapPath: "maps/town.red", Tile: vec.Vec2{X: 4, Y: 9}}
	require.NoError(t, db.SetPlayerStartPosition(want))

	got, err := db.PlayerStartPosition()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, db.ClearPlayerStartPosition())
	_, err = db.PlayerStartPosition()
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSnapshots(t *testing.T) {
	db := setupTestDatabase(t, 0)

	_, err := db.LoadSnapshot("s1")
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, db.SaveSnapshot("s1", []byte{1, 2, 3}))
	data, err := db.LoadSnapshot("s1")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	require.NoError(t, db.DeleteSnapshot("s1"))
	_, err = db.LoadSnapshot("s1")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRecentMapsBoundedMRU(t *testing.T) {
	db := setupTestDatabase(t, 3)

	recent, err := db.RecentMaps()
	require.NoError(t, err)
	assert.Empty(t, recent)

	for _, name := range []string{"a", "b", "c", "d"} {
		require.NoError(t, db.TouchRecent("maps/"+name+".red", name))
	}
	require.NoError(t, db.TouchRecent("maps/c.red", "c"))

	recent, err = db.RecentMaps()
	require.NoError(t, err)
	names := make([]string, 0, len(recent))
	for _, r := range recent {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"c", "d", "b"}, names)
}

func TestClosedDatabase(t *testing.T) {
	db, err := NewMemoryDatabase(0)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	require.NoError(t, db.Close())

	assert.True(t, errors.Is(db.SaveSnapshot("x", nil), ErrNotReady))
	_, err = db.PlayerStartPosition()
	assert.True(t, errors.Is(err, ErrNotReady))
}
