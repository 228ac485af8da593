package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/annel0/fabula-editor/internal/terrain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func tiles(g *terrain.Grid) []terrain.Tile {
	var out []terrain.Tile
	g.Each(func(t terrain.Tile) { out = append(out, t) })
	return out
}

// richScene содержит по тайлу каждого вида атрибутов
func richScene(t *testing.T) *Scene {
	t.Helper()
	s, err := New("forest", 12, 9, 4)
	require.NoError(t, err)
	g := s.Grid()

	edits := map[[2]int]func(*terrain.TileState){
		{0, 0}:  func(st *terrain.TileState) { st.Terrain = 4 },
		{11, 8}: func(st *terrain.TileState) { st.Liquid = 2 },
		{5, 3}:  func(st *terrain.TileState) { st.Foliage = 7 },
		{6, 3}:  func(st *terrain.TileState) { st.Event = 100500 },
		{2, 7}:  func(st *terrain.TileState) { st.Passable = terrain.PassNorth | terrain.PassEast },
		{3, 7}:  func(st *terrain.TileState) { st.Passable = terrain.PassableNone },
		{9, 1}:  func(st *terrain.TileState) { st.Height = 2.5 },
		{9, 2}:  func(st *terrain.TileState) { st.Height = -1.25; st.AutoTile = terrain.AutoTileCornerSW },
		{1, 1}:  func(st *terrain.TileState) { st.Terrain = terrain.TerrainNone },
	}
	for pos, edit := range edits {
		st := terrain.DefaultState()
		edit(&st)
		_, err := g.Set(pos[0], pos[1], st)
		require.NoError(t, err)
	}
	return s
}

func TestNewScene(t *testing.T) {
	a, err := New("", 4, 4, 2)
	require.NoError(t, err)
	b, err := New("", 4, 4, 2)
	require.NoError(t, err)

	assert.NotEmpty(t, a.UID())
	assert.NotEqual(t, a.UID(), b.UID())
	assert.False(t, a.HasName())
	assert.Empty(t, a.Path())

	a.SetName("town")
	assert.Equal(t, filepath.Join("maps", "town.red"), a.Path())

	_, err = New("bad", 0, 4, 2)
	assert.Error(t, err)
}

func TestSaveOpenRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := richScene(t)
	s.SetMapsDir(dir)

	require.NoError(t, s.Save())

	loaded, err := Open(filepath.Join(dir, "forest.red"), 4)
	require.NoError(t, err)
	assert.Equal(t, s.UID(), loaded.UID())
	assert.Equal(t, s.Name(), loaded.Name())
	assert.Equal(t, s.Grid().Width(), loaded.Grid().Width())
	assert.Equal(t, s.Grid().Height(), loaded.Grid().Height())
	assert.Equal(t, tiles(s.Grid()), tiles(loaded.Grid()))
	assert.Equal(t, dir, loaded.MapsDir())
	assert.Equal(t, loaded.Grid().Sectors().Len(), loaded.Grid().Sectors().DirtyCount())
}

func TestEncodeIsSparse(t *testing.T) {
	empty, err := New("a", 256, 256, 16)
	require.NoError(t, err)
	data, err := Encode(empty)
	require.NoError(t, err)
	assert.Less(t, len(data), 256)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := richScene(t)
	s.SetMapsDir(filepath.Join(dir, "nested"))

	require.NoError(t, s.Save())
	require.NoError(t, s.Save())

	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "forest.red", entries[0].Name())
}

func TestSaveFailureKeepsTargetUntouched(t *testing.T) {
	dir := t.TempDir()
	s := richScene(t)

	// Каталог на месте файла: переименование завершится ошибкой
	target := filepath.Join(dir, "forest.red")
	require.NoError(t, os.Mkdir(target, 0o755))

	err := Save(s, target)
	var saveErr *SaveError
	require.True(t, errors.As(err, &saveErr))
	assert.Equal(t, target, saveErr.Path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsDir())
}

func TestSaveWithoutName(t *testing.T) {
	s, err := New("", 2, 2, 2)
	require.NoError(t, err)
	err = s.Save()
	assert.True(t, errors.Is(err, ErrNoPath))
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.red"), 16)
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.True(t, errors.Is(err, ErrMissing))
}

func TestOpenCorrupt(t *testing.T) {
	dir := t.TempDir()
	data, err := Encode(richScene(t))
	require.NoError(t, err)

	cases := map[string][]byte{
		"garbage":   []byte("not a scene at all"),
		"empty":     nil,
		"truncated": data[:len(data)/2],
	}
	for name, body := range cases {
		path := filepath.Join(dir, name+".red")
		require.NoError(t, os.WriteFile(path, body, 0o644))

		_, err := Open(path, 16)
		var loadErr *LoadError
		require.True(t, errors.As(err, &loadErr), name)
		assert.True(t, errors.Is(err, ErrCorrupt), name)
	}
}

func TestOpenRejectsOversizedMap(t *testing.T) {
	require.NoError(t, initCodec())

	var msg []byte
	msg = protowire.AppendTag(msg, fieldUID, protowire.BytesType)
	msg = protowire.AppendString(msg, "u")
	msg = protowire.AppendTag(msg, fieldWidth, protowire.VarintType)
	msg = protowire.AppendVarint(msg, MaxDimension)
	msg = protowire.AppendTag(msg, fieldHeight, protowire.VarintType)
	msg = protowire.AppendVarint(msg, MaxDimension)
	data := encoder.EncodeAll(msg, append([]byte(magic), FormatVersion))

	path := filepath.Join(t.TempDir(), "huge.red")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err := Open(path, 16)
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.True(t, errors.Is(err, ErrCorrupt))
}

func TestNewSceneLightingDefaults(t *testing.T) {
	s, err := New("lit", 4, 4, 2)
	require.NoError(t, err)

	lights := s.Lights()
	assert.Equal(t, Color{R: 1, G: 1, B: 1, A: 0.5}, lights.Ambient)
	assert.Equal(t, White, lights.Sun.Color)
	assert.InDelta(t, -0.716, lights.Sun.Direction.Y, 1e-9)
	assert.Equal(t, DefaultFinalShader, s.FinalShader())

	s.SetFinalShader("sepia")
	assert.Equal(t, "sepia", s.FinalShader())
	s.SetFinalShader("")
	assert.Equal(t, DefaultFinalShader, s.FinalShader())

	lights.Ambient.A = 0.2
	s.SetLights(lights)
	assert.Equal(t, float32(0.2), s.Lights().Ambient.A)
}

func TestOpenVersionMismatch(t *testing.T) {
	data, err := Encode(richScene(t))
	require.NoError(t, err)
	data[len(magic)] = FormatVersion + 1

	path := filepath.Join(t.TempDir(), "future.red")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = Open(path, 16)
	assert.True(t, errors.Is(err, ErrVersion))
}

func TestDisposeIsIdempotent(t *testing.T) {
	s := richScene(t)
	s.Dispose()
	s.Dispose()
	assert.True(t, s.Disposed())
}
