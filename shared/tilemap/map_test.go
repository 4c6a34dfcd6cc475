package tilemap_test

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/automoto/doomerang-tmx/shared/tilemap"
	"github.com/automoto/doomerang-tmx/shared/tmx"
)

func testdata(name string) string {
	return filepath.Join("..", "tmx", "testdata", name)
}

func buildTestMap(t *testing.T, name string, atlases tilemap.AtlasSource) *tilemap.Map {
	t.Helper()
	m, err := tmx.LoadMap(nil, testdata(name))
	require.NoError(t, err)
	return tilemap.Build(m, atlases, tilemap.Options{})
}

func TestBuildEndToEnd(t *testing.T) {
	atlases := atlasMap{testdata("tiles.png"): {ID: 1, Width: 64, Height: 64}}
	m := buildTestMap(t, "csv.tmx", atlases)

	g, ok := m.TileLayer("ground")
	require.True(t, ok)
	require.Equal(t, 4, g.Width)
	require.Equal(t, 4, g.Height)

	tile := g.TileAt(1, 1)
	require.Equal(t, tmx.GID(6), tile.GID)
	require.Equal(t, image.Rect(16, 16, 32, 32), tile.Src)
	require.Equal(t, tilemap.AtlasID(1), tile.Atlas)
	require.True(t, tile.Collidable, "tile 5 carries collidable=true")

	require.True(t, g.TileAt(1, 2).Flags.Horizontal())
	require.True(t, g.TileAt(2, 3).Flags.Vertical())
	require.True(t, g.TileAt(2, 3).Flags.Diagonal())
	require.True(t, g.TileAt(2, 1).IsEmpty())

	require.Len(t, g.Batches(), 1)
	require.Equal(t, 12, g.Batches()[0].Quads())

	w, h := m.PixelSize()
	require.Equal(t, [2]int{64, 64}, [2]int{w, h})
}

func TestBuildWithoutAtlases(t *testing.T) {
	m := buildTestMap(t, "csv.tmx", nil)

	g, ok := m.TileLayer("ground")
	require.True(t, ok)
	require.Equal(t, 12, g.Count())
	require.Empty(t, g.Batches(), "nothing drawable without atlases")
	require.True(t, g.TileAt(1, 0).Collidable)
	require.False(t, g.TileAt(0, 0).Collidable)
}

func TestBuildWorld(t *testing.T) {
	atlases := atlasMap{
		testdata("tiles.png"): {ID: 0, Width: 64, Height: 64},
		testdata("props.png"): {ID: 1, Width: 56, Height: 68},
		testdata("sky.png"):   {ID: 2, Width: 320, Height: 180},
	}
	m := buildTestMap(t, "world.tmx", atlases)
	require.Len(t, m.Layers, 3)

	sky := m.Layers[0]
	require.Equal(t, tmx.LayerImage, sky.Kind)
	require.Equal(t, tilemap.AtlasID(2), sky.Image.Atlas)
	require.True(t, sky.Image.RepeatX)

	ground, ok := m.TileLayer("ground")
	require.True(t, ok)
	require.False(t, ground.Visible)
	require.Len(t, ground.Batches(), 2, "ground draws from two atlases")
	require.False(t, ground.TileAt(1, 1).Collidable, "props tile 2 overrides the tileset")
	require.True(t, ground.TileAt(0, 1).Collidable)

	overlay, ok := m.TileLayer("overlay")
	require.True(t, ok)
	require.Equal(t, 0.25, overlay.Opacity)
	require.Equal(t, image.Rect(37, 35, 53, 67), overlay.TileAt(2, 1).Src)

	objs, ok := m.ObjectGroup("PlayerSpawn")
	require.True(t, ok)
	require.Len(t, objs, 2)
	require.Equal(t, tilemap.AtlasID(1), objs[0].Tile.Atlas)
	require.True(t, objs[1].Tile.Flags.Horizontal())
}

func TestBuildInfiniteMap(t *testing.T) {
	m := buildTestMap(t, "infinite.tmx", nil)

	g, ok := m.TileLayer("ground")
	require.True(t, ok)
	require.Equal(t, [4]int{-2, -1, 4, 3}, [4]int{g.OriginX, g.OriginY, g.Width, g.Height})

	// chunk (-2,-1) holds 2,0 / 0,6; chunk (0,1) holds 3,4
	require.Equal(t, tmx.GID(2), g.TileAt(0, 0).GID)
	require.Equal(t, tmx.GID(6), g.TileAt(1, 1).GID)
	require.Equal(t, tmx.GID(3), g.TileAt(2, 2).GID)
	require.Equal(t, tmx.GID(4), g.TileAt(3, 2).GID)
	require.Equal(t, 4, g.Count())

	x, y := g.Cell(0, 16)
	require.Equal(t, [2]int{2, 2}, [2]int{x, y})
}
