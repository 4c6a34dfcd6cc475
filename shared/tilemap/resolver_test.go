package tilemap_test

import (
	"image"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/automoto/doomerang-tmx/shared/tilemap"
	"github.com/automoto/doomerang-tmx/shared/tmx"
)

type atlasMap map[string]tilemap.Atlas

func (m atlasMap) Atlas(path string) (tilemap.Atlas, bool) {
	a, ok := m[path]
	return a, ok
}

func tileset(first tmx.GID, count, columns int) *tmx.Tileset {
	return &tmx.Tileset{
		FirstGID:   first,
		TileWidth:  16,
		TileHeight: 16,
		TileCount:  count,
		Columns:    columns,
	}
}

func TestResolveAcrossTwoTilesets(t *testing.T) {
	a := tileset(1, 10, 5)
	b := tileset(11, 5, 5)
	r := tilemap.NewResolver([]*tmx.Tileset{a, b}, nil, tilemap.Options{})

	res, ok := r.Resolve(10)
	require.True(t, ok)
	require.Same(t, a, res.Tileset)
	require.Equal(t, 9, res.LocalID)

	res, ok = r.Resolve(11)
	require.True(t, ok)
	require.Same(t, b, res.Tileset)
	require.Equal(t, 0, res.LocalID)

	_, ok = r.Resolve(16)
	require.False(t, ok)
	_, ok = r.Resolve(0)
	require.False(t, ok)
	_, ok = r.Resolve(1 << 30)
	require.False(t, ok)
}

func TestResolveSourceRect(t *testing.T) {
	r := tilemap.NewResolver([]*tmx.Tileset{tileset(1, 16, 4)}, nil, tilemap.Options{})

	res, ok := r.Resolve(6)
	require.True(t, ok)
	require.Equal(t, image.Rect(16, 16, 32, 32), res.Src)
	require.Equal(t, tilemap.NoAtlas, res.Atlas)
}

func TestResolveDerivesCountFromAtlas(t *testing.T) {
	ts := tileset(1, 0, 0)
	ts.Image = &tmx.Image{Source: "a.png"}
	atlases := atlasMap{"a.png": {ID: 3, Width: 48, Height: 32}}
	r := tilemap.NewResolver([]*tmx.Tileset{ts}, atlases, tilemap.Options{})

	res, ok := r.Resolve(6)
	require.True(t, ok)
	require.Equal(t, tilemap.AtlasID(3), res.Atlas)
	require.Equal(t, image.Rect(32, 16, 48, 32), res.Src)

	_, ok = r.Resolve(7)
	require.False(t, ok, "3x2 atlas holds six tiles")
}

func TestResolveMarginAndSpacing(t *testing.T) {
	ts := &tmx.Tileset{
		FirstGID:   17,
		TileWidth:  16,
		TileHeight: 32,
		Spacing:    2,
		Margin:     1,
		TileCount:  6,
		Image:      &tmx.Image{Source: "props.png", Width: 56, Height: 68},
	}
	r := tilemap.NewResolver([]*tmx.Tileset{ts}, nil, tilemap.Options{})

	for gid, want := range map[tmx.GID]image.Point{
		17: {1, 1},
		18: {19, 1},
		19: {37, 1},
		22: {37, 35},
	} {
		res, ok := r.Resolve(gid)
		require.True(t, ok, "gid %d", gid)
		require.Equal(t, image.Rectangle{Min: want, Max: want.Add(image.Pt(16, 32))}, res.Src, "gid %d", gid)
	}
}

func TestResolveCollidableOverride(t *testing.T) {
	ts := tileset(1, 4, 2)
	ts.Properties = tmx.Properties{{Name: "solid", Value: "true"}}
	ts.Tiles = map[int]*tmx.TileDef{
		1: {ID: 1, Properties: tmx.Properties{{Name: "solid", Value: "false"}}},
		2: {ID: 2, Properties: tmx.Properties{{Name: "collidable", Value: "false"}}},
	}
	r := tilemap.NewResolver([]*tmx.Tileset{ts}, nil, tilemap.Options{CollidableProperty: "solid"})

	for gid, want := range map[tmx.GID]bool{1: true, 2: false, 3: true, 4: true} {
		res, ok := r.Resolve(gid)
		require.True(t, ok)
		require.Equal(t, want, res.Collidable, "gid %d", gid)
	}
}

func TestResolveOverlappingRangesLaterWins(t *testing.T) {
	a := tileset(1, 10, 5)
	b := tileset(5, 10, 5)
	r := tilemap.NewResolver([]*tmx.Tileset{a, b}, nil, tilemap.Options{})

	owner, ok := r.Owner(4)
	require.True(t, ok)
	require.Same(t, a, owner)
	owner, ok = r.Owner(5)
	require.True(t, ok)
	require.Same(t, b, owner)
}

func TestResolveSparseHighRanges(t *testing.T) {
	low := tileset(1, 4, 2)
	high := tileset(500_000_000, 1, 1)
	wide := tileset(600_000_000, 2_000_000_000, 1)
	r := tilemap.NewResolver([]*tmx.Tileset{low, high, wide}, nil, tilemap.Options{})

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	tilemap.NewResolver([]*tmx.Tileset{high, wide}, nil, tilemap.Options{})
	runtime.ReadMemStats(&after)
	require.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20), "resolver size must not follow GID values")

	res, ok := r.Resolve(500_000_000)
	require.True(t, ok)
	require.Same(t, high, res.Tileset)
	require.Equal(t, 0, res.LocalID)

	res, ok = r.Resolve(2_599_999_999)
	require.True(t, ok)
	require.Same(t, wide, res.Tileset)
	require.Equal(t, 1_999_999_999, res.LocalID)

	res, ok = r.Resolve(3)
	require.True(t, ok)
	require.Same(t, low, res.Tileset)

	for _, gid := range []tmx.GID{5, 499_999_999, 500_000_001, 2_600_000_000} {
		_, ok := r.Resolve(gid)
		require.False(t, ok, "gid %d", gid)
	}
}

func TestResolveImageCollectionTile(t *testing.T) {
	ts := tileset(1, 2, 0)
	ts.BaseDir = "sets"
	ts.Tiles = map[int]*tmx.TileDef{
		1: {ID: 1, Image: &tmx.Image{Source: "tree.png", Width: 24, Height: 40}},
	}
	atlases := atlasMap{"sets/tree.png": {ID: 7, Width: 24, Height: 40}}
	r := tilemap.NewResolver([]*tmx.Tileset{ts}, atlases, tilemap.Options{})

	res, ok := r.Resolve(2)
	require.True(t, ok)
	require.Equal(t, tilemap.AtlasID(7), res.Atlas)
	require.Equal(t, image.Rect(0, 0, 24, 40), res.Src)
}
