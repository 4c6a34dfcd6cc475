package tilemap_test

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/automoto/doomerang-tmx/shared/tilemap"
)

func solid(gid int) tilemap.Tile {
	return tilemap.Tile{
		GID:        tmxGID(gid),
		Atlas:      0,
		Src:        image.Rect(0, 0, 16, 16),
		Collidable: true,
	}
}

func TestGridBoundsAreSilent(t *testing.T) {
	g := tilemap.NewGrid("g", 2, 2, 16, 16)

	require.Nil(t, g.TileRef(-1, 0))
	require.Nil(t, g.TileRef(2, 0))
	require.True(t, g.TileAt(5, 5).IsEmpty())
	require.Equal(t, tilemap.NoAtlas, g.TileAt(5, 5).Atlas)

	g.SetTile(2, 2, solid(1))
	g.SetTile(-1, 0, solid(1))
	require.Zero(t, g.Count())
}

func TestGridSetTile(t *testing.T) {
	g := tilemap.NewGrid("g", 3, 2, 16, 16)
	g.SetTile(2, 1, solid(4))

	got := g.TileAt(2, 1)
	require.Equal(t, tmxGID(4), got.GID)
	require.Equal(t, 2, got.X)
	require.Equal(t, 1, got.Y)
	require.Equal(t, got, g.Tiles()[5])

	g.TileRef(2, 1).Collidable = false
	require.False(t, g.TileAt(2, 1).Collidable)

	// an empty GID is never collidable
	g.SetTile(2, 1, tilemap.Tile{Collidable: true})
	require.False(t, g.TileAt(2, 1).Collidable)
	require.True(t, g.TileAt(2, 1).IsEmpty())
}

func TestGridFillAndClear(t *testing.T) {
	g := tilemap.NewGrid("g", 4, 3, 16, 16)
	g.Fill(solid(2))
	require.Equal(t, 12, g.Count())
	for i, tile := range g.Tiles() {
		require.Equal(t, i%4, tile.X)
		require.Equal(t, i/4, tile.Y)
	}

	g.Clear()
	require.Zero(t, g.Count())
}

func TestGridCell(t *testing.T) {
	g := tilemap.NewGrid("g", 4, 3, 16, 16)
	g.OriginX, g.OriginY = -2, -1

	x, y := g.Cell(0, 0)
	require.Equal(t, [2]int{2, 1}, [2]int{x, y})
	x, y = g.Cell(-0.5, -16)
	require.Equal(t, [2]int{1, 0}, [2]int{x, y})

	px, py, w, h := g.CellRect(0, 0)
	require.Equal(t, [4]float64{-32, -16, 16, 16}, [4]float64{px, py, w, h})
}

func TestGridCellClampsNonFinite(t *testing.T) {
	g := tilemap.NewGrid("g", 4, 3, 16, 16)
	g.OriginX = -2

	x, y := g.Cell(math.Inf(1), math.Inf(-1))
	require.Greater(t, x, g.Width)
	require.Less(t, y, 0)

	x, y = g.Cell(math.Inf(-1), math.Inf(1))
	require.Less(t, x, 0)
	require.Greater(t, y, g.Height)
}
