package collision_test

import (
	"testing"

	"github.com/solarlune/resolv"
	"github.com/stretchr/testify/require"

	"github.com/automoto/doomerang-tmx/shared/collision"
	"github.com/automoto/doomerang-tmx/shared/tilemap"
)

func TestSolidsMergeRuns(t *testing.T) {
	g := gridOf(
		"###.#",
		".o##.",
	)
	solids := collision.Solids(g, nil)

	var got []collision.Rect
	for _, s := range solids {
		got = append(got, s.Rect)
	}
	require.Equal(t, []collision.Rect{
		{X: 0, Y: 0, W: 48, H: 16},
		{X: 64, Y: 0, W: 16, H: 16},
		{X: 32, Y: 16, W: 32, H: 16},
	}, got)
	require.Equal(t, 3, solids[0].Count)
}

func TestSolidsKeepSingles(t *testing.T) {
	g := gridOf("####")
	g.TileRef(1, 0).GID = 9

	single := func(t tilemap.Tile) bool { return t.GID == 9 }
	solids := collision.Solids(g, single)

	var widths []float64
	for _, s := range solids {
		widths = append(widths, s.W)
	}
	require.Equal(t, []float64{16, 16, 32}, widths)
}

func TestBuildSpace(t *testing.T) {
	g := gridOf(
		"#...",
		"....",
		"####",
	)
	space := collision.BuildSpace(g, collision.Solids(g, nil), func(s collision.Solid) []string {
		if s.Count > 1 {
			return []string{"floor"}
		}
		return nil
	})
	require.Len(t, space.Objects(), 2)

	probe := resolv.NewObject(36, 4, 8, 8)
	space.Add(probe)
	require.Nil(t, probe.Check(0, 0, collision.TagSolid))

	check := probe.Check(0, 30, "floor")
	require.NotNil(t, check)
	require.Len(t, check.ObjectsByTags("floor"), 1)
}
