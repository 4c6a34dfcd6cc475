package tilemap_test

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/automoto/doomerang-tmx/shared/tilemap"
	"github.com/automoto/doomerang-tmx/shared/tmx"
)

func tmxGID(n int) tmx.GID { return tmx.GID(n) }

type drawCall struct {
	atlas tilemap.AtlasID
	n     int
	opts  tilemap.DrawOptions
}

type recorder struct{ calls []drawCall }

func (r *recorder) DrawTriangles(atlas tilemap.AtlasID, vs []tilemap.Vertex, opts tilemap.DrawOptions) {
	r.calls = append(r.calls, drawCall{atlas: atlas, n: len(vs), opts: opts})
}

func TestBuildVertexArrayBatchesPerAtlas(t *testing.T) {
	g := tilemap.NewGrid("g", 3, 1, 16, 16)
	for x, atlas := range []tilemap.AtlasID{4, 2, 4} {
		tile := solid(x + 1)
		tile.Atlas = atlas
		g.SetTile(x, 0, tile)
	}
	g.BuildVertexArray(16, 16)

	b := g.Batches()
	require.Len(t, b, 2)
	require.Equal(t, tilemap.AtlasID(4), b[0].Atlas)
	require.Equal(t, 2, b[0].Quads())
	require.Equal(t, tilemap.AtlasID(2), b[1].Atlas)
	require.Len(t, b[1].Vertices, 6)

	r := &recorder{}
	g.Draw(r, tilemap.DrawOptions{OffsetX: 3})
	require.Equal(t, []drawCall{
		{atlas: 4, n: 12, opts: tilemap.DrawOptions{OffsetX: 3}},
		{atlas: 2, n: 6, opts: tilemap.DrawOptions{OffsetX: 3}},
	}, r.calls)
}

func TestBuildVertexArraySkipsUndrawable(t *testing.T) {
	g := tilemap.NewGrid("g", 2, 1, 16, 16)
	tile := solid(1)
	tile.Atlas = tilemap.NoAtlas
	g.SetTile(0, 0, tile)
	g.BuildVertexArray(16, 16)
	require.Empty(t, g.Batches())

	r := &recorder{}
	g.Draw(r, tilemap.DrawOptions{})
	require.Empty(t, r.calls)
}

func TestDrawHiddenGrid(t *testing.T) {
	g := tilemap.NewGrid("g", 1, 1, 16, 16)
	g.SetTile(0, 0, solid(1))
	g.BuildVertexArray(16, 16)
	g.Visible = false

	r := &recorder{}
	g.Draw(r, tilemap.DrawOptions{})
	require.Empty(t, r.calls)
}

func TestBuildVertexArrayIsExplicit(t *testing.T) {
	g := tilemap.NewGrid("g", 2, 1, 16, 16)
	g.SetTile(0, 0, solid(1))
	g.BuildVertexArray(16, 16)

	g.SetTile(1, 0, solid(1))
	g.Opacity = 0.5
	require.Equal(t, 1, g.Batches()[0].Quads(), "batches only change on rebuild")

	g.BuildVertexArray(16, 16)
	require.Equal(t, 2, g.Batches()[0].Quads())
	for _, v := range g.Batches()[0].Vertices {
		require.Equal(t, float32(0.5), v.ColorA)
	}
}

// corners returns the four distinct quad corners as top-left, top-right,
// bottom-left, bottom-right.
func corners(vs []tilemap.Vertex) [4]tilemap.Vertex {
	return [4]tilemap.Vertex{vs[0], vs[1], vs[2], vs[4]}
}

func TestQuadGeometry(t *testing.T) {
	g := tilemap.NewGrid("g", 2, 2, 16, 16)
	g.SetTile(1, 1, tilemap.Tile{GID: 6, Atlas: 0, Src: image.Rect(16, 16, 32, 32)})
	g.BuildVertexArray(16, 16)

	want := [4]tilemap.Vertex{
		{DstX: 16, DstY: 16, SrcX: 16, SrcY: 16, ColorA: 1},
		{DstX: 32, DstY: 16, SrcX: 32, SrcY: 16, ColorA: 1},
		{DstX: 16, DstY: 32, SrcX: 16, SrcY: 32, ColorA: 1},
		{DstX: 32, DstY: 32, SrcX: 32, SrcY: 32, ColorA: 1},
	}
	if diff := cmp.Diff(want, corners(g.Batches()[0].Vertices)); diff != "" {
		t.Errorf("quad mismatch (-want +got):\n%s", diff)
	}
}

func TestTallTileIsBottomAligned(t *testing.T) {
	g := tilemap.NewGrid("g", 1, 1, 16, 16)
	g.OriginX, g.OriginY = 2, 3
	g.SetTile(0, 0, tilemap.Tile{GID: 1, Atlas: 0, Src: image.Rect(0, 0, 16, 32), Offset: image.Pt(0, 4)})
	g.BuildVertexArray(16, 16)

	c := corners(g.Batches()[0].Vertices)
	require.Equal(t, float32(32), c[0].DstX)
	require.Equal(t, float32(64+4-32), c[0].DstY)
	require.Equal(t, float32(64+4), c[3].DstY)
}

func TestFlippedUVs(t *testing.T) {
	src := image.Rect(0, 0, 16, 16)
	type uv struct{ U, V float32 }

	for _, tc := range []struct {
		name  string
		flags tmx.Flags
		want  [4]uv
	}{
		{"none", 0, [4]uv{{0, 0}, {16, 0}, {0, 16}, {16, 16}}},
		{"horizontal", tmx.FlippedHorizontally, [4]uv{{16, 0}, {0, 0}, {16, 16}, {0, 16}}},
		{"vertical", tmx.FlippedVertically, [4]uv{{0, 16}, {16, 16}, {0, 0}, {16, 0}}},
		{"diagonal", tmx.FlippedDiagonally, [4]uv{{0, 0}, {0, 16}, {16, 0}, {16, 16}}},
		// rotated 90° clockwise in Tiled
		{"diagonal+horizontal", tmx.FlippedDiagonally | tmx.FlippedHorizontally, [4]uv{{0, 16}, {0, 0}, {16, 16}, {16, 0}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g := tilemap.NewGrid("g", 1, 1, 16, 16)
			g.SetTile(0, 0, tilemap.Tile{GID: 1, Flags: tc.flags, Atlas: 0, Src: src})
			g.BuildVertexArray(16, 16)

			var got [4]uv
			for i, v := range corners(g.Batches()[0].Vertices) {
				got[i] = uv{v.SrcX, v.SrcY}
			}
			require.Equal(t, tc.want, got)
		})
	}
}
