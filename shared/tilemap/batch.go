package tilemap

import "github.com/automoto/doomerang-tmx/shared/tmx"

// Vertex is one corner of a tile quad. Dst is in map pixels, Src in atlas
// pixels.
type Vertex struct {
	DstX, DstY float32
	SrcX, SrcY float32
	ColorA     float32
}

// Batch holds every vertex drawn from one atlas, six per tile.
type Batch struct {
	Atlas    AtlasID
	Vertices []Vertex
}

// Quads returns the number of tiles in the batch.
func (b *Batch) Quads() int { return len(b.Vertices) / 6 }

// DrawOptions carry the transform composed by the caller, e.g. group offset
// and opacity.
type DrawOptions struct {
	OffsetX, OffsetY float64
	Scale            float64
	// Opacity multiplies the batch alpha. Zero is treated as 1.
	Opacity float64
}

// Renderer submits a batch in one call.
type Renderer interface {
	DrawTriangles(atlas AtlasID, vertices []Vertex, opts DrawOptions)
}

// Batches returns the batches of the last BuildVertexArray call, in order of
// first use of each atlas.
func (g *Grid) Batches() []Batch { return g.batches }

// BuildVertexArray rebuilds every batch from the current tiles. Tiles taller
// or wider than a cell are anchored to the cell's bottom-left corner, and
// tiles without an atlas are skipped.
func (g *Grid) BuildVertexArray(tileWidth, tileHeight int) {
	g.batches = g.batches[:0]
	byAtlas := make(map[AtlasID]int)
	alpha := float32(g.Opacity)

	for i := range g.tiles {
		t := &g.tiles[i]
		if !t.Drawable() {
			continue
		}
		bi, ok := byAtlas[t.Atlas]
		if !ok {
			bi = len(g.batches)
			byAtlas[t.Atlas] = bi
			g.batches = append(g.batches, Batch{Atlas: t.Atlas})
		}
		b := &g.batches[bi]
		b.Vertices = appendQuad(b.Vertices, t, g.OriginX+t.X, g.OriginY+t.Y, tileWidth, tileHeight, alpha)
	}
}

func appendQuad(vs []Vertex, t *Tile, cx, cy, tileWidth, tileHeight int, alpha float32) []Vertex {
	w, h := t.Src.Dx(), t.Src.Dy()
	if t.Flags.Diagonal() {
		w, h = h, w
	}
	x0 := float32(cx*tileWidth + t.Offset.X)
	y1 := float32((cy+1)*tileHeight + t.Offset.Y)
	x1 := x0 + float32(w)
	y0 := y1 - float32(h)

	// corners: top-left, top-right, bottom-left, bottom-right
	var c [4]Vertex
	for i, p := range [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		sx, sy := sourceCorner(p[0], p[1], t.Flags)
		c[i] = Vertex{
			DstX:   pick(p[0], x0, x1),
			DstY:   pick(p[1], y0, y1),
			SrcX:   pick(sx, float32(t.Src.Min.X), float32(t.Src.Max.X)),
			SrcY:   pick(sy, float32(t.Src.Min.Y), float32(t.Src.Max.Y)),
			ColorA: alpha,
		}
	}
	return append(vs, c[0], c[1], c[2], c[1], c[3], c[2])
}

// sourceCorner maps a destination corner to the atlas corner drawn there.
// Tiled applies the diagonal flip first, then horizontal, then vertical, so
// the inverse undoes them in reverse order.
func sourceCorner(x, y int, f tmx.Flags) (int, int) {
	if f.Vertical() {
		y = 1 - y
	}
	if f.Horizontal() {
		x = 1 - x
	}
	if f.Diagonal() {
		x, y = y, x
	}
	return x, y
}

func pick(i int, a, b float32) float32 {
	if i == 0 {
		return a
	}
	return b
}

// Draw submits one DrawTriangles call per batch. It does nothing when the
// grid is hidden or has no batches.
func (g *Grid) Draw(r Renderer, opts DrawOptions) {
	if !g.Visible || len(g.batches) == 0 {
		return
	}
	for i := range g.batches {
		r.DrawTriangles(g.batches[i].Atlas, g.batches[i].Vertices, opts)
	}
}
