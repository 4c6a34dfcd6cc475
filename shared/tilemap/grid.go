package tilemap

import "math"

// Grid is a dense, row-major layer of tiles. It does not track its own
// staleness: call BuildVertexArray after mutating tiles or opacity.
//
// A Grid is not safe for concurrent use. Callers serialize edits against
// collision queries and batch rebuilds.
type Grid struct {
	Name          string
	Width, Height int
	// OriginX and OriginY are the tile coordinates of cell (0, 0). They are
	// non-zero for infinite maps whose chunks start left of or above 0.
	OriginX, OriginY int
	TileWidth        int
	TileHeight       int
	Opacity          float64
	Visible          bool

	tiles   []Tile
	batches []Batch
}

// NewGrid returns an empty, visible, opaque grid.
func NewGrid(name string, width, height, tileWidth, tileHeight int) *Grid {
	width, height = max(width, 0), max(height, 0)
	g := &Grid{
		Name:       name,
		Width:      width,
		Height:     height,
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
		Opacity:    1,
		Visible:    true,
		tiles:      make([]Tile, width*height),
	}
	g.Clear()
	return g
}

func (g *Grid) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 0, false
	}
	return y*g.Width + x, true
}

// TileAt returns a copy of the tile at (x, y), or an empty tile when out of
// range.
func (g *Grid) TileAt(x, y int) Tile {
	i, ok := g.index(x, y)
	if !ok {
		return emptyTile(x, y)
	}
	return g.tiles[i]
}

// TileRef returns the tile at (x, y) for in-place edits, or nil when out of
// range.
func (g *Grid) TileRef(x, y int) *Tile {
	i, ok := g.index(x, y)
	if !ok {
		return nil
	}
	return &g.tiles[i]
}

// SetTile stores t at (x, y). Out of range writes are ignored. An empty GID
// clears the cell.
func (g *Grid) SetTile(x, y int, t Tile) {
	i, ok := g.index(x, y)
	if !ok {
		return
	}
	if t.IsEmpty() {
		t = emptyTile(x, y)
	}
	t.X, t.Y = x, y
	g.tiles[i] = t
}

// Tiles returns the backing cells in row-major order. The slice is only valid
// until the next mutation.
func (g *Grid) Tiles() []Tile { return g.tiles }

// Fill sets every cell to t.
func (g *Grid) Fill(t Tile) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			g.SetTile(x, y, t)
		}
	}
}

// Clear empties every cell.
func (g *Grid) Clear() { g.Fill(Tile{}) }

// Count returns the number of non-empty cells.
func (g *Grid) Count() int {
	n := 0
	for i := range g.tiles {
		if !g.tiles[i].IsEmpty() {
			n++
		}
	}
	return n
}

// Cell converts a pixel position in map space to grid indices.
func (g *Grid) Cell(px, py float64) (x, y int) {
	return floorDiv(px, g.TileWidth) - g.OriginX, floorDiv(py, g.TileHeight) - g.OriginY
}

// CellRect returns the pixel rectangle of cell (x, y) in map space.
func (g *Grid) CellRect(x, y int) (px, py, w, h float64) {
	w, h = float64(g.TileWidth), float64(g.TileHeight)
	return float64(g.OriginX+x) * w, float64(g.OriginY+y) * h, w, h
}

// cellLimit bounds cell indices so that infinite positions convert to ints
// far outside any grid without overflowing when the origin is subtracted.
const cellLimit = 1 << 30

// floorDiv divides v by size rounding down. Infinite results clamp to
// ±cellLimit; NaN maps to 0.
func floorDiv(v float64, size int) int {
	if size <= 0 {
		return 0
	}
	q := math.Floor(v / float64(size))
	switch {
	case math.IsNaN(q):
		return 0
	case q > cellLimit:
		return cellLimit
	case q < -cellLimit:
		return -cellLimit
	}
	return int(q)
}
