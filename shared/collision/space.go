package collision

import (
	"log"

	"github.com/solarlune/resolv"

	"github.com/automoto/doomerang-tmx/shared/tilemap"
)

// TagSolid tags resolv objects built from collidable tiles.
const TagSolid = "solid"

// Solid is a horizontal run of collidable tiles merged into one box.
type Solid struct {
	Rect
	// First is the leftmost tile of the run.
	First tilemap.Tile
	Count int
}

// Solids merges the collidable tiles of g into horizontal runs. Tiles for
// which single returns true are never merged with their neighbours. single
// may be nil.
func Solids(g *tilemap.Grid, single func(tilemap.Tile) bool) []Solid {
	var out []Solid
	for y := 0; y < g.Height; y++ {
		var run *Solid
		for x := 0; x < g.Width; x++ {
			t := g.TileAt(x, y)
			if t.IsEmpty() || !t.Collidable {
				run = nil
				continue
			}
			alone := single != nil && single(t)
			if run != nil && !alone {
				run.W += float64(g.TileWidth)
				run.Count++
				continue
			}
			px, py, w, h := g.CellRect(x, y)
			out = append(out, Solid{Rect: Rect{X: px, Y: py, W: w, H: h}, First: t, Count: 1})
			run = &out[len(out)-1]
			if alone {
				run = nil
			}
		}
	}
	return out
}

// BuildSpace exports the collidable tiles of g into a resolv space, one
// object per solid run tagged TagSolid plus any extra tags returned by tags.
// tags may be nil.
func BuildSpace(g *tilemap.Grid, solids []Solid, tags func(Solid) []string) *resolv.Space {
	if g.OriginX < 0 || g.OriginY < 0 {
		log.Printf("Warning: layer %q starts at tile (%d,%d); solids left of or above 0 are not added",
			g.Name, g.OriginX, g.OriginY)
	}
	w := max(g.OriginX+g.Width, 1) * g.TileWidth
	h := max(g.OriginY+g.Height, 1) * g.TileHeight
	space := resolv.NewSpace(w, h, g.TileWidth, g.TileHeight)

	for _, s := range solids {
		if s.X < 0 || s.Y < 0 {
			continue
		}
		objTags := []string{TagSolid}
		if tags != nil {
			objTags = append(objTags, tags(s)...)
		}
		obj := resolv.NewObject(s.X, s.Y, s.W, s.H, objTags...)
		obj.SetShape(resolv.NewRectangle(0, 0, s.W, s.H))
		space.Add(obj)
	}
	return space
}
