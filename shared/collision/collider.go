// Package collision answers spatial queries against tile grids and resolves
// body movement with stop, slide and push policies.
//
// Queries never fail: a missing layer or a box outside the grid simply
// collides with nothing. The grids are read without locking, so callers keep
// edits and queries on one goroutine.
package collision

import (
	"math"

	"github.com/automoto/doomerang-tmx/shared/tilemap"
)

// Epsilon is taken off the bottom-right corner of a box so that a box that
// exactly touches a tile edge does not reach into the next tile.
const Epsilon = 0.001

// Vec is a position or size in map pixels.
type Vec struct {
	X, Y float64
}

// Rect is an axis-aligned box in map pixels.
type Rect struct {
	X, Y, W, H float64
}

// At returns the box of the given size at pos.
func At(pos, size Vec) Rect {
	return Rect{X: pos.X, Y: pos.Y, W: size.X, H: size.Y}
}

// LayerSource finds tile grids by layer name. *tilemap.Map implements it.
type LayerSource interface {
	TileLayer(name string) (*tilemap.Grid, bool)
}

// Collider runs queries against the layers of a LayerSource. Layer is the
// layer ResolveCollision tests against.
type Collider struct {
	Layers LayerSource
	Layer  string
}

// NewCollider returns a collider resolving movement against layer.
func NewCollider(layers LayerSource, layer string) *Collider {
	return &Collider{Layers: layers, Layer: layer}
}

func (c *Collider) grid(layer string) *tilemap.Grid {
	if c == nil || c.Layers == nil {
		return nil
	}
	g, ok := c.Layers.TileLayer(layer)
	if !ok {
		return nil
	}
	return g
}

// CheckCollision reports whether bounds overlaps a collidable tile of the
// named layer. A missing layer never collides.
func (c *Collider) CheckCollision(layer string, bounds Rect) bool {
	return Check(c.grid(layer), bounds)
}

// CollidingTiles returns every collidable tile of the named layer that
// bounds overlaps, in row-major order.
func (c *Collider) CollidingTiles(layer string, bounds Rect) []tilemap.Tile {
	return Colliding(c.grid(layer), bounds)
}

// Check reports whether bounds overlaps a collidable tile of g, stopping at
// the first one.
func Check(g *tilemap.Grid, bounds Rect) bool {
	hit := false
	scan(g, bounds, func(*tilemap.Tile) bool {
		hit = true
		return false
	})
	return hit
}

// Colliding returns every collidable tile of g that bounds overlaps.
func Colliding(g *tilemap.Grid, bounds Rect) []tilemap.Tile {
	var out []tilemap.Tile
	scan(g, bounds, func(t *tilemap.Tile) bool {
		out = append(out, *t)
		return true
	})
	return out
}

// scan calls fn for every collidable tile overlapping bounds until fn
// returns false.
func scan(g *tilemap.Grid, bounds Rect, fn func(*tilemap.Tile) bool) {
	if g == nil || g.Width == 0 || g.Height == 0 {
		return
	}
	right, bottom := bounds.X+bounds.W-Epsilon, bounds.Y+bounds.H-Epsilon
	// NaN edges, including -Inf plus +Inf, describe no area
	if math.IsNaN(right) || math.IsNaN(bottom) || math.IsNaN(bounds.X) || math.IsNaN(bounds.Y) {
		return
	}
	x0, y0 := g.Cell(bounds.X, bounds.Y)
	x1, y1 := g.Cell(right, bottom)

	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, g.Width-1), min(y1, g.Height-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			t := g.TileRef(x, y)
			if t.IsEmpty() || !t.Collidable {
				continue
			}
			if !fn(t) {
				return
			}
		}
	}
}
