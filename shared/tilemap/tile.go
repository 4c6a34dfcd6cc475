// Package tilemap turns decoded TMX documents into runtime tile grids that
// can be batched for rendering and queried for collisions.
package tilemap

import (
	"image"

	"github.com/automoto/doomerang-tmx/shared/tmx"
)

// AtlasID is a non-owning handle to an atlas image held by the asset layer.
type AtlasID int

// NoAtlas marks a tile or layer without a loaded atlas. Such tiles still
// take part in collision but are never drawn.
const NoAtlas AtlasID = -1

// Atlas describes a loaded atlas image.
type Atlas struct {
	ID            AtlasID
	Width, Height int
}

// AtlasSource looks up atlases by the image path a tileset or image layer
// references. The asset layer owns the images; the tile map only keeps IDs.
type AtlasSource interface {
	Atlas(path string) (Atlas, bool)
}

// Tile is one cell of a Grid. X and Y are grid indices, not pixels.
type Tile struct {
	GID   tmx.GID
	Flags tmx.Flags
	Atlas AtlasID
	// Src is the tile's rectangle inside its atlas.
	Src image.Rectangle
	// Offset is the tileset's drawing offset in pixels.
	Offset     image.Point
	Collidable bool
	X, Y       int
}

// IsEmpty reports whether the cell holds no tile.
func (t Tile) IsEmpty() bool { return t.GID == 0 }

// Drawable reports whether the tile has something to draw.
func (t Tile) Drawable() bool { return t.GID != 0 && t.Atlas != NoAtlas && !t.Src.Empty() }

func emptyTile(x, y int) Tile {
	return Tile{Atlas: NoAtlas, X: x, Y: y}
}
