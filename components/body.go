package components

import (
	"github.com/automoto/doomerang-tmx/shared/collision"
	"github.com/automoto/doomerang-tmx/shared/tilemap"
	"github.com/yohamta/donburi"
)

// BodyData is the box moved through the level with the collision policies.
type BodyData struct {
	Position collision.Vec
	Size     collision.Vec
	Speed    float64
	Mode     collision.Mode
	// Blocked is set when the last move did not reach its target.
	Blocked bool
	// Touching holds the tiles the last blocked target overlapped.
	Touching []tilemap.Tile
}

var Body = donburi.NewComponentType[BodyData]()
