package tags

import (
	"github.com/automoto/doomerang-tmx/shared/collision"
	"github.com/yohamta/donburi"
)

var (
	Body = donburi.NewTag().SetName("Body")
)

// Resolv tags for physics collision
const (
	ResolvSolid = collision.TagSolid
	ResolvRamp  = "ramp"
	ResolvBody  = "Body"

	// Slope type tags
	Slope45UpRight = "45_up_right"
	Slope45UpLeft  = "45_up_left"
)
