package components

import (
	"github.com/automoto/doomerang-tmx/assets"
	"github.com/automoto/doomerang-tmx/shared/collision"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

type LevelData struct {
	Loader       *assets.LevelLoader
	Names        []string
	LevelIndex   int
	CurrentLevel *assets.Level
	Collider     *collision.Collider
	// Space mirrors the collision layer for the resolv backend.
	Space *resolv.Space
}

var Level = donburi.NewComponentType[LevelData]()
