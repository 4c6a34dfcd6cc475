package components

import (
	"github.com/automoto/doomerang-tmx/assets"
	"github.com/yohamta/donburi"
)

// HotReloadData holds the watcher reporting changed level files.
type HotReloadData struct {
	Watcher *assets.Watcher
}

var HotReload = donburi.NewComponentType[HotReloadData]()
