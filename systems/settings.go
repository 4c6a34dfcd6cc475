package systems

import (
	"github.com/automoto/doomerang-tmx/components"
	cfg "github.com/automoto/doomerang-tmx/config"
	"github.com/yohamta/donburi/ecs"
)

// GetOrCreateSettings returns the singleton settings, seeded from config.Debug.
func GetOrCreateSettings(ecs *ecs.ECS) *components.SettingsData {
	entry, ok := components.Settings.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.Settings))
		components.Settings.Set(entry, &components.SettingsData{Debug: cfg.Debug.Overlay})
	}
	return components.Settings.Get(entry)
}

// UpdateSettings toggles the debug overlay.
func UpdateSettings(ecs *ecs.ECS) {
	input := getOrCreateInput(ecs)
	settings := GetOrCreateSettings(ecs)
	if input.JustPressed(cfg.ActionToggleDebug) {
		settings.Debug = !settings.Debug
	}
}
