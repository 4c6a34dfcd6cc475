package systems

import (
	"log"

	"github.com/automoto/doomerang-tmx/components"
	cfg "github.com/automoto/doomerang-tmx/config"
	"github.com/automoto/doomerang-tmx/shared/collision"
	"github.com/automoto/doomerang-tmx/systems/factory"
	"github.com/automoto/doomerang-tmx/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// levelRenderer is reused across frames to keep its vertex buffers.
var levelRenderer = &tileRenderer{}

func DrawLevel(ecs *ecs.ECS, screen *ebiten.Image) {
	levelRenderer.drawCalls, levelRenderer.quads = 0, 0

	cameraEntry, ok := components.Camera.First(ecs.World)
	if !ok {
		return // No camera yet
	}
	camera := components.Camera.Get(cameraEntry)

	levelEntry, ok := components.Level.First(ecs.World)
	if !ok {
		return
	}
	levelData := components.Level.Get(levelEntry)
	if levelData.CurrentLevel == nil || levelData.CurrentLevel.Atlas == nil {
		return
	}

	// Safety check for zero zoom
	zoom := camera.Zoom
	if zoom == 0 {
		zoom = 1.0
	}
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	v := view{
		camX: camera.Position.X,
		camY: camera.Position.Y,
		zoom: zoom,
		w:    float64(width),
		h:    float64(height),
	}

	levelRenderer.screen = screen
	levelRenderer.atlases = levelData.CurrentLevel.Atlas
	levelRenderer.geoM = v.geoM()
	drawLayers(levelRenderer, levelData.CurrentLevel.Map.Layers, rootTransform, v)
}

var rootTransform = layerTransform{opacity: 1, parallaxX: 1, parallaxY: 1}

// UpdateLevel switches to the next level or reloads the current one, on input
// or when the hot reload watcher reports a changed file.
func UpdateLevel(ecs *ecs.ECS) {
	levelEntry, ok := components.Level.First(ecs.World)
	if !ok {
		return
	}
	levelData := components.Level.Get(levelEntry)
	input := getOrCreateInput(ecs)

	index := -1
	switch {
	case input.JustPressed(cfg.ActionNextLevel):
		index = (levelData.LevelIndex + 1) % len(levelData.Names)
	case input.JustPressed(cfg.ActionReload), levelFilesChanged(ecs):
		index = levelData.LevelIndex
	}
	if index < 0 {
		return
	}

	switched := index != levelData.LevelIndex
	if err := factory.LoadLevel(levelData, index); err != nil {
		log.Printf("Warning: could not load level %s: %v", levelData.Names[index], err)
		return
	}
	log.Printf("Loaded level %s", levelData.CurrentLevel.Name)
	ShowMessage(ecs, levelData.CurrentLevel.Name)

	tags.Body.Each(ecs.World, func(e *donburi.Entry) {
		body := components.Body.Get(e)
		if switched {
			body.Position = factory.SpawnPosition(levelData.CurrentLevel, body.Size)
		}
		body.Touching = nil
		factory.AttachBodyObject(e, levelData.Space)
	})
}

// levelFilesChanged drains the hot reload watcher.
func levelFilesChanged(ecs *ecs.ECS) bool {
	entry, ok := components.HotReload.First(ecs.World)
	if !ok {
		return false
	}
	w := components.HotReload.Get(entry).Watcher
	if w == nil {
		return false
	}
	select {
	case err := <-w.Errors:
		log.Printf("Warning: level watcher: %v", err)
	default:
	}
	changed := w.Drain()
	for _, name := range changed {
		log.Printf("Level file changed: %s", name)
	}
	return len(changed) > 0
}

// bodyBounds is the box of a body in map pixels.
func bodyBounds(b *components.BodyData) collision.Rect {
	return collision.At(b.Position, b.Size)
}
