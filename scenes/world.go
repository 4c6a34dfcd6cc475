package scenes

import (
	"image/color"
	"log"
	"sync"

	"github.com/automoto/doomerang-tmx/archetypes"
	"github.com/automoto/doomerang-tmx/assets"
	"github.com/automoto/doomerang-tmx/components"
	cfg "github.com/automoto/doomerang-tmx/config"
	"github.com/automoto/doomerang-tmx/systems"
	"github.com/automoto/doomerang-tmx/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ViewerScene shows one level at a time with a body moving through it.
type ViewerScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	loader       *assets.LevelLoader
	level        string
	watchDir     string
	once         sync.Once
}

// NewViewerScene creates a viewer over loader starting at the named level.
// When watchDir is set, changes to level files there reload the level.
func NewViewerScene(sc SceneChanger, loader *assets.LevelLoader, level, watchDir string) *ViewerScene {
	return &ViewerScene{sceneChanger: sc, loader: loader, level: level, watchDir: watchDir}
}

func (vs *ViewerScene) Update() {
	vs.once.Do(vs.configure)
	vs.ecs.Update()

	if vs.levelSelectRequested() {
		current := vs.level
		if e, ok := components.Level.First(vs.ecs.World); ok {
			current = components.Level.Get(e).CurrentLevel.Name
		}
		vs.Close()
		vs.sceneChanger.ChangeScene(NewLevelSelectScene(vs.sceneChanger, vs.loader, current, vs.watchDir))
	}
}

func (vs *ViewerScene) levelSelectRequested() bool {
	e, ok := components.Input.First(vs.ecs.World)
	return ok && components.Input.Get(e).JustPressed(cfg.ActionLevelSelect)
}

func (vs *ViewerScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if vs.ecs == nil {
		return
	}
	vs.ecs.Draw(screen)
}

// Close stops the hot reload watcher and frees the level's images.
func (vs *ViewerScene) Close() {
	if vs.ecs == nil {
		return
	}
	if e, ok := components.HotReload.First(vs.ecs.World); ok {
		if w := components.HotReload.Get(e).Watcher; w != nil {
			_ = w.Close()
		}
	}
	if e, ok := components.Level.First(vs.ecs.World); ok {
		components.Level.Get(e).CurrentLevel.Release()
	}
}

func (vs *ViewerScene) configure() {
	ecs := ecs.NewECS(donburi.NewWorld())

	ecs.AddSystem(systems.UpdateInput)
	ecs.AddSystem(systems.UpdateSettings)
	ecs.AddSystem(systems.UpdateLevel)
	ecs.AddSystem(systems.UpdateBody)
	ecs.AddSystem(systems.UpdateCamera)
	ecs.AddSystem(systems.UpdateMessage)
	ecs.AddSystem(systems.UpdatePersistence)

	ecs.AddRenderer(cfg.Default, systems.DrawLevel)
	ecs.AddRenderer(cfg.Default, systems.DrawDebug)
	ecs.AddRenderer(cfg.Default, systems.DrawHUD)

	vs.ecs = ecs

	// Create the level entity and load level data FIRST.
	level, err := factory.CreateLevel(vs.ecs, vs.loader, vs.level)
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}
	levelData := components.Level.Get(level)
	systems.ShowMessage(vs.ecs, levelData.CurrentLevel.Name)

	body := factory.CreateBody(vs.ecs, levelData)
	b := components.Body.Get(body)
	factory.CreateCamera(vs.ecs, b.Position.X+b.Size.X/2, b.Position.Y+b.Size.Y/2)

	if cfg.Debug.HotReload && vs.watchDir != "" {
		w, err := assets.NewWatcher(vs.watchDir)
		if err != nil {
			log.Printf("Warning: hot reload disabled: %v", err)
			return
		}
		e := archetypes.HotReload.Spawn(vs.ecs)
		components.HotReload.Set(e, &components.HotReloadData{Watcher: w})
	}
}
