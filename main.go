package main

import (
	"flag"
	"image"
	"log"
	"os"

	"github.com/automoto/doomerang-tmx/assets"
	"github.com/automoto/doomerang-tmx/config"
	"github.com/automoto/doomerang-tmx/fonts"
	"github.com/automoto/doomerang-tmx/scenes"
	"github.com/automoto/doomerang-tmx/shared/collision"
	"github.com/automoto/doomerang-tmx/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func NewGame(loader *assets.LevelLoader, level, watchDir string, pick bool) *Game {
	if err := fonts.LoadDefaults(); err != nil {
		log.Printf("Warning: Could not load fonts: %v", err)
	}

	g := &Game{
		bounds: image.Rectangle{},
	}
	if pick {
		g.scene = scenes.NewLevelSelectScene(g, loader, level, watchDir)
	} else {
		g.scene = scenes.NewViewerScene(g, loader, level, watchDir)
	}
	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	var (
		dir     = flag.String("dir", "", "load levels from this directory instead of the embedded ones")
		level   = flag.String("level", "", "level to open (file stem)")
		cfgPath = flag.String("config", "", "YAML file overriding the default configuration")
		debug   = flag.Bool("debug", false, "start with the debug overlay")
		backend = flag.String("backend", "", "physics backend: tiles or resolv")
		mode    = flag.String("mode", "", "collision mode: stop, slide or push")
		pick    = flag.Bool("select", false, "start at the level list")
	)
	flag.Parse()

	if *cfgPath != "" {
		if err := config.LoadFile(*cfgPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *debug {
		config.Debug.Overlay = true
	}
	if *backend != "" {
		if *backend != config.BackendTiles && *backend != config.BackendResolv {
			log.Fatalf("Unknown backend %q", *backend)
		}
		config.Body.Backend = *backend
	}
	if *mode != "" {
		if _, err := collision.ParseMode(*mode); err != nil {
			log.Fatalf("Bad -mode: %v", err)
		}
		config.Body.Mode = *mode
	}
	// Initialize persistence and restore what the last run left off with
	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	if saved := systems.LoadViewerState(); saved != nil && *dir == "" {
		if *level == "" {
			*level = saved.Level
		}
		if *mode == "" && saved.Mode != "" {
			config.Body.Mode = saved.Mode
		}
		if saved.Zoom >= config.Camera.MinZoom && saved.Zoom <= config.Camera.MaxZoom {
			config.Camera.StartZoom = saved.Zoom
		}
		config.Debug.Overlay = config.Debug.Overlay || saved.Debug
	}
	if *level == "" {
		*level = config.TileMap.DefaultLevel
	}

	loader := assets.NewLevelLoader()
	if *dir != "" {
		loader = &assets.LevelLoader{FS: os.DirFS(*dir), Dir: "."}
	} else if config.TileMap.LevelsDir != assets.LevelsDir {
		log.Printf("Warning: levels_dir %q applies with -dir only", config.TileMap.LevelsDir)
	}

	ebiten.SetWindowSize(config.C.Width*2, config.C.Height*2)
	ebiten.SetWindowTitle(config.C.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TicksPerSecond)

	game := NewGame(loader, *level, *dir, *pick)
	defer func() {
		if s, ok := game.scene.(interface{ Close() }); ok {
			s.Close()
		}
	}()
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
