package scenes

import (
	"image/color"
	"log"
	"sync"

	"github.com/automoto/doomerang-tmx/assets"
	"github.com/automoto/doomerang-tmx/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

// LevelSelectScene lets the user pick the level the viewer opens.
type LevelSelectScene struct {
	sceneChanger SceneChanger
	loader       *assets.LevelLoader
	watchDir     string
	// previous is reopened on Back.
	previous string
	selectUI *ui.LevelSelectUI
	once     sync.Once

	chosen string
}

func NewLevelSelectScene(sc SceneChanger, loader *assets.LevelLoader, previous, watchDir string) *LevelSelectScene {
	return &LevelSelectScene{sceneChanger: sc, loader: loader, previous: previous, watchDir: watchDir}
}

func (s *LevelSelectScene) Update() {
	s.once.Do(s.configure)
	s.selectUI.Update()

	if s.chosen != "" {
		s.sceneChanger.ChangeScene(NewViewerScene(s.sceneChanger, s.loader, s.chosen, s.watchDir))
	}
}

func (s *LevelSelectScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 20, 30, 255})

	if s.selectUI == nil {
		return
	}
	s.selectUI.UI.Draw(screen)
}

func (s *LevelSelectScene) configure() {
	names, err := s.loader.Names()
	if err != nil {
		log.Printf("Warning: %v", err)
	}
	s.selectUI = ui.NewLevelSelectUI(names,
		func(level string) { s.chosen = level },
		func() {
			if s.previous != "" {
				s.chosen = s.previous
			}
		},
	)
	if err != nil {
		s.selectUI.SetStatus(err.Error())
	}
}
