package assets

import (
	"fmt"
	"io/fs"
	"path"

	"github.com/automoto/doomerang-tmx/config"
	"github.com/automoto/doomerang-tmx/shared/leveldata"
	"github.com/automoto/doomerang-tmx/shared/tilemap"
	"github.com/automoto/doomerang-tmx/shared/tmx"
)

// Level is a loaded, render-ready level.
type Level struct {
	Name   string
	Path   string
	Map    *tilemap.Map
	Atlas  *AtlasRegistry
	Spawns []leveldata.SpawnPoint
	Width  int
	Height int
}

// LevelLoader loads levels from a filesystem, the embedded one by default.
type LevelLoader struct {
	FS  fs.FS
	Dir string
	// Headless skips atlas loading; tiles resolve without draw data.
	Headless bool
}

// NewLevelLoader returns a loader over the embedded levels.
func NewLevelLoader() *LevelLoader {
	return &LevelLoader{FS: assetFS, Dir: LevelsDir}
}

// Names lists the available levels.
func (l *LevelLoader) Names() ([]string, error) {
	return LevelNames(l.FS, l.Dir)
}

// Path returns the path of the named level inside the loader's filesystem.
func (l *LevelLoader) Path(name string) string {
	return path.Join(l.Dir, name+".tmx")
}

// Load parses and builds the named level.
func (l *LevelLoader) Load(name string) (*Level, error) {
	p := l.Path(name)
	m, err := tmx.LoadMap(tmx.FSLoader(l.FS), p)
	if err != nil {
		return nil, err
	}

	lvl := &Level{Name: name, Path: p}
	var atlases tilemap.AtlasSource
	if !l.Headless {
		lvl.Atlas = NewAtlasRegistry(l.FS)
		atlases = lvl.Atlas
	}
	lvl.Map = tilemap.Build(m, atlases, tilemap.Options{
		CollidableProperty: config.TileMap.CollidableProperty,
	})
	lvl.Width, lvl.Height = lvl.Map.PixelSize()

	data := leveldata.FromMap(lvl.Map, config.TileMap.CollisionLayer)
	lvl.Spawns = data.SpawnPoints
	if _, ok := lvl.Map.TileLayer(config.TileMap.CollisionLayer); !ok {
		return lvl, fmt.Errorf("%w: level %s has no tile layer %q",
			ErrNoCollisionLayer, name, config.TileMap.CollisionLayer)
	}
	return lvl, nil
}

// Release frees the level's atlas images.
func (lvl *Level) Release() {
	if lvl != nil && lvl.Atlas != nil {
		lvl.Atlas.Release()
	}
}
