package factory

import (
	"errors"
	"fmt"
	"log"

	"github.com/automoto/doomerang-tmx/archetypes"
	"github.com/automoto/doomerang-tmx/assets"
	"github.com/automoto/doomerang-tmx/components"
	cfg "github.com/automoto/doomerang-tmx/config"
	"github.com/automoto/doomerang-tmx/shared/collision"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateLevel spawns the level entity and loads the named level from loader.
// An empty name picks the first level.
func CreateLevel(ecs *ecs.ECS, loader *assets.LevelLoader, name string) (*donburi.Entry, error) {
	names, err := loader.Names()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no levels found in %s", loader.Dir)
	}

	index := 0
	for i, n := range names {
		if n == name {
			index = i
		}
	}
	if name != "" && names[index] != name {
		log.Printf("Warning: level %q not found, loading %q", name, names[index])
	}

	level := archetypes.Level.Spawn(ecs)
	levelData := &components.LevelData{
		Loader:     loader,
		Names:      names,
		LevelIndex: index,
	}
	components.Level.Set(level, levelData)

	if err := LoadLevel(levelData, index); err != nil {
		return level, err
	}
	return level, nil
}

// LoadLevel replaces the current level with the one at index, rebuilding the
// collider and the resolv space. The previous level is kept when loading
// fails.
func LoadLevel(levelData *components.LevelData, index int) error {
	lvl, err := levelData.Loader.Load(levelData.Names[index])
	if err != nil && !errors.Is(err, assets.ErrNoCollisionLayer) {
		return err
	}
	if err != nil {
		log.Printf("Warning: %v", err)
	}

	levelData.CurrentLevel.Release()
	levelData.CurrentLevel = lvl
	levelData.LevelIndex = index
	levelData.Collider = collision.NewCollider(lvl.Map, cfg.TileMap.CollisionLayer)
	levelData.Space = CreateSpace(lvl)
	return nil
}
