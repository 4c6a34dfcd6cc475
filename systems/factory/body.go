package factory

import (
	"log"

	"github.com/automoto/doomerang-tmx/archetypes"
	"github.com/automoto/doomerang-tmx/assets"
	"github.com/automoto/doomerang-tmx/components"
	cfg "github.com/automoto/doomerang-tmx/config"
	"github.com/automoto/doomerang-tmx/shared/collision"
	"github.com/automoto/doomerang-tmx/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateBody spawns the movable body at the level's first spawn point, or at
// the map centre when it has none.
func CreateBody(ecs *ecs.ECS, levelData *components.LevelData) *donburi.Entry {
	mode, err := collision.ParseMode(cfg.Body.Mode)
	if err != nil {
		log.Printf("Warning: %v, using %s", err, collision.Slide)
		mode = collision.Slide
	}

	size := collision.Vec{X: cfg.Body.Width, Y: cfg.Body.Height}
	body := archetypes.Body.Spawn(ecs)
	components.Body.Set(body, &components.BodyData{
		Position: SpawnPosition(levelData.CurrentLevel, size),
		Size:     size,
		Speed:    cfg.Body.Speed,
		Mode:     mode,
	})
	AttachBodyObject(body, levelData.Space)
	return body
}

// SpawnPosition returns where a body of the given size starts in lvl. Spawn
// points mark the body's bottom-left corner.
func SpawnPosition(lvl *assets.Level, size collision.Vec) collision.Vec {
	if len(lvl.Spawns) > 0 {
		sp := lvl.Spawns[0]
		return collision.Vec{X: sp.X, Y: sp.Y - size.Y}
	}
	return collision.Vec{
		X: float64(lvl.Width)/2 - size.X/2,
		Y: float64(lvl.Height)/2 - size.Y/2,
	}
}

// AttachBodyObject adds a resolv object for the body to space, replacing the
// one it had before.
func AttachBodyObject(body *donburi.Entry, space *resolv.Space) {
	b := components.Body.Get(body)
	obj := resolv.NewObject(b.Position.X, b.Position.Y, b.Size.X, b.Size.Y, tags.ResolvBody)
	obj.SetShape(resolv.NewRectangle(0, 0, b.Size.X, b.Size.Y))
	space.Add(obj)
	components.Object.Set(body, &components.ObjectData{Object: obj})
}
