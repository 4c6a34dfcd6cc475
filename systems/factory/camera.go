package factory

import (
	"github.com/automoto/doomerang-tmx/archetypes"
	"github.com/automoto/doomerang-tmx/components"
	cfg "github.com/automoto/doomerang-tmx/config"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

func CreateCamera(ecs *ecs.ECS, x, y float64) {
	camera := archetypes.Camera.Spawn(ecs)
	components.Camera.Set(camera, &components.CameraData{
		Position:   math.NewVec2(x, y),
		Zoom:       cfg.Camera.StartZoom,
		TargetZoom: cfg.Camera.StartZoom,
	})
}
