package systems

import (
	"math"

	"github.com/automoto/doomerang-tmx/components"
	"github.com/automoto/doomerang-tmx/config"
	"github.com/automoto/doomerang-tmx/tags"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

func UpdateCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)

	updateZoom(e, camera)

	bodyEntry, ok := tags.Body.First(e.World)
	if !ok {
		return
	}
	body := components.Body.Get(bodyEntry)

	levelEntry, ok := components.Level.First(e.World)
	if !ok {
		return
	}
	levelData := components.Level.Get(levelEntry)
	if levelData.CurrentLevel == nil {
		return
	}

	// Follow the body's centre
	targetX := body.Position.X + body.Size.X/2
	targetY := body.Position.Y + body.Size.Y/2

	targetX, targetY = clampToLevel(targetX, targetY, camera.Zoom,
		float64(levelData.CurrentLevel.Width), float64(levelData.CurrentLevel.Height))

	camera.Position.X += (targetX - camera.Position.X) * config.Camera.FollowSmoothing
	camera.Position.Y += (targetY - camera.Position.Y) * config.Camera.FollowSmoothing
}

// clampToLevel keeps the view inside the level. Levels smaller than the view
// are centred.
func clampToLevel(x, y, zoom, levelWidth, levelHeight float64) (float64, float64) {
	if zoom == 0 {
		zoom = 1
	}
	halfW := float64(config.C.Width) / 2 / zoom
	halfH := float64(config.C.Height) / 2 / zoom

	if levelWidth <= 2*halfW {
		x = levelWidth / 2
	} else {
		x = math.Max(halfW, math.Min(levelWidth-halfW, x))
	}
	if levelHeight <= 2*halfH {
		y = levelHeight / 2
	} else {
		y = math.Max(halfH, math.Min(levelHeight-halfH, y))
	}
	return x, y
}

// updateZoom starts a tween on zoom input and advances a running one.
func updateZoom(e *ecs.ECS, camera *components.CameraData) {
	input := getOrCreateInput(e)

	target := camera.TargetZoom
	if input.JustPressed(config.ActionZoomIn) {
		target += config.Camera.ZoomStep
	}
	if input.JustPressed(config.ActionZoomOut) {
		target -= config.Camera.ZoomStep
	}
	target = math.Max(config.Camera.MinZoom, math.Min(config.Camera.MaxZoom, target))
	if target != camera.TargetZoom {
		camera.TargetZoom = target
		camera.ZoomTween = gween.New(float32(camera.Zoom), float32(target), config.Camera.ZoomDuration, ease.OutQuad)
	}

	if camera.ZoomTween == nil {
		return
	}
	z, done := camera.ZoomTween.Update(1.0 / config.TicksPerSecond)
	camera.Zoom = float64(z)
	if done {
		camera.Zoom = camera.TargetZoom
		camera.ZoomTween = nil
	}
}
