package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

type CameraData struct {
	Position math.Vec2
	Zoom     float64
	// ZoomTween eases Zoom towards TargetZoom; nil when idle.
	ZoomTween  *gween.Tween
	TargetZoom float64
}

var Camera = donburi.NewComponentType[CameraData]()
