package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/doomerang-tmx/components"
	cfg "github.com/automoto/doomerang-tmx/config"
	"github.com/automoto/doomerang-tmx/shared/tilemap"
	"github.com/automoto/doomerang-tmx/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/colornames"
)

func DrawDebug(ecs *ecs.ECS, screen *ebiten.Image) {
	settings := GetOrCreateSettings(ecs)
	if !settings.Debug {
		return
	}

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
	if levelData.CurrentLevel == nil {
		return
	}

	zoom := camera.Zoom
	if zoom == 0 {
		zoom = 1.0
	}
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	v := view{camX: camera.Position.X, camY: camera.Position.Y, zoom: zoom, w: float64(width), h: float64(height)}
	geoM := v.geoM()
	x0, y0, x1, y1 := v.visible()

	if cfg.Body.Backend == cfg.BackendResolv && levelData.Space != nil {
		for _, obj := range levelData.Space.Objects() {
			// Cull objects outside viewport
			if obj.X+obj.W < x0 || obj.X > x1 || obj.Y+obj.H < y0 || obj.Y > y1 {
				continue
			}
			c := colornames.Gray
			if obj.HasTags(tags.ResolvRamp) {
				c = colornames.Orange
			} else if obj.HasTags(tags.ResolvBody) {
				continue
			}
			strokeRect(screen, geoM, obj.X, obj.Y, obj.W, obj.H, c)
		}
	}

	var stats string
	tags.Body.Each(ecs.World, func(e *donburi.Entry) {
		body := components.Body.Get(e)
		for _, t := range body.Touching {
			g, ok := levelData.CurrentLevel.Map.TileLayer(cfg.TileMap.CollisionLayer)
			if !ok {
				break
			}
			px, py, w, h := g.CellRect(t.X, t.Y)
			strokeRect(screen, geoM, px, py, w, h, colornames.Red)
		}

		c := colornames.Lime
		if body.Blocked {
			c = colornames.Yellow
		}
		b := bodyBounds(body)
		strokeRect(screen, geoM, b.X, b.Y, b.W, b.H, c)

		stats += fmt.Sprintf("pos %.1f,%.1f  mode %s  touching %d\n",
			body.Position.X, body.Position.Y, body.Mode, len(body.Touching))
	})

	lvl := levelData.CurrentLevel
	tiles := 0
	lvl.Map.Walk(func(l *tilemap.Layer) bool {
		if l.Grid != nil {
			tiles += l.Grid.Count()
		}
		return true
	})
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"%s (%dx%d)  backend %s  zoom %.2f\ntiles %d  quads %d  draw calls %d  TPS %.0f\n%s",
		lvl.Name, lvl.Width, lvl.Height, cfg.Body.Backend, zoom,
		tiles, levelRenderer.quads, levelRenderer.drawCalls, ebiten.ActualTPS(), stats))
}

// strokeRect outlines a map pixel rectangle.
func strokeRect(screen *ebiten.Image, geoM ebiten.GeoM, x, y, w, h float64, c color.Color) {
	sx0, sy0 := geoM.Apply(x, y)
	sx1, sy1 := geoM.Apply(x+w, y+h)
	x, y, w, h = sx0, sy0, sx1-sx0, sy1-sy0

	vector.FillRect(screen, float32(x), float32(y), float32(w), 1, c, false)     // Top
	vector.FillRect(screen, float32(x), float32(y+h-1), float32(w), 1, c, false) // Bottom
	vector.FillRect(screen, float32(x), float32(y), 1, float32(h), c, false)     // Left
	vector.FillRect(screen, float32(x+w-1), float32(y), 1, float32(h), c, false) // Right
}
