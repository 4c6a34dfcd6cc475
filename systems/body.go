package systems

import (
	"github.com/automoto/doomerang-tmx/components"
	cfg "github.com/automoto/doomerang-tmx/config"
	"github.com/automoto/doomerang-tmx/shared/collision"
	"github.com/automoto/doomerang-tmx/shared/gamemath"
	"github.com/automoto/doomerang-tmx/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateBody moves every body by the held direction actions. Tab cycles the
// collision mode. The tiles backend resolves against the collision layer
// directly; the resolv backend moves the body's object through the space.
func UpdateBody(ecs *ecs.ECS) {
	input := getOrCreateInput(ecs)
	levelEntry, ok := components.Level.First(ecs.World)
	if !ok {
		return
	}
	levelData := components.Level.Get(levelEntry)
	if levelData.CurrentLevel == nil {
		return
	}

	tags.Body.Each(ecs.World, func(e *donburi.Entry) {
		body := components.Body.Get(e)
		if input.JustPressed(cfg.ActionCycleMode) {
			body.Mode = body.Mode.Next()
			ShowMessage(ecs, "mode: "+body.Mode.String())
		}

		d := moveDirection(input, body.Speed)
		if d == (collision.Vec{}) {
			return
		}
		target := collision.Vec{X: body.Position.X + d.X, Y: body.Position.Y + d.Y}

		var next collision.Vec
		if cfg.Body.Backend == cfg.BackendResolv {
			next = moveResolv(components.Object.Get(e).Object, d)
		} else {
			next = levelData.Collider.ResolveCollision(body.Mode, body.Position, target, body.Size)
		}

		body.Blocked = next != target
		body.Touching = body.Touching[:0]
		if body.Blocked {
			body.Touching = levelData.Collider.CollidingTiles(cfg.TileMap.CollisionLayer, collision.At(target, body.Size))
		}
		body.Position = next
		syncObject(components.Object.Get(e).Object, next)
	})
}

func moveDirection(input *components.InputData, speed float64) collision.Vec {
	var d collision.Vec
	if input.Pressed(cfg.ActionMoveLeft) {
		d.X -= speed
	}
	if input.Pressed(cfg.ActionMoveRight) {
		d.X += speed
	}
	if input.Pressed(cfg.ActionMoveUp) {
		d.Y -= speed
	}
	if input.Pressed(cfg.ActionMoveDown) {
		d.Y += speed
	}
	return d
}

// moveResolv moves obj axis by axis, stopping flush against solids. Ramps do
// not block; the body's bottom is kept on or above their surface instead.
func moveResolv(obj *resolv.Object, d collision.Vec) collision.Vec {
	dx, dy := d.X, d.Y
	if check := obj.Check(dx, 0, tags.ResolvSolid); check != nil {
		if solids := blockers(check); len(solids) > 0 {
			dx = check.ContactWithObject(solids[0]).X()
		}
	}
	obj.X += dx
	obj.Update()

	if check := obj.Check(0, dy, tags.ResolvSolid); check != nil {
		if solids := blockers(check); len(solids) > 0 {
			dy = check.ContactWithObject(solids[0]).Y()
		}
	}
	obj.Y += dy
	obj.Update()

	if check := obj.Check(0, 0, tags.ResolvRamp); check != nil {
		for _, ramp := range check.ObjectsByTags(tags.ResolvRamp) {
			if !gamemath.Overlaps(obj, ramp) {
				continue
			}
			surface := gamemath.SlopeSurfaceY(obj, ramp, tags.Slope45UpRight, tags.Slope45UpLeft)
			if obj.Y+obj.H > surface {
				obj.Y = gamemath.SnapToSlopeY(obj.H, surface, 0)
				obj.Update()
			}
		}
	}

	return collision.Vec{X: obj.X, Y: obj.Y}
}

// blockers returns the solids of a collision that stop movement outright.
func blockers(check *resolv.Collision) []*resolv.Object {
	var out []*resolv.Object
	for _, o := range check.ObjectsByTags(tags.ResolvSolid) {
		if !o.HasTags(tags.ResolvRamp) {
			out = append(out, o)
		}
	}
	return out
}

func syncObject(obj *resolv.Object, p collision.Vec) {
	if obj == nil || (obj.X == p.X && obj.Y == p.Y) {
		return
	}
	obj.X, obj.Y = p.X, p.Y
	obj.Update()
}
