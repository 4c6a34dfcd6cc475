package factory

import (
	"github.com/automoto/doomerang-tmx/assets"
	cfg "github.com/automoto/doomerang-tmx/config"
	"github.com/automoto/doomerang-tmx/shared/collision"
	"github.com/automoto/doomerang-tmx/shared/leveldata"
	"github.com/automoto/doomerang-tmx/shared/tilemap"
	"github.com/automoto/doomerang-tmx/tags"
	"github.com/solarlune/resolv"
)

// CreateSpace mirrors the level's collision layer into a resolv space. Slope
// tiles become single ramp objects so their type survives the run merging.
// A level without a collision layer gets an empty space of its size.
func CreateSpace(lvl *assets.Level) *resolv.Space {
	g, ok := lvl.Map.TileLayer(cfg.TileMap.CollisionLayer)
	if !ok {
		return resolv.NewSpace(max(lvl.Width, 1), max(lvl.Height, 1),
			max(lvl.Map.TileWidth, 1), max(lvl.Map.TileHeight, 1))
	}

	slopeOf := func(t tilemap.Tile) string {
		switch s := leveldata.SlopeType(lvl.Map, t); s {
		case tags.Slope45UpRight, tags.Slope45UpLeft:
			return s
		}
		return ""
	}
	solids := collision.Solids(g, func(t tilemap.Tile) bool { return slopeOf(t) != "" })
	return collision.BuildSpace(g, solids, func(s collision.Solid) []string {
		if slope := slopeOf(s.First); slope != "" {
			return []string{tags.ResolvRamp, slope}
		}
		return nil
	})
}
