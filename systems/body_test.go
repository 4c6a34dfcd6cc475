package systems

import (
	"testing"

	"github.com/automoto/doomerang-tmx/components"
	cfg "github.com/automoto/doomerang-tmx/config"
	"github.com/automoto/doomerang-tmx/shared/collision"
	"github.com/automoto/doomerang-tmx/tags"
	"github.com/solarlune/resolv"
	"github.com/stretchr/testify/require"
)

func TestMoveDirection(t *testing.T) {
	var in components.InputData
	require.Equal(t, collision.Vec{}, moveDirection(&in, 2))

	in.Current[cfg.ActionMoveRight] = true
	in.Current[cfg.ActionMoveUp] = true
	require.Equal(t, collision.Vec{X: 2, Y: -2}, moveDirection(&in, 2))

	in.Current[cfg.ActionMoveLeft] = true
	require.Equal(t, collision.Vec{X: 0, Y: -2}, moveDirection(&in, 2), "opposite keys cancel")
}

func TestInputJustPressed(t *testing.T) {
	var in components.InputData
	in.Current[cfg.ActionCycleMode] = true
	require.True(t, in.JustPressed(cfg.ActionCycleMode))

	in.Previous = in.Current
	require.True(t, in.Pressed(cfg.ActionCycleMode))
	require.False(t, in.JustPressed(cfg.ActionCycleMode))
}

func TestMoveResolvStopsFlushAgainstSolids(t *testing.T) {
	space := resolv.NewSpace(128, 64, 16, 16)
	wall := resolv.NewObject(48, 0, 16, 64, tags.ResolvSolid)
	wall.SetShape(resolv.NewRectangle(0, 0, 16, 64))
	space.Add(wall)

	obj := resolv.NewObject(20, 20, 12, 12, tags.ResolvBody)
	obj.SetShape(resolv.NewRectangle(0, 0, 12, 12))
	space.Add(obj)

	got := moveResolv(obj, collision.Vec{X: 30, Y: 3})
	require.InDelta(t, 36, got.X, 1e-9, "right edge meets the wall at 48")
	require.InDelta(t, 23, got.Y, 1e-9)
	require.InDelta(t, got.X, obj.X, 1e-9)
	require.InDelta(t, got.Y, obj.Y, 1e-9)
}

func TestClampToLevel(t *testing.T) {
	w, h := cfg.C.Width, cfg.C.Height
	defer func() { cfg.C.Width, cfg.C.Height = w, h }()
	cfg.C.Width, cfg.C.Height = 200, 100

	x, y := clampToLevel(0, 0, 1, 1000, 1000)
	require.Equal(t, []float64{100, 50}, []float64{x, y})

	x, y = clampToLevel(5000, 5000, 2, 1000, 1000)
	require.Equal(t, []float64{950, 975}, []float64{x, y})

	// smaller than the view: centred
	x, y = clampToLevel(10, 10, 1, 120, 80)
	require.Equal(t, []float64{60, 40}, []float64{x, y})
}

func TestMoveResolvRidesRamps(t *testing.T) {
	space := resolv.NewSpace(128, 64, 16, 16)
	ramp := resolv.NewObject(32, 32, 16, 16, tags.ResolvSolid, tags.ResolvRamp, tags.Slope45UpRight)
	ramp.SetShape(resolv.NewRectangle(0, 0, 16, 16))
	space.Add(ramp)

	obj := resolv.NewObject(20, 40, 8, 8, tags.ResolvBody)
	obj.SetShape(resolv.NewRectangle(0, 0, 8, 8))
	space.Add(obj)

	// centre ends at x=36, a quarter up the ramp: surface at 44, bottom was 48
	got := moveResolv(obj, collision.Vec{X: 12, Y: 0})
	require.InDelta(t, 32, got.X, 1e-9, "ramps do not block sideways")
	require.InDelta(t, 36, got.Y, 1e-9)
}
