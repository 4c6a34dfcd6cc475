package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Helper()
	c, tm, b, cam, d := *C, TileMap, Body, Camera, Debug
	t.Cleanup(func() {
		*C, TileMap, Body, Camera, Debug = c, tm, b, cam, d
	})
}

func TestLoadOverlaysDefaults(t *testing.T) {
	restore(t)

	err := Load([]byte(`
window:
  width: 800
tilemap:
  collision_layer: walls
body:
  mode: push
  backend: resolv
debug:
  overlay: true
`))
	require.NoError(t, err)

	require.Equal(t, 800, C.Width)
	require.Equal(t, 360, C.Height, "unset fields keep their default")
	require.Equal(t, "walls", TileMap.CollisionLayer)
	require.Equal(t, "collidable", TileMap.CollidableProperty)
	require.Equal(t, "push", Body.Mode)
	require.Equal(t, BackendResolv, Body.Backend)
	require.Equal(t, 2.0, Body.Speed)
	require.True(t, Debug.Overlay)
}

func TestLoadRejectsBadValues(t *testing.T) {
	for name, doc := range map[string]string{
		"mode":    "body:\n  mode: bounce\n",
		"backend": "body:\n  backend: box2d\n",
		"zoom":    "camera:\n  min_zoom: 0\n",
		"start":   "camera:\n  start_zoom: 9\n",
		"yaml":    "body: [",
	} {
		t.Run(name, func(t *testing.T) {
			restore(t)
			before := Body
			require.Error(t, Load([]byte(doc)))
			require.Equal(t, before, Body)
		})
	}
}

func TestLoadFile(t *testing.T) {
	restore(t)

	p := filepath.Join(t.TempDir(), "viewer.yaml")
	require.NoError(t, os.WriteFile(p, []byte("tilemap:\n  default_level: world\n"), 0o644))
	require.NoError(t, LoadFile(p))
	require.Equal(t, "world", TileMap.DefaultLevel)

	require.Error(t, LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))
}
