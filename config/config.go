package config

import (
	"fmt"
	"image/color"
	"os"

	"github.com/yohamta/donburi/ecs"
	"gopkg.in/yaml.v3"

	"github.com/automoto/doomerang-tmx/shared/collision"
	"github.com/automoto/doomerang-tmx/shared/leveldata"
	"github.com/automoto/doomerang-tmx/shared/tilemap"
)

// Config holds general window configuration
type Config struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// TileMapConfig contains level loading and tile resolution settings
type TileMapConfig struct {
	LevelsDir          string `yaml:"levels_dir"`          // Directory holding .tmx files
	DefaultLevel       string `yaml:"default_level"`       // Level stem loaded at start
	CollisionLayer     string `yaml:"collision_layer"`     // Tile layer bodies collide with
	CollidableProperty string `yaml:"collidable_property"` // Bool tile property marking solids
}

// Physics backends for body movement
const (
	BackendTiles  = "tiles"  // Query the tile grid directly
	BackendResolv = "resolv" // Query a resolv space built from the grid
)

// BodyConfig contains the movable body's configuration
type BodyConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Speed   float64 `yaml:"speed"`   // Pixels per tick
	Mode    string  `yaml:"mode"`    // stop, slide or push
	Backend string  `yaml:"backend"` // tiles or resolv
}

// CameraConfig contains camera behavior configuration
type CameraConfig struct {
	FollowSmoothing float64 `yaml:"follow_smoothing"` // How fast camera follows the body (0.0-1.0)
	ZoomStep        float64 `yaml:"zoom_step"`        // Zoom change per key press
	MinZoom         float64 `yaml:"min_zoom"`
	MaxZoom         float64 `yaml:"max_zoom"`
	ZoomDuration    float32 `yaml:"zoom_duration"` // Seconds a zoom change takes
	StartZoom       float64 `yaml:"start_zoom"`
}

// DebugConfig contains debug/testing options
type DebugConfig struct {
	Overlay   bool `yaml:"overlay"`    // Draw collision boxes and stats
	HotReload bool `yaml:"hot_reload"` // Rebuild the level when its files change
}

// Global configuration instances
var C *Config
var TileMap TileMapConfig
var Body BodyConfig
var Camera CameraConfig
var Debug DebugConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
)

// TicksPerSecond is the simulation rate the viewer runs at
const TicksPerSecond = 60

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
		Title:  "tmx viewer",
	}

	TileMap = TileMapConfig{
		LevelsDir:          "levels",
		DefaultLevel:       "level1",
		CollisionLayer:     leveldata.DefaultCollisionLayer,
		CollidableProperty: tilemap.DefaultCollidableProperty,
	}

	Body = BodyConfig{
		Width:   12,
		Height:  14,
		Speed:   2.0,
		Mode:    collision.Slide.String(),
		Backend: BackendTiles,
	}

	Camera = CameraConfig{
		FollowSmoothing: 0.1,
		ZoomStep:        0.5,
		MinZoom:         0.5,
		MaxZoom:         4,
		ZoomDuration:    0.25,
		StartZoom:       1,
	}

	Debug = DebugConfig{
		Overlay: false,
	}
}

// file is the layout of a YAML override file. Sections left out keep their
// defaults, as do fields left out of a section.
type file struct {
	Window  *Config        `yaml:"window"`
	TileMap *TileMapConfig `yaml:"tilemap"`
	Body    *BodyConfig    `yaml:"body"`
	Camera  *CameraConfig  `yaml:"camera"`
	Debug   *DebugConfig   `yaml:"debug"`
}

// LoadFile overlays the YAML file at path onto the global configuration.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return Load(data)
}

// Load overlays YAML data onto the global configuration.
func Load(data []byte) error {
	body, cam := Body, Camera
	f := file{Window: C, TileMap: &TileMap, Body: &body, Camera: &cam, Debug: &Debug}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("config: unmarshal: %w", err)
	}

	if _, err := collision.ParseMode(body.Mode); err != nil {
		return fmt.Errorf("config: body: %w", err)
	}
	switch body.Backend {
	case BackendTiles, BackendResolv:
	default:
		return fmt.Errorf("config: body: unknown backend %q", body.Backend)
	}
	if cam.MinZoom <= 0 || cam.MaxZoom < cam.MinZoom {
		return fmt.Errorf("config: camera: bad zoom range %v-%v", cam.MinZoom, cam.MaxZoom)
	}
	if cam.StartZoom < cam.MinZoom || cam.StartZoom > cam.MaxZoom {
		return fmt.Errorf("config: camera: start zoom %v outside %v-%v", cam.StartZoom, cam.MinZoom, cam.MaxZoom)
	}
	Body, Camera = body, cam
	return nil
}

// Default is the ECS layer every entity and renderer lives on
const Default ecs.LayerID = 0
