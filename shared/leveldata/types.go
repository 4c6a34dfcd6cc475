// Package leveldata extracts collision data from TMX levels for headless
// consumers such as tools and servers. It has no dependency on ebitengine or
// donburi.
package leveldata

const (
	// SpawnLayer is the object group holding player spawn tile objects.
	SpawnLayer = "PlayerSpawn"
	// DefaultCollisionLayer is the tile layer levels collide with unless
	// configured otherwise.
	DefaultCollisionLayer = "solids"
)

// CollisionData holds all collision-relevant data parsed from a TMX level file.
type CollisionData struct {
	SolidRects  []SolidRect  `yaml:"solids"`
	SpawnPoints []SpawnPoint `yaml:"spawns"`
	MapWidth    int          `yaml:"map_width"`
	MapHeight   int          `yaml:"map_height"`
	TileWidth   int          `yaml:"tile_width"`
	TileHeight  int          `yaml:"tile_height"`
}

// SolidRect is a run of solid tiles merged along a row. Slope tiles are
// never merged.
type SolidRect struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	W         float64 `yaml:"w"`
	H         float64 `yaml:"h"`
	SlopeType string  `yaml:"slope,omitempty"` // "", "45_up_right", "45_up_left"
}

// SpawnPoint represents a player spawn location.
type SpawnPoint struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Index int     `yaml:"index"`
}
