package systems

import (
	"encoding/json"
	"log"

	"github.com/automoto/doomerang-tmx/components"
	"github.com/automoto/doomerang-tmx/shared/collision"
	"github.com/automoto/doomerang-tmx/tags"
	"github.com/quasilyte/gdata"
	"github.com/yohamta/donburi/ecs"
)

// ViewerState is what the viewer remembers between runs
type ViewerState struct {
	Level string  `json:"level"`
	Mode  string  `json:"mode"`
	Zoom  float64 `json:"zoom"`
	Debug bool    `json:"debug"`
}

const viewerStateKey = "viewer"

var gdataManager *gdata.Manager
var gdataInitialized bool

// lastSaved is the state on disk, so unchanged frames write nothing
var lastSaved ViewerState

// InitPersistence initializes the gdata manager for viewer state storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "tmxviewer",
	})
	if err != nil {
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadViewerState loads the state saved by the last run, or nil.
func LoadViewerState() *ViewerState {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := gdataManager.LoadItem(viewerStateKey)
	if err != nil {
		log.Printf("Warning: Could not load viewer state: %v", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	state, err := decodeViewerState(data)
	if err != nil {
		log.Printf("Warning: Could not parse viewer state: %v", err)
		return nil
	}
	lastSaved = *state
	return state
}

func decodeViewerState(data []byte) (*ViewerState, error) {
	var state ViewerState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if _, err := collision.ParseMode(state.Mode); err != nil {
		state.Mode = ""
	}
	return &state, nil
}

// SaveViewerState writes state to disk.
func SaveViewerState(state ViewerState) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	if err := gdataManager.SaveItem(viewerStateKey, data); err != nil {
		return err
	}
	lastSaved = state
	return nil
}

// currentViewerState collects the state worth keeping from the world.
func currentViewerState(ecs *ecs.ECS) (ViewerState, bool) {
	var state ViewerState
	levelEntry, ok := components.Level.First(ecs.World)
	if !ok {
		return state, false
	}
	levelData := components.Level.Get(levelEntry)
	if levelData.CurrentLevel == nil {
		return state, false
	}
	state.Level = levelData.CurrentLevel.Name
	state.Debug = GetOrCreateSettings(ecs).Debug

	if bodyEntry, ok := tags.Body.First(ecs.World); ok {
		state.Mode = components.Body.Get(bodyEntry).Mode.String()
	}
	if cameraEntry, ok := components.Camera.First(ecs.World); ok {
		state.Zoom = components.Camera.Get(cameraEntry).TargetZoom
	}
	return state, true
}

// UpdatePersistence saves the viewer state whenever it changes.
func UpdatePersistence(ecs *ecs.ECS) {
	if !gdataInitialized {
		return
	}
	state, ok := currentViewerState(ecs)
	if !ok || state == lastSaved {
		return
	}
	if err := SaveViewerState(state); err != nil {
		log.Printf("Warning: Could not save viewer state: %v", err)
		// don't retry every frame
		lastSaved = state
	}
}
