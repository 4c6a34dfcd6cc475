package systems

import (
	"fmt"

	"github.com/automoto/doomerang-tmx/components"
	cfg "github.com/automoto/doomerang-tmx/config"
	"github.com/automoto/doomerang-tmx/fonts"
	"github.com/automoto/doomerang-tmx/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font"
)

// messageDuration is how long a banner stays up, in frames
const messageDuration = 90

// ShowMessage puts text in the banner, replacing the one shown.
func ShowMessage(ecs *ecs.ECS, msg string) {
	state := getOrCreateMessageState(ecs)
	state.Text = msg
	state.DisplayTimer = messageDuration
}

// UpdateMessage counts the banner down.
func UpdateMessage(ecs *ecs.ECS) {
	state := getOrCreateMessageState(ecs)
	if state.DisplayTimer > 0 {
		state.DisplayTimer--
		if state.DisplayTimer == 0 {
			state.Text = ""
		}
	}
}

// DrawHUD renders the banner at the top centre and the body's collision mode
// in the bottom-left corner.
func DrawHUD(ecs *ecs.ECS, screen *ebiten.Image) {
	if !fonts.Loaded(fonts.Regular) {
		return
	}
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()

	if bodyEntry, ok := tags.Body.First(ecs.World); ok {
		body := components.Body.Get(bodyEntry)
		label := fmt.Sprintf("%s / %s", body.Mode, cfg.Body.Backend)
		text.Draw(screen, label, fonts.Mono.Get(), 6, height-6, cfg.White)
	}

	state := getOrCreateMessageState(ecs)
	if state.Text == "" {
		return
	}
	face := fonts.Title.Get()
	w := font.MeasureString(face, state.Text).Ceil()
	h := face.Metrics().Height.Ceil()
	x := (width - w) / 2
	y := 24

	vector.FillRect(screen, float32(x-8), float32(y-h), float32(w+16), float32(h+8), cfg.BlackOverlay, false)
	text.Draw(screen, state.Text, face, x, y, cfg.White)
}

// getOrCreateMessageState returns the singleton banner state
func getOrCreateMessageState(ecs *ecs.ECS) *components.MessageStateData {
	entry, ok := components.MessageState.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.MessageState))
	}
	return components.MessageState.Get(entry)
}
