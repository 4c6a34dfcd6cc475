package collision

import (
	"fmt"
	"strings"
)

// Mode selects how a blocked move is resolved.
type Mode int

const (
	// Stop keeps the body where it is when the target is blocked.
	Stop Mode = iota
	// Slide keeps whichever single axis of the move is clear.
	Slide
	// Push moves the body to the first clear spot next to the target.
	Push
)

// PushOffset is the distance in pixels Push probes around a blocked target.
const PushOffset = 2

// pushDirections is the probe order used by Push.
var pushDirections = [8]Vec{
	{0, -1},  // up
	{1, 0},   // right
	{0, 1},   // down
	{-1, 0},  // left
	{1, -1},  // up-right
	{1, 1},   // down-right
	{-1, 1},  // down-left
	{-1, -1}, // up-left
}

func (m Mode) String() string {
	switch m {
	case Stop:
		return "stop"
	case Slide:
		return "slide"
	case Push:
		return "push"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Next cycles through the modes.
func (m Mode) Next() Mode {
	return (m + 1) % (Push + 1)
}

// ParseMode parses a mode name as returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stop":
		return Stop, nil
	case "slide":
		return Slide, nil
	case "push":
		return Push, nil
	}
	return Stop, fmt.Errorf("unknown collision mode %q", s)
}

// ResolveCollision returns where a body of the given size moving from
// current to target ends up on the collider's layer.
func (c *Collider) ResolveCollision(mode Mode, current, target, size Vec) Vec {
	free := func(p Vec) bool {
		return !c.CheckCollision(c.Layer, At(p, size))
	}
	return resolve(mode, current, target, free)
}

func resolve(mode Mode, current, target Vec, free func(Vec) bool) Vec {
	if free(target) {
		return target
	}

	switch mode {
	case Slide:
		if p := (Vec{target.X, current.Y}); free(p) {
			return p
		}
		if p := (Vec{current.X, target.Y}); free(p) {
			return p
		}
	case Push:
		for _, d := range pushDirections {
			p := Vec{target.X + d.X*PushOffset, target.Y + d.Y*PushOffset}
			if free(p) {
				return p
			}
		}
	}
	return current
}
