// Package gamemath holds small geometry helpers shared by the physics
// backends.
package gamemath

import (
	"github.com/solarlune/resolv"
)

// SlopeSurfaceY returns the height of a ramp's walkable surface under the
// centre of object. upRightTag marks ramps rising to the right, upLeftTag
// ramps rising to the left; any other ramp is flat at its top.
func SlopeSurfaceY(object *resolv.Object, ramp *resolv.Object, upRightTag, upLeftTag string) float64 {
	centerX := object.X + object.W/2
	relativeX := Clamp(centerX-ramp.X, 0, ramp.W)
	slope := relativeX / ramp.W

	if ramp.HasTags(upRightTag) {
		return ramp.Y + ramp.H*(1-slope)
	}
	if ramp.HasTags(upLeftTag) {
		return ramp.Y + ramp.H*slope
	}
	return ramp.Y
}

// SnapToSlopeY returns the Y position that rests an object of height objectH
// on a surface.
func SnapToSlopeY(objectH, surfaceY, offset float64) float64 {
	return surfaceY - objectH + offset
}

// Overlaps reports whether two objects' boxes intersect. Touching edges do
// not count.
func Overlaps(a, b *resolv.Object) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
