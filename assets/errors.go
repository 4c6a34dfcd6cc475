package assets

import "errors"

// ErrNoCollisionLayer is returned with a usable level whose configured
// collision layer is missing; bodies then move freely.
var ErrNoCollisionLayer = errors.New("collision layer missing")
