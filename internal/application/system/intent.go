package system

import (
	"math"

	"github.com/younwookim/voxelmove/internal/ecs"
)

// Intent is the horizontal movement an entity wants this tick
type Intent struct {
	Forward float64 // 0 or 1
	Heading float64 // radians
}

// CalculateMovement turns the pressed keys and yaw into an Intent.
// Backward rotates the heading by π and wins over forward. Strafing adds
// ±π/2, halved while moving forward or backward, and is mirrored while
// moving backward.
func CalculateMovement(keys ecs.KeySet, yaw float64) Intent {
	forward := 0.0
	heading := yaw - math.Pi/2

	if keys.Pressed(ecs.KeyForward) || keys.Pressed(ecs.KeyBackward) {
		forward = 1
		if keys.Pressed(ecs.KeyBackward) {
			heading += math.Pi
		}
	}

	change := 0.0
	if keys.Pressed(ecs.KeyLeft) {
		change = (math.Pi / 2) / (math.Abs(forward) + 1)
	}
	if keys.Pressed(ecs.KeyRight) {
		change = -(math.Pi / 2) / (math.Abs(forward) + 1)
	}
	if keys.Pressed(ecs.KeyLeft) || keys.Pressed(ecs.KeyRight) {
		forward = 1
	}

	if keys.Pressed(ecs.KeyBackward) {
		heading -= change
	} else {
		heading += change
	}

	return Intent{Forward: forward, Heading: heading}
}
