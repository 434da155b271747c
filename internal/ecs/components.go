package ecs

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/voxelmove/internal/domain/geom"
)

// Position is where an entity stands, measured at the centre of its feet
type Position struct {
	Current  mgl64.Vec3
	Previous mgl64.Vec3 // value at the start of the last tick
	Moved    bool       // Current != Previous after the last tick
}

// Velocity is in blocks per tick unit. Only Y is carried between ticks;
// horizontal motion is recomputed from input every tick.
type Velocity struct {
	Value mgl64.Vec3
}

// Rotation in radians
type Rotation struct {
	Yaw, Pitch float64
}

// MotionMode selects between gravity and free flight
type MotionMode uint8

const (
	Grounded MotionMode = iota // subject to gravity and ground probing
	Flying
)

func (m MotionMode) String() string {
	switch m {
	case Grounded:
		return "grounded"
	case Flying:
		return "flying"
	default:
		return fmt.Sprintf("MotionMode(%d)", uint8(m))
	}
}

// Motion holds the gravity mode and ground contact.
// OnGround is only meaningful in Grounded mode.
type Motion struct {
	Mode     MotionMode
	OnGround bool
}

// Key is a movement control
type Key uint8

const (
	KeyForward Key = iota
	KeyBackward
	KeyLeft
	KeyRight
	KeyJump
	KeyDescend
	KeySprint
)

var keyNames = [...]string{
	KeyForward:  "forward",
	KeyBackward: "backward",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyJump:     "jump",
	KeyDescend:  "descend",
	KeySprint:   "sprint",
}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", uint8(k))
}

// AllKeys lists every movement control
func AllKeys() []Key {
	return []Key{KeyForward, KeyBackward, KeyLeft, KeyRight, KeyJump, KeyDescend, KeySprint}
}

// ParseKey returns the key with the given name
func ParseKey(name string) (Key, error) {
	for i, n := range keyNames {
		if n == name {
			return Key(i), nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

// KeySet is the pressed-key snapshot written by the input layer
type KeySet map[Key]bool

// Pressed reports whether k is held. A nil set has nothing pressed.
func (s KeySet) Pressed(k Key) bool {
	return s[k]
}

// PlayerMovement is the movement intent of a controllable entity
type PlayerMovement struct {
	Flying bool
	// DidTouchGround latches true on the tick ground contact is acquired.
	// Consumers clear it.
	DidTouchGround bool
	PressedKeys    KeySet
}

// Bounds is the local-space collision box, centred under the feet
type Bounds struct {
	Box geom.Box
}

// PlayerBounds is the default collision box of a player
func PlayerBounds() Bounds {
	return Bounds{Box: geom.NewBox(-0.3, 0, -0.3, 0.3, 1.8, 0.3)}
}

// GameMode is the externally owned rule set of an entity
type GameMode uint8

const (
	Survival GameMode = iota
	Creative
	Adventure
	Spectator
)

var gameModeNames = [...]string{
	Survival:  "survival",
	Creative:  "creative",
	Adventure: "adventure",
	Spectator: "spectator",
}

func (g GameMode) String() string {
	if int(g) < len(gameModeNames) {
		return gameModeNames[g]
	}
	return fmt.Sprintf("GameMode(%d)", uint8(g))
}

// ParseGameMode returns the game mode with the given name
func ParseGameMode(name string) (GameMode, error) {
	for i, n := range gameModeNames {
		if n == name {
			return GameMode(i), nil
		}
	}
	return Survival, fmt.Errorf("unknown game mode %q", name)
}

// AlwaysFly reports whether the mode forces flight
func (g GameMode) AlwaysFly() bool { return g == Spectator }

// NoClip reports whether the mode ignores collision
func (g GameMode) NoClip() bool { return g == Spectator }

// CanToggleFlight reports whether the player may switch flight on and off
func (g GameMode) CanToggleFlight() bool { return g == Creative || g == Spectator }
