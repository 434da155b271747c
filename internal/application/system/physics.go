package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/voxelmove/internal/ecs"
	"github.com/younwookim/voxelmove/internal/infrastructure/config"
)

// Physics holds movement tuning in blocks per tick unit.
// One tick unit is 1/TicksPerSecond of a second.
type Physics struct {
	WalkSpeed        float64
	SprintSpeed      float64
	FlyMultiplier    float64
	JumpVelocity     float64
	Gravity          float64
	TerminalVelocity float64 // positive, applied downward
	StepIncrements   int
	StepHeight       float64 // height of one step-up increment
	GroundProbeDepth float64
}

// PerTick converts blocks per second to blocks per tick unit
func PerTick(blocksPerSecond, ticksPerSecond float64) float64 {
	return blocksPerSecond / ticksPerSecond
}

// NewPhysics converts a physics config into per-tick values
func NewPhysics(cfg *config.PhysicsConfig) Physics {
	return Physics{
		WalkSpeed:        PerTick(cfg.WalkSpeed, cfg.TicksPerSecond),
		SprintSpeed:      PerTick(cfg.SprintSpeed, cfg.TicksPerSecond),
		FlyMultiplier:    cfg.FlyMultiplier,
		JumpVelocity:     cfg.JumpVelocity,
		Gravity:          cfg.Gravity,
		TerminalVelocity: cfg.TerminalVelocity,
		StepIncrements:   cfg.StepIncrements,
		StepHeight:       1 / float64(cfg.StepResolution),
		GroundProbeDepth: cfg.GroundProbeDepth,
	}
}

// DefaultPhysics returns the standard player tuning
func DefaultPhysics() Physics {
	return Physics{
		WalkSpeed:        4.317 / 60,
		SprintSpeed:      5.612 / 60,
		FlyMultiplier:    2.5,
		JumpVelocity:     0.15,
		Gravity:          0.01,
		TerminalVelocity: 0.3,
		StepIncrements:   8,
		StepHeight:       1.0 / 16,
		GroundProbeDepth: 0.05,
	}
}

// SyncMotionMode switches between gravity and flight to match the flying
// flag. Entering either mode clears ground contact.
func SyncMotionMode(motion *ecs.Motion, flying bool) {
	switch {
	case flying && motion.Mode == ecs.Grounded:
		motion.Mode = ecs.Flying
		motion.OnGround = false
	case !flying && motion.Mode == ecs.Flying:
		motion.Mode = ecs.Grounded
		motion.OnGround = false
	}
}

// Integrate applies intent, jumping, gravity and flight to the current
// position and returns the tentative position. Vertical velocity is
// updated in place.
func (p Physics) Integrate(m ecs.Mover, intent Intent, delta float64) mgl64.Vec3 {
	keys := m.Movement.PressedKeys
	next := m.Position.Current
	vy := m.Velocity.Value[1]

	speed := p.WalkSpeed
	if keys.Pressed(ecs.KeySprint) {
		speed = p.SprintSpeed
	}

	flying := m.Movement.Flying
	switch {
	case flying:
		speed *= p.FlyMultiplier
		if keys.Pressed(ecs.KeyJump) {
			next[1] += speed * delta
		}
		if keys.Pressed(ecs.KeyDescend) {
			next[1] -= speed * delta
		}
	case m.Motion.OnGround:
		if keys.Pressed(ecs.KeyJump) {
			vy = p.JumpVelocity
		} else {
			vy = 0
		}
	default:
		vy -= p.Gravity * delta
		if vy < -p.TerminalVelocity {
			vy = -p.TerminalVelocity
		}
	}

	next[0] += intent.Forward * math.Cos(intent.Heading) * delta * speed
	next[2] -= intent.Forward * math.Sin(intent.Heading) * delta * speed
	if !flying {
		next[1] += vy * delta
	}

	m.Velocity.Value[1] = vy
	return next
}
