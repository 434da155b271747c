package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/voxelmove/internal/ecs"
)

// TickResult describes what one tick did to one entity
type TickResult struct {
	Frozen     bool // containing chunk not loaded
	Resolved   bool // collision resolution ran
	Resolution Resolution
}

// MovementSystem advances every movable entity by one tick
type MovementSystem struct {
	physics  Physics
	blocks   BlockSource
	resolver *Resolver
}

// NewMovementSystem creates a movement system over blocks
func NewMovementSystem(physics Physics, blocks BlockSource) *MovementSystem {
	return &MovementSystem{
		physics:  physics,
		blocks:   blocks,
		resolver: NewResolver(blocks, physics),
	}
}

// Physics returns the tuning in use
func (s *MovementSystem) Physics() Physics {
	return s.physics
}

// Update runs one tick for every mover in w. Each entity completes before
// the next one starts.
func (s *MovementSystem) Update(w *ecs.World, delta float64) {
	w.EachMover(func(m ecs.Mover) {
		s.Tick(m, delta)
	})
}

// Tick runs one tick for a single mover: mode sync, integration, collision
// resolution and ground detection, then commits the result.
func (s *MovementSystem) Tick(m ecs.Mover, delta float64) TickResult {
	var result TickResult

	SyncMotionMode(m.Motion, m.Movement.Flying)
	m.Movement.Flying = m.Movement.Flying || m.GameMode.AlwaysFly()

	start := m.Position.Current
	if !s.blocks.IsChunkLoaded(ChunkOf(start)) {
		result.Frozen = true
		s.commit(m.Position, start, start)
		return result
	}

	intent := CalculateMovement(m.Movement.PressedKeys, m.Rotation.Yaw)
	target := s.physics.Integrate(m, intent, delta)

	if m.GameMode.NoClip() {
		s.commit(m.Position, start, target)
		return result
	}

	grounded := m.Motion.Mode == ecs.Grounded && m.Motion.OnGround
	res := s.resolver.Resolve(start, target, m.Bounds.Box, grounded)
	if res.HitY {
		m.Velocity.Value[1] = 0
	}

	if m.Motion.Mode == ecs.Grounded {
		wasOnGround := m.Motion.OnGround
		m.Motion.OnGround = s.resolver.OnGround(res.Position, m.Bounds.Box)
		if !wasOnGround && m.Motion.OnGround {
			m.Movement.DidTouchGround = true
		}
	}

	result.Resolved = true
	result.Resolution = res
	s.commit(m.Position, start, res.Position)
	return result
}

func (s *MovementSystem) commit(pos *ecs.Position, start, final mgl64.Vec3) {
	pos.Current = final
	pos.Previous = start
	pos.Moved = final != start
}
