package ecs

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	ark "github.com/mlange-42/ark/ecs"
)

// Entity is a handle to an entity in the world
type Entity = ark.Entity

// World owns all entities and their components
type World struct {
	world *ark.World

	mover  *ark.Map7[Position, Rotation, Velocity, GameMode, Motion, PlayerMovement, Bounds]
	movers *ark.Filter7[Position, Rotation, Velocity, GameMode, Motion, PlayerMovement, Bounds]

	positions  *ark.Map[Position]
	rotations  *ark.Map[Rotation]
	velocities *ark.Map[Velocity]
	gameModes  *ark.Map[GameMode]
	motions    *ark.Map[Motion]
	movements  *ark.Map[PlayerMovement]
	bounds     *ark.Map[Bounds]

	// Singleton references
	PlayerID Entity
}

// NewWorld creates a new empty world
func NewWorld() *World {
	w := ark.NewWorld()
	return &World{
		world:      w,
		mover:      ark.NewMap7[Position, Rotation, Velocity, GameMode, Motion, PlayerMovement, Bounds](w),
		movers:     ark.NewFilter7[Position, Rotation, Velocity, GameMode, Motion, PlayerMovement, Bounds](w),
		positions:  ark.NewMap[Position](w),
		rotations:  ark.NewMap[Rotation](w),
		velocities: ark.NewMap[Velocity](w),
		gameModes:  ark.NewMap[GameMode](w),
		motions:    ark.NewMap[Motion](w),
		movements:  ark.NewMap[PlayerMovement](w),
		bounds:     ark.NewMap[Bounds](w),
	}
}

// MoverSpec describes a movable entity at creation
type MoverSpec struct {
	Position   mgl64.Vec3
	Yaw, Pitch float64
	Mode       GameMode
	Flying     bool
	Bounds     Bounds
}

// CreateMover creates an entity with every movement component at once
func (w *World) CreateMover(spec MoverSpec) Entity {
	pos := Position{Current: spec.Position, Previous: spec.Position}
	rot := Rotation{Yaw: spec.Yaw, Pitch: spec.Pitch}
	vel := Velocity{}
	mode := spec.Mode
	motion := Motion{Mode: Grounded}
	if spec.Flying {
		motion.Mode = Flying
	}
	movement := PlayerMovement{Flying: spec.Flying, PressedKeys: KeySet{}}
	bounds := spec.Bounds

	return w.mover.NewEntity(&pos, &rot, &vel, &mode, &motion, &movement, &bounds)
}

// CreateLocalPlayer creates the player controlled by this client
func (w *World) CreateLocalPlayer(at mgl64.Vec3, yaw, pitch float64, mode GameMode) Entity {
	return w.SpawnLocalPlayer(MoverSpec{
		Position: at,
		Yaw:      yaw,
		Pitch:    pitch,
		Mode:     mode,
		Bounds:   PlayerBounds(),
	})
}

// SpawnLocalPlayer creates the local player from a MoverSpec
func (w *World) SpawnLocalPlayer(spec MoverSpec) Entity {
	id := w.CreateMover(spec)
	w.PlayerID = id
	return id
}

// DestroyEntity removes an entity together with all of its components
func (w *World) DestroyEntity(id Entity) {
	if !w.world.Alive(id) {
		return
	}
	w.world.RemoveEntity(id)
	if id == w.PlayerID {
		w.PlayerID = Entity{}
	}
}

// Exists reports whether the entity is alive
func (w *World) Exists(id Entity) bool {
	return w.world.Alive(id)
}

// Mover gives mutable access to the movement components of one entity.
// GameMode and Bounds are copies; the core only reads them.
type Mover struct {
	Entity   Entity
	Position *Position
	Rotation *Rotation
	Velocity *Velocity
	Motion   *Motion
	Movement *PlayerMovement
	GameMode GameMode
	Bounds   Bounds
}

// Mover returns the movement components of id. It panics when the entity is
// dead or lacks any of them, since the physics would drift from what is shown.
func (w *World) Mover(id Entity) Mover {
	if !w.world.Alive(id) {
		panic(fmt.Sprintf("ecs: entity %v is not alive", id))
	}
	required := []struct {
		name string
		has  bool
	}{
		{"Position", w.positions.Has(id)},
		{"Rotation", w.rotations.Has(id)},
		{"Velocity", w.velocities.Has(id)},
		{"GameMode", w.gameModes.Has(id)},
		{"Motion", w.motions.Has(id)},
		{"PlayerMovement", w.movements.Has(id)},
		{"Bounds", w.bounds.Has(id)},
	}
	for _, c := range required {
		if !c.has {
			panic(fmt.Sprintf("ecs: entity %v is missing required component %s", id, c.name))
		}
	}

	return Mover{
		Entity:   id,
		Position: w.positions.Get(id),
		Rotation: w.rotations.Get(id),
		Velocity: w.velocities.Get(id),
		Motion:   w.motions.Get(id),
		Movement: w.movements.Get(id),
		GameMode: *w.gameModes.Get(id),
		Bounds:   *w.bounds.Get(id),
	}
}

// EachMover calls fn for every entity carrying all movement components.
// fn must not create or destroy entities.
func (w *World) EachMover(fn func(m Mover)) {
	query := w.movers.Query()
	for query.Next() {
		pos, rot, vel, mode, motion, movement, bounds := query.Get()
		fn(Mover{
			Entity:   query.Entity(),
			Position: pos,
			Rotation: rot,
			Velocity: vel,
			Motion:   motion,
			Movement: movement,
			GameMode: *mode,
			Bounds:   *bounds,
		})
	}
}

// MoverCount returns the number of entities carrying all movement components
func (w *World) MoverCount() int {
	n := 0
	w.EachMover(func(Mover) { n++ })
	return n
}

// SetGameMode changes the game mode of an entity
func (w *World) SetGameMode(id Entity, mode GameMode) {
	if !w.gameModes.Has(id) {
		panic(fmt.Sprintf("ecs: entity %v has no GameMode", id))
	}
	*w.gameModes.Get(id) = mode
}
