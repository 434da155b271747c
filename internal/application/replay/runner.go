package replay

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/voxelmove/internal/application/system"
	"github.com/younwookim/voxelmove/internal/ecs"
)

// ErrChecksumMismatch is returned by Verify when the replayed state differs
// from the recorded one
var ErrChecksumMismatch = errors.New("replay checksum mismatch")

// FrameResult is the outcome of replaying one frame
type FrameResult struct {
	Frame int
	Input ReplayInput
	Tick  system.TickResult
	Mover ecs.Mover
}

// Runner replays recorded frames through a MovementSystem without a window
type Runner struct {
	replayer *Replayer
	movement *system.MovementSystem
	world    *ecs.World
	player   ecs.Entity
}

// NewRunner spawns the recorded player from spec, overriding its position and
// game mode with the ones stored in data
func NewRunner(data ReplayData, movement *system.MovementSystem, spec ecs.MoverSpec) (*Runner, error) {
	mode, err := ecs.ParseGameMode(data.GameMode)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	spec.Position = mgl64.Vec3{data.Spawn[0], data.Spawn[1], data.Spawn[2]}
	spec.Mode = mode
	spec.Flying = mode.AlwaysFly()

	world := ecs.NewWorld()
	player := world.SpawnLocalPlayer(spec)

	return &Runner{
		replayer: NewReplayer(data),
		movement: movement,
		world:    world,
		player:   player,
	}, nil
}

// Step replays the next frame. It returns false once every frame was used.
func (r *Runner) Step() (FrameResult, bool, error) {
	frame := r.replayer.CurrentFrame()
	in, ok := r.replayer.GetInput()
	if !ok {
		return FrameResult{}, false, nil
	}

	m, err := in.Apply(r.world, r.player)
	if err != nil {
		return FrameResult{}, false, fmt.Errorf("frame %d: %w", frame, err)
	}
	tick := r.movement.Tick(m, in.Delta)

	return FrameResult{Frame: frame, Input: in, Tick: tick, Mover: m}, true, nil
}

// Run replays every remaining frame, calling fn after each one
func (r *Runner) Run(fn func(FrameResult)) error {
	for {
		res, ok, err := r.Step()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if fn != nil {
			fn(res)
		}
	}
}

// Player returns the movement components of the replayed player
func (r *Runner) Player() ecs.Mover {
	return r.world.Mover(r.player)
}

// Checksum returns the checksum of the current player state
func (r *Runner) Checksum() uint64 {
	return Checksum(r.Player())
}

// Verify compares the current state against the recorded checksum.
// Recordings without a checksum always verify.
func (r *Runner) Verify() error {
	want := r.replayer.Data().Checksum
	if want == 0 {
		return nil
	}
	if got := r.Checksum(); got != want {
		return fmt.Errorf("%w: recorded %016x, replayed %016x", ErrChecksumMismatch, want, got)
	}
	return nil
}
