package replay

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/voxelmove/internal/application/system"
	"github.com/younwookim/voxelmove/internal/domain/voxel"
	"github.com/younwookim/voxelmove/internal/ecs"
)

// createTestBlocks returns a stone floor at y=-1 over chunks -1..1
func createTestBlocks(t *testing.T) *voxel.World {
	t.Helper()
	palette := voxel.NewPalette()
	stone, err := palette.Register(voxel.Solid{ID: "stone"})
	require.NoError(t, err)

	world := voxel.NewWorld(palette)
	for cx := -1; cx <= 1; cx++ {
		for cz := -1; cz <= 1; cz++ {
			world.LoadChunk(voxel.ChunkPos{X: cx, Z: cz})
		}
	}
	require.NoError(t, world.Fill(-16, -1, -16, 31, -1, 31, stone))
	return world
}

// recordSession plays inputs live and returns the resulting recording
func recordSession(t *testing.T, blocks system.BlockSource, inputs []ReplayInput) ReplayData {
	t.Helper()
	sys := system.NewMovementSystem(system.DefaultPhysics(), blocks)
	w := ecs.NewWorld()
	id := w.CreateLocalPlayer(mgl64.Vec3{0.5, 0, 0.5}, 0, 0, ecs.Survival)

	data := ReplayData{
		Version:  FormatVersion,
		World:    "test",
		GameMode: ecs.Survival.String(),
		Spawn:    [3]float64{0.5, 0, 0.5},
	}
	for i, in := range inputs {
		data.Frames = append(data.Frames, in.Frame(i))
		m, err := in.Apply(w, id)
		require.NoError(t, err)
		sys.Tick(m, in.Delta)
	}
	data.Checksum = Checksum(w.Mover(id))
	return data
}

func walkAndJump(frames int) []ReplayInput {
	inputs := make([]ReplayInput, frames)
	for i := range inputs {
		keys := ecs.KeySet{ecs.KeyForward: true}
		if i == 5 {
			keys[ecs.KeyJump] = true
		}
		inputs[i] = ReplayInput{Keys: keys, Yaw: 0.3, Delta: 1}
	}
	return inputs
}

func TestFrameInput_JSONMarshal(t *testing.T) {
	input := FrameInput{F: 10, Fw: true, J: true, Yaw: 1.25, Dt: 1}

	data, err := json.Marshal(input)
	require.NoError(t, err)
	assert.JSONEq(t, `{"f":10,"fw":true,"j":true,"yaw":1.25,"dt":1}`, string(data))

	var decoded FrameInput
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, input, decoded)
}

func TestReplayInput_FrameRoundTrip(t *testing.T) {
	in := ReplayInput{
		Keys:     ecs.KeySet{ecs.KeyLeft: true, ecs.KeySprint: true, ecs.KeyJump: false},
		Yaw:      -2,
		Pitch:    0.5,
		Flying:   true,
		GameMode: "creative",
		Delta:    1,
	}

	fi := in.Frame(7)
	assert.Equal(t, 7, fi.F)
	assert.True(t, fi.L)
	assert.True(t, fi.Sp)
	assert.False(t, fi.J)

	out := fi.Input()
	assert.Equal(t, ecs.KeySet{ecs.KeyLeft: true, ecs.KeySprint: true}, out.Keys)
	assert.Equal(t, in.Yaw, out.Yaw)
	assert.Equal(t, in.Pitch, out.Pitch)
	assert.True(t, out.Flying)
	assert.Equal(t, "creative", out.GameMode)
}

func TestReplayInput_Apply(t *testing.T) {
	w := ecs.NewWorld()
	id := w.CreateLocalPlayer(mgl64.Vec3{}, 0, 0, ecs.Survival)

	in := ReplayInput{Keys: ecs.KeySet{ecs.KeyForward: true}, Yaw: 1, Pitch: 0.2, Flying: true, GameMode: "creative"}
	m, err := in.Apply(w, id)
	require.NoError(t, err)

	assert.Equal(t, ecs.Creative, m.GameMode)
	assert.True(t, m.Movement.Flying)
	assert.True(t, m.Movement.PressedKeys.Pressed(ecs.KeyForward))
	assert.Equal(t, 1.0, m.Rotation.Yaw)

	// The applied key set is a copy
	in.Keys[ecs.KeyBackward] = true
	assert.False(t, w.Mover(id).Movement.PressedKeys.Pressed(ecs.KeyBackward))

	_, err = ReplayInput{GameMode: "hardcore"}.Apply(w, id)
	assert.Error(t, err)
}

func TestReplayer_GetInput(t *testing.T) {
	data := ReplayData{
		Frames: []FrameInput{
			{F: 0, L: true, Yaw: 0.5, Dt: 1},
			{F: 1, R: true, J: true, Dt: 1},
			{F: 2, Dt: 1},
		},
	}

	replayer := NewReplayer(data)

	input, ok := replayer.GetInput()
	require.True(t, ok)
	assert.True(t, input.Keys.Pressed(ecs.KeyLeft))
	assert.False(t, input.Keys.Pressed(ecs.KeyRight))
	assert.Equal(t, 0.5, input.Yaw)

	input, ok = replayer.GetInput()
	require.True(t, ok)
	assert.True(t, input.Keys.Pressed(ecs.KeyRight))
	assert.True(t, input.Keys.Pressed(ecs.KeyJump))

	input, ok = replayer.GetInput()
	require.True(t, ok)
	assert.Empty(t, input.Keys)

	_, ok = replayer.GetInput()
	assert.False(t, ok)
}

func TestReplayer_CurrentFrameAndReset(t *testing.T) {
	replayer := NewReplayer(CreateTestReplayData(3, 0))
	assert.Equal(t, 3, replayer.TotalFrames())
	assert.Equal(t, 0, replayer.CurrentFrame())

	replayer.GetInput()
	replayer.GetInput()
	assert.Equal(t, 2, replayer.CurrentFrame())

	replayer.GetInput()
	_, ok := replayer.GetInput()
	assert.False(t, ok)

	replayer.Reset()
	assert.Equal(t, 0, replayer.CurrentFrame())
	input, ok := replayer.GetInput()
	assert.True(t, ok)
	assert.True(t, input.Keys.Pressed(ecs.KeyForward))
}

func TestCreateTestReplayData(t *testing.T) {
	data := CreateTestReplayData(60, 1.5)

	assert.Equal(t, FormatVersion, data.Version)
	assert.Equal(t, "survival", data.GameMode)
	assert.Len(t, data.Frames, 60)
	for i, frame := range data.Frames {
		assert.Equal(t, i, frame.F, "Frame number mismatch at index %d", i)
		assert.Equal(t, 1.5, frame.Yaw)
	}
}

func TestSaveAndLoadReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replay.json")
	data := CreateTestReplayData(5, 0.25)
	data.Checksum = 0xdeadbeef

	require.NoError(t, SaveReplay(path, data))
	loaded, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, data, *loaded)

	assert.Error(t, SaveReplay(path, ReplayData{}), "empty recordings are not saved")

	_, err = LoadReplay(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to open file")
}

func TestChecksum(t *testing.T) {
	w := ecs.NewWorld()
	a := w.CreateLocalPlayer(mgl64.Vec3{1, 2, 3}, 0, 0, ecs.Survival)
	b := w.CreateLocalPlayer(mgl64.Vec3{1, 2, 3}, 0, 0, ecs.Survival)

	assert.Equal(t, Checksum(w.Mover(a)), Checksum(w.Mover(b)))

	w.Mover(b).Motion.OnGround = true
	assert.NotEqual(t, Checksum(w.Mover(a)), Checksum(w.Mover(b)))

	w.Mover(b).Motion.OnGround = false
	w.Mover(b).Velocity.Value[1] = -0.08
	assert.NotEqual(t, Checksum(w.Mover(a)), Checksum(w.Mover(b)))
}

func TestRunner_ReproducesRecording(t *testing.T) {
	blocks := createTestBlocks(t)
	recorded := recordSession(t, blocks, walkAndJump(40))

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, SaveReplay(path, recorded))
	loaded, err := LoadReplay(path)
	require.NoError(t, err)

	sys := system.NewMovementSystem(system.DefaultPhysics(), blocks)
	runner, err := NewRunner(*loaded, sys, ecs.MoverSpec{Bounds: ecs.PlayerBounds()})
	require.NoError(t, err)

	var frames int
	var leftGround bool
	require.NoError(t, runner.Run(func(res FrameResult) {
		assert.Equal(t, frames, res.Frame)
		frames++
		if res.Mover.Position.Current.Y() > 0.1 {
			leftGround = true
		}
	}))

	assert.Equal(t, 40, frames)
	assert.True(t, leftGround, "the recorded jump is replayed")
	assert.Greater(t, runner.Player().Position.Current.Z(), 0.5)
	assert.NoError(t, runner.Verify())

	_, ok, err := runner.Step()
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestRunner_DetectsMismatch(t *testing.T) {
	blocks := createTestBlocks(t)
	recorded := recordSession(t, blocks, walkAndJump(20))
	recorded.Frames[3].Fw = false

	sys := system.NewMovementSystem(system.DefaultPhysics(), blocks)
	runner, err := NewRunner(recorded, sys, ecs.MoverSpec{Bounds: ecs.PlayerBounds()})
	require.NoError(t, err)
	require.NoError(t, runner.Run(nil))

	assert.ErrorIs(t, runner.Verify(), ErrChecksumMismatch)
}

func TestRunner_BadFrame(t *testing.T) {
	data := CreateTestReplayData(2, 0)
	data.Frames[1].GM = "hardcore"

	sys := system.NewMovementSystem(system.DefaultPhysics(), createTestBlocks(t))
	runner, err := NewRunner(data, sys, ecs.MoverSpec{Bounds: ecs.PlayerBounds()})
	require.NoError(t, err)

	err = runner.Run(nil)
	assert.ErrorContains(t, err, "frame 1")

	_, err = NewRunner(ReplayData{GameMode: "nope"}, sys, ecs.MoverSpec{})
	assert.Error(t, err)
}
