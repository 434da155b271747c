package ecs

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLocalPlayer(t *testing.T) {
	w := NewWorld()

	id := w.CreateLocalPlayer(mgl64.Vec3{1, 64, -2}, 0.5, 0.1, Creative)
	require.True(t, w.Exists(id))
	assert.Equal(t, id, w.PlayerID)

	m := w.Mover(id)
	assert.Equal(t, mgl64.Vec3{1, 64, -2}, m.Position.Current)
	assert.Equal(t, m.Position.Current, m.Position.Previous)
	assert.False(t, m.Position.Moved)
	assert.Equal(t, 0.5, m.Rotation.Yaw)
	assert.Equal(t, 0.1, m.Rotation.Pitch)
	assert.Equal(t, Creative, m.GameMode)
	assert.Equal(t, Grounded, m.Motion.Mode)
	assert.False(t, m.Movement.Flying)
	assert.NotNil(t, m.Movement.PressedKeys)
	assert.Equal(t, PlayerBounds(), m.Bounds)
	assert.InDelta(t, -0.3, m.Bounds.Box.Min.X(), 1e-12)
	assert.InDelta(t, 1.8, m.Bounds.Box.Max.Y(), 1e-12)
}

func TestMover_WritesThrough(t *testing.T) {
	w := NewWorld()
	id := w.CreateLocalPlayer(mgl64.Vec3{}, 0, 0, Survival)

	m := w.Mover(id)
	m.Position.Current = mgl64.Vec3{5, 6, 7}
	m.Velocity.Value[1] = -0.2
	m.Movement.PressedKeys[KeyJump] = true

	again := w.Mover(id)
	assert.Equal(t, mgl64.Vec3{5, 6, 7}, again.Position.Current)
	assert.Equal(t, -0.2, again.Velocity.Value.Y())
	assert.True(t, again.Movement.PressedKeys.Pressed(KeyJump))
}

func TestDestroyEntity(t *testing.T) {
	w := NewWorld()
	player := w.CreateLocalPlayer(mgl64.Vec3{}, 0, 0, Survival)
	other := w.CreateMover(MoverSpec{Bounds: PlayerBounds()})
	assert.Equal(t, 2, w.MoverCount())

	w.DestroyEntity(player)
	assert.False(t, w.Exists(player))
	assert.True(t, w.Exists(other))
	assert.Equal(t, Entity{}, w.PlayerID)
	assert.Equal(t, 1, w.MoverCount())
	assert.Panics(t, func() { w.Mover(player) })

	// Destroying twice is a no-op
	w.DestroyEntity(player)
	assert.Equal(t, 1, w.MoverCount())
}

func TestMover_PanicsOnMissingComponent(t *testing.T) {
	w := NewWorld()
	id := w.CreateLocalPlayer(mgl64.Vec3{}, 0, 0, Survival)
	w.bounds.Remove(id)

	assert.Panics(t, func() { w.Mover(id) })
	assert.Equal(t, 0, w.MoverCount(), "partial entities are not movers")
}

func TestEachMover(t *testing.T) {
	w := NewWorld()
	ids := map[Entity]bool{}
	for i := 0; i < 3; i++ {
		ids[w.CreateMover(MoverSpec{Position: mgl64.Vec3{float64(i), 0, 0}, Bounds: PlayerBounds()})] = true
	}

	w.EachMover(func(m Mover) {
		assert.True(t, ids[m.Entity])
		m.Position.Current[1] = 10
	})
	for id := range ids {
		assert.Equal(t, 10.0, w.Mover(id).Position.Current.Y())
	}
}

func TestCreateMover_Flying(t *testing.T) {
	w := NewWorld()
	id := w.CreateMover(MoverSpec{Flying: true, Mode: Spectator, Bounds: PlayerBounds()})
	m := w.Mover(id)
	assert.Equal(t, Flying, m.Motion.Mode)
	assert.True(t, m.Movement.Flying)

	w.SetGameMode(id, Creative)
	assert.Equal(t, Creative, w.Mover(id).GameMode)
}

func TestGameMode(t *testing.T) {
	tests := []struct {
		mode      GameMode
		alwaysFly bool
		noClip    bool
		canToggle bool
	}{
		{Survival, false, false, false},
		{Creative, false, false, true},
		{Adventure, false, false, false},
		{Spectator, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			assert.Equal(t, tt.alwaysFly, tt.mode.AlwaysFly())
			assert.Equal(t, tt.noClip, tt.mode.NoClip())
			assert.Equal(t, tt.canToggle, tt.mode.CanToggleFlight())

			parsed, err := ParseGameMode(tt.mode.String())
			require.NoError(t, err)
			assert.Equal(t, tt.mode, parsed)
		})
	}

	_, err := ParseGameMode("hardcore")
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	for _, k := range AllKeys() {
		parsed, err := ParseKey(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	_, err := ParseKey("crouch")
	assert.Error(t, err)

	var none KeySet
	assert.False(t, none.Pressed(KeyForward))
	assert.Equal(t, "grounded", Grounded.String())
	assert.Equal(t, "flying", Flying.String())
}
