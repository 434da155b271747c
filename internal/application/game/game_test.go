package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/younwookim/voxelmove/internal/application/scene"
)

// mockScene is a test double for Scene interface
type mockScene struct {
	name          string
	updateCalled  int
	lastDelta     float64
	drawCalled    int
	onEnterCalled int
	onExitCalled  int
	nextScene     scene.Scene
	updateErr     error
}

func (m *mockScene) Update(delta float64) (scene.Scene, error) {
	m.updateCalled++
	m.lastDelta = delta
	return m.nextScene, m.updateErr
}

func (m *mockScene) Draw(screen *ebiten.Image) {
	m.drawCalled++
}

func (m *mockScene) OnEnter() {
	m.onEnterCalled++
}

func (m *mockScene) OnExit() {
	m.onExitCalled++
}

func (m *mockScene) Name() string {
	return m.name
}

func newTestGame(s scene.Scene) (*Game, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return New(s, 320, 240, logger), hook
}

func TestNew(t *testing.T) {
	mockInitial := &mockScene{}
	g, _ := newTestGame(mockInitial)

	assert.NotNil(t, g)
	assert.Equal(t, 1, mockInitial.onEnterCalled, "OnEnter should be called on initial scene")
}

func TestGame_Update_DelegatesToCurrentScene(t *testing.T) {
	mockInitial := &mockScene{}
	g, _ := newTestGame(mockInitial)

	err := g.Update()
	assert.NoError(t, err)
	assert.Equal(t, 1, mockInitial.updateCalled, "Update should delegate to current scene")
	assert.Equal(t, 1.0, mockInitial.lastDelta, "a full tick by default")

	g.SetDelta(0.5)
	assert.NoError(t, g.Update())
	assert.Equal(t, 0.5, mockInitial.lastDelta)
}

func TestGame_Layout(t *testing.T) {
	g, _ := newTestGame(&mockScene{})

	w, h := g.Layout(640, 480)
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)
}

func TestGame_SceneTransition(t *testing.T) {
	scene1 := &mockScene{name: "first"}
	scene2 := &mockScene{name: "second"}
	scene1.nextScene = scene2

	g, hook := newTestGame(scene1)
	assert.Equal(t, 1, scene1.onEnterCalled, "Initial scene OnEnter called")

	err := g.Update()
	assert.NoError(t, err)

	assert.Equal(t, 1, scene1.updateCalled, "scene1 Update called")
	assert.Equal(t, 1, scene1.onExitCalled, "scene1 OnExit called on transition")
	assert.Equal(t, 1, scene2.onEnterCalled, "scene2 OnEnter called on transition")

	entry := hook.LastEntry()
	if assert.NotNil(t, entry) {
		assert.Equal(t, "scene transition", entry.Message)
		assert.Equal(t, "first", entry.Data["from"])
		assert.Equal(t, "second", entry.Data["to"])
	}

	err = g.Update()
	assert.NoError(t, err)
	assert.Equal(t, 1, scene2.updateCalled, "scene2 Update called")
}

func TestGame_NoTransitionWhenNil(t *testing.T) {
	scene1 := &mockScene{nextScene: nil}
	g, _ := newTestGame(scene1)

	for i := 0; i < 5; i++ {
		err := g.Update()
		assert.NoError(t, err)
	}

	assert.Equal(t, 5, scene1.updateCalled, "All updates go to scene1")
	assert.Equal(t, 0, scene1.onExitCalled, "No OnExit when no transition")
}

func TestGame_UpdateError(t *testing.T) {
	scene1 := &mockScene{updateErr: assert.AnError}
	g, _ := newTestGame(scene1)

	err := g.Update()
	assert.ErrorIs(t, err, assert.AnError, "Error should propagate from scene")
}

func TestGame_Quit(t *testing.T) {
	scene1 := &mockScene{updateErr: scene.ErrQuit}
	g, _ := newTestGame(scene1)

	err := g.Update()
	assert.ErrorIs(t, err, ebiten.Termination)
	assert.Equal(t, 1, scene1.onExitCalled)

	g.Close()
	assert.Equal(t, 1, scene1.onExitCalled, "Close after quit does not exit twice")
}
