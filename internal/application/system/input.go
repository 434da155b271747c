package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/voxelmove/internal/ecs"
)

// Bindings maps movement controls to physical keys. Any bound key held
// counts as the control being pressed.
type Bindings map[ecs.Key][]ebiten.Key

// DefaultBindings returns the WASD layout
func DefaultBindings() Bindings {
	return Bindings{
		ecs.KeyForward:  {ebiten.KeyW},
		ecs.KeyBackward: {ebiten.KeyS},
		ecs.KeyLeft:     {ebiten.KeyA},
		ecs.KeyRight:    {ebiten.KeyD},
		ecs.KeyJump:     {ebiten.KeySpace},
		ecs.KeyDescend:  {ebiten.KeyControlLeft},
		ecs.KeySprint:   {ebiten.KeyShiftLeft},
	}
}

// InputSystem polls the keyboard
type InputSystem struct {
	bindings Bindings
}

// NewInputSystem creates a new input system
func NewInputSystem(bindings Bindings) *InputSystem {
	return &InputSystem{bindings: bindings}
}

// InputState holds the current input state
type InputState struct {
	Keys          ecs.KeySet
	TurnLeft      bool
	TurnRight     bool
	ToggleFlight  bool
	CycleGameMode bool
	Pause         bool
	SaveRecording bool
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Keys:          s.KeysFrom(ebiten.IsKeyPressed),
		TurnLeft:      ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		TurnRight:     ebiten.IsKeyPressed(ebiten.KeyE) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		ToggleFlight:  inpututil.IsKeyJustPressed(ebiten.KeyF),
		CycleGameMode: inpututil.IsKeyJustPressed(ebiten.KeyG),
		Pause:         inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		SaveRecording: inpututil.IsKeyJustPressed(ebiten.KeyF5),
	}
}

// KeysFrom builds the pressed-key snapshot using pressed to query physical keys
func (s *InputSystem) KeysFrom(pressed func(ebiten.Key) bool) ecs.KeySet {
	keys := make(ecs.KeySet, len(s.bindings))
	for control, physical := range s.bindings {
		for _, k := range physical {
			if pressed(k) {
				keys[control] = true
				break
			}
		}
	}
	return keys
}
