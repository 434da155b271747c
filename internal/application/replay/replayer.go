package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/voxelmove/internal/ecs"
)

// ReplayInput is everything that drives one tick of the local player
type ReplayInput struct {
	Keys       ecs.KeySet
	Yaw, Pitch float64
	Flying     bool
	GameMode   string // empty when unchanged
	Delta      float64
}

// Frame encodes the input as frame n
func (in ReplayInput) Frame(n int) FrameInput {
	return FrameInput{
		F:   n,
		Fw:  in.Keys.Pressed(ecs.KeyForward),
		Bk:  in.Keys.Pressed(ecs.KeyBackward),
		L:   in.Keys.Pressed(ecs.KeyLeft),
		R:   in.Keys.Pressed(ecs.KeyRight),
		J:   in.Keys.Pressed(ecs.KeyJump),
		Dn:  in.Keys.Pressed(ecs.KeyDescend),
		Sp:  in.Keys.Pressed(ecs.KeySprint),
		Fly: in.Flying,
		GM:  in.GameMode,
		Yaw: in.Yaw,
		Pt:  in.Pitch,
		Dt:  in.Delta,
	}
}

// Input decodes the frame
func (fi FrameInput) Input() ReplayInput {
	keys := ecs.KeySet{}
	for k, pressed := range map[ecs.Key]bool{
		ecs.KeyForward:  fi.Fw,
		ecs.KeyBackward: fi.Bk,
		ecs.KeyLeft:     fi.L,
		ecs.KeyRight:    fi.R,
		ecs.KeyJump:     fi.J,
		ecs.KeyDescend:  fi.Dn,
		ecs.KeySprint:   fi.Sp,
	} {
		if pressed {
			keys[k] = true
		}
	}
	return ReplayInput{
		Keys:     keys,
		Yaw:      fi.Yaw,
		Pitch:    fi.Pt,
		Flying:   fi.Fly,
		GameMode: fi.GM,
		Delta:    fi.Dt,
	}
}

// Apply writes the input into the movement components of id and returns
// them ready for a tick
func (in ReplayInput) Apply(w *ecs.World, id ecs.Entity) (ecs.Mover, error) {
	if in.GameMode != "" {
		mode, err := ecs.ParseGameMode(in.GameMode)
		if err != nil {
			return ecs.Mover{}, err
		}
		w.SetGameMode(id, mode)
	}

	m := w.Mover(id)
	keys := make(ecs.KeySet, len(in.Keys))
	for k, v := range in.Keys {
		keys[k] = v
	}
	m.Movement.PressedKeys = keys
	m.Movement.Flying = in.Flying
	m.Rotation.Yaw = in.Yaw
	m.Rotation.Pitch = in.Pitch
	return m, nil
}

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// SaveReplay writes replay data to a file
func SaveReplay(filename string, data ReplayData) error {
	if len(data.Frames) == 0 {
		return fmt.Errorf("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// GetInput returns the input for the current frame and advances
func (r *Replayer) GetInput() (ReplayInput, bool) {
	if r.frame >= len(r.data.Frames) {
		return ReplayInput{}, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++

	return fi.Input(), true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Data returns the replay being played
func (r *Replayer) Data() ReplayData {
	return r.data
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// CreateTestReplayData creates replay data for testing (player holding forward)
func CreateTestReplayData(frames int, yaw float64) ReplayData {
	data := ReplayData{
		Version:   FormatVersion,
		World:     "test",
		GameMode:  ecs.Survival.String(),
		Spawn:     [3]float64{0.5, 0, 0.5},
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameInput{
			F:   i,
			Fw:  true,
			Yaw: yaw,
			Dt:  1,
		}
	}

	return data
}
