package playing

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/voxelmove/internal/application/replay"
)

// Recorder handles input recording for replay
type Recorder struct {
	data      replay.ReplayData
	recording bool
}

// NewRecorder creates a recorder for a session starting at spawn
func NewRecorder(world, gameMode string, spawn mgl64.Vec3) *Recorder {
	return &Recorder{
		data: replay.ReplayData{
			Version:   replay.FormatVersion,
			World:     world,
			GameMode:  gameMode,
			Spawn:     [3]float64{spawn[0], spawn[1], spawn[2]},
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]replay.FrameInput, 0, 3600), // Pre-allocate for ~1 minute at 60 ticks
		},
		recording: true,
	}
}

// RecordFrame records a single tick's input
func (r *Recorder) RecordFrame(input replay.ReplayInput) {
	if !r.recording {
		return
	}
	r.data.Frames = append(r.data.Frames, input.Frame(len(r.data.Frames)))
}

// Save writes the recording with the checksum of the state reached after
// the last recorded frame
func (r *Recorder) Save(filename string, checksum uint64) error {
	r.data.Checksum = checksum
	return replay.SaveReplay(filename, r.data)
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// GetData returns the replay data (for testing)
func (r *Recorder) GetData() replay.ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
