package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/younwookim/voxelmove/internal/application/system"
	"github.com/younwookim/voxelmove/internal/ecs"
)

// TickRecord is one row of the per-tick trace
type TickRecord struct {
	Frame      int     `csv:"frame"`
	X          float64 `csv:"x"`
	Y          float64 `csv:"y"`
	Z          float64 `csv:"z"`
	VY         float64 `csv:"vy"`
	Yaw        float64 `csv:"yaw"`
	Mode       string  `csv:"mode"`
	GameMode   string  `csv:"game_mode"`
	OnGround   bool    `csv:"on_ground"`
	Moved      bool    `csv:"moved"`
	Frozen     bool    `csv:"frozen"`
	HitX       bool    `csv:"hit_x"`
	HitY       bool    `csv:"hit_y"`
	HitZ       bool    `csv:"hit_z"`
	StepHeight float64 `csv:"step_height"`
	DurationUS int64   `csv:"duration_us"`
}

// NewTickRecord captures the state of m after a tick
func NewTickRecord(frame int, m ecs.Mover, tick system.TickResult, took time.Duration) TickRecord {
	pos := m.Position.Current
	return TickRecord{
		Frame:      frame,
		X:          pos.X(),
		Y:          pos.Y(),
		Z:          pos.Z(),
		VY:         m.Velocity.Value.Y(),
		Yaw:        m.Rotation.Yaw,
		Mode:       m.Motion.Mode.String(),
		GameMode:   m.GameMode.String(),
		OnGround:   m.Motion.OnGround,
		Moved:      m.Position.Moved,
		Frozen:     tick.Frozen,
		HitX:       tick.Resolution.HitX,
		HitY:       tick.Resolution.HitY,
		HitZ:       tick.Resolution.HitZ,
		StepHeight: tick.Resolution.StepHeight,
		DurationUS: took.Microseconds(),
	}
}

// TraceWriter appends tick records to a CSV stream.
// A nil TraceWriter discards everything.
type TraceWriter struct {
	w             io.Writer
	headerWritten bool
	rows          int
}

// NewTraceWriter creates a trace writer. Returns nil if w is nil (tracing disabled).
func NewTraceWriter(w io.Writer) *TraceWriter {
	if w == nil {
		return nil
	}
	return &TraceWriter{w: w}
}

// Write appends records, emitting the header before the first row
func (t *TraceWriter) Write(records ...TickRecord) error {
	if t == nil || len(records) == 0 {
		return nil
	}

	if !t.headerWritten {
		if err := gocsv.Marshal(records, t.w); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
		t.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, t.w); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
	}

	t.rows += len(records)
	return nil
}

// Rows returns the number of rows written
func (t *TraceWriter) Rows() int {
	if t == nil {
		return 0
	}
	return t.rows
}

// ReadTrace parses a trace written by TraceWriter
func ReadTrace(r io.Reader) ([]TickRecord, error) {
	var records []TickRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	return records, nil
}
