package telemetry

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a run of tick records
type Summary struct {
	Ticks            int
	FrozenTicks      int
	GroundedFraction float64
	StepUps          int
	MeanTickUS       float64
	P95TickUS        float64
	MinVY            float64
}

// Fields returns the summary as log fields
func (s Summary) Fields() logrus.Fields {
	return logrus.Fields{
		"ticks":        s.Ticks,
		"frozen":       s.FrozenTicks,
		"grounded":     s.GroundedFraction,
		"step_ups":     s.StepUps,
		"mean_tick_us": s.MeanTickUS,
		"p95_tick_us":  s.P95TickUS,
		"min_vy":       s.MinVY,
	}
}

// Collector accumulates tick records for a Summary
type Collector struct {
	durations []float64
	frozen    int
	grounded  int
	stepUps   int
	minVY     float64
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{minVY: math.Inf(1)}
}

// Add records one tick
func (c *Collector) Add(rec TickRecord) {
	c.durations = append(c.durations, float64(rec.DurationUS))
	if rec.Frozen {
		c.frozen++
	}
	if rec.OnGround {
		c.grounded++
	}
	if rec.StepHeight > 0 {
		c.stepUps++
	}
	c.minVY = math.Min(c.minVY, rec.VY)
}

// Summary computes the summary of everything added so far
func (c *Collector) Summary() Summary {
	n := len(c.durations)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, c.durations)
	sort.Float64s(sorted)

	return Summary{
		Ticks:            n,
		FrozenTicks:      c.frozen,
		GroundedFraction: float64(c.grounded) / float64(n),
		StepUps:          c.stepUps,
		MeanTickUS:       stat.Mean(sorted, nil),
		P95TickUS:        stat.Quantile(0.95, stat.Empirical, sorted, nil),
		MinVY:            c.minVY,
	}
}
