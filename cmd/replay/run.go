package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/younwookim/voxelmove/internal/application/replay"
	"github.com/younwookim/voxelmove/internal/application/system"
	"github.com/younwookim/voxelmove/internal/application/telemetry"
	"github.com/younwookim/voxelmove/internal/infrastructure/config"
)

// options selects what a headless replay reads and writes
type options struct {
	replayPath string
	configDir  string
	configPath string // optional override of game.yaml
	tracePath  string // optional CSV trace output
}

// run replays one recording, writes the trace and verifies the checksum
func run(opts options, log logrus.FieldLogger) (telemetry.Summary, error) {
	data, err := replay.LoadReplay(opts.replayPath)
	if err != nil {
		return telemetry.Summary{}, err
	}
	log = log.WithFields(logrus.Fields{"file": opts.replayPath, "world": data.World})
	log.WithFields(logrus.Fields{
		"version": data.Version,
		"frames":  len(data.Frames),
		"mode":    data.GameMode,
	}).Info("replay loaded")

	cfg, err := config.NewLoader(opts.configDir).LoadOverride(opts.configPath, data.World)
	if err != nil {
		return telemetry.Summary{}, err
	}
	blocks, err := system.LoadWorld(&cfg.World)
	if err != nil {
		return telemetry.Summary{}, err
	}
	spec, err := system.PlayerSpec(&cfg.Player)
	if err != nil {
		return telemetry.Summary{}, err
	}

	runner, err := replay.NewRunner(*data, system.NewMovementSystem(system.NewPhysics(&cfg.Physics), blocks), spec)
	if err != nil {
		return telemetry.Summary{}, err
	}

	var trace *telemetry.TraceWriter
	if opts.tracePath != "" {
		f, err := os.Create(opts.tracePath)
		if err != nil {
			return telemetry.Summary{}, fmt.Errorf("creating trace: %w", err)
		}
		defer func() { _ = f.Close() }()
		trace = telemetry.NewTraceWriter(f)
	}

	collector := telemetry.NewCollector()
	for {
		start := time.Now()
		res, ok, err := runner.Step()
		took := time.Since(start)
		if err != nil {
			return telemetry.Summary{}, err
		}
		if !ok {
			break
		}

		rec := telemetry.NewTickRecord(res.Frame, res.Mover, res.Tick, took)
		collector.Add(rec)
		if err := trace.Write(rec); err != nil {
			return telemetry.Summary{}, err
		}
		if res.Mover.Movement.DidTouchGround {
			res.Mover.Movement.DidTouchGround = false
			log.WithField("frame", res.Frame).Debug("landed")
		}
	}

	summary := collector.Summary()
	log.WithFields(summary.Fields()).WithField("trace_rows", trace.Rows()).Info("replay finished")

	if err := runner.Verify(); err != nil {
		return summary, err
	}
	log.WithField("checksum", fmt.Sprintf("%016x", runner.Checksum())).Info("replay verified")
	return summary, nil
}
