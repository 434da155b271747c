package main

import (
	"flag"
	"io/fs"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"github.com/younwookim/voxelmove/internal/application/game"
	"github.com/younwookim/voxelmove/internal/application/scene/playing"
	"github.com/younwookim/voxelmove/internal/application/system"
	"github.com/younwookim/voxelmove/internal/infrastructure/config"
	"github.com/younwookim/voxelmove/internal/infrastructure/monitor"
)

func main() {
	configPath := flag.String("config", "", "Configuration file read instead of the embedded game.yaml")
	worldName := flag.String("world", "demo", "World to load from configs/worlds")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	statsAddr := flag.String("statsview", "", "Serve runtime statistics on this address (e.g., localhost:18066)")
	logJSON := flag.Bool("log-json", false, "Log as JSON")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	log := monitor.NewLogger(os.Stderr, *logJSON, *verbose)

	// Load configurations using embedded filesystem
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		log.WithError(err).Fatal("failed to get config subfs")
	}
	cfg, err := config.NewFSLoader(fsys, "configs").LoadOverride(*configPath, *worldName)
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	if enabled, err := monitor.InitSentry(cfg.Sentry, "client"); err != nil {
		log.WithError(err).Warn("crash reporting disabled")
	} else if enabled {
		defer sentry.Flush(2 * time.Second)
	}
	defer monitor.Recover(log, "client")

	if *statsAddr != "" {
		monitor.StartStatsView(*statsAddr)
		log.WithField("addr", *statsAddr).Info("statsview started")
	}

	blocks, err := system.LoadWorld(&cfg.World)
	if err != nil {
		log.WithError(err).Fatal("failed to load world")
	}
	log.WithFields(logrus.Fields{
		"world":  cfg.World.Name,
		"chunks": blocks.LoadedChunks(),
		"blocks": blocks.Palette().Len(),
	}).Info("world loaded")

	scene, err := playing.New(cfg, blocks, *recordFlag, log)
	if err != nil {
		log.WithError(err).Fatal("failed to create scene")
	}

	g := game.New(scene, cfg.Display.Width, cfg.Display.Height, log)
	g.SetDelta(cfg.Physics.TicksPerSecond / float64(cfg.Display.TPS))
	defer g.Close()

	ebiten.SetWindowSize(cfg.Display.Width*cfg.Display.Scale, cfg.Display.Height*cfg.Display.Scale)
	ebiten.SetWindowTitle(cfg.Display.Title)
	ebiten.SetTPS(cfg.Display.TPS)

	if err := ebiten.RunGame(g); err != nil {
		log.WithError(err).Error("game stopped")
	}
}
