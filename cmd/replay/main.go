package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/younwookim/voxelmove/internal/infrastructure/config"
	"github.com/younwookim/voxelmove/internal/infrastructure/monitor"
)

func main() {
	var opts options
	flag.StringVar(&opts.configDir, "configs", "cmd/client/configs", "Directory holding game.yaml and worlds/")
	flag.StringVar(&opts.configPath, "config", "", "Configuration file read instead of game.yaml")
	flag.StringVar(&opts.tracePath, "trace", "", "Write a per-tick CSV trace to this file")
	logJSON := flag.Bool("log-json", false, "Log as JSON")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] replay.json\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	opts.replayPath = flag.Arg(0)

	log := monitor.NewLogger(os.Stderr, *logJSON, *verbose)

	// Crash reporting uses the defaults overlaid with the override file, if any
	if cfg, err := config.Load(opts.configPath); err == nil {
		if enabled, err := monitor.InitSentry(cfg.Sentry, "replay"); err != nil {
			log.WithError(err).Warn("crash reporting disabled")
		} else if enabled {
			defer sentry.Flush(2 * time.Second)
		}
	}
	defer monitor.Recover(log, "replay")

	if _, err := run(opts, log); err != nil {
		log.WithError(err).Error("replay failed")
		os.Exit(1)
	}
}
