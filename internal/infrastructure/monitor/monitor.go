// Package monitor wires the process-wide logging, crash reporting and
// runtime statistics of the binaries.
package monitor

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/sirupsen/logrus"
	"github.com/younwookim/voxelmove/internal/infrastructure/config"
)

// exit is replaced in tests
var exit = os.Exit

// NewLogger creates the process logger writing to out
func NewLogger(out io.Writer, json, verbose bool) *logrus.Logger {
	lg := logrus.New()
	lg.SetOutput(out)
	if json {
		lg.Formatter = &logrus.JSONFormatter{}
	} else {
		lg.Formatter = &logrus.TextFormatter{
			ForceColors:     true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		}
	}
	if verbose {
		lg.SetLevel(logrus.DebugLevel)
	}
	return lg
}

// InitSentry enables crash reporting when a DSN is configured. It reports
// whether reporting is active.
func InitSentry(cfg config.SentryConfig, release string) (bool, error) {
	if cfg.DSN == "" {
		return false, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     release,
	})
	if err != nil {
		return false, fmt.Errorf("failed to init sentry: %w", err)
	}
	return true, nil
}

// Recover is deferred at the top of main. A panic is logged, reported with
// the binary tagged, flushed, and ends the process with status 1.
func Recover(log logrus.FieldLogger, binary string) {
	err := recover()
	if err == nil {
		return
	}

	log.WithField("binary", binary).Errorf("panic: %v", err)
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("binary", binary)
	})
	hub.Recover(err)
	hub.Flush(time.Second * 5)

	exit(1)
}

// StartStatsView serves runtime statistics on addr in the background
func StartStatsView(addr string) {
	viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(addr))

	mgr := statsview.New()
	go mgr.Start()
}
