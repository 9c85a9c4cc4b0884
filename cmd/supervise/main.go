// Command supervise launches the dashboard server and the study backend
// as child processes and keeps the operator informed of their liveness.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/faceviewer/dashboard/audit"
	"github.com/faceviewer/dashboard/envcheck"
	"github.com/faceviewer/dashboard/supervisor"
)

func main() {
	configPath := flag.String("c", "supervise.yaml", "Path to the supervise config file")
	flag.Parse()

	cfg, err := supervisor.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Error loading config", "error", err)
		os.Exit(1)
	}

	// The supervisor shares the dashboard's data dir for audit records
	report := envcheck.Check("")
	var aud *audit.Logger
	if report.DataDir != "" {
		aud, err = audit.Open(filepath.Join(report.DataDir, "audit.db"))
		if err != nil {
			slog.Warn("audit db unavailable, continuing without it", "error", err)
			aud = nil
		} else {
			defer aud.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sup := supervisor.New(cfg.StartupWait(), cfg.PollInterval())

	for _, spec := range cfg.Processes {
		p, err := sup.Start(ctx, spec)
		if err != nil {
			slog.Error("process failed to start", "name", spec.Name, "error", err)
			sup.TerminateAll()
			os.Exit(1)
		}
		if aud != nil {
			aud.Record(ctx, audit.Event{
				Type:     audit.EventSupervisorStart,
				EntityID: spec.Name,
				Detail:   spec.Command,
				Success:  true,
			})
		}
		slog.Info("process running", "name", p.Name, "pid", p.PID())
	}

	// Blocks until a process exits or the operator interrupts
	if err := sup.Monitor(ctx); err != nil {
		slog.Error("supervision ended", "error", err)
		sup.TerminateAll()
		os.Exit(1)
	}

	slog.Info("all processes terminated")
}
