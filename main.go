package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/faceviewer/dashboard/audit"
	"github.com/faceviewer/dashboard/auth"
	"github.com/faceviewer/dashboard/cliparse"
	"github.com/faceviewer/dashboard/envcheck"
	"github.com/faceviewer/dashboard/middleware"
	"github.com/faceviewer/dashboard/router"
	"github.com/faceviewer/dashboard/store"
)

func main() {
	// Load .env if present (development convenience, no error if missing)
	godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Validate the environment and resolve the data directory
	report := envcheck.Check(cfg.DataDir)
	for _, v := range report.Vars {
		slog.Info("env check", "var", v.Name, "status", v.Status, "detail", v.Detail)
	}
	if report.Fatal() {
		slog.Error("environment check failed, refusing to start")
		os.Exit(1)
	}
	cfg.DataDir = report.DataDir

	// Open the response store
	st, err := store.New(cfg.DataDir)
	if err != nil {
		slog.Error("store initialization failed", "error", err)
		os.Exit(1)
	}

	// Open the audit log
	aud, err := audit.Open(filepath.Join(cfg.DataDir, "audit.db"))
	if err != nil {
		slog.Error("audit db initialization failed", "error", err)
		os.Exit(1)
	}
	defer aud.Close()

	// Load admin users and permissions (seeded on first run)
	users, err := auth.Bootstrap(filepath.Join(cfg.DataDir, "admin_users.json"))
	if err != nil {
		slog.Error("admin user bootstrap failed", "error", err)
		os.Exit(1)
	}
	perms, err := auth.LoadPermissions(filepath.Join(cfg.DataDir, "permissions.json"))
	if err != nil {
		slog.Error("permissions load failed", "error", err)
		os.Exit(1)
	}

	// Create router
	mux := router.NewRouter(st, aud, users, perms, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "data_dir", cfg.DataDir, "fallback", cfg.Fallback)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
