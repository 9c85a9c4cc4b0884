package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port        int
	DataDir     string
	BackendURL  string
	SecretKey   string
	AdminAPIKey string
	Fallback    bool
}

// DefaultPort is used when neither -p nor PORT is provided.
const DefaultPort = 8050

// DefaultBackendURL points at the study application in local development.
const DefaultBackendURL = "http://localhost:8080"

// ParseFlags validates flags and applies environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("face-viewer-dashboard", flag.ContinueOnError)

	// Network and path config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DataDir, "data", "", "Data directory (responses, admin users, audit db)")
	fs.StringVar(&cfg.BackendURL, "backend", "", "Study application base URL")
	fs.BoolVar(&cfg.Fallback, "fallback", false, "Serve only / and /health (port-bind diagnostics)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SecretKey, "secret", "", "Dashboard secret key (prefer env)")
	fs.StringVar(&cfg.AdminAPIKey, "admin-key", "", "Admin API key (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.DataDir == "" {
		cfg.DataDir = os.Getenv("FACE_VIEWER_DATA_DIR")
	}
	// An empty DataDir is resolved by envcheck at startup (default under cwd).

	if cfg.BackendURL == "" {
		cfg.BackendURL = os.Getenv("FACE_VIEWER_BACKEND_URL")
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = DefaultBackendURL
	}

	// Secrets - the dashboard secret MUST be provided
	if cfg.SecretKey == "" {
		cfg.SecretKey = os.Getenv("DASHBOARD_SECRET_KEY")
	}
	if cfg.SecretKey == "" {
		return Config{}, errors.New("DASHBOARD_SECRET_KEY required")
	}

	// Optional: without it the admin API surface stays disabled
	if cfg.AdminAPIKey == "" {
		cfg.AdminAPIKey = os.Getenv("ADMIN_API_KEY")
	}

	return cfg, nil
}
