// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Face Viewer Dashboard server.

The dashboard displays survey results from the facial trust study: per
participant session files of CSV response records, aggregated into counts
per face version and mean trust per face.

# Starting the Server

The server reads configuration from a .env file, environment variables,
or CLI flags:

	DASHBOARD_SECRET_KEY=... go run main.go

Or with flags:

	go run main.go -p 8050 -data ./data -secret dev-secret

# Configuration

Required settings:

  - DASHBOARD_SECRET_KEY (-secret): secret for session token HMAC

Optional settings:

  - PORT (-p): server port (default: 8050)
  - FACE_VIEWER_DATA_DIR (-data): data directory (default: ./data)
  - FACE_VIEWER_BACKEND_URL (-backend): study application URL
  - ADMIN_API_KEY (-admin-key): enables the machine API
  - -fallback: serve only / and /health for port-bind diagnostics

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (dashboard, responses, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: API-key guard, CORS, logging, JSON helpers
  - models: Request/response and domain types
  - store: Canonical-schema CSV session files
  - auth: Admin users, session tokens, permissions
  - audit: sqlite event log
  - envcheck: Environment validation with structured statuses
  - cliparse: Configuration parsing
  - supervisor: Child process supervision (used by cmd/supervise)

See package documentation for each component.
*/
package main
