// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration parsing for the dashboard server.

Configuration comes from CLI flags with environment variable fallbacks:

	-p        / PORT                     server port (default 8050)
	-data     / FACE_VIEWER_DATA_DIR     data directory
	-backend  / FACE_VIEWER_BACKEND_URL  study application base URL
	-secret   / DASHBOARD_SECRET_KEY     session token secret (required)
	-admin-key / ADMIN_API_KEY           admin API key (optional)
	-fallback                            diagnostics-only serve mode

CLI flags take precedence over environment variables. The dashboard secret
is the only required setting; everything else has a default. An empty data
directory is resolved (and created if needed) by the envcheck package at
startup rather than here, so cliparse never touches the filesystem.
*/
package cliparse
