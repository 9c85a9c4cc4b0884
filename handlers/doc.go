// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Face Viewer
Dashboard.

# Handler Types

Each handler is a struct with its dependencies injected via a constructor:

  - DashboardHandler: root redirect, health check, rendered dashboard
  - ResponseHandler: response submission and session/summary retrieval
  - AdminHandler: login, environment report, audit log

	respHandler := handlers.NewResponseHandler(store, auditLog, cfg)

# Public Surface

	GET  /                → redirect to /dashboard (static page in -fallback mode)
	GET  /health          → {"status":"healthy"}
	GET  /dashboard       → rendered HTML summary
	POST /submit_response → form-encoded body, one CSV row per call

The dashboard renders from html/template; if rendering fails, an inline
fallback page is served that never includes the underlying error text.

# Machine API

Guarded by the X-Admin-Key header (middleware.RequireAPIKey):

	GET /api/sessions      → session listing
	GET /api/sessions/{id} → one parsed session
	GET /api/summary       → aggregation

# Admin API

POST /api/login exchanges credentials for an HMAC session token; the
token then authorizes, subject to permissions.json roles:

	GET /api/env   → redacted environment report
	GET /api/audit → recent audit events (manage_users roles only)
*/
package handlers
