// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/faceviewer/dashboard/audit"
	"github.com/faceviewer/dashboard/auth"
	"github.com/faceviewer/dashboard/cliparse"
	"github.com/faceviewer/dashboard/handlers"
	"github.com/faceviewer/dashboard/middleware"
	"github.com/faceviewer/dashboard/store"
)

func NewRouter(st *store.Store, aud *audit.Logger, users *auth.UserStore, perms auth.Permissions, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(st, cfg)

	// Root and health are served in every mode. The {$} keeps the root
	// pattern from swallowing every unmatched path.
	mux.HandleFunc("GET /{$}", dashboardHandler.Root)
	mux.HandleFunc("GET /health", dashboardHandler.Health)

	// Fallback mode: port-bind diagnostics only, nothing else registered
	if cfg.Fallback {
		return mux
	}

	responseHandler := handlers.NewResponseHandler(st, aud, cfg)
	adminHandler := handlers.NewAdminHandler(users, perms, aud, cfg)

	// Dashboard and submission (public)
	mux.HandleFunc("GET /dashboard", middleware.WithLogging(dashboardHandler.Dashboard))
	mux.HandleFunc("POST /submit_response", middleware.WithLogging(responseHandler.SubmitResponse))

	// Machine API (X-Admin-Key)
	mux.HandleFunc("GET /api/sessions", middleware.WithLogging(middleware.RequireAPIKey(cfg.AdminAPIKey, responseHandler.ListSessions)))
	mux.HandleFunc("GET /api/sessions/{id}", middleware.WithLogging(middleware.RequireAPIKey(cfg.AdminAPIKey, responseHandler.GetSession)))
	mux.HandleFunc("GET /api/summary", middleware.WithLogging(middleware.RequireAPIKey(cfg.AdminAPIKey, responseHandler.Summary)))

	// Admin API (session token)
	mux.HandleFunc("POST /api/login", middleware.WithLogging(adminHandler.Login))
	mux.HandleFunc("GET /api/env", middleware.WithLogging(adminHandler.Env))
	mux.HandleFunc("GET /api/audit", middleware.WithLogging(adminHandler.Audit))

	return mux
}
