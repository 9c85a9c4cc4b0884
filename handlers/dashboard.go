// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/faceviewer/dashboard/cliparse"
	"github.com/faceviewer/dashboard/middleware"
	"github.com/faceviewer/dashboard/models"
	"github.com/faceviewer/dashboard/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// fallbackHTML is served when the dashboard template fails to render.
// It deliberately carries no error detail; the error goes to the log only.
const fallbackHTML = `<!DOCTYPE html>
<html>
<head><title>Face Viewer Dashboard</title></head>
<body>
<h1>Face Viewer Dashboard</h1>
<p>The dashboard is running but could not render the full view.
Check the server log for details.</p>
<p><a href="/health">Health check</a></p>
</body>
</html>`

// diagnosticHTML is the entire surface of -fallback mode.
const diagnosticHTML = `<!DOCTYPE html>
<html>
<head><title>Face Viewer Dashboard (fallback)</title></head>
<body>
<h1>Face Viewer Dashboard</h1>
<p>Fallback server is up and bound to its port.</p>
</body>
</html>`

type DashboardHandler struct {
	store *store.Store
	cfg   cliparse.Config
	tmpl  *template.Template
}

func NewDashboardHandler(st *store.Store, cfg cliparse.Config) *DashboardHandler {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		// Embedded templates failing to parse is a build defect; the
		// handler still works through the fallback page.
		slog.Error("failed to parse dashboard templates", "error", err)
	}
	return &DashboardHandler{store: st, cfg: cfg, tmpl: tmpl}
}

// Root handles GET /
func (h *DashboardHandler) Root(w http.ResponseWriter, r *http.Request) {
	if h.cfg.Fallback {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(diagnosticHTML))
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// Health handles GET /health
func (h *DashboardHandler) Health(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{Status: "healthy"})
}

type dashboardData struct {
	Summary    models.Summary
	Sessions   []models.SessionInfo
	BackendURL string
}

// Dashboard handles GET /dashboard
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := dashboardData{BackendURL: h.cfg.BackendURL}

	summary, err := h.store.Summary()
	if err != nil {
		slog.Error("failed to compute summary", "error", err)
		h.serveFallback(w)
		return
	}
	data.Summary = summary

	sessions, err := h.store.Sessions()
	if err != nil {
		slog.Error("failed to list sessions", "error", err)
		h.serveFallback(w)
		return
	}
	data.Sessions = sessions

	if h.tmpl == nil {
		h.serveFallback(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		slog.Error("failed to render dashboard", "error", err)
	}
}

func (h *DashboardHandler) serveFallback(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(fallbackHTML))
}
