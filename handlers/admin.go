// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/faceviewer/dashboard/audit"
	"github.com/faceviewer/dashboard/auth"
	"github.com/faceviewer/dashboard/cliparse"
	"github.com/faceviewer/dashboard/envcheck"
	"github.com/faceviewer/dashboard/middleware"
	"github.com/faceviewer/dashboard/models"
)

// Session tokens are valid for 12 hours
const sessionTTL = 12 * time.Hour

type AdminHandler struct {
	users *auth.UserStore
	perms auth.Permissions
	aud   *audit.Logger
	cfg   cliparse.Config
}

func NewAdminHandler(users *auth.UserStore, perms auth.Permissions, aud *audit.Logger, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{users: users, perms: perms, aud: aud, cfg: cfg}
}

// Login handles POST /api/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.users.Authenticate(req.Username, req.Password)
	if err != nil {
		slog.Info("login rejected", "user", req.Username, "remote", middleware.GetClientIP(r))
		h.aud.Record(r.Context(), audit.Event{
			Type:    audit.EventLoginFailed,
			Actor:   req.Username,
			Success: false,
		})
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	expiresAt := time.Now().Add(sessionTTL)
	token := auth.SignSession(user.Username, expiresAt, h.cfg.SecretKey)

	slog.Info("login", "user", user.Username, "role", user.Role)
	h.aud.Record(r.Context(), audit.Event{
		Type:    audit.EventLogin,
		Actor:   user.Username,
		Success: true,
	})

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token:     token,
		Role:      user.Role,
		ExpiresAt: expiresAt,
	})
}

// Env handles GET /api/env
// Re-runs the environment check and returns the redacted report.
func (h *AdminHandler) Env(w http.ResponseWriter, r *http.Request) {
	if !h.requireAction(w, r, auth.ActionViewSessions) {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, envcheck.Check(h.cfg.DataDir))
}

// Audit handles GET /api/audit?limit=N
func (h *AdminHandler) Audit(w http.ResponseWriter, r *http.Request) {
	if !h.requireAction(w, r, auth.ActionManageUsers) {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	events, err := h.aud.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("failed to read audit log", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read audit log")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, events)
}

// requireAction validates the bearer session token and checks the user's
// role against permissions.json.
func (h *AdminHandler) requireAction(w http.ResponseWriter, r *http.Request, action string) bool {
	token := bearerToken(r)
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Missing session token")
		return false
	}

	username, err := auth.ValidateSession(token, h.cfg.SecretKey)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired session token")
		return false
	}

	user, ok := h.users.Get(username)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unknown user")
		return false
	}
	if !h.perms.Can(user.Role, action) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Role not permitted")
		return false
	}
	return true
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	authz := r.Header.Get("Authorization")
	if len(authz) > len(prefix) && authz[:len(prefix)] == prefix {
		return authz[len(prefix):]
	}
	return ""
}
