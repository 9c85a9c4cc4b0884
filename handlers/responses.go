// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/faceviewer/dashboard/audit"
	"github.com/faceviewer/dashboard/cliparse"
	"github.com/faceviewer/dashboard/middleware"
	"github.com/faceviewer/dashboard/models"
	"github.com/faceviewer/dashboard/store"
)

type ResponseHandler struct {
	store *store.Store
	aud   *audit.Logger
	cfg   cliparse.Config
}

func NewResponseHandler(st *store.Store, aud *audit.Logger, cfg cliparse.Config) *ResponseHandler {
	return &ResponseHandler{store: st, aud: aud, cfg: cfg}
}

// SubmitResponse handles POST /submit_response
// Accepts a form-encoded body from the study application and appends one
// canonical CSV row to the participant's session file.
func (h *ResponseHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form body")
		return
	}

	participantID := r.PostFormValue("participant_id")
	if participantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "participant_id is required")
		return
	}
	faceID := r.PostFormValue("face_id")
	if faceID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "face_id is required")
		return
	}
	version := store.NormalizeVersion(r.PostFormValue("version"))
	if version != models.VersionFull && version != models.VersionLeft && version != models.VersionRight {
		middleware.ErrorResponse(w, http.StatusBadRequest, "version must be one of: full, left, right")
		return
	}

	trust, err := strconv.Atoi(r.PostFormValue("trust_rating"))
	if err != nil || trust < models.TrustMin || trust > models.TrustMax {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("trust_rating must be an integer between %d and %d", models.TrustMin, models.TrustMax))
		return
	}

	rec := models.Response{
		ParticipantID: participantID,
		FaceID:        faceID,
		Version:       version,
		TrustRating:   trust,
	}
	// Optional ratings: absent or malformed values stay zero
	rec.EmotionRating, _ = strconv.Atoi(r.PostFormValue("emotion_rating"))
	rec.Masculinity, _ = strconv.Atoi(r.PostFormValue("masculinity"))
	rec.Femininity, _ = strconv.Atoi(r.PostFormValue("femininity"))

	rec, err = h.store.Append(rec)
	if err == store.ErrBadParticipantID {
		middleware.ErrorResponse(w, http.StatusBadRequest, "participant_id contains invalid characters")
		return
	}
	if err != nil {
		slog.Error("failed to write response", "error", err, "participant", participantID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save response")
		return
	}

	slog.Info("response recorded",
		"participant", rec.ParticipantID,
		"face", rec.FaceID,
		"version", rec.Version,
	)
	h.aud.Record(r.Context(), audit.Event{
		Type:     audit.EventResponseWritten,
		EntityID: rec.ParticipantID,
		Detail:   rec.FaceID + "/" + rec.Version,
		Success:  true,
	})

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponseResponse{
		ResponseID:    rec.ID,
		ParticipantID: rec.ParticipantID,
		Message:       "Response recorded",
	})
}

// ListSessions handles GET /api/sessions
func (h *ResponseHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.Sessions()
	if err != nil {
		slog.Error("failed to list sessions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, sessions)
}

// GetSession handles GET /api/sessions/{id}
func (h *ResponseHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	participantID := r.PathValue("id")
	if participantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "participant id is required")
		return
	}

	responses, skipped, err := h.store.Session(participantID)
	if err == store.ErrSessionNotFound {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err == store.ErrBadParticipantID {
		middleware.ErrorResponse(w, http.StatusBadRequest, "participant id contains invalid characters")
		return
	}
	if err != nil {
		slog.Error("failed to read session", "error", err, "participant", participantID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionDetail{
		ParticipantID: participantID,
		Responses:     responses,
		SkippedRows:   skipped,
	})
}

// Summary handles GET /api/summary
func (h *ResponseHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.store.Summary()
	if err != nil {
		slog.Error("failed to compute summary", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute summary")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, summary)
}
