// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/faceviewer/dashboard/models"
)

func TestSubmitResponse(t *testing.T) {
	st := setupTestStore(t)
	handler := NewResponseHandler(st, setupTestAudit(t), getTestConfig())

	form := url.Values{
		"participant_id": {"101"},
		"face_id":        {"face_03"},
		"version":        {"Full Face"},
		"trust_rating":   {"7"},
		"emotion_rating": {"4"},
	}

	before := time.Now()
	w := httptest.NewRecorder()
	handler.SubmitResponse(w, makeFormRequest("/submit_response", form))

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d. Body: %s", w.Code, w.Body.String())
	}

	var resp models.SubmitResponseResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.ParticipantID != "101" {
		t.Errorf("Expected participant '101', got %q", resp.ParticipantID)
	}
	if resp.ResponseID == "" {
		t.Error("Expected a response ID")
	}

	// The CSV row must reproduce the submission exactly
	records, skipped, err := st.Session("101")
	if err != nil {
		t.Fatalf("Session read failed: %v", err)
	}
	if skipped != 0 {
		t.Errorf("Expected 0 skipped rows, got %d", skipped)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.ParticipantID != "101" || rec.FaceID != "face_03" {
		t.Errorf("Record mismatch: %+v", rec)
	}
	if rec.Version != models.VersionFull {
		t.Errorf("Expected normalized version 'full', got %q", rec.Version)
	}
	if rec.TrustRating != 7 || rec.EmotionRating != 4 {
		t.Errorf("Rating mismatch: trust=%d emotion=%d", rec.TrustRating, rec.EmotionRating)
	}
	if rec.Timestamp.Before(before.Add(-2*time.Second)) || rec.Timestamp.After(time.Now().Add(2*time.Second)) {
		t.Errorf("Timestamp outside tolerance: %v", rec.Timestamp)
	}
}

func TestSubmitResponse_Validation(t *testing.T) {
	handler := NewResponseHandler(setupTestStore(t), setupTestAudit(t), getTestConfig())

	valid := url.Values{
		"participant_id": {"101"},
		"face_id":        {"face_01"},
		"version":        {"full"},
		"trust_rating":   {"5"},
	}

	tests := []struct {
		name   string
		mutate func(url.Values)
	}{
		{"missing participant_id", func(f url.Values) { f.Del("participant_id") }},
		{"missing face_id", func(f url.Values) { f.Del("face_id") }},
		{"bad version", func(f url.Values) { f.Set("version", "sideways") }},
		{"missing trust_rating", func(f url.Values) { f.Del("trust_rating") }},
		{"trust_rating not a number", func(f url.Values) { f.Set("trust_rating", "yes") }},
		{"trust_rating too low", func(f url.Values) { f.Set("trust_rating", "0") }},
		{"trust_rating too high", func(f url.Values) { f.Set("trust_rating", "10") }},
		{"participant_id with path chars", func(f url.Values) { f.Set("participant_id", "../etc") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{}
			for k, v := range valid {
				form[k] = append([]string{}, v...)
			}
			tt.mutate(form)

			w := httptest.NewRecorder()
			handler.SubmitResponse(w, makeFormRequest("/submit_response", form))

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d. Body: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestSubmitResponse_AppendsToExistingSession(t *testing.T) {
	st := setupTestStore(t)
	handler := NewResponseHandler(st, setupTestAudit(t), getTestConfig())

	for _, face := range []string{"face_01", "face_02"} {
		form := url.Values{
			"participant_id": {"201"},
			"face_id":        {face},
			"version":        {"left"},
			"trust_rating":   {"6"},
		}
		w := httptest.NewRecorder()
		handler.SubmitResponse(w, makeFormRequest("/submit_response", form))
		if w.Code != http.StatusCreated {
			t.Fatalf("Submit for %s failed with %d", face, w.Code)
		}
	}

	records, _, err := st.Session("201")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Errorf("Expected 2 records in one session file, got %d", len(records))
	}
}

func TestListSessions(t *testing.T) {
	st := setupTestStore(t)
	handler := NewResponseHandler(st, setupTestAudit(t), getTestConfig())

	if _, err := st.Append(models.Response{ParticipantID: "301", FaceID: "f1", Version: "full", TrustRating: 5}); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	handler.ListSessions(w, httptest.NewRequest("GET", "/api/sessions", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var sessions []models.SessionInfo
	if err := json.NewDecoder(w.Body).Decode(&sessions); err != nil {
		t.Fatalf("Failed to decode sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(sessions))
	}
	if sessions[0].ParticipantID != "301" {
		t.Errorf("Expected participant '301', got %q", sessions[0].ParticipantID)
	}
}

func TestGetSession(t *testing.T) {
	st := setupTestStore(t)
	handler := NewResponseHandler(st, setupTestAudit(t), getTestConfig())

	if _, err := st.Append(models.Response{ParticipantID: "401", FaceID: "f1", Version: "right", TrustRating: 8}); err != nil {
		t.Fatal(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/sessions/{id}", handler.GetSession)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{"existing session", "/api/sessions/401", http.StatusOK},
		{"missing session", "/api/sessions/999", http.StatusNotFound},
		{"bad participant id", "/api/sessions/bad%20id", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", tt.path, nil))
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/sessions/401", nil))
	var detail models.SessionDetail
	if err := json.NewDecoder(w.Body).Decode(&detail); err != nil {
		t.Fatalf("Failed to decode session detail: %v", err)
	}
	if len(detail.Responses) != 1 || detail.Responses[0].TrustRating != 8 {
		t.Errorf("Unexpected session detail: %+v", detail)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	st := setupTestStore(t)
	handler := NewResponseHandler(st, setupTestAudit(t), getTestConfig())

	seed := []models.Response{
		{ParticipantID: "501", FaceID: "f1", Version: "full", TrustRating: 4},
		{ParticipantID: "501", FaceID: "f1", Version: "full", TrustRating: 6},
		{ParticipantID: "502", FaceID: "f2", Version: "left", TrustRating: 9},
	}
	for _, r := range seed {
		if _, err := st.Append(r); err != nil {
			t.Fatal(err)
		}
	}

	w := httptest.NewRecorder()
	handler.Summary(w, httptest.NewRequest("GET", "/api/summary", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var sum models.Summary
	if err := json.NewDecoder(w.Body).Decode(&sum); err != nil {
		t.Fatalf("Failed to decode summary: %v", err)
	}
	if sum.Participants != 2 || sum.Responses != 3 {
		t.Errorf("Unexpected summary totals: %+v", sum)
	}
}
