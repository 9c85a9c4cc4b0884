package models

import "time"

// Canonical face version labels
const (
	VersionFull  = "full"
	VersionLeft  = "left"
	VersionRight = "right"
)

// Trust rating bounds (1-9 scale used by the study)
const (
	TrustMin = 1
	TrustMax = 9
)

// Request types

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Response types

type SubmitResponseResponse struct {
	ResponseID    string `json:"response_id"`
	ParticipantID string `json:"participant_id"`
	Message       string `json:"message"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// Domain types

// Response is one participant's rating of one stimulus, persisted as a
// single CSV row in the participant's session file.
type Response struct {
	ID            string    `json:"id"`
	ParticipantID string    `json:"participant_id"`
	FaceID        string    `json:"face_id"`
	Version       string    `json:"version"`
	TrustRating   int       `json:"trust_rating"`
	EmotionRating int       `json:"emotion_rating,omitempty"`
	Masculinity   int       `json:"masculinity,omitempty"`
	Femininity    int       `json:"femininity,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// SessionInfo describes one participant's session file on disk.
type SessionInfo struct {
	ParticipantID string    `json:"participant_id"`
	Rows          int       `json:"rows"`
	SizeBytes     int64     `json:"size_bytes"`
	Size          string    `json:"size"`
	ModifiedAt    time.Time `json:"modified_at"`
	Age           string    `json:"age"`
}

type SessionDetail struct {
	ParticipantID string     `json:"participant_id"`
	Responses     []Response `json:"responses"`
	SkippedRows   int        `json:"skipped_rows,omitempty"`
}

// Summary types (aggregation served by /api/summary and the dashboard)

type VersionCount struct {
	Version string `json:"version"`
	Count   int    `json:"count"`
}

type FaceStats struct {
	FaceID    string  `json:"face_id"`
	Version   string  `json:"version"`
	MeanTrust float64 `json:"mean_trust"`
	Count     int     `json:"count"`
}

type Summary struct {
	Participants  int            `json:"participants"`
	Responses     int            `json:"responses"`
	SkippedRows   int            `json:"skipped_rows,omitempty"`
	VersionCounts []VersionCount `json:"version_counts"`
	FaceStats     []FaceStats    `json:"face_stats"`
	GeneratedAt   time.Time      `json:"generated_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
