// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/faceviewer/dashboard/models"
)

var (
	ErrBadParticipantID = errors.New("invalid participant id")
	ErrSessionNotFound  = errors.New("session not found")
)

// Canonical column order for session files. Legacy files with other header
// casings or column subsets are normalized on read, never rewritten.
var canonicalHeader = []string{
	"participant_id", "face_id", "version", "trust_rating",
	"emotion_rating", "masculinity", "femininity", "timestamp",
}

const sessionPrefix = "session_"

// Store persists response records as per-participant CSV session files
// under <dataDir>/responses.
type Store struct {
	dir string
}

// New creates the responses directory if needed and returns a Store.
func New(dataDir string) (*Store, error) {
	dir := filepath.Join(dataDir, "responses")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create responses dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the responses directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Append writes one response to the participant's session file, creating the
// file with the canonical header on first write. A missing ID is filled in.
func (s *Store) Append(rec models.Response) (models.Response, error) {
	if !validParticipantID(rec.ParticipantID) {
		return rec, ErrBadParticipantID
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	rec.Version = NormalizeVersion(rec.Version)

	path := s.sessionPath(rec.ParticipantID)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return rec, fmt.Errorf("failed to open session file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return rec, fmt.Errorf("failed to stat session file: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(canonicalHeader); err != nil {
			return rec, fmt.Errorf("failed to write header: %w", err)
		}
	}
	row := []string{
		rec.ParticipantID,
		rec.FaceID,
		rec.Version,
		strconv.Itoa(rec.TrustRating),
		strconv.Itoa(rec.EmotionRating),
		strconv.Itoa(rec.Masculinity),
		strconv.Itoa(rec.Femininity),
		rec.Timestamp.Format(time.RFC3339),
	}
	if err := w.Write(row); err != nil {
		return rec, fmt.Errorf("failed to write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return rec, fmt.Errorf("failed to flush row: %w", err)
	}

	return rec, nil
}

// Session parses one participant's session file. Returns the records plus
// the number of malformed rows skipped.
func (s *Store) Session(participantID string) ([]models.Response, int, error) {
	if !validParticipantID(participantID) {
		return nil, 0, ErrBadParticipantID
	}

	f, err := os.Open(s.sessionPath(participantID))
	if os.IsNotExist(err) {
		return nil, 0, ErrSessionNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open session file: %w", err)
	}
	defer f.Close()

	return parseSession(f, participantID)
}

// Sessions lists all session files, newest first.
func (s *Store) Sessions() ([]models.SessionInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read responses dir: %w", err)
	}

	sessions := []models.SessionInfo{}
	for _, e := range entries {
		pid, ok := participantFromFilename(e.Name())
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}

		recs, _, err := s.Session(pid)
		if err != nil {
			continue
		}

		sessions = append(sessions, models.SessionInfo{
			ParticipantID: pid,
			Rows:          len(recs),
			SizeBytes:     info.Size(),
			Size:          humanize.Bytes(uint64(info.Size())),
			ModifiedAt:    info.ModTime(),
			Age:           humanize.Time(info.ModTime()),
		})
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ModifiedAt.After(sessions[j].ModifiedAt)
	})
	return sessions, nil
}

// Summary aggregates all session files: response counts per version, mean
// trust per face and version, and the participant count.
func (s *Store) Summary() (models.Summary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return models.Summary{}, fmt.Errorf("failed to read responses dir: %w", err)
	}

	type faceKey struct {
		face, version string
	}
	versionCounts := map[string]int{}
	faceTotals := map[faceKey]int{}
	faceCounts := map[faceKey]int{}

	sum := models.Summary{GeneratedAt: time.Now()}
	for _, e := range entries {
		pid, ok := participantFromFilename(e.Name())
		if !ok {
			continue
		}
		recs, skipped, err := s.Session(pid)
		if err != nil {
			continue
		}
		sum.Participants++
		sum.SkippedRows += skipped
		for _, r := range recs {
			sum.Responses++
			versionCounts[r.Version]++
			k := faceKey{r.FaceID, r.Version}
			faceTotals[k] += r.TrustRating
			faceCounts[k]++
		}
	}

	for _, v := range versionKeys(versionCounts) {
		sum.VersionCounts = append(sum.VersionCounts, models.VersionCount{
			Version: v,
			Count:   versionCounts[v],
		})
	}

	keys := make([]faceKey, 0, len(faceCounts))
	for k := range faceCounts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].face != keys[j].face {
			return keys[i].face < keys[j].face
		}
		return keys[i].version < keys[j].version
	})
	for _, k := range keys {
		sum.FaceStats = append(sum.FaceStats, models.FaceStats{
			FaceID:    k.face,
			Version:   k.version,
			MeanTrust: float64(faceTotals[k]) / float64(faceCounts[k]),
			Count:     faceCounts[k],
		})
	}

	return sum, nil
}

func (s *Store) sessionPath(participantID string) string {
	return filepath.Join(s.dir, sessionPrefix+participantID+".csv")
}

func participantFromFilename(name string) (string, bool) {
	if !strings.HasPrefix(name, sessionPrefix) || !strings.HasSuffix(name, ".csv") {
		return "", false
	}
	pid := strings.TrimSuffix(strings.TrimPrefix(name, sessionPrefix), ".csv")
	if !validParticipantID(pid) {
		return "", false
	}
	return pid, true
}

// validParticipantID restricts ids to filename-safe characters, which also
// blocks path traversal through the id.
func validParticipantID(id string) bool {
	if id == "" {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}

func versionKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseSession(r io.Reader, participantID string) ([]models.Response, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // legacy files have uneven column counts

	header, err := cr.Read()
	if err == io.EOF {
		return []models.Response{}, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read header: %w", err)
	}
	idx := headerIndex(header)

	records := []models.Response{}
	skipped := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		rec, ok := rowToResponse(row, idx, participantID)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

// headerIndex maps canonical field names to column positions, absorbing the
// header variants the legacy generator scripts produced.
func headerIndex(header []string) map[string]int {
	aliases := map[string]string{
		"participant_id": "participant_id",
		"participant":    "participant_id",
		"pid":            "participant_id",
		"face_id":        "face_id",
		"face":           "face_id",
		"image_id":       "face_id",
		"version":        "version",
		"face_version":   "version",
		"trust_rating":   "trust_rating",
		"trust":          "trust_rating",
		"rating":         "trust_rating",
		"emotion_rating": "emotion_rating",
		"emotion":        "emotion_rating",
		"masculinity":    "masculinity",
		"femininity":     "femininity",
		"timestamp":      "timestamp",
		"submitted_at":   "timestamp",
	}

	idx := map[string]int{}
	for i, h := range header {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
		if canonical, ok := aliases[key]; ok {
			if _, dup := idx[canonical]; !dup {
				idx[canonical] = i
			}
		}
	}
	return idx
}

func rowToResponse(row []string, idx map[string]int, participantID string) (models.Response, bool) {
	field := func(name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := models.Response{
		ParticipantID: participantID,
		FaceID:        field("face_id"),
		Version:       NormalizeVersion(field("version")),
	}
	if pid := field("participant_id"); pid != "" {
		rec.ParticipantID = pid
	}

	trust, err := strconv.Atoi(field("trust_rating"))
	if err != nil {
		return rec, false
	}
	rec.TrustRating = trust

	// Optional ratings parse as zero values when absent or malformed
	rec.EmotionRating, _ = strconv.Atoi(field("emotion_rating"))
	rec.Masculinity, _ = strconv.Atoi(field("masculinity"))
	rec.Femininity, _ = strconv.Atoi(field("femininity"))

	if ts := field("timestamp"); ts != "" {
		rec.Timestamp = parseTimestamp(ts)
	}

	return rec, true
}

func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// NormalizeVersion maps the legacy version labels to the canonical set.
// Unknown labels pass through lowercased so they stay visible in summaries.
func NormalizeVersion(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "full", "full face", "full_face":
		return models.VersionFull
	case "left", "left half", "left_half":
		return models.VersionLeft
	case "right", "right half", "right_half":
		return models.VersionRight
	default:
		return strings.ToLower(strings.TrimSpace(v))
	}
}
