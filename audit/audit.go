// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Event types recorded by the dashboard
const (
	EventLogin           = "login"
	EventLoginFailed     = "login_failed"
	EventResponseWritten = "response_written"
	EventSupervisorStart = "supervisor_start"
)

// Event is one domain-level occurrence worth keeping.
type Event struct {
	Type     string `json:"type"`
	EntityID string `json:"entity_id,omitempty"`
	Actor    string `json:"actor,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Success  bool   `json:"success"`
}

// StoredEvent is an Event as read back from the database.
type StoredEvent struct {
	ID        string    `json:"id"`
	Event
	CreatedAt time.Time `json:"created_at"`
}

// Logger records events to a sqlite database.
type Logger struct {
	db *sql.DB
}

// Open opens (creating if needed) the audit database at path.
func Open(path string) (*Logger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create audit schema: %w", err)
	}
	return &Logger{db: db}, nil
}

func (l *Logger) Close() error {
	return l.db.Close()
}

// Record writes one event. Failures are logged and swallowed so a broken
// audit store never blocks a request.
func (l *Logger) Record(ctx context.Context, e Event) {
	success := 0
	if e.Success {
		success = 1
	}
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO audit_events (id, event_type, entity_id, actor, detail, success, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), e.Type, e.EntityID, e.Actor, e.Detail, success, time.Now().Unix())
	if err != nil {
		slog.Error("audit record failed", "error", err, "event_type", e.Type)
	}
}

// Recent returns up to limit events, newest first.
func (l *Logger) Recent(ctx context.Context, limit int) ([]StoredEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, event_type, entity_id, actor, detail, success, created_at
		FROM audit_events
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}
	defer rows.Close()

	events := []StoredEvent{}
	for rows.Next() {
		var (
			e       StoredEvent
			success int
			created int64
		)
		if err := rows.Scan(&e.ID, &e.Type, &e.EntityID, &e.Actor, &e.Detail, &success, &created); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		e.Success = success == 1
		e.CreatedAt = time.Unix(created, 0)
		events = append(events, e)
	}
	return events, rows.Err()
}
