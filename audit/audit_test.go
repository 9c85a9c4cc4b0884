// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package audit

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestLogger(t *testing.T) *Logger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("Failed to open audit db: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRecordAndRecent(t *testing.T) {
	l := openTestLogger(t)
	ctx := context.Background()

	l.Record(ctx, Event{Type: EventLogin, Actor: "admin", Success: true})
	l.Record(ctx, Event{Type: EventResponseWritten, EntityID: "101", Detail: "face_01/full", Success: true})
	l.Record(ctx, Event{Type: EventLoginFailed, Actor: "admin", Success: false})

	events, err := l.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}

	types := map[string]bool{}
	for _, e := range events {
		types[e.Type] = true
		if e.ID == "" {
			t.Error("Stored event should have an ID")
		}
		if e.CreatedAt.IsZero() {
			t.Error("Stored event should have a timestamp")
		}
	}
	for _, want := range []string{EventLogin, EventResponseWritten, EventLoginFailed} {
		if !types[want] {
			t.Errorf("Missing event type %q", want)
		}
	}
}

func TestRecent_Limit(t *testing.T) {
	l := openTestLogger(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		l.Record(ctx, Event{Type: EventResponseWritten, Success: true})
	}

	events, err := l.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("Expected 2 events, got %d", len(events))
	}
}

func TestRecent_SuccessFlag(t *testing.T) {
	l := openTestLogger(t)
	ctx := context.Background()

	l.Record(ctx, Event{Type: EventLoginFailed, Actor: "admin", Success: false})

	events, err := l.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if events[0].Success {
		t.Error("Failed login should be recorded with success=false")
	}
}
