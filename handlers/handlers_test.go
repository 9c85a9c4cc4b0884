// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/faceviewer/dashboard/audit"
	"github.com/faceviewer/dashboard/auth"
	"github.com/faceviewer/dashboard/cliparse"
	"github.com/faceviewer/dashboard/store"
)

func getTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:        8050,
		BackendURL:  "http://localhost:8080",
		SecretKey:   "test-secret",
		AdminAPIKey: "test-admin-key",
	}
}

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	return s
}

func setupTestAudit(t *testing.T) *audit.Logger {
	t.Helper()
	l, err := audit.Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("Failed to open test audit db: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func setupTestUsers(t *testing.T) *auth.UserStore {
	t.Helper()
	users, err := auth.Bootstrap(filepath.Join(t.TempDir(), "admin_users.json"))
	if err != nil {
		t.Fatalf("Failed to bootstrap test users: %v", err)
	}
	return users
}

func setupTestPerms(t *testing.T) auth.Permissions {
	t.Helper()
	perms, err := auth.LoadPermissions(filepath.Join(t.TempDir(), "permissions.json"))
	if err != nil {
		t.Fatalf("Failed to load test permissions: %v", err)
	}
	return perms
}

// makeFormRequest builds a form-encoded POST like the study application sends
func makeFormRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
