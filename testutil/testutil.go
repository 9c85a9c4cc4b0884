// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/faceviewer/dashboard/audit"
	"github.com/faceviewer/dashboard/auth"
	"github.com/faceviewer/dashboard/cliparse"
	"github.com/faceviewer/dashboard/models"
	"github.com/faceviewer/dashboard/store"
)

// TestSecretKey signs session tokens in tests
const TestSecretKey = "test-secret"

// TestAdminAPIKey guards the machine API in tests
const TestAdminAPIKey = "test-admin-key"

// NewTestConfig returns a config wired to a fresh temp data dir
func NewTestConfig(t *testing.T) cliparse.Config {
	t.Helper()
	return cliparse.Config{
		Port:        cliparse.DefaultPort,
		DataDir:     t.TempDir(),
		BackendURL:  cliparse.DefaultBackendURL,
		SecretKey:   TestSecretKey,
		AdminAPIKey: TestAdminAPIKey,
	}
}

// NewTestStore creates a store under the config's data dir
func NewTestStore(t *testing.T, cfg cliparse.Config) *store.Store {
	t.Helper()
	s, err := store.New(cfg.DataDir)
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	return s
}

// NewTestAudit opens an audit log under the config's data dir
func NewTestAudit(t *testing.T, cfg cliparse.Config) *audit.Logger {
	t.Helper()
	l, err := audit.Open(filepath.Join(cfg.DataDir, "audit.db"))
	if err != nil {
		t.Fatalf("Failed to open test audit db: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

// NewTestUsers bootstraps admin_users.json under the config's data dir
func NewTestUsers(t *testing.T, cfg cliparse.Config) *auth.UserStore {
	t.Helper()
	users, err := auth.Bootstrap(filepath.Join(cfg.DataDir, "admin_users.json"))
	if err != nil {
		t.Fatalf("Failed to bootstrap test users: %v", err)
	}
	return users
}

// NewTestPerms loads (and seeds) permissions.json under the config's data dir
func NewTestPerms(t *testing.T, cfg cliparse.Config) auth.Permissions {
	t.Helper()
	perms, err := auth.LoadPermissions(filepath.Join(cfg.DataDir, "permissions.json"))
	if err != nil {
		t.Fatalf("Failed to load test permissions: %v", err)
	}
	return perms
}

// SeedResponses writes records straight into the store
func SeedResponses(t *testing.T, st *store.Store, records ...models.Response) {
	t.Helper()
	for _, r := range records {
		if _, err := st.Append(r); err != nil {
			t.Fatalf("Failed to seed response for %s: %v", r.ParticipantID, err)
		}
	}
}

// MakeRequest creates a JSON HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates a form-encoded POST, like the study application sends
func MakeFormRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
