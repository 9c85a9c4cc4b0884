// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"encoding/json"
	"fmt"
	"os"
)

// Actions checked against permissions.json
const (
	ActionViewDashboard = "view_dashboard"
	ActionViewSessions  = "view_sessions"
	ActionManageUsers   = "manage_users"
)

// Permissions maps a role to the actions it may perform.
type Permissions map[string][]string

func defaultPermissions() Permissions {
	return Permissions{
		"admin":  {ActionViewDashboard, ActionViewSessions, ActionManageUsers},
		"viewer": {ActionViewDashboard},
	}
}

// LoadPermissions reads permissions.json from path, writing the default
// role table when the file does not exist.
func LoadPermissions(path string) (Permissions, error) {
	raw, err := os.ReadFile(path)
	if err == nil {
		var p Permissions
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return p, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	p := defaultPermissions()
	out, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal permissions: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return p, nil
}

// Can reports whether the role is allowed to perform the action.
func (p Permissions) Can(role, action string) bool {
	for _, a := range p[role] {
		if a == action {
			return true
		}
	}
	return false
}
