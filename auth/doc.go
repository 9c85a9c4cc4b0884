// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin accounts, session tokens, and API key checks.

# Admin Users

Accounts live in admin_users.json (username, bcrypt hash, role). On first
start the file is seeded with a default admin account and a hardcoded
password, and a warning is logged until it is changed:

	users, err := auth.Bootstrap(filepath.Join(dataDir, "admin_users.json"))
	user, err := users.Authenticate("admin", password)

# Session Tokens

Tokens are HMAC-SHA256 signed with the dashboard secret and carry the
username and expiry inside the token, so validation needs no server-side
session state:

	token := auth.SignSession(user.Username, time.Now().Add(12*time.Hour), secret)
	username, err := auth.ValidateSession(token, secret)

# Permissions

permissions.json maps roles to allowed actions; a default table (admin,
viewer) is written when the file is missing:

	perms, err := auth.LoadPermissions(path)
	if perms.Can(user.Role, auth.ActionViewSessions) { ... }

# API Keys

The machine API is guarded by ADMIN_API_KEY with a constant-time compare.
An empty configured key disables the surface entirely.
*/
package auth
