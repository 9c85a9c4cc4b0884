// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCredentials = errors.New("invalid username or password")
	ErrUserExists     = errors.New("user already exists")
	ErrUserNotFound   = errors.New("user not found")
)

// DefaultAdminPassword seeds the bootstrap admin account. It must be changed
// after first login; Bootstrap logs a warning every time it is used.
const DefaultAdminPassword = "changeme-admin"

// User is one administrative account in admin_users.json.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserStore holds admin users backed by a JSON file.
type UserStore struct {
	mu    sync.RWMutex
	path  string
	users map[string]User
}

// Bootstrap loads admin_users.json from path, creating it with a default
// admin account when it does not exist.
func Bootstrap(path string) (*UserStore, error) {
	s := &UserStore{path: path, users: map[string]User{}}

	raw, err := os.ReadFile(path)
	if err == nil {
		var list []User
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		for _, u := range list {
			s.users[u.Username] = u
		}
		return s, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// First run: seed the default admin account
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash default password: %w", err)
	}
	s.users["admin"] = User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
		CreatedAt:    time.Now(),
	}
	if err := s.save(); err != nil {
		return nil, err
	}
	slog.Warn("created default admin account, change the password", "user", "admin", "path", path)
	return s, nil
}

// Authenticate verifies a username/password pair against the stored hash.
func (s *UserStore) Authenticate(username, password string) (User, error) {
	s.mu.RLock()
	u, ok := s.users[username]
	s.mu.RUnlock()
	if !ok {
		// Burn a comparison anyway so lookups and misses take similar time
		bcrypt.CompareHashAndPassword([]byte("$2a$10$0000000000000000000000000000000000000000000000000000"), []byte(password))
		return User{}, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrBadCredentials
	}
	return u, nil
}

// Create adds a new user with a bcrypt-hashed password and persists the file.
func (s *UserStore) Create(username, password, role string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return User{}, ErrUserExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	u := User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	s.users[username] = u
	if err := s.save(); err != nil {
		delete(s.users, username)
		return User{}, err
	}
	return u, nil
}

// SetPassword replaces a user's password and persists the file.
func (s *UserStore) SetPassword(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return ErrUserNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	s.users[username] = u
	return s.save()
}

// Get returns a user by name.
func (s *UserStore) Get(username string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[username]
	return u, ok
}

// save writes the user list atomically. Callers hold the lock.
func (s *UserStore) save() error {
	list := make([]User, 0, len(s.users))
	for _, u := range s.users {
		list = append(list, u)
	}
	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal users: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write users file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace users file: %w", err)
	}
	return nil
}
