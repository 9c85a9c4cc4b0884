// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("expired token")
	ErrInvalidAPIKey  = errors.New("invalid api key")
	ErrAPIKeyDisabled = errors.New("admin api key not configured")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// SignSession creates an HMAC-signed session token for a username.
// The token is self-validating: username and expiry travel inside it,
// so nothing needs to be stored server-side.
func SignSession(username string, expiresAt time.Time, secret string) string {
	payload := username + "." + strconv.FormatInt(expiresAt.Unix(), 10)
	mac := sign(payload, secret)
	return base64.RawURLEncoding.EncodeToString([]byte(payload)) + "." + mac
}

// ValidateSession checks a session token's signature and expiry, returning
// the username it was issued for.
func ValidateSession(token, secret string) (string, error) {
	dot := strings.LastIndex(token, ".")
	if dot < 0 {
		return "", ErrInvalidToken
	}

	raw, err := base64.RawURLEncoding.DecodeString(token[:dot])
	if err != nil {
		return "", ErrInvalidToken
	}
	payload := string(raw)

	expected := sign(payload, secret)
	if !hmac.Equal([]byte(token[dot+1:]), []byte(expected)) {
		return "", ErrInvalidToken
	}

	sep := strings.LastIndex(payload, ".")
	if sep < 0 {
		return "", ErrInvalidToken
	}
	username := payload[:sep]
	expUnix, err := strconv.ParseInt(payload[sep+1:], 10, 64)
	if err != nil {
		return "", ErrInvalidToken
	}
	if time.Now().After(time.Unix(expUnix, 0)) {
		return "", ErrExpiredToken
	}

	return username, nil
}

// ValidateAPIKey compares the presented key against the configured admin
// API key. An empty configured key means the admin API is disabled.
func ValidateAPIKey(presented, configured string) error {
	if configured == "" {
		return ErrAPIKeyDisabled
	}
	if !hmac.Equal([]byte(presented), []byte(configured)) {
		return ErrInvalidAPIKey
	}
	return nil
}

func sign(payload, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(payload))
	return strings.TrimRight(base64.URLEncoding.EncodeToString(h.Sum(nil)), "=")
}
