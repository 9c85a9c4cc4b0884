// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Middleware

  - WithLogging: request start/completion logging via slog
  - RequireAPIKey: X-Admin-Key guard for the machine API (404 when the
    key is not configured, 401 on mismatch)
  - CORS: cross-origin support for the study application frontend

# Helpers

  - JSONResponse / ErrorResponse: consistent JSON envelopes
  - ParseJSONBody: request body decoding
  - GetClientIP: client IP extraction behind proxies
*/
package middleware
