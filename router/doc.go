// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires URL routes to handlers using Go 1.22+ ServeMux
method patterns.

Routes fall into three groups: the public surface (dashboard, health,
response submission), the machine API under /api guarded by the
X-Admin-Key header, and the admin API guarded by session tokens.

In fallback mode (-fallback) only / and /health are registered, which is
all the port-bind diagnostics use case needs.
*/
package router
