// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package audit records domain events (logins, response submissions,
supervisor starts) to a sqlite database under the data directory.

Record never returns an error: write failures are logged via slog and
swallowed, so a broken audit store cannot block a request. Recent serves
the newest events to the admin API.
*/
package audit
