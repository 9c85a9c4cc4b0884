// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package envcheck validates the environment variables the dashboard consumes.

A single call inspects everything and returns a structured report:

	rep := envcheck.Check(cfg.DataDir)
	if rep.Fatal() {
		// refuse to start
	}

Each variable gets one of four statuses:

  - "ok": set and usable as-is
  - "default": unset, a default was applied
  - "missing": unset but required (fatal)
  - "error": set but unusable, e.g. data dir path is a file (fatal)

The data directory is the one check with side effects: when
FACE_VIEWER_DATA_DIR is unset, a "data" directory is created under the
working directory and reported as "default". An existing writable path is
reported "ok" and never modified. Secret values are redacted in the report
so it can be served over the admin API.
*/
package envcheck
