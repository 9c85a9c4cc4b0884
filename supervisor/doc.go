// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package supervisor starts and watches the dashboard's long-running child
processes (the dashboard server and the study application backend).

# Lifecycle

Start spawns a process with stdout/stderr captured and waits a fixed
startup interval (default 2s) before classifying it:

  - started: the process is still running; a live handle is returned
  - failed: the process exited; the error carries the captured output
    and no handle is returned

There is no retry. A failed start is terminal for that invocation.

# Monitoring

Monitor polls liveness on a fixed interval (default 5s). Any exit stops
monitoring and is reported with the process name; nothing is respawned.
Context cancellation (the operator interrupt) terminates every tracked
process and returns nil, treating the interrupt as a clean shutdown.

# Configuration

The cmd/supervise binary reads processes from a supervise.yaml file:

	startup_wait_seconds: 2
	poll_interval_seconds: 5
	processes:
	  - name: dashboard
	    command: ./dashboard
	    args: ["-p", "8050"]
	  - name: study-backend
	    command: python3
	    args: ["app.py"]
	    dir: ../study
*/
package supervisor
