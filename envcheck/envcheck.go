// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package envcheck

import (
	"fmt"
	"os"
	"path/filepath"
)

// Variable statuses
const (
	StatusOK      = "ok"      // set and usable as-is
	StatusDefault = "default" // unset, a default was applied
	StatusMissing = "missing" // unset and required
	StatusError   = "error"   // set but unusable
)

// DefaultDataDirName is created under the working directory when
// FACE_VIEWER_DATA_DIR is unset.
const DefaultDataDirName = "data"

// VarStatus reports the outcome for a single environment variable.
type VarStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Value  string `json:"value,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Report is the result of a full environment check.
type Report struct {
	Vars    []VarStatus `json:"vars"`
	DataDir string      `json:"data_dir"`
}

// Fatal reports whether any variable is in a state that prevents startup.
func (r Report) Fatal() bool {
	for _, v := range r.Vars {
		if v.Status == StatusMissing || v.Status == StatusError {
			return true
		}
	}
	return false
}

// Check validates the environment the dashboard depends on. explicitDataDir,
// when non-empty (the -data flag), takes precedence over FACE_VIEWER_DATA_DIR.
// The resolved data directory is created if it does not exist.
func Check(explicitDataDir string) Report {
	var rep Report

	dirStatus := checkDataDir(explicitDataDir, &rep)
	rep.Vars = append(rep.Vars, dirStatus)

	rep.Vars = append(rep.Vars, checkSecret("DASHBOARD_SECRET_KEY", true))
	rep.Vars = append(rep.Vars, checkSecret("ADMIN_API_KEY", false))
	rep.Vars = append(rep.Vars, checkOptional("PORT"))
	rep.Vars = append(rep.Vars, checkOptional("FACE_VIEWER_BACKEND_URL"))

	return rep
}

func checkDataDir(explicit string, rep *Report) VarStatus {
	vs := VarStatus{Name: "FACE_VIEWER_DATA_DIR"}

	dir := explicit
	if dir == "" {
		dir = os.Getenv("FACE_VIEWER_DATA_DIR")
	}

	if dir == "" {
		// Unset: create the default directory under the working directory.
		cwd, err := os.Getwd()
		if err != nil {
			vs.Status = StatusError
			vs.Detail = fmt.Sprintf("cannot resolve working directory: %v", err)
			return vs
		}
		dir = filepath.Join(cwd, DefaultDataDirName)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			vs.Status = StatusError
			vs.Detail = fmt.Sprintf("cannot create default data dir: %v", err)
			return vs
		}
		vs.Status = StatusDefault
		vs.Value = dir
		rep.DataDir = dir
		return vs
	}

	// Set (or forced via flag): must be an existing writable directory,
	// creating it if absent.
	existed := false
	if info, err := os.Stat(dir); err == nil {
		if !info.IsDir() {
			vs.Status = StatusError
			vs.Value = dir
			vs.Detail = "path exists but is not a directory"
			return vs
		}
		existed = true
	}
	if !existed {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			vs.Status = StatusError
			vs.Value = dir
			vs.Detail = fmt.Sprintf("cannot create data dir: %v", err)
			return vs
		}
	}
	if err := probeWritable(dir); err != nil {
		vs.Status = StatusError
		vs.Value = dir
		vs.Detail = fmt.Sprintf("directory not writable: %v", err)
		return vs
	}

	vs.Status = StatusOK
	vs.Value = dir
	rep.DataDir = dir
	return vs
}

// probeWritable creates and removes a temp file to confirm write access.
func probeWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".envcheck-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

func checkSecret(name string, required bool) VarStatus {
	vs := VarStatus{Name: name}
	if os.Getenv(name) == "" {
		if required {
			vs.Status = StatusMissing
			vs.Detail = "required, not set"
		} else {
			vs.Status = StatusDefault
			vs.Detail = "not set, feature disabled"
		}
		return vs
	}
	vs.Status = StatusOK
	vs.Value = "(set)" // never echo secrets back
	return vs
}

func checkOptional(name string) VarStatus {
	vs := VarStatus{Name: name}
	if v := os.Getenv(name); v != "" {
		vs.Status = StatusOK
		vs.Value = v
	} else {
		vs.Status = StatusDefault
	}
	return vs
}
