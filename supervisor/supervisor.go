// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package supervisor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

var ErrProcessExited = errors.New("supervised process exited")

// Defaults mirror the intervals the old launcher script used.
const (
	DefaultStartupWait  = 2 * time.Second
	DefaultPollInterval = 5 * time.Second
	DefaultGracePeriod  = 3 * time.Second
)

// Spec describes one process to supervise.
type Spec struct {
	Name    string            `yaml:"name"`
	Command string            `yaml:"command"`
	Args    []string          `yaml:"args"`
	Dir     string            `yaml:"dir"`
	Env     map[string]string `yaml:"env"`
}

// Process is a live handle to a supervised child process.
type Process struct {
	Name string

	cmd    *exec.Cmd
	output *lockedBuffer
	done   chan struct{}

	mu      sync.Mutex
	exitErr error
}

// Alive reports whether the process is still running.
func (p *Process) Alive() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// PID returns the child's process id.
func (p *Process) PID() int {
	return p.cmd.Process.Pid
}

// Output returns the combined stdout/stderr captured so far.
func (p *Process) Output() string {
	return p.output.String()
}

// ExitErr returns the error from Wait once the process has exited.
func (p *Process) ExitErr() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exitErr
}

// Terminate sends SIGTERM and escalates to SIGKILL after the grace period.
// It blocks until the process has exited.
func (p *Process) Terminate(grace time.Duration) {
	if !p.Alive() {
		return
	}
	p.cmd.Process.Signal(syscall.SIGTERM)
	select {
	case <-p.done:
	case <-time.After(grace):
		slog.Warn("process ignored SIGTERM, killing", "name", p.Name)
		p.cmd.Process.Kill()
		<-p.done
	}
}

// Supervisor starts child processes and watches their liveness. Per the
// launcher it replaces, a process that dies is never respawned: exits are
// reported, not recovered from.
type Supervisor struct {
	startupWait  time.Duration
	pollInterval time.Duration
	grace        time.Duration

	mu    sync.Mutex
	procs []*Process
}

// New creates a Supervisor. Zero durations take the defaults.
func New(startupWait, pollInterval time.Duration) *Supervisor {
	if startupWait <= 0 {
		startupWait = DefaultStartupWait
	}
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Supervisor{
		startupWait:  startupWait,
		pollInterval: pollInterval,
		grace:        DefaultGracePeriod,
	}
}

// Start spawns the process described by spec and waits the startup interval
// to classify the result. A process that exits during the interval is a
// failed start: the error carries the captured output and no live handle is
// returned. Failure is terminal for this invocation, there is no retry.
func (s *Supervisor) Start(ctx context.Context, spec Spec) (*Process, error) {
	cmd := exec.Command(spec.Command, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = os.Environ()
	for k, v := range spec.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	buf := &lockedBuffer{}
	cmd.Stdout = buf
	cmd.Stderr = buf

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", spec.Name, err)
	}

	p := &Process{
		Name:   spec.Name,
		cmd:    cmd,
		output: buf,
		done:   make(chan struct{}),
	}
	go func() {
		err := cmd.Wait()
		p.mu.Lock()
		p.exitErr = err
		p.mu.Unlock()
		close(p.done)
	}()

	slog.Info("starting process", "name", spec.Name, "command", spec.Command, "pid", p.PID())

	select {
	case <-p.done:
		return nil, fmt.Errorf("%s exited during startup: %v (output: %s)",
			spec.Name, p.ExitErr(), p.Output())
	case <-ctx.Done():
		p.Terminate(s.grace)
		return nil, ctx.Err()
	case <-time.After(s.startupWait):
	}

	slog.Info("process started", "name", spec.Name, "pid", p.PID())
	s.mu.Lock()
	s.procs = append(s.procs, p)
	s.mu.Unlock()
	return p, nil
}

// Monitor polls the tracked processes until one exits or ctx is cancelled.
// A process exit stops monitoring and returns ErrProcessExited wrapped with
// the process name; the remaining processes are left running for the caller
// to shut down. Cancellation terminates every tracked process and returns
// nil: an operator interrupt is a clean shutdown.
func (s *Supervisor) Monitor(ctx context.Context) error {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("interrupt received, terminating all processes")
			s.TerminateAll()
			return nil
		case <-ticker.C:
			for _, p := range s.tracked() {
				if p.Alive() {
					continue
				}
				slog.Error("process exited, stopping monitor",
					"name", p.Name,
					"exit_err", p.ExitErr(),
				)
				return fmt.Errorf("%s: %w", p.Name, ErrProcessExited)
			}
		}
	}
}

// TerminateAll stops every tracked process and waits for each to exit.
func (s *Supervisor) TerminateAll() {
	for _, p := range s.tracked() {
		if p.Alive() {
			slog.Info("terminating process", "name", p.Name, "pid", p.PID())
		}
		p.Terminate(s.grace)
	}
}

// Processes returns the live handles being tracked.
func (s *Supervisor) Processes() []*Process {
	return s.tracked()
}

func (s *Supervisor) tracked() []*Process {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Process, len(s.procs))
	copy(out, s.procs)
	return out
}

// lockedBuffer guards the shared stdout/stderr buffer: the child writes
// from its own pipe goroutines while callers read via Output.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
