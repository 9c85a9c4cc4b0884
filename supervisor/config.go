// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package supervisor

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the supervise.yaml file format.
type Config struct {
	StartupWaitSeconds  int    `yaml:"startup_wait_seconds"`
	PollIntervalSeconds int    `yaml:"poll_interval_seconds"`
	Processes           []Spec `yaml:"processes"`
}

// StartupWait returns the configured startup wait, or the default.
func (c Config) StartupWait() time.Duration {
	if c.StartupWaitSeconds <= 0 {
		return DefaultStartupWait
	}
	return time.Duration(c.StartupWaitSeconds) * time.Second
}

// PollInterval returns the configured poll interval, or the default.
func (c Config) PollInterval() time.Duration {
	if c.PollIntervalSeconds <= 0 {
		return DefaultPollInterval
	}
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// LoadConfig reads and validates a supervise.yaml file.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if len(cfg.Processes) == 0 {
		return Config{}, errors.New("no processes configured")
	}
	for i, p := range cfg.Processes {
		if p.Name == "" {
			return Config{}, fmt.Errorf("process %d: name is required", i)
		}
		if p.Command == "" {
			return Config{}, fmt.Errorf("process %q: command is required", p.Name)
		}
	}
	return cfg, nil
}
