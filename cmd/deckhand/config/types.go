// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import "time"

// DeckhandConfig is the user-level configuration persisted at
// ~/.deckhand/deckhand.yaml.
type DeckhandConfig struct {
	// Logging controls log verbosity and the optional file destination.
	Logging LoggingConfig `yaml:"logging"`

	// Lock controls deck file locking behavior.
	Lock LockConfig `yaml:"lock"`

	// Output controls default rendering of command results.
	Output OutputConfig `yaml:"output"`
}

type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Dir enables JSON file logging when set, e.g. ~/.deckhand/logs.
	Dir string `yaml:"dir"`
}

type LockConfig struct {
	// TTLMinutes bounds how long a crashed process's lock is honored.
	TTLMinutes int `yaml:"ttl_minutes"`
}

type OutputConfig struct {
	// Pretty renders human-readable output by default instead of JSON.
	Pretty bool `yaml:"pretty"`
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() DeckhandConfig {
	return DeckhandConfig{
		Logging: LoggingConfig{
			Level: "info",
			Dir:   "",
		},
		Lock: LockConfig{
			TTLMinutes: 60,
		},
		Output: OutputConfig{
			Pretty: false,
		},
	}
}

// LockTTL returns the configured lock TTL as a duration, falling back
// to an hour for zero or negative values.
func (c *DeckhandConfig) LockTTL() time.Duration {
	if c.Lock.TTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.Lock.TTLMinutes) * time.Minute
}
