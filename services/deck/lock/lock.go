// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package lock provides cross-process mutual exclusion for deck files.
//
// Exclusion is coarse-grained: one open-mutate-save-close cycle holds
// the lock for one file. The primitive is an exclusive-create lock file
// placed alongside the target (a process that fails the O_EXCL create
// loses, immediately — nothing ever blocks), with an advisory flock on
// the target underneath it and fsnotify watching for external writes to
// the locked file.
//
// Locks from crashed processes are reclaimed when the recorded PID is
// dead or the TTL has expired.
package lock

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
)

// Sentinel errors for lock acquisition.
var (
	// ErrFileLocked is returned when another live process holds the lock.
	// Transient: the caller may retry after backoff.
	ErrFileLocked = errors.New("file is locked by another process")

	// ErrLockReleased is returned when a handle is used after Release.
	ErrLockReleased = errors.New("lock already released")
)

// DefaultTTL bounds how long a lock from a live but wedged process is
// honored before other processes may reclaim it.
const DefaultTTL = time.Hour

// LockInfo is the metadata written into the lock file for visibility
// and stale-lock detection.
type LockInfo struct {
	FilePath  string    `json:"file_path"`
	PID       int       `json:"pid"`
	SessionID string    `json:"session_id"`
	LockedAt  time.Time `json:"locked_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Reason    string    `json:"reason"`
}

// IsExpired reports whether the lock's TTL has passed.
func (i *LockInfo) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

// FileLockError carries the holder's metadata alongside ErrFileLocked
// so callers can report who owns the file.
type FileLockError struct {
	Path   string
	Holder *LockInfo
	Err    error
}

// Error implements the error interface.
func (e *FileLockError) Error() string {
	if e.Holder != nil {
		return fmt.Sprintf("%s: %v (held by pid %d since %s: %s)",
			e.Path, e.Err, e.Holder.PID,
			e.Holder.LockedAt.Format(time.RFC3339), e.Holder.Reason)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying sentinel for errors.Is support.
func (e *FileLockError) Unwrap() error { return e.Err }

// Option configures TryAcquireExclusive.
type Option func(*acquireConfig)

type acquireConfig struct {
	ttl       time.Duration
	sessionID string
	reason    string
	onChange  func(path string)
}

// WithTTL overrides the lock's expiry horizon.
func WithTTL(d time.Duration) Option {
	return func(c *acquireConfig) { c.ttl = d }
}

// WithSessionID tags the lock with a caller-chosen session identifier.
func WithSessionID(id string) Option {
	return func(c *acquireConfig) { c.sessionID = id }
}

// WithChangeCallback registers a callback invoked when the locked file
// is modified by someone other than the holder.
func WithChangeCallback(fn func(path string)) Option {
	return func(c *acquireConfig) { c.onChange = fn }
}

// Handle is an acquired exclusive lock. Release it before process exit.
//
// # Thread Safety
//
// Release is idempotent and safe to call from multiple goroutines.
type Handle struct {
	path     string
	lockPath string
	file     *os.File
	locker   FileLocker
	info     *LockInfo
	watcher  *fsnotify.Watcher

	mu       sync.Mutex
	released bool
}

// TryAcquireExclusive acquires the exclusive lock for a deck file.
//
// # Description
//
// Creates "<path>.lock" with O_CREATE|O_EXCL. If the lock file already
// exists and its holder is alive and unexpired, acquisition fails fast
// with a *FileLockError wrapping ErrFileLocked; stale locks are removed
// and acquisition retried once. On success an advisory flock is taken
// on the target as a second line of defense, and the target is watched
// for external modification.
//
// # Inputs
//
//   - path: The deck file to lock. Must exist.
//   - reason: Human-readable reason recorded in the lock file.
//   - opts: TTL, session id, change callback.
//
// # Outputs
//
//   - *Handle: The held lock; callers must Release it.
//   - error: *FileLockError (wrapping ErrFileLocked) on contention.
func TryAcquireExclusive(path, reason string, opts ...Option) (*Handle, error) {
	cfg := acquireConfig{ttl: DefaultTTL, reason: reason}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.sessionID == "" {
		cfg.sessionID = uuid.NewString()
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path %s: %w", path, err)
	}
	lockPath := absPath + ".lock"

	lockFile, err := createLockFile(lockPath)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	info := &LockInfo{
		FilePath:  absPath,
		PID:       os.Getpid(),
		SessionID: cfg.sessionID,
		LockedAt:  now,
		ExpiresAt: now.Add(cfg.ttl),
		Reason:    cfg.reason,
	}
	data, err := json.MarshalIndent(info, "", "  ")
	if err == nil {
		_, err = lockFile.Write(data)
	}
	if cerr := lockFile.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(lockPath)
		return nil, fmt.Errorf("writing lock info: %w", err)
	}

	// Advisory flock on the target underneath the lock file.
	f, err := os.OpenFile(absPath, os.O_RDWR, 0)
	if err != nil {
		os.Remove(lockPath)
		return nil, fmt.Errorf("opening file for lock %s: %w", absPath, err)
	}
	locker := newFileLocker()
	if err := locker.Lock(f); err != nil {
		f.Close()
		os.Remove(lockPath)
		if errors.Is(err, ErrFileLocked) {
			return nil, &FileLockError{Path: absPath, Err: ErrFileLocked}
		}
		return nil, fmt.Errorf("acquiring lock on %s: %w", absPath, err)
	}

	h := &Handle{
		path:     absPath,
		lockPath: lockPath,
		file:     f,
		locker:   locker,
		info:     info,
	}
	if cfg.onChange != nil {
		h.watch(cfg.onChange)
	}

	slog.Debug("Acquired lock",
		"path", absPath,
		"reason", cfg.reason,
		"expires_at", info.ExpiresAt.Format(time.RFC3339))
	return h, nil
}

// createLockFile performs the exclusive create, reclaiming one stale
// lock if necessary.
func createLockFile(lockPath string) (*os.File, error) {
	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			return f, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("creating lock file %s: %w", lockPath, err)
		}

		holder, readErr := readLockInfo(lockPath)
		if readErr == nil && holder != nil && !holder.IsExpired() && IsProcessAlive(holder.PID) {
			return nil, &FileLockError{Path: holder.FilePath, Holder: holder, Err: ErrFileLocked}
		}

		// Stale or unreadable lock from a dead process: reclaim it.
		slog.Info("Removing stale lock",
			"lock_path", lockPath,
			"readable", readErr == nil)
		if err := os.Remove(lockPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("removing stale lock %s: %w", lockPath, err)
		}
	}
	return nil, &FileLockError{Path: lockPath, Err: ErrFileLocked}
}

// readLockInfo reads lock metadata from a lock file.
func readLockInfo(lockPath string) (*LockInfo, error) {
	data, err := os.ReadFile(lockPath)
	if err != nil {
		return nil, err
	}
	var info LockInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Info returns the lock's metadata.
func (h *Handle) Info() *LockInfo { return h.info }

// Release unlocks and removes the lock file. Idempotent.
func (h *Handle) Release() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return ErrLockReleased
	}
	h.released = true

	if h.watcher != nil {
		h.watcher.Close()
	}
	if err := h.locker.Unlock(h.file); err != nil {
		slog.Warn("Failed to unlock file",
			"path", h.path,
			"error", err)
	}
	h.file.Close()
	if err := os.Remove(h.lockPath); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to remove lock file",
			"path", h.lockPath,
			"error", err)
	}
	slog.Debug("Released lock", "path", h.path)
	return nil
}

// IsLocked reports whether a live, unexpired lock exists for path,
// returning the holder's metadata when it does. Useful for pre-flight
// checks; the answer is advisory and may race with acquisition.
func IsLocked(path string) (bool, *LockInfo, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, nil, fmt.Errorf("resolving path %s: %w", path, err)
	}
	info, err := readLockInfo(absPath + ".lock")
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil, nil
		}
		return false, nil, err
	}
	if info.IsExpired() || !IsProcessAlive(info.PID) {
		return false, nil, nil
	}
	return true, info, nil
}

// watch starts an fsnotify watcher that reports external writes to the
// locked file. Watch failures degrade to a warning: exclusion does not
// depend on the watcher.
func (h *Handle) watch(onChange func(path string)) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("Failed to create file watcher",
			"path", h.path,
			"error", err)
		return
	}
	if err := watcher.Add(h.path); err != nil {
		slog.Warn("Failed to watch locked file",
			"path", h.path,
			"error", err)
		watcher.Close()
		return
	}
	h.watcher = watcher

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				slog.Warn("External modification detected on locked file",
					"path", h.path,
					"event", event.Op.String())
				onChange(h.path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("File watcher error",
					"path", h.path,
					"error", err)
			}
		}
	}()
}
