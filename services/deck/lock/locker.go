// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package lock

import "os"

// FileLocker abstracts platform-specific advisory file locking.
//
// # Description
//
// Provides a unified interface across Unix and Windows. Unix uses
// syscall.Flock, Windows uses LockFileEx. The advisory lock backs up
// the exclusive-create lock file: even if a foreign process ignores the
// lock file, the flock keeps two deckhand processes off the same deck.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use on different files.
type FileLocker interface {
	// Lock acquires an exclusive lock on the file. Non-blocking:
	// returns ErrFileLocked immediately when the lock is held.
	Lock(f *os.File) error

	// Unlock releases the lock. Safe to call when not locked.
	Unlock(f *os.File) error
}

// IsProcessAlive checks whether a process with the given PID exists.
// Used for stale-lock detection; implemented per platform.
func IsProcessAlive(pid int) bool {
	return isProcessAlive(pid)
}
