// SPDX-License-Identifier: MPL-2.0

//go:build linux

package isobuild

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// buildLock holds an exclusive flock for the duration of a build so two
// invocations cannot churn the same work directory at once. The zero-byte
// lock file is harmless if orphaned; the kernel drops the flock when the
// descriptor closes, including on crash.
type buildLock struct {
	file *os.File
}

// acquireBuildLock takes a blocking exclusive flock on a lock file next to
// the work directory.
func acquireBuildLock(workDir string) (*buildLock, error) {
	lockPath := filepath.Join(filepath.Dir(workDir), ".crystalforge-build.lock")

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", lockPath, err)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		f.Close()
		return nil, fmt.Errorf("flock %s: %w", lockPath, err)
	}
	return &buildLock{file: f}, nil
}

// Release drops the flock. Safe to call more than once.
func (l *buildLock) Release() {
	if l == nil || l.file == nil {
		return
	}
	l.file.Close()
	l.file = nil
}
