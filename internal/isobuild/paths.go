// SPDX-License-Identifier: MPL-2.0

package isobuild

import (
	"os"
	"path/filepath"

	"crystalforge/internal/issue"
)

// Paths are the three directories a build operates on, all absolute after
// Resolve.
type Paths struct {
	// ProfileDir is the archiso profile source (read-only during a build).
	ProfileDir string
	// WorkDir is the scratch tree mkarchiso builds in.
	WorkDir string
	// OutputDir receives the finished image and its sidecar files.
	OutputDir string
}

// WorkProfileDir is the copy of the profile inside the work tree that the
// build actually runs against.
func (p *Paths) WorkProfileDir() string {
	return filepath.Join(p.WorkDir, "archiso")
}

// Resolve makes all paths absolute, creates the work and output
// directories, and verifies the profile source exists.
func (p *Paths) Resolve() error {
	var err error
	if p.ProfileDir, err = filepath.Abs(p.ProfileDir); err != nil {
		return issue.New("resolve profile directory").On(p.ProfileDir).Wrap(err)
	}
	if p.WorkDir, err = filepath.Abs(p.WorkDir); err != nil {
		return issue.New("resolve work directory").On(p.WorkDir).Wrap(err)
	}
	if p.OutputDir, err = filepath.Abs(p.OutputDir); err != nil {
		return issue.New("resolve output directory").On(p.OutputDir).Wrap(err)
	}

	info, err := os.Stat(p.ProfileDir)
	if err != nil || !info.IsDir() {
		return issue.New("locate archiso profile").
			On(p.ProfileDir).
			Hint("Pass --profile or set profile_dir in the config file").
			Wrap(err)
	}

	if err := os.MkdirAll(p.WorkDir, 0o755); err != nil {
		return issue.New("create work directory").On(p.WorkDir).Wrap(err)
	}
	if err := os.MkdirAll(p.OutputDir, 0o755); err != nil {
		return issue.New("create output directory").On(p.OutputDir).Wrap(err)
	}
	return nil
}

// CleanWork removes and recreates the work directory. Used for -c/--clean
// and safe to call when the directory does not exist yet.
func (p *Paths) CleanWork() error {
	if err := os.RemoveAll(p.WorkDir); err != nil {
		return issue.New("clean work directory").On(p.WorkDir).Wrap(err)
	}
	if err := os.MkdirAll(p.WorkDir, 0o755); err != nil {
		return issue.New("recreate work directory").On(p.WorkDir).Wrap(err)
	}
	return nil
}
