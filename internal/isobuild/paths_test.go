// SPDX-License-Identifier: MPL-2.0

package isobuild

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathsResolve(t *testing.T) {
	t.Run("creates work and output dirs", func(t *testing.T) {
		root := t.TempDir()
		profileDir := filepath.Join(root, "archiso")
		if err := os.MkdirAll(profileDir, 0o755); err != nil {
			t.Fatal(err)
		}

		p := Paths{
			ProfileDir: profileDir,
			WorkDir:    filepath.Join(root, "build", "work"),
			OutputDir:  filepath.Join(root, "build", "out"),
		}
		if err := p.Resolve(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, dir := range []string{p.WorkDir, p.OutputDir} {
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				t.Errorf("%s was not created", dir)
			}
		}
		if !filepath.IsAbs(p.ProfileDir) || !filepath.IsAbs(p.WorkDir) || !filepath.IsAbs(p.OutputDir) {
			t.Error("all paths should be absolute after Resolve")
		}
		if got := p.WorkProfileDir(); got != filepath.Join(p.WorkDir, "archiso") {
			t.Errorf("WorkProfileDir = %q", got)
		}
	})

	t.Run("missing profile dir", func(t *testing.T) {
		root := t.TempDir()
		p := Paths{
			ProfileDir: filepath.Join(root, "absent"),
			WorkDir:    filepath.Join(root, "work"),
			OutputDir:  filepath.Join(root, "out"),
		}
		if err := p.Resolve(); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestCleanWork(t *testing.T) {
	root := t.TempDir()
	p := Paths{WorkDir: filepath.Join(root, "work")}

	stale := filepath.Join(p.WorkDir, "x86_64", "airootfs")
	if err := os.MkdirAll(stale, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := p.CleanWork(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := os.ReadDir(p.WorkDir)
	if err != nil {
		t.Fatalf("work dir should exist after clean: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("work dir should be empty, found %d entries", len(entries))
	}

	// Cleaning a nonexistent dir recreates it.
	if err := os.RemoveAll(p.WorkDir); err != nil {
		t.Fatal(err)
	}
	if err := p.CleanWork(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
