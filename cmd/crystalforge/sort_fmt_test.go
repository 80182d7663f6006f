// SPDX-License-Identifier: MPL-2.0

package main

import (
	"os"
	"path/filepath"
	"testing"

	"crystalforge/internal/config"

	"github.com/spf13/cobra"
)

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "packages.x86_64")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readBack(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestRunSort(t *testing.T) {
	t.Run("explicit file argument", func(t *testing.T) {
		path := writeList(t, "# Core\nzsh\nbash\nbash\n  vim\n")

		if err := runSort(&cobra.Command{}, []string{path}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := readBack(t, path); got != "# Core\nbash\n  vim\nzsh\n" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("defaults to configured package list", func(t *testing.T) {
		path := writeList(t, "b\na\n")
		orig := cfg
		t.Cleanup(func() { cfg = orig })
		cfg = config.Default()
		cfg.PackageList = path

		if err := runSort(&cobra.Command{}, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := readBack(t, path); got != "a\nb\n" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		err := runSort(&cobra.Command{}, []string{filepath.Join(t.TempDir(), "absent")})
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestRunFmt(t *testing.T) {
	t.Run("comments are plain lines", func(t *testing.T) {
		path := writeList(t, "# comment\nzsh\n\nbash\nbash\n")

		if err := runFmt(&cobra.Command{}, []string{path}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := readBack(t, path); got != "# comment\nbash\nzsh\n" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("empty file stays empty", func(t *testing.T) {
		path := writeList(t, "")

		if err := runFmt(&cobra.Command{}, []string{path}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := readBack(t, path); got != "" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		err := runFmt(&cobra.Command{}, []string{filepath.Join(t.TempDir(), "absent")})
		if err == nil {
			t.Fatal("expected error")
		}
	})
}
