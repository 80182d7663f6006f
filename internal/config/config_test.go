// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	SetDirOverride(t.TempDir())
	t.Cleanup(Reset)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ProfileDir != "archiso" {
		t.Errorf("ProfileDir = %q", cfg.ProfileDir)
	}
	if cfg.PackageList != filepath.Join("archiso", "packages.x86_64") {
		t.Errorf("PackageList = %q", cfg.PackageList)
	}
	if cfg.DriverList != filepath.Join("pacman", "drivers.txt") {
		t.Errorf("DriverList = %q", cfg.DriverList)
	}
	if cfg.Container.Engine != "auto" {
		t.Errorf("Container.Engine = %q", cfg.Container.Engine)
	}
	if cfg.UI.Verbose {
		t.Error("Verbose should default to false")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
profile_dir = "iso/archiso"
work_dir = "/var/tmp/crystal/work"

[container]
engine = "podman"
image = "docker.io/archlinux/archlinux:base-devel"

[ui]
verbose = true
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	SetDirOverride(dir)
	t.Cleanup(Reset)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ProfileDir != "iso/archiso" {
		t.Errorf("ProfileDir = %q", cfg.ProfileDir)
	}
	if cfg.WorkDir != "/var/tmp/crystal/work" {
		t.Errorf("WorkDir = %q", cfg.WorkDir)
	}
	if cfg.Container.Engine != "podman" {
		t.Errorf("Container.Engine = %q", cfg.Container.Engine)
	}
	if !cfg.UI.Verbose {
		t.Error("Verbose should be true")
	}
	// Untouched keys keep their defaults.
	if cfg.OutputDir != filepath.Join("build", "out") {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	t.Run("existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.toml")
		if err := os.WriteFile(path, []byte("cache_dir = \"/srv/cache\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		SetFileOverride(path)
		t.Cleanup(Reset)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.CacheDir != "/srv/cache" {
			t.Errorf("CacheDir = %q", cfg.CacheDir)
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		SetFileOverride(filepath.Join(t.TempDir(), "absent.toml"))
		t.Cleanup(Reset)

		if _, err := Load(); err == nil {
			t.Fatal("expected error for missing --config file")
		}
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte("profile_dir = [unclosed\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		SetFileOverride(path)
		t.Cleanup(Reset)

		if _, err := Load(); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestLoadEnvOverride(t *testing.T) {
	SetDirOverride(t.TempDir())
	t.Cleanup(Reset)
	t.Setenv("CRYSTALFORGE_DRIVER_LIST", "lists/gpu.txt")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DriverList != "lists/gpu.txt" {
		t.Errorf("DriverList = %q, want env override", cfg.DriverList)
	}
}
