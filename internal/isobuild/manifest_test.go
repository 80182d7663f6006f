// SPDX-License-Identifier: MPL-2.0

package isobuild

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
)

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CrystalLinux-20240517-x86_64.manifest.toml")
	in := &Manifest{
		Image:     "/out/CrystalLinux-20240517-x86_64.iso",
		Version:   "2024.05",
		Arch:      "x86_64",
		BuildDate: time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC),
		SHA256:    "deadbeef",
		Packages:  412,
	}

	if err := writeManifest(path, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var out Manifest
	if err := toml.Unmarshal(data, &out); err != nil {
		t.Fatalf("manifest does not round-trip: %v", err)
	}
	if out.Image != in.Image || out.SHA256 != in.SHA256 || out.Packages != in.Packages {
		t.Errorf("round-trip mismatch: %+v", out)
	}
	if !out.BuildDate.Equal(in.BuildDate) {
		t.Errorf("BuildDate = %v, want %v", out.BuildDate, in.BuildDate)
	}
}

func TestCountPackages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pkgs.txt")
	content := "# Core\nbash\nzsh\n\n# Drivers\nmesa\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		expected int
	}{
		{"counts entries only", path, 3},
		{"empty path", "", 0},
		{"missing file", filepath.Join(dir, "absent"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countPackages(tt.path); got != tt.expected {
				t.Errorf("countPackages(%q) = %d, want %d", tt.path, got, tt.expected)
			}
		})
	}
}
