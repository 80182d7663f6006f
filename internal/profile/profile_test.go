// SPDX-License-Identifier: MPL-2.0

package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleProfiledef = `#!/usr/bin/env bash
# shellcheck disable=SC2034

iso_name="CrystalLinux"
iso_label="CRYSTAL_$(date +%Y%m)"
iso_publisher="Crystal Linux <https://getcryst.al>"
iso_application="Crystal Linux Live/Installer CD"
iso_version="2024.05"
install_dir="arch"
buildmodes=('iso')
bootmodes=('bios.syslinux.mbr' 'uefi-x64.systemd-boot.esp')
arch="x86_64"
pacman_conf="pacman.conf"
airootfs_image_type="squashfs"
airootfs_image_tool_options=('-comp' 'xz' '-Xbcj' 'x86' '-b' '1M' '-Xdict-size' '1M')
file_permissions=(
  ["/etc/shadow"]="0:0:400"
  ["/root"]="0:0:750"
)
`

func writeProfile(t *testing.T, def string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefFileName), []byte(def), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeProfile(t, sampleProfiledef)

	p, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Name != "CrystalLinux" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.Version != "2024.05" {
		t.Errorf("Version = %q", p.Version)
	}
	if p.Arch != "x86_64" {
		t.Errorf("Arch = %q", p.Arch)
	}
	if p.InstallDir != "arch" {
		t.Errorf("InstallDir = %q", p.InstallDir)
	}
	// iso_label uses command substitution and must not survive as a literal.
	if p.Label != "" {
		t.Errorf("Label = %q, want empty for non-literal assignment", p.Label)
	}
	if p.Dir != dir {
		t.Errorf("Dir = %q, want %q", p.Dir, dir)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := writeProfile(t, "iso_name=\"CrystalLinux\"\n")

	p, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Arch != "x86_64" {
		t.Errorf("Arch = %q, want default x86_64", p.Arch)
	}
	if p.InstallDir != "arch" {
		t.Errorf("InstallDir = %q, want default arch", p.InstallDir)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing profiledef", func(t *testing.T) {
		if _, err := Load(t.TempDir()); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("missing iso_name", func(t *testing.T) {
		dir := writeProfile(t, "arch=\"x86_64\"\n")
		if _, err := Load(dir); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("iso_name from command substitution", func(t *testing.T) {
		dir := writeProfile(t, "iso_name=\"$(hostname)\"\n")
		if _, err := Load(dir); err == nil {
			t.Fatal("expected error for non-literal iso_name")
		}
	})

	t.Run("unparseable script", func(t *testing.T) {
		dir := writeProfile(t, "iso_name=\"unterminated\n")
		if _, err := Load(dir); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestISOFileName(t *testing.T) {
	p := &Profile{Name: "CrystalLinux", Arch: "x86_64"}
	ts := time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)

	if got := p.ISOFileName(ts); got != "CrystalLinux-20240517-x86_64.iso" {
		t.Errorf("ISOFileName = %q", got)
	}
	if got := p.OutputPrefix(); got != "CrystalLinux-" {
		t.Errorf("OutputPrefix = %q", got)
	}
}

func TestWriteVersionFile(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)

	if err := WriteVersionFile(dir, ts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, VersionFileRelPath))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "2024.05\n" {
		t.Errorf("version file = %q", data)
	}
	if !strings.HasSuffix(filepath.Join(dir, VersionFileRelPath), filepath.FromSlash("etc/crystallinux-version")) {
		t.Error("unexpected version file location")
	}
}
