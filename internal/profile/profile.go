// SPDX-License-Identifier: MPL-2.0

package profile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"crystalforge/internal/issue"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

const (
	// DefFileName is the archiso profile definition script.
	DefFileName = "profiledef.sh"

	// VersionFileRelPath is the distribution version file inside airootfs,
	// refreshed before every build.
	VersionFileRelPath = "etc/crystallinux-version"

	defaultArch       = "x86_64"
	defaultInstallDir = "arch"
)

// Profile holds the subset of profiledef.sh this tool cares about.
type Profile struct {
	// Dir is the profile directory the metadata was loaded from.
	Dir string

	// Name is iso_name, the prefix of every produced image file.
	Name string
	// Label is iso_label, the volume label.
	Label string
	// Version is iso_version. Often a command substitution in the script,
	// in which case it stays empty here and mkarchiso fills it in.
	Version string
	// Arch is the target architecture (defaults to x86_64).
	Arch string
	// InstallDir is the on-ISO data directory (defaults to "arch").
	InstallDir string
}

// Load reads profiledef.sh from dir. A profile without an iso_name is
// rejected since every later step (output discovery, renaming) keys off it.
func Load(dir string) (*Profile, error) {
	path := filepath.Join(dir, DefFileName)
	f, err := os.Open(path)
	if err != nil {
		return nil, issue.New("load archiso profile").
			On(path).
			Hint("Point --profile (or the profile_dir config key) at a directory containing " + DefFileName).
			Wrap(err)
	}
	defer f.Close()

	vars, err := parseDef(f, path)
	if err != nil {
		return nil, issue.New("parse " + DefFileName).On(path).Wrap(err)
	}

	p := &Profile{
		Dir:        dir,
		Name:       vars["iso_name"],
		Label:      vars["iso_label"],
		Version:    vars["iso_version"],
		Arch:       vars["arch"],
		InstallDir: vars["install_dir"],
	}
	if p.Name == "" {
		return nil, issue.New("load archiso profile").
			On(path).
			Hint("Set iso_name in " + DefFileName).
			Wrap(fmt.Errorf("iso_name is not a literal assignment"))
	}
	if p.Arch == "" {
		p.Arch = defaultArch
	}
	if p.InstallDir == "" {
		p.InstallDir = defaultInstallDir
	}
	return p, nil
}

// parseDef extracts literal top-level variable assignments from a shell
// script. Arrays, appends, and values needing expansion the script would
// have to run for (command substitution, parameter expansion of unset
// variables resolving non-literally) are skipped.
func parseDef(r io.Reader, name string) (map[string]string, error) {
	file, err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(r, name)
	if err != nil {
		return nil, err
	}

	// Expand against an empty environment: plain literals survive, anything
	// depending on runtime state fails and is dropped.
	cfg := &expand.Config{Env: expand.ListEnviron()}

	vars := make(map[string]string)
	for _, stmt := range file.Stmts {
		call, ok := stmt.Cmd.(*syntax.CallExpr)
		if !ok || len(call.Args) != 0 {
			continue
		}
		for _, assign := range call.Assigns {
			if assign.Name == nil || assign.Value == nil || assign.Array != nil || assign.Append {
				continue
			}
			value, err := expand.Literal(cfg, assign.Value)
			if err != nil {
				continue
			}
			vars[assign.Name.Value] = value
		}
	}
	return vars, nil
}

// ISOFileName returns the canonical dated image name, <name>-YYYYMMDD-<arch>.iso.
func (p *Profile) ISOFileName(t time.Time) string {
	return fmt.Sprintf("%s-%s-%s.iso", p.Name, t.Format("20060102"), p.Arch)
}

// OutputPrefix is the file-name prefix mkarchiso gives every image built
// from this profile, used to find the freshly built ISO in the output dir.
func (p *Profile) OutputPrefix() string {
	return p.Name + "-"
}

// WriteVersionFile stamps the YYYY.MM build version into the airootfs tree
// so the live system can report which monthly snapshot it came from.
func WriteVersionFile(airootfsDir string, t time.Time) error {
	path := filepath.Join(airootfsDir, VersionFileRelPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return issue.New("write version file").On(path).Wrap(err)
	}
	content := t.Format("2006.01") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return issue.New("write version file").On(path).Wrap(err)
	}
	return nil
}
