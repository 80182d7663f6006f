// SPDX-License-Identifier: MPL-2.0

package isobuild

import (
	"os"
	"time"

	"crystalforge/internal/issue"
	"crystalforge/internal/pkglist"

	"github.com/pelletier/go-toml/v2"
)

// Manifest records what a build produced, written next to the image as
// "<image-stem>.manifest.toml" so release tooling does not have to re-derive
// checksums or package counts.
type Manifest struct {
	Image     string    `toml:"image"`
	Version   string    `toml:"version,omitempty"`
	Arch      string    `toml:"arch"`
	BuildDate time.Time `toml:"build_date"`
	SHA256    string    `toml:"sha256"`
	// Packages is the number of entries in the image's package list,
	// zero when mkarchiso produced no list.
	Packages int `toml:"packages"`
}

// writeManifest encodes the manifest as TOML at path.
func writeManifest(path string, m *Manifest) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return issue.New("encode build manifest").On(path).Wrap(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return issue.New("write build manifest").On(path).Wrap(err)
	}
	return nil
}

// countPackages counts the entry lines of a package-list file. Comments and
// blanks do not count; a missing or unreadable file counts as zero.
func countPackages(path string) int {
	if path == "" {
		return 0
	}
	lines, err := pkglist.ReadLines(path)
	if err != nil {
		return 0
	}
	n := 0
	for _, line := range lines {
		if pkglist.Classify(line) == pkglist.KindEntry {
			n++
		}
	}
	return n
}
