// SPDX-License-Identifier: MPL-2.0

package pacman

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"crystalforge/internal/issue"
	"crystalforge/internal/pkglist"

	"github.com/charmbracelet/log"
)

// Cache downloads packages into a directory without installing them.
type Cache struct {
	// Dir is the cache directory; created when missing. A private pacman
	// db lives under Dir/db so the host's sync databases stay untouched.
	Dir string
	Log *log.Logger
	// Out receives streamed pacman output.
	Out io.Writer
}

// NewCache creates a Cache streaming pacman output to stdout.
func NewCache(dir string, logger *log.Logger) *Cache {
	return &Cache{Dir: dir, Log: logger, Out: os.Stdout}
}

// ParseList resolves raw package-list lines to the set of package names to
// download: comments and blanks are dropped, names are trimmed,
// deduplicated, and sorted. Consuming is deliberately more permissive than
// formatting, so an unsorted or duplicated list still downloads correctly.
func ParseList(lines []string) []string {
	entries := make([]string, 0, len(lines))
	for _, line := range lines {
		if pkglist.Classify(line) == pkglist.KindEntry {
			entries = append(entries, line)
		}
	}
	return pkglist.NormalizeFlat(entries)
}

// downloadArgs builds the pacman download-only invocation.
func downloadArgs(cacheDir string, pkgs []string, asRoot bool) []string {
	args := []string{}
	if !asRoot {
		args = append(args, "sudo")
	}
	args = append(args,
		"pacman", "-Syw", "--noconfirm",
		"--cachedir", cacheDir,
		"--dbpath", filepath.Join(cacheDir, "db"),
	)
	return append(args, pkgs...)
}

// Download reads the package list at listPath and fetches every named
// package into the cache directory.
func (c *Cache) Download(ctx context.Context, listPath string) error {
	lines, err := pkglist.ReadLines(listPath)
	if err != nil {
		return err
	}
	pkgs := ParseList(lines)
	if len(pkgs) == 0 {
		return issue.New("download packages").
			On(listPath).
			Hint("Add one package name per line; comments start with '#'").
			Wrap(fmt.Errorf("package list is empty"))
	}

	if err := os.MkdirAll(filepath.Join(c.Dir, "db"), 0o755); err != nil {
		return issue.New("create package cache").On(c.Dir).Wrap(err)
	}

	c.Log.Info("downloading packages", "count", len(pkgs), "cache", c.Dir)

	argv := downloadArgs(c.Dir, pkgs, os.Geteuid() == 0)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = c.Out
	cmd.Stderr = c.Out
	cmd.Stdin = os.Stdin // sudo may prompt for a password

	if err := cmd.Run(); err != nil {
		return issue.New("download packages").
			On(listPath).
			Hint("Check the pacman output above for unresolved package names").
			Wrap(err)
	}
	return nil
}
