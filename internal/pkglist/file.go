// SPDX-License-Identifier: MPL-2.0

package pkglist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"crystalforge/internal/issue"
)

// Transform is a pure line-level rewrite applied by RewriteFile.
type Transform func(lines []string) []string

// ReadLines reads a package-list file into a slice of lines. A single
// trailing newline does not produce a trailing empty line.
func ReadLines(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, issue.New("read package list").
			On(path).
			Hint("Check that the file exists and the path is spelled correctly").
			Wrap(err)
	}
	if !info.Mode().IsRegular() {
		return nil, issue.New("read package list").
			On(path).
			Wrap(fmt.Errorf("not a regular file"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, issue.New("read package list").On(path).Wrap(err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	lines := strings.Split(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// WriteLines atomically replaces path with the given lines. The content is
// first written to a temporary file in the same directory and then renamed
// over the target, so a failed write never corrupts the original. A
// non-empty document always ends with a newline.
func WriteLines(path string, lines []string, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return issue.New("write package list").
			On(path).
			Hint("Check write permissions on " + dir).
			Wrap(err)
	}
	tmpPath := tmp.Name()
	// Best-effort cleanup; a no-op once the rename has happened.
	defer os.Remove(tmpPath)

	var content string
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return issue.New("write package list").On(path).Wrap(err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return issue.New("write package list").On(path).Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		return issue.New("write package list").On(path).Wrap(err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return issue.New("replace package list").
			On(path).
			Hint("Check write permissions on " + dir).
			Wrap(err)
	}
	return nil
}

// RewriteFile applies fn to the contents of path in place, preserving the
// file mode. The original file is left untouched on any failure.
func RewriteFile(path string, fn Transform) error {
	lines, err := ReadLines(path)
	if err != nil {
		return err
	}

	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	return WriteLines(path, fn(lines), perm)
}
