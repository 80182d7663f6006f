// SPDX-License-Identifier: MPL-2.0

package pkglist

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Kind classifies a single line of a package list.
type Kind int

const (
	// KindBoundary is a comment or blank line. Boundaries delimit sections
	// and are copied to the output verbatim, in their original order.
	KindBoundary Kind = iota
	// KindEntry is a package name. Entries are trimmed for comparison,
	// deduplicated, and sorted within their section.
	KindEntry
)

// Classify reports whether a raw line is a section boundary or an entry.
// A line is a boundary when it is empty, consists only of whitespace, or
// starts with '#' after leading whitespace.
func Classify(line string) Kind {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return KindBoundary
	}
	return KindEntry
}

// section accumulates the entries of one open section, keyed by trimmed
// value. The first raw line seen for a key wins, so the original
// indentation of that occurrence survives the sort.
type section struct {
	firstSeen map[string]string
}

func (s *section) add(line string) {
	key := strings.TrimSpace(line)
	if key == "" {
		// Whitespace-only lines are already classified as boundaries;
		// an empty key cannot name a package, so drop it.
		return
	}
	if _, ok := s.firstSeen[key]; ok {
		return
	}
	s.firstSeen[key] = line
}

// flush appends the buffered entries to out, sorted bytewise ascending by
// key, and resets the section. Flushing an empty section is a no-op.
func (s *section) flush(out []string) []string {
	if len(s.firstSeen) == 0 {
		return out
	}
	keys := maps.Keys(s.firstSeen)
	slices.Sort(keys)
	for _, key := range keys {
		out = append(out, s.firstSeen[key])
	}
	s.firstSeen = make(map[string]string)
	return out
}

// Normalize sorts and deduplicates a package list section by section.
//
// Boundary lines (comments and blank lines) are emitted unchanged and in
// their original positions. Within each maximal run of entry lines, entries
// are deduplicated by trimmed value and emitted in ascending bytewise order;
// the raw form of the first occurrence of each value is the one kept. End of
// input closes the last section without emitting a boundary. A file with no
// boundaries at all is one big section.
func Normalize(lines []string) []string {
	out := make([]string, 0, len(lines))
	open := &section{firstSeen: make(map[string]string)}
	for _, line := range lines {
		if Classify(line) == KindBoundary {
			out = open.flush(out)
			out = append(out, line)
			continue
		}
		open.add(line)
	}
	return open.flush(out)
}

// NormalizeFlat sorts and deduplicates a package list as a single flat set.
//
// Every line is trimmed; blank lines are dropped; the remaining values are
// deduplicated across the whole file and emitted in ascending bytewise
// order. Unlike Normalize, comment lines get no special treatment here and
// sort like any other value.
func NormalizeFlat(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		value := strings.TrimSpace(line)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	slices.Sort(out)
	return out
}
