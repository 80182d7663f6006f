// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"crystalforge/internal/pkglist"

	"github.com/spf13/cobra"
)

// sortCmd normalizes the section-organized main package list.
var sortCmd = &cobra.Command{
	Use:   "sort [file]",
	Short: "Sort the main package list section by section",
	Long: `Sort a section-organized package list in place.

Sections are delimited by comment headers and blank lines. Within each
section, entries are deduplicated and sorted alphabetically; the section
structure itself (headers, blank lines, section order) is left untouched,
and the indentation of the first occurrence of each package is kept.

Without an argument, the main package list from the configuration is
sorted (archiso/packages.x86_64 by default).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSort,
}

func runSort(cmd *cobra.Command, args []string) error {
	path := cfg.PackageList
	if len(args) > 0 {
		path = args[0]
	}

	cmd.SilenceUsage = true
	if err := pkglist.RewriteFile(path, pkglist.Normalize); err != nil {
		return err
	}

	fmt.Printf("%s Sorted %s section by section\n", SuccessStyle.Render("✓"), PathStyle.Render(path))
	return nil
}
