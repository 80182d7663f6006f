// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"crystalforge/internal/pkglist"

	"github.com/spf13/cobra"
)

// fmtCmd normalizes a flat package list.
var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Format a flat package list",
	Long: `Format a flat package list in place: trim every line, drop blank
lines, remove duplicates, and sort the whole file alphabetically.

Unlike 'sort', this treats the file as one undifferentiated list with no
section structure; comment lines are ordinary lines here.

Without an argument, the driver package list from the configuration is
formatted (pacman/drivers.txt by default).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFmt,
}

func runFmt(cmd *cobra.Command, args []string) error {
	path := cfg.DriverList
	if len(args) > 0 {
		path = args[0]
	}

	cmd.SilenceUsage = true
	if err := pkglist.RewriteFile(path, pkglist.NormalizeFlat); err != nil {
		return err
	}

	fmt.Printf("%s Formatted %s\n", SuccessStyle.Render("✓"), PathStyle.Render(path))
	return nil
}
