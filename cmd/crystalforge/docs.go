// SPDX-License-Identifier: MPL-2.0

package main

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed guide.md
var userGuide string

// docsCmd renders the built-in user guide.
var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Show the user guide",
	Long:  "Render the built-in user guide in the terminal.",
	Args:  cobra.NoArgs,
	RunE:  runDocs,
}

func runDocs(cmd *cobra.Command, args []string) error {
	out, err := glamour.Render(userGuide, "dark")
	if err != nil {
		// Styled rendering is best-effort; fall back to the raw markdown.
		fmt.Print(userGuide)
		return nil
	}
	fmt.Print(out)
	return nil
}
