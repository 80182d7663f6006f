// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"crystalforge/internal/config"
	"crystalforge/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"

	// verbose enables verbose output and -v on wrapped tools.
	verbose bool
	// cfgFile allows specifying a custom config file.
	cfgFile string

	// cfg is the loaded configuration, replaced by initRootConfig.
	cfg = config.Default()

	// rootCmd is the base command when called without subcommands.
	rootCmd = &cobra.Command{
		Use:   "crystalforge",
		Short: "Build the Crystal Linux live/installer ISO",
		Long: TitleStyle.Render("crystalforge") + SubtitleStyle.Render(" - Crystal Linux ISO build tool") + `

crystalforge drives a full archiso build: it keeps the package lists
tidy, prepares an offline driver package cache, runs mkarchiso over the
Crystal Linux profile, and post-processes the resulting image (dated
name, SHA-256 sidecar, build manifest). The whole build can also run
inside a privileged podman or docker container on non-Arch hosts.

` + SubtitleStyle.Render("Typical workflow:") + `
  crystalforge sort           Normalize the main package list
  crystalforge build -c       Clean build of the ISO
  crystalforge container      Same build, inside a container`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/crystalforge/config.toml)")

	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(containerCmd)
	rootCmd.AddCommand(docsCmd)
}

// initRootConfig loads the config file and applies UI settings not already
// set via flags.
func initRootConfig() {
	if cfgFile != "" {
		config.SetFileOverride(cfgFile)
	}

	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		return
	}
	cfg = loaded

	if !verbose {
		verbose = cfg.UI.Verbose
	}
}

// newLogger builds the progress logger used by build, cache, and container.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// formatErrorForDisplay formats an error for the terminal, using the issue
// formatting (with hints and, in verbose mode, the cause chain) when
// available.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ie *issue.Error
	if errors.As(err, &ie) {
		return ie.Format(verboseMode)
	}
	return err.Error()
}

func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// Execute runs the CLI. Hints of issue errors are printed after the error
// itself; ExitError propagates specific exit codes.
func Execute() {
	err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err == nil {
		return
	}

	var ie *issue.Error
	if errors.As(err, &ie) {
		for _, hint := range ie.Suggestions() {
			fmt.Fprintln(os.Stderr, SubtitleStyle.Render("  • "+hint))
		}
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}
	os.Exit(1)
}
