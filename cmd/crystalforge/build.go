// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"crystalforge/internal/isobuild"

	"github.com/spf13/cobra"
)

var (
	buildWorkDir   string
	buildOutputDir string
	buildProfile   string
	buildClean     bool

	// buildCmd runs the full ISO pipeline on the host.
	buildCmd = &cobra.Command{
		Use:   "build",
		Short: "Build the ISO with mkarchiso",
		Long: `Build the Crystal Linux ISO.

The archiso profile is copied into the work directory, the version file
is stamped with the current month, and mkarchiso is run over the copy
(under sudo unless already root). The finished image is renamed to its
dated canonical name and gets a SHA-256 sidecar, a copy of its package
list, and a TOML build manifest next to it.

mkarchiso requires an Arch Linux host with the archiso package; use
'crystalforge container' everywhere else.`,
		RunE: runBuild,
	}
)

func init() {
	buildCmd.Flags().StringVar(&buildWorkDir, "work-dir", "", "work directory (default from config)")
	buildCmd.Flags().StringVar(&buildOutputDir, "output-dir", "", "output directory (default from config)")
	buildCmd.Flags().StringVar(&buildProfile, "profile", "", "archiso profile directory (default from config)")
	buildCmd.Flags().BoolVarP(&buildClean, "clean", "c", false, "clean the work directory before building")
}

func runBuild(cmd *cobra.Command, args []string) error {
	paths := isobuild.Paths{
		ProfileDir: cfg.ProfileDir,
		WorkDir:    cfg.WorkDir,
		OutputDir:  cfg.OutputDir,
	}
	if buildProfile != "" {
		paths.ProfileDir = buildProfile
	}
	if buildWorkDir != "" {
		paths.WorkDir = buildWorkDir
	}
	if buildOutputDir != "" {
		paths.OutputDir = buildOutputDir
	}

	cmd.SilenceUsage = true

	builder := isobuild.New(paths, newLogger())
	result, err := builder.Run(cmd.Context(), isobuild.Options{
		Clean:   buildClean,
		Verbose: verbose,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s Build complete\n", SuccessStyle.Render("✓"))
	fmt.Printf("  ISO:      %s\n", PathStyle.Render(result.ISOPath))
	fmt.Printf("  Checksum: %s\n", PathStyle.Render(result.ChecksumPath))
	if result.PackageListPath != "" {
		fmt.Printf("  Packages: %s\n", PathStyle.Render(result.PackageListPath))
	}
	fmt.Printf("  Manifest: %s\n", PathStyle.Render(result.ManifestPath))
	return nil
}
