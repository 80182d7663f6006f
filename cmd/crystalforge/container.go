// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"crystalforge/internal/container"

	"github.com/spf13/cobra"
)

var (
	containerEngine string
	containerImage  string

	// containerCmd runs the ISO build inside podman or docker.
	containerCmd = &cobra.Command{
		Use:   "container [-- build flags...]",
		Short: "Run the ISO build inside a container",
		Long: `Run 'crystalforge build' inside a privileged Arch Linux container.

This is the way to build on hosts without archiso (or without Arch):
the current directory is mounted into the container, archiso and rsync
are installed there, and the build runs against the mounted tree, so
the resulting image lands in the normal output directory.

Flags after '--' are passed through to the inner build, e.g.:

  crystalforge container -- --clean --work-dir build/work`,
		RunE: runContainer,
	}
)

func init() {
	containerCmd.Flags().StringVar(&containerEngine, "engine", "", "container engine: auto, podman, or docker (default from config)")
	containerCmd.Flags().StringVar(&containerImage, "image", "", "build environment image (default archlinux:latest)")
}

func runContainer(cmd *cobra.Command, args []string) error {
	engineType := container.Type(cfg.Container.Engine)
	if containerEngine != "" {
		engineType = container.Type(containerEngine)
	}
	image := cfg.Container.Image
	if containerImage != "" {
		image = containerImage
	}

	cmd.SilenceUsage = true

	engine, err := container.Detect(engineType)
	if err != nil {
		return err
	}

	repo, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determine repository directory: %w", err)
	}

	launcher := &container.Launcher{
		Engine:  engine,
		Image:   image,
		RepoDir: repo,
		Log:     newLogger(),
	}
	if err := launcher.BuildISO(cmd.Context(), args...); err != nil {
		// Mirror the inner build's exit code when the container ran but failed.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			return &ExitError{Code: exitErr.ExitCode(), Err: err}
		}
		return err
	}

	fmt.Printf("%s Containerized build complete\n", SuccessStyle.Render("✓"))
	return nil
}
