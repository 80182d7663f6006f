// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"fmt"
	"os"
	"strings"

	"crystalforge/internal/issue"

	"github.com/charmbracelet/log"
)

const (
	// DefaultImage is the build environment image.
	DefaultImage = "docker.io/library/archlinux:latest"

	// repoMountPath is where the project tree appears inside the container.
	repoMountPath = "/workspace"
	// exeMountPath is where the crystalforge binary itself is mounted so
	// the in-container build reuses this exact version.
	exeMountPath = "/usr/local/bin/crystalforge"
)

// Launcher reruns the ISO build inside a privileged container, for hosts
// without archiso (or without Linux).
type Launcher struct {
	Engine Engine
	// Image overrides DefaultImage when non-empty.
	Image string
	// RepoDir is the project root holding the archiso profile; it is
	// mounted read-write because the build tree lives under it.
	RepoDir string
	Log     *log.Logger
}

// buildScript prepares the container and reruns the build in it. mkarchiso
// needs rsync for the profile copy and sudo is absent in the base image,
// but the container user is already root so the build skips it.
func buildScript(buildArgs []string) string {
	run := "crystalforge build"
	if len(buildArgs) > 0 {
		run += " " + strings.Join(buildArgs, " ")
	}
	return "pacman -Syu --noconfirm archiso rsync && " + run
}

// BuildISO runs `crystalforge build buildArgs...` inside the container.
func (l *Launcher) BuildISO(ctx context.Context, buildArgs ...string) error {
	if !l.Engine.Available() {
		return issue.New("start container build").
			On(l.Engine.Name()).
			Hint("Install " + l.Engine.Name() + " or pick another engine with --engine").
			Wrap(fmt.Errorf("engine is not available"))
	}
	if version, err := l.Engine.Version(ctx); err == nil {
		l.Log.Info("using container engine", "engine", l.Engine.Name(), "version", version)
	}

	exe, err := os.Executable()
	if err != nil {
		return issue.New("locate crystalforge binary").Wrap(err)
	}

	image := l.Image
	if image == "" {
		image = DefaultImage
	}

	opts := RunOptions{
		Image:      image,
		Command:    []string{"bash", "-c", buildScript(buildArgs)},
		WorkDir:    repoMountPath,
		Volumes:    []string{l.RepoDir + ":" + repoMountPath, exe + ":" + exeMountPath},
		Privileged: true,
		Remove:     true,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}

	l.Log.Info("starting containerized build", "image", image, "repo", l.RepoDir)
	if err := l.Engine.Run(ctx, opts); err != nil {
		return issue.New("run containerized build").
			On(image).
			Hint("Privileged containers are required for mkarchiso's loop mounts").
			Wrap(err)
	}
	return nil
}
