// SPDX-License-Identifier: MPL-2.0

// Package container runs the ISO build inside a container engine.
//
// mkarchiso only works on an Arch host with the archiso package installed,
// so on any other system the build runs inside a privileged archlinux
// container instead. Podman and Docker are supported behind a small Engine
// interface wrapping their CLIs.
package container

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"

	"crystalforge/internal/issue"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Type selects a container engine.
type Type string

const (
	// TypeAuto probes podman first, then docker.
	TypeAuto   Type = "auto"
	TypePodman Type = "podman"
	TypeDocker Type = "docker"
)

// RunOptions describes a single container run.
type RunOptions struct {
	// Image to run (pulled by the engine when absent).
	Image string
	// Command and its arguments, run as the container entrypoint args.
	Command []string
	// WorkDir inside the container.
	WorkDir string
	// Volumes in "host:container" form.
	Volumes []string
	// Env vars visible to the command.
	Env map[string]string
	// Privileged is required for loop devices and chroots (mkarchiso).
	Privileged bool
	// Remove deletes the container after it exits.
	Remove bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Engine is the subset of a container CLI this tool needs.
type Engine interface {
	// Name returns "podman" or "docker".
	Name() string
	// Available reports whether the engine binary exists and responds.
	Available() bool
	// Version returns the engine version string.
	Version(ctx context.Context) (string, error)
	// Run executes a container to completion, streaming its output.
	Run(ctx context.Context, opts RunOptions) error
}

// Detect returns the engine for t. TypeAuto probes podman first since
// rootless podman is the common setup on Arch build hosts.
func Detect(t Type) (Engine, error) {
	switch t {
	case TypePodman:
		return NewPodman(), nil
	case TypeDocker:
		return NewDocker(), nil
	case TypeAuto, "":
		if e := NewPodman(); e.Available() {
			return e, nil
		}
		if e := NewDocker(); e.Available() {
			return e, nil
		}
		return nil, issue.New("detect container engine").
			Hint("Install podman or docker", "Or select one explicitly with --engine").
			Wrap(fmt.Errorf("neither podman nor docker is available"))
	default:
		return nil, issue.New("detect container engine").
			On(string(t)).
			Wrap(fmt.Errorf("unknown engine %q (want auto, podman, or docker)", t))
	}
}

// cliEngine implements Engine over an engine binary's CLI. Podman and
// Docker take identical arguments for everything this tool does; the only
// divergence is the SELinux volume label suffix.
type cliEngine struct {
	name   string
	binary string
	// volumeSuffix is appended to -v mounts (":z" for podman on Linux).
	volumeSuffix string
}

func (e *cliEngine) Name() string {
	return e.name
}

func (e *cliEngine) Available() bool {
	if e.binary == "" {
		return false
	}
	return exec.Command(e.binary, "--version").Run() == nil
}

func (e *cliEngine) Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, e.binary, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("get %s version: %w", e.name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// runArgs renders RunOptions into CLI arguments. Env vars are emitted in
// sorted order so invocations are deterministic.
func (e *cliEngine) runArgs(opts RunOptions) []string {
	args := []string{"run"}
	if opts.Remove {
		args = append(args, "--rm")
	}
	if opts.Privileged {
		args = append(args, "--privileged")
	}
	if opts.WorkDir != "" {
		args = append(args, "-w", opts.WorkDir)
	}
	for _, vol := range opts.Volumes {
		args = append(args, "-v", vol+e.volumeSuffix)
	}
	keys := maps.Keys(opts.Env)
	slices.Sort(keys)
	for _, key := range keys {
		args = append(args, "-e", key+"="+opts.Env[key])
	}
	args = append(args, opts.Image)
	return append(args, opts.Command...)
}

func (e *cliEngine) Run(ctx context.Context, opts RunOptions) error {
	cmd := exec.CommandContext(ctx, e.binary, e.runArgs(opts)...)
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	return cmd.Run()
}

// NewPodman creates the podman engine. Volume mounts get the :z SELinux
// label on Linux so the container can read them on enforcing hosts.
func NewPodman() Engine {
	path, _ := exec.LookPath("podman")
	suffix := ""
	if runtime.GOOS == "linux" {
		suffix = ":z"
	}
	return &cliEngine{name: "podman", binary: path, volumeSuffix: suffix}
}

// NewDocker creates the docker engine.
func NewDocker() Engine {
	path, _ := exec.LookPath("docker")
	return &cliEngine{name: "docker", binary: path}
}
