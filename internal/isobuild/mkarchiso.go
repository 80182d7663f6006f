// SPDX-License-Identifier: MPL-2.0

package isobuild

import (
	"context"
	"io"
	"os"
	"os/exec"

	"crystalforge/internal/issue"
)

// mkarchisoArgs builds the argv for the mkarchiso invocation. The command
// runs under sudo unless the process is already root, since mkarchiso needs
// to loop-mount and chroot.
func mkarchisoArgs(paths *Paths, verbose, asRoot bool) []string {
	args := []string{}
	if !asRoot {
		args = append(args, "sudo")
	}
	args = append(args, "mkarchiso")
	if verbose {
		args = append(args, "-v")
	}
	return append(args, "-w", paths.WorkDir, "-o", paths.OutputDir, paths.WorkProfileDir())
}

// runMkarchiso executes mkarchiso with stdout and stderr streamed to out.
func runMkarchiso(ctx context.Context, paths *Paths, verbose bool, out io.Writer) error {
	argv := mkarchisoArgs(paths, verbose, os.Geteuid() == 0)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = out
	cmd.Stderr = out
	cmd.Stdin = os.Stdin // sudo may prompt for a password

	if err := cmd.Run(); err != nil {
		return issue.New("run mkarchiso").
			On(paths.WorkProfileDir()).
			Hint("Install the archiso package",
				"Use 'crystalforge container' to build without archiso on the host").
			Wrap(err)
	}
	return nil
}
