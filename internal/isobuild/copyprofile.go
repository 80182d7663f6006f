// SPDX-License-Identifier: MPL-2.0

package isobuild

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"crystalforge/internal/issue"

	cp "github.com/otiai10/copy"
)

// copyProfile mirrors the profile source into the work tree. rsync is
// preferred because it preserves permissions and prunes files deleted from
// the source; when rsync is missing or fails, an in-process recursive copy
// onto a freshly removed destination gives the same result.
func copyProfile(ctx context.Context, src, dst string) error {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return issue.New("prepare work profile directory").On(dst).Wrap(err)
	}

	if _, err := exec.LookPath("rsync"); err == nil {
		cmd := exec.CommandContext(ctx, "rsync", "-a", "--delete", "--exclude", ".git", src+"/", dst)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}

	if err := os.RemoveAll(dst); err != nil {
		return issue.New("reset work profile directory").On(dst).Wrap(err)
	}
	opts := cp.Options{
		Skip: func(_ os.FileInfo, srcPath, _ string) (bool, error) {
			return filepath.Base(srcPath) == ".git", nil
		},
	}
	if err := cp.Copy(src, dst, opts); err != nil {
		return issue.New("copy archiso profile").On(src).Wrap(err)
	}
	return nil
}
