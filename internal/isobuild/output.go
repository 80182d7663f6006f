// SPDX-License-Identifier: MPL-2.0

package isobuild

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"crystalforge/internal/issue"
)

// findNewestISO returns the most recently modified "<prefix>*.iso" in dir.
// mkarchiso names its output itself, so the fresh image is located by
// prefix and modification time rather than by predicting the exact name.
func findNewestISO(dir, prefix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", issue.New("scan output directory").On(dir).Wrap(err)
	}

	newest := ""
	var newestMod int64
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".iso") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().UnixNano() > newestMod {
			newest = filepath.Join(dir, name)
			newestMod = info.ModTime().UnixNano()
		}
	}
	if newest == "" {
		return "", issue.New("locate built image").
			On(dir).
			Hint("Check the mkarchiso output above for build errors").
			Wrap(fmt.Errorf("no %s*.iso in output directory", prefix))
	}
	return newest, nil
}

// checksumFile computes the SHA-256 of a file, reading in chunks.
func checksumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", issue.New("checksum image").On(path).Wrap(err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", issue.New("checksum image").On(path).Wrap(err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// writeChecksumSidecar writes "<hex>  <basename>" next to the image in the
// format sha256sum -c accepts, and returns the sidecar path.
func writeChecksumSidecar(isoPath, sum string) (string, error) {
	sidecar := isoPath + ".sha256"
	content := fmt.Sprintf("%s  %s\n", sum, filepath.Base(isoPath))
	if err := os.WriteFile(sidecar, []byte(content), 0o644); err != nil {
		return "", issue.New("write checksum file").On(sidecar).Wrap(err)
	}
	return sidecar, nil
}

// isoStem strips the .iso extension from an image path.
func isoStem(isoPath string) string {
	return strings.TrimSuffix(isoPath, filepath.Ext(isoPath))
}

// copyPackageList copies the pkglist mkarchiso leaves in the work tree next
// to the final image as "<image-stem>.pkgs.txt". A missing source list is
// not an error; the destination path is empty in that case.
func copyPackageList(workDir, installDir, arch, isoPath string) (string, error) {
	src := filepath.Join(workDir, "iso", installDir, fmt.Sprintf("pkglist.%s.txt", arch))
	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", issue.New("copy package list").On(src).Wrap(err)
	}

	dst := isoStem(isoPath) + ".pkgs.txt"
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", issue.New("copy package list").On(dst).Wrap(err)
	}
	return dst, nil
}

// chownOutput hands the output directory back to the invoking user. The
// image was written by root (mkarchiso runs under sudo), so this needs sudo
// again; failure is reported by the caller as a warning only.
func chownOutput(ctx context.Context, dir string) error {
	uid := os.Geteuid()
	gid := os.Getegid()
	if uid == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, "sudo", "chown", "-R", fmt.Sprintf("%d:%d", uid, gid), dir)
	cmd.Stdin = os.Stdin
	if err := cmd.Run(); err != nil {
		return issue.New("change output ownership").
			On(dir).
			Hint(fmt.Sprintf("Run: sudo chown -R %d:%d %s", uid, gid, dir)).
			Wrap(err)
	}
	return nil
}
