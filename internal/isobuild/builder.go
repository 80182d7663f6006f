// SPDX-License-Identifier: MPL-2.0

package isobuild

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"crystalforge/internal/issue"
	"crystalforge/internal/profile"

	"github.com/charmbracelet/log"
)

// Options tune a single build run.
type Options struct {
	// Clean wipes the work directory before building.
	Clean bool
	// Verbose passes -v to mkarchiso.
	Verbose bool
}

// Result lists the files a successful build produced.
type Result struct {
	ISOPath         string
	ChecksumPath    string
	PackageListPath string
	ManifestPath    string
}

// Builder runs the whole ISO pipeline for one profile.
type Builder struct {
	Paths Paths
	Log   *log.Logger
	// Out receives the streamed mkarchiso output.
	Out io.Writer
	// Now is the build clock, swappable in tests.
	Now func() time.Time

	// chown hands the output back to the invoking user; swappable in
	// tests since the real one shells out to sudo.
	chown func(ctx context.Context, dir string) error
}

// New creates a Builder with output streaming to stdout.
func New(paths Paths, logger *log.Logger) *Builder {
	return &Builder{
		Paths: paths,
		Log:   logger,
		Out:   os.Stdout,
		Now:   time.Now,
		chown: chownOutput,
	}
}

// Run executes the build: resolve paths, lock, copy the profile, stamp the
// version, run mkarchiso, then rename, checksum, manifest, and chown the
// output. The context cancels the external commands.
func (b *Builder) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := b.Paths.Resolve(); err != nil {
		return nil, err
	}

	lock, err := acquireBuildLock(b.Paths.WorkDir)
	if err != nil {
		return nil, issue.New("serialize build").On(b.Paths.WorkDir).Wrap(err)
	}
	defer lock.Release()

	if opts.Clean {
		b.Log.Info("cleaning work directory", "dir", b.Paths.WorkDir)
		if err := b.Paths.CleanWork(); err != nil {
			return nil, err
		}
	}

	prof, err := profile.Load(b.Paths.ProfileDir)
	if err != nil {
		return nil, err
	}

	workProfile := b.Paths.WorkProfileDir()
	b.Log.Info("copying profile", "from", b.Paths.ProfileDir, "to", workProfile)
	if err := copyProfile(ctx, b.Paths.ProfileDir, workProfile); err != nil {
		return nil, err
	}

	now := b.Now()
	if err := profile.WriteVersionFile(filepath.Join(workProfile, "airootfs"), now); err != nil {
		return nil, err
	}
	b.Log.Info("stamped version file", "version", now.Format("2006.01"))

	b.Log.Info("starting mkarchiso", "work", b.Paths.WorkDir, "out", b.Paths.OutputDir)
	if err := runMkarchiso(ctx, &b.Paths, opts.Verbose, b.Out); err != nil {
		return nil, err
	}

	return b.finish(ctx, prof, now)
}

// finish post-processes a completed mkarchiso run.
func (b *Builder) finish(ctx context.Context, prof *profile.Profile, now time.Time) (*Result, error) {
	built, err := findNewestISO(b.Paths.OutputDir, prof.OutputPrefix())
	if err != nil {
		return nil, err
	}

	// Rename to the dated canonical name. mkarchiso's own name usually
	// matches already; a build spanning midnight is the exception.
	final := filepath.Join(b.Paths.OutputDir, prof.ISOFileName(now))
	if built != final {
		if err := os.Rename(built, final); err != nil {
			return nil, issue.New("rename image").On(built).Wrap(err)
		}
		b.Log.Info("renamed image", "from", built, "to", final)
	}

	sum, err := checksumFile(final)
	if err != nil {
		return nil, err
	}
	sidecar, err := writeChecksumSidecar(final, sum)
	if err != nil {
		return nil, err
	}
	b.Log.Info("wrote checksum", "file", sidecar)

	pkgs, err := copyPackageList(b.Paths.WorkDir, prof.InstallDir, prof.Arch, final)
	if err != nil {
		return nil, err
	}
	if pkgs == "" {
		b.Log.Warn("package list not found in work tree, skipping copy")
	}

	manifestPath := isoStem(final) + ".manifest.toml"
	manifest := &Manifest{
		Image:     final,
		Version:   prof.Version,
		Arch:      prof.Arch,
		BuildDate: now,
		SHA256:    sum,
		Packages:  countPackages(pkgs),
	}
	if err := writeManifest(manifestPath, manifest); err != nil {
		return nil, err
	}

	if err := b.chown(ctx, b.Paths.OutputDir); err != nil {
		b.Log.Warn("could not change output ownership", "err", err)
	}

	return &Result{
		ISOPath:         final,
		ChecksumPath:    sidecar,
		PackageListPath: pkgs,
		ManifestPath:    manifestPath,
	}, nil
}
