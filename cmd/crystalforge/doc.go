// SPDX-License-Identifier: MPL-2.0

// crystalforge builds the Crystal Linux live/installer ISO.
//
// The CLI wraps the external tools that do the heavy lifting (mkarchiso,
// pacman, rsync, podman/docker) and owns everything around them: package
// list normalization, work/output directory management, image
// post-processing, and running the whole build inside a container.
package main
