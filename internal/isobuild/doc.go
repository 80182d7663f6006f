// SPDX-License-Identifier: MPL-2.0

// Package isobuild drives a full Crystal Linux ISO build.
//
// The heavy lifting is delegated to mkarchiso; this package owns everything
// around it: resolving and preparing the work and output directories,
// copying the archiso profile into the work tree, stamping the version
// file, streaming mkarchiso output, and post-processing the produced image
// (canonical rename, SHA-256 sidecar, package-list copy, build manifest,
// ownership fixup). Builds targeting the same work directory are serialized
// with a file lock.
package isobuild
