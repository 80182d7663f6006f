// SPDX-License-Identifier: MPL-2.0

// Package pacman prefetches packages into a local cache directory.
//
// The live ISO ships a seeded pacman cache (mainly GPU and network driver
// packages) so the installer works offline. This package reads a
// package-list file, resolves it to a deduplicated set of names, and asks
// pacman to download them into the cache without installing anything.
package pacman
