// SPDX-License-Identifier: MPL-2.0

// Package pkglist normalizes archiso package-list files.
//
// A package list is a plain-text file with one package name per line,
// optionally organized into sections by comment headers and blank lines.
// The package offers two transforms: a section-aware sort that deduplicates
// and orders entries within each section while leaving the section structure
// untouched, and a flat sort that treats the whole file as a single list.
// Both are pure functions over line slices; RewriteFile applies a transform
// to a file in place with an atomic temp-file-plus-rename write.
package pkglist
