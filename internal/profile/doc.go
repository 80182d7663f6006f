// SPDX-License-Identifier: MPL-2.0

// Package profile reads metadata from an archiso profile directory.
//
// An archiso profile describes the ISO in a profiledef.sh shell script
// (iso_name, iso_label, iso_version, arch, ...). Instead of sourcing the
// script, the file is parsed with mvdan.cc/sh and only literal top-level
// variable assignments are taken, so no profile code ever runs in this
// process. The package also derives the dated output file name and writes
// the distribution version file into the profile's airootfs tree.
package profile
