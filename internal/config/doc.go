// SPDX-License-Identifier: MPL-2.0

// Package config loads the crystalforge configuration.
//
// Configuration is a TOML file at the platform config dir
// ($XDG_CONFIG_HOME/crystalforge/config.toml on Linux), with every key
// overridable through CRYSTALFORGE_* environment variables. All keys have
// working defaults, so the file is optional; a missing file is not an
// error, but a file explicitly passed with --config must exist.
package config
