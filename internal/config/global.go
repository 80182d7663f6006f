// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride lets tests redirect the config directory, because
// os.UserHomeDir does not reliably respect HOME on every platform.
var configDirOverride string

// configFileOverride holds the --config flag value; when set, only that
// file is consulted.
var configFileOverride string

// SetDirOverride redirects the config directory (tests only).
func SetDirOverride(dir string) {
	configDirOverride = dir
}

// SetFileOverride makes Load read exactly the given file.
func SetFileOverride(path string) {
	configFileOverride = path
}

// Reset clears all overrides; call from test cleanup.
func Reset() {
	configDirOverride = ""
	configFileOverride = ""
}
