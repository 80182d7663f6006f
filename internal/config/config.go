// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"crystalforge/internal/issue"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "crystalforge"
	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

// Config is the full tool configuration.
type Config struct {
	// ProfileDir is the archiso profile source directory.
	ProfileDir string `mapstructure:"profile_dir"`
	// WorkDir is the mkarchiso scratch directory.
	WorkDir string `mapstructure:"work_dir"`
	// OutputDir receives the built image and sidecar files.
	OutputDir string `mapstructure:"output_dir"`
	// PackageList is the section-organized main package list, the default
	// target of 'crystalforge sort'.
	PackageList string `mapstructure:"package_list"`
	// DriverList is the flat driver package list, the default target of
	// 'crystalforge fmt' and the input of 'crystalforge cache'.
	DriverList string `mapstructure:"driver_list"`
	// CacheDir is where 'crystalforge cache' downloads packages.
	CacheDir string `mapstructure:"cache_dir"`

	Container ContainerConfig `mapstructure:"container"`
	UI        UIConfig        `mapstructure:"ui"`
}

// ContainerConfig configures the containerized build.
type ContainerConfig struct {
	// Engine is auto, podman, or docker.
	Engine string `mapstructure:"engine"`
	// Image is the build environment image; empty means the built-in
	// archlinux default.
	Image string `mapstructure:"image"`
}

// UIConfig configures output behavior.
type UIConfig struct {
	Verbose bool `mapstructure:"verbose"`
}

// Default returns the configuration used when no file or env overrides are
// present. Paths are relative to the repository root the tool runs in.
func Default() *Config {
	return &Config{
		ProfileDir:  "archiso",
		WorkDir:     filepath.Join("build", "work"),
		OutputDir:   filepath.Join("build", "out"),
		PackageList: filepath.Join("archiso", "packages.x86_64"),
		DriverList:  filepath.Join("pacman", "drivers.txt"),
		CacheDir:    filepath.Join("pacman", "cache"),
		Container: ContainerConfig{
			Engine: "auto",
		},
	}
}

// Dir returns the crystalforge configuration directory using the platform
// convention: %APPDATA% on Windows, ~/Library/Application Support on macOS,
// $XDG_CONFIG_HOME (default ~/.config) elsewhere.
func Dir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string
	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(configDir, AppName), nil
}

// Load reads the configuration, layering defaults, the config file (when
// present), and CRYSTALFORGE_* environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType(ConfigFileExt)

	defaults := Default()
	v.SetDefault("profile_dir", defaults.ProfileDir)
	v.SetDefault("work_dir", defaults.WorkDir)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("package_list", defaults.PackageList)
	v.SetDefault("driver_list", defaults.DriverList)
	v.SetDefault("cache_dir", defaults.CacheDir)
	v.SetDefault("container.engine", defaults.Container.Engine)
	v.SetDefault("container.image", defaults.Container.Image)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix("CRYSTALFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFileOverride != "" {
		// An explicitly requested file must exist.
		if _, err := os.Stat(configFileOverride); err != nil {
			return nil, issue.New("load configuration").
				On(configFileOverride).
				Hint("Check the --config path").
				Wrap(err)
		}
		v.SetConfigFile(configFileOverride)
		if err := v.ReadInConfig(); err != nil {
			return nil, issue.New("parse configuration").On(configFileOverride).Wrap(err)
		}
	} else {
		dir, err := Dir()
		if err == nil {
			path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
			if _, err := os.Stat(path); err == nil {
				v.SetConfigFile(path)
				if err := v.ReadInConfig(); err != nil {
					return nil, issue.New("parse configuration").On(path).Wrap(err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, issue.New("decode configuration").Wrap(err)
	}
	return cfg, nil
}
