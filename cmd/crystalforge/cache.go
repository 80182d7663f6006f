// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"crystalforge/internal/pacman"

	"github.com/spf13/cobra"
)

var (
	cacheDir string

	// cacheCmd seeds the offline driver package cache.
	cacheCmd = &cobra.Command{
		Use:   "cache [file]",
		Short: "Download driver packages into the offline cache",
		Long: `Download every package named in a package list into the local
cache directory, without installing anything. The live ISO ships this
cache so the installer can set up GPU and network drivers offline.

Without an argument, the driver list from the configuration is used
(pacman/drivers.txt by default).`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCache,
	}
)

func init() {
	cacheCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "cache directory (default from config)")
}

func runCache(cmd *cobra.Command, args []string) error {
	list := cfg.DriverList
	if len(args) > 0 {
		list = args[0]
	}
	dir := cfg.CacheDir
	if cacheDir != "" {
		dir = cacheDir
	}

	cmd.SilenceUsage = true

	cache := pacman.NewCache(dir, newLogger())
	if err := cache.Download(cmd.Context(), list); err != nil {
		return err
	}

	fmt.Printf("%s Cached packages from %s in %s\n",
		SuccessStyle.Render("✓"), PathStyle.Render(list), PathStyle.Render(dir))
	return nil
}
