package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cite/internal/checker"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the persistent scan cache",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove all cached scan results",
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := checker.OpenDiskCache("cite")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to clean cache: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "scan cache cleaned")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheCleanCmd)
}
