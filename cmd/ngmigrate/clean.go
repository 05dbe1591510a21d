package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ngmigrate/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the clean-file result cache",
	Long: `Remove every record of files previously found clean. The next run
re-examines everything.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func runClean(cmd *cobra.Command, _ []string) error {
	cache, err := driver.OpenCleanCache("ngmigrate")
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to drop cache: %w", err)
	}
	if !quiet(cmd) {
		fmt.Fprintln(cmd.OutOrStdout(), "cache dropped")
	}
	return nil
}
