package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ngmigrate/internal/driver"
	"ngmigrate/internal/project"
)

// resolveTarget turns the optional positional argument into a directory.
// A file argument resolves to its own directory would be surprising, so
// files are rejected; single-file runs go through inspect.
func resolveTarget(args []string) (string, error) {
	target := "."
	if len(args) > 0 && args[0] != "" {
		target = args[0]
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", target, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("failed to stat %q: %w", target, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%q is not a directory (use 'ngmigrate inspect' for single files)", target)
	}
	return abs, nil
}

// batchOptions assembles the shared part of a batch run from the root
// flags, the manifest found above dir, and any extra exclude globs.
func batchOptions(cmd *cobra.Command, dir string, extraExclude []string, useCache bool) (driver.BatchOptions, error) {
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return driver.BatchOptions{}, err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.BatchOptions{}, err
	}

	manifest, err := project.Load(dir)
	if err != nil {
		return driver.BatchOptions{}, err
	}

	opts := driver.BatchOptions{
		Dir:            dir,
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		Exclude:        append(manifest.Exclude(), extraExclude...),
		Migrate:        manifest.Options(),
		ConfigDigest:   manifest.ConfigDigest(),
	}
	if useCache {
		cache, err := driver.OpenCleanCache("ngmigrate")
		if err == nil {
			opts.Cache = cache
		}
		// a cache that cannot be opened just means no caching
	}
	return opts, nil
}

func useColor(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(os.Stdout), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
}

func quiet(cmd *cobra.Command) bool {
	q, err := cmd.Root().PersistentFlags().GetBool("quiet")
	return err == nil && q
}
