package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ngmigrate/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter " + project.ManifestName,
	Long: `Create a ` + project.ManifestName + ` with the default settings spelled
out, ready to edit. Refuses to overwrite an existing manifest.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const starterManifest = `[migrate]
# class decorators that make a class eligible
decorators = ["Component", "Directive", "Pipe", "Injectable"]
# resolution function and the module it is imported from
inject_fn = "inject"
import_from = "@angular/core"
# "keyword" keeps access modifiers, "hash" emits #-private names
access_policy = "keyword"
# glob patterns to skip, relative to the project root
exclude = []
`

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 && args[0] != "" {
		target = args[0]
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", target, err)
	}

	if st, err := os.Stat(abs); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(abs, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", abs, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	manifestPath := filepath.Join(abs, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("already initialized: %s exists", manifestPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := os.WriteFile(manifestPath, []byte(starterManifest), 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", manifestPath, err)
	}
	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", manifestPath)
	}
	return nil
}
