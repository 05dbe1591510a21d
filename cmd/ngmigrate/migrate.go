package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ngmigrate/internal/diagfmt"
	"ngmigrate/internal/driver"
	"ngmigrate/internal/observ"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [directory]",
	Short: "Rewrite constructor injection to inject() in place",
	Long: `Find every *.ts file under the directory (the working directory by
default), rewrite eligible classes, and save the changed files.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().Bool("dry-run", false, "report what would change without writing")
	migrateCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	migrateCmd.Flags().Bool("no-cache", false, "disable the clean-file result cache")
	migrateCmd.Flags().StringArray("exclude", nil, "glob of files to skip (repeatable, adds to manifest excludes)")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	dir, err := resolveTarget(args)
	if err != nil {
		return err
	}

	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	extraExclude, err := cmd.Flags().GetStringArray("exclude")
	if err != nil {
		return err
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	opts, err := batchOptions(cmd, dir, extraExclude, !noCache)
	if err != nil {
		return err
	}
	opts.Write = !dryRun

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
		opts.Timer = timer
	}

	title := "migrating"
	if dryRun {
		title = "migrating (dry run)"
	}

	var result *driver.BatchResult
	if shouldUseTUI(mode) && !quiet(cmd) {
		result, err = runBatchWithUI(cmd.Context(), title, opts)
	} else {
		if !quiet(cmd) {
			opts.Progress = plainProgress(cmd, dir)
		}
		result, err = driver.Run(cmd.Context(), opts)
	}
	if err != nil {
		return err
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	colored, err := useColor(cmd)
	if err != nil {
		return err
	}
	bag := result.Bag(maxDiagnostics)
	diagfmt.Pretty(os.Stderr, bag, result.FileSet, diagfmt.PrettyOpts{
		Color:    colored,
		PathMode: diagfmt.PathModeRelative,
		BaseDir:  dir,
	})

	if !quiet(cmd) {
		verb := "migrated"
		if dryRun {
			verb = "would migrate"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d files (%d clean, %d cached, %d errors)\n",
			verb, result.Changed, result.Clean, result.Cached, result.Errors)
	}
	if timer != nil {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	if result.Errors > 0 {
		stopProfiling()
		os.Exit(1)
	}
	return nil
}

// plainProgress prints one line per finished file. Safe for concurrent
// callers only because each call writes a single buffered line.
func plainProgress(cmd *cobra.Command, dir string) func(done, total int, report *driver.FileReport) {
	out := cmd.OutOrStdout()
	return func(done, total int, report *driver.FileReport) {
		label := report.Path
		if rel, err := filepath.Rel(dir, report.Path); err == nil {
			label = rel
		}
		fmt.Fprintf(out, "[%d/%d] %-8s %s\n", done, total, report.Status, label)
	}
}
