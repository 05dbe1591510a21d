package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ngmigrate/internal/diag"
	"ngmigrate/internal/diagfmt"
	"ngmigrate/internal/driver"
	"ngmigrate/internal/observ"
)

var checkCmd = &cobra.Command{
	Use:   "check [directory]",
	Short: "Report files that still use constructor injection",
	Long: `Run the migration as a dry run and report every file that would
change. Exits non-zero when at least one file needs migration or fails to
parse; CI-friendly.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().StringArray("exclude", nil, "glob of files to skip (repeatable, adds to manifest excludes)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir, err := resolveTarget(args)
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	switch format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, json or short)", format)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return err
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
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

	// check never consults the cache: its whole point is a full look.
	opts, err := batchOptions(cmd, dir, extraExclude, false)
	if err != nil {
		return err
	}
	opts.Write = false

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
		opts.Timer = timer
	}

	result, err := driver.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}
	if timer != nil {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	bag := result.Bag(maxDiagnostics)

	pathMode := diagfmt.PathModeRelative
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch format {
	case "pretty":
		colored, err := useColor(cmd)
		if err != nil {
			return err
		}
		diagfmt.Pretty(cmd.OutOrStdout(), bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     colored,
			PathMode:  pathMode,
			ShowNotes: withNotes,
			BaseDir:   dir,
		})
		if !quiet(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "%d files need migration (%d clean, %d errors)\n",
				result.Changed, result.Clean, result.Errors)
		}
	case "short":
		output := diag.FormatShort(bag.Items(), result.FileSet, withNotes)
		if output != "" {
			fmt.Fprintln(cmd.OutOrStdout(), output)
		}
	case "json":
		err := diagfmt.JSON(cmd.OutOrStdout(), bag, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
			Max:              maxDiagnostics,
			BaseDir:          dir,
		})
		if err != nil {
			return err
		}
	}

	if result.Changed > 0 || result.Errors > 0 {
		stopProfiling()
		os.Exit(1)
	}
	return nil
}
