package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ngmigrate/internal/ast"
	"ngmigrate/internal/diag"
	"ngmigrate/internal/diagfmt"
	"ngmigrate/internal/driver"
	"ngmigrate/internal/lexer"
	"ngmigrate/internal/migrate"
	"ngmigrate/internal/parser"
	"ngmigrate/internal/project"
	"ngmigrate/internal/source"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.ts>",
	Short: "Show the dependency lines found in one file",
	Long: `Parse a single file and show every constructor dependency the
migration would touch, without writing anything.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	inspectCmd.Flags().Bool("rewrite", false, "print the rewritten file text to stdout")
}

type inspectEntry struct {
	Class      string `json:"class"`
	Dependency string `json:"dependency"`
	Token      string `json:"token"`
	Generic    string `json:"generic,omitempty"`
	Eligible   bool   `json:"eligible"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	rewrite, err := cmd.Flags().GetBool("rewrite")
	if err != nil {
		return err
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", args[0], err)
	}
	manifest, err := project.Load(filepath.Dir(path))
	if err != nil {
		return err
	}
	opts := manifest.Options()

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	if rewrite {
		return printRewritten(cmd, path, opts, maxDiagnostics)
	}

	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load %q: %w", args[0], err)
	}

	bag := diag.NewBag(maxDiagnostics)
	rep := &diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(fileSet.Get(fileID), lexer.Options{Reporter: driver.NewLexReporter(rep)})
	parsed := parser.ParseFile(fileSet, lx, b, parser.Options{Reporter: rep})

	var entries []inspectEntry
	if !bag.HasErrors() {
		res := migrate.RewriteFile(fileSet, b, parsed.File, opts, rep)
		entries = collectEntries(b, &res)
	}

	colored, err := useColor(cmd)
	if err != nil {
		return err
	}
	bag.Sort()
	diagfmt.Pretty(os.Stderr, bag, fileSet, diagfmt.PrettyOpts{
		Color:    colored,
		PathMode: diagfmt.PathModeBasename,
	})

	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	for _, e := range entries {
		expr := opts.InjectFn
		if e.Generic != "" {
			expr += "<" + e.Generic + ">"
		}
		expr += "(" + e.Token + ")"
		fmt.Fprintf(cmd.OutOrStdout(), "%s.%s -> %s\n", e.Class, e.Dependency, expr)
	}
	if len(entries) == 0 && !quiet(cmd) {
		fmt.Fprintln(cmd.OutOrStdout(), "no dependency lines found")
	}
	if bag.HasErrors() {
		os.Exit(1)
	}
	return nil
}

// collectEntries walks the rewrites and pairs registry metadata with the
// class each migrated parameter came from.
func collectEntries(b *ast.Builder, res *migrate.FileResult) []inspectEntry {
	var entries []inspectEntry
	for i := range res.Rewrites {
		rw := &res.Rewrites[i]
		className := b.Classes.Get(rw.Class).Name
		for _, paramID := range rw.Migrated {
			param := b.Params.Get(paramID)
			meta, ok := res.Registry.Lookup(param.Name)
			if !ok {
				continue
			}
			entries = append(entries, inspectEntry{
				Class:      className,
				Dependency: meta.DependencyName,
				Token:      meta.Token,
				Generic:    meta.Generic,
				Eligible:   meta.Eligible,
			})
		}
	}
	return entries
}

func printRewritten(cmd *cobra.Command, path string, opts migrate.Options, maxDiagnostics int) error {
	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load %q: %w", path, err)
	}
	res := driver.Process(fileSet, fileID, opts, maxDiagnostics)
	if res.Bag.HasErrors() {
		colored, cerr := useColor(cmd)
		if cerr != nil {
			return cerr
		}
		diagfmt.Pretty(os.Stderr, res.Bag, fileSet, diagfmt.PrettyOpts{
			Color:    colored,
			PathMode: diagfmt.PathModeBasename,
		})
		os.Exit(1)
	}
	if res.Changed {
		_, err = cmd.OutOrStdout().Write(res.NewContent)
	} else {
		_, err = cmd.OutOrStdout().Write(fileSet.Get(fileID).Content)
	}
	return err
}
