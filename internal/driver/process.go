package driver

import (
	"ngmigrate/internal/ast"
	"ngmigrate/internal/diag"
	"ngmigrate/internal/edit"
	"ngmigrate/internal/format"
	"ngmigrate/internal/imports"
	"ngmigrate/internal/lexer"
	"ngmigrate/internal/migrate"
	"ngmigrate/internal/parser"
	"ngmigrate/internal/source"
)

// ProcessResult is the outcome of migrating one file.
type ProcessResult struct {
	// NewContent is the rewritten text; nil when the file is clean.
	NewContent []byte
	Changed    bool
	// Migrated counts rewritten dependency lines across all classes.
	Migrated int
	Bag      *diag.Bag
}

// lexReporter adapts lexer reports into diagnostics.
type lexReporter struct{ rep diag.Reporter }

// NewLexReporter exposes the adapter for callers that run the lexer
// outside Process.
func NewLexReporter(rep diag.Reporter) lexer.Reporter {
	return lexReporter{rep: rep}
}

func (r lexReporter) Report(kind string, span source.Span, msg string) {
	code := diag.LexInfo
	switch kind {
	case lexer.ReportUnterminatedString:
		code = diag.LexUnterminatedString
	case lexer.ReportUnterminatedTemplate:
		code = diag.LexUnterminatedTemplate
	case lexer.ReportUnterminatedComment:
		code = diag.LexUnterminatedComment
	case lexer.ReportUnterminatedRegex:
		code = diag.LexUnterminatedRegex
	}
	diag.ReportError(r.rep, code, span, msg)
}

// Process lexes, parses and rewrites one already-loaded file. A file with
// lex or parse errors is left untouched; its diagnostics still come back.
func Process(fs *source.FileSet, fileID source.FileID, opts migrate.Options, maxDiagnostics int) ProcessResult {
	bag := diag.NewBag(maxDiagnostics)
	rep := &diag.BagReporter{Bag: bag}
	res := ProcessResult{Bag: bag}

	file := fs.Get(fileID)
	builder := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(file, lexer.Options{Reporter: lexReporter{rep: rep}})
	parsed := parser.ParseFile(fs, lx, builder, parser.Options{Reporter: rep})
	if bag.HasErrors() {
		return res
	}

	rewrite := migrate.RewriteFile(fs, builder, parsed.File, opts, rep)
	if !rewrite.Changed {
		return res
	}
	for i := range rewrite.Rewrites {
		res.Migrated += len(rewrite.Rewrites[i].Migrated)
	}

	out := format.Print(fs, builder, parsed.File, &rewrite)
	if rewrite.NeedsImport {
		patched, err := ensureImport(out, file.Path, opts)
		if err == nil {
			out = patched
		} else {
			diag.ReportWarning(rep, diag.IOWriteFileError, source.Span{File: fileID},
				"could not add the "+opts.InjectFn+" import: "+err.Error())
		}
	}

	res.NewContent = source.Denormalize(out, file.Flags)
	res.Changed = true
	return res
}

// ensureImport re-parses the rewritten text so import spans are valid
// against it, then splices the resolution-function import in.
func ensureImport(content []byte, path string, opts migrate.Options) ([]byte, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, content)
	builder := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(fs.Get(id), lexer.Options{})
	parsed := parser.ParseFile(fs, lx, builder, parser.Options{Reporter: diag.NopReporter{}})
	edits := imports.Ensure(builder, parsed.File, opts.InjectFn, opts.ImportFrom)
	return edit.Apply(content, edits)
}
