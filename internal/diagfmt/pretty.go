package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ngmigrate/internal/diag"
	"ngmigrate/internal/source"
)

// Pretty renders diagnostics for humans. Expects a sorted bag. For each
// diagnostic it prints
//
//	<path>:<line>:<col>: <severity> <CODE>: <message>
//
// followed by the source line with a ^~~~ underline under the span, and
// the notes when enabled.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	for _, d := range bag.Items() {
		printOne(w, &d, fs, &opts)
	}
}

func printOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts *PrettyOpts) {
	loc := formatLocation(fs, d.Primary, opts)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		loc,
		severityLabel(d.Severity, opts.Color),
		codeLabel(d.Code, opts.Color),
		d.Message,
	)
	printContext(w, fs, d.Primary, opts)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			noteLoc := formatLocation(fs, note.Span, opts)
			fmt.Fprintf(w, "  %s: note: %s\n", noteLoc, note.Msg)
		}
	}
}

// printContext emits the source line and a caret underline clamped to it.
func printContext(w io.Writer, fs *source.FileSet, span source.Span, opts *PrettyOpts) {
	if fs == nil || (span.Empty() && span.Start == 0) {
		return
	}
	file := fs.Get(span.File)
	if file == nil {
		return
	}
	start, end := fs.Resolve(span)
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}
	line = strings.TrimRight(line, "\r\n")
	if opts.Width > 0 && runewidth.StringWidth(line) > opts.Width {
		line = runewidth.Truncate(line, opts.Width, "...")
	}

	gutter := fmt.Sprintf("%4d", start.Line)
	fmt.Fprintf(w, "%s | %s\n", gutter, line)

	prefixWidth := runewidth.StringWidth(line[:min(int(start.Col-1), len(line))])
	underlineLen := 1
	if end.Line == start.Line && end.Col > start.Col {
		underlineLen = int(end.Col - start.Col)
	}
	underline := "^"
	if underlineLen > 1 {
		underline += strings.Repeat("~", underlineLen-1)
	}
	if opts.Color {
		underline = color.New(color.FgRed, color.Bold).Sprint(underline)
	}
	fmt.Fprintf(w, "%s | %s%s\n", strings.Repeat(" ", len(gutter)), strings.Repeat(" ", prefixWidth), underline)
}

func formatLocation(fs *source.FileSet, span source.Span, opts *PrettyOpts) string {
	if fs == nil {
		return "<unknown>"
	}
	file := fs.Get(span.File)
	if file == nil {
		return "<unknown>"
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", file.FormatPath(opts.PathMode.String(), opts.BaseDir), start.Line, start.Col)
}

func severityLabel(sev diag.Severity, colored bool) string {
	label := sev.String()
	if !colored {
		return label
	}
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold).Sprint(label)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold).Sprint(label)
	default:
		return color.New(color.FgCyan).Sprint(label)
	}
}

func codeLabel(code diag.Code, colored bool) string {
	id := code.ID()
	if !colored {
		return id
	}
	return color.New(color.Bold).Sprint(id)
}
