package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"ngmigrate/internal/source"
)

type renderedDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShort renders diagnostics into a stable single-line-per-entry form
// suitable for CLI output and test comparison:
// <severity> <code> <path>:<line>:<col> <message>
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]renderedDiagnostic, 0, len(diags))
	for i := range diags {
		rendered = appendRendered(rendered, &diags[i], fs, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendRendered(out []renderedDiagnostic, d *Diagnostic, fs *source.FileSet, includeNotes bool) []renderedDiagnostic {
	loc, ok := resolveSpan(fs, d.Primary)
	if ok {
		out = append(out, renderedDiagnostic{
			Severity: severityLabel(d.Severity),
			Code:     d.Code.ID(),
			Path:     loc.Path,
			Line:     loc.Line,
			Column:   loc.Column,
			Message:  sanitizeMessage(d.Message),
		})
	}

	if includeNotes {
		for _, note := range d.Notes {
			nloc, nok := resolveSpan(fs, note.Span)
			if !nok {
				continue
			}
			out = append(out, renderedDiagnostic{
				Severity: "note",
				Code:     d.Code.ID(),
				Path:     nloc.Path,
				Line:     nloc.Line,
				Column:   nloc.Column,
				Message:  sanitizeMessage(note.Msg),
			})
		}
	}

	return out
}

type resolvedSpan struct {
	Path   string
	Line   uint32
	Column uint32
}

func resolveSpan(fs *source.FileSet, span source.Span) (loc resolvedSpan, ok bool) {
	defer func() {
		if recover() != nil {
			loc = resolvedSpan{}
			ok = false
		}
	}()

	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	return resolvedSpan{
		Path:   normalizeRenderedPath(file.FormatPath("relative", fs.BaseDir())),
		Line:   start.Line,
		Column: start.Col,
	}, true
}

func normalizeRenderedPath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
