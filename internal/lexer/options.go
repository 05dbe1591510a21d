package lexer

import (
	"ngmigrate/internal/source"
)

// Reporter is a thin interface so the lexer does not depend on diag.
// The lexer only calls it; formatting happens in an outer layer.
type Reporter interface {
	Report(kind string, span source.Span, msg string)
}

// Error kinds passed to Reporter.
const (
	ReportUnterminatedString   = "unterminated-string"
	ReportUnterminatedTemplate = "unterminated-template"
	ReportUnterminatedComment  = "unterminated-comment"
	ReportUnterminatedRegex    = "unterminated-regex"
)

// Options configures a Lexer.
type Options struct {
	Reporter Reporter // may be nil; errors are then dropped but lexing continues
}

func (lx *Lexer) report(kind string, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(kind, sp, msg)
	}
}
