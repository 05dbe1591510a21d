package diag

import (
	"ngmigrate/internal/source"
)

// Note attaches secondary context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one reported finding with its primary location.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// WithNote returns a copy of d with an extra note appended.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
