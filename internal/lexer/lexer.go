package lexer

import (
	"ngmigrate/internal/source"
	"ngmigrate/internal/token"
)

// Lexer scans a TypeScript-subset token stream from one file. Whitespace and
// comments are consumed silently; string, template, and regex literals are
// kept whole so delimiter balancing never sees their content.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // single-token lookahead buffer
	prev   token.Token  // last token scanned from the source, for '/' disambiguation
}

// New creates a lexer over the whole file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// NewAt creates a lexer restricted to span. The parser uses it to rescan
// captured body spans.
func NewAt(file *source.File, span source.Span, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursorAt(file, span),
		opts:   opts,
	}
}

// Next returns the next significant token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case isIdentStart(ch):
		tok = lx.scanIdentOrKeyword()
	case ch == '#' && isIdentStart(lx.cursor.PeekAt(1)):
		tok = lx.scanPrivateIdent()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'':
		tok = lx.scanString(ch)
	case ch == '`':
		tok = lx.scanTemplate()
	case ch == '/' && lx.regexAllowed():
		tok = lx.scanRegex()
	default:
		tok = lx.scanPunct()
	}
	lx.prev = tok
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan returns a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// skipTrivia consumes whitespace and // and /* */ comments.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			lx.cursor.Bump()
		case ch == '/' && lx.cursor.PeekAt(1) == '/':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case ch == '/' && lx.cursor.PeekAt(1) == '*':
			mark := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.cursor.Bump()
			closed := false
			for !lx.cursor.EOF() {
				if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					closed = true
					break
				}
				lx.cursor.Bump()
			}
			if !closed {
				lx.report(ReportUnterminatedComment, lx.cursor.SpanFrom(mark), "unterminated block comment")
			}
		default:
			return
		}
	}
}
