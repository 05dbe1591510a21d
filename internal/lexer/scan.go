package lexer

import (
	"ngmigrate/internal/token"
)

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') ||
		b >= 0x80 // any non-ASCII byte may start a Unicode identifier
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDec(b)
}

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	mark := lx.cursor.Mark()
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	text := lx.cursor.TextFrom(mark)
	return token.Token{
		Kind: token.LookupIdent(text),
		Span: lx.cursor.SpanFrom(mark),
		Text: text,
	}
}

func (lx *Lexer) scanPrivateIdent() token.Token {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return token.Token{
		Kind: token.PrivateIdent,
		Span: lx.cursor.SpanFrom(mark),
		Text: lx.cursor.TextFrom(mark),
	}
}

// scanNumber consumes a numeric literal loosely: digits, separators,
// dots, exponents, and hex/bin/oct prefixes. The rewriter never interprets
// the value, only the extent.
func (lx *Lexer) scanNumber() token.Token {
	mark := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isDec(b) || isIdentContinue(b) || b == '.' || b == '_' {
			// 'e+'/'e-' exponents carry a sign after the letter
			if (b == 'e' || b == 'E') &&
				(lx.cursor.PeekAt(1) == '+' || lx.cursor.PeekAt(1) == '-') {
				lx.cursor.Bump()
			}
			lx.cursor.Bump()
			continue
		}
		break
	}
	return token.Token{
		Kind: token.NumberLit,
		Span: lx.cursor.SpanFrom(mark),
		Text: lx.cursor.TextFrom(mark),
	}
}

func (lx *Lexer) scanString(quote byte) token.Token {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	closed := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' && !lx.cursor.EOF() {
			lx.cursor.Bump()
			continue
		}
		if b == quote {
			closed = true
			break
		}
		if b == '\n' {
			break
		}
	}
	span := lx.cursor.SpanFrom(mark)
	if !closed {
		lx.report(ReportUnterminatedString, span, "unterminated string literal")
	}
	return token.Token{
		Kind: token.StringLit,
		Span: span,
		Text: lx.cursor.TextFrom(mark),
	}
}

// regexAllowed reports whether a '/' at the current position starts a
// regular expression literal. A regex can only stand where an expression
// may begin, so '/' right after a token that ends an expression is
// division instead.
func (lx *Lexer) regexAllowed() bool {
	switch lx.prev.Kind {
	case token.Ident:
		// statement and operator words lex as Ident; an expression may
		// begin right after them
		switch lx.prev.Text {
		case "return", "throw", "case", "in", "of", "do", "else",
			"typeof", "instanceof", "void", "delete", "yield", "await":
			return true
		}
		return false
	case token.PrivateIdent, token.NumberLit, token.StringLit,
		token.TemplateLit, token.RegexLit, token.RParen, token.RBracket,
		token.KwThis, token.KwSuper:
		return false
	default:
		return true
	}
}

// scanRegex consumes a /pattern/flags literal as one token so delimiter
// balancing never sees the pattern's content. Inside a character class a
// '/' is literal and does not close the regex.
func (lx *Lexer) scanRegex() token.Token {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // opening '/'
	closed := false
	inClass := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
		switch {
		case b == '\\' && !lx.cursor.EOF() && lx.cursor.Peek() != '\n':
			lx.cursor.Bump()
		case b == '[':
			inClass = true
		case b == ']':
			inClass = false
		case b == '/' && !inClass:
			closed = true
		}
		if closed {
			break
		}
	}
	if closed {
		for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
			lx.cursor.Bump() // flags
		}
	}
	span := lx.cursor.SpanFrom(mark)
	if !closed {
		lx.report(ReportUnterminatedRegex, span, "unterminated regular expression literal")
	}
	return token.Token{
		Kind: token.RegexLit,
		Span: span,
		Text: lx.cursor.TextFrom(mark),
	}
}

// scanTemplate consumes a backtick template literal including any ${...}
// interpolations, tracking nested braces and skipping strings inside them.
func (lx *Lexer) scanTemplate() token.Token {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // opening backtick
	closed := false

	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		switch {
		case b == '\\' && !lx.cursor.EOF():
			lx.cursor.Bump()
		case b == '`':
			closed = true
		case b == '$' && lx.cursor.Peek() == '{':
			lx.cursor.Bump()
			lx.skipInterpolation()
		}
		if closed {
			break
		}
	}

	span := lx.cursor.SpanFrom(mark)
	if !closed {
		lx.report(ReportUnterminatedTemplate, span, "unterminated template literal")
	}
	return token.Token{
		Kind: token.TemplateLit,
		Span: span,
		Text: lx.cursor.TextFrom(mark),
	}
}

// skipInterpolation consumes up to and including the '}' matching an already
// consumed '${', balancing inner braces and skipping nested literals.
func (lx *Lexer) skipInterpolation() {
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		b := lx.cursor.Peek()
		switch b {
		case '{':
			depth++
			lx.cursor.Bump()
		case '}':
			depth--
			lx.cursor.Bump()
		case '"', '\'':
			lx.scanString(b)
		case '`':
			lx.scanTemplate()
		default:
			lx.cursor.Bump()
		}
	}
}

func (lx *Lexer) scanPunct() token.Token {
	mark := lx.cursor.Mark()
	b := lx.cursor.Bump()

	kind := token.Other
	switch b {
	case '@':
		kind = token.At
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '<':
		kind = token.Lt
	case '>':
		kind = token.Gt
	case ',':
		kind = token.Comma
	case ':':
		kind = token.Colon
	case ';':
		kind = token.Semicolon
	case '?':
		kind = token.Question
	case '!':
		kind = token.Bang
	case '|':
		kind = token.Pipe
	case '&':
		kind = token.Amp
	case '.':
		kind = token.Dot
		if lx.cursor.Peek() == '.' && lx.cursor.PeekAt(1) == '.' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			kind = token.Ellipsis
		}
	case '=':
		kind = token.Assign
		if lx.cursor.Peek() == '>' {
			lx.cursor.Bump()
			kind = token.Arrow
		} else if lx.cursor.Peek() == '=' {
			// '==' / '===' are a single Other token
			lx.cursor.Bump()
			if lx.cursor.Peek() == '=' {
				lx.cursor.Bump()
			}
			kind = token.Other
		}
	}

	return token.Token{
		Kind: kind,
		Span: lx.cursor.SpanFrom(mark),
		Text: lx.cursor.TextFrom(mark),
	}
}
