package token

import (
	"ngmigrate/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// Is reports whether the token has the given kind.
func (t Token) Is(k Kind) bool {
	return t.Kind == k
}

// IsIdentLike reports whether the token can serve as a name position:
// a plain identifier or a contextual keyword.
func (t Token) IsIdentLike() bool {
	return t.Kind == Ident || IsKeywordLike(t.Kind)
}

// IsLiteral reports whether the token is a literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, TemplateLit, RegexLit:
		return true
	default:
		return false
	}
}
