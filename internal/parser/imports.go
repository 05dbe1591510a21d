package parser

import (
	"ngmigrate/internal/ast"
	"ngmigrate/internal/diag"
	"ngmigrate/internal/token"
)

// parseImport handles one import statement. Dynamic import() calls and
// import.meta are not declarations and fall back to plain skipping.
func (p *Parser) parseImport() {
	importTok := p.bump()
	decl := ast.ImportDecl{Span: importTok.Span}

	switch p.lx.Peek().Kind {
	case token.LParen, token.Dot:
		// import(...) / import.meta expression, not a declaration
		return
	case token.KwType:
		// type-only imports carry no runtime binding but are still
		// declarations; treated like value imports for structure
		p.bump()
	}

	t := p.lx.Peek()
	switch {
	case t.Kind == token.StringLit:
		// side-effect import: import './setup';
		p.bump()
		decl.Module = unquote(t.Text)
		p.eatSemi()
		decl.Span = importTok.Span.Cover(p.lastSpan)
		p.appendImport(decl)
		return
	case t.IsIdentLike():
		decl.Default = p.bump().Text
		if p.at(token.Comma) {
			p.bump()
			p.parseImportClause(&decl)
		}
	case t.Kind == token.LBrace || (t.Kind == token.Other && t.Text == "*"):
		p.parseImportClause(&decl)
	default:
		p.err(diag.SynUnexpectedToken, t.Span, "expected import clause")
		return
	}

	if !p.at(token.KwFrom) {
		p.err(diag.SynExpectModuleSpec, p.lastSpan, "expected 'from' in import declaration")
		return
	}
	p.bump()
	spec := p.lx.Peek()
	if spec.Kind != token.StringLit {
		p.err(diag.SynExpectModuleSpec, spec.Span, "expected module specifier string")
		return
	}
	p.bump()
	decl.Module = unquote(spec.Text)
	p.eatSemi()
	decl.Span = importTok.Span.Cover(p.lastSpan)
	p.appendImport(decl)
}

// parseImportClause parses the named-brace or namespace part after the
// optional default binding.
func (p *Parser) parseImportClause(decl *ast.ImportDecl) {
	t := p.lx.Peek()
	if t.Kind == token.Other && t.Text == "*" {
		p.bump()
		if p.at(token.KwAs) {
			p.bump()
			if p.lx.Peek().IsIdentLike() {
				// namespace binding; recorded as the default slot since
				// both bind a single local name
				if decl.Default == "" {
					decl.Default = p.lx.Peek().Text
				}
				p.bump()
			}
		}
		return
	}
	if t.Kind != token.LBrace {
		p.err(diag.SynUnexpectedToken, t.Span, "expected '{' in import clause")
		return
	}
	lbrace := p.bump()
	for {
		nt := p.lx.Peek()
		switch {
		case nt.Kind == token.RBrace:
			p.bump()
			decl.NamedClose = nt.Span
			return
		case nt.Kind == token.EOF:
			p.err(diag.SynUnclosedDelimiter, lbrace.Span, "unclosed '{' in import clause")
			return
		case nt.Kind == token.Comma:
			p.bump()
		case nt.IsIdentLike():
			p.bump()
			if nt.Kind == token.KwType && p.lx.Peek().IsIdentLike() && !p.at(token.KwAs) {
				continue // inline `type` marker, the binding name follows
			}
			name := ast.ImportedName{Name: nt.Text, Span: nt.Span}
			if p.at(token.KwAs) {
				p.bump()
				if alias := p.lx.Peek(); alias.IsIdentLike() {
					p.bump()
					name.Alias = alias.Text
					name.Span = nt.Span.Cover(alias.Span)
				}
			}
			decl.Named = append(decl.Named, name)
		default:
			p.err(diag.SynExpectIdentifier, nt.Span, "expected import binding name")
			p.bump()
		}
	}
}

func (p *Parser) appendImport(decl ast.ImportDecl) {
	f := p.arenas.Files.Get(p.file)
	f.Imports = append(f.Imports, decl)
}

func (p *Parser) eatSemi() {
	if p.at(token.Semicolon) {
		p.bump()
	}
}

// unquote strips the surrounding quote pair from a string literal's text.
func unquote(text string) string {
	if len(text) >= 2 {
		return text[1 : len(text)-1]
	}
	return text
}
