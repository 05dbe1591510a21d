package parser

import (
	"ngmigrate/internal/ast"
	"ngmigrate/internal/diag"
	"ngmigrate/internal/source"
	"ngmigrate/internal/token"
)

// parseClass parses a class declaration, attaching the buffered decorators.
// Returns false when the 'class' token turns out not to start a declaration
// (property name position, anonymous class expression); the token is then
// consumed and the buffer left to the caller.
func (p *Parser) parseClass(pending []ast.DecoratorID) bool {
	classTok := p.bump()
	if !p.lx.Peek().IsIdentLike() {
		return false
	}
	nameTok := p.bump()

	start := classTok.Span
	if len(pending) > 0 {
		start = p.arenas.Decorators.Get(pending[0]).Span
	}
	classID := p.arenas.Classes.New(start, p.file, nameTok.Text)
	cls := p.arenas.Classes.Get(classID)
	cls.Decorators = pending

	// type parameters
	if p.at(token.Lt) {
		p.skipAngles(p.bump())
	}

	if p.at(token.KwExtends) {
		p.bump()
		cls.SuperName = p.parseHeritageRef()
	}
	if p.at(token.KwImplements) {
		p.bump()
		p.skipToBody()
	}

	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, p.lx.Peek().Span, "expected '{' to open class body")
		return true
	}
	lbrace := p.bump()
	rbrace := p.parseMembers(classID, lbrace)

	cls = p.arenas.Classes.Get(classID)
	cls.BodySpan = source.Span{File: lbrace.Span.File, Start: lbrace.Span.End, End: rbrace.Span.Start}
	cls.Span = start.Cover(rbrace.Span)
	p.arenas.PushClass(p.file, classID)
	return true
}

// parseHeritageRef captures the extends expression's leading identifier
// path. Mixin calls and type arguments after the path are skipped.
func (p *Parser) parseHeritageRef() string {
	if !p.lx.Peek().IsIdentLike() {
		p.err(diag.SynExpectIdentifier, p.lx.Peek().Span, "expected superclass name after 'extends'")
		return ""
	}
	name := p.bump().Text
	for p.at(token.Dot) {
		p.bump()
		if !p.lx.Peek().IsIdentLike() {
			break
		}
		name += "." + p.bump().Text
	}
	if p.at(token.LParen) {
		p.skipBalanced(p.bump())
	}
	if p.at(token.Lt) {
		p.skipAngles(p.bump())
	}
	return name
}

// skipToBody consumes the implements clause up to the class body brace.
func (p *Parser) skipToBody() {
	for {
		t := p.lx.Peek()
		switch t.Kind {
		case token.LBrace, token.EOF:
			return
		case token.Lt:
			p.skipAngles(p.bump())
		default:
			p.bump()
		}
	}
}

// parseMembers scans the class body. Constructors are parsed in full;
// every other member becomes a raw span. Returns the closing brace token.
func (p *Parser) parseMembers(classID ast.ClassID, lbrace token.Token) token.Token {
	for {
		t := p.lx.Peek()
		switch t.Kind {
		case token.RBrace:
			return p.bump()
		case token.EOF:
			p.err(diag.SynUnclosedDelimiter, lbrace.Span, "unclosed class body")
			return t
		case token.Semicolon:
			p.bump() // stray separators between members
		default:
			p.parseMember(classID)
		}
	}
}

// parseMember parses one member starting at the current token.
func (p *Parser) parseMember(classID ast.ClassID) {
	start := p.lx.Peek().Span

	for p.at(token.At) {
		p.parseDecorator() // member decorators are not modeled, only skipped
	}

	for {
		t := p.lx.Peek()
		if t.Kind.IsModifier() || t.Kind == token.KwStatic ||
			t.Kind == token.KwAbstract || t.Kind == token.KwDeclare ||
			t.Kind == token.KwAsync {
			p.bump()
			continue
		}
		break
	}

	if p.at(token.KwConstructor) {
		p.bump()
		if p.at(token.LParen) {
			p.parseCtor(classID, start)
			return
		}
		// 'constructor' used as a plain name; fall through as raw
	}

	p.finishRawMember(classID, start)
}

// finishRawMember consumes the remainder of an unmodeled member and records
// its span. A member ends at a top-level ';', after a balanced '{...}'
// block (plus an optional trailing ';'), or at the class's closing brace.
func (p *Parser) finishRawMember(classID ast.ClassID, start source.Span) {
	for {
		t := p.lx.Peek()
		switch {
		case t.Kind == token.EOF || t.Kind == token.RBrace:
			p.pushRaw(classID, start)
			return
		case t.Kind == token.Semicolon:
			p.bump()
			p.pushRaw(classID, start)
			return
		case t.Kind == token.LBrace:
			p.skipBalanced(p.bump())
			p.eatSemi()
			p.pushRaw(classID, start)
			return
		case t.Kind.IsOpenDelim():
			// '<' is deliberately not balanced here: in initializer
			// position it can be a comparison, and chasing a matching
			// '>' could run past the member's real end
			p.skipBalanced(p.bump())
		default:
			p.bump()
		}
	}
}

func (p *Parser) pushRaw(classID ast.ClassID, start source.Span) {
	sp := start
	if !p.lastSpan.Empty() && p.lastSpan.End > start.Start {
		sp = start.Cover(p.lastSpan)
	}
	id := p.arenas.Members.NewRaw(sp, classID)
	p.arenas.PushMember(classID, id)
}
