package parser

import (
	"strings"

	"ngmigrate/internal/ast"
	"ngmigrate/internal/diag"
	"ngmigrate/internal/source"
	"ngmigrate/internal/token"
)

// parseCtor parses a constructor whose '(' is the current token. start is
// where the member (including modifiers) began.
func (p *Parser) parseCtor(classID ast.ClassID, start source.Span) {
	lparen := p.bump()
	params, rparen := p.parseParams(lparen)

	decl := ast.CtorDecl{
		Params:     params,
		HeadSpan:   start.Cover(rparen.Span),
		ParamsSpan: source.Span{File: lparen.Span.File, Start: lparen.Span.End, End: rparen.Span.Start},
	}

	switch p.lx.Peek().Kind {
	case token.LBrace:
		lbrace := p.bump()
		rbrace := p.scanCtorBody(lbrace)
		decl.BodySpan = source.Span{File: lbrace.Span.File, Start: lbrace.Span.End, End: rbrace.Span.Start}
		// text-based, so a comment-only body still counts: deleting the
		// constructor would silently discard the comment
		decl.BodyHasStatements = strings.TrimSpace(string(p.fs.Text(decl.BodySpan))) != ""
	case token.Semicolon:
		// overload signature, no body: keep it as an opaque member
		p.bump()
		p.pushRaw(classID, start)
		return
	default:
		p.err(diag.SynUnexpectedToken, p.lx.Peek().Span, "expected constructor body")
		p.pushRaw(classID, start)
		return
	}

	id := p.arenas.Members.NewCtor(start.Cover(p.lastSpan), classID, decl)
	for _, pid := range params {
		p.arenas.Params.Get(pid).Parent = id
	}
	p.arenas.PushMember(classID, id)
}

// scanCtorBody consumes the balanced body after its '{' and returns the
// closing brace.
func (p *Parser) scanCtorBody(lbrace token.Token) token.Token {
	depth := 1
	for {
		t := p.bump()
		switch t.Kind {
		case token.EOF:
			p.err(diag.SynUnclosedDelimiter, lbrace.Span, "unclosed constructor body")
			return t
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				return t
			}
		}
	}
}

// parseParams parses the parameter list after its '(' and returns the
// closing parenthesis token.
func (p *Parser) parseParams(lparen token.Token) ([]ast.ParamID, token.Token) {
	var params []ast.ParamID
	for {
		t := p.lx.Peek()
		switch t.Kind {
		case token.RParen:
			return params, p.bump()
		case token.EOF:
			p.err(diag.SynUnclosedDelimiter, lparen.Span, "unclosed parameter list")
			return params, t
		case token.Comma:
			p.bump()
		default:
			params = append(params, p.parseParam())
		}
	}
}

// parseParam parses one parameter: decorators, modifiers, name or pattern,
// optionality, type annotation, default value.
func (p *Parser) parseParam() ast.ParamID {
	start := p.lx.Peek().Span
	var param ast.Param
	param.Span = start

	for p.at(token.At) {
		if id, ok := p.parseDecorator(); ok {
			param.Decorators = append(param.Decorators, id)
		}
	}

	// Modifier keywords are contextual: `readonly` alone before ':' is the
	// parameter's name, not a modifier. Disambiguate after consuming.
	var nameTok token.Token
	haveName := false
	for {
		t := p.lx.Peek()
		if !t.Kind.IsModifier() {
			break
		}
		p.bump()
		switch p.lx.Peek().Kind {
		case token.Colon, token.Comma, token.RParen, token.Question, token.Assign:
			nameTok, haveName = t, true
		}
		if haveName {
			break
		}
		param.Modifiers |= modifierBit(t.Kind)
	}

	if !haveName && p.at(token.Ellipsis) {
		p.bump()
		param.Rest = true
	}

	switch {
	case haveName:
		param.Name = nameTok.Text
	case p.lx.Peek().IsIdentLike():
		param.Name = p.bump().Text
	case p.atAny(token.LBrace, token.LBracket):
		p.skipBalanced(p.bump())
		param.Pattern = true
	default:
		p.err(diag.SynExpectIdentifier, p.lx.Peek().Span, "expected parameter name")
		p.skipToParamEnd()
		param.Span = start.Cover(p.lastSpan)
		return p.arenas.Params.New(param)
	}

	if p.at(token.Question) {
		p.bump()
		param.Optional = true
	}
	if p.at(token.Colon) {
		p.bump()
		param.Type = p.parseTypeAnn()
	}
	if p.at(token.Assign) {
		p.bump()
		p.skipToParamEnd()
	}

	param.Span = start.Cover(p.lastSpan)
	return p.arenas.Params.New(param)
}

// parseTypeAnn captures a type annotation's tokens up to the next top-level
// ',' , ')' or '='. Angle brackets are balanced; a ')' at delimiter depth
// zero always ends the annotation even inside unbalanced angles.
func (p *Parser) parseTypeAnn() ast.TypeAnn {
	var toks []token.Token
	depth := 0
	angle := 0
	for {
		t := p.lx.Peek()
		if t.Kind == token.EOF {
			break
		}
		if depth == 0 {
			if t.Kind == token.RParen || t.Kind == token.RBrace || t.Kind == token.RBracket {
				break
			}
			if angle == 0 && (t.Kind == token.Comma || t.Kind == token.Assign) {
				break
			}
		}
		switch {
		case t.Kind.IsOpenDelim():
			depth++
		case t.Kind == token.RParen || t.Kind == token.RBrace || t.Kind == token.RBracket:
			depth--
		case t.Kind == token.Lt:
			angle++
		case t.Kind == token.Gt:
			if angle > 0 {
				angle--
			}
		}
		toks = append(toks, p.bump())
	}
	if len(toks) == 0 {
		p.err(diag.SynUnexpectedToken, p.lx.Peek().Span, "expected type after ':'")
		return ast.TypeAnn{}
	}

	span := toks[0].Span.Cover(toks[len(toks)-1].Span)
	ann := ast.TypeAnn{
		Span: span,
		Text: strings.TrimSpace(string(p.fs.Text(span))),
	}
	ann.BaseName, ann.DirectRef = analyzeTypeRef(toks)
	return ann
}

// analyzeTypeRef decides whether the annotation is a plain (possibly
// generic, possibly dotted) type reference and extracts its base name.
func analyzeTypeRef(toks []token.Token) (string, bool) {
	if !toks[0].IsIdentLike() {
		return "", false
	}
	base := toks[0].Text
	i := 1
	for i+1 < len(toks) && toks[i].Kind == token.Dot && toks[i+1].IsIdentLike() {
		base += "." + toks[i+1].Text
		i += 2
	}
	if i == len(toks) {
		return base, true
	}
	if toks[i].Kind == token.Lt && toks[len(toks)-1].Kind == token.Gt {
		return base, true
	}
	return "", false
}

// skipToParamEnd recovers to the next top-level ',' or ')'.
func (p *Parser) skipToParamEnd() {
	for {
		t := p.lx.Peek()
		switch {
		case t.Kind == token.EOF, t.Kind == token.Comma, t.Kind == token.RParen:
			return
		case t.Kind.IsOpenDelim():
			p.skipBalanced(p.bump())
		default:
			p.bump()
		}
	}
}

func modifierBit(k token.Kind) ast.ModifierSet {
	switch k {
	case token.KwPublic:
		return ast.ModPublic
	case token.KwPrivate:
		return ast.ModPrivate
	case token.KwProtected:
		return ast.ModProtected
	case token.KwReadonly:
		return ast.ModReadonly
	case token.KwOverride:
		return ast.ModOverride
	}
	return 0
}
