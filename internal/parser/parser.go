package parser

import (
	"slices"

	"ngmigrate/internal/ast"
	"ngmigrate/internal/diag"
	"ngmigrate/internal/lexer"
	"ngmigrate/internal/source"
	"ngmigrate/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is spent.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser holds per-file parse state. The grammar is deliberately shallow:
// imports, class headers and constructor parameter lists are modeled in
// full; everything else is captured as raw spans and copied through
// verbatim by the serializer.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span // span of the last consumed token
}

// ParseFile is the entry point for one file. The lexer must be freshly
// created over the file's full content.
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	fileSpan := source.Span{
		File: lx.File().ID,
		End:  uint32(len(lx.File().Content)),
	}
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.NewFile(fileSpan),
		fs:       fs,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseTopLevel()

	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{File: p.file, Bag: bag}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// bump consumes and returns the next token.
func (p *Parser) bump() token.Token {
	t := p.lx.Next()
	if t.Kind != token.EOF {
		p.lastSpan = t.Span
	}
	return t
}

func (p *Parser) err(code diag.Code, sp source.Span, msg string) {
	p.opts.CurrentErrors++
	if p.opts.Enough() {
		return
	}
	diag.ReportError(p.opts.Reporter, code, sp, msg)
}

// parseTopLevel walks the whole token stream. Decorators are buffered and
// handed to the next class declaration; export/default/abstract between a
// decorator and its class keep the buffer alive, anything else drops it.
func (p *Parser) parseTopLevel() {
	var pending []ast.DecoratorID
	for {
		t := p.lx.Peek()
		switch t.Kind {
		case token.EOF:
			return
		case token.At:
			if id, ok := p.parseDecorator(); ok {
				pending = append(pending, id)
			}
		case token.KwImport:
			p.parseImport()
			pending = pending[:0]
		case token.KwClass:
			if p.parseClass(pending) {
				pending = nil
			}
		case token.KwExport, token.KwDefault, token.KwAbstract:
			p.bump()
		default:
			p.bump()
			pending = pending[:0]
		}
	}
}

// parseDecorator parses @Name or @Name(args). Arguments are split at
// top-level commas and kept as source text.
func (p *Parser) parseDecorator() (ast.DecoratorID, bool) {
	atTok := p.bump()
	if !p.lx.Peek().IsIdentLike() {
		p.err(diag.SynBadDecorator, atTok.Span, "expected identifier after '@'")
		return ast.NoDecoratorID, false
	}
	name := p.bump().Text
	end := p.lastSpan
	for p.at(token.Dot) {
		p.bump()
		if !p.lx.Peek().IsIdentLike() {
			p.err(diag.SynBadDecorator, p.lastSpan, "expected identifier after '.' in decorator name")
			break
		}
		name += "." + p.bump().Text
		end = p.lastSpan
	}

	dec := ast.Decorator{
		Span: atTok.Span.Cover(end),
		Name: name,
	}
	if p.at(token.LParen) {
		dec.Called = true
		lparen := p.bump()
		dec.Args, dec.ArgSpans = p.parseCallArgs(lparen)
		dec.Span = atTok.Span.Cover(p.lastSpan)
	}
	return p.arenas.Decorators.New(dec), true
}

// parseCallArgs consumes a balanced argument list after its '(' and
// returns the trimmed text and span of each top-level argument.
func (p *Parser) parseCallArgs(lparen token.Token) ([]string, []source.Span) {
	var args []string
	var spans []source.Span
	depth := 0
	var argStart, argEnd source.Span
	flush := func() {
		if argStart.Empty() && argEnd.Empty() {
			return
		}
		sp := argStart.Cover(argEnd)
		args = append(args, string(p.fs.Text(sp)))
		spans = append(spans, sp)
		argStart, argEnd = source.Span{}, source.Span{}
	}
	for {
		t := p.lx.Peek()
		switch {
		case t.Kind == token.EOF:
			p.err(diag.SynUnclosedDelimiter, lparen.Span, "unclosed '('")
			flush()
			return args, spans
		case t.Kind == token.RParen && depth == 0:
			p.bump()
			flush()
			return args, spans
		case t.Kind == token.Comma && depth == 0:
			p.bump()
			flush()
		default:
			if t.Kind.IsOpenDelim() {
				depth++
			} else if depth > 0 && (t.Kind == token.RParen || t.Kind == token.RBrace || t.Kind == token.RBracket) {
				depth--
			}
			p.bump()
			if argStart.Empty() && argEnd.Empty() {
				argStart = t.Span
			}
			argEnd = t.Span
		}
	}
}

// skipBalanced consumes the matching closer for an already-consumed opening
// delimiter, tracking nested pairs. Returns the closer token.
func (p *Parser) skipBalanced(open token.Token) token.Token {
	closer := open.Kind.CloseDelim()
	depth := 1
	for {
		t := p.bump()
		switch t.Kind {
		case token.EOF:
			p.err(diag.SynUnclosedDelimiter, open.Span, "unclosed '"+open.Kind.String()+"'")
			return t
		case open.Kind:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return t
			}
		}
	}
}

// skipAngles consumes a balanced <...> section after its '<'.
func (p *Parser) skipAngles(open token.Token) {
	depth := 1
	for depth > 0 {
		t := p.bump()
		switch t.Kind {
		case token.EOF:
			p.err(diag.SynUnclosedDelimiter, open.Span, "unclosed '<'")
			return
		case token.Lt:
			depth++
		case token.Gt:
			depth--
		}
	}
}
