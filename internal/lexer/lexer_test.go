package lexer

import (
	"testing"

	"ngmigrate/internal/source"
	"ngmigrate/internal/token"
)

func lexAll(t *testing.T, src string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ts", []byte(src))
	lx := New(fs.Get(id), Options{})

	var toks []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestScanClassHeader(t *testing.T) {
	toks := lexAll(t, "@Component({})\nexport class Foo extends Bar {}")
	want := []token.Kind{
		token.At, token.Ident, token.LParen, token.LBrace, token.RBrace, token.RParen,
		token.KwExport, token.KwClass, token.Ident, token.KwExtends, token.Ident,
		token.LBrace, token.RBrace,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanConstructorParams(t *testing.T) {
	toks := lexAll(t, "constructor(private readonly x?: Foo<Bar>) {}")
	want := []token.Kind{
		token.KwConstructor, token.LParen, token.KwPrivate, token.KwReadonly,
		token.Ident, token.Question, token.Colon, token.Ident, token.Lt,
		token.Ident, token.Gt, token.RParen, token.LBrace, token.RBrace,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCommentsAreTrivia(t *testing.T) {
	toks := lexAll(t, "// line\n/* block */ class /* mid */ A")
	got := kinds(toks)
	want := []token.Kind{token.KwClass, token.Ident}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}

func TestStringsStayWhole(t *testing.T) {
	toks := lexAll(t, `x = "a { b ) c" + 'd } e'`)
	var strCount int
	for _, tok := range toks {
		if tok.Kind == token.StringLit {
			strCount++
		}
		if tok.Kind == token.LBrace || tok.Kind == token.RParen || tok.Kind == token.RBrace {
			t.Errorf("delimiter leaked out of string literal: %v", tok)
		}
	}
	if strCount != 2 {
		t.Errorf("string count = %d, want 2", strCount)
	}
}

func TestTemplateWithInterpolation(t *testing.T) {
	toks := lexAll(t, "`a ${ {x: '}'} } b` z")
	if len(toks) != 2 {
		t.Fatalf("token count = %d, want 2: %v", len(toks), toks)
	}
	if toks[0].Kind != token.TemplateLit {
		t.Errorf("first token = %v, want TemplateLit", toks[0].Kind)
	}
	if toks[1].Text != "z" {
		t.Errorf("trailing token = %q, want z", toks[1].Text)
	}
}

func TestRegexStaysWhole(t *testing.T) {
	toks := lexAll(t, "const open = /{/; let x = 1")
	var regexCount int
	for _, tok := range toks {
		if tok.Kind == token.RegexLit {
			regexCount++
			if tok.Text != "/{/" {
				t.Errorf("regex text = %q, want /{/", tok.Text)
			}
		}
		if tok.Kind == token.LBrace {
			t.Errorf("delimiter leaked out of regex literal: %v", tok)
		}
	}
	if regexCount != 1 {
		t.Errorf("regex count = %d, want 1", regexCount)
	}
}

func TestRegexAfterReturnAndCharClass(t *testing.T) {
	toks := lexAll(t, "f() { return /[/{]/g.test(s); }")
	var regex *token.Token
	for i := range toks {
		if toks[i].Kind == token.RegexLit {
			regex = &toks[i]
		}
	}
	if regex == nil {
		t.Fatalf("no regex token in %v", toks)
	}
	if regex.Text != "/[/{]/g" {
		t.Errorf("regex text = %q, want /[/{]/g", regex.Text)
	}
}

func TestSlashAfterValueIsDivision(t *testing.T) {
	toks := lexAll(t, "const half = total / 2; const r = a / b")
	for _, tok := range toks {
		if tok.Kind == token.RegexLit {
			t.Errorf("division scanned as regex: %q", tok.Text)
		}
	}
}

func TestUnterminatedRegexReported(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ts", []byte("const r = /abc\n"))

	var reported []string
	rep := reporterFunc(func(kind string, _ source.Span, _ string) {
		reported = append(reported, kind)
	})
	lx := New(fs.Get(id), Options{Reporter: rep})
	for lx.Next().Kind != token.EOF {
	}
	if len(reported) != 1 || reported[0] != ReportUnterminatedRegex {
		t.Errorf("reports = %v, want [%s]", reported, ReportUnterminatedRegex)
	}
}

func TestUnterminatedStringReported(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ts", []byte("'abc"))

	var reported []string
	rep := reporterFunc(func(kind string, _ source.Span, _ string) {
		reported = append(reported, kind)
	})
	lx := New(fs.Get(id), Options{Reporter: rep})
	tok := lx.Next()
	if tok.Kind != token.StringLit {
		t.Errorf("kind = %v, want StringLit", tok.Kind)
	}
	if len(reported) != 1 || reported[0] != ReportUnterminatedString {
		t.Errorf("reports = %v, want [%s]", reported, ReportUnterminatedString)
	}
}

func TestRescanSpan(t *testing.T) {
	src := "constructor() { this.x = 1; }"
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ts", []byte(src))
	file := fs.Get(id)

	// rescan only the body between the braces
	body := source.Span{File: id, Start: 15, End: 28}
	lx := NewAt(file, body, Options{})
	first := lx.Next()
	if first.Kind != token.KwThis {
		t.Errorf("first token = %v, want this", first.Kind)
	}
}

type reporterFunc func(kind string, span source.Span, msg string)

func (f reporterFunc) Report(kind string, span source.Span, msg string) { f(kind, span, msg) }
