package parser

import (
	"testing"

	"ngmigrate/internal/ast"
	"ngmigrate/internal/diag"
	"ngmigrate/internal/lexer"
	"ngmigrate/internal/source"
	"ngmigrate/internal/testkit"
)

type parsed struct {
	fs   *source.FileSet
	b    *ast.Builder
	file ast.FileID
	bag  *diag.Bag
}

func parseSrc(t *testing.T, src string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ts", []byte(src))
	bag := diag.NewBag(64)
	b := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(fs.Get(id), lexer.Options{})
	res := ParseFile(fs, lx, b, Options{Reporter: &diag.BagReporter{Bag: bag}})
	if err := testkit.CheckSpanInvariants(b, res.File, fs.Get(id)); err != nil {
		t.Fatalf("span invariants: %v", err)
	}
	return parsed{fs: fs, b: b, file: res.File, bag: bag}
}

func (p parsed) class(t *testing.T, idx int) *ast.Class {
	t.Helper()
	f := p.b.Files.Get(p.file)
	if idx >= len(f.Classes) {
		t.Fatalf("want class #%d, file has %d", idx, len(f.Classes))
	}
	return p.b.Classes.Get(f.Classes[idx])
}

func (p parsed) firstCtor(t *testing.T) *ast.CtorDecl {
	t.Helper()
	f := p.b.Files.Get(p.file)
	if len(f.Classes) == 0 {
		t.Fatal("no classes parsed")
	}
	id := p.b.FirstCtor(f.Classes[0])
	if !id.IsValid() {
		t.Fatal("no constructor parsed")
	}
	return p.b.Members.Ctor(id)
}

func TestParseImports(t *testing.T) {
	p := parseSrc(t, `import { Component, Inject as DI } from '@angular/core';
import http, { HttpClient } from "@angular/common/http";
import './polyfills';
import * as rx from 'rxjs';
`)
	f := p.b.Files.Get(p.file)
	if len(f.Imports) != 4 {
		t.Fatalf("imports = %d, want 4", len(f.Imports))
	}

	core := f.Imports[0]
	if core.Module != "@angular/core" {
		t.Errorf("module = %q", core.Module)
	}
	if len(core.Named) != 2 || core.Named[0].Name != "Component" ||
		core.Named[1].Name != "Inject" || core.Named[1].Alias != "DI" {
		t.Errorf("named = %+v", core.Named)
	}
	if core.NamedClose.Empty() {
		t.Error("NamedClose not recorded")
	}
	if !core.ImportsName("DI") || core.ImportsName("inject") {
		t.Error("ImportsName misreports bindings")
	}

	if f.Imports[1].Default != "http" || len(f.Imports[1].Named) != 1 {
		t.Errorf("mixed import = %+v", f.Imports[1])
	}
	if f.Imports[2].Module != "./polyfills" || f.Imports[2].HasNamed() {
		t.Errorf("side-effect import = %+v", f.Imports[2])
	}
	if f.Imports[3].Default != "rx" {
		t.Errorf("namespace import = %+v", f.Imports[3])
	}
	if p.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", p.bag.Items())
	}
}

func TestParseClassHeader(t *testing.T) {
	p := parseSrc(t, `@Component({ selector: 'app-x' })
export class Foo extends Base<State> implements OnInit {
  ngOnInit() {}
}
`)
	cls := p.class(t, 0)
	if cls.Name != "Foo" {
		t.Errorf("name = %q", cls.Name)
	}
	if cls.SuperName != "Base" {
		t.Errorf("super = %q", cls.SuperName)
	}
	if len(cls.Decorators) != 1 {
		t.Fatalf("decorators = %d", len(cls.Decorators))
	}
	dec := p.b.Decorators.Get(cls.Decorators[0])
	if dec.Name != "Component" || !dec.Called {
		t.Errorf("decorator = %+v", dec)
	}
	if len(dec.Args) != 1 || dec.Args[0] != "{ selector: 'app-x' }" {
		t.Errorf("args = %q", dec.Args)
	}
	if len(cls.Members) != 1 || p.b.Members.Get(cls.Members[0]).Kind != ast.MemberRaw {
		t.Errorf("members = %d", len(cls.Members))
	}
	if string(p.fs.Text(cls.BodySpan)) != "\n  ngOnInit() {}\n" {
		t.Errorf("body span text = %q", p.fs.Text(cls.BodySpan))
	}
}

func TestParseConstructor(t *testing.T) {
	p := parseSrc(t, `class Svc {
  constructor(
    private http: HttpClient,
    @Inject(TOKEN) @Optional() private readonly cfg: Config,
    protected items: Map<string, Item[]>,
    plain: number,
    { a, b }: Opts,
    ...rest: string[]
  ) {
    this.init();
  }
}
`)
	ctor := p.firstCtor(t)
	if len(ctor.Params) != 6 {
		t.Fatalf("params = %d, want 6", len(ctor.Params))
	}
	get := func(i int) *ast.Param { return p.b.Params.Get(ctor.Params[i]) }

	p0 := get(0)
	if p0.Name != "http" || !p0.Modifiers.Has(ast.ModPrivate) || p0.Modifiers.Has(ast.ModReadonly) {
		t.Errorf("p0 = %+v", p0)
	}
	if p0.Type.Text != "HttpClient" || !p0.Type.DirectRef || p0.Type.BaseName != "HttpClient" {
		t.Errorf("p0 type = %+v", p0.Type)
	}

	p1 := get(1)
	if len(p1.Decorators) != 2 {
		t.Fatalf("p1 decorators = %d", len(p1.Decorators))
	}
	inj := p.b.Decorators.Get(p1.Decorators[0])
	if inj.Name != "Inject" || !inj.Called || len(inj.Args) != 1 || inj.Args[0] != "TOKEN" {
		t.Errorf("inject decorator = %+v", inj)
	}
	opt := p.b.Decorators.Get(p1.Decorators[1])
	if opt.Name != "Optional" || !opt.Called || len(opt.Args) != 0 {
		t.Errorf("optional decorator = %+v", opt)
	}
	if !p1.Modifiers.Has(ast.ModPrivate) || !p1.Modifiers.Has(ast.ModReadonly) {
		t.Errorf("p1 modifiers = %v", p1.Modifiers)
	}

	p2 := get(2)
	if !p2.Modifiers.Has(ast.ModProtected) {
		t.Errorf("p2 modifiers = %v", p2.Modifiers)
	}
	if p2.Type.Text != "Map<string, Item[]>" || !p2.Type.DirectRef || p2.Type.BaseName != "Map" {
		t.Errorf("p2 type = %+v", p2.Type)
	}

	if p3 := get(3); !p3.IsPlain() || p3.Name != "plain" {
		t.Errorf("p3 = %+v", p3)
	}
	if p4 := get(4); !p4.Pattern || p4.Name != "" {
		t.Errorf("p4 = %+v", p4)
	}
	if p5 := get(5); !p5.Rest || p5.Type.DirectRef {
		t.Errorf("p5 = %+v", p5)
	}

	if !ctor.BodyHasStatements {
		t.Error("body statements not detected")
	}
	if p.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", p.bag.Items())
	}
}

func TestParseEmptyCtorBody(t *testing.T) {
	p := parseSrc(t, "class C {\n  constructor(private a: A) {}\n}\n")
	ctor := p.firstCtor(t)
	if ctor.BodyHasStatements {
		t.Error("empty body reported as having statements")
	}
	if got := string(p.fs.Text(ctor.ParamsSpan)); got != "private a: A" {
		t.Errorf("params span = %q", got)
	}
}

func TestParseCommentOnlyCtorBody(t *testing.T) {
	p := parseSrc(t, "class C {\n  constructor(private a: A) {\n    // left intentionally\n  }\n}\n")
	ctor := p.firstCtor(t)
	if !ctor.BodyHasStatements {
		t.Error("comment-only body reported as empty")
	}
}

func TestCtorOverloadSignature(t *testing.T) {
	p := parseSrc(t, `class C {
  constructor(a: A);
  constructor(b: B) {}
}
`)
	cls := p.class(t, 0)
	var ctors, raws int
	for _, id := range cls.Members {
		switch p.b.Members.Get(id).Kind {
		case ast.MemberCtor:
			ctors++
		case ast.MemberRaw:
			raws++
		}
	}
	if ctors != 1 || raws != 1 {
		t.Fatalf("ctors = %d raws = %d, want 1/1", ctors, raws)
	}
	ctor := p.firstCtor(t)
	if len(ctor.Params) != 1 || p.b.Params.Get(ctor.Params[0]).Name != "b" {
		t.Error("implementation constructor not the one modeled")
	}
}

func TestTypeAnnotationShapes(t *testing.T) {
	cases := []struct {
		typ      string
		baseName string
		direct   bool
	}{
		{"Foo", "Foo", true},
		{"Foo<Bar>", "Foo", true},
		{"ng.mat.Dialog", "ng.mat.Dialog", true},
		{"Map<string, () => void>", "Map", true},
		{"Foo | null", "", false},
		{"Foo[]", "", false},
		{"() => void", "", false},
		{"'literal'", "", false},
		{"{ a: string }", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.typ, func(t *testing.T) {
			p := parseSrc(t, "class C { constructor(private x: "+tc.typ+") {} }")
			ctor := p.firstCtor(t)
			if len(ctor.Params) != 1 {
				t.Fatalf("params = %d", len(ctor.Params))
			}
			ann := p.b.Params.Get(ctor.Params[0]).Type
			if ann.Text != tc.typ {
				t.Errorf("text = %q, want %q", ann.Text, tc.typ)
			}
			if ann.BaseName != tc.baseName || ann.DirectRef != tc.direct {
				t.Errorf("base = %q direct = %v, want %q/%v",
					ann.BaseName, ann.DirectRef, tc.baseName, tc.direct)
			}
		})
	}
}

func TestRawMembersAroundCtor(t *testing.T) {
	p := parseSrc(t, `class C {
  count = 0;
  get value() { return this.count < 10; }
  constructor() {}
  run(): void { if (this.ok) { this.go(); } }
}
`)
	cls := p.class(t, 0)
	var ctors, raws int
	for _, id := range cls.Members {
		switch p.b.Members.Get(id).Kind {
		case ast.MemberCtor:
			ctors++
		case ast.MemberRaw:
			raws++
		}
	}
	if ctors != 1 {
		t.Fatalf("ctors = %d, want 1", ctors)
	}
	if raws != 3 {
		t.Errorf("raws = %d, want 3", raws)
	}
	if p.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", p.bag.Items())
	}
}

func TestDecoratorVariants(t *testing.T) {
	p := parseSrc(t, `@Shell.Component({ x: 1 }, extra)
class A {}

@Sealed
class B {}
`)
	a := p.class(t, 0)
	dec := p.b.Decorators.Get(a.Decorators[0])
	if dec.Name != "Shell.Component" || !dec.Called {
		t.Errorf("decorator = %+v", dec)
	}
	if len(dec.Args) != 2 || dec.Args[0] != "{ x: 1 }" || dec.Args[1] != "extra" {
		t.Errorf("args = %q", dec.Args)
	}

	b := p.class(t, 1)
	bare := p.b.Decorators.Get(b.Decorators[0])
	if bare.Name != "Sealed" || bare.Called || len(bare.Args) != 0 {
		t.Errorf("bare decorator = %+v", bare)
	}
}

func TestClassKeywordInExpressionPosition(t *testing.T) {
	p := parseSrc(t, "const style = { class: 'nav' };\nclass Real {}\n")
	f := p.b.Files.Get(p.file)
	if len(f.Classes) != 1 {
		t.Fatalf("classes = %d, want 1", len(f.Classes))
	}
	if p.class(t, 0).Name != "Real" {
		t.Errorf("class name = %q", p.class(t, 0).Name)
	}
	if p.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", p.bag.Items())
	}
}

func TestMixinHeritage(t *testing.T) {
	p := parseSrc(t, "class A extends withBehavior(Base) {}\n")
	if got := p.class(t, 0).SuperName; got != "withBehavior" {
		t.Errorf("super = %q", got)
	}
	if !p.class(t, 0).HasSuper() {
		t.Error("HasSuper = false")
	}
}
