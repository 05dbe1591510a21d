package migrate_test

import (
	"strings"
	"testing"

	"ngmigrate/internal/ast"
	"ngmigrate/internal/diag"
	"ngmigrate/internal/format"
	"ngmigrate/internal/lexer"
	"ngmigrate/internal/migrate"
	"ngmigrate/internal/parser"
	"ngmigrate/internal/source"
)

func run(t *testing.T, src string, opts migrate.Options) (string, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("app.ts", []byte(src))
	bag := diag.NewBag(64)
	rep := &diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(fs.Get(id), lexer.Options{})
	parsed := parser.ParseFile(fs, lx, b, parser.Options{Reporter: rep})
	res := migrate.RewriteFile(fs, b, parsed.File, opts, rep)
	out := format.Print(fs, b, parsed.File, &res)
	return string(out), bag
}

func runDefault(t *testing.T, src string) (string, *diag.Bag) {
	t.Helper()
	return run(t, src, migrate.DefaultOptions())
}

func TestTokenFidelity(t *testing.T) {
	src := `@Injectable()
class Svc {
  constructor(private x: Foo) {}
}
`
	out, _ := runDefault(t, src)
	want := `@Injectable()
class Svc {
  private x = inject(Foo);
}
`
	if out != want {
		t.Errorf("output:\n%s\nwant:\n%s", out, want)
	}
}

func TestGenericTokenFidelity(t *testing.T) {
	out, _ := runDefault(t, `@Injectable()
class Svc {
  constructor(private x: Foo<Bar>) {}
}
`)
	if !strings.Contains(out, "private x = inject<Foo<Bar>>(Foo);") {
		t.Errorf("generic call missing:\n%s", out)
	}
}

func TestExplicitTokenFidelity(t *testing.T) {
	out, _ := runDefault(t, `@Component({})
class C {
  constructor(@Inject(TOKEN) private x: string) {}
}
`)
	if !strings.Contains(out, "private x = inject<string>(TOKEN);") {
		t.Errorf("explicit token call missing:\n%s", out)
	}
}

func TestOptionsFidelityFixedKeyOrder(t *testing.T) {
	// input decorator order is host-then-optional; output order is fixed
	out, _ := runDefault(t, `@Directive({})
class D {
  constructor(@Host() @Optional() private x: Foo) {}
}
`)
	if !strings.Contains(out, "private x = inject(Foo, { optional: true, host: true });") {
		t.Errorf("options record wrong:\n%s", out)
	}
}

func TestMixedAllMigratedDropsCtor(t *testing.T) {
	out, _ := runDefault(t, `@Component({})
class C {
  constructor(@Optional() @Self() private _a: A, private _b: B) {}
}
`)
	if strings.Contains(out, "constructor") {
		t.Errorf("constructor should be dropped:\n%s", out)
	}
	ia := strings.Index(out, "private _a = inject(A, { optional: true, self: true });")
	ib := strings.Index(out, "private _b = inject(B);")
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("properties missing or out of order:\n%s", out)
	}
}

func TestMixedMigratableAndNot(t *testing.T) {
	out, bag := runDefault(t, `@Component({})
class C {
  constructor(private _a: A, private _b) {}
}
`)
	if !strings.Contains(out, "private _a = inject(A);") {
		t.Errorf("_a not migrated:\n%s", out)
	}
	if !strings.Contains(out, "constructor(private _b)") {
		t.Errorf("_b should remain the sole parameter:\n%s", out)
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.MigUnresolvableToken {
			found = true
		}
	}
	if !found {
		t.Error("expected an unresolvable-token diagnostic for _b")
	}
}

func TestRegexInMemberDoesNotDerailClass(t *testing.T) {
	out, bag := runDefault(t, `@Injectable()
class Svc {
  openBrace(s: string) {
    return /{/.test(s);
  }
  constructor(private http: HttpClient) {}
}
`)
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	if !strings.Contains(out, "private http = inject(HttpClient);") {
		t.Errorf("constructor after regex member not migrated:\n%s", out)
	}
	if !strings.Contains(out, "return /{/.test(s);") {
		t.Errorf("regex member altered:\n%s", out)
	}
}

func TestPreservationNoDecorator(t *testing.T) {
	src := `class Plain {
  constructor(private x: Foo) {}
}
`
	out, _ := runDefault(t, src)
	if out != src {
		t.Errorf("undecorated class must round-trip byte for byte:\n%s", out)
	}
}

func TestPreservationNoCtorAndParamless(t *testing.T) {
	for _, src := range []string{
		"@Injectable()\nclass A {\n  run() {}\n}\n",
		"@Injectable()\nclass B {\n  constructor() { this.init(); }\n}\n",
	} {
		out, _ := runDefault(t, src)
		if out != src {
			t.Errorf("must round-trip:\n%s\ngot:\n%s", src, out)
		}
	}
}

func TestIdempotence(t *testing.T) {
	src := `@Injectable()
class Svc {
  constructor(private a: A, @Optional() private b: B) { this.boot(); }
}
`
	once, _ := runDefault(t, src)
	twice, bag := runDefault(t, once)
	if once != twice {
		t.Errorf("second run changed output:\n%s\nvs:\n%s", once, twice)
	}
	for _, d := range bag.Items() {
		if d.Code == diag.MigClassRewritten {
			t.Error("second run reported a rewrite")
		}
	}
}

func TestKeptCtorBody(t *testing.T) {
	out, _ := runDefault(t, `@Injectable()
class Svc {
  constructor(private a: A) {
    this.a.warm();
  }
}
`)
	if !strings.Contains(out, "private a = inject(A);") {
		t.Errorf("property missing:\n%s", out)
	}
	if !strings.Contains(out, "constructor() {\n    this.a.warm();\n  }") {
		t.Errorf("body not preserved on kept constructor:\n%s", out)
	}
}

func TestCommentOnlyCtorBodyKept(t *testing.T) {
	out, _ := runDefault(t, `@Injectable()
class Svc {
  constructor(private a: A) {
    // wiring happens in ngOnInit
  }
}
`)
	if !strings.Contains(out, "private a = inject(A);") {
		t.Errorf("property missing:\n%s", out)
	}
	if !strings.Contains(out, "constructor() {\n    // wiring happens in ngOnInit\n  }") {
		t.Errorf("comment-only constructor must survive:\n%s", out)
	}
}

func TestDestructuredParamKept(t *testing.T) {
	out, bag := runDefault(t, `@Component({})
class C {
  constructor(private { a }: Opts, private b: B) {}
}
`)
	if !strings.Contains(out, "{ a }: Opts") {
		t.Errorf("destructured parameter must stay verbatim:\n%s", out)
	}
	if !strings.Contains(out, "private b = inject(B);") {
		t.Errorf("b should still migrate:\n%s", out)
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.MigDestructuredParam {
			found = true
		}
	}
	if !found {
		t.Error("expected a destructured-parameter diagnostic")
	}
}

func TestMalformedInjectSkips(t *testing.T) {
	out, bag := runDefault(t, `@Component({})
class C {
  constructor(@Inject() private x: Foo) {}
}
`)
	if !strings.Contains(out, "constructor(@Inject() private x: Foo)") {
		t.Errorf("malformed @Inject parameter must stay:\n%s", out)
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.MigMalformedInject {
			found = true
		}
	}
	if !found {
		t.Error("expected a malformed-inject diagnostic")
	}
}

func TestSuperParamReferenceLeavesClass(t *testing.T) {
	src := `@Injectable()
class Svc extends Base {
  constructor(private cfg: Config) {
    super(cfg);
  }
}
`
	out, bag := runDefault(t, src)
	if out != src {
		t.Errorf("class passing a migrated param to super() must stay:\n%s", out)
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.MigSuperParamRef {
			found = true
		}
	}
	if !found {
		t.Error("expected a super-reference diagnostic")
	}
}

func TestSuperVetoMarksRegistryIneligible(t *testing.T) {
	src := `@Injectable()
class Svc extends Base {
  constructor(private cfg: Config) {
    super(cfg);
  }
}
`
	fs := source.NewFileSet()
	id := fs.AddVirtual("app.ts", []byte(src))
	bag := diag.NewBag(64)
	rep := &diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(fs.Get(id), lexer.Options{})
	parsed := parser.ParseFile(fs, lx, b, parser.Options{Reporter: rep})
	res := migrate.RewriteFile(fs, b, parsed.File, migrate.DefaultOptions(), rep)
	if res.Changed {
		t.Fatal("class passing a migrated param to super() must stay unchanged")
	}
	meta, ok := res.Registry.Lookup("cfg")
	if !ok {
		t.Fatal("cfg not registered")
	}
	if meta.Eligible {
		t.Error("vetoed dependency line still marked eligible")
	}
}

func TestSuperWithoutParamRefStillMigrates(t *testing.T) {
	out, _ := runDefault(t, `@Injectable()
class Svc extends Base {
  constructor(private cfg: Config) {
    super('fixed');
  }
}
`)
	if !strings.Contains(out, "private cfg = inject(Config);") {
		t.Errorf("super() without migrated refs should not block:\n%s", out)
	}
}

func TestHashAccessPolicy(t *testing.T) {
	opts := migrate.DefaultOptions()
	opts.Access = migrate.AccessHashName
	out, _ := run(t, `@Injectable()
class Svc {
  constructor(private x: Foo, public y: Bar) {}
}
`, opts)
	if !strings.Contains(out, "#x = inject(Foo);") {
		t.Errorf("hash policy should emit #-name:\n%s", out)
	}
	if !strings.Contains(out, "public y = inject(Bar);") {
		t.Errorf("explicit public must keep its keyword:\n%s", out)
	}
}

func TestReadonlyOverrideCarried(t *testing.T) {
	out, _ := runDefault(t, `@Injectable()
class Svc extends Base {
  constructor(protected override readonly log: Logger) {}
}
`)
	if !strings.Contains(out, "protected override readonly log = inject(Logger);") {
		t.Errorf("modifiers not carried:\n%s", out)
	}
}

func TestCustomDecoratorsAndInjectFn(t *testing.T) {
	opts := migrate.DefaultOptions()
	opts.Decorators = []string{"Widget"}
	opts.InjectFn = "resolve"
	out, _ := run(t, `@Widget()
class W {
  constructor(private s: Store) {}
}
`, opts)
	if !strings.Contains(out, "private s = resolve(Store);") {
		t.Errorf("custom options ignored:\n%s", out)
	}
}

func TestNeedsImportFlag(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("app.ts", []byte("@Injectable()\nclass S { constructor(private a: A) {} }\n"))
	b := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(fs.Get(id), lexer.Options{})
	parsed := parser.ParseFile(fs, lx, b, parser.Options{Reporter: diag.NopReporter{}})
	res := migrate.RewriteFile(fs, b, parsed.File, migrate.DefaultOptions(), diag.NopReporter{})
	if !res.NeedsImport || !res.Changed {
		t.Errorf("result = %+v, want Changed and NeedsImport", res)
	}
	if meta, ok := res.Registry.Lookup("a"); !ok || meta.Token != "A" {
		t.Errorf("registry = %+v", res.Registry.Names())
	}
}
