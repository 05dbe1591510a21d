package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ngmigrate/internal/diag"
	"ngmigrate/internal/migrate"
	"ngmigrate/internal/project"
	"ngmigrate/internal/source"
)

const migratable = `import { Injectable } from '@angular/core';

@Injectable()
export class DataService {
  constructor(private http: HttpClient) {}
}
`

const alreadyClean = `export class Helper {
  constructor(private x: Foo) {}
}
`

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestListSourceFilesFilters(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"src/app.ts":               "",
		"src/app.d.ts":             "",
		"src/style.css":            "",
		"node_modules/lib/x.ts":    "",
		".git/hook.ts":             "",
		"legacy/old.ts":            "",
		"src/feature/feature.ts":   "",
		"src/feature/feature.d.ts": "",
	})
	files, err := ListSourceFiles(dir, []string{"legacy/**"})
	if err != nil {
		t.Fatal(err)
	}
	var rels []string
	for _, f := range files {
		rel, _ := filepath.Rel(dir, f)
		rels = append(rels, filepath.ToSlash(rel))
	}
	want := []string{"src/app.ts", "src/feature/feature.ts"}
	if len(rels) != len(want) {
		t.Fatalf("files = %v, want %v", rels, want)
	}
	for i := range want {
		if rels[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, rels[i], want[i])
		}
	}
}

func TestRunDryRunDoesNotTouchDisk(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"svc.ts":    migratable,
		"helper.ts": alreadyClean,
	})
	res, err := Run(context.Background(), BatchOptions{
		Dir:            dir,
		MaxDiagnostics: 64,
		Migrate:        migrate.DefaultOptions(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed != 1 || res.Clean != 1 || res.Errors != 0 {
		t.Fatalf("result = %+v", res)
	}

	var changed *FileReport
	for i := range res.Reports {
		if res.Reports[i].Status == StatusChanged {
			changed = &res.Reports[i]
		}
	}
	if changed == nil {
		t.Fatal("no changed report")
	}
	if !strings.Contains(string(changed.NewContent), "private http = inject(HttpClient);") {
		t.Errorf("rewritten content:\n%s", changed.NewContent)
	}
	if !strings.Contains(string(changed.NewContent), "import { Injectable, inject } from '@angular/core';") {
		t.Errorf("import not augmented:\n%s", changed.NewContent)
	}

	onDisk, _ := os.ReadFile(filepath.Join(dir, "svc.ts"))
	if string(onDisk) != migratable {
		t.Error("dry run must not write")
	}
}

func TestRunWriteAppliesAndIsIdempotent(t *testing.T) {
	dir := writeTree(t, map[string]string{"svc.ts": migratable})
	opts := BatchOptions{
		Dir:            dir,
		MaxDiagnostics: 64,
		Write:          true,
		Migrate:        migrate.DefaultOptions(),
	}
	if _, err := Run(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	first, _ := os.ReadFile(filepath.Join(dir, "svc.ts"))
	if !strings.Contains(string(first), "inject(HttpClient)") {
		t.Fatalf("file not rewritten:\n%s", first)
	}

	res, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed != 0 || res.Clean != 1 {
		t.Fatalf("second run = %+v, want all clean", res)
	}
	second, _ := os.ReadFile(filepath.Join(dir, "svc.ts"))
	if string(first) != string(second) {
		t.Error("write run is not idempotent")
	}
}

func TestRunKeepsBOMAndCRLF(t *testing.T) {
	crlf := "\uFEFF" + strings.ReplaceAll(migratable, "\n", "\r\n") +
		"const untouched = 1;\r\n"
	dir := writeTree(t, map[string]string{"svc.ts": crlf})
	opts := BatchOptions{
		Dir:            dir,
		MaxDiagnostics: 64,
		Write:          true,
		Migrate:        migrate.DefaultOptions(),
	}
	res, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed != 1 {
		t.Fatalf("result = %+v", res)
	}
	got, _ := os.ReadFile(filepath.Join(dir, "svc.ts"))
	if !strings.HasPrefix(string(got), "\uFEFF") {
		t.Error("BOM was dropped")
	}
	if !strings.Contains(string(got), "const untouched = 1;\r\n") {
		t.Errorf("untouched line lost its CRLF ending:\n%q", got)
	}
	if !strings.Contains(string(got), "private http = inject(HttpClient);\r\n") {
		t.Errorf("rewritten line is not CRLF:\n%q", got)
	}
	if strings.Contains(strings.ReplaceAll(string(got), "\r\n", ""), "\n") {
		t.Error("mixed line endings in output")
	}
}

func TestRunIsolatesBadFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"bad.ts":  "const s = 'unterminated\n@Injectable()\nclass X {}\n",
		"good.ts": migratable,
	})
	res, err := Run(context.Background(), BatchOptions{
		Dir:            dir,
		MaxDiagnostics: 64,
		Migrate:        migrate.DefaultOptions(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Errors != 1 || res.Changed != 1 {
		t.Fatalf("result = %+v, want one error and one change", res)
	}
	for i := range res.Reports {
		r := &res.Reports[i]
		if strings.HasSuffix(r.Path, "bad.ts") {
			if r.Status != StatusError || !r.Bag.HasErrors() {
				t.Errorf("bad.ts report = %+v", r)
			}
		}
	}
}

func TestCleanCacheSkipsKnownFiles(t *testing.T) {
	cacheDir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheDir)
	cache, err := OpenCleanCache("ngmigrate-test")
	if err != nil {
		t.Fatal(err)
	}

	dir := writeTree(t, map[string]string{"helper.ts": alreadyClean})
	opts := BatchOptions{
		Dir:            dir,
		MaxDiagnostics: 64,
		Migrate:        migrate.DefaultOptions(),
		Cache:          cache,
	}
	res1, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if res1.Clean != 1 {
		t.Fatalf("first run = %+v", res1)
	}
	res2, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if res2.Cached != 1 {
		t.Fatalf("second run = %+v, want cached skip", res2)
	}

	// a different config digest must invalidate
	opts.ConfigDigest = project.HashBytes([]byte("other"))
	res3, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if res3.Cached != 0 || res3.Clean != 1 {
		t.Fatalf("third run = %+v, want reprocess", res3)
	}
}

func TestProcessLeavesParseErrorFilesAlone(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("x.ts", []byte("const s = `unterminated\n"))
	res := Process(fs, id, migrate.DefaultOptions(), 16)
	if res.Changed || res.NewContent != nil {
		t.Errorf("result = %+v, want untouched", res)
	}
	if !res.Bag.HasErrors() {
		t.Error("expected lex diagnostics")
	}
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.LexUnterminatedTemplate {
			found = true
		}
	}
	if !found {
		t.Error("expected an unterminated-template diagnostic")
	}
}
