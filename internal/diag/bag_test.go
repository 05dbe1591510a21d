package diag

import (
	"strings"
	"testing"

	"ngmigrate/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(Diagnostic{Code: MigInfo}) || !b.Add(Diagnostic{Code: MigInfo}) {
		t.Fatal("expected first two Adds to succeed")
	}
	if b.Add(Diagnostic{Code: MigInfo}) {
		t.Error("expected third Add to be rejected")
	}
	if b.Len() != 2 {
		t.Errorf("Len = %d, want 2", b.Len())
	}
}

func TestBagSeverityQueries(t *testing.T) {
	b := NewBag(10)
	b.Add(Diagnostic{Severity: SevInfo, Code: MigUnresolvableToken})
	if b.HasErrors() || b.HasWarnings() {
		t.Error("info-only bag must not report errors or warnings")
	}
	b.Add(Diagnostic{Severity: SevError, Code: IOLoadFileError})
	if !b.HasErrors() || !b.HasWarnings() {
		t.Error("bag with an error must report both errors and warnings")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	sp := func(start uint32) source.Span { return source.Span{File: 0, Start: start, End: start + 1} }

	b.Add(Diagnostic{Severity: SevInfo, Code: MigDestructuredParam, Primary: sp(20)})
	b.Add(Diagnostic{Severity: SevInfo, Code: MigUnresolvableToken, Primary: sp(5)})
	b.Add(Diagnostic{Severity: SevInfo, Code: MigUnresolvableToken, Primary: sp(5)})

	b.Sort()
	b.Dedup()

	items := b.Items()
	if len(items) != 2 {
		t.Fatalf("after dedup Len = %d, want 2", len(items))
	}
	if items[0].Primary.Start != 5 || items[1].Primary.Start != 20 {
		t.Errorf("sort order wrong: %+v", items)
	}
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnterminatedString, "LEX1001"},
		{SynUnexpectedToken, "SYN2001"},
		{MigUnresolvableToken, "MIG3001"},
		{IOLoadFileError, "IO4001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("ID(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSetWithBase(".")
	id := fs.AddVirtual("src/app.ts", []byte("class A {}\nclass B {}\n"))

	diags := []Diagnostic{
		{
			Severity: SevInfo,
			Code:     MigUnresolvableToken,
			Message:  "cannot resolve token for parameter 'x'",
			Primary:  source.Span{File: id, Start: 11, End: 16},
		},
	}

	got := FormatShort(diags, fs, false)
	want := "info MIG3001 src/app.ts:2:1 cannot resolve token for parameter 'x'"
	if !strings.HasSuffix(got, want) && got != want {
		t.Errorf("FormatShort = %q, want %q", got, want)
	}
}
