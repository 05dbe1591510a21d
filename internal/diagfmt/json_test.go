package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"ngmigrate/internal/diag"
	"ngmigrate/internal/source"
)

func TestJSONShape(t *testing.T) {
	fs := source.NewFileSet()
	bag := oneDiagBag(fs)

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename})
	if err != nil {
		t.Fatal(err)
	}

	var out []struct {
		Severity string `json:"severity"`
		Code     string `json:"code"`
		Message  string `json:"message"`
		Path     string `json:"path"`
		Line     uint32 `json:"line"`
		Col      uint32 `json:"col"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(out))
	}
	d := out[0]
	if d.Severity != "WARNING" || d.Code != "MIG3001" || d.Path != "a.ts" || d.Line != 2 || d.Col != 15 {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("m.ts", []byte("x\n"))
	bag := diag.NewBag(4)
	rep := diag.BagReporter{Bag: bag}
	for i := 0; i < 3; i++ {
		diag.ReportInfo(rep, diag.MigInfo, source.Span{File: fileID}, "note")
	}

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{Max: 2}); err != nil {
		t.Fatal(err)
	}
	var out []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("Max not honored, got %d items", len(out))
	}
}
