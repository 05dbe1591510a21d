package source

import (
	"testing"
)

func TestAddAndResolve(t *testing.T) {
	fs := NewFileSet()

	content := []byte("class A {}\nclass B {}\n")
	id := fs.AddVirtual("app.ts", content)

	file := fs.Get(id)
	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag to be set")
	}
	if string(file.Content) != string(content) {
		t.Errorf("content mismatch: %q", file.Content)
	}

	span := Span{File: id, Start: 11, End: 16}
	start, end := fs.Resolve(span)
	if (start != LineCol{Line: 2, Col: 1}) {
		t.Errorf("start = %+v, want 2:1", start)
	}
	if (end != LineCol{Line: 2, Col: 6}) {
		t.Errorf("end = %+v, want 2:6", end)
	}
	if got := string(fs.Text(span)); got != "class" {
		t.Errorf("Text() = %q, want %q", got, "class")
	}
}

func TestFileVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("app.ts", []byte("version 1"), 0)
	id2 := fs.Add("app.ts", []byte("version 2"), 0)

	if id1 == id2 {
		t.Fatal("expected distinct FileIDs for re-added path")
	}

	latest, ok := fs.GetLatest("app.ts")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d, %v; want %d, true", latest, ok, id2)
	}

	if string(fs.Get(id1).Content) != "version 1" {
		t.Errorf("first version content lost")
	}
	if string(fs.Get(id2).Content) != "version 2" {
		t.Errorf("second version content lost")
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("app.ts", []byte("one\ntwo\nthree"))
	f := fs.Get(id)

	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "one"},
		{2, "two"},
		{3, "three"},
		{4, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}
