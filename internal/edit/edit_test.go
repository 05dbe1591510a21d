package edit

import (
	"errors"
	"testing"

	"ngmigrate/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{Start: start, End: end}
}

func TestApplyReplacementsBackToFront(t *testing.T) {
	content := []byte("aaa bbb ccc")
	out, err := Apply(content, []TextEdit{
		{Span: span(0, 3), NewText: "xx"},
		{Span: span(8, 11), NewText: "zzzz"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "xx bbb zzzz" {
		t.Errorf("out = %q", out)
	}
	if string(content) != "aaa bbb ccc" {
		t.Error("input buffer mutated")
	}
}

func TestApplyInsertion(t *testing.T) {
	out, err := Apply([]byte("ab"), []TextEdit{{Span: span(1, 1), NewText: "-"}})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "a-b" {
		t.Errorf("out = %q", out)
	}
}

func TestApplyVerifiesOldText(t *testing.T) {
	_, err := Apply([]byte("hello"), []TextEdit{
		{Span: span(0, 5), OldText: "world", NewText: "x"},
	})
	if err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestApplyRejectsOverlap(t *testing.T) {
	_, err := Apply([]byte("abcdef"), []TextEdit{
		{Span: span(0, 4), NewText: "x"},
		{Span: span(2, 6), NewText: "y"},
	})
	if !errors.Is(err, ErrOverlap) {
		t.Fatalf("err = %v, want ErrOverlap", err)
	}
}

func TestInsertionInsideReplacementConflicts(t *testing.T) {
	_, err := Apply([]byte("abcdef"), []TextEdit{
		{Span: span(0, 4), NewText: "x"},
		{Span: span(2, 2), NewText: "y"},
	})
	if !errors.Is(err, ErrOverlap) {
		t.Fatalf("err = %v, want ErrOverlap", err)
	}
}

func TestApplyOutOfRange(t *testing.T) {
	_, err := Apply([]byte("ab"), []TextEdit{{Span: span(1, 9), NewText: "x"}})
	if err == nil {
		t.Fatal("expected range error")
	}
}
