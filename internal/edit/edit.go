package edit

import (
	"errors"
	"fmt"
	"sort"

	"ngmigrate/internal/source"
)

// ErrOverlap is returned when two edits touch the same bytes.
var ErrOverlap = errors.New("edit spans overlap")

// TextEdit replaces the bytes of Span with NewText. A zero-length span is
// an insertion. OldText, when non-empty, is verified against the buffer
// before splicing.
type TextEdit struct {
	Span    source.Span
	OldText string
	NewText string
}

// Apply splices edits into content and returns the result. Edits are
// applied back to front so earlier spans stay valid; overlapping spans are
// rejected. Spans are half-open [Start, End); two insertions at the same
// position conflict only with a covering replacement, not each other.
func Apply(content []byte, edits []TextEdit) ([]byte, error) {
	if len(edits) == 0 {
		out := make([]byte, len(content))
		copy(out, content)
		return out, nil
	}

	sorted := make([]TextEdit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Span.Start == sorted[j].Span.Start {
			return sorted[i].Span.End > sorted[j].Span.End
		}
		return sorted[i].Span.Start > sorted[j].Span.Start
	})

	for i := 1; i < len(sorted); i++ {
		if spansConflict(sorted[i], sorted[i-1]) {
			return nil, fmt.Errorf("%w: %s and %s", ErrOverlap, sorted[i].Span, sorted[i-1].Span)
		}
	}

	working := make([]byte, len(content))
	copy(working, content)
	for _, e := range sorted {
		start, end := int(e.Span.Start), int(e.Span.End)
		if start < 0 || end < start || end > len(working) {
			return nil, fmt.Errorf("edit span %s out of range for %d bytes", e.Span, len(working))
		}
		if e.OldText != "" && string(working[start:end]) != e.OldText {
			return nil, fmt.Errorf("edit at %s: buffer holds %q, expected %q",
				e.Span, working[start:end], e.OldText)
		}
		suffix := append([]byte(nil), working[end:]...)
		working = append(append(working[:start], []byte(e.NewText)...), suffix...)
	}
	return working, nil
}

// spansConflict reports whether two edits touch the same bytes. Zero-length
// edits never conflict with each other; a zero-length edit conflicts with a
// replacement covering its position.
func spansConflict(a, b TextEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}
