package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"ngmigrate/internal/ast"
	"ngmigrate/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span covers the whole content
// 2) every class span is non-empty and contained in file.Span
// 3) every member span is contained in its class span, and constructor
// parameter spans are contained in the constructor span
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}

	for _, classID := range f.Classes {
		class := b.Classes.Get(classID)
		if class == nil {
			return fmt.Errorf("nil class for id=%d", classID)
		}
		if class.Span.End <= class.Span.Start {
			return fmt.Errorf("class %s: empty span %v", class.Name, class.Span)
		}
		if !f.Span.Contains(class.Span) {
			return fmt.Errorf("class %s: span %v outside file span %v", class.Name, class.Span, f.Span)
		}
		if !class.BodySpan.Empty() && !class.Span.Contains(class.BodySpan) {
			return fmt.Errorf("class %s: body span %v outside class span %v", class.Name, class.BodySpan, class.Span)
		}
		if err := checkMembers(b, class); err != nil {
			return fmt.Errorf("class %s: %w", class.Name, err)
		}
	}
	return nil
}

func checkMembers(b *ast.Builder, class *ast.Class) error {
	for _, memberID := range class.Members {
		member := b.Members.Get(memberID)
		if member == nil {
			return fmt.Errorf("nil member for id=%d", memberID)
		}
		// Synthesized properties have no source span.
		if member.Kind == ast.MemberProp {
			continue
		}
		if member.Span.End <= member.Span.Start {
			return fmt.Errorf("empty member span %v", member.Span)
		}
		if !class.Span.Contains(member.Span) {
			return fmt.Errorf("member span %v outside class span %v", member.Span, class.Span)
		}
		if member.Kind != ast.MemberCtor {
			continue
		}
		ctor := b.Members.Ctor(memberID)
		if ctor == nil {
			return fmt.Errorf("constructor member without payload")
		}
		for _, paramID := range ctor.Params {
			param := b.Params.Get(paramID)
			if param == nil {
				return fmt.Errorf("nil param for id=%d", paramID)
			}
			if !member.Span.Contains(param.Span) {
				return fmt.Errorf("param %q: span %v outside constructor span %v", param.Name, param.Span, member.Span)
			}
		}
	}
	return nil
}
