package migrate

import (
	"ngmigrate/internal/ast"
)

// Classify decides whether a class qualifies for rewrite: it must carry a
// recognized decorator, have a constructor, and that constructor must
// declare at least one parameter. Returns the constructor member on
// success. Pure; no diagnostics are emitted for ineligible classes, they
// simply pass through.
func Classify(b *ast.Builder, classID ast.ClassID, opts *Options) (ast.MemberID, bool) {
	cls := b.Classes.Get(classID)

	recognized := false
	for _, id := range cls.Decorators {
		if opts.RecognizesDecorator(b.Decorators.Get(id).Name) {
			recognized = true
			break
		}
	}
	if !recognized {
		return ast.NoMemberID, false
	}

	ctorID := b.FirstCtor(classID)
	if !ctorID.IsValid() {
		return ast.NoMemberID, false
	}
	if len(b.Members.Ctor(ctorID).Params) == 0 {
		return ast.NoMemberID, false
	}
	return ctorID, true
}
