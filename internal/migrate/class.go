package migrate

import (
	"ngmigrate/internal/ast"
)

// Aggregate rebuilds the class around the rewritten constructor. The new
// member list keeps every non-constructor member in place, inserts the
// synthesized properties where the constructor used to be, and appends the
// retained constructor after them. Decorators, heritage and spans carry
// through unchanged. The original node is never mutated; the replacement
// is a fresh allocation.
func Aggregate(b *ast.Builder, classID ast.ClassID, rw CtorRewrite, props []ast.PropDecl) (ast.ClassID, []ast.MemberID, ast.MemberID) {
	old := b.Classes.Get(classID)

	newID := b.Classes.New(old.Span, old.Parent, old.Name)
	cls := b.Classes.Get(newID)
	cls.Decorators = old.Decorators
	cls.SuperName = old.SuperName
	cls.BodySpan = old.BodySpan

	propIDs := make([]ast.MemberID, 0, len(props))
	for _, p := range props {
		propIDs = append(propIDs, b.Members.NewProp(newID, p))
	}

	var newCtor ast.MemberID = ast.NoMemberID
	if !rw.Drop {
		oldMember := b.Members.Get(rw.Member)
		decl := *b.Members.Ctor(rw.Member)
		decl.Params = rw.Kept
		newCtor = b.Members.NewCtor(oldMember.Span, newID, decl)
	}

	members := make([]ast.MemberID, 0, len(old.Members)+len(propIDs))
	for _, id := range old.Members {
		if id != rw.Member {
			members = append(members, id)
			continue
		}
		members = append(members, propIDs...)
		if newCtor.IsValid() {
			members = append(members, newCtor)
		}
	}
	cls.Members = members
	return newID, propIDs, newCtor
}
