package migrate

import (
	"ngmigrate/internal/ast"
	"ngmigrate/internal/lexer"
	"ngmigrate/internal/source"
	"ngmigrate/internal/token"
)

// CtorRewrite is the constructor's fate after removing migrated parameters.
type CtorRewrite struct {
	Member ast.MemberID // original constructor member
	Kept   []ast.ParamID
	// Drop is true when nothing remains: no parameters and no body
	// statements. The constructor is then deleted from the class.
	Drop bool
}

// RewriteCtor filters migrated parameters out of the constructor, keeping
// the rest in original order. Each migrated parameter is removed exactly
// once; the body is never touched, in-body references to a migrated
// dependency stay valid because the property keeps the parameter's name.
func RewriteCtor(b *ast.Builder, ctorID ast.MemberID, migrated map[ast.ParamID]bool) CtorRewrite {
	decl := b.Members.Ctor(ctorID)
	rw := CtorRewrite{Member: ctorID}
	for _, id := range decl.Params {
		if !migrated[id] {
			rw.Kept = append(rw.Kept, id)
		}
	}
	rw.Drop = len(rw.Kept) == 0 && !decl.BodyHasStatements
	return rw
}

// superReferences reports whether a super(...) call inside the constructor
// body names one of the given identifiers in its arguments. Dropping such
// a parameter would break the call, so the caller leaves the class alone.
func superReferences(fs *source.FileSet, body source.Span, names map[string]bool) bool {
	if body.Empty() || len(names) == 0 {
		return false
	}
	file := fs.Get(body.File)
	lx := lexer.NewAt(file, body, lexer.Options{})

	for {
		t := lx.Next()
		if t.Kind == token.EOF {
			return false
		}
		if t.Kind != token.KwSuper {
			continue
		}
		if lx.Peek().Kind != token.LParen {
			continue
		}
		lx.Next()
		depth := 1
		for depth > 0 {
			arg := lx.Next()
			switch arg.Kind {
			case token.EOF:
				return false
			case token.LParen:
				depth++
			case token.RParen:
				depth--
			default:
				if arg.IsIdentLike() && names[arg.Text] {
					return true
				}
			}
		}
	}
}
