// Package imports manages the resolution-function import of a rewritten
// file. It produces text edits against the file the AST was parsed from;
// callers run it over the already-rewritten text by re-parsing that text.
package imports

import (
	"fmt"

	"ngmigrate/internal/ast"
	"ngmigrate/internal/edit"
	"ngmigrate/internal/source"
)

// Ensure returns the edits that make fn available from module: nothing when
// some import already binds the name, an append into the named clause of an
// existing import from module, or a whole new import statement otherwise.
func Ensure(b *ast.Builder, fileID ast.FileID, fn, module string) []edit.TextEdit {
	file := b.Files.Get(fileID)

	for i := range file.Imports {
		if file.Imports[i].ImportsName(fn) {
			return nil
		}
	}

	for i := range file.Imports {
		decl := &file.Imports[i]
		if decl.Module != module || len(decl.Named) == 0 {
			continue
		}
		last := decl.Named[len(decl.Named)-1]
		at := source.Span{File: last.Span.File, Start: last.Span.End, End: last.Span.End}
		return []edit.TextEdit{{Span: at, NewText: ", " + fn}}
	}

	stmt := fmt.Sprintf("import { %s } from '%s';", fn, module)
	if len(file.Imports) > 0 {
		lastDecl := file.Imports[len(file.Imports)-1]
		at := source.Span{File: lastDecl.Span.File, Start: lastDecl.Span.End, End: lastDecl.Span.End}
		return []edit.TextEdit{{Span: at, NewText: "\n" + stmt}}
	}
	at := source.Span{File: file.Span.File, Start: file.Span.Start, End: file.Span.Start}
	return []edit.TextEdit{{Span: at, NewText: stmt + "\n"}}
}
