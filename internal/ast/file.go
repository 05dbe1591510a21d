package ast

import (
	"ngmigrate/internal/source"
)

// File is the root node for one parsed source file. Only the structure the
// rewriter cares about is modeled: import declarations and class
// declarations. Everything between them is untouched source text that the
// serializer copies through by span.
type File struct {
	Span    source.Span
	Imports []ImportDecl
	Classes []ClassID
}

// ImportedName is one binding inside an import clause's braces.
type ImportedName struct {
	Name  string
	Alias string // "" when not aliased
	Span  source.Span
}

// ImportDecl captures an `import ... from '...'` statement.
type ImportDecl struct {
	Span    source.Span
	Module  string // module specifier without quotes
	Default string // default binding name, "" when absent
	Named   []ImportedName
	// NamedClose is the offset of the '}' closing the named-import braces,
	// zero-span when the clause has no braces.
	NamedClose source.Span
}

// HasNamed reports whether the import carries a named-import clause.
func (d *ImportDecl) HasNamed() bool {
	return !d.NamedClose.Empty() || len(d.Named) > 0
}

// ImportsName reports whether name is bound locally by this declaration.
// An aliased entry binds only the alias: `inject as di` binds di, not
// inject.
func (d *ImportDecl) ImportsName(name string) bool {
	for _, n := range d.Named {
		local := n.Name
		if n.Alias != "" {
			local = n.Alias
		}
		if local == name {
			return true
		}
	}
	return d.Default == name
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{
		Arena: NewArena[File](capHint),
	}
}

func (f *Files) New(sp source.Span) FileID {
	return FileID(f.Arena.Allocate(File{
		Span: sp,
	}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
