package ast

import (
	"ngmigrate/internal/source"
)

// ModifierSet encodes parameter-property modifiers as bit flags.
type ModifierSet uint8

const (
	ModPublic ModifierSet = 1 << iota
	ModPrivate
	ModProtected
	ModReadonly
	ModOverride
)

func (m ModifierSet) Has(flag ModifierSet) bool {
	return m&flag != 0
}

// Empty reports whether no modifier is present.
func (m ModifierSet) Empty() bool {
	return m == 0
}

// TypeAnn is a parameter's declared type annotation.
type TypeAnn struct {
	Span source.Span
	Text string
	// BaseName is the leading identifier path when the annotation is a
	// direct type reference (Foo, Foo<Bar>, ng.Foo); "" otherwise.
	BaseName string
	// DirectRef is true for a plain (possibly generic) type reference, and
	// false for unions, intersections, literals, tuples, and the like.
	DirectRef bool
}

// Present reports whether the parameter declared a type at all.
func (t TypeAnn) Present() bool {
	return t.Text != ""
}

// Param is one constructor parameter. Parent is a non-owning back-reference
// to the constructor member.
type Param struct {
	Span       source.Span
	Parent     MemberID
	Name       string // "" when the name is a destructuring pattern
	Pattern    bool   // name is an object/array destructuring pattern
	Optional   bool   // declared with '?'
	Rest       bool   // declared with '...'
	Modifiers  ModifierSet
	Decorators []DecoratorID
	Type       TypeAnn
}

// IsPlain reports whether the parameter carries neither modifiers nor
// decorators. Plain parameters are never dependency lines; this is what
// separates constructor injection from ordinary parameters that share the
// same node shape.
func (p *Param) IsPlain() bool {
	return p.Modifiers.Empty() && len(p.Decorators) == 0
}

type Params struct {
	Arena *Arena[Param]
}

func NewParams(capHint uint) *Params {
	return &Params{
		Arena: NewArena[Param](capHint),
	}
}

func (p *Params) New(param Param) ParamID {
	return ParamID(p.Arena.Allocate(param))
}

func (p *Params) Get(id ParamID) *Param {
	return p.Arena.Get(uint32(id))
}
