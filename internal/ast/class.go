package ast

import (
	"ngmigrate/internal/source"
)

// Class is a class declaration. Parent is a non-owning back-reference used
// for lookup only; edits never mutate through it.
type Class struct {
	Span       source.Span
	Parent     FileID
	Name       string
	Decorators []DecoratorID
	SuperName  string // "" when the class has no extends clause
	Members    []MemberID
	// BodySpan covers the text between the class braces, exclusive.
	BodySpan source.Span
}

// HasSuper reports whether the class extends another one.
func (c *Class) HasSuper() bool {
	return c.SuperName != ""
}

type Classes struct {
	Arena *Arena[Class]
}

func NewClasses(capHint uint) *Classes {
	return &Classes{
		Arena: NewArena[Class](capHint),
	}
}

func (c *Classes) New(sp source.Span, parent FileID, name string) ClassID {
	return ClassID(c.Arena.Allocate(Class{
		Span:   sp,
		Parent: parent,
		Name:   name,
	}))
}

func (c *Classes) Get(id ClassID) *Class {
	return c.Arena.Get(uint32(id))
}
