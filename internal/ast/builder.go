package ast

import (
	"ngmigrate/internal/source"
)

// Hints sizes the builder's arenas up front.
type Hints struct{ Files, Classes, Members, Params, Decorators uint }

// Builder owns the arenas all nodes of one (or more) files live in.
// Nodes are allocated once and never mutated through parent references;
// a rewrite allocates replacement nodes instead.
type Builder struct {
	Files      *Files
	Classes    *Classes
	Members    *Members
	Params     *Params
	Decorators *Decorators
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Classes == 0 {
		hints.Classes = 1 << 4
	}
	if hints.Members == 0 {
		hints.Members = 1 << 6
	}
	if hints.Params == 0 {
		hints.Params = 1 << 5
	}
	if hints.Decorators == 0 {
		hints.Decorators = 1 << 5
	}
	return &Builder{
		Files:      NewFiles(hints.Files),
		Classes:    NewClasses(hints.Classes),
		Members:    NewMembers(hints.Members),
		Params:     NewParams(hints.Params),
		Decorators: NewDecorators(hints.Decorators),
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushClass(file FileID, class ClassID) {
	f := b.Files.Get(file)
	f.Classes = append(f.Classes, class)
}

func (b *Builder) PushMember(class ClassID, member MemberID) {
	c := b.Classes.Get(class)
	c.Members = append(c.Members, member)
}

// FirstCtor returns the first constructor member of class, or NoMemberID.
func (b *Builder) FirstCtor(class ClassID) MemberID {
	c := b.Classes.Get(class)
	for _, id := range c.Members {
		if b.Members.Get(id).Kind == MemberCtor {
			return id
		}
	}
	return NoMemberID
}
