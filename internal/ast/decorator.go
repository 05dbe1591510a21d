package ast

import (
	"ngmigrate/internal/source"
)

// Decorator is one @Name or @Name(args) application.
type Decorator struct {
	Span source.Span
	Name string
	// Called is true when the decorator was written with parentheses.
	// @Inject(TOKEN) has Called=true and one argument; a bare @Optional
	// reference (no parentheses) has Called=false.
	Called bool
	// Args holds the source text of each top-level call argument, trimmed.
	Args []string
	// ArgSpans holds the span of each argument, parallel to Args.
	ArgSpans []source.Span
}

type Decorators struct {
	Arena *Arena[Decorator]
}

func NewDecorators(capHint uint) *Decorators {
	return &Decorators{
		Arena: NewArena[Decorator](capHint),
	}
}

func (d *Decorators) New(dec Decorator) DecoratorID {
	return DecoratorID(d.Arena.Allocate(dec))
}

func (d *Decorators) Get(id DecoratorID) *Decorator {
	return d.Arena.Get(uint32(id))
}
