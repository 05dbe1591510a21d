package ast

import (
	"ngmigrate/internal/source"
)

// MemberKind discriminates class members.
type MemberKind uint8

const (
	// MemberRaw is any member the rewriter does not model (methods, fields,
	// accessors, index signatures). Its span is copied through verbatim.
	MemberRaw MemberKind = iota
	// MemberCtor is a constructor declaration.
	MemberCtor
	// MemberProp is a synthesized inject() property. It never comes from
	// parsing; only the rewriter allocates these.
	MemberProp
)

// Member is one class member. Parent is a non-owning back-reference.
type Member struct {
	Kind    MemberKind
	Span    source.Span
	Parent  ClassID
	Payload PayloadID // into Ctors for MemberCtor, Props for MemberProp
}

// CtorDecl is the payload of a constructor member.
type CtorDecl struct {
	Params []ParamID
	// HeadSpan covers from the first modifier (or the 'constructor' word)
	// through the closing parenthesis of the parameter list.
	HeadSpan source.Span
	// ParamsSpan covers the text between the parentheses, exclusive.
	ParamsSpan source.Span
	// BodySpan covers the text between the body braces, exclusive.
	BodySpan source.Span
	// BodyHasStatements is true when the body text is more than whitespace.
	// Comments count; a comment-bearing constructor is never dropped.
	BodyHasStatements bool
}

// AccessKind is the access level a synthesized property carries.
type AccessKind uint8

const (
	AccessPrivate AccessKind = iota
	AccessPublic
	AccessProtected
	// AccessHash emits an ECMAScript #-private name instead of a keyword.
	AccessHash
)

func (a AccessKind) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessHash:
		return "#"
	default:
		return "private"
	}
}

// OptionFlags selects entries of the inject() options record. The printed
// key order is fixed: optional, skipSelf, self, host.
type OptionFlags uint8

const (
	OptOptional OptionFlags = 1 << iota
	OptSkipSelf
	OptSelf
	OptHost
)

// Empty reports whether no option is set.
func (f OptionFlags) Empty() bool {
	return f == 0
}

// InjectCall is the initializer of a synthesized property:
// fn<Generic>(Token, { options }).
type InjectCall struct {
	Fn      string
	Token   string
	Generic string // "" when no explicit type argument is attached
	Options OptionFlags
}

// PropDecl is the payload of a synthesized property member.
type PropDecl struct {
	Name     string
	Access   AccessKind
	Readonly bool
	Override bool
	Init     InjectCall
}

type Members struct {
	Arena *Arena[Member]
	Ctors *Arena[CtorDecl]
	Props *Arena[PropDecl]
}

func NewMembers(capHint uint) *Members {
	return &Members{
		Arena: NewArena[Member](capHint),
		Ctors: NewArena[CtorDecl](capHint / 4),
		Props: NewArena[PropDecl](capHint / 4),
	}
}

func (m *Members) NewRaw(sp source.Span, parent ClassID) MemberID {
	return MemberID(m.Arena.Allocate(Member{
		Kind:   MemberRaw,
		Span:   sp,
		Parent: parent,
	}))
}

func (m *Members) NewCtor(sp source.Span, parent ClassID, decl CtorDecl) MemberID {
	payload := PayloadID(m.Ctors.Allocate(decl))
	return MemberID(m.Arena.Allocate(Member{
		Kind:    MemberCtor,
		Span:    sp,
		Parent:  parent,
		Payload: payload,
	}))
}

func (m *Members) NewProp(parent ClassID, decl PropDecl) MemberID {
	payload := PayloadID(m.Props.Allocate(decl))
	return MemberID(m.Arena.Allocate(Member{
		Kind:    MemberProp,
		Parent:  parent,
		Payload: payload,
	}))
}

func (m *Members) Get(id MemberID) *Member {
	return m.Arena.Get(uint32(id))
}

// Ctor returns the constructor payload of member id, nil for other kinds.
func (m *Members) Ctor(id MemberID) *CtorDecl {
	member := m.Get(id)
	if member == nil || member.Kind != MemberCtor {
		return nil
	}
	return m.Ctors.Get(uint32(member.Payload))
}

// Prop returns the property payload of member id, nil for other kinds.
func (m *Members) Prop(id MemberID) *PropDecl {
	member := m.Get(id)
	if member == nil || member.Kind != MemberProp {
		return nil
	}
	return m.Props.Get(uint32(member.Payload))
}
