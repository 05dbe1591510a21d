package ast

type (
	// top-level nodes
	FileID   uint32
	ClassID  uint32
	MemberID uint32
	// sub-nodes
	ParamID     uint32
	DecoratorID uint32
	PayloadID   uint32
)

const (
	NoFileID      FileID      = 0
	NoClassID     ClassID     = 0
	NoMemberID    MemberID    = 0
	NoParamID     ParamID     = 0
	NoDecoratorID DecoratorID = 0
	NoPayloadID   PayloadID   = 0
)

func (id FileID) IsValid() bool      { return id != NoFileID }
func (id ClassID) IsValid() bool     { return id != NoClassID }
func (id MemberID) IsValid() bool    { return id != NoMemberID }
func (id ParamID) IsValid() bool     { return id != NoParamID }
func (id DecoratorID) IsValid() bool { return id != NoDecoratorID }
func (id PayloadID) IsValid() bool   { return id != NoPayloadID }
