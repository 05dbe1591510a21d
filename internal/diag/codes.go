package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                  Code = 1000
	LexUnterminatedString    Code = 1001
	LexUnterminatedTemplate  Code = 1002
	LexUnterminatedComment   Code = 1003
	LexUnterminatedRegex     Code = 1004

	// Syntactic
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynExpectIdentifier  Code = 2003
	SynExpectModuleSpec  Code = 2004
	SynBadDecorator      Code = 2005

	// Migration
	MigInfo              Code = 3000
	MigUnresolvableToken Code = 3001
	MigDestructuredParam Code = 3002
	MigMalformedInject   Code = 3003
	MigSuperParamRef     Code = 3004
	MigClassRewritten    Code = 3005

	// I/O
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	LexInfo:                 "Lexical information",
	LexUnterminatedString:   "Unterminated string literal",
	LexUnterminatedTemplate: "Unterminated template literal",
	LexUnterminatedComment:  "Unterminated block comment",
	LexUnterminatedRegex:    "Unterminated regular expression literal",
	SynInfo:                 "Syntactic information",
	SynUnexpectedToken:      "Unexpected token",
	SynUnclosedDelimiter:    "Unclosed delimiter",
	SynExpectIdentifier:     "Expected identifier",
	SynExpectModuleSpec:     "Expected module specifier",
	SynBadDecorator:         "Malformed decorator",
	MigInfo:                 "Migration information",
	MigUnresolvableToken:    "Cannot resolve injection token",
	MigDestructuredParam:    "Destructured parameter cannot be migrated",
	MigMalformedInject:      "@Inject decorator is missing its token argument",
	MigSuperParamRef:        "super() call references a parameter slated for removal",
	MigClassRewritten:       "Class rewritten to inject()",
	IOLoadFileError:         "I/O load file error",
	IOWriteFileError:        "I/O write file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("MIG%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
