package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// PrivateIdent represents a #-prefixed class member name.
	PrivateIdent

	// KwClass represents the 'class' keyword.
	KwClass // class
	// KwConstructor represents the 'constructor' member name.
	KwConstructor // constructor
	// KwExtends represents the 'extends' keyword.
	KwExtends // extends
	// KwImplements represents the 'implements' keyword.
	KwImplements // implements
	// KwExport represents the 'export' keyword.
	KwExport // export
	// KwDefault represents the 'default' keyword.
	KwDefault // default
	// KwAbstract represents the 'abstract' modifier.
	KwAbstract // abstract
	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwFrom represents the 'from' keyword.
	KwFrom // from
	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwPublic represents the 'public' modifier.
	KwPublic // public
	// KwPrivate represents the 'private' modifier.
	KwPrivate // private
	// KwProtected represents the 'protected' modifier.
	KwProtected // protected
	// KwReadonly represents the 'readonly' modifier.
	KwReadonly // readonly
	// KwOverride represents the 'override' modifier.
	KwOverride // override
	// KwStatic represents the 'static' modifier.
	KwStatic // static
	// KwDeclare represents the 'declare' modifier.
	KwDeclare // declare
	// KwSuper represents the 'super' keyword.
	KwSuper // super
	// KwThis represents the 'this' keyword.
	KwThis // this
	// KwNew represents the 'new' keyword.
	KwNew // new
	// KwGet represents the 'get' accessor keyword.
	KwGet // get
	// KwSet represents the 'set' accessor keyword.
	KwSet // set
	// KwAsync represents the 'async' modifier.
	KwAsync // async
	// KwType represents the 'type' keyword.
	KwType // type

	// NumberLit represents a numeric literal.
	NumberLit
	// StringLit represents a single- or double-quoted string literal.
	StringLit
	// TemplateLit represents a backtick template literal.
	TemplateLit
	// RegexLit represents a regular expression literal.
	RegexLit

	// At represents '@'.
	At // @
	// LParen represents '('.
	LParen // (
	// RParen represents ')'.
	RParen // )
	// LBrace represents '{'.
	LBrace // {
	// RBrace represents '}'.
	RBrace // }
	// LBracket represents '['.
	LBracket // [
	// RBracket represents ']'.
	RBracket // ]
	// Lt represents '<'.
	Lt // <
	// Gt represents '>'.
	Gt // >
	// Comma represents ','.
	Comma // ,
	// Colon represents ':'.
	Colon // :
	// Semicolon represents ';'.
	Semicolon // ;
	// Question represents '?'.
	Question // ?
	// Bang represents '!'.
	Bang // !
	// Dot represents '.'.
	Dot // .
	// Ellipsis represents '...'.
	Ellipsis // ...
	// Assign represents '='.
	Assign // =
	// Arrow represents '=>'.
	Arrow // =>
	// Pipe represents '|'.
	Pipe // |
	// Amp represents '&'.
	Amp // &
	// Other represents any other punctuation or operator the scanner does
	// not need to distinguish.
	Other
)

var kindNames = map[Kind]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	PrivateIdent:  "PrivateIdent",
	KwClass:       "class",
	KwConstructor: "constructor",
	KwExtends:     "extends",
	KwImplements:  "implements",
	KwExport:      "export",
	KwDefault:     "default",
	KwAbstract:    "abstract",
	KwImport:      "import",
	KwFrom:        "from",
	KwAs:          "as",
	KwPublic:      "public",
	KwPrivate:     "private",
	KwProtected:   "protected",
	KwReadonly:    "readonly",
	KwOverride:    "override",
	KwStatic:      "static",
	KwDeclare:     "declare",
	KwSuper:       "super",
	KwThis:        "this",
	KwNew:         "new",
	KwGet:         "get",
	KwSet:         "set",
	KwAsync:       "async",
	KwType:        "type",
	NumberLit:     "NumberLit",
	StringLit:     "StringLit",
	TemplateLit:   "TemplateLit",
	RegexLit:      "RegexLit",
	At:            "@",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
	Lt:            "<",
	Gt:            ">",
	Comma:         ",",
	Colon:         ":",
	Semicolon:     ";",
	Question:      "?",
	Bang:          "!",
	Dot:           ".",
	Ellipsis:      "...",
	Assign:        "=",
	Arrow:         "=>",
	Pipe:          "|",
	Amp:           "&",
	Other:         "Other",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsModifier reports whether the kind is a parameter-property modifier.
func (k Kind) IsModifier() bool {
	switch k {
	case KwPublic, KwPrivate, KwProtected, KwReadonly, KwOverride:
		return true
	default:
		return false
	}
}

// IsOpenDelim reports whether the kind opens a bracket pair.
func (k Kind) IsOpenDelim() bool {
	switch k {
	case LParen, LBrace, LBracket:
		return true
	default:
		return false
	}
}

// CloseDelim returns the closing counterpart for an opening delimiter.
func (k Kind) CloseDelim() Kind {
	switch k {
	case LParen:
		return RParen
	case LBrace:
		return RBrace
	case LBracket:
		return RBracket
	default:
		return Invalid
	}
}
