package token

// keywords maps contextual TypeScript keywords the scanner distinguishes.
// Everything else identifies as Ident.
var keywords = map[string]Kind{
	"class":       KwClass,
	"constructor": KwConstructor,
	"extends":     KwExtends,
	"implements":  KwImplements,
	"export":      KwExport,
	"default":     KwDefault,
	"abstract":    KwAbstract,
	"import":      KwImport,
	"from":        KwFrom,
	"as":          KwAs,
	"public":      KwPublic,
	"private":     KwPrivate,
	"protected":   KwProtected,
	"readonly":    KwReadonly,
	"override":    KwOverride,
	"static":      KwStatic,
	"declare":     KwDeclare,
	"super":       KwSuper,
	"this":        KwThis,
	"new":         KwNew,
	"get":         KwGet,
	"set":         KwSet,
	"async":       KwAsync,
	"type":        KwType,
}

// LookupIdent classifies an identifier's text as a keyword kind or Ident.
func LookupIdent(text string) Kind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	return Ident
}

// IsKeywordLike reports whether the kind spells a word that may still be
// used as an ordinary identifier in TypeScript (all of our keywords are
// contextual except 'class', 'extends', 'import', 'super', 'this', 'new').
func IsKeywordLike(k Kind) bool {
	switch k {
	case KwConstructor, KwFrom, KwAs, KwPublic, KwPrivate, KwProtected,
		KwReadonly, KwOverride, KwAbstract, KwDeclare, KwGet, KwSet,
		KwAsync, KwType, KwImplements, KwDefault, KwStatic:
		return true
	default:
		return false
	}
}
