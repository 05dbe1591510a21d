package migrate

import (
	"ngmigrate/internal/ast"
)

// Synthesize builds the replacement property node for one dependency line.
// Pure function; only called with eligible metadata.
//
// The initializer is fn(Token), with an explicit type argument iff generic
// text is present, and an options record appended iff at least one
// resolution flag is set. The record's key order is fixed: optional,
// skipSelf, self, host. An empty record is never emitted.
func Synthesize(meta TokenMetadata, flags ParameterFlags, opts *Options) ast.PropDecl {
	call := ast.InjectCall{
		Fn:      opts.InjectFn,
		Token:   meta.Token,
		Generic: meta.Generic,
	}
	if flags.Optional {
		call.Options |= ast.OptOptional
	}
	if flags.SkipSelf {
		call.Options |= ast.OptSkipSelf
	}
	if flags.Self {
		call.Options |= ast.OptSelf
	}
	if flags.Host {
		call.Options |= ast.OptHost
	}

	prop := ast.PropDecl{
		Name:     meta.DependencyName,
		Access:   accessFor(flags, opts),
		Readonly: flags.Readonly,
		Override: flags.Override,
		Init:     call,
	}
	return prop
}

// accessFor picks the property's access form. Explicit public/protected
// carry over; everything else defaults to private, spelled as a keyword or
// a #-name depending on policy.
func accessFor(flags ParameterFlags, opts *Options) ast.AccessKind {
	switch {
	case flags.Public:
		return ast.AccessPublic
	case flags.Protected:
		return ast.AccessProtected
	case opts.Access == AccessHashName:
		return ast.AccessHash
	default:
		return ast.AccessPrivate
	}
}
