package migrate

import (
	"fmt"

	"ngmigrate/internal/ast"
	"ngmigrate/internal/diag"
)

// LineVerdict is the outcome of examining one constructor parameter.
type LineVerdict uint8

const (
	// LinePlain marks an ordinary parameter: no modifiers, no decorators.
	// It is not a dependency line and stays on the constructor silently.
	LinePlain LineVerdict = iota
	// LineSkip marks a dependency-shaped parameter that cannot be
	// migrated. A diagnostic has been emitted; the parameter stays.
	LineSkip
	// LineMigrate marks a resolved dependency line.
	LineMigrate
)

// marker decorator names recognized on parameters
const (
	decInject   = "Inject"
	decOptional = "Optional"
	decSelf     = "Self"
	decSkipSelf = "SkipSelf"
	decHost     = "Host"
)

// primitiveTypes are type names that can never serve as injection tokens.
var primitiveTypes = map[string]bool{
	"string": true, "number": true, "boolean": true, "symbol": true,
	"bigint": true, "any": true, "unknown": true, "never": true,
	"object": true, "void": true, "undefined": true, "null": true,
}

// ExtractLine resolves one parameter into token metadata and flags.
// Resolution priority: an explicit @Inject argument wins over the declared
// type; with @Inject the generic text is the full declared type
// unconditionally, with a direct type reference it is attached only when
// the declared text carries more than the bare base name.
func ExtractLine(b *ast.Builder, paramID ast.ParamID, rep diag.Reporter) (TokenMetadata, ParameterFlags, LineVerdict) {
	param := b.Params.Get(paramID)

	if param.IsPlain() || param.Rest {
		return TokenMetadata{}, ParameterFlags{}, LinePlain
	}

	if param.Pattern {
		diag.ReportInfo(rep, diag.MigDestructuredParam, param.Span,
			"destructured parameter cannot be migrated")
		return TokenMetadata{}, ParameterFlags{}, LineSkip
	}

	flags := extractFlags(b, param)

	var inject *ast.Decorator
	for _, id := range param.Decorators {
		dec := b.Decorators.Get(id)
		switch dec.Name {
		case decInject:
			inject = dec
		case decOptional, decSelf, decSkipSelf, decHost:
			// marker, already folded into flags
		default:
			diag.ReportInfo(rep, diag.MigUnresolvableToken, dec.Span,
				fmt.Sprintf("unsupported parameter decorator @%s", dec.Name))
			return TokenMetadata{}, ParameterFlags{}, LineSkip
		}
	}

	meta := TokenMetadata{DependencyName: param.Name, Eligible: true}
	switch {
	case inject != nil:
		if !inject.Called || len(inject.Args) != 1 || inject.Args[0] == "" {
			diag.ReportInfo(rep, diag.MigMalformedInject, inject.Span,
				"@Inject requires exactly one token argument")
			return TokenMetadata{}, ParameterFlags{}, LineSkip
		}
		meta.Token = inject.Args[0]
		meta.Generic = param.Type.Text
	case param.Type.DirectRef && !primitiveTypes[param.Type.BaseName]:
		meta.Token = param.Type.BaseName
		if param.Type.Text != param.Type.BaseName {
			meta.Generic = param.Type.Text
		}
	default:
		diag.ReportInfo(rep, diag.MigUnresolvableToken, param.Span,
			fmt.Sprintf("cannot resolve an injection token for parameter %q", param.Name))
		return TokenMetadata{}, ParameterFlags{}, LineSkip
	}

	return meta, flags, LineMigrate
}

func extractFlags(b *ast.Builder, param *ast.Param) ParameterFlags {
	flags := ParameterFlags{
		Public:    param.Modifiers.Has(ast.ModPublic),
		Private:   param.Modifiers.Has(ast.ModPrivate),
		Protected: param.Modifiers.Has(ast.ModProtected),
		Readonly:  param.Modifiers.Has(ast.ModReadonly),
		Override:  param.Modifiers.Has(ast.ModOverride),
	}
	for _, id := range param.Decorators {
		switch b.Decorators.Get(id).Name {
		case decOptional:
			flags.Optional = true
		case decSelf:
			flags.Self = true
		case decSkipSelf:
			flags.SkipSelf = true
		case decHost:
			flags.Host = true
		}
	}
	return flags
}
