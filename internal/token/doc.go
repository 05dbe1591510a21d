// Package token defines the token kinds produced by the TypeScript-subset
// scanner. The set is deliberately structural: only the words and punctuation
// that matter for locating classes, decorators, constructors, and imports are
// distinguished; everything else flows through as Ident or Other.
package token
