// Package ast models the structural slice of TypeScript the rewriter needs:
// files, imports, decorated classes, constructors with fully detailed
// parameters, and synthesized inject() properties. Nodes live in arenas and
// are addressed by typed IDs; index 0 always means "no node". Parent fields
// are non-owning back-references used for lookup only; rewrites allocate
// new nodes rather than mutating in place.
package ast
