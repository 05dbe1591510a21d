// Package diag carries diagnostics through the migration pipeline.
//
// Every phase (lexer, parser, rewriter, driver) reports findings through the
// Reporter interface into a per-file Bag. Nothing here is fatal: the worst
// outcome any diagnostic describes is "this construct was left unchanged".
// Bags are merged and sorted by the batch driver for deterministic output.
package diag
