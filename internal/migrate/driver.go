package migrate

import (
	"fmt"

	"ngmigrate/internal/ast"
	"ngmigrate/internal/diag"
	"ngmigrate/internal/source"
)

// Action is the tri-state outcome of dispatching one node.
type Action uint8

const (
	// ActionUnchanged leaves the node as is.
	ActionUnchanged Action = iota
	// ActionReplace substitutes a new node; the replacement is final and
	// is not dispatched again.
	ActionReplace
	// ActionDelete removes the node from its parent.
	ActionDelete
)

// ClassRewrite records one replaced class for the serializer.
type ClassRewrite struct {
	Class    ast.ClassID  // original node
	NewClass ast.ClassID  // replacement node
	Ctor     ast.MemberID // original constructor member
	NewCtor  ast.MemberID // NoMemberID when the constructor was dropped
	Props    []ast.MemberID
	Migrated []ast.ParamID
}

// FileResult is the outcome of rewriting one file's tree.
type FileResult struct {
	File    ast.FileID
	Changed bool
	// NeedsImport is set when at least one resolution call was
	// synthesized; import management is the caller's job.
	NeedsImport bool
	Registry    *TokenRegistry
	Rewrites    []ClassRewrite
}

// Rewrite returns the replacement for old, or old itself when unchanged.
func (r *FileResult) Rewrite(old ast.ClassID) (ast.ClassID, Action) {
	for i := range r.Rewrites {
		if r.Rewrites[i].Class == old {
			return r.Rewrites[i].NewClass, ActionReplace
		}
	}
	return old, ActionUnchanged
}

// RewriteFile runs the single-pass rewrite over one parsed file: classes in
// document order, then the class's constructor, then its parameters. All
// scratch state (registry, pending properties) lives for this call only.
func RewriteFile(fs *source.FileSet, b *ast.Builder, fileID ast.FileID, opts Options, rep diag.Reporter) FileResult {
	res := FileResult{File: fileID, Registry: NewTokenRegistry()}

	file := b.Files.Get(fileID)
	for _, classID := range file.Classes {
		rw, action := rewriteClass(fs, b, classID, &opts, rep, res.Registry)
		if action != ActionReplace {
			continue
		}
		res.Rewrites = append(res.Rewrites, rw)
		res.Changed = true
		res.NeedsImport = true
	}
	return res
}

// rewriteClass dispatches one class node.
func rewriteClass(
	fs *source.FileSet,
	b *ast.Builder,
	classID ast.ClassID,
	opts *Options,
	rep diag.Reporter,
	registry *TokenRegistry,
) (ClassRewrite, Action) {
	ctorID, ok := Classify(b, classID, opts)
	if !ok {
		return ClassRewrite{}, ActionUnchanged
	}

	decl := b.Members.Ctor(ctorID)

	// pending changes for this class, consumed once on rebuild
	var props []ast.PropDecl
	var migratedIDs []ast.ParamID
	migrated := make(map[ast.ParamID]bool)
	names := make(map[string]bool)

	for _, paramID := range decl.Params {
		meta, flags, verdict := ExtractLine(b, paramID, rep)
		if verdict != LineMigrate {
			continue
		}
		registry.Register(meta)
		props = append(props, Synthesize(meta, flags, opts))
		migratedIDs = append(migratedIDs, paramID)
		migrated[paramID] = true
		names[meta.DependencyName] = true
	}
	if len(props) == 0 {
		return ClassRewrite{}, ActionUnchanged
	}

	cls := b.Classes.Get(classID)
	if cls.HasSuper() && decl.BodyHasStatements && superReferences(fs, decl.BodySpan, names) {
		diag.ReportInfo(rep, diag.MigSuperParamRef, decl.HeadSpan,
			fmt.Sprintf("class %s passes a migrated parameter to super(); left unchanged", cls.Name))
		for name := range names {
			registry.MarkIneligible(name)
		}
		return ClassRewrite{}, ActionUnchanged
	}

	ctorRW := RewriteCtor(b, ctorID, migrated)
	newClass, propIDs, newCtor := Aggregate(b, classID, ctorRW, props)

	diag.ReportInfo(rep, diag.MigClassRewritten, cls.Span,
		fmt.Sprintf("class %s: %d dependency line(s) migrated", cls.Name, len(props)))

	return ClassRewrite{
		Class:    classID,
		NewClass: newClass,
		Ctor:     ctorID,
		NewCtor:  newCtor,
		Props:    propIDs,
		Migrated: migratedIDs,
	}, ActionReplace
}
