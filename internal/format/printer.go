package format

import (
	"bytes"

	"ngmigrate/internal/ast"
	"ngmigrate/internal/migrate"
	"ngmigrate/internal/source"
)

// Print serializes the (possibly rewritten) file back to text. Untouched
// spans are copied byte for byte from the original source, so a file with
// no rewrites round-trips exactly. Only replaced classes are re-printed,
// and inside them only the constructor position changes.
func Print(fs *source.FileSet, b *ast.Builder, fileID ast.FileID, res *migrate.FileResult) []byte {
	file := b.Files.Get(fileID)
	src := fs.Text(file.Span)

	if res == nil || !res.Changed {
		out := make([]byte, len(src))
		copy(out, src)
		return out
	}

	var buf bytes.Buffer
	buf.Grow(len(src) + 256)

	cursor := file.Span.Start
	for i := range res.Rewrites {
		rw := &res.Rewrites[i]
		old := b.Classes.Get(rw.Class)
		buf.Write(src[cursor-file.Span.Start : old.Span.Start-file.Span.Start])
		printClass(&buf, fs, b, rw)
		cursor = old.Span.End
	}
	buf.Write(src[cursor-file.Span.Start:])
	return buf.Bytes()
}

// printClass re-emits one rewritten class: verbatim header, members in the
// new order with synthesized properties at the old constructor position,
// verbatim tail.
func printClass(buf *bytes.Buffer, fs *source.FileSet, b *ast.Builder, rw *migrate.ClassRewrite) {
	old := b.Classes.Get(rw.Class)
	cls := b.Classes.Get(rw.NewClass)
	ctorSpan := b.Members.Get(rw.Ctor).Span
	indent := lineIndent(fs, ctorSpan)

	// header through the opening brace
	buf.Write(fs.Text(source.Span{File: old.Span.File, Start: old.Span.Start, End: old.BodySpan.Start}))

	cursor := old.BodySpan.Start
	copyTo := func(end uint32) {
		if end > cursor {
			buf.Write(fs.Text(source.Span{File: old.Span.File, Start: cursor, End: end}))
			cursor = end
		}
	}

	members := cls.Members
	for i := 0; i < len(members); {
		m := b.Members.Get(members[i])
		if m.Kind == ast.MemberRaw {
			copyTo(m.Span.Start)
			buf.Write(fs.Text(m.Span))
			cursor = m.Span.End
			i++
			continue
		}

		// the property/constructor block replacing the old constructor
		copyTo(ctorSpan.Start)
		first := true
		for ; i < len(members) && b.Members.Get(members[i]).Kind == ast.MemberProp; i++ {
			if !first {
				buf.WriteString("\n")
				buf.WriteString(indent)
			}
			printProp(buf, b.Members.Prop(members[i]))
			first = false
		}
		if i < len(members) && b.Members.Get(members[i]).Kind == ast.MemberCtor {
			buf.WriteString("\n\n")
			buf.WriteString(indent)
			printCtor(buf, fs, b, members[i])
			i++
		}
		cursor = ctorSpan.End
	}

	copyTo(old.Span.End)
}

// printCtor re-emits a constructor whose parameter list shrank: verbatim
// head up to '(', the kept parameters joined on one line, verbatim from
// ')' through the body.
func printCtor(buf *bytes.Buffer, fs *source.FileSet, b *ast.Builder, id ast.MemberID) {
	member := b.Members.Get(id)
	decl := b.Members.Ctor(id)

	buf.Write(fs.Text(source.Span{
		File:  member.Span.File,
		Start: member.Span.Start,
		End:   decl.ParamsSpan.Start,
	}))
	for i, pid := range decl.Params {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.Write(fs.Text(b.Params.Get(pid).Span))
	}
	buf.Write(fs.Text(source.Span{
		File:  member.Span.File,
		Start: decl.ParamsSpan.End,
		End:   member.Span.End,
	}))
}

// printProp emits one synthesized property declaration.
func printProp(buf *bytes.Buffer, prop *ast.PropDecl) {
	name := prop.Name
	switch prop.Access {
	case ast.AccessHash:
		name = "#" + name
	default:
		buf.WriteString(prop.Access.String())
		buf.WriteString(" ")
	}
	if prop.Override {
		buf.WriteString("override ")
	}
	if prop.Readonly {
		buf.WriteString("readonly ")
	}
	buf.WriteString(name)
	buf.WriteString(" = ")
	printInjectCall(buf, &prop.Init)
	buf.WriteString(";")
}

func printInjectCall(buf *bytes.Buffer, call *ast.InjectCall) {
	buf.WriteString(call.Fn)
	if call.Generic != "" {
		buf.WriteString("<")
		buf.WriteString(call.Generic)
		buf.WriteString(">")
	}
	buf.WriteString("(")
	buf.WriteString(call.Token)
	if !call.Options.Empty() {
		buf.WriteString(", { ")
		first := true
		writeOpt := func(name string) {
			if !first {
				buf.WriteString(", ")
			}
			buf.WriteString(name)
			buf.WriteString(": true")
			first = false
		}
		// fixed key order
		if call.Options&ast.OptOptional != 0 {
			writeOpt("optional")
		}
		if call.Options&ast.OptSkipSelf != 0 {
			writeOpt("skipSelf")
		}
		if call.Options&ast.OptSelf != 0 {
			writeOpt("self")
		}
		if call.Options&ast.OptHost != 0 {
			writeOpt("host")
		}
		buf.WriteString(" }")
	}
	buf.WriteString(")")
}

// lineIndent returns the whitespace run opening the line that span starts
// on.
func lineIndent(fs *source.FileSet, span source.Span) string {
	file := fs.Get(span.File)
	start := span.Start
	lineStart := start
	for lineStart > 0 && file.Content[lineStart-1] != '\n' {
		lineStart--
	}
	end := lineStart
	for end < start && (file.Content[end] == ' ' || file.Content[end] == '\t') {
		end++
	}
	return string(file.Content[lineStart:end])
}
