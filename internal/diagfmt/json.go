package diagfmt

import (
	"encoding/json"
	"io"

	"ngmigrate/internal/diag"
	"ngmigrate/internal/source"
)

// jsonDiagnostic is the wire shape of one diagnostic.
type jsonDiagnostic struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Message  string     `json:"message"`
	Path     string     `json:"path,omitempty"`
	Line     uint32     `json:"line,omitempty"`
	Col      uint32     `json:"col,omitempty"`
	Notes    []jsonNote `json:"notes,omitempty"`
}

type jsonNote struct {
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
	Line    uint32 `json:"line,omitempty"`
	Col     uint32 `json:"col,omitempty"`
}

// JSON writes diagnostics as a JSON array, one object per diagnostic.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}

	out := make([]jsonDiagnostic, 0, len(items))
	for _, d := range items {
		jd := jsonDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
		}
		fillPosition(fs, d.Primary, &opts, &jd.Path, &jd.Line, &jd.Col)
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				jn := jsonNote{Message: n.Msg}
				fillPosition(fs, n.Span, &opts, &jn.Path, &jn.Line, &jn.Col)
				jd.Notes = append(jd.Notes, jn)
			}
		}
		out = append(out, jd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func fillPosition(fs *source.FileSet, span source.Span, opts *JSONOpts, path *string, line, col *uint32) {
	if fs == nil {
		return
	}
	file := fs.Get(span.File)
	if file == nil {
		return
	}
	*path = file.FormatPath(opts.PathMode.String(), opts.BaseDir)
	if opts.IncludePositions {
		start, _ := fs.Resolve(span)
		*line, *col = start.Line, start.Col
	}
}
