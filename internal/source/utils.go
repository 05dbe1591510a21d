package source

import (
	"path/filepath"
	"slices"
	"strings"
)

// normalizeCRLF replaces every \r\n with \n, leaving lone \r untouched.
// Returns the (possibly new) slice and whether any replacement happened.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

// Denormalize reverses what Load normalized away so an emitted file keeps
// its original encoding. Normalized content carries no \r, so the CRLF
// expansion cannot double-convert.
func Denormalize(content []byte, flags FileFlags) []byte {
	if flags&FileNormalizedCRLF != 0 {
		out := make([]byte, 0, len(content)+len(content)/16)
		for _, b := range content {
			if b == '\n' {
				out = append(out, '\r', '\n')
			} else {
				out = append(out, b)
			}
		}
		content = out
	}
	if flags&FileHadBOM != 0 {
		content = append([]byte{0xEF, 0xBB, 0xBF}, content...)
	}
	return content
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}
	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// binary search for the largest lineIdx[i] <= off
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] <= off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	line := hi

	if line < 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	var startOff uint32
	if line == 0 {
		startOff = 0
	} else {
		startOff = lineIdx[line-1] + 1
	}
	// off sits past the newline that closes line, so it belongs to line+1
	if lineIdx[line] < off {
		startOff = lineIdx[line] + 1
		return LineCol{Line: uint32(line + 2), Col: off - startOff + 1}
	}

	return LineCol{Line: uint32(line + 1), Col: off - startOff + 1}
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath resolves p to an absolute, cleaned path.
func AbsolutePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// RelativePath expresses p relative to base. Paths outside base fall back
// to the absolute form.
func RelativePath(p, base string) (string, error) {
	absP, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absP)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(absP), nil
	}
	return normalizePath(rel), nil
}

// BaseName returns the final path element of p.
func BaseName(p string) string {
	return filepath.Base(p)
}
