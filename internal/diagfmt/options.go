package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	// Width caps the source-context line, 0 for unlimited.
	Width     int
	ShowNotes bool
	BaseDir   string
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool
	PathMode         PathMode
	// Max truncates the emitted list, not the bag. 0 for unlimited.
	Max          int
	IncludeNotes bool
	BaseDir      string
}
