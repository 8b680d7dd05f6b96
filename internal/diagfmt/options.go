package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) formatMode() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	}
	return "auto"
}

// PrettyOpts configures pretty-printing of diagnostics. Notes are
// always printed: footnote-annotated diagnostics keep their diff
// detail there, so dropping them would hide the mismatch content.
type PrettyOpts struct {
	Color      bool
	PathMode   PathMode
	ShowSource bool // print the offending line with an underline
	Max        int  // truncate output, not the Bag; 0 means unlimited
}

// JSONOpts configures JSON output of diagnostics. Notes are always
// included for the same reason they are always printed.
type JSONOpts struct {
	IncludePositions bool // add line/col
	PathMode         PathMode
	Max              int // truncate output, not the Bag; 0 means unlimited
}
