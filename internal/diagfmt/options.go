package diagfmt

import "numberplater/internal/diag"

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto shows relative paths under BaseDir and absolute ones elsewhere.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	BaseDir   string
	ShowNotes bool

	// MinSeverity hides less severe diagnostics.
	MinSeverity diag.Severity
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode     PathMode
	BaseDir      string
	Max          int // truncates output, not the Bag
	IncludeNotes bool
}

// ResultOpts configures rendering of ranked plates.
type ResultOpts struct {
	Color bool
	// Limit caps the rows printed; 0 prints everything.
	Limit int
	// ShowFamilies adds a column naming the families behind each rendering.
	ShowFamilies bool
}
