// Package diagfmt renders lint violations for people and tools: a
// pretty multi-line form with source excerpts, a one-line short form
// for editors, a JSON form for integrations, and a byte-offset golden
// form for snapshot tests.
package diagfmt

import (
	"fmt"

	"nulint/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps short paths as written and shortens long
	// absolute ones to their basename.
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
	}
	return "auto"
}

// ParsePathMode reads a path display mode from a flag value.
func ParsePathMode(text string) (PathMode, error) {
	switch text {
	case "auto", "":
		return PathModeAuto, nil
	case "absolute", "abs":
		return PathModeAbsolute, nil
	case "relative", "rel":
		return PathModeRelative, nil
	case "basename", "base":
		return PathModeBasename, nil
	}
	return PathModeAuto, fmt.Errorf("unknown path mode %q", text)
}

// PrettyOpts configures pretty-printing of violations.
type PrettyOpts struct {
	Color       bool
	Context     int8 // extra source lines around the primary excerpt
	PathMode    PathMode
	ShowHelp    bool
	ShowFixes   bool
	ShowPreview bool
}

// JSONOpts configures JSON output of violations.
type JSONOpts struct {
	IncludePositions bool // add line/col next to byte offsets
	PathMode         PathMode
	Max              int // keep only the first Max violations, 0 keeps all
	IncludeLabels    bool
	IncludeFixes     bool
	IncludePreviews  bool
}

func formatPath(f *source.File, mode PathMode, fs *source.FileSet) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	}
	return f.FormatPath("auto", "")
}
