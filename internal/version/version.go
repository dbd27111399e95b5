package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the nu-lint CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = versionMajorColor.Sprint("0") + "." + versionMinorColor.Sprint("1") + "." + versionPatchColor.Sprint("0") + "-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Summary renders the block printed by `nu-lint version`: the version
// line plus whatever build metadata was stamped in.
func Summary() string {
	var b strings.Builder
	b.WriteString("nu-lint ")
	b.WriteString(Version)
	if GitCommit != "" {
		b.WriteString("\ncommit: ")
		b.WriteString(GitCommit)
		if GitMessage != "" {
			b.WriteString(" (")
			b.WriteString(GitMessage)
			b.WriteString(")")
		}
	}
	if BuildDate != "" {
		b.WriteString("\nbuilt:  ")
		b.WriteString(BuildDate)
	}
	return b.String()
}
