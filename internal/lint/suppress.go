package lint

import (
	"regexp"
	"strings"

	"nulint/internal/source"
)

// ignoreLine matches a whole-line suppression comment: indentation,
// `#`, optional space, the literal marker, then the rule list. Trailing
// comments on code lines never suppress.
var ignoreLine = regexp.MustCompile(`^\s*#\s*nu-lint-ignore:\s*(.+)$`)

// Suppression is one parsed ignore comment: the rule ids it names and
// the 1-based line whose violations it drops (the line right below the
// comment).
type Suppression struct {
	Rules  []string
	Target uint32
	Span   source.Span // global span of the comment line
}

// ScanSuppressions reads every line of the file for ignore comments.
func ScanSuppressions(f *source.File) []Suppression {
	var out []Suppression
	lines := uint32(len(f.LineIdx)) + 1
	for ln := uint32(1); ln <= lines; ln++ {
		m := ignoreLine.FindStringSubmatch(f.GetLine(ln))
		if m == nil {
			continue
		}
		ids := splitIgnoreIDs(m[1])
		if len(ids) == 0 {
			continue
		}
		sp, ok := f.LineSpan(ln)
		if !ok {
			continue
		}
		out = append(out, Suppression{
			Rules:  ids,
			Target: ln + 1,
			Span:   source.NewSpan(f.Base+sp.Start, f.Base+sp.End),
		})
	}
	return out
}

func splitIgnoreIDs(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if id := strings.TrimSpace(p); id != "" {
			out = append(out, id)
		}
	}
	return out
}
