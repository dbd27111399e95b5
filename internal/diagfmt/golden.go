package diagfmt

import (
	"fmt"
	"strings"

	"nulint/internal/lint"
)

// Golden renders violations one per line in a byte-offset form meant
// for snapshot comparisons. Offsets stay stable under reformatting
// that line/column positions would not survive.
func Golden(vs []lint.Violation) string {
	var b strings.Builder
	for i := range vs {
		v := &vs[i]
		fmt.Fprintf(&b, "%s %s @%d..%d %s", v.Severity, v.Rule, v.Span.Start, v.Span.End, v.Message)
		if v.Fix != nil {
			fmt.Fprintf(&b, " (fix: %s)", v.Fix.Description)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
