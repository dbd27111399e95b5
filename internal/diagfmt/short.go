package diagfmt

import (
	"fmt"
	"io"

	"nulint/internal/lint"
	"nulint/internal/source"
)

// Short renders one violation per line in the compiler style editors
// already parse: path:line:col: severity: message [rule].
func Short(w io.Writer, vs []lint.Violation, fs *source.FileSet, mode PathMode) {
	for i := range vs {
		v := &vs[i]
		f, okFile := fs.FileFor(v.Span)
		start, _, okPos := fs.Resolve(v.Span)
		if !okFile || !okPos {
			fmt.Fprintf(w, "%s: %s [%s]\n", v.Severity, v.Message, v.Rule)
			continue
		}
		fmt.Fprintf(w, "%s:%d:%d: %s: %s [%s]\n",
			formatPath(f, mode, fs), start.Line, start.Col, v.Severity, v.Message, v.Rule)
	}
}
