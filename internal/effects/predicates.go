package effects

import (
	"slices"
	"strings"

	"nulint/internal/ast"
)

// Predicate gates a table entry on the shape of the argument list.
type Predicate func(ws *ast.WorkingSet, args []ast.ExternalArg) bool

// argText recovers the written form of one external argument. Barewords
// and string literals carry their text directly; anything else falls
// back to the source slice.
func argText(ws *ast.WorkingSet, a ast.ExternalArg) string {
	if a.Expr == nil {
		return ""
	}
	if a.Expr.IsStringish() {
		return a.Expr.Str
	}
	return ws.Text(a.Expr.Span)
}

// hasFlag matches when any argument spells one of the given flags. Long
// names match exactly; single-letter names also match inside combined
// clusters, so `-rf` carries both `-r` and `-f`.
func hasFlag(names ...string) Predicate {
	return func(ws *ast.WorkingSet, args []ast.ExternalArg) bool {
		for _, a := range args {
			text := argText(ws, a)
			for _, name := range names {
				if text == name {
					return true
				}
				if isShortName(name) && isShortCluster(text) &&
					strings.ContainsRune(text[1:], rune(name[1])) {
					return true
				}
			}
		}
		return false
	}
}

func isShortName(name string) bool {
	return len(name) == 2 && name[0] == '-' && name[1] != '-'
}

func isShortCluster(text string) bool {
	return len(text) > 1 && text[0] == '-' && text[1] != '-'
}

// allOf matches when every predicate matches.
func allOf(preds ...Predicate) Predicate {
	return func(ws *ast.WorkingSet, args []ast.ExternalArg) bool {
		for _, p := range preds {
			if !p(ws, args) {
				return false
			}
		}
		return true
	}
}

// subcommandIs matches when the first non-flag argument is one of names.
func subcommandIs(names ...string) Predicate {
	return func(ws *ast.WorkingSet, args []ast.ExternalArg) bool {
		sub, ok := Subcommand(ws, args)
		return ok && slices.Contains(names, sub)
	}
}

// Subcommand returns the first argument that does not look like a flag.
// Flags taking separate values fool this, which is the usual imprecision
// of inspecting external argument lists statically.
func Subcommand(ws *ast.WorkingSet, args []ast.ExternalArg) (string, bool) {
	for _, a := range args {
		if a.Spread {
			continue
		}
		text := argText(ws, a)
		if text == "" || strings.HasPrefix(text, "-") {
			continue
		}
		return text, true
	}
	return "", false
}
