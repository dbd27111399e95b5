package rules

import "strings"

// spelling classifies how a string value was written down. The AST keeps
// only the unquoted content, so rules that care about the written form
// derive it from the source slice of the expression's span.
type spelling uint8

const (
	spellBare spelling = iota
	spellDouble
	spellSingle
	spellRaw
	spellInterp
	spellBacktick
)

// spellingOf derives the spelling from the source text of a string
// expression. Everything it cannot recognise counts as a bare word.
func spellingOf(src string) spelling {
	switch {
	case strings.HasPrefix(src, "r#"):
		return spellRaw
	case strings.HasPrefix(src, `$"`), strings.HasPrefix(src, "$'"):
		return spellInterp
	case strings.HasPrefix(src, `"`):
		return spellDouble
	case strings.HasPrefix(src, "'"):
		return spellSingle
	case strings.HasPrefix(src, "`"):
		return spellBacktick
	default:
		return spellBare
	}
}
