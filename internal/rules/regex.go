package rules

import "strings"

// regexSpecials are the metacharacters that give a pattern meaning
// beyond a literal match.
const regexSpecials = `\.+*?()|[]{}^$`

// containsRegexSpecialChars reports whether s carries any regex
// metacharacter. A pattern without them matches like plain text.
func containsRegexSpecialChars(s string) bool {
	return strings.ContainsAny(s, regexSpecials)
}

// escapeRegex backslash-escapes every metacharacter in s so a regex
// engine treats it as literal text.
func escapeRegex(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(regexSpecials, s[i]) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
