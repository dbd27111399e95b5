package lint

import "fmt"

// Severity ranks how a violation surfaces. SevOff exists only during
// configuration resolution; violations resolved to it never reach the
// output.
type Severity uint8

const (
	SevOff Severity = iota
	SevHint
	SevWarn
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevOff:
		return "off"
	case SevHint:
		return "hint"
	case SevWarn:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

// ParseSeverity reads a configured severity. "allow" and "off" are the
// same thing; "warn" and "warning" too.
func ParseSeverity(text string) (Severity, error) {
	switch text {
	case "error":
		return SevError, nil
	case "warn", "warning":
		return SevWarn, nil
	case "hint":
		return SevHint, nil
	case "allow", "off":
		return SevOff, nil
	}
	return SevOff, fmt.Errorf("unknown severity %q", text)
}
