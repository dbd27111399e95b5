package lint

import (
	"fmt"
	"sort"
)

// Placement says which end of the line the pipe goes on when a pipeline
// is reflowed across lines.
type Placement uint8

const (
	PlacementStart Placement = iota // `| cmd` at the head of continuation lines
	PlacementEnd                    // `cmd |` trailing each line
)

func (p Placement) String() string {
	if p == PlacementEnd {
		return "end"
	}
	return "start"
}

// ParsePlacement reads the configured pipeline_placement value.
func ParsePlacement(text string) (Placement, error) {
	switch text {
	case "start":
		return PlacementStart, nil
	case "end":
		return PlacementEnd, nil
	}
	return PlacementStart, fmt.Errorf("unknown pipeline placement %q", text)
}

// Config is the immutable in-memory configuration for a run. The core
// consumes it; loading from disk lives elsewhere.
type Config struct {
	// Rules maps rule id to an explicit severity override. SevOff
	// disables the rule entirely.
	Rules map[string]Severity

	// Groups enables or disables named rule groups wholesale.
	Groups map[string]bool

	PipelinePlacement       Placement
	MaxPipelineLength       int
	ExplicitOptionalAccess  bool
	SkipExternalParseErrors bool

	// Options carries per-rule option bags the core never interprets.
	Options map[string]map[string]any
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Rules:                   make(map[string]Severity),
		Groups:                  make(map[string]bool),
		PipelinePlacement:       PlacementStart,
		MaxPipelineLength:       80,
		SkipExternalParseErrors: true,
		Options:                 make(map[string]map[string]any),
	}
}

// RuleOptions returns the option bag for a rule, never nil.
func (c *Config) RuleOptions(id string) map[string]any {
	if opts, ok := c.Options[id]; ok {
		return opts
	}
	return map[string]any{}
}

// ResolveSeverity applies the precedence chain for one rule: explicit
// override, then group toggles, then the rule's built-in default. When
// several configured groups contain the rule, an enabled group wins over
// a disabled one; group names are scanned in sorted order so resolution
// never depends on map iteration.
func ResolveSeverity(cfg *Config, id string, builtin Severity, groups map[string][]string) Severity {
	if cfg != nil {
		if sev, ok := cfg.Rules[id]; ok {
			return sev
		}
		enabled, disabled := false, false
		for _, name := range sortedGroupNames(cfg.Groups) {
			members, known := groups[name]
			if !known {
				continue
			}
			for _, member := range members {
				if member != id {
					continue
				}
				if cfg.Groups[name] {
					enabled = true
				} else {
					disabled = true
				}
			}
		}
		if enabled {
			return builtin
		}
		if disabled {
			return SevOff
		}
	}
	return builtin
}

func sortedGroupNames(m map[string]bool) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
