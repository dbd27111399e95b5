package lint

import (
	"context"
	"fmt"
	"io"
	"os"

	"nulint/internal/source"
)

// Rule ids reserved for diagnostics the pipeline itself produces.
// They participate in severity overrides and suppression like any
// registered rule, but no Rule implementation backs them.
const (
	RuleParseError    = "nu_parse_error"
	RuleUnknownIgnore = "unknown_ignore_rule"
	RuleInvalidFix    = "invalid_fix"
	RuleFixSuperseded = "fix_superseded"
)

func builtinLevel(id string) Severity {
	switch id {
	case RuleParseError:
		return SevError
	case RuleUnknownIgnore, RuleInvalidFix:
		return SevWarn
	case RuleFixSuperseded:
		return SevHint
	}
	return SevWarn
}

// Runner drives every enabled rule over one lint context and folds the
// results into a sorted violation list.
type Runner struct {
	reg    *Registry
	cfg    *Config
	groups map[string][]string

	// Warn receives a line per rule that panicked. Defaults to stderr.
	Warn io.Writer
}

func NewRunner(reg *Registry, cfg *Config, groups map[string][]string) *Runner {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Runner{reg: reg, cfg: cfg, groups: groups, Warn: os.Stderr}
}

// SeverityFor resolves the effective severity of a rule id under the
// runner's configuration, falling back to the rule's declared level.
func (r *Runner) SeverityFor(id string) Severity {
	level := builtinLevel(id)
	if rule, ok := r.reg.Get(id); ok {
		level = rule.Info().Level
	}
	return ResolveSeverity(r.cfg, id, level, r.groups)
}

// Run executes the full pipeline: rules, parse-error synthesis,
// suppression filtering, and the final ordering. Cancellation is
// honored between rules; a half-finished rule never reports.
func (r *Runner) Run(ctx context.Context, lc *Context) ([]Violation, error) {
	var out []Violation

	for _, rule := range r.reg.Rules() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id := rule.Info().ID
		sev := r.SeverityFor(id)
		if sev == SevOff {
			continue
		}
		for _, f := range r.detect(rule, lc) {
			out = append(out, Violation{
				Detection: f.det,
				Rule:      id,
				Severity:  sev,
				Fix:       f.fix,
			})
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out = dropExternalFindings(lc, out)
	out = append(out, r.parseErrorViolations(lc)...)
	out = r.applySuppressions(lc, out)
	r.attachPaths(lc, out)
	SortViolations(out)
	return out, nil
}

// dropExternalFindings removes rule findings whose span lands in a file
// reached through use/source chains, or in no file at all. Every file
// reports its own findings when linted directly; parse errors follow
// the SkipExternalParseErrors policy instead.
func dropExternalFindings(lc *Context, vs []Violation) []Violation {
	kept := vs[:0]
	for _, v := range vs {
		f, ok := lc.WS.Files.FileFor(v.Span)
		if !ok || f.External() {
			continue
		}
		kept = append(kept, v)
	}
	return kept
}

type finding struct {
	det Detection
	fix *Fix
}

// detect runs one rule. A panicking rule forfeits all its findings and
// gets a line on Warn; the run itself continues.
func (r *Runner) detect(rule Rule, lc *Context) (out []finding) {
	defer func() {
		if p := recover(); p != nil {
			fmt.Fprintf(r.Warn, "nu-lint: rule %s failed: %v\n", rule.Info().ID, p)
			out = nil
		}
	}()

	if fixable, ok := rule.(FixableRule); ok {
		pairs := fixable.DetectWithFix(lc)
		out = make([]finding, 0, len(pairs))
		for _, p := range pairs {
			f := finding{det: p.Detection}
			if p.Input != nil {
				f.fix = fixable.Fix(lc, p.Input)
			}
			out = append(out, f)
		}
		return out
	}

	ds := rule.Detect(lc)
	out = make([]finding, 0, len(ds))
	for _, d := range ds {
		out = append(out, finding{det: d})
	}
	return out
}

// parseErrorViolations turns recorded parse errors into violations.
// Errors inside externally loaded files are skipped by default, and
// identical (span, message) pairs collapse to one report.
func (r *Runner) parseErrorViolations(lc *Context) []Violation {
	sev := r.SeverityFor(RuleParseError)
	if sev == SevOff {
		return nil
	}
	seen := make(map[string]bool)
	var out []Violation
	for _, pe := range lc.WS.ParseErrors {
		if r.cfg.SkipExternalParseErrors {
			f, ok := lc.WS.Files.FileFor(pe.Span)
			if !ok || f.External() {
				continue
			}
		}
		key := pe.Span.String() + "\x00" + pe.Msg
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, Violation{
			Detection: NewDetection(pe.Span, pe.Msg),
			Rule:      RuleParseError,
			Severity:  sev,
		})
	}
	return out
}

// applySuppressions drops violations covered by an ignore comment on
// the preceding line and reports ids that name no known rule.
func (r *Runner) applySuppressions(lc *Context, vs []Violation) []Violation {
	type lineKey struct {
		file source.FileID
		line uint32
	}
	suppressed := make(map[lineKey]map[string]bool)
	var unknown []Violation
	unknownSev := r.SeverityFor(RuleUnknownIgnore)

	files := lc.WS.Files
	for i := 0; i < files.Len(); i++ {
		f := files.Get(source.FileID(i))
		for _, s := range ScanSuppressions(f) {
			k := lineKey{f.ID, s.Target}
			m := suppressed[k]
			if m == nil {
				m = make(map[string]bool)
				suppressed[k] = m
			}
			for _, id := range s.Rules {
				m[id] = true
				if unknownSev != SevOff && !f.External() && !r.knownRule(id) {
					unknown = append(unknown, Violation{
						Detection: NewDetection(s.Span, fmt.Sprintf("unknown rule %q in ignore comment", id)),
						Rule:      RuleUnknownIgnore,
						Severity:  unknownSev,
					})
				}
			}
		}
	}

	var kept []Violation
	for _, v := range vs {
		if f, ok := files.FileFor(v.Span); ok {
			line := files.LineAt(v.Span.Start)
			if m := suppressed[lineKey{f.ID, line}]; m[v.Rule] {
				continue
			}
		}
		kept = append(kept, v)
	}
	return append(kept, unknown...)
}

func (r *Runner) knownRule(id string) bool {
	switch id {
	case RuleParseError, RuleUnknownIgnore, RuleInvalidFix, RuleFixSuperseded:
		return true
	}
	return r.reg.Has(id)
}

func (r *Runner) attachPaths(lc *Context, vs []Violation) {
	for i := range vs {
		if f, ok := lc.WS.Files.FileFor(vs[i].Span); ok {
			vs[i].Path = f.Path
		}
	}
}
