// Package fix validates and applies the machine-applicable rewrites
// that rules attach to violations. The engine never invokes rules: it
// takes what a run produced, discards broken fixes, resolves overlaps,
// and splices the survivors into the file content.
package fix

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"nulint/internal/lint"
	"nulint/internal/source"
)

// AppliedFix records one fix that made it into the output.
type AppliedFix struct {
	Rule        string
	Description string
	EditCount   int
}

// Result aggregates the outcome of fixing one file.
type Result struct {
	Content []byte       // rewritten file content
	Applied []AppliedFix // fixes spliced in, in application priority order
	// Reports carries invalid_fix and fix_superseded diagnostics. The
	// violations whose fixes were discarded keep reporting as usual.
	Reports []lint.Violation
}

// Changed reports whether any fix made it into the content.
func (r *Result) Changed() bool {
	return len(r.Applied) > 0
}

// Engine applies fixes for one file at a time. Conflicts resolve by
// violation severity, then registry order, so the rule the user cares
// about most wins the span.
type Engine struct {
	reg *lint.Registry

	// Severity resolves the level of the engine's own reports,
	// typically wired to Runner.SeverityFor. Nil keeps the defaults.
	Severity func(id string) lint.Severity
}

func NewEngine(reg *lint.Registry) *Engine {
	return &Engine{reg: reg}
}

type candidate struct {
	v     *lint.Violation
	order int // position in the input, final tiebreak
}

// Apply rewrites f's content with every valid, non-conflicting fix
// among the violations. Invalid fixes are discarded wholesale; when
// two fixes overlap, the higher-ranked one wins and the loser is
// reported as superseded.
func (e *Engine) Apply(f *source.File, vs []lint.Violation) Result {
	var res Result

	cands := e.gatherCandidates(&res, f, vs)
	sortCandidates(e.reg, cands)
	accepted := e.resolveOverlaps(&res, cands)

	res.Content = spliceEdits(f, accepted)
	for _, c := range accepted {
		res.Applied = append(res.Applied, AppliedFix{
			Rule:        c.v.Rule,
			Description: c.v.Fix.Description,
			EditCount:   len(c.v.Fix.Replacements),
		})
	}
	return res
}

// gatherCandidates validates each violation's fix against the file.
// A fix with any bad replacement is dropped in full; its violation
// still reports, only the rewrite is lost.
func (e *Engine) gatherCandidates(res *Result, f *source.File, vs []lint.Violation) []candidate {
	var cands []candidate
	for i := range vs {
		v := &vs[i]
		if v.Fix == nil {
			continue
		}
		if reason := validateFix(f, v.Fix); reason != "" {
			e.report(res, lint.RuleInvalidFix, v.Span,
				fmt.Sprintf("fix %q from rule %s discarded: %s", v.Fix.Description, v.Rule, reason))
			continue
		}
		cands = append(cands, candidate{v: v, order: i})
	}
	return cands
}

// sortCandidates orders candidates by application priority: severity
// first, then registry order, then span start, then input order.
func sortCandidates(reg *lint.Registry, cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.v.Severity != b.v.Severity {
			return a.v.Severity > b.v.Severity
		}
		if pa, pb := reg.Pos(a.v.Rule), reg.Pos(b.v.Rule); pa != pb {
			return pa < pb
		}
		if a.v.Span.Start != b.v.Span.Start {
			return a.v.Span.Start < b.v.Span.Start
		}
		return a.order < b.order
	})
}

// resolveOverlaps accepts candidates greedily in priority order; a
// candidate touching an already claimed span loses in full.
func (e *Engine) resolveOverlaps(res *Result, cands []candidate) []candidate {
	var accepted []candidate
	for _, c := range cands {
		if winner := firstConflict(accepted, c); winner != nil {
			e.report(res, lint.RuleFixSuperseded, c.v.Span,
				fmt.Sprintf("fix %q from rule %s superseded by rule %s",
					c.v.Fix.Description, c.v.Rule, winner.v.Rule))
			continue
		}
		accepted = append(accepted, c)
	}
	return accepted
}

func (e *Engine) report(res *Result, id string, sp source.Span, msg string) {
	sev := e.severityFor(id)
	if sev == lint.SevOff {
		return
	}
	res.Reports = append(res.Reports, lint.Violation{
		Detection: lint.NewDetection(sp, msg),
		Rule:      id,
		Severity:  sev,
	})
}

func (e *Engine) severityFor(id string) lint.Severity {
	if e.Severity != nil {
		return e.Severity(id)
	}
	if id == lint.RuleFixSuperseded {
		return lint.SevHint
	}
	return lint.SevWarn
}

// validateFix checks every replacement: in bounds, on UTF-8 rune
// boundaries, valid replacement text, and no overlap among the fix's
// own replacements. Returns "" for a valid fix, else the reason.
func validateFix(f *source.File, fx *lint.Fix) string {
	if len(fx.Replacements) == 0 {
		return "fix has no replacements"
	}
	cov := f.CoveredSpan()
	for _, r := range fx.Replacements {
		if r.Span.Start > r.Span.End {
			return fmt.Sprintf("replacement span %s is inverted", r.Span)
		}
		if r.Span.Start < cov.Start || r.Span.End > cov.End {
			return fmt.Sprintf("replacement span %s is out of range", r.Span)
		}
		lo, hi := r.Span.Start-f.Base, r.Span.End-f.Base
		if !runeBoundary(f.Content, lo) || !runeBoundary(f.Content, hi) {
			return fmt.Sprintf("replacement span %s splits a UTF-8 sequence", r.Span)
		}
		if !utf8.ValidString(r.NewText) {
			return "replacement text is not valid UTF-8"
		}
	}
	spans := make([]source.Span, len(fx.Replacements))
	for i, r := range fx.Replacements {
		spans[i] = r.Span
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	for i := 1; i < len(spans); i++ {
		if spansConflict(spans[i-1], spans[i]) {
			return fmt.Sprintf("replacements %s and %s overlap", spans[i-1], spans[i])
		}
	}
	return ""
}

func runeBoundary(content []byte, off uint32) bool {
	return off == 0 || int(off) == len(content) || utf8.RuneStart(content[off])
}

// spansConflict reports whether two spans intersect in more than a
// single point. Spans are half-open [Start, End). Two insertions at
// the same offset coexist, as does an insertion sitting exactly on a
// replacement's boundary; an insertion strictly inside a replaced
// region conflicts, and so do any two properly overlapping spans.
func spansConflict(a, b source.Span) bool {
	return a.Start < b.End && b.Start < a.End
}

// firstConflict returns the accepted candidate whose fix overlaps c's,
// or nil when c is compatible with everything accepted so far.
func firstConflict(accepted []candidate, c candidate) *candidate {
	for i := range accepted {
		for _, ra := range accepted[i].v.Fix.Replacements {
			for _, rc := range c.v.Fix.Replacements {
				if spansConflict(ra.Span, rc.Span) {
					return &accepted[i]
				}
			}
		}
	}
	return nil
}

type edit struct {
	start, end uint32 // file-local offsets
	text       string
}

// spliceEdits applies the accepted fixes back to front so earlier
// splices never shift the offsets of later ones. Equal starts apply
// longer-first, which keeps boundary insertions outside the text they
// sit next to.
func spliceEdits(f *source.File, accepted []candidate) []byte {
	var edits []edit
	for _, c := range accepted {
		for _, r := range c.v.Fix.Replacements {
			edits = append(edits, edit{
				start: r.Span.Start - f.Base,
				end:   r.Span.End - f.Base,
				text:  r.NewText,
			})
		}
	}
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].start == edits[j].start {
			return edits[i].end > edits[j].end
		}
		return edits[i].start > edits[j].start
	})

	out := append([]byte(nil), f.Content...)
	for _, ed := range edits {
		suffix := append([]byte(nil), out[ed.end:]...)
		out = append(append(out[:ed.start], []byte(ed.text)...), suffix...)
	}
	return out
}
