package lint

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"nulint/internal/source"
)

type stubRule struct {
	id    string
	level Severity
	tags  []string
	run   func(c *Context) []Detection
}

func (r stubRule) Info() Info {
	level := r.level
	if level == SevOff {
		level = SevWarn
	}
	return Info{ID: r.id, Short: "stub " + r.id, Level: level, Tags: r.tags}
}

func (r stubRule) Detect(c *Context) []Detection {
	if r.run == nil {
		return nil
	}
	return r.run(c)
}

type fixableStub struct {
	stubRule
	detect func(c *Context) []DetectionWithFix
	fix    func(c *Context, input FixInput) *Fix
}

func (r fixableStub) Detect(c *Context) []Detection {
	return Detections(r.detect(c))
}

func (r fixableStub) DetectWithFix(c *Context) []DetectionWithFix {
	return r.detect(c)
}

func (r fixableStub) Fix(c *Context, input FixInput) *Fix {
	return r.fix(c, input)
}

// detectText reports one detection per occurrence of needle.
func detectText(t *testing.T, needle string) func(c *Context) []Detection {
	return func(c *Context) []Detection {
		var out []Detection
		content := string(c.File.Content)
		for idx := strings.Index(content, needle); idx >= 0; {
			start := c.File.Base + uint32(idx)
			sp := source.NewSpan(start, start+uint32(len(needle)))
			out = append(out, NewDetection(sp, "found "+needle))
			next := strings.Index(content[idx+len(needle):], needle)
			if next < 0 {
				break
			}
			idx += len(needle) + next
		}
		return out
	}
}

func runAll(t *testing.T, r *Runner, lc *Context) []Violation {
	t.Helper()
	vs, err := r.Run(context.Background(), lc)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return vs
}

func TestRunner_ReportsAndSorts(t *testing.T) {
	lc := lintContext(t, "pwd\nls\n")
	reg := MustRegistry(
		stubRule{id: "bravo", level: SevError, run: detectText(t, "ls")},
		stubRule{id: "alpha", level: SevWarn, run: detectText(t, "ls")},
		stubRule{id: "pwd_rule", level: SevHint, run: detectText(t, "pwd")},
	)

	vs := runAll(t, NewRunner(reg, nil, nil), lc)
	if len(vs) != 3 {
		t.Fatalf("expected 3 violations, got %d", len(vs))
	}
	wantRules := []string{"pwd_rule", "alpha", "bravo"}
	for i, want := range wantRules {
		if vs[i].Rule != want {
			t.Errorf("position %d: got %s, want %s", i, vs[i].Rule, want)
		}
		if vs[i].Path != "main.nu" {
			t.Errorf("position %d: path %q", i, vs[i].Path)
		}
	}
	if vs[1].Severity != SevWarn || vs[2].Severity != SevError {
		t.Errorf("severities: %v, %v", vs[1].Severity, vs[2].Severity)
	}
}

func TestRunner_SeverityOverride(t *testing.T) {
	lc := lintContext(t, "ls\n")
	reg := MustRegistry(stubRule{id: "noisy", level: SevError, run: detectText(t, "ls")})

	cfg := DefaultConfig()
	cfg.Rules = map[string]Severity{"noisy": SevHint}
	vs := runAll(t, NewRunner(reg, cfg, nil), lc)
	if len(vs) != 1 || vs[0].Severity != SevHint {
		t.Fatalf("expected one hint, got %+v", vs)
	}
}

func TestRunner_OffRuleNeverRuns(t *testing.T) {
	lc := lintContext(t, "ls\n")
	ran := false
	reg := MustRegistry(stubRule{id: "noisy", level: SevError, run: func(c *Context) []Detection {
		ran = true
		return detectText(t, "ls")(c)
	}})

	cfg := DefaultConfig()
	cfg.Rules = map[string]Severity{"noisy": SevOff}
	vs := runAll(t, NewRunner(reg, cfg, nil), lc)
	if len(vs) != 0 {
		t.Fatalf("expected no violations, got %+v", vs)
	}
	if ran {
		t.Error("disabled rule must not execute")
	}
}

func TestRunner_GroupToggle(t *testing.T) {
	lc := lintContext(t, "ls\n")
	reg := MustRegistry(stubRule{id: "noisy", level: SevWarn, run: detectText(t, "ls")})
	groups := map[string][]string{"pedantic": {"noisy"}}

	cfg := DefaultConfig()
	cfg.Groups = map[string]bool{"pedantic": false}
	if vs := runAll(t, NewRunner(reg, cfg, groups), lc); len(vs) != 0 {
		t.Fatalf("group disable: expected none, got %+v", vs)
	}

	cfg = DefaultConfig()
	cfg.Groups = map[string]bool{"pedantic": true}
	vs := runAll(t, NewRunner(reg, cfg, groups), lc)
	if len(vs) != 1 || vs[0].Severity != SevWarn {
		t.Fatalf("group enable: got %+v", vs)
	}
}

func TestRunner_ParseErrorSynthesis(t *testing.T) {
	lc := lintContext(t, "source\n")
	vs := runAll(t, NewRunner(MustRegistry(), nil, nil), lc)

	if len(vs) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(vs))
	}
	v := vs[0]
	if v.Rule != RuleParseError || v.Severity != SevError {
		t.Errorf("got %s at %v", v.Rule, v.Severity)
	}
	if !strings.Contains(v.Message, "missing file path") {
		t.Errorf("message: %q", v.Message)
	}
	if v.Path != "main.nu" {
		t.Errorf("path: %q", v.Path)
	}
}

func TestRunner_ParseErrorSeverityConfigurable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rules = map[string]Severity{RuleParseError: SevWarn}
	lc := lintContext(t, "source\n")
	vs := runAll(t, NewRunner(MustRegistry(), cfg, nil), lc)
	if len(vs) != 1 || vs[0].Severity != SevWarn {
		t.Fatalf("got %+v", vs)
	}

	cfg = DefaultConfig()
	cfg.Rules = map[string]Severity{RuleParseError: SevOff}
	lc = lintContext(t, "source\n")
	if vs := runAll(t, NewRunner(MustRegistry(), cfg, nil), lc); len(vs) != 0 {
		t.Fatalf("off: got %+v", vs)
	}
}

func TestRunner_ParseErrorDedup(t *testing.T) {
	lc := lintContext(t, "ls\n")
	sp := spanOf(t, lc, "ls")
	lc.WS.AddParseError("broken", sp)
	lc.WS.AddParseError("broken", sp)
	lc.WS.AddParseError("different", sp)

	vs := runAll(t, NewRunner(MustRegistry(), nil, nil), lc)
	if len(vs) != 2 {
		t.Fatalf("expected 2 after dedup, got %d: %+v", len(vs), vs)
	}
}

func TestRunner_ExternalParseErrorsSkipped(t *testing.T) {
	lc := lintContext(t, "ls\n")
	depID := lc.WS.Files.Add("dep.nu", []byte("oops\n"), source.FileExternal)
	dep := lc.WS.Files.Get(depID)
	lc.WS.AddParseError("bad dep", source.NewSpan(dep.Base, dep.Base+4))

	if vs := runAll(t, NewRunner(MustRegistry(), nil, nil), lc); len(vs) != 0 {
		t.Fatalf("external error should be skipped, got %+v", vs)
	}

	cfg := DefaultConfig()
	cfg.SkipExternalParseErrors = false
	vs := runAll(t, NewRunner(MustRegistry(), cfg, nil), lc)
	if len(vs) != 1 || vs[0].Path != "dep.nu" {
		t.Fatalf("expected dep.nu error, got %+v", vs)
	}
}

func TestRunner_ExternalRuleFindingsDropped(t *testing.T) {
	lc := lintContext(t, "ls\n")
	depID := lc.WS.Files.Add("dep.nu", []byte("ls\n"), source.FileExternal)
	dep := lc.WS.Files.Get(depID)

	reg := MustRegistry(stubRule{id: "everywhere", level: SevWarn, run: func(c *Context) []Detection {
		return []Detection{
			NewDetection(spanOf(t, c, "ls"), "primary"),
			NewDetection(source.NewSpan(dep.Base, dep.Base+2), "external"),
		}
	}})

	vs := runAll(t, NewRunner(reg, nil, nil), lc)
	if len(vs) != 1 || vs[0].Message != "primary" {
		t.Fatalf("expected only the primary finding, got %+v", vs)
	}
	if vs[0].Path != "main.nu" {
		t.Errorf("path: %q", vs[0].Path)
	}
}

func TestRunner_Suppression(t *testing.T) {
	lc := lintContext(t, "# nu-lint-ignore: noisy\nls\nls\n")
	reg := MustRegistry(stubRule{id: "noisy", level: SevWarn, run: detectText(t, "ls")})

	vs := runAll(t, NewRunner(reg, nil, nil), lc)
	if len(vs) != 1 {
		t.Fatalf("expected 1 surviving violation, got %d: %+v", len(vs), vs)
	}
	if line := lc.WS.Files.LineAt(vs[0].Span.Start); line != 3 {
		t.Errorf("survivor on line %d, want 3", line)
	}
}

func TestRunner_SuppressionIsPerRule(t *testing.T) {
	lc := lintContext(t, "# nu-lint-ignore: noisy\nls\n")
	reg := MustRegistry(
		stubRule{id: "noisy", level: SevWarn, run: detectText(t, "ls")},
		stubRule{id: "other", level: SevWarn, run: detectText(t, "ls")},
	)

	vs := runAll(t, NewRunner(reg, nil, nil), lc)
	if len(vs) != 1 || vs[0].Rule != "other" {
		t.Fatalf("expected only the other rule, got %+v", vs)
	}
}

func TestRunner_ParseErrorSuppressible(t *testing.T) {
	lc := lintContext(t, "# nu-lint-ignore: nu_parse_error\nsource\n")
	if vs := runAll(t, NewRunner(MustRegistry(), nil, nil), lc); len(vs) != 0 {
		t.Fatalf("expected suppression, got %+v", vs)
	}
}

func TestRunner_UnknownIgnoreRule(t *testing.T) {
	lc := lintContext(t, "# nu-lint-ignore: made_up\nls\n")
	reg := MustRegistry(stubRule{id: "real", level: SevWarn})

	vs := runAll(t, NewRunner(reg, nil, nil), lc)
	if len(vs) != 1 {
		t.Fatalf("expected 1 warning, got %d: %+v", len(vs), vs)
	}
	v := vs[0]
	if v.Rule != RuleUnknownIgnore || v.Severity != SevWarn {
		t.Errorf("got %s at %v", v.Rule, v.Severity)
	}
	if !strings.Contains(v.Message, `"made_up"`) {
		t.Errorf("message: %q", v.Message)
	}
	if text := lc.SpanText(v.Span); text != "# nu-lint-ignore: made_up" {
		t.Errorf("span text: %q", text)
	}
}

func TestRunner_PipelineIDsAreKnown(t *testing.T) {
	lc := lintContext(t, "# nu-lint-ignore: nu_parse_error, invalid_fix\nls\n")
	if vs := runAll(t, NewRunner(MustRegistry(), nil, nil), lc); len(vs) != 0 {
		t.Fatalf("pipeline ids must not warn, got %+v", vs)
	}
}

func TestRunner_UnknownIgnoreConfigurableOff(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rules = map[string]Severity{RuleUnknownIgnore: SevOff}
	lc := lintContext(t, "# nu-lint-ignore: made_up\nls\n")
	if vs := runAll(t, NewRunner(MustRegistry(), cfg, nil), lc); len(vs) != 0 {
		t.Fatalf("expected silence, got %+v", vs)
	}
}

func TestRunner_PanicRecovery(t *testing.T) {
	lc := lintContext(t, "ls\n")
	reg := MustRegistry(
		stubRule{id: "panicky", level: SevWarn, run: func(c *Context) []Detection {
			panic("boom")
		}},
		stubRule{id: "steady", level: SevWarn, run: detectText(t, "ls")},
	)

	var warn bytes.Buffer
	r := NewRunner(reg, nil, nil)
	r.Warn = &warn

	vs := runAll(t, r, lc)
	if len(vs) != 1 || vs[0].Rule != "steady" {
		t.Fatalf("expected steady only, got %+v", vs)
	}
	if !strings.Contains(warn.String(), "rule panicky failed") || !strings.Contains(warn.String(), "boom") {
		t.Errorf("warn output: %q", warn.String())
	}
}

func TestRunner_FixableRule(t *testing.T) {
	lc := lintContext(t, "ls\npwd\n")
	var gotInput FixInput
	rule := fixableStub{
		stubRule: stubRule{id: "fixer", level: SevWarn},
		detect: func(c *Context) []DetectionWithFix {
			withFix := DetectionWithFix{
				Detection: NewDetection(spanOf(t, c, "ls"), "replace ls"),
				Input:     42,
			}
			bare := DetectionWithFix{
				Detection: NewDetection(spanOf(t, c, "pwd"), "no fix here"),
			}
			return []DetectionWithFix{withFix, bare}
		},
		fix: func(c *Context, input FixInput) *Fix {
			gotInput = input
			return Replace("use pwd", spanOf(t, c, "ls"), "pwd")
		},
	}

	vs := runAll(t, NewRunner(MustRegistry(rule), nil, nil), lc)
	if len(vs) != 2 {
		t.Fatalf("expected 2 violations, got %d", len(vs))
	}
	if vs[0].Fix == nil || vs[0].Fix.Description != "use pwd" {
		t.Errorf("first fix: %+v", vs[0].Fix)
	}
	if vs[1].Fix != nil {
		t.Errorf("second fix should be absent, got %+v", vs[1].Fix)
	}
	if gotInput != 42 {
		t.Errorf("fix input: %v", gotInput)
	}
}

func TestRunner_Cancellation(t *testing.T) {
	lc := lintContext(t, "ls\n")
	reg := MustRegistry(stubRule{id: "noisy", level: SevWarn, run: detectText(t, "ls")})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewRunner(reg, nil, nil).Run(ctx, lc); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestRunner_SeverityFor(t *testing.T) {
	reg := MustRegistry(stubRule{id: "real", level: SevHint})
	r := NewRunner(reg, nil, nil)

	if got := r.SeverityFor("real"); got != SevHint {
		t.Errorf("real: %v", got)
	}
	if got := r.SeverityFor(RuleParseError); got != SevError {
		t.Errorf("parse error: %v", got)
	}
	if got := r.SeverityFor(RuleFixSuperseded); got != SevHint {
		t.Errorf("superseded: %v", got)
	}
}
