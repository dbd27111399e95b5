package main

import (
	"bytes"
	"strings"
	"testing"

	"nulint/internal/driver"
	"nulint/internal/lint"
	"nulint/internal/rules"
)

func TestReadUIMode(t *testing.T) {
	cases := []struct {
		input string
		want  uiMode
		ok    bool
	}{
		{"", uiModeAuto, true},
		{"auto", uiModeAuto, true},
		{"ON", uiModeOn, true},
		{" off ", uiModeOff, true},
		{"tui", "", false},
	}
	for _, tc := range cases {
		got, err := readUIMode(tc.input)
		if tc.ok != (err == nil) {
			t.Fatalf("readUIMode(%q) error = %v, want ok=%v", tc.input, err, tc.ok)
		}
		if err == nil && got != tc.want {
			t.Fatalf("readUIMode(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestScopeConfigToRuleDisablesEverythingElse(t *testing.T) {
	cfg := lint.DefaultConfig()
	cfg.Rules["use_builtin_echo"] = lint.SevError

	scoped, err := scopeConfigToRule(cfg, "use_builtin_echo")
	if err != nil {
		t.Fatalf("scopeConfigToRule: %v", err)
	}

	if sev, ok := scoped.Rules["use_builtin_echo"]; !ok || sev != lint.SevError {
		t.Fatalf("target rule override lost: got %v, %v", sev, ok)
	}
	reg := lint.MustRegistry(rules.All()...)
	for _, r := range reg.Rules() {
		id := r.Info().ID
		if id == "use_builtin_echo" {
			continue
		}
		if sev := scoped.Rules[id]; sev != lint.SevOff {
			t.Fatalf("rule %s not disabled: %v", id, sev)
		}
	}
	if len(cfg.Rules) != 1 {
		t.Fatalf("original config mutated: %d overrides", len(cfg.Rules))
	}
}

func TestScopeConfigToRuleRejectsUnknown(t *testing.T) {
	if _, err := scopeConfigToRule(lint.DefaultConfig(), "no_such_rule"); err == nil {
		t.Fatal("expected error for unknown rule")
	}
}

func TestGroupsOfPartitionsEveryRule(t *testing.T) {
	reg := lint.MustRegistry(rules.All()...)
	for _, r := range reg.Rules() {
		id := r.Info().ID
		groups := groupsOf(id)
		if len(groups) != 1 {
			t.Errorf("rule %s belongs to %d groups, want exactly 1: %v", id, len(groups), groups)
		}
	}
}

func TestNearRulesSuggestsSubstring(t *testing.T) {
	reg := lint.MustRegistry(rules.All()...)
	near := nearRules(reg, "is_empty")
	found := false
	for _, id := range near {
		if id == "not_is_empty_to_is_not_empty" {
			found = true
		}
	}
	if !found {
		t.Fatalf("nearRules(is_empty) = %v, expected the is-empty rule", near)
	}
	if len(nearRules(reg, "zzzz")) != 0 {
		t.Fatal("expected no suggestions for a nonsense query")
	}
}

func TestPrintPreviewMarksLines(t *testing.T) {
	var buf bytes.Buffer
	printPreview(&buf, &driver.FixPreview{
		Rule:        "use_builtin_echo",
		Description: "replace echo with print",
		Before:      "echo hi\n",
		After:       "print hi\n",
	}, false)

	out := buf.String()
	if !strings.Contains(out, "use_builtin_echo: replace echo with print") {
		t.Fatalf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "- echo hi") || !strings.Contains(out, "+ print hi") {
		t.Fatalf("missing diff markers:\n%s", out)
	}
}

func TestCounted(t *testing.T) {
	if got := counted(1, "fix"); got != "1 fix" {
		t.Fatalf("counted(1) = %q", got)
	}
	if got := counted(3, "file"); got != "3 files" {
		t.Fatalf("counted(3) = %q", got)
	}
}

func TestLintTitle(t *testing.T) {
	if got := lintTitle([]string{"."}); got != "linting" {
		t.Fatalf("lintTitle(.) = %q", got)
	}
	if got := lintTitle([]string{"scripts"}); got != "linting scripts" {
		t.Fatalf("lintTitle(scripts) = %q", got)
	}
	if got := lintTitle([]string{"a", "b"}); got != "linting" {
		t.Fatalf("lintTitle(a b) = %q", got)
	}
}
