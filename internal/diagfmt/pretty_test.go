package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"nulint/internal/lint"
	"nulint/internal/source"
)

const script = "let files = (ls | get name)\nnot ($files | is-empty)\n"

func sp(start, end uint32) source.Span {
	return source.Span{Start: start, End: end}
}

func scriptSet(t *testing.T) (*source.FileSet, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("script.nu", []byte(script))
	return fs, fs.Get(id)
}

// notIsEmptyViolation spans the "not" on line 2, labels the is-empty
// call it negates, and carries a single-edit fix.
func notIsEmptyViolation() lint.Violation {
	return lint.Violation{
		Detection: lint.NewDetection(sp(28, 31), "negation of is-empty reads backwards").
			WithPrimary("this negation").
			WithLabel("the check it inverts", sp(42, 50)).
			WithHelp("use is-not-empty instead"),
		Rule:     "not_is_empty_to_is_not_empty",
		Severity: lint.SevWarn,
		Fix:      lint.Replace("rewrite with is-not-empty", sp(28, 51), "($files | is-not-empty)"),
	}
}

func TestPrettyMarksSpanAndLabels(t *testing.T) {
	fs, _ := scriptSet(t)
	var buf bytes.Buffer
	Pretty(&buf, []lint.Violation{notIsEmptyViolation()}, fs, PrettyOpts{ShowHelp: true})
	out := buf.String()

	for _, want := range []string{
		"script.nu:2:1: WARNING not_is_empty_to_is_not_empty: negation of is-empty reads backwards",
		"2 | not ($files | is-empty)",
		"| ^^^ this negation",
		" | " + strings.Repeat(" ", 14) + "~~~~~~~~ the check it inverts",
		"= help: use is-not-empty instead",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrettyPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("/home/user/project/src/script.nu", []byte("let x = $env.HOME\n"))
	fs.SetBaseDir("/home/user/project")

	v := lint.Violation{
		Detection: lint.NewDetection(sp(8, 17), "read config from a file instead"),
		Rule:      "demo_rule",
		Severity:  lint.SevWarn,
	}

	tests := []struct {
		scenario string
		mode     PathMode
		contains string
	}{
		{"absolute path", PathModeAbsolute, "/home/user/project/src/script.nu:1:9"},
		{"relative path", PathModeRelative, "src/script.nu:1:9"},
		{"basename only", PathModeBasename, "script.nu:1:9"},
		{"auto keeps short paths", PathModeAuto, "/home/user/project/src/script.nu:1:9"},
	}
	for _, tt := range tests {
		t.Run(tt.scenario, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, []lint.Violation{v}, fs, PrettyOpts{PathMode: tt.mode})
			out := buf.String()
			if !strings.Contains(out, tt.contains) {
				t.Errorf("expected %q in output:\n%s", tt.contains, out)
			}
			if !strings.Contains(out, "WARNING") || !strings.Contains(out, "demo_rule") {
				t.Errorf("missing severity or rule id:\n%s", out)
			}
		})
	}
}

func TestPrettyContextLines(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("ctx.nu", []byte("let a = 1\nlet b = 2\nlet c = 3\n"))

	v := lint.Violation{
		Detection: lint.NewDetection(sp(14, 15), "shadowed name").WithPrimary("declared here"),
		Rule:      "demo_rule",
		Severity:  lint.SevHint,
	}

	var buf bytes.Buffer
	Pretty(&buf, []lint.Violation{v}, fs, PrettyOpts{Context: 1})
	out := buf.String()

	for _, want := range []string{"1 | let a = 1", "2 | let b = 2", "3 | let c = 3", "^ declared here"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrettyShowsFixPreview(t *testing.T) {
	fs, _ := scriptSet(t)
	var buf bytes.Buffer
	Pretty(&buf, []lint.Violation{notIsEmptyViolation()}, fs, PrettyOpts{ShowPreview: true})
	out := buf.String()

	for _, want := range []string{
		"= fix: rewrite with is-not-empty",
		"- not ($files | is-empty)",
		"+ ($files | is-not-empty)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrettySeparatesViolations(t *testing.T) {
	fs, _ := scriptSet(t)
	vs := []lint.Violation{notIsEmptyViolation(), notIsEmptyViolation()}

	var buf bytes.Buffer
	Pretty(&buf, vs, fs, PrettyOpts{})
	out := buf.String()

	if got := strings.Count(out, "WARNING"); got != 2 {
		t.Fatalf("expected 2 headers, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "\n\n") {
		t.Errorf("expected a blank line between violations:\n%s", out)
	}
}

func TestPrettyFallsBackWithoutFile(t *testing.T) {
	fs, _ := scriptSet(t)
	v := lint.Violation{
		Detection: lint.NewDetection(sp(1000, 1001), "lost position"),
		Rule:      "demo_rule",
		Severity:  lint.SevWarn,
	}

	var buf bytes.Buffer
	Pretty(&buf, []lint.Violation{v}, fs, PrettyOpts{})
	if got := buf.String(); got != "WARNING demo_rule: lost position\n" {
		t.Errorf("unexpected fallback output %q", got)
	}
}

func TestShortFormat(t *testing.T) {
	fs, _ := scriptSet(t)
	var buf bytes.Buffer
	Short(&buf, []lint.Violation{notIsEmptyViolation()}, fs, PathModeAuto)

	want := "script.nu:2:1: warning: negation of is-empty reads backwards [not_is_empty_to_is_not_empty]\n"
	if got := buf.String(); got != want {
		t.Errorf("short output %q, want %q", got, want)
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		scenario string
		vs       []lint.Violation
		want     string
	}{
		{"clean", nil, "no problems found\n"},
		{
			"mixed severities",
			[]lint.Violation{
				{Severity: lint.SevError},
				{Severity: lint.SevWarn},
				{Severity: lint.SevWarn},
			},
			"found 1 error, 2 warnings\n",
		},
		{
			"hints only",
			[]lint.Violation{
				{Severity: lint.SevHint},
				{Severity: lint.SevHint},
				{Severity: lint.SevHint},
			},
			"found 3 hints\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.scenario, func(t *testing.T) {
			var buf bytes.Buffer
			Summary(&buf, tt.vs, false)
			if got := buf.String(); got != tt.want {
				t.Errorf("summary %q, want %q", got, tt.want)
			}
		})
	}
}
