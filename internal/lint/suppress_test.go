package lint

import (
	"testing"

	"nulint/internal/source"
)

func scanSource(t *testing.T, src string) []Suppression {
	t.Helper()
	files := source.NewFileSet()
	id := files.Add("main.nu", []byte(src), 0)
	return ScanSuppressions(files.Get(id))
}

func TestScanSuppressions(t *testing.T) {
	src := "# nu-lint-ignore: rule_a\n" +
		"ls\n" +
		"    # nu-lint-ignore: rule_b, rule_c\n" +
		"rm -rf /tmp/x\n" +
		"echo hi # nu-lint-ignore: rule_d\n" +
		"#nu-lint-ignore:rule_e\n" +
		"pwd\n"

	got := scanSource(t, src)
	if len(got) != 3 {
		t.Fatalf("expected 3 suppressions, got %d: %+v", len(got), got)
	}

	if got[0].Target != 2 || len(got[0].Rules) != 1 || got[0].Rules[0] != "rule_a" {
		t.Errorf("first: %+v", got[0])
	}
	if got[1].Target != 4 || len(got[1].Rules) != 2 {
		t.Fatalf("second: %+v", got[1])
	}
	if got[1].Rules[0] != "rule_b" || got[1].Rules[1] != "rule_c" {
		t.Errorf("second ids: %v", got[1].Rules)
	}
	// Line 5's trailing comment is not a suppression; line 6 without
	// spaces still is.
	if got[2].Target != 7 || got[2].Rules[0] != "rule_e" {
		t.Errorf("third: %+v", got[2])
	}
}

func TestScanSuppressions_SpanCoversCommentLine(t *testing.T) {
	src := "ls\n# nu-lint-ignore: rule_a\npwd\n"
	files := source.NewFileSet()
	id := files.Add("main.nu", []byte(src), 0)
	f := files.Get(id)

	got := ScanSuppressions(f)
	if len(got) != 1 {
		t.Fatalf("expected 1 suppression, got %d", len(got))
	}
	if text := files.Text(got[0].Span); text != "# nu-lint-ignore: rule_a" {
		t.Errorf("span text: %q", text)
	}
}

func TestScanSuppressions_EmptyList(t *testing.T) {
	got := scanSource(t, "# nu-lint-ignore: , ,\nls\n")
	if len(got) != 0 {
		t.Fatalf("expected no suppressions, got %+v", got)
	}
}

func TestScanSuppressions_None(t *testing.T) {
	got := scanSource(t, "# regular comment\nls\n# nu-lint-ignore\npwd\n")
	if len(got) != 0 {
		t.Fatalf("expected no suppressions, got %+v", got)
	}
}

func TestSplitIgnoreIDs(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a", []string{"a"}},
		{"a, b,c", []string{"a", "b", "c"}},
		{"  spaced  ", []string{"spaced"}},
		{",,", nil},
	}
	for _, tt := range tests {
		got := splitIgnoreIDs(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("%q: got %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q: got %v, want %v", tt.in, got, tt.want)
			}
		}
	}
}
