package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"nulint/internal/lint"
)

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const (
	cleanScript    = "def main [] {\n  ls | where size > 1kb | get name\n}\n"
	notEmptyScript = "let x = [1 2]\nnot ($x | is-empty)\n"
)

func TestDiscoverWalksAndSorts(t *testing.T) {
	dir := t.TempDir()
	b := writeScript(t, dir, "b.nu", cleanScript)
	a := writeScript(t, dir, "a.nu", cleanScript)
	c := writeScript(t, dir, filepath.Join("sub", "c.nu"), cleanScript)
	writeScript(t, dir, "notes.txt", "not a script\n")
	writeScript(t, dir, filepath.Join(".hidden", "d.nu"), cleanScript)

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{a, b, c}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %s, want %s", i, files[i], want[i])
		}
	}
}

func TestDiscoverKeepsExplicitFiles(t *testing.T) {
	dir := t.TempDir()
	txt := writeScript(t, dir, "script.txt", cleanScript)

	files, err := Discover(txt)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 1 || files[0] != txt {
		t.Errorf("files = %v, want just %s", files, txt)
	}

	if _, err := Discover(filepath.Join(dir, "missing.nu")); err == nil {
		t.Error("expected an error for a missing argument")
	}
}

func TestLintFilesKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeScript(t, dir, "clean.nu", cleanScript),
		writeScript(t, dir, "warn.nu", notEmptyScript),
		writeScript(t, dir, "broken.nu", "def broken [\n"),
	}

	res, err := LintFiles(context.Background(), files, Options{Jobs: 2})
	if err != nil {
		t.Fatalf("LintFiles: %v", err)
	}
	if len(res.Files) != 3 {
		t.Fatalf("got %d file results", len(res.Files))
	}
	for i, fr := range res.Files {
		if fr.Path != files[i] {
			t.Errorf("result %d is %s, want %s", i, fr.Path, files[i])
		}
	}

	if n := len(res.Files[0].Violations); n != 0 {
		t.Errorf("clean file produced %d violations: %v", n, res.Files[0].Violations)
	}
	warn := res.Files[1].Violations
	if len(warn) != 1 || warn[0].Rule != "not_is_empty_to_is_not_empty" {
		t.Errorf("warn file violations = %v", warn)
	}
	if !res.Files[2].HasErrors() {
		t.Error("broken file should report errors")
	}
	found := false
	for _, v := range res.Files[2].Violations {
		if v.Rule == lint.RuleParseError {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a %s violation, got %v", lint.RuleParseError, res.Files[2].Violations)
	}

	if res.Count() != len(warn)+len(res.Files[2].Violations) {
		t.Errorf("Count = %d", res.Count())
	}
	errs, warns, _ := res.Totals()
	if errs == 0 || warns != 1 {
		t.Errorf("Totals = %d errors, %d warnings", errs, warns)
	}
	if !res.HasErrors() {
		t.Error("run should report errors")
	}
}

func TestLintFilesRecordsLoadFailures(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "gone.nu")

	res, err := LintFiles(context.Background(), []string{missing}, Options{})
	if err != nil {
		t.Fatalf("LintFiles: %v", err)
	}
	if res.Files[0].Err == nil {
		t.Error("expected a load error in the file result")
	}
	if !res.HasErrors() {
		t.Error("load failures should count as errors")
	}
}

func TestLintSourceInMemory(t *testing.T) {
	fr := LintSource(context.Background(), "mem.nu", []byte(notEmptyScript), Options{})
	if fr.Err != nil {
		t.Fatalf("LintSource: %v", fr.Err)
	}
	if len(fr.Violations) != 1 || fr.Violations[0].Rule != "not_is_empty_to_is_not_empty" {
		t.Fatalf("violations = %v", fr.Violations)
	}
	if fr.Violations[0].Path != "mem.nu" {
		t.Errorf("path = %s", fr.Violations[0].Path)
	}
}

func TestLintKeepsSourcedFindingsOut(t *testing.T) {
	dir := t.TempDir()
	helper := writeScript(t, dir, "helper.nu", notEmptyScript)
	main := writeScript(t, dir, "main.nu", "source helper.nu\n")

	res, err := LintFiles(context.Background(), []string{main}, Options{})
	if err != nil {
		t.Fatalf("LintFiles: %v", err)
	}
	if vs := res.Files[0].Violations; len(vs) != 0 {
		t.Fatalf("sourced findings leaked into the entry file: %v", vs)
	}

	res, err = LintFiles(context.Background(), []string{helper}, Options{})
	if err != nil {
		t.Fatalf("LintFiles: %v", err)
	}
	vs := res.Files[0].Violations
	if len(vs) != 1 || vs[0].Rule != "not_is_empty_to_is_not_empty" {
		t.Fatalf("violations = %v", vs)
	}
}

func TestLintProgressCallback(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeScript(t, dir, "a.nu", cleanScript),
		writeScript(t, dir, "b.nu", cleanScript),
	}

	var mu sync.Mutex
	seen := 0
	paths := map[string]bool{}
	_, err := LintFiles(context.Background(), files, Options{
		Jobs: 1,
		Progress: func(done, total int, fr *FileResult) {
			mu.Lock()
			defer mu.Unlock()
			seen++
			paths[fr.Path] = true
			if total != 2 {
				t.Errorf("total = %d", total)
			}
		},
	})
	if err != nil {
		t.Fatalf("LintFiles: %v", err)
	}
	if seen != 2 {
		t.Errorf("progress fired %d times", seen)
	}
	if !paths[files[0]] || !paths[files[1]] {
		t.Errorf("progress results missing paths: %v", paths)
	}
}

func TestFixFilesRewritesAndPreservesMode(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "fixme.nu", notEmptyScript)

	out, err := FixFiles(context.Background(), []string{path}, true, Options{})
	if err != nil {
		t.Fatalf("FixFiles: %v", err)
	}
	ff := out.Files[0]
	if ff.Err != nil {
		t.Fatalf("fix error: %v", ff.Err)
	}
	if !ff.Changed || len(ff.Applied) != 1 {
		t.Fatalf("changed=%v applied=%v", ff.Changed, ff.Applied)
	}
	if len(ff.Remaining) != 0 {
		t.Errorf("remaining = %v", ff.Remaining)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "let x = [1 2]\n($x | is-not-empty)\n"
	if string(content) != want {
		t.Errorf("rewritten content %q, want %q", content, want)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("permissions changed to %o", perm)
	}
}

func TestFixFilesDryRunLeavesDiskAlone(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "fixme.nu", notEmptyScript)

	out, err := FixFiles(context.Background(), []string{path}, false, Options{})
	if err != nil {
		t.Fatalf("FixFiles: %v", err)
	}
	ff := out.Files[0]
	if !ff.Changed {
		t.Fatal("expected a change in the outcome")
	}
	if len(ff.Previews) != 1 || ff.Previews[0].Rule != "not_is_empty_to_is_not_empty" {
		t.Errorf("previews = %+v", ff.Previews)
	}
	if ff.Previews[0].Before != "not ($x | is-empty)" || ff.Previews[0].After != "($x | is-not-empty)" {
		t.Errorf("preview window = %+v", ff.Previews[0])
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != notEmptyScript {
		t.Errorf("dry run rewrote the file: %q", content)
	}
}

func TestFixLoopCascades(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "cascade.nu", "[3 2 1] | reverse | reverse | first\n")

	out, err := FixFiles(context.Background(), []string{path}, true, Options{})
	if err != nil {
		t.Fatalf("FixFiles: %v", err)
	}
	ff := out.Files[0]
	if ff.Err != nil {
		t.Fatalf("fix error: %v", ff.Err)
	}
	if ff.Passes != 3 || len(ff.Applied) != 2 {
		t.Errorf("passes=%d applied=%v", ff.Passes, ff.Applied)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "[3 2 1] | first\n" {
		t.Errorf("converged content %q", content)
	}
}
