package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const twoFindingsScript = "let x = [1 2]\nnot ($x | is-empty)\n$x | get 0\n"

func lintBaselined(t *testing.T, files ...string) *Result {
	t.Helper()
	res, err := LintFiles(context.Background(), files, Options{})
	if err != nil {
		t.Fatalf("LintFiles: %v", err)
	}
	return res
}

func TestBaselineRoundTrip(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "legacy.nu", twoFindingsScript)

	res := lintBaselined(t, script)
	if res.Count() != 2 {
		t.Fatalf("expected 2 violations to record, got %v", res.Files[0].Violations)
	}

	b := NewBaseline()
	b.Record(res)
	if b.Len() != 2 {
		t.Fatalf("recorded %d entries", b.Len())
	}

	path := filepath.Join(dir, "known.mp")
	if err := b.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	loaded, found, err := LoadBaseline(path)
	if err != nil || !found {
		t.Fatalf("LoadBaseline: found=%v err=%v", found, err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("loaded %d entries", loaded.Len())
	}

	again := lintBaselined(t, script)
	if dropped := loaded.Filter(again); dropped != 2 {
		t.Errorf("dropped %d violations", dropped)
	}
	if again.Count() != 0 {
		t.Errorf("violations survived the baseline: %v", again.Files[0].Violations)
	}
}

func TestBaselineIgnoresChangedFiles(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "legacy.nu", twoFindingsScript)

	b := NewBaseline()
	b.Record(lintBaselined(t, script))

	// A leading comment shifts every span, and more importantly the
	// content hash, so nothing may be filtered.
	writeScript(t, dir, "legacy.nu", "# reviewed\n"+twoFindingsScript)

	res := lintBaselined(t, script)
	if dropped := b.Filter(res); dropped != 0 {
		t.Errorf("dropped %d violations from a changed file", dropped)
	}
	if res.Count() != 2 {
		t.Errorf("expected both violations to report, got %d", res.Count())
	}
}

func TestBaselineKeepsUnrecordedViolations(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "legacy.nu", twoFindingsScript)

	b := NewBaseline()
	b.Record(lintBaselined(t, script))

	// Drop one recorded entry to simulate a snapshot taken before the
	// second problem existed.
	for path, bf := range b.Files {
		bf.Entries = bf.Entries[:1]
		b.Files[path] = bf
	}
	b.index = nil

	res := lintBaselined(t, script)
	if dropped := b.Filter(res); dropped != 1 {
		t.Errorf("dropped %d violations, want 1", dropped)
	}
	if res.Count() != 1 {
		t.Errorf("kept %d violations, want 1", res.Count())
	}
}

func TestBaselineMissingFileIsEmpty(t *testing.T) {
	b, found, err := LoadBaseline(filepath.Join(t.TempDir(), "absent.mp"))
	if err != nil {
		t.Fatalf("LoadBaseline: %v", err)
	}
	if found || b.Len() != 0 {
		t.Errorf("found=%v len=%d", found, b.Len())
	}
}

func TestDefaultBaselinePathUsesCacheDir(t *testing.T) {
	cache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cache)

	path, err := DefaultBaselinePath(t.TempDir())
	if err != nil {
		t.Fatalf("DefaultBaselinePath: %v", err)
	}
	if !strings.HasPrefix(path, filepath.Join(cache, "nu-lint")) {
		t.Errorf("path %s not under the cache dir", path)
	}
	if !strings.HasSuffix(path, ".mp") {
		t.Errorf("path %s missing the snapshot extension", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := NewBaseline().Write(path); err != nil {
		t.Errorf("Write to the default path: %v", err)
	}
}
