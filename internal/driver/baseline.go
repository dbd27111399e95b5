package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"nulint/internal/lint"
	"nulint/internal/source"
)

// Current schema version - increment when the baseline format changes.
const baselineSchemaVersion uint16 = 1

// BaselineEntry identifies one known violation by rule id and its
// file-local byte extent.
type BaselineEntry struct {
	Rule  string
	Start uint32
	End   uint32
}

// BaselineFile snapshots one file's known violations together with the
// content hash they were recorded against. A file whose hash no longer
// matches is reported in full; the baseline is a snapshot filter, not
// an incremental store.
type BaselineFile struct {
	Hash    [32]byte
	Entries []BaselineEntry
}

// Baseline holds known violations so legacy findings stop failing runs
// while anything new still does.
type Baseline struct {
	Schema uint16
	Files  map[string]BaselineFile

	index map[string]map[BaselineEntry]struct{}
}

// NewBaseline returns an empty baseline at the current schema.
func NewBaseline() *Baseline {
	return &Baseline{
		Schema: baselineSchemaVersion,
		Files:  make(map[string]BaselineFile),
	}
}

// Record snapshots every violation in the result, replacing whatever
// the baseline previously held for those files. Violations in files
// pulled in through use/source chains are recorded under their own
// paths.
func (b *Baseline) Record(res *Result) {
	entries := make(map[string]map[BaselineEntry]struct{})
	hashes := make(map[string][32]byte)

	for i := range res.Files {
		fr := &res.Files[i]
		if fr.Err != nil || fr.Set == nil {
			continue
		}
		for j := range fr.Violations {
			v := &fr.Violations[j]
			f, ok := fr.Set.FileFor(v.Span)
			if !ok {
				continue
			}
			set := entries[f.Path]
			if set == nil {
				set = make(map[BaselineEntry]struct{})
				entries[f.Path] = set
				hashes[f.Path] = f.Hash
			}
			set[BaselineEntry{
				Rule:  v.Rule,
				Start: v.Span.Start - f.Base,
				End:   v.Span.End - f.Base,
			}] = struct{}{}
		}
	}

	for path, set := range entries {
		list := make([]BaselineEntry, 0, len(set))
		for e := range set {
			list = append(list, e)
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].Start != list[j].Start {
				return list[i].Start < list[j].Start
			}
			if list[i].End != list[j].End {
				return list[i].End < list[j].End
			}
			return list[i].Rule < list[j].Rule
		})
		b.Files[path] = BaselineFile{Hash: hashes[path], Entries: list}
	}
	b.index = nil
}

// Filter drops baselined violations from the result in place and
// returns how many were dropped.
func (b *Baseline) Filter(res *Result) int {
	dropped := 0
	for i := range res.Files {
		fr := &res.Files[i]
		if fr.Set == nil {
			continue
		}
		kept := fr.Violations[:0]
		for _, v := range fr.Violations {
			if f, ok := fr.Set.FileFor(v.Span); ok && b.covers(f, &v) {
				dropped++
				continue
			}
			kept = append(kept, v)
		}
		fr.Violations = kept
	}
	return dropped
}

func (b *Baseline) covers(f *source.File, v *lint.Violation) bool {
	b.ensureIndex()
	set, ok := b.index[f.Path]
	if !ok || b.Files[f.Path].Hash != f.Hash {
		return false
	}
	_, known := set[BaselineEntry{
		Rule:  v.Rule,
		Start: v.Span.Start - f.Base,
		End:   v.Span.End - f.Base,
	}]
	return known
}

func (b *Baseline) ensureIndex() {
	if b.index != nil {
		return
	}
	b.index = make(map[string]map[BaselineEntry]struct{}, len(b.Files))
	for path, bf := range b.Files {
		set := make(map[BaselineEntry]struct{}, len(bf.Entries))
		for _, e := range bf.Entries {
			set[e] = struct{}{}
		}
		b.index[path] = set
	}
}

// Len returns the total number of recorded entries.
func (b *Baseline) Len() int {
	n := 0
	for _, bf := range b.Files {
		n += len(bf.Entries)
	}
	return n
}

// LoadBaseline reads a snapshot from disk. A missing file or a schema
// mismatch yields an empty baseline and found=false rather than an
// error, so stale snapshots invalidate instead of breaking the run.
func LoadBaseline(path string) (*Baseline, bool, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the command line or the cache dir
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewBaseline(), false, nil
		}
		return nil, false, err
	}
	defer func() { _ = f.Close() }()

	var b Baseline
	if err := msgpack.NewDecoder(f).Decode(&b); err != nil {
		return nil, false, err
	}
	if b.Schema != baselineSchemaVersion {
		return NewBaseline(), false, nil
	}
	if b.Files == nil {
		b.Files = make(map[string]BaselineFile)
	}
	return &b, true, nil
}

// Write serializes the baseline, replacing the target atomically.
func (b *Baseline) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(f.Name()) }()

	if err := msgpack.NewEncoder(f).Encode(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// DefaultBaselinePath places the snapshot for a lint root under the
// user cache directory, keyed by the root's absolute path.
func DefaultBaselinePath(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(base, "nu-lint", "baselines", hex.EncodeToString(sum[:8])+".mp"), nil
}
