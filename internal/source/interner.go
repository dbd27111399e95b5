package source

import (
	"slices"
)

// StringID names an interned string. The zero value is the empty string.
type StringID uint32

const NoStringID StringID = 0

// Interner deduplicates the names the parser hands to the working set:
// declaration names, variable names, flag names. Rules compare ids instead
// of re-hashing strings.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern returns the id for s, inserting it on first sight.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}

	// Copy so the entry does not pin the caller's backing buffer.
	cpy := string([]byte(s))
	id := StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// InternBytes interns a byte slice without an intermediate allocation on
// the hit path.
func (i *Interner) InternBytes(b []byte) StringID {
	if id, ok := i.index[string(b)]; ok {
		return id
	}
	return i.Intern(string(b))
}

// Lookup returns the string for id, or ("", false) for invalid ids.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup returns the string for id and panics on invalid ids.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

// Has reports whether id is valid for this interner.
func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Len returns the number of interned strings, counting NoStringID.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Snapshot returns a copy of all interned strings.
func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}
