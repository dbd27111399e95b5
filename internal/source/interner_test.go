package source

import (
	"testing"
)

func TestInternerBasic(t *testing.T) {
	interner := NewInterner()

	// NoStringID is reserved for the empty string.
	if s, ok := interner.Lookup(NoStringID); !ok || s != "" {
		t.Errorf("Lookup(NoStringID) = %q, ok=%v, want empty string", s, ok)
	}

	id1 := interner.Intern("each")
	if id1 == NoStringID {
		t.Error("Intern must not return NoStringID for a non-empty string")
	}

	id2 := interner.Intern("each")
	if id1 != id2 {
		t.Errorf("repeated Intern returned %d, want %d", id2, id1)
	}

	if s, ok := interner.Lookup(id1); !ok || s != "each" {
		t.Errorf("Lookup(%d) = %q, ok=%v, want %q", id1, s, ok, "each")
	}

	id3 := interner.Intern("where")
	if id3 == id1 {
		t.Error("distinct strings must get distinct ids")
	}

	if interner.Len() != 3 { // "", "each", "where"
		t.Errorf("Len() = %d, want 3", interner.Len())
	}
}

func TestInternerBytes(t *testing.T) {
	interner := NewInterner()

	id1 := interner.InternBytes([]byte("get"))
	id2 := interner.Intern("get")
	if id1 != id2 {
		t.Errorf("InternBytes and Intern disagree: %d != %d", id1, id2)
	}
}

func TestInternerHas(t *testing.T) {
	interner := NewInterner()

	if !interner.Has(NoStringID) {
		t.Error("Has(NoStringID) = false, want true")
	}

	id := interner.Intern("append")
	if !interner.Has(id) {
		t.Error("Has for a valid id = false, want true")
	}
	if interner.Has(StringID(99)) {
		t.Error("Has for an unknown id = true, want false")
	}
}

func TestInternerSnapshot(t *testing.T) {
	interner := NewInterner()
	interner.Intern("ls")
	interner.Intern("open")

	snap := interner.Snapshot()
	want := []string{"", "ls", "open"}
	if len(snap) != len(want) {
		t.Fatalf("Snapshot length = %d, want %d", len(snap), len(want))
	}
	for i := range want {
		if snap[i] != want[i] {
			t.Errorf("Snapshot[%d] = %q, want %q", i, snap[i], want[i])
		}
	}
}
