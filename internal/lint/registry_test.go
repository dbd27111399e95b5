package lint

import (
	"strings"
	"testing"
)

func TestNewRegistry_KeepsOrder(t *testing.T) {
	reg, err := NewRegistry(
		stubRule{id: "zeta"},
		stubRule{id: "alpha"},
		stubRule{id: "mid"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var ids []string
	for _, r := range reg.Rules() {
		ids = append(ids, r.Info().ID)
	}
	want := []string{"zeta", "alpha", "mid"}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("rules out of order: got %v, want %v", ids, want)
		}
	}
	if reg.Len() != 3 {
		t.Errorf("Len: got %d, want 3", reg.Len())
	}
}

func TestNewRegistry_RejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(stubRule{id: "twice"}, stubRule{id: "twice"})
	if err == nil || !strings.Contains(err.Error(), `duplicate rule id "twice"`) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestNewRegistry_RejectsEmptyID(t *testing.T) {
	_, err := NewRegistry(stubRule{id: "ok"}, stubRule{id: ""})
	if err == nil || !strings.Contains(err.Error(), "empty id") {
		t.Fatalf("expected empty-id error, got %v", err)
	}
}

func TestRegistry_Lookup(t *testing.T) {
	reg := MustRegistry(stubRule{id: "one"}, stubRule{id: "two"})

	if r, ok := reg.Get("two"); !ok || r.Info().ID != "two" {
		t.Errorf("Get(two): ok=%v", ok)
	}
	if _, ok := reg.Get("three"); ok {
		t.Error("Get(three) should miss")
	}
	if !reg.Has("one") || reg.Has("zero") {
		t.Error("Has gave wrong answers")
	}
	if reg.Pos("one") != 0 || reg.Pos("two") != 1 {
		t.Errorf("Pos: got %d, %d", reg.Pos("one"), reg.Pos("two"))
	}
	if reg.Pos("unknown") != reg.Len() {
		t.Errorf("Pos(unknown): got %d, want %d", reg.Pos("unknown"), reg.Len())
	}
}
