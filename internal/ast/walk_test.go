package ast

import (
	"testing"

	"nulint/internal/source"
)

// buildWS assembles a working set by hand: a root block holding the given
// pipelines, plus a few builtin declarations tests resolve against.
func buildWS(pipelines ...Pipeline) (*WorkingSet, BlockID) {
	ws := NewWorkingSet(source.NewFileSet())
	for _, name := range []string{"append", "ls", "where", "ignore", "sort", "if", "each"} {
		ws.AddDecl(Decl{Name: ws.Names.Intern(name), Builtin: true})
	}
	root := ws.AddBlock(Block{Pipelines: pipelines})
	return ws, root
}

func callTo(ws *WorkingSet, name string, span source.Span) *Expr {
	id, ok := ws.FindDecl(name)
	if !ok {
		panic("unknown test decl " + name)
	}
	return &Expr{
		Kind: ExprCall,
		Span: span,
		Call: &Call{Decl: id, Head: span, Span: span},
	}
}

func intLit(v int64, span source.Span) *Expr {
	return &Expr{Kind: ExprInt, Span: span, Int: v, Ty: TyInt}
}

func element(e *Expr) PipelineElement {
	return PipelineElement{Expr: e}
}

func TestFlatMap_VisitOrder(t *testing.T) {
	ws, _ := buildWS()
	// (1 + 2) and a list [3, 4] in two elements of one pipeline.
	sum := &Expr{
		Kind: ExprBinaryOp,
		Op:   OpAdd,
		Lhs:  intLit(1, source.NewSpan(0, 1)),
		Rhs:  intLit(2, source.NewSpan(4, 5)),
		Span: source.NewSpan(0, 5),
	}
	list := &Expr{
		Kind: ExprList,
		List: []*Expr{intLit(3, source.NewSpan(9, 10)), intLit(4, source.NewSpan(12, 13))},
		Span: source.NewSpan(8, 14),
	}
	root := ws.AddBlock(Block{Pipelines: []Pipeline{
		{Elements: []PipelineElement{element(sum), element(list)}},
	}})

	got := FlatMap(ws, root, func(e *Expr) []int64 {
		if e.Kind == ExprInt {
			return []int64{e.Int}
		}
		return nil
	})

	want := []int64{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("FlatMap returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FlatMap order: got %v, want %v", got, want)
			break
		}
	}
}

func TestFlatMap_DescendsIntoBlocks(t *testing.T) {
	ws, _ := buildWS()
	inner := ws.AddBlock(Block{Pipelines: []Pipeline{
		{Elements: []PipelineElement{element(intLit(7, source.NewSpan(10, 11)))}},
	}})
	closure := &Expr{Kind: ExprClosure, Block: inner, Span: source.NewSpan(8, 13)}
	root := ws.AddBlock(Block{Pipelines: []Pipeline{
		{Elements: []PipelineElement{element(closure)}},
	}})

	got := FlatMap(ws, root, func(e *Expr) []int64 {
		if e.Kind == ExprInt {
			return []int64{e.Int}
		}
		return nil
	})
	if len(got) != 1 || got[0] != 7 {
		t.Errorf("FlatMap through closure = %v, want [7]", got)
	}
}

func TestFindMap_ShortCircuit(t *testing.T) {
	ws, _ := buildWS()
	root := ws.AddBlock(Block{Pipelines: []Pipeline{
		{Elements: []PipelineElement{
			element(intLit(1, source.NewSpan(0, 1))),
			element(intLit(2, source.NewSpan(2, 3))),
			element(intLit(3, source.NewSpan(4, 5))),
		}},
	}})

	visited := 0
	got, found := FindMap(ws, root, func(e *Expr) (int64, WalkAction) {
		visited++
		if e.Kind == ExprInt && e.Int == 2 {
			return e.Int, WalkFound
		}
		return 0, WalkContinue
	})
	if !found || got != 2 {
		t.Fatalf("FindMap = (%d, %v), want (2, true)", got, found)
	}
	if visited != 2 {
		t.Errorf("FindMap visited %d nodes, want 2 (short circuit)", visited)
	}
}

func TestFindMap_StopPrunesSubtree(t *testing.T) {
	ws, _ := buildWS()
	// A list [10] that the predicate prunes, then an int 20 after it.
	list := &Expr{
		Kind: ExprList,
		List: []*Expr{intLit(10, source.NewSpan(1, 3))},
		Span: source.NewSpan(0, 4),
	}
	root := ws.AddBlock(Block{Pipelines: []Pipeline{
		{Elements: []PipelineElement{element(list), element(intLit(20, source.NewSpan(5, 7)))}},
	}})

	got, found := FindMap(ws, root, func(e *Expr) (int64, WalkAction) {
		if e.Kind == ExprList {
			return 0, WalkStop // do not look inside the list
		}
		if e.Kind == ExprInt {
			return e.Int, WalkFound
		}
		return 0, WalkContinue
	})
	if !found || got != 20 {
		t.Errorf("FindMap after prune = (%d, %v), want (20, true)", got, found)
	}
}

func TestTraverseWithParent(t *testing.T) {
	ws, _ := buildWS()
	lhs := intLit(1, source.NewSpan(0, 1))
	rhs := intLit(2, source.NewSpan(4, 5))
	sum := &Expr{Kind: ExprBinaryOp, Op: OpAdd, Lhs: lhs, Rhs: rhs, Span: source.NewSpan(0, 5)}
	root := ws.AddBlock(Block{Pipelines: []Pipeline{
		{Elements: []PipelineElement{element(sum)}},
	}})

	parents := make(map[*Expr]*Expr)
	TraverseWithParent(ws, root, func(e, parent *Expr) {
		parents[e] = parent
	})

	if parents[sum] != nil {
		t.Error("pipeline root must have a nil parent")
	}
	if parents[lhs] != sum {
		t.Error("lhs parent is not the binary op")
	}
	if parents[rhs] != sum {
		t.Error("rhs parent is not the binary op")
	}
}

func TestCountNodes(t *testing.T) {
	ws, _ := buildWS()
	sum := &Expr{
		Kind: ExprBinaryOp,
		Op:   OpAdd,
		Lhs:  intLit(1, source.NewSpan(0, 1)),
		Rhs:  intLit(2, source.NewSpan(4, 5)),
		Span: source.NewSpan(0, 5),
	}
	root := ws.AddBlock(Block{Pipelines: []Pipeline{
		{Elements: []PipelineElement{element(sum)}},
	}})

	if got := CountNodes(ws, root); got != 3 {
		t.Errorf("CountNodes = %d, want 3", got)
	}
}
