package ast

import (
	"testing"

	"nulint/internal/source"
)

func TestHasSideEffects(t *testing.T) {
	ws, _ := buildWS()
	ws.AddDecl(Decl{Name: ws.Names.Intern("save"), Builtin: true})

	saveCall := callTo(ws, "save", source.NewSpan(0, 4))
	external := &Expr{
		Kind:   ExprExternalCall,
		Span:   source.NewSpan(0, 6),
		Extern: &ExternalCall{Head: &Expr{Kind: ExprString, Str: "git", Span: source.NewSpan(1, 4)}},
	}
	assign := &Expr{
		Kind: ExprBinaryOp,
		Op:   OpAssign,
		Lhs:  &Expr{Kind: ExprVar, Span: source.NewSpan(0, 2)},
		Rhs:  intLit(1, source.NewSpan(5, 6)),
		Span: source.NewSpan(0, 6),
	}
	pure := callTo(ws, "where", source.NewSpan(0, 5))

	tests := []struct {
		name string
		expr *Expr
		want bool
	}{
		{"mutating builtin", saveCall, true},
		{"external call", external, true},
		{"assignment", assign, true},
		{"pure filter", pure, false},
		{"literal", intLit(7, source.NewSpan(0, 1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Block{Pipelines: []Pipeline{{Elements: []PipelineElement{element(tt.expr)}}}}
			if got := b.HasSideEffects(ws); got != tt.want {
				t.Errorf("HasSideEffects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasSideEffects_Nested(t *testing.T) {
	ws, _ := buildWS()
	ws.AddDecl(Decl{Name: ws.Names.Intern("rm"), Builtin: true})

	// each { rm $it } -- the mutation hides inside the closure.
	inner := ws.AddBlock(Block{Pipelines: []Pipeline{
		{Elements: []PipelineElement{element(callTo(ws, "rm", source.NewSpan(8, 10)))}},
	}})
	eachCall := callTo(ws, "each", source.NewSpan(0, 4))
	eachCall.Call.Args = []Argument{{
		Kind: ArgPositional,
		Expr: &Expr{Kind: ExprClosure, Block: inner, Span: source.NewSpan(5, 14)},
	}}

	b := &Block{Pipelines: []Pipeline{{Elements: []PipelineElement{element(eachCall)}}}}
	if !b.HasSideEffects(ws) {
		t.Error("mutation inside a closure was not seen")
	}
}

func TestIsEmptyListBlock(t *testing.T) {
	empty := &Block{Pipelines: []Pipeline{
		{Elements: []PipelineElement{element(&Expr{Kind: ExprList, Span: source.NewSpan(0, 2)})}},
	}}
	if !empty.IsEmptyListBlock() {
		t.Error("block holding [] not recognized")
	}

	nonEmpty := &Block{Pipelines: []Pipeline{
		{Elements: []PipelineElement{element(&Expr{
			Kind: ExprList,
			List: []*Expr{intLit(1, source.NewSpan(1, 2))},
			Span: source.NewSpan(0, 3),
		})}},
	}}
	if nonEmpty.IsEmptyListBlock() {
		t.Error("[1] misread as empty")
	}

	two := &Block{Pipelines: []Pipeline{
		{Elements: []PipelineElement{
			element(&Expr{Kind: ExprList, Span: source.NewSpan(0, 2)}),
			element(&Expr{Kind: ExprList, Span: source.NewSpan(5, 7)}),
		}},
	}}
	if two.IsEmptyListBlock() {
		t.Error("two-element pipeline misread as bare []")
	}
}

func TestSingleIfCall(t *testing.T) {
	ws, _ := buildWS()

	b := &Block{Pipelines: []Pipeline{
		{Elements: []PipelineElement{element(callTo(ws, "if", source.NewSpan(0, 2)))}},
	}}
	call, ok := b.SingleIfCall(ws)
	if !ok || call == nil {
		t.Fatal("single `if` pipeline not recognized")
	}
	if !call.IsCommand(ws, "if") {
		t.Error("returned call is not the if call")
	}

	other := &Block{Pipelines: []Pipeline{
		{Elements: []PipelineElement{element(callTo(ws, "ls", source.NewSpan(0, 2)))}},
	}}
	if _, ok := other.SingleIfCall(ws); ok {
		t.Error("ls call reported as if")
	}

	piped := &Block{Pipelines: []Pipeline{
		{Elements: []PipelineElement{
			element(callTo(ws, "if", source.NewSpan(0, 2))),
			element(callTo(ws, "sort", source.NewSpan(5, 9))),
		}},
	}}
	if _, ok := piped.SingleIfCall(ws); ok {
		t.Error("if piped into sort is not a lone if")
	}
}

func userFn(ws *WorkingSet, name string, body BlockID) {
	ws.AddDecl(Decl{Name: ws.Names.Intern(name), Body: body, Builtin: false})
}

func TestTransitivelyCalledFunctions(t *testing.T) {
	ws, _ := buildWS()

	// helper-c calls nothing; helper-b calls helper-c; helper-a calls
	// helper-b; orphan is defined but never called.
	bodyC := ws.AddBlock(Block{Pipelines: []Pipeline{
		{Elements: []PipelineElement{element(callTo(ws, "ls", source.NewSpan(40, 42)))}},
	}})
	userFn(ws, "helper-c", bodyC)

	bodyB := ws.AddBlock(Block{Pipelines: []Pipeline{
		{Elements: []PipelineElement{element(callTo(ws, "helper-c", source.NewSpan(30, 38)))}},
	}})
	userFn(ws, "helper-b", bodyB)

	bodyA := ws.AddBlock(Block{Pipelines: []Pipeline{
		{Elements: []PipelineElement{element(callTo(ws, "helper-b", source.NewSpan(20, 28)))}},
	}})
	userFn(ws, "helper-a", bodyA)

	bodyOrphan := ws.AddBlock(Block{})
	userFn(ws, "orphan", bodyOrphan)

	root := &Block{Pipelines: []Pipeline{
		{Elements: []PipelineElement{element(callTo(ws, "helper-a", source.NewSpan(0, 8)))}},
	}}

	available := ws.UserFunctions()
	got := root.TransitivelyCalledFunctions(ws, available)

	for _, name := range []string{"helper-a", "helper-b", "helper-c"} {
		if _, ok := got[name]; !ok {
			t.Errorf("%s missing from transitive call set", name)
		}
	}
	if _, ok := got["orphan"]; ok {
		t.Error("orphan reported as called")
	}
	if len(got) != 3 {
		t.Errorf("call set has %d entries, want 3", len(got))
	}
}

func TestTransitivelyCalledFunctions_Cycle(t *testing.T) {
	ws, _ := buildWS()

	// ping and pong call each other; termination relies on the seen set.
	bodyPing := ws.AddBlock(Block{})
	userFn(ws, "ping", bodyPing)
	bodyPong := ws.AddBlock(Block{})
	userFn(ws, "pong", bodyPong)

	pingBlk := ws.Block(bodyPing)
	pingBlk.Pipelines = []Pipeline{
		{Elements: []PipelineElement{element(callTo(ws, "pong", source.NewSpan(10, 14)))}},
	}
	pongBlk := ws.Block(bodyPong)
	pongBlk.Pipelines = []Pipeline{
		{Elements: []PipelineElement{element(callTo(ws, "ping", source.NewSpan(20, 24)))}},
	}

	root := &Block{Pipelines: []Pipeline{
		{Elements: []PipelineElement{element(callTo(ws, "ping", source.NewSpan(0, 4)))}},
	}}

	got := root.TransitivelyCalledFunctions(ws, ws.UserFunctions())
	if len(got) != 2 {
		t.Fatalf("call set has %d entries, want 2", len(got))
	}
}

func TestEachPipeline_Order(t *testing.T) {
	ws, _ := buildWS()

	inner := ws.AddBlock(Block{Pipelines: []Pipeline{
		{Elements: []PipelineElement{element(callTo(ws, "sort", source.NewSpan(20, 24)))}},
	}})
	eachCall := callTo(ws, "each", source.NewSpan(10, 14))
	eachCall.Call.Args = []Argument{{
		Kind: ArgPositional,
		Expr: &Expr{Kind: ExprClosure, Block: inner, Span: source.NewSpan(15, 26)},
	}}

	b := &Block{Pipelines: []Pipeline{
		{Elements: []PipelineElement{element(callTo(ws, "ls", source.NewSpan(0, 2)))}},
		{Elements: []PipelineElement{element(eachCall)}},
	}}

	var firsts []string
	EachPipeline(ws, b, func(p *Pipeline) {
		if call := p.FirstCall(); call != nil {
			firsts = append(firsts, call.Name(ws))
		}
	})

	want := []string{"ls", "each", "sort"}
	if len(firsts) != len(want) {
		t.Fatalf("visited %v, want %v", firsts, want)
	}
	for i := range want {
		if firsts[i] != want[i] {
			t.Fatalf("visited %v, want %v", firsts, want)
		}
	}
}
