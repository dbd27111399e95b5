package rules

import (
	"fmt"
	"strings"

	"nulint/internal/ast"
	"nulint/internal/lint"
	"nulint/internal/source"
)

// unusedFunction reports definitions nothing in the script reaches. Use
// is computed transitively from the script's own statements, so a dead
// function calling another dead function keeps neither alive.
type unusedFunction struct{}

func (unusedFunction) Info() lint.Info {
	return lint.Info{
		ID:    "unused_function",
		Short: "function is never called",
		Long: "A definition no statement reaches, directly or through " +
			"other called functions, is dead weight. `main` counts as " +
			"reachable (the script entry point), as do exported " +
			"definitions (their callers live elsewhere).",
		Level: lint.SevWarn,
	}
}

// funcRemoval deletes the whole definition statement.
type funcRemoval struct {
	span source.Span
	name string
}

func (r unusedFunction) Detect(ctx *lint.Context) []lint.Detection {
	return lint.Detections(r.DetectWithFix(ctx))
}

func (unusedFunction) DetectWithFix(ctx *lint.Context) []lint.DetectionWithFix {
	defs := ctx.CollectFunctionDefinitions()
	if len(defs) == 0 {
		return nil
	}
	available := make(map[string]ast.BlockID, len(defs))
	for _, def := range defs {
		available[def.Name] = def.Body
	}

	used := make(map[string]struct{})
	root := ctx.WS.Block(ctx.Root)
	if root == nil {
		return nil
	}
	for _, call := range root.ScriptUserFunctionCalls(ctx.WS) {
		name := call.Name(ctx.WS)
		body, known := available[name]
		if !known {
			continue
		}
		if _, done := used[name]; done {
			continue
		}
		used[name] = struct{}{}
		for reached := range ctx.WS.Block(body).TransitivelyCalledFunctions(ctx.WS, available) {
			used[reached] = struct{}{}
		}
	}

	var out []lint.DetectionWithFix
	for _, def := range defs {
		if def.Name == "main" {
			continue
		}
		if _, ok := used[def.Name]; ok {
			continue
		}
		stmt := ctx.ExpandSpanToStatement(def.NameSpan)
		if strings.HasPrefix(ctx.SpanText(stmt), "export") {
			continue
		}
		d := lint.NewDetection(def.NameSpan,
			fmt.Sprintf("function %s is never called", def.Name)).
			WithPrimary("unused definition").
			WithHelp("remove the definition or call it from somewhere reachable")
		out = append(out, lint.DetectionWithFix{
			Detection: d,
			Input:     funcRemoval{span: stmt, name: def.Name},
		})
	}
	return out
}

func (unusedFunction) Fix(ctx *lint.Context, input lint.FixInput) *lint.Fix {
	rm, ok := input.(funcRemoval)
	if !ok {
		return nil
	}
	return lint.Replace("remove "+rm.name, rm.span, "")
}
