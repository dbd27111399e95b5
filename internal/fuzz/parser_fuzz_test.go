package fuzztests

import (
	"fmt"
	"testing"
	"time"

	"nulint/internal/ast"
	"nulint/internal/parser"
	"nulint/internal/source"
	"nulint/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// Anything longer indicates an infinite loop in error recovery.
const parseTimeout = 5 * time.Second

// refuseLoader rejects every `source` and `use` target. Fuzz inputs
// name arbitrary paths; none of them may reach the disk.
func refuseLoader(_ *source.File, path string) (*source.File, error) {
	return nil, fmt.Errorf("refused: %s", path)
}

func FuzzParserSpans(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		ws := ast.NewWorkingSet(source.NewFileSet())
		file := ws.Files.Get(ws.Files.AddVirtual("fuzz.nu", input))
		root := parser.New(ws, refuseLoader).ParseFile(file)
		if err := testkit.CheckSpanInvariants(ws, root); err != nil {
			t.Fatalf("span bookkeeping broken on %q: %v", truncateForLog(input, 200), err)
		}
		for _, pe := range ws.ParseErrors {
			if pe.Span.End < pe.Span.Start {
				t.Fatalf("parse error %q carries inverted span %v", pe.Msg, pe.Span)
			}
		}
	})
}

// FuzzParserNoHang checks that the parser terminates on any input.
// Error recovery must always make progress, even on unclosed
// delimiters and truncated constructs.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// Recovery stress: unclosed and truncated constructs.
	f.Add([]byte("def f ["))
	f.Add([]byte("{ {a: {b: ["))
	f.Add([]byte("let x = "))
	f.Add([]byte("if true { } else"))
	f.Add([]byte("$\"open (interp"))
	f.Add([]byte("[1 2 {a: [3 {b:"))
	f.Add([]byte("1..2..3..4"))
	f.Add([]byte("source source source"))
	f.Add([]byte("| | |"))
	f.Add([]byte("def f [] { def g [] { def h [] {"))

	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			ws := ast.NewWorkingSet(source.NewFileSet())
			file := ws.Files.Get(ws.Files.AddVirtual("fuzz.nu", input))
			parser.New(ws, refuseLoader).ParseFile(file)
		}()

		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
