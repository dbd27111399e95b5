package lexer

import (
	"strings"
	"testing"

	"nulint/internal/source"
	"nulint/internal/token"
)

type want struct {
	kind token.Kind
	text string
}

func lexKinds(t *testing.T, input string, opts Options) ([]token.Token, *Error) {
	t.Helper()
	return Lex([]byte(input), 0, opts)
}

func checkTokens(t *testing.T, input string, toks []token.Token, wants []want) {
	t.Helper()
	if len(toks) != len(wants) {
		var got []string
		for _, tok := range toks {
			got = append(got, tok.Kind.String()+":"+input[tok.Span.Start:tok.Span.End])
		}
		t.Fatalf("got %d tokens [%s], want %d", len(toks), strings.Join(got, " "), len(wants))
	}
	for i, w := range wants {
		tok := toks[i]
		text := input[tok.Span.Start:tok.Span.End]
		if tok.Kind != w.kind || text != w.text {
			t.Errorf("token %d = %v %q, want %v %q", i, tok.Kind, text, w.kind, w.text)
		}
	}
}

func TestLexBasics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []want
	}{
		{
			name:  "simple pipeline",
			input: "ls | sort-by size",
			want: []want{
				{token.Item, "ls"},
				{token.Pipe, "|"},
				{token.Item, "sort-by"},
				{token.Item, "size"},
			},
		},
		{
			name:  "semicolon splits pipelines",
			input: "ls; pwd",
			want: []want{
				{token.Item, "ls"},
				{token.Semicolon, ";"},
				{token.Item, "pwd"},
			},
		},
		{
			name:  "newline token",
			input: "ls\npwd",
			want: []want{
				{token.Item, "ls"},
				{token.Eol, "\n"},
				{token.Item, "pwd"},
			},
		},
		{
			name:  "crlf covered by one eol",
			input: "ls\r\npwd",
			want: []want{
				{token.Item, "ls"},
				{token.Eol, "\r\n"},
				{token.Item, "pwd"},
			},
		},
		{
			name:  "pipe without spaces",
			input: "ls|sort",
			want: []want{
				{token.Item, "ls"},
				{token.Pipe, "|"},
				{token.Item, "sort"},
			},
		},
		{
			name:  "double pipe",
			input: "$a || $b",
			want: []want{
				{token.Item, "$a"},
				{token.PipePipe, "||"},
				{token.Item, "$b"},
			},
		},
		{
			name:  "and-and",
			input: "ls && pwd",
			want: []want{
				{token.Item, "ls"},
				{token.AndAnd, "&&"},
				{token.Item, "pwd"},
			},
		},
		{
			name:  "flags and values are plain items",
			input: "get --optional name.0",
			want: []want{
				{token.Item, "get"},
				{token.Item, "--optional"},
				{token.Item, "name.0"},
			},
		},
		{
			name:  "caret external",
			input: "^grep -r foo",
			want: []want{
				{token.Item, "^grep"},
				{token.Item, "-r"},
				{token.Item, "foo"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := lexKinds(t, tt.input, Blocks())
			if err != nil {
				t.Fatalf("unexpected error: %v", err.Msg)
			}
			checkTokens(t, tt.input, toks, tt.want)
		})
	}
}

func TestLexQuotesAndBrackets(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []want
	}{
		{
			name:  "double quoted string is one item",
			input: `echo "hello world"`,
			want:  []want{{token.Item, "echo"}, {token.Item, `"hello world"`}},
		},
		{
			name:  "escaped quote stays inside",
			input: `echo "a \" b"`,
			want:  []want{{token.Item, "echo"}, {token.Item, `"a \" b"`}},
		},
		{
			name:  "single quotes take no escapes",
			input: `echo 'a \' + "rest"`,
			want:  []want{{token.Item, "echo"}, {token.Item, `'a \'`}, {token.Item, "+"}, {token.Item, `"rest"`}},
		},
		{
			name:  "backtick quoted path",
			input: "open `my file.txt`",
			want:  []want{{token.Item, "open"}, {token.Item, "`my file.txt`"}},
		},
		{
			name:  "list is one item",
			input: "[1 2 3] | length",
			want:  []want{{token.Item, "[1 2 3]"}, {token.Pipe, "|"}, {token.Item, "length"}},
		},
		{
			name:  "pipes inside a closure do not split",
			input: "each {|x| $x + 1 }",
			want:  []want{{token.Item, "each"}, {token.Item, "{|x| $x + 1 }"}},
		},
		{
			name:  "nested brackets carried through",
			input: "echo [[a b]; [1 2]]",
			want:  []want{{token.Item, "echo"}, {token.Item, "[[a b]; [1 2]]"}},
		},
		{
			name:  "subexpression with spaces",
			input: "(1 + 2) | $in",
			want:  []want{{token.Item, "(1 + 2)"}, {token.Pipe, "|"}, {token.Item, "$in"}},
		},
		{
			name:  "interpolation keeps parens in quotes",
			input: `$"total (1 + 2)"`,
			want:  []want{{token.Item, `$"total (1 + 2)"`}},
		},
		{
			name:  "bracket inside quotes does not nest",
			input: `echo "a [ b" c`,
			want:  []want{{token.Item, "echo"}, {token.Item, `"a [ b"`}, {token.Item, "c"}},
		},
		{
			name:  "spread before list",
			input: "append ...[1 2]",
			want:  []want{{token.Item, "append"}, {token.Item, "...[1 2]"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := lexKinds(t, tt.input, Blocks())
			if err != nil {
				t.Fatalf("unexpected error: %v", err.Msg)
			}
			checkTokens(t, tt.input, toks, tt.want)
		})
	}
}

func TestLexComments(t *testing.T) {
	input := "# heading\nls # trailing\n"
	toks, err := lexKinds(t, input, Blocks())
	if err != nil {
		t.Fatalf("unexpected error: %v", err.Msg)
	}
	checkTokens(t, input, toks, []want{
		{token.Comment, "# heading"},
		{token.Eol, "\n"},
		{token.Item, "ls"},
		{token.Comment, "# trailing"},
		{token.Eol, "\n"},
	})
}

func TestLexCommentSkipping(t *testing.T) {
	input := "ls # noise\nsort"
	opts := Blocks()
	opts.SkipComments = true
	toks, err := lexKinds(t, input, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err.Msg)
	}
	checkTokens(t, input, toks, []want{
		{token.Item, "ls"},
		{token.Eol, "\n"},
		{token.Item, "sort"},
	})
}

func TestLexHashInsideItem(t *testing.T) {
	input := "echo snake#case"
	toks, err := lexKinds(t, input, Blocks())
	if err != nil {
		t.Fatalf("unexpected error: %v", err.Msg)
	}
	checkTokens(t, input, toks, []want{
		{token.Item, "echo"},
		{token.Item, "snake#case"},
	})
}

func TestLexRedirections(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []want
	}{
		{
			name:  "stdout to file",
			input: "ls o> out.txt",
			want:  []want{{token.Item, "ls"}, {token.OutGreater, "o>"}, {token.Item, "out.txt"}},
		},
		{
			name:  "stderr append long form",
			input: "make err>> build.log",
			want:  []want{{token.Item, "make"}, {token.ErrGreaterGreater, "err>>"}, {token.Item, "build.log"}},
		},
		{
			name:  "both streams",
			input: "run o+e> all.log",
			want:  []want{{token.Item, "run"}, {token.OutErrGreater, "o+e>"}, {token.Item, "all.log"}},
		},
		{
			name:  "stderr into pipe",
			input: "run e>| lines",
			want:  []want{{token.Item, "run"}, {token.ErrGreaterPipe, "e>|"}, {token.Item, "lines"}},
		},
		{
			name:  "both streams into pipe",
			input: "run o+e>| lines",
			want:  []want{{token.Item, "run"}, {token.OutErrGreaterPipe, "o+e>|"}, {token.Item, "lines"}},
		},
		{
			name:  "plain greater than is an item",
			input: "3 > 2",
			want:  []want{{token.Item, "3"}, {token.Item, ">"}, {token.Item, "2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := lexKinds(t, tt.input, Blocks())
			if err != nil {
				t.Fatalf("unexpected error: %v", err.Msg)
			}
			checkTokens(t, tt.input, toks, tt.want)
		})
	}
}

func TestLexListOptions(t *testing.T) {
	input := "1, 2,\n3"
	toks, err := lexKinds(t, input, Lists())
	if err != nil {
		t.Fatalf("unexpected error: %v", err.Msg)
	}
	checkTokens(t, input, toks, []want{
		{token.Item, "1"},
		{token.Item, "2"},
		{token.Item, "3"},
	})
}

func TestLexRecordOptions(t *testing.T) {
	input := "name: foo, size: 10"
	toks, err := lexKinds(t, input, Records())
	if err != nil {
		t.Fatalf("unexpected error: %v", err.Msg)
	}
	checkTokens(t, input, toks, []want{
		{token.Item, "name"},
		{token.Item, ":"},
		{token.Item, "foo"},
		{token.Item, "size"},
		{token.Item, ":"},
		{token.Item, "10"},
	})
}

func TestLexRecordColonWithoutSpaces(t *testing.T) {
	input := "name:foo"
	toks, err := lexKinds(t, input, Records())
	if err != nil {
		t.Fatalf("unexpected error: %v", err.Msg)
	}
	checkTokens(t, input, toks, []want{
		{token.Item, "name"},
		{token.Item, ":"},
		{token.Item, "foo"},
	})
}

func TestLexUnbalanced(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"unclosed bracket", "[1 2", `unexpected end of input (expected "]")`},
		{"unclosed brace", "{ ls", `unexpected end of input (expected "}")`},
		{"unclosed paren", "(1 + 2", `unexpected end of input (expected ")")`},
		{"unclosed double quote", `"abc`, `unexpected end of input (expected closing "\"")`},
		{"unclosed single quote", "'abc", `unexpected end of input (expected closing "'")`},
		{"nested unclosed", "[1 (2", `unexpected end of input (expected ")")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := lexKinds(t, tt.input, Blocks())
			if err == nil {
				t.Fatal("expected an error")
			}
			if err.Msg != tt.wantMsg {
				t.Errorf("error %q, want %q", err.Msg, tt.wantMsg)
			}
			if len(toks) == 0 {
				t.Error("token stream should still hold the item")
			}
			// The error points at the last byte of the input.
			if err.Span.End != uint32(len(tt.input)) {
				t.Errorf("error span ends at %d, want %d", err.Span.End, len(tt.input))
			}
		})
	}
}

func TestLexMultilineString(t *testing.T) {
	input := "echo \"first\nsecond\""
	toks, err := lexKinds(t, input, Blocks())
	if err != nil {
		t.Fatalf("unexpected error: %v", err.Msg)
	}
	checkTokens(t, input, toks, []want{
		{token.Item, "echo"},
		{token.Item, "\"first\nsecond\""},
	})
}

func TestLexBaseOffset(t *testing.T) {
	toks, err := Lex([]byte("a b"), 100, Blocks())
	if err != nil {
		t.Fatalf("unexpected error: %v", err.Msg)
	}
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2", len(toks))
	}
	if toks[0].Span.Start != 100 || toks[0].Span.End != 101 {
		t.Errorf("first span = %v, want 100..101", toks[0].Span)
	}
	if toks[1].Span.Start != 102 || toks[1].Span.End != 103 {
		t.Errorf("second span = %v, want 102..103", toks[1].Span)
	}
}

func TestLexFileSkipsBOM(t *testing.T) {
	fs := source.NewFileSet()
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("ls")...)
	id := fs.Add("script.nu", content, 0)

	toks, err := LexFile(fs.Get(id))
	if err != nil {
		t.Fatalf("unexpected error: %v", err.Msg)
	}
	if len(toks) != 1 {
		t.Fatalf("got %d tokens, want 1", len(toks))
	}
	if got := fs.Text(toks[0].Span); got != "ls" {
		t.Errorf("token text = %q, want %q", got, "ls")
	}
}

func TestLexEmptyInput(t *testing.T) {
	toks, err := Lex(nil, 0, Blocks())
	if err != nil {
		t.Fatalf("unexpected error: %v", err.Msg)
	}
	if len(toks) != 0 {
		t.Errorf("got %d tokens, want 0", len(toks))
	}
}
