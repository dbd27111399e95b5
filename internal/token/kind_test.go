package token

import "testing"

func TestRedirectKind(t *testing.T) {
	tests := []struct {
		text string
		want Kind
		ok   bool
	}{
		{"o>", OutGreater, true},
		{"out>", OutGreater, true},
		{"e>>", ErrGreaterGreater, true},
		{"err>>", ErrGreaterGreater, true},
		{"o+e>", OutErrGreater, true},
		{"out+err>>", OutErrGreaterGreater, true},
		{"e>|", ErrGreaterPipe, true},
		{"o+e>|", OutErrGreaterPipe, true},
		{"ls", 0, false},
		{">", 0, false},
		{"o >", 0, false},
	}
	for _, tt := range tests {
		got, ok := RedirectKind(tt.text)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("RedirectKind(%q) = %v, %v; want %v, %v", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKindString(t *testing.T) {
	if got := Pipe.String(); got != "pipe" {
		t.Errorf("Pipe.String() = %q", got)
	}
	if got := Kind(200).String(); got != "invalid" {
		t.Errorf("out of range kind String() = %q", got)
	}
}

func TestIsSeparator(t *testing.T) {
	for _, k := range []Kind{Pipe, Semicolon, Eol, EOF, AndAnd, ErrGreaterPipe, OutErrGreaterPipe} {
		if !k.IsSeparator() {
			t.Errorf("%v.IsSeparator() = false", k)
		}
	}
	for _, k := range []Kind{Item, Comment, OutGreater} {
		if k.IsSeparator() {
			t.Errorf("%v.IsSeparator() = true", k)
		}
	}
}

func TestEndsCommand(t *testing.T) {
	if !(Token{Kind: OutGreater}).EndsCommand() {
		t.Error("redirection does not end the command")
	}
	if !(Token{Kind: Comment}).EndsCommand() {
		t.Error("comment does not end the command")
	}
	if (Token{Kind: Item}).EndsCommand() {
		t.Error("item ends the command")
	}
}
