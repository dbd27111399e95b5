package lexer

import (
	"nulint/internal/source"
)

// Error is one lexing failure. The lexer keeps going after recording
// it; only the first failure of a run is reported, later ones are
// usually knock-on effects of the same unclosed delimiter.
type Error struct {
	Msg  string
	Span source.Span
}

// Options shape one lexing run. The same lexer serves top-level code,
// list interiors, and record interiors; only the separator sets differ.
type Options struct {
	// ExtraWhitespace lists bytes treated as plain separators in this
	// context. Inside `[...]` the comma and the line break separate
	// entries without any structural meaning.
	ExtraWhitespace []byte

	// Special lists bytes that terminate the current item and come out
	// as their own single-byte Item token. Record interiors lex with
	// ':' special so `key: value` splits even without spaces.
	Special []byte

	// SkipComments drops Comment tokens instead of emitting them.
	SkipComments bool
}

// Blocks returns the options for top-level and block-body code: line
// breaks are significant, commas are ordinary item characters.
func Blocks() Options {
	return Options{}
}

// Lists returns the options for the inside of `[...]`: commas and line
// breaks both separate entries.
func Lists() Options {
	return Options{ExtraWhitespace: []byte{',', '\n', '\r'}}
}

// Records returns the options for the inside of `{...}` when it holds a
// record: ':' splits keys from values, commas and breaks separate
// fields.
func Records() Options {
	return Options{
		ExtraWhitespace: []byte{',', '\n', '\r'},
		Special:         []byte{':'},
	}
}

// Signatures returns the options for the inside of `[...]` in a `def`
// signature: ':' and ',' both come out as their own tokens so
// `name: type` and flag defaults split reliably.
func Signatures() Options {
	return Options{
		ExtraWhitespace: []byte{'\n', '\r'},
		Special:         []byte{':', ','},
	}
}

func (o *Options) isExtraWhitespace(b byte) bool {
	for _, w := range o.ExtraWhitespace {
		if w == b {
			return true
		}
	}
	return false
}

func (o *Options) isSpecial(b byte) bool {
	for _, s := range o.Special {
		if s == b {
			return true
		}
	}
	return false
}
