package token

// Kind represents the category of a lexed token. The lexer splits source
// into coarse items separated by whitespace and the structural characters
// below; everything else, bracketed or quoted runs included, is a single
// Item whose meaning the parser decides in context.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the lexed input.
	EOF

	// Item is one coarse word: a command name, flag, literal, variable
	// reference, or a whole bracketed/quoted run.
	Item
	// Comment is a `#` comment running to the end of its line.
	Comment
	// Pipe separates pipeline elements.
	Pipe // |
	// PipePipe is the boolean-or spelling when it stands alone.
	PipePipe // ||
	// Semicolon separates pipelines on one line.
	Semicolon // ;
	// Eol is one line break. Consecutive breaks each produce a token.
	Eol
	// AndAnd chains pipelines on success.
	AndAnd // &&

	// OutGreater redirects stdout to a file.
	OutGreater // o> / out>
	// OutGreaterGreater appends stdout to a file.
	OutGreaterGreater // o>> / out>>
	// ErrGreater redirects stderr to a file.
	ErrGreater // e> / err>
	// ErrGreaterGreater appends stderr to a file.
	ErrGreaterGreater // e>> / err>>
	// OutErrGreater redirects both streams to one file.
	OutErrGreater // o+e> / out+err>
	// OutErrGreaterGreater appends both streams to one file.
	OutErrGreaterGreater // o+e>> / out+err>>
	// ErrGreaterPipe pipes stderr into the next element.
	ErrGreaterPipe // e>|
	// OutErrGreaterPipe pipes both streams into the next element.
	OutErrGreaterPipe // o+e>|
)

var kindNames = [...]string{
	Invalid:              "invalid",
	EOF:                  "eof",
	Item:                 "item",
	Comment:              "comment",
	Pipe:                 "pipe",
	PipePipe:             "pipe-pipe",
	Semicolon:            "semicolon",
	Eol:                  "eol",
	AndAnd:               "and-and",
	OutGreater:           "out>",
	OutGreaterGreater:    "out>>",
	ErrGreater:           "err>",
	ErrGreaterGreater:    "err>>",
	OutErrGreater:        "out+err>",
	OutErrGreaterGreater: "out+err>>",
	ErrGreaterPipe:       "err>|",
	OutErrGreaterPipe:    "out+err>|",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// IsRedirection reports whether the token introduces a redirection
// target or pipes a non-stdout stream onward.
func (k Kind) IsRedirection() bool {
	switch k {
	case OutGreater, OutGreaterGreater, ErrGreater, ErrGreaterGreater,
		OutErrGreater, OutErrGreaterGreater, ErrGreaterPipe, OutErrGreaterPipe:
		return true
	default:
		return false
	}
}

// IsSeparator reports whether the token ends the pipeline element before
// it without starting a new expression itself.
func (k Kind) IsSeparator() bool {
	switch k {
	case Pipe, Semicolon, Eol, EOF, AndAnd, ErrGreaterPipe, OutErrGreaterPipe:
		return true
	default:
		return false
	}
}

// redirectSpellings maps the exact source spelling of a redirection item
// to its kind. The lexer promotes a bare item to one of these after the
// item ends.
var redirectSpellings = map[string]Kind{
	"o>":        OutGreater,
	"out>":      OutGreater,
	"o>>":       OutGreaterGreater,
	"out>>":     OutGreaterGreater,
	"e>":        ErrGreater,
	"err>":      ErrGreater,
	"e>>":       ErrGreaterGreater,
	"err>>":     ErrGreaterGreater,
	"o+e>":      OutErrGreater,
	"out+err>":  OutErrGreater,
	"o+e>>":     OutErrGreaterGreater,
	"out+err>>": OutErrGreaterGreater,
	"e>|":       ErrGreaterPipe,
	"o+e>|":     OutErrGreaterPipe,
}

// RedirectKind looks up the redirection kind for an item spelling.
func RedirectKind(text string) (Kind, bool) {
	k, ok := redirectSpellings[text]
	return k, ok
}
