// Package token defines the coarse token kinds produced by the lexer.
//
// The shell grammar has no reserved words and almost no fixed operator
// set at the top level, so lexing cannot classify much: the lexer only
// splits the input into whitespace-separated items while respecting
// quotes and bracket nesting, and marks the few structural characters
// (pipes, semicolons, line breaks, redirections, comments). A whole
// list literal `[1 2 3]` or closure `{|x| $x + 1 }` is a single Item;
// the parser re-lexes inside the brackets once it knows the context.
package token
