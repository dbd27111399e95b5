// Package fuzztests houses Go fuzz harnesses that exercise the linting
// pipeline (source -> lexer -> parser -> rules) on arbitrary scripts.
// Its goal is to smoke test robustness: no panics, no hangs, and no
// spans pointing outside the input, whatever bytes come in.
//
// The harnesses never touch the filesystem: `source` and `use` targets
// inside fuzz inputs are refused by the loader instead of resolved.
package fuzztests
