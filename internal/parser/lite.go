package parser

import (
	"nulint/internal/token"
)

// The lite pass groups the flat token stream into pipelines and
// commands without interpreting a single item. It settles everything
// that depends only on separators: where pipelines end, which elements
// belong together, which redirections hang off which element, and how
// line breaks interact with pipes on either side of them.

// liteRedirect is one file redirection: the operator token and the
// target item following it.
type liteRedirect struct {
	op     token.Token
	target token.Token
}

// liteCommand is one future pipeline element: its item tokens plus any
// file redirections. conn records how the command attaches to the one
// before it; the first command of a pipeline keeps the zero value.
type liteCommand struct {
	parts     []token.Token
	redirects []liteRedirect
	conn      token.Kind
}

type litePipeline struct {
	commands []liteCommand
}

type liteBlock struct {
	pipelines []litePipeline
}

// liteParse groups tokens. Pipelines split on semicolons and on line
// breaks, except that a break right after a pipe, or right before a
// line starting with one, continues the pipeline.
func (p *Parser) liteParse(toks []token.Token) liteBlock {
	var blk liteBlock
	var pipe litePipeline
	var cmd liteCommand

	conn := token.Kind(0)
	lastWasPipe := false

	flushCmd := func() {
		if len(cmd.parts) > 0 || len(cmd.redirects) > 0 {
			cmd.conn = conn
			pipe.commands = append(pipe.commands, cmd)
		}
		cmd = liteCommand{}
	}
	flushPipe := func() {
		flushCmd()
		if len(pipe.commands) > 0 {
			blk.pipelines = append(blk.pipelines, pipe)
		}
		pipe = litePipeline{}
		conn = 0
	}

	// nextSignificant peeks past line breaks and comments.
	nextSignificant := func(from int) (token.Token, bool) {
		for j := from; j < len(toks); j++ {
			switch toks[j].Kind {
			case token.Eol, token.Comment:
				continue
			default:
				return toks[j], true
			}
		}
		return token.Token{}, false
	}

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.Kind {
		case token.Comment:
			// Structure is unaffected; suppression scanning reads
			// comments straight from the source lines.

		case token.Eol:
			if lastWasPipe {
				continue
			}
			if next, ok := nextSignificant(i + 1); ok && next.Kind == token.Pipe {
				continue
			}
			flushPipe()

		case token.Semicolon:
			flushPipe()
			lastWasPipe = false

		case token.AndAnd:
			p.errorf(t.Span, "the '&&' operator is not supported, use ';' or 'and'")
			flushPipe()
			lastWasPipe = false

		case token.Pipe:
			flushCmd()
			conn = token.Pipe
			lastWasPipe = true

		case token.ErrGreaterPipe, token.OutErrGreaterPipe:
			flushCmd()
			conn = t.Kind
			lastWasPipe = true

		case token.OutGreater, token.OutGreaterGreater,
			token.ErrGreater, token.ErrGreaterGreater,
			token.OutErrGreater, token.OutErrGreaterGreater:
			if next, ok := nextSignificant(i + 1); ok && next.Kind == token.Item {
				// Consume through the target, keeping separators in
				// between out of the command.
				for i++; toks[i] != next; i++ {
				}
				cmd.redirects = append(cmd.redirects, liteRedirect{op: t, target: next})
			} else {
				p.errorf(t.Span, "missing redirection target after %s", t.Kind)
			}
			lastWasPipe = false

		default:
			cmd.parts = append(cmd.parts, t)
			lastWasPipe = false
		}
	}
	flushPipe()
	return blk
}
