package parser

import (
	"fmt"

	"nulint/internal/ast"
	"nulint/internal/lexer"
	"nulint/internal/source"
)

// maxNesting caps expression and block nesting. Deeper input is almost
// certainly adversarial or broken; parsing stops with a recorded error
// instead of exhausting the stack.
const maxNesting = 120

// FileLoader resolves a `source` or `use` target relative to the file
// naming it. Implementations add the loaded file to the shared file set
// and return it; returning an error turns the call site into a parse
// error without aborting the rest of the file.
type FileLoader func(from *source.File, path string) (*source.File, error)

// Parser turns lexed tokens into blocks inside one working set. A
// parser handles one entry file plus everything that file sources; the
// caller creates a fresh one per lint unit.
type Parser struct {
	ws     *ast.WorkingSet
	loader FileLoader

	file     *source.File // file currently being parsed
	scopes   []map[string]ast.VarID
	sourcing map[string]bool
	depth    int
}

// New creates a parser over the working set. Builtin commands and the
// ambient variables are seeded once per working set.
func New(ws *ast.WorkingSet, loader FileLoader) *Parser {
	p := &Parser{
		ws:       ws,
		loader:   loader,
		sourcing: make(map[string]bool),
	}
	if len(ws.Decls()) == 0 {
		seedBuiltins(ws)
	}
	global := make(map[string]ast.VarID)
	for _, name := range []string{"nu", "env", "in", "it"} {
		global[name] = ws.AddVariable(ast.Variable{Name: ws.Names.Intern(name)})
	}
	p.scopes = append(p.scopes, global)
	return p
}

// ParseFile parses one file into the working set and returns its
// top-level block. Lexing and parsing failures are recorded on the
// working set; the returned block always exists.
func (p *Parser) ParseFile(f *source.File) ast.BlockID {
	prev := p.file
	p.file = f
	defer func() { p.file = prev }()

	toks, lexErr := lexer.LexFile(f)
	if lexErr != nil {
		p.ws.AddParseError(lexErr.Msg, lexErr.Span)
	}
	return p.parseTokens(toks, ast.Signature{}, f.CoveredSpan())
}

// text returns the source bytes of a span.
func (p *Parser) text(sp source.Span) []byte {
	b, _ := p.ws.Files.Slice(sp)
	return b
}

func (p *Parser) errorf(sp source.Span, format string, args ...any) {
	p.ws.AddParseError(fmt.Sprintf(format, args...), sp)
}

// garbage records an error and produces the recovery node covering sp.
func (p *Parser) garbage(sp source.Span, format string, args ...any) *ast.Expr {
	p.errorf(sp, format, args...)
	return &ast.Expr{Kind: ast.ExprGarbage, Span: sp}
}

// enter guards recursion depth. On success the caller must pair it
// with leave; on failure the counter is already unwound.
func (p *Parser) enter(sp source.Span) bool {
	p.depth++
	if p.depth > maxNesting {
		p.depth--
		p.errorf(sp, "nesting too deep")
		return false
	}
	return true
}

func (p *Parser) leave() {
	p.depth--
}

// pushScope opens a variable scope for a block or closure body.
func (p *Parser) pushScope() {
	p.scopes = append(p.scopes, make(map[string]ast.VarID))
}

func (p *Parser) popScope() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

// declareVar registers a variable in the innermost scope.
func (p *Parser) declareVar(name string, v ast.Variable) ast.VarID {
	v.Name = p.ws.Names.Intern(name)
	id := p.ws.AddVariable(v)
	p.scopes[len(p.scopes)-1][name] = id
	return id
}

// lookupVar finds the innermost binding of name.
func (p *Parser) lookupVar(name string) (ast.VarID, bool) {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if id, ok := p.scopes[i][name]; ok {
			return id, true
		}
	}
	return ast.NoVarID, false
}
