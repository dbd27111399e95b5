package ast

import (
	"nulint/internal/source"
)

// Decl is one command declaration: a builtin seeded before parsing or a
// user `def`. Builtins have no body block.
type Decl struct {
	Name       source.StringID
	Sig        Signature
	Body       BlockID // NoBlockID for builtins
	Builtin    bool
	OutputType Type
	NameSpan   source.Span // definition site; zero for builtins
}

// Variable is one declared variable.
type Variable struct {
	Name     source.StringID
	DeclSpan source.Span
	Ty       Type
	Mutable  bool
	Const    bool
}

// ParseError is one recovered parser failure.
type ParseError struct {
	Msg  string
	Span source.Span
}

// WorkingSet is the parser's output and the sole owner of AST storage:
// arenas of blocks, declarations, and variables, the file table, interned
// names, and the parse errors hit along the way. After parsing it is
// treated as immutable shared data for the whole lint run; every
// cross-reference is an id into one of the arenas, so the structure is
// acyclic and safe to traverse without visit marks.
type WorkingSet struct {
	Files *source.FileSet
	Names *source.Interner

	blocks Arena[Block]
	decls  Arena[Decl]
	vars   Arena[Variable]

	declIndex map[source.StringID]DeclID // latest binding per name

	ParseErrors []ParseError
}

// NewWorkingSet creates an empty working set over the given file table.
func NewWorkingSet(files *source.FileSet) *WorkingSet {
	return &WorkingSet{
		Files:     files,
		Names:     source.NewInterner(),
		blocks:    *NewArena[Block](16),
		decls:     *NewArena[Decl](64),
		vars:      *NewArena[Variable](16),
		declIndex: make(map[source.StringID]DeclID),
	}
}

// AddBlock stores a block and returns its id.
func (ws *WorkingSet) AddBlock(b Block) BlockID {
	return BlockID(ws.blocks.Allocate(b))
}

// Block returns the block for id, or nil for the zero id.
func (ws *WorkingSet) Block(id BlockID) *Block {
	return ws.blocks.Get(uint32(id))
}

// NumBlocks returns the number of allocated blocks.
func (ws *WorkingSet) NumBlocks() uint32 {
	return ws.blocks.Len()
}

// AddDecl stores a declaration, indexes it by name, and returns its id.
func (ws *WorkingSet) AddDecl(d Decl) DeclID {
	id := DeclID(ws.decls.Allocate(d))
	ws.declIndex[d.Name] = id
	return id
}

// Decl returns the declaration for id, or nil for the zero id.
func (ws *WorkingSet) Decl(id DeclID) *Decl {
	return ws.decls.Get(uint32(id))
}

// Decls exposes the declaration arena contents, read-only.
func (ws *WorkingSet) Decls() []Decl {
	return ws.decls.Slice()
}

// DeclName returns the name of a declaration, or "" for invalid ids.
func (ws *WorkingSet) DeclName(id DeclID) string {
	d := ws.Decl(id)
	if d == nil {
		return ""
	}
	name, _ := ws.Names.Lookup(d.Name)
	return name
}

// FindDecl returns the latest declaration bound to name.
func (ws *WorkingSet) FindDecl(name string) (DeclID, bool) {
	id, ok := ws.declIndex[ws.Names.Intern(name)]
	return id, ok
}

// AddVariable stores a variable and returns its id.
func (ws *WorkingSet) AddVariable(v Variable) VarID {
	return VarID(ws.vars.Allocate(v))
}

// Variable returns the variable for id, or nil for the zero id.
func (ws *WorkingSet) Variable(id VarID) *Variable {
	return ws.vars.Get(uint32(id))
}

// VarName returns a variable's name without the `$` sigil.
func (ws *WorkingSet) VarName(id VarID) string {
	v := ws.Variable(id)
	if v == nil {
		return ""
	}
	name, _ := ws.Names.Lookup(v.Name)
	return name
}

// AddParseError records a recovered parse failure.
func (ws *WorkingSet) AddParseError(msg string, span source.Span) {
	ws.ParseErrors = append(ws.ParseErrors, ParseError{Msg: msg, Span: span})
}

// Text extracts the source slice of a global span.
func (ws *WorkingSet) Text(span source.Span) string {
	return ws.Files.Text(span)
}

// UserFunctions returns name -> body block for every non-builtin
// declaration that has a body.
func (ws *WorkingSet) UserFunctions() map[string]BlockID {
	out := make(map[string]BlockID)
	for _, d := range ws.decls.Slice() {
		if d.Builtin || !d.Body.IsValid() {
			continue
		}
		name, _ := ws.Names.Lookup(d.Name)
		if name == "" {
			continue
		}
		out[name] = d.Body
	}
	return out
}
