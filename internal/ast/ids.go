package ast

type (
	// BlockID addresses a block in the working set's block arena.
	BlockID uint32
	// DeclID addresses a declaration (command) in the declaration arena.
	DeclID uint32
	// VarID addresses a variable in the variable arena.
	VarID uint32
)

const (
	NoBlockID BlockID = 0
	NoDeclID  DeclID  = 0
	NoVarID   VarID   = 0
)

func (id BlockID) IsValid() bool { return id != NoBlockID }
func (id DeclID) IsValid() bool  { return id != NoDeclID }
func (id VarID) IsValid() bool   { return id != NoVarID }
