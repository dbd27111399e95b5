package ast

// filesystemCommands are the builtins that read or write the file tree
// directly. Used by rules that treat path-shaped arguments specially.
var filesystemCommands = map[string]bool{
	"ls": true, "open": true, "save": true, "rm": true, "mv": true,
	"cp": true, "mkdir": true, "touch": true, "cd": true, "glob": true,
	"du": true, "start": true,
}

// Name returns the resolved command name.
func (c *Call) Name(ws *WorkingSet) string {
	return ws.DeclName(c.Decl)
}

// IsCommand reports whether the call resolves to the named command.
func (c *Call) IsCommand(ws *WorkingSet, name string) bool {
	return c.Name(ws) == name
}

// PositionalArgs returns the positional argument expressions in order.
// Unknown-shaped arguments count as positional; spreads and flags do not.
func (c *Call) PositionalArgs() []*Expr {
	var out []*Expr
	for i := range c.Args {
		a := &c.Args[i]
		if (a.Kind == ArgPositional || a.Kind == ArgUnknown) && a.Expr != nil {
			out = append(out, a.Expr)
		}
	}
	return out
}

// FirstPositionalArg returns the first positional argument, or nil.
func (c *Call) FirstPositionalArg() *Expr {
	return c.PositionalArg(0)
}

// PositionalArg returns the i-th positional argument, or nil.
func (c *Call) PositionalArg(i int) *Expr {
	seen := 0
	for j := range c.Args {
		a := &c.Args[j]
		if (a.Kind == ArgPositional || a.Kind == ArgUnknown) && a.Expr != nil {
			if seen == i {
				return a.Expr
			}
			seen++
		}
	}
	return nil
}

// HasNamedFlag reports whether the call passes the flag, by long name or
// single-character short spelling.
func (c *Call) HasNamedFlag(name string) bool {
	for i := range c.Args {
		a := &c.Args[i]
		if a.Kind != ArgNamed {
			continue
		}
		if a.Name == name || (a.Short != "" && a.Short == name) {
			return true
		}
	}
	return false
}

// NamedFlagValue returns the value expression of the flag, if passed with
// one.
func (c *Call) NamedFlagValue(name string) (*Expr, bool) {
	for i := range c.Args {
		a := &c.Args[i]
		if a.Kind == ArgNamed && (a.Name == name || a.Short == name) {
			return a.Expr, a.Expr != nil
		}
	}
	return nil, false
}

// ElseBranch returns the expression following the `else` keyword of an
// if call: either the else-block or a chained if call.
func (c *Call) ElseBranch() *Expr {
	for i := range c.Args {
		a := &c.Args[i]
		if a.Expr != nil && a.Expr.Kind == ExprKeyword && a.Expr.Str == "else" {
			return a.Expr.Inner
		}
	}
	return nil
}

// CustomCommandDef returns the declaration a `def` call introduces.
func (c *Call) CustomCommandDef(ws *WorkingSet) (*Decl, bool) {
	if !c.DefinedDecl.IsValid() {
		return nil, false
	}
	d := ws.Decl(c.DefinedDecl)
	return d, d != nil
}

// IsFilesystemCommand reports whether the call targets a filesystem
// builtin.
func (c *Call) IsFilesystemCommand(ws *WorkingSet) bool {
	return filesystemCommands[c.Name(ws)]
}

// UsesVariable reports whether any argument reads the variable,
// descending into closure arguments.
func (c *Call) UsesVariable(ws *WorkingSet, id VarID) bool {
	for i := range c.Args {
		if e := c.Args[i].Expr; e != nil && e.RefersToVar(ws, id) {
			return true
		}
	}
	return false
}

// LoopVarFromEach returns the loop parameter of an each/par-each/filter
// call's closure argument.
func (c *Call) LoopVarFromEach(ws *WorkingSet) (VarID, bool) {
	switch c.Name(ws) {
	case "each", "par-each", "filter":
	default:
		return NoVarID, false
	}
	body := c.FirstPositionalArg()
	if body == nil || body.Kind != ExprClosure {
		return NoVarID, false
	}
	b := ws.Block(body.Block)
	if b == nil || len(b.Sig.RequiredPositional) == 0 {
		return NoVarID, false
	}
	v := b.Sig.RequiredPositional[0].Var
	return v, v.IsValid()
}

// IsGetOptional reports whether a get call already tolerates missing
// cells via -o/--optional or -i/--ignore-errors.
func (c *Call) IsGetOptional(ws *WorkingSet) bool {
	if !c.IsCommand(ws, "get") {
		return false
	}
	return c.HasNamedFlag("optional") || c.HasNamedFlag("o") ||
		c.HasNamedFlag("ignore-errors") || c.HasNamedFlag("i")
}
