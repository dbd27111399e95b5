package ast

import (
	"nulint/internal/source"
)

// ExprKind tags the variant held by an Expr.
type ExprKind uint8

const (
	// ExprGarbage marks unparseable source the parser recovered over.
	ExprGarbage ExprKind = iota

	// Literals.
	ExprInt
	ExprFloat
	ExprBool
	ExprNothing
	ExprString
	ExprRawString
	ExprGlobPattern
	ExprFilepath
	ExprDateTime
	ExprBinaryLit
	ExprValueWithUnit // Inner number scaled by Str unit ("kb", "sec", ...)

	ExprVar
	ExprVarDecl
	ExprStringInterp
	ExprBinaryOp
	ExprUnaryNot
	ExprRange
	ExprList
	ExprRecord
	ExprCellPath     // bare member path, e.g. the argument of `get name.0`
	ExprFullCellPath // head expression plus members, e.g. `$f.size?`
	ExprCall
	ExprExternalCall
	ExprMatchBlock
	ExprBlock
	ExprClosure
	ExprSubexpression
	ExprRowCondition
	ExprKeyword // keyword-shaped argument such as `else <expr>`
	ExprSpread  // `...<expr>` inside lists, records, and call arguments
)

var exprKindNames = [...]string{
	ExprGarbage:       "garbage",
	ExprInt:           "int",
	ExprFloat:         "float",
	ExprBool:          "bool",
	ExprNothing:       "nothing",
	ExprString:        "string",
	ExprRawString:     "raw-string",
	ExprGlobPattern:   "glob",
	ExprFilepath:      "filepath",
	ExprDateTime:      "datetime",
	ExprBinaryLit:     "binary",
	ExprValueWithUnit: "value-with-unit",
	ExprVar:           "var",
	ExprVarDecl:       "var-decl",
	ExprStringInterp:  "string-interpolation",
	ExprBinaryOp:      "binary-op",
	ExprUnaryNot:      "unary-not",
	ExprRange:         "range",
	ExprList:          "list",
	ExprRecord:        "record",
	ExprCellPath:      "cell-path",
	ExprFullCellPath:  "full-cell-path",
	ExprCall:          "call",
	ExprExternalCall:  "external-call",
	ExprMatchBlock:    "match-block",
	ExprBlock:         "block",
	ExprClosure:       "closure",
	ExprSubexpression: "subexpression",
	ExprRowCondition:  "row-condition",
	ExprKeyword:       "keyword",
	ExprSpread:        "spread",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "unknown"
}

// Expr is one node of the expression tree. Which fields are meaningful
// depends on Kind:
//
//	ExprInt            Int
//	ExprFloat          Float
//	ExprBool           Bool
//	ExprString et al.  Str (unquoted content; the spelling lives in source)
//	ExprDateTime       Str (literal text)
//	ExprBinaryLit      Bytes
//	ExprValueWithUnit  Inner (number), Str (unit), Ty (duration/filesize)
//	ExprVar            Var
//	ExprVarDecl        Var, Inner (initializer, nil for bare `mut`)
//	ExprStringInterp   List (parts in order)
//	ExprBinaryOp       Lhs, Op, OpSpan, Rhs
//	ExprUnaryNot       Inner
//	ExprRange          From, To, Step (each may be nil), Incl
//	ExprList           List (items may be ExprSpread)
//	ExprRecord         Record
//	ExprCellPath       Path
//	ExprFullCellPath   Head, Path
//	ExprCall           Call
//	ExprExternalCall   Extern
//	ExprMatchBlock     Arms
//	ExprBlock et al.   Block
//	ExprKeyword        Str (keyword), Inner
//	ExprSpread         Inner
//
// Child expressions are owned by their parent; blocks are referenced by
// BlockID into the working-set arena, so the node graph stays acyclic.
type Expr struct {
	Kind ExprKind
	Span source.Span
	Ty   Type

	Int   int64
	Float float64
	Str   string
	Bool  bool
	Bytes []byte

	Var   VarID
	Block BlockID

	Op     Operator
	OpSpan source.Span

	Lhs   *Expr
	Rhs   *Expr
	Inner *Expr
	Head  *Expr

	From *Expr
	To   *Expr
	Step *Expr
	Incl bool

	List   []*Expr
	Record []RecordField
	Path   []PathMember
	Call   *Call
	Extern *ExternalCall
	Arms   []MatchArm
}

// RecordField is one `key: value` pair, or a `...expr` spread when Spread
// is set (Key is nil, Val holds the spread source).
type RecordField struct {
	Key    *Expr
	Val    *Expr
	Spread bool
}

// PathMemberKind distinguishes string fields from integer indices.
type PathMemberKind uint8

const (
	PathString PathMemberKind = iota
	PathInt
)

// PathMember is one step of a cell path. Optional members (`.foo?`, `.0?`)
// produce nothing instead of an error when the data is missing.
type PathMember struct {
	Kind     PathMemberKind
	Name     string
	Index    int64
	Span     source.Span
	Optional bool
}

// MatchArm is one `pattern => body` pair inside a match block. Guard
// holds the condition of `pattern if guard => body` arms, nil otherwise.
type MatchArm struct {
	Pattern *Expr
	Guard   *Expr
	Body    *Expr
	Span    source.Span
}

// IsLiteral reports whether the node is a plain literal value.
func (e *Expr) IsLiteral() bool {
	switch e.Kind {
	case ExprInt, ExprFloat, ExprBool, ExprNothing, ExprString, ExprRawString,
		ExprGlobPattern, ExprFilepath, ExprDateTime, ExprBinaryLit, ExprValueWithUnit:
		return true
	default:
		return false
	}
}

// IsStringish reports whether the node carries string content in Str.
func (e *Expr) IsStringish() bool {
	switch e.Kind {
	case ExprString, ExprRawString, ExprGlobPattern, ExprFilepath:
		return true
	default:
		return false
	}
}

// HasBlock reports whether the node references a block in the arena.
func (e *Expr) HasBlock() bool {
	switch e.Kind {
	case ExprBlock, ExprClosure, ExprSubexpression, ExprRowCondition:
		return e.Block.IsValid()
	default:
		return false
	}
}
