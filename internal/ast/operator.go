package ast

// Operator enumerates the binary operators the shell understands,
// including the assignment family: in this language an assignment is an
// ordinary binary operation sitting in its own pipeline element.
type Operator uint8

const (
	OpInvalid Operator = iota

	// Comparison.
	OpEq
	OpNotEq
	OpLess
	OpGreater
	OpLessEq
	OpGreaterEq
	OpRegexMatch    // =~
	OpNotRegexMatch // !~
	OpIn
	OpNotIn
	OpStartsWith
	OpEndsWith

	// Math.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpFloorDiv
	OpMod
	OpPow

	// Boolean.
	OpAnd
	OpOr
	OpXor

	// String.
	OpConcat // ++

	// Assignment.
	OpAssign
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpConcatAssign
)

var operatorSpelling = [...]string{
	OpInvalid:       "<invalid>",
	OpEq:            "==",
	OpNotEq:         "!=",
	OpLess:          "<",
	OpGreater:       ">",
	OpLessEq:        "<=",
	OpGreaterEq:     ">=",
	OpRegexMatch:    "=~",
	OpNotRegexMatch: "!~",
	OpIn:            "in",
	OpNotIn:         "not-in",
	OpStartsWith:    "starts-with",
	OpEndsWith:      "ends-with",
	OpAdd:           "+",
	OpSub:           "-",
	OpMul:           "*",
	OpDiv:           "/",
	OpFloorDiv:      "//",
	OpMod:           "mod",
	OpPow:           "**",
	OpAnd:           "and",
	OpOr:            "or",
	OpXor:           "xor",
	OpConcat:        "++",
	OpAssign:        "=",
	OpAddAssign:     "+=",
	OpSubAssign:     "-=",
	OpMulAssign:     "*=",
	OpDivAssign:     "/=",
	OpConcatAssign:  "++=",
}

func (op Operator) String() string {
	if int(op) < len(operatorSpelling) {
		return operatorSpelling[op]
	}
	return "<invalid>"
}

var operatorByText = func() map[string]Operator {
	m := make(map[string]Operator, len(operatorSpelling)+1)
	for op, text := range operatorSpelling {
		if Operator(op) == OpInvalid {
			continue
		}
		m[text] = Operator(op)
	}
	// Alternate spelling; canonical form stays `or`.
	m["||"] = OpOr
	return m
}()

// OperatorFromText maps the source spelling to an Operator.
func OperatorFromText(text string) (Operator, bool) {
	op, ok := operatorByText[text]
	return op, ok
}

// IsAssignment reports whether op writes to its left-hand side.
func (op Operator) IsAssignment() bool {
	switch op {
	case OpAssign, OpAddAssign, OpSubAssign, OpMulAssign, OpDivAssign, OpConcatAssign:
		return true
	default:
		return false
	}
}

// IsComparison reports whether op yields a bool from two values.
func (op Operator) IsComparison() bool {
	switch op {
	case OpEq, OpNotEq, OpLess, OpGreater, OpLessEq, OpGreaterEq,
		OpRegexMatch, OpNotRegexMatch, OpIn, OpNotIn, OpStartsWith, OpEndsWith:
		return true
	default:
		return false
	}
}

// Precedence orders operators for expression parsing; higher binds
// tighter. Assignment binds loosest so `$x = $a + $b` groups the sum.
func (op Operator) Precedence() int {
	switch op {
	case OpPow:
		return 100
	case OpMul, OpDiv, OpFloorDiv, OpMod:
		return 95
	case OpAdd, OpSub:
		return 90
	case OpConcat:
		return 85
	case OpEq, OpNotEq, OpLess, OpGreater, OpLessEq, OpGreaterEq,
		OpRegexMatch, OpNotRegexMatch, OpIn, OpNotIn, OpStartsWith, OpEndsWith:
		return 80
	case OpAnd:
		return 50
	case OpXor:
		return 45
	case OpOr:
		return 40
	case OpAssign, OpAddAssign, OpSubAssign, OpMulAssign, OpDivAssign, OpConcatAssign:
		return 10
	default:
		return 0
	}
}

// CompoundAssign returns the `op=` operator folding `$x = $x op rhs` into
// `$x op= rhs`, or OpInvalid when no compound spelling exists.
func (op Operator) CompoundAssign() Operator {
	switch op {
	case OpAdd:
		return OpAddAssign
	case OpSub:
		return OpSubAssign
	case OpMul:
		return OpMulAssign
	case OpDiv:
		return OpDivAssign
	case OpConcat:
		return OpConcatAssign
	default:
		return OpInvalid
	}
}
