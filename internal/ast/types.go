package ast

// Type is the statically inferred shape of an expression's output. The
// parser fills it in from literals, declared variable types, and command
// output types; TyAny means "not known statically".
type Type uint8

const (
	TyAny Type = iota
	TyNothing
	TyInt
	TyFloat
	TyNumber
	TyBool
	TyString
	TyGlob
	TyFilepath
	TyDate
	TyDuration
	TyFilesize
	TyBinary
	TyRange
	TyList
	TyRecord
	TyTable
	TyClosure
	TyCellPath
	TyError
)

var typeNames = [...]string{
	TyAny:      "any",
	TyNothing:  "nothing",
	TyInt:      "int",
	TyFloat:    "float",
	TyNumber:   "number",
	TyBool:     "bool",
	TyString:   "string",
	TyGlob:     "glob",
	TyFilepath: "path",
	TyDate:     "datetime",
	TyDuration: "duration",
	TyFilesize: "filesize",
	TyBinary:   "binary",
	TyRange:    "range",
	TyList:     "list",
	TyRecord:   "record",
	TyTable:    "table",
	TyClosure:  "closure",
	TyCellPath: "cell-path",
	TyError:    "error",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "any"
}

// IsNumeric reports whether values of this type support arithmetic.
func (t Type) IsNumeric() bool {
	switch t {
	case TyInt, TyFloat, TyNumber, TyDuration, TyFilesize:
		return true
	default:
		return false
	}
}

// IsTabular reports whether values of this type flow through row-wise
// commands like where and each.
func (t Type) IsTabular() bool {
	return t == TyList || t == TyTable || t == TyRange
}
