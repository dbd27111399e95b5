package parser

import "nulint/internal/ast"

// The builtin table seeds every working set with the commands scripts
// lean on, so calls resolve with real signatures: flags check against
// declared names, positional shapes steer how arguments parse (cell
// paths, closures, globs), and output types feed later analysis. The
// set covers the commands linted scripts actually use rather than the
// full upstream surface; unknown names simply fall through to external
// call handling.

type builtin struct {
	name string
	sig  ast.Signature
	out  ast.Type
}

func pos(name string, shape ast.Type) ast.PositionalArg {
	return ast.PositionalArg{Name: name, Shape: shape}
}

func restOf(name string, shape ast.Type) *ast.PositionalArg {
	a := pos(name, shape)
	return &a
}

// sw declares a switch flag, fl a flag taking a value.
func sw(long string, short rune) ast.Flag {
	return ast.Flag{Long: long, Short: short, Arg: ast.TyNothing}
}

func fl(long string, short rune, arg ast.Type) ast.Flag {
	return ast.Flag{Long: long, Short: short, Arg: arg}
}

func seedBuiltins(ws *ast.WorkingSet) {
	for _, b := range builtinTable {
		sig := b.sig
		sig.Name = b.name
		ws.AddDecl(ast.Decl{
			Name:       ws.Names.Intern(b.name),
			Sig:        sig,
			Builtin:    true,
			OutputType: b.out,
		})
	}
}

var builtinTable = []builtin{
	// Control flow. These mostly parse through dedicated paths, but the
	// declarations anchor the calls those paths emit.
	{name: "if", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("cond", ast.TyBool), pos("then", ast.TyClosure)},
		OptionalPositional: []ast.PositionalArg{pos("else", ast.TyAny)},
	}},
	{name: "match", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("value", ast.TyAny), pos("arms", ast.TyAny)},
	}},
	{name: "for", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("var", ast.TyAny), pos("iterable", ast.TyAny), pos("body", ast.TyClosure)},
	}},
	{name: "while", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("cond", ast.TyBool), pos("body", ast.TyClosure)},
	}},
	{name: "loop", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("body", ast.TyClosure)},
	}},
	{name: "try", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("body", ast.TyClosure)},
		OptionalPositional: []ast.PositionalArg{pos("catch-word", ast.TyString), pos("handler", ast.TyClosure)},
	}},
	{name: "do", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("closure", ast.TyClosure)},
		RestPositional:     restOf("args", ast.TyAny),
		Named:              []ast.Flag{sw("ignore-errors", 'i'), sw("ignore-shell-errors", 's'), sw("capture-errors", 'c')},
	}},
	{name: "return", sig: ast.Signature{
		OptionalPositional: []ast.PositionalArg{pos("value", ast.TyAny)},
	}},
	{name: "break"},
	{name: "continue"},
	{name: "error make", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("error", ast.TyRecord)},
		Named:              []ast.Flag{sw("unspanned", 'u')},
	}, out: ast.TyError},
	{name: "exit", sig: ast.Signature{
		OptionalPositional: []ast.PositionalArg{pos("code", ast.TyInt)},
	}},

	// Declarations; bodies attach through the keyword parsers.
	{name: "def", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("name", ast.TyString), pos("body", ast.TyClosure)},
		Named:              []ast.Flag{sw("env", 0), sw("wrapped", 0)},
	}},
	{name: "extern", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("name", ast.TyString)},
	}},
	{name: "module", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("name", ast.TyString), pos("body", ast.TyClosure)},
	}},
	{name: "use", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("module", ast.TyFilepath)},
		RestPositional:     restOf("members", ast.TyAny),
	}},
	{name: "alias", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("name", ast.TyString), pos("expansion", ast.TyAny)},
	}},
	{name: "source", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("file", ast.TyFilepath)},
	}},
	{name: "source-env", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("file", ast.TyFilepath)},
	}},
	{name: "export-env", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("body", ast.TyClosure)},
	}},
	{name: "overlay use", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("name", ast.TyString)},
		OptionalPositional: []ast.PositionalArg{pos("as-word", ast.TyString), pos("alias", ast.TyString)},
		Named:              []ast.Flag{sw("prefix", 'p'), sw("reload", 'r')},
	}},
	{name: "overlay hide", sig: ast.Signature{
		OptionalPositional: []ast.PositionalArg{pos("name", ast.TyString)},
	}},
	{name: "overlay new", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("name", ast.TyString)},
	}},

	// Row and stream operations.
	{name: "where", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("condition", ast.TyAny)},
	}},
	{name: "each", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("closure", ast.TyClosure)},
		Named:              []ast.Flag{sw("keep-empty", 'k'), sw("flatten", 'f')},
	}, out: ast.TyList},
	{name: "par-each", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("closure", ast.TyClosure)},
		Named:              []ast.Flag{fl("threads", 't', ast.TyInt), sw("keep-order", 'k')},
	}, out: ast.TyList},
	{name: "filter", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("closure", ast.TyClosure)},
	}, out: ast.TyList},
	{name: "reduce", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("closure", ast.TyClosure)},
		Named:              []ast.Flag{fl("fold", 'f', ast.TyAny)},
	}},
	{name: "items", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("closure", ast.TyClosure)},
	}, out: ast.TyList},
	{name: "tee", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("closure", ast.TyClosure)},
		Named:              []ast.Flag{sw("stderr", 'e')},
	}},
	{name: "sort", sig: ast.Signature{
		Named: []ast.Flag{sw("reverse", 'r'), sw("ignore-case", 'i'), sw("natural", 'n'), sw("values", 'v')},
	}},
	{name: "sort-by", sig: ast.Signature{
		RestPositional: restOf("columns", ast.TyCellPath),
		Named:          []ast.Flag{sw("reverse", 'r'), sw("ignore-case", 'i'), sw("natural", 'n')},
	}},
	{name: "uniq", sig: ast.Signature{
		Named: []ast.Flag{sw("count", 'c'), sw("repeated", 'd'), sw("ignore-case", 'i'), sw("unique", 'u')},
	}},
	{name: "uniq-by", sig: ast.Signature{
		RestPositional: restOf("columns", ast.TyCellPath),
	}},
	{name: "reverse"},
	{name: "first", sig: ast.Signature{
		OptionalPositional: []ast.PositionalArg{pos("rows", ast.TyInt)},
	}},
	{name: "last", sig: ast.Signature{
		OptionalPositional: []ast.PositionalArg{pos("rows", ast.TyInt)},
	}},
	{name: "skip", sig: ast.Signature{
		OptionalPositional: []ast.PositionalArg{pos("n", ast.TyInt)},
	}},
	{name: "take", sig: ast.Signature{
		OptionalPositional: []ast.PositionalArg{pos("n", ast.TyInt)},
	}},
	{name: "drop", sig: ast.Signature{
		OptionalPositional: []ast.PositionalArg{pos("rows", ast.TyInt)},
	}},
	{name: "length", out: ast.TyInt},
	{name: "lines", out: ast.TyList},
	{name: "columns", out: ast.TyList},
	{name: "values", out: ast.TyList},
	{name: "flatten", sig: ast.Signature{
		RestPositional: restOf("rest", ast.TyCellPath),
		Named:          []ast.Flag{sw("all", 'a')},
	}},
	{name: "compact", sig: ast.Signature{
		RestPositional: restOf("columns", ast.TyCellPath),
		Named:          []ast.Flag{sw("empty", 'e')},
	}},
	{name: "append", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("row", ast.TyAny)},
	}, out: ast.TyList},
	{name: "prepend", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("row", ast.TyAny)},
	}, out: ast.TyList},
	{name: "zip", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("other", ast.TyAny)},
	}, out: ast.TyList},
	{name: "enumerate", out: ast.TyList},
	{name: "group-by", sig: ast.Signature{
		OptionalPositional: []ast.PositionalArg{pos("grouper", ast.TyAny)},
		Named:              []ast.Flag{sw("to-table", 0)},
	}, out: ast.TyRecord},
	{name: "transpose", sig: ast.Signature{
		RestPositional: restOf("rest", ast.TyString),
		Named:          []ast.Flag{sw("header-row", 'r'), sw("ignore-titles", 'i'), sw("as-record", 'd')},
	}},
	{name: "window", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("size", ast.TyInt)},
		Named:              []ast.Flag{fl("stride", 's', ast.TyInt), sw("remainder", 'r')},
	}, out: ast.TyList},
	{name: "chunks", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("size", ast.TyInt)},
	}, out: ast.TyList},
	{name: "range", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("rows", ast.TyRange)},
	}},
	{name: "find", sig: ast.Signature{
		RestPositional: restOf("terms", ast.TyAny),
		Named:          []ast.Flag{sw("regex", 'r'), sw("ignore-case", 'i'), sw("invert", 'v'), fl("columns", 'c', ast.TyList)},
	}},
	{name: "is-empty", sig: ast.Signature{
		RestPositional: restOf("rest", ast.TyCellPath),
	}, out: ast.TyBool},
	{name: "is-not-empty", sig: ast.Signature{
		RestPositional: restOf("rest", ast.TyCellPath),
	}, out: ast.TyBool},
	{name: "default", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("value", ast.TyAny)},
		OptionalPositional: []ast.PositionalArg{pos("column", ast.TyString)},
	}},

	// Record and table access.
	{name: "get", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("cell-path", ast.TyCellPath)},
		RestPositional:     restOf("rest", ast.TyCellPath),
		Named:              []ast.Flag{sw("ignore-errors", 'i'), sw("optional", 'o'), sw("sensitive", 's')},
	}},
	{name: "select", sig: ast.Signature{
		RestPositional: restOf("columns", ast.TyCellPath),
		Named:          []ast.Flag{sw("optional", 'o'), sw("ignore-errors", 'i')},
	}},
	{name: "reject", sig: ast.Signature{
		RestPositional: restOf("columns", ast.TyCellPath),
		Named:          []ast.Flag{sw("optional", 'o'), sw("ignore-errors", 'i')},
	}},
	{name: "insert", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("field", ast.TyCellPath), pos("value", ast.TyAny)},
	}},
	{name: "update", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("field", ast.TyCellPath), pos("value", ast.TyAny)},
	}},
	{name: "upsert", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("field", ast.TyCellPath), pos("value", ast.TyAny)},
	}},
	{name: "rename", sig: ast.Signature{
		RestPositional: restOf("columns", ast.TyString),
		Named:          []ast.Flag{fl("column", 'c', ast.TyRecord), sw("block", 'b')},
	}},
	{name: "merge", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("value", ast.TyAny)},
	}},
	{name: "headers"},
	{name: "table", sig: ast.Signature{
		Named: []ast.Flag{sw("expand", 'e'), fl("width", 'w', ast.TyInt), sw("collapse", 'c'), fl("index", 'i', ast.TyAny)},
	}, out: ast.TyString},

	// Strings.
	{name: "str contains", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("string", ast.TyString)},
		RestPositional:     restOf("rest", ast.TyCellPath),
		Named:              []ast.Flag{sw("ignore-case", 'i')},
	}, out: ast.TyBool},
	{name: "str replace", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("find", ast.TyString), pos("replace", ast.TyString)},
		RestPositional:     restOf("rest", ast.TyCellPath),
		Named:              []ast.Flag{sw("all", 'a'), sw("regex", 'r'), sw("multiline", 'm'), sw("no-expand", 'n')},
	}, out: ast.TyString},
	{name: "str length", sig: ast.Signature{
		RestPositional: restOf("rest", ast.TyCellPath),
		Named:          []ast.Flag{sw("grapheme-clusters", 'g'), sw("utf-8-bytes", 'b')},
	}, out: ast.TyInt},
	{name: "str trim", sig: ast.Signature{
		RestPositional: restOf("rest", ast.TyCellPath),
		Named:          []ast.Flag{fl("char", 'c', ast.TyString), sw("left", 'l'), sw("right", 'r')},
	}, out: ast.TyString},
	{name: "str downcase", sig: ast.Signature{
		RestPositional: restOf("rest", ast.TyCellPath),
	}, out: ast.TyString},
	{name: "str upcase", sig: ast.Signature{
		RestPositional: restOf("rest", ast.TyCellPath),
	}, out: ast.TyString},
	{name: "str starts-with", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("string", ast.TyString)},
		Named:              []ast.Flag{sw("ignore-case", 'i')},
	}, out: ast.TyBool},
	{name: "str ends-with", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("string", ast.TyString)},
		Named:              []ast.Flag{sw("ignore-case", 'i')},
	}, out: ast.TyBool},
	{name: "str join", sig: ast.Signature{
		OptionalPositional: []ast.PositionalArg{pos("separator", ast.TyString)},
	}, out: ast.TyString},
	{name: "str substring", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("range", ast.TyRange)},
		RestPositional:     restOf("rest", ast.TyCellPath),
	}, out: ast.TyString},
	{name: "str index-of", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("string", ast.TyString)},
	}, out: ast.TyInt},
	{name: "split row", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("separator", ast.TyString)},
		Named:              []ast.Flag{fl("number", 'n', ast.TyInt), sw("regex", 'r')},
	}, out: ast.TyList},
	{name: "split column", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("separator", ast.TyString)},
		RestPositional:     restOf("rest", ast.TyString),
		Named:              []ast.Flag{sw("collapse-empty", 'c'), sw("regex", 'r')},
	}, out: ast.TyTable},
	{name: "split words", out: ast.TyList},
	{name: "parse", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("pattern", ast.TyString)},
		Named:              []ast.Flag{sw("regex", 'r')},
	}, out: ast.TyTable},
	{name: "format date", sig: ast.Signature{
		OptionalPositional: []ast.PositionalArg{pos("format", ast.TyString)},
	}, out: ast.TyString},

	// Conversions.
	{name: "into int", sig: ast.Signature{
		RestPositional: restOf("rest", ast.TyCellPath),
		Named:          []ast.Flag{fl("radix", 'r', ast.TyInt)},
	}, out: ast.TyInt},
	{name: "into float", sig: ast.Signature{
		RestPositional: restOf("rest", ast.TyCellPath),
	}, out: ast.TyFloat},
	{name: "into string", sig: ast.Signature{
		RestPositional: restOf("rest", ast.TyCellPath),
		Named:          []ast.Flag{fl("decimals", 'd', ast.TyInt)},
	}, out: ast.TyString},
	{name: "into bool", sig: ast.Signature{
		RestPositional: restOf("rest", ast.TyCellPath),
	}, out: ast.TyBool},
	{name: "into record", out: ast.TyRecord},
	{name: "into filesize", out: ast.TyFilesize},
	{name: "into duration", out: ast.TyDuration},
	{name: "into datetime", sig: ast.Signature{
		Named: []ast.Flag{fl("timezone", 'z', ast.TyString), fl("offset", 'o', ast.TyInt), fl("format", 'f', ast.TyString)},
	}, out: ast.TyDate},
	{name: "into binary", sig: ast.Signature{
		Named: []ast.Flag{sw("compact", 'c')},
	}, out: ast.TyBinary},

	// Math.
	{name: "math sum"},
	{name: "math avg"},
	{name: "math min"},
	{name: "math max"},
	{name: "math abs"},
	{name: "math round", sig: ast.Signature{
		Named: []ast.Flag{fl("precision", 'p', ast.TyInt)},
	}},
	{name: "math floor", out: ast.TyInt},
	{name: "math ceil", out: ast.TyInt},

	// Serialization.
	{name: "to json", sig: ast.Signature{
		Named: []ast.Flag{fl("indent", 'i', ast.TyInt), sw("raw", 'r')},
	}, out: ast.TyString},
	{name: "to csv", sig: ast.Signature{
		Named: []ast.Flag{fl("separator", 's', ast.TyString), sw("noheaders", 'n')},
	}, out: ast.TyString},
	{name: "to yaml", out: ast.TyString},
	{name: "to toml", out: ast.TyString},
	{name: "to text", sig: ast.Signature{
		Named: []ast.Flag{sw("no-newline", 'n')},
	}, out: ast.TyString},
	{name: "to nuon", sig: ast.Signature{
		Named: []ast.Flag{fl("indent", 'i', ast.TyInt), sw("raw", 'r')},
	}, out: ast.TyString},
	{name: "from json", sig: ast.Signature{
		Named: []ast.Flag{sw("objects", 'o'), sw("strict", 's')},
	}},
	{name: "from csv", sig: ast.Signature{
		Named: []ast.Flag{fl("separator", 's', ast.TyString), sw("noheaders", 'n'), sw("flexible", 0)},
	}, out: ast.TyTable},
	{name: "from yaml"},
	{name: "from toml", out: ast.TyRecord},
	{name: "from nuon"},
	{name: "from tsv", out: ast.TyTable},

	// Filesystem and processes.
	{name: "ls", sig: ast.Signature{
		OptionalPositional: []ast.PositionalArg{pos("pattern", ast.TyGlob)},
		Named: []ast.Flag{
			sw("all", 'a'), sw("long", 'l'), sw("short-names", 's'),
			sw("full-paths", 'f'), sw("du", 'd'), sw("directory", 'D'),
		},
	}, out: ast.TyTable},
	{name: "open", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("path", ast.TyFilepath)},
		RestPositional:     restOf("rest", ast.TyFilepath),
		Named:              []ast.Flag{sw("raw", 'r')},
	}},
	{name: "save", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("path", ast.TyFilepath)},
		Named:              []ast.Flag{sw("force", 'f'), sw("append", 'a'), sw("raw", 'r'), sw("progress", 'p')},
	}},
	{name: "cd", sig: ast.Signature{
		OptionalPositional: []ast.PositionalArg{pos("path", ast.TyFilepath)},
	}},
	{name: "mkdir", sig: ast.Signature{
		RestPositional: restOf("rest", ast.TyFilepath),
		Named:          []ast.Flag{sw("verbose", 'v')},
	}},
	{name: "rm", sig: ast.Signature{
		RestPositional: restOf("paths", ast.TyGlob),
		Named: []ast.Flag{
			sw("recursive", 'r'), sw("force", 'f'), sw("trash", 't'),
			sw("permanent", 'p'), sw("verbose", 'v'), sw("interactive", 'i'),
		},
	}},
	{name: "cp", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("source", ast.TyGlob), pos("destination", ast.TyFilepath)},
		Named: []ast.Flag{
			sw("recursive", 'r'), sw("force", 'f'), sw("verbose", 'v'),
			sw("update", 'u'), sw("interactive", 'i'), sw("no-symlink", 'n'),
		},
	}},
	{name: "mv", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("source", ast.TyGlob), pos("destination", ast.TyFilepath)},
		Named:              []ast.Flag{sw("force", 'f'), sw("verbose", 'v'), sw("interactive", 'i'), sw("update", 'u')},
	}},
	{name: "touch", sig: ast.Signature{
		RestPositional: restOf("files", ast.TyFilepath),
		Named:          []ast.Flag{sw("modified", 'm'), sw("access", 'a'), sw("no-create", 'c')},
	}},
	{name: "glob", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("pattern", ast.TyString)},
		Named:              []ast.Flag{fl("depth", 'd', ast.TyInt), sw("no-dir", 'D'), sw("no-file", 'F')},
	}, out: ast.TyList},
	{name: "which", sig: ast.Signature{
		RestPositional: restOf("applications", ast.TyString),
		Named:          []ast.Flag{sw("all", 'a')},
	}, out: ast.TyTable},
	{name: "watch", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("path", ast.TyFilepath), pos("closure", ast.TyClosure)},
		Named:              []ast.Flag{fl("glob", 'g', ast.TyString), sw("recursive", 'r'), sw("quiet", 'q')},
	}},
	{name: "ps", sig: ast.Signature{
		Named: []ast.Flag{sw("long", 'l')},
	}, out: ast.TyTable},
	{name: "sys", out: ast.TyRecord},
	{name: "complete", out: ast.TyRecord},
	{name: "exec", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("command", ast.TyString)},
		RestPositional:     restOf("args", ast.TyAny),
	}},
	{name: "run-external", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("command", ast.TyString)},
		RestPositional:     restOf("args", ast.TyAny),
	}},

	// Output and input.
	{name: "print", sig: ast.Signature{
		RestPositional: restOf("rest", ast.TyAny),
		Named:          []ast.Flag{sw("no-newline", 'n'), sw("stderr", 'e'), sw("raw", 'r')},
	}},
	{name: "echo", sig: ast.Signature{
		RestPositional: restOf("rest", ast.TyAny),
	}},
	{name: "ignore"},
	{name: "input", sig: ast.Signature{
		OptionalPositional: []ast.PositionalArg{pos("prompt", ast.TyString)},
		Named:              []ast.Flag{fl("bytes-until-any", 'u', ast.TyString), fl("numchar", 'n', ast.TyInt), sw("suppress-output", 's')},
	}, out: ast.TyString},
	{name: "describe", sig: ast.Signature{
		Named: []ast.Flag{sw("no-collect", 'n'), sw("detailed", 'd')},
	}, out: ast.TyString},
	{name: "help", sig: ast.Signature{
		RestPositional: restOf("rest", ast.TyString),
		Named:          []ast.Flag{fl("find", 'f', ast.TyString)},
	}},

	// Environment.
	{name: "load-env", sig: ast.Signature{
		OptionalPositional: []ast.PositionalArg{pos("variables", ast.TyRecord)},
	}},
	{name: "with-env", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("variables", ast.TyRecord), pos("body", ast.TyClosure)},
	}},
	{name: "hide-env", sig: ast.Signature{
		RestPositional: restOf("names", ast.TyString),
		Named:          []ast.Flag{sw("ignore-errors", 'i')},
	}},

	// Misc.
	{name: "sleep", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("duration", ast.TyDuration)},
		RestPositional:     restOf("rest", ast.TyDuration),
	}},
	{name: "random int", sig: ast.Signature{
		OptionalPositional: []ast.PositionalArg{pos("range", ast.TyRange)},
	}, out: ast.TyInt},
	{name: "random float", sig: ast.Signature{
		OptionalPositional: []ast.PositionalArg{pos("range", ast.TyRange)},
	}, out: ast.TyFloat},
	{name: "random bool", sig: ast.Signature{
		Named: []ast.Flag{fl("bias", 'b', ast.TyFloat)},
	}, out: ast.TyBool},
	{name: "random uuid", out: ast.TyString},
	{name: "date now", out: ast.TyDate},
	{name: "date to-timezone", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("timezone", ast.TyString)},
	}, out: ast.TyDate},
	{name: "http get", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("url", ast.TyString)},
		Named: []ast.Flag{
			fl("user", 'u', ast.TyAny), fl("password", 'p', ast.TyAny),
			fl("max-time", 'm', ast.TyDuration), fl("headers", 'H', ast.TyAny),
			sw("raw", 'r'), sw("insecure", 'k'), sw("full", 'f'), sw("allow-errors", 'e'),
		},
	}},
	{name: "http post", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("url", ast.TyString)},
		OptionalPositional: []ast.PositionalArg{pos("data", ast.TyAny)},
		Named: []ast.Flag{
			fl("content-type", 't', ast.TyString), fl("max-time", 'm', ast.TyDuration),
			fl("headers", 'H', ast.TyAny), sw("raw", 'r'), sw("insecure", 'k'), sw("allow-errors", 'e'),
		},
	}},
	{name: "start", sig: ast.Signature{
		RequiredPositional: []ast.PositionalArg{pos("path", ast.TyString)},
	}},
}
