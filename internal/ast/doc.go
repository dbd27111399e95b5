// Package ast holds the working set: the parser's arenas of blocks,
// declarations, and variables, the expression tree, and the read-only
// capability layer rules are written against.
//
// # Structure
//
// Blocks, declarations, and variables live in flat arenas addressed by
// 1-based ids (the zero id means "none"). Expressions form ownership
// trees hanging off pipeline elements; an expression never points at
// another block directly, only by BlockID, so the whole structure is
// acyclic and traversals need no visit marks.
//
// # Traversal
//
// FlatMap, FindMap, and TraverseWithParent walk depth-first pre-order
// from a block, descending into closures, subexpressions, and row
// conditions through the working set. Visit order is fixed, which keeps
// diagnostic output reproducible run to run.
//
// # Capability layer
//
// Rules never switch on ExprKind chains of their own; the query files
// expose the operations rules actually need (IsEmptyList, ElseBranch,
// FindCommandClusters, ...). Adding a rule that needs a new shape means
// growing this layer, not pattern-matching in the rule.
package ast
