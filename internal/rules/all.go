// Package rules holds the built-in lint rules, one file per rule. The
// runner and the fix engine never know individual rules; everything
// registers through All and the group table.
package rules

import "nulint/internal/lint"

// All returns every built-in rule ordered by id. Registration order
// breaks ties between competing fixes, so it stays stable.
func All() []lint.Rule {
	return []lint.Rule{
		chainedAppend{},
		compoundAssignment{},
		dangerousExternal{},
		eachIfToWhere{},
		loopCounter{},
		notIsEmpty{},
		redundantIgnore{},
		reflowWidePipelines{},
		regexMatchOnLiteral{},
		reverseFirstToLast{},
		uncheckedCellPathIndex{},
		unsafeDynamicRecordAccess{},
		unusedFunction{},
		useBuiltinEcho{},
		uselessStringInterp{},
		wrapExternalWithComplete{},
	}
}

// Groups names the rule sets the configuration toggles wholesale.
// Every rule is enabled until configured otherwise; the groups exist so
// a config can switch a whole family with one key. The three sets
// partition All.
var Groups = map[string][]string{
	"default": {
		"chained_append",
		"compound_assignment",
		"each_if_to_where",
		"not_is_empty_to_is_not_empty",
		"redundant_ignore",
		"regex_match_on_literal",
		"reverse_first_to_last",
		"unused_function",
		"use_builtin_echo",
	},
	"pedantic": {
		"manual_loop_counter",
		"reflow_wide_pipelines",
		"useless_string_interpolation",
	},
	"safety": {
		"dangerous_external_command",
		"unchecked_cell_path_index",
		"unsafe_dynamic_record_access",
		"wrap_external_with_complete",
	},
}
