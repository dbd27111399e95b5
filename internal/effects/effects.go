// Package effects carries static metadata about external commands: what
// a command may do to the world and under which argument shapes. Rules
// consult it to decide whether an unguarded external call is worth a
// diagnostic. The tables are deliberately coarse; they describe common
// tools, not every flag of every version.
package effects

import (
	"nulint/internal/ast"
)

// Effect classifies one observable consequence of running a command.
type Effect uint8

const (
	ModifiesFileSystem Effect = iota
	ModifiesNetworkState
	StreamingOutput
	SlowStreamingOutput
	NoDataInStdout

	// The remaining effects describe the command as a whole rather than
	// its data flow.
	LikelyErrors
	FailsInNormalCircumstances
	MayCauseDataLoss
	Dangerous
)

var effectNames = [...]string{
	ModifiesFileSystem:         "modifies-file-system",
	ModifiesNetworkState:       "modifies-network-state",
	StreamingOutput:            "streaming-output",
	SlowStreamingOutput:        "slow-streaming-output",
	NoDataInStdout:             "no-data-in-stdout",
	LikelyErrors:               "likely-errors",
	FailsInNormalCircumstances: "fails-in-normal-circumstances",
	MayCauseDataLoss:           "may-cause-data-loss",
	Dangerous:                  "dangerous",
}

func (e Effect) String() string {
	if int(e) < len(effectNames) {
		return effectNames[e]
	}
	return "unknown"
}

// Common reports whether the effect describes the command as a whole
// rather than what flows through stdout.
func (e Effect) Common() bool {
	return e >= LikelyErrors
}

// entry couples an effect with the argument shape that triggers it. A
// nil predicate means the effect always applies.
type entry struct {
	effect Effect
	when   Predicate
}

// table is the flat command index, assembled from the per-domain maps.
var table = mergeTables(
	archiveEffects,
	fsEffects,
	gitEffects,
	networkEffects,
	packageEffects,
	processEffects,
	shellEffects,
	textEffects,
)

func mergeTables(parts ...map[string][]entry) map[string][]entry {
	out := make(map[string][]entry, 64)
	for _, p := range parts {
		for name, es := range p {
			out[name] = append(out[name], es...)
		}
	}
	return out
}

// Known reports whether the tables say anything about name.
func Known(name string) bool {
	_, ok := table[name]
	return ok
}

// HasExternalSideEffect reports whether invoking name with args carries
// the given effect.
func HasExternalSideEffect(ws *ast.WorkingSet, name string, args []ast.ExternalArg, effect Effect) bool {
	for _, e := range table[name] {
		if e.effect != effect {
			continue
		}
		if e.when == nil || e.when(ws, args) {
			return true
		}
	}
	return false
}

// ActiveEffects returns every effect that applies to this invocation,
// in table order.
func ActiveEffects(ws *ast.WorkingSet, name string, args []ast.ExternalArg) []Effect {
	var out []Effect
	for _, e := range table[name] {
		if e.when == nil || e.when(ws, args) {
			out = append(out, e.effect)
		}
	}
	return out
}

// IsExternalCommandSafe reports whether name is free of effects a
// pipeline would want to guard against. Commands the tables have never
// heard of count as safe; pure streaming output does too.
func IsExternalCommandSafe(name string) bool {
	for _, e := range table[name] {
		switch e.effect {
		case StreamingOutput, SlowStreamingOutput, NoDataInStdout:
		default:
			return false
		}
	}
	return true
}
