// Package optimize implements the pass-manager shell spec §4.8 describes:
// a sequence of semantics-preserving transformations over an il.Module,
// each declaring which analyses it preserves, run under a gate that
// re-verifies the module after every pass (the testable property P8:
// "verified-in implies verified-out, and VM-observable output is
// unchanged"). Its table-driven, named-check shape mirrors
// internal/verify.Verify — a pass is to a module what a verifier check is to
// an instruction, generalized to full-module rewrites instead of read-only
// validation.
package optimize

import "github.com/splanck/viper-sub015/internal/il"

// Analysis names a property a pass may depend on or preserve. The set is
// open (any string is legal) since new passes may introduce new analyses;
// the manager only ever compares these by value.
type Analysis string

const (
	AnalysisSSA          Analysis = "ssa"
	AnalysisDominance    Analysis = "dominance"
	AnalysisReachability Analysis = "reachability"
)

// FunctionPass rewrites one function at a time. Changed reports whether it
// modified fn, so the manager can decide whether downstream analyses need
// recomputing.
type FunctionPass interface {
	Name() string
	Preserves() []Analysis
	RunFunction(fn *il.Function) (changed bool)
}

// ModulePass rewrites module-level structure (externs, globals, the
// function list itself — e.g. removing an unreferenced internal function).
type ModulePass interface {
	Name() string
	Preserves() []Analysis
	RunModule(m *il.Module) (changed bool)
}

// Preserves returns true if analyses a was declared preserved by a pass's
// Preserves() list.
func preserves(list []Analysis, a Analysis) bool {
	for _, x := range list {
		if x == a {
			return true
		}
	}
	return false
}
