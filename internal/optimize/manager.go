package optimize

import (
	"fmt"

	"github.com/splanck/viper-sub015/internal/il"
	"github.com/splanck/viper-sub015/internal/source"
	"github.com/splanck/viper-sub015/internal/verify"
)

// Manager runs a fixed sequence of passes over a module. VerifyEachPass
// gates every pass behind a re-verification of the module (P8): a pass that
// leaves the module unverifiable is rejected and the manager stops rather
// than handing a broken module to the VM.
type Manager struct {
	passes         []any // FunctionPass or ModulePass
	VerifyEachPass bool
}

// NewManager builds a Manager from an ordered pass list. Passing neither a
// FunctionPass nor a ModulePass panics — a programming error, not a
// malformed-input condition.
func NewManager(verifyEachPass bool, passes ...any) *Manager {
	for _, p := range passes {
		switch p.(type) {
		case FunctionPass, ModulePass:
		default:
			panic(fmt.Sprintf("optimize: %T is neither a FunctionPass nor a ModulePass", p))
		}
	}
	return &Manager{passes: passes, VerifyEachPass: verifyEachPass}
}

// Result records one pass's outcome for diagnostics and tests.
type Result struct {
	Pass      string
	Changed   bool
	Preserved []Analysis // analyses still valid after this pass, if it changed anything
}

// Run applies every pass in order, re-verifying after each one when
// VerifyEachPass is set. It stops and returns an error at the first pass
// whose output fails verification. Passes mutate m in place and Run does
// not roll back: on error, m holds the failing pass's output. A caller that
// needs the original module must copy it before calling Run (see DESIGN.md).
func (mgr *Manager) Run(m *il.Module) ([]Result, error) {
	valid := []Analysis{AnalysisSSA, AnalysisDominance, AnalysisReachability}
	results := make([]Result, 0, len(mgr.passes))

	for _, p := range mgr.passes {
		name, changed, declared := runOne(p, m)
		if changed {
			kept := make([]Analysis, 0, len(valid))
			for _, a := range valid {
				if preserves(declared, a) {
					kept = append(kept, a)
				}
			}
			valid = kept
		}
		results = append(results, Result{Pass: name, Changed: changed, Preserved: append([]Analysis(nil), valid...)})

		if mgr.VerifyEachPass {
			if diags := verify.Verify(m); diags.HasErrors() {
				return results, fmt.Errorf("optimize: pass %q produced an unverifiable module: %s", name, firstError(diags))
			}
		}
	}
	return results, nil
}

func firstError(diags source.List) string {
	errs := diags.Errors()
	if len(errs) == 0 {
		return "unknown error"
	}
	return errs[0].String()
}

func runOne(p any, m *il.Module) (name string, changed bool, declaredPreserves []Analysis) {
	switch pass := p.(type) {
	case FunctionPass:
		for _, fn := range m.Functions {
			if pass.RunFunction(fn) {
				changed = true
			}
		}
		return pass.Name(), changed, pass.Preserves()
	case ModulePass:
		changed = pass.RunModule(m)
		return pass.Name(), changed, pass.Preserves()
	default:
		return "unknown", false, nil
	}
}
