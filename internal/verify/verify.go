// Package verify implements the IL verifier (spec.md §4.3): module-, block-,
// instruction-, exception-handling-, and SSA-level well-formedness checks
// over an *il.Module. It never mutates the module; it only produces
// diagnostics, mirroring the teacher's internal/types.TypeChecker shape
// (collect errors, return them alongside or instead of a result) but keyed
// to IL structure rather than AST structure.
package verify

import (
	"fmt"

	"github.com/splanck/viper-sub015/internal/abi"
	"github.com/splanck/viper-sub015/internal/il"
	"github.com/splanck/viper-sub015/internal/source"
)

// Verify checks m against every rule in spec §4.3 and returns the combined
// diagnostic list. Callers must treat diags.HasErrors() as "verification
// failed" per spec §7's propagation policy: hard errors abort, advisories do
// not.
func Verify(m *il.Module) source.List {
	var diags source.List
	checkModuleLevel(m, &diags)
	for _, f := range m.Functions {
		if f.Linkage == il.Import || len(f.Blocks) == 0 {
			// A zero-block export/internal function is already reported as
			// VER004 by checkModuleLevel; checkFunction assumes f.Entry()
			// is non-nil and must not run on a bodyless function.
			continue
		}
		checkFunction(m, f, &diags)
	}
	return diags
}

func errorAt(diags *source.List, code, fn, block string, format string, args ...any) {
	*diags = append(*diags, &source.Diagnostic{
		Code: code, Phase: "verify", Severity: source.SeverityError,
		Function: fn, Block: block, Message: fmt.Sprintf(format, args...),
	})
}

func advisoryAt(diags *source.List, code, fn, block string, format string, args ...any) {
	*diags = append(*diags, &source.Diagnostic{
		Code: code, Phase: "verify", Severity: source.SeverityAdvisory,
		Function: fn, Block: block, Message: fmt.Sprintf(format, args...),
	})
}

// checkModuleLevel enforces name uniqueness, the extern/ABI registry
// cross-check, and per-function linkage rules (spec §4.3 "Module-level").
func checkModuleLevel(m *il.Module, diags *source.List) {
	seen := map[string]bool{}
	note := func(name string) {
		if seen[name] {
			errorAt(diags, "VER001", "", "", "duplicate top-level name %q", name)
		}
		seen[name] = true
	}
	for _, e := range m.Externs {
		note(e.Name)
		if d, ok := abi.Lookup(e.Name); ok {
			if !d.Matches(e.Ret, e.Params) {
				errorAt(diags, "VER002", "", "", "extern %q signature does not match runtime ABI registry entry", e.Name)
			}
		}
	}
	for _, g := range m.Globals {
		note(g.Name)
	}
	for _, f := range m.Functions {
		note(f.Name)
		switch f.Linkage {
		case il.Import:
			if len(f.Blocks) != 0 {
				errorAt(diags, "VER003", f.Name, "", "import-linkage function must have no body")
			}
		case il.Export, il.Internal:
			if len(f.Blocks) == 0 {
				errorAt(diags, "VER004", f.Name, "", "function must have exactly one entry block")
				continue
			}
			for _, b := range f.Blocks {
				if !b.Terminated() {
					errorAt(diags, "VER005", f.Name, b.Label, "block %q does not end with a terminator", b.Label)
				}
			}
		}
	}
}

// checkFunction runs block-, instruction-, EH-, and SSA-level checks for one
// function body.
func checkFunction(m *il.Module, f *il.Function, diags *source.List) {
	if len(f.Entry().Params) != 0 {
		errorAt(diags, "VER006", f.Name, f.Entry().Label, "entry block must take no parameters")
	}

	blocksByLabel := make(map[string]*il.BasicBlock, len(f.Blocks))
	for _, b := range f.Blocks {
		blocksByLabel[b.Label] = b
	}

	env := make(map[uint32]il.Type, f.MaxSSAID()+1)
	for _, p := range f.Params {
		env[p.ID] = p.Type
	}
	for _, b := range f.Blocks {
		for _, p := range b.Params {
			env[p.ID] = p.Type
		}
	}

	for _, b := range f.Blocks {
		checkBlockTerminator(f, b, diags)
		checkBranchTargets(f, b, blocksByLabel, env, diags)
		for _, in := range b.Instructions {
			checkInstr(m, f, b, in, env, diags)
		}
	}

	checkSSA(f, diags)
	checkEH(f, diags)
}

// checkBlockTerminator enforces that a block's terminator, if present, is
// one of the opcodes spec §4.3 allows to end a block.
func checkBlockTerminator(f *il.Function, b *il.BasicBlock, diags *source.List) {
	term := b.Terminator()
	if term == nil {
		return // missing-terminator already reported at module level
	}
	switch term.Op {
	case il.OpRet, il.OpBr, il.OpCBr, il.OpSwitchI32,
		il.OpTrap, il.OpTrapKind, il.OpTrapErr, il.OpTrapFromErr,
		il.OpResumeSame, il.OpResumeNext, il.OpResumeLabel:
		return
	default:
		errorAt(diags, "VER007", f.Name, b.Label, "block terminator %q is not a valid terminating opcode", term.Op)
	}
}

// checkBranchTargets verifies every Labels entry on the block's terminator
// resolves to a block of the same function and that the matching BrArgs
// entry's count and types agree with the target's parameter list.
func checkBranchTargets(f *il.Function, b *il.BasicBlock, blocks map[string]*il.BasicBlock, env map[uint32]il.Type, diags *source.List) {
	term := b.Terminator()
	if term == nil {
		return
	}
	for i, label := range term.Labels {
		target, ok := blocks[label]
		if !ok {
			errorAt(diags, "VER008", f.Name, b.Label, "branch target %q does not exist in function %q", label, f.Name)
			continue
		}
		var args []il.Value
		if i < len(term.BrArgs) {
			args = term.BrArgs[i]
		}
		if len(args) != len(target.Params) {
			errorAt(diags, "VER009", f.Name, b.Label,
				"branch to %q passes %d argument(s), target expects %d", label, len(args), len(target.Params))
			continue
		}
		for j, param := range target.Params {
			cat, isLit := valueCategory(args[j], env)
			want := typeToCategory(param.Type)
			if !categoriesCompatible(want, cat, isLit) {
				errorAt(diags, "VER010", f.Name, b.Label,
					"branch argument %d to %q has type incompatible with parameter %%%d: %s", j, label, param.ID, param.Type)
			}
		}
	}
}
