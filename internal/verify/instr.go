package verify

import (
	"github.com/splanck/viper-sub015/internal/il"
	"github.com/splanck/viper-sub015/internal/source"
)

// checkInstr enforces the opcode-indexed rules of spec §4.3
// "Instruction-level": operand count, operand category, result arity,
// result type, and the handful of opcode-specific shape rules (Load/Store/
// GEP pointer bases, compare-yields-i1, cast width relations) the table
// alone can't express.
func checkInstr(m *il.Module, f *il.Function, b *il.BasicBlock, in *il.Instr, env map[uint32]il.Type, diags *source.List) {
	switch in.Op {
	case il.OpCall, il.OpCallIndirect:
		checkCall(m, f, b, in, env, diags)
		return
	}

	info := il.Info(in.Op)
	if info.Mnemonic == "" {
		errorAt(diags, "VER011", f.Name, b.Label, "unrecognized opcode in instruction stream")
		return
	}

	n := len(in.Operands)
	if n < info.MinOperands || (info.MaxOperands >= 0 && n > info.MaxOperands) {
		errorAt(diags, "VER012", f.Name, b.Label,
			"%s takes %d operand(s), got %d", in.Op, info.MinOperands, n)
	}

	for i, opd := range in.Operands {
		if i >= len(info.OperandCats) {
			break
		}
		expected := info.OperandCats[i]
		if expected == il.CatInstrType {
			expected = typeToCategory(in.ResultTy)
		}
		cat, isLit := valueCategory(opd, env)
		if !categoriesCompatible(expected, cat, isLit) {
			errorAt(diags, "VER013", f.Name, b.Label,
				"%s operand %d has a type incompatible with the opcode's expected category", in.Op, i)
		}
	}

	checkResultArity(f, b, in, info, diags)
	checkOpcodeSpecific(f, b, in, diags)
}

func checkResultArity(f *il.Function, b *il.BasicBlock, in *il.Instr, info il.OpInfo, diags *source.List) {
	switch info.ResultArity {
	case il.ResultNone:
		if in.HasResult {
			errorAt(diags, "VER014", f.Name, b.Label, "%s must not produce a result", in.Op)
		}
		return
	case il.ResultOne:
		if !in.HasResult {
			errorAt(diags, "VER015", f.Name, b.Label, "%s must produce a result", in.Op)
			return
		}
	case il.ResultOptional:
		if !in.HasResult {
			return
		}
	}

	want := info.ResultCategory
	if want == il.CatInstrType {
		return // result type is definitionally in.ResultTy
	}
	wantTy, ok := categoryToType(want)
	if ok && in.ResultTy != wantTy {
		errorAt(diags, "VER016", f.Name, b.Label,
			"%s result type must be %s, got %s", in.Op, wantTy, in.ResultTy)
	}
}

// checkOpcodeSpecific covers the rules spec §4.3 calls out by name rather
// than by table-driven category: narrowing-cast width relations. The
// Load/Store/GEP pointer-base and compare-yields-i1 rules are already
// enforced generically by their table entries (CatPtr operand categories,
// CatI1 result categories) so they need no special case here.
func checkOpcodeSpecific(f *il.Function, b *il.BasicBlock, in *il.Instr, diags *source.List) {
	switch in.Op {
	case il.OpCastSiNarrowChk, il.OpCastUiNarrowChk:
		if !in.ResultTy.IsInteger() || in.ResultTy.BitWidth() >= 64 {
			errorAt(diags, "VER017", f.Name, b.Label,
				"%s must narrow to an integer type smaller than i64, got %s", in.Op, in.ResultTy)
		}
	case il.OpAlloca:
		if in.ResultTy == il.Void {
			errorAt(diags, "VER018", f.Name, b.Label, "alloca must declare the allocated type via the result type suffix")
		}
	}
}

// checkCall cross-checks a Call's callee (or a CallIndirect's function
// pointer operand) against the module's known names; Call/CallIndirect
// bypass the generic operand-category loop because their argument lists are
// determined by the callee's own signature, not a fixed table entry.
func checkCall(m *il.Module, f *il.Function, b *il.BasicBlock, in *il.Instr, env map[uint32]il.Type, diags *source.List) {
	if in.Op == il.OpCallIndirect {
		if len(in.Operands) == 0 {
			errorAt(diags, "VER019", f.Name, b.Label, "call.indirect requires a function-pointer operand")
			return
		}
		cat, _ := valueCategory(in.Operands[0], env)
		if cat != il.CatPtr && cat != il.CatAny {
			errorAt(diags, "VER020", f.Name, b.Label, "call.indirect target must be a pointer value")
		}
		return
	}
	if !m.ResolveName(in.Callee) {
		errorAt(diags, "VER021", f.Name, b.Label, "call target %q does not resolve to any extern, function, or global", in.Callee)
	}
}
