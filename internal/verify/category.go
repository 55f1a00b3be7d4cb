package verify

import "github.com/splanck/viper-sub015/internal/il"

// typeToCategory maps a concrete IL type to the operand category it
// satisfies. Used both to classify an operand's actual category and to
// resolve CatInstrType against an instruction's own ResultTy.
func typeToCategory(t il.Type) il.OperandCategory {
	switch t {
	case il.I1:
		return il.CatI1
	case il.I16:
		return il.CatI16
	case il.I32:
		return il.CatI32
	case il.I64:
		return il.CatI64
	case il.F64:
		return il.CatF64
	case il.Ptr:
		return il.CatPtr
	case il.Str:
		return il.CatStr
	case il.Error:
		return il.CatError
	case il.ResumeTok:
		return il.CatResumeTok
	default:
		return il.CatAny
	}
}

// categoryToType is the inverse of typeToCategory for the small set of
// concrete categories an opcode ever names as its ResultCategory.
func categoryToType(c il.OperandCategory) (il.Type, bool) {
	switch c {
	case il.CatI1:
		return il.I1, true
	case il.CatI16:
		return il.I16, true
	case il.CatI32:
		return il.I32, true
	case il.CatI64:
		return il.I64, true
	case il.CatF64:
		return il.F64, true
	case il.CatPtr:
		return il.Ptr, true
	case il.CatStr:
		return il.Str, true
	case il.CatError:
		return il.Error, true
	case il.CatResumeTok:
		return il.ResumeTok, true
	default:
		return il.Void, false
	}
}

func isIntWidthCategory(c il.OperandCategory) bool {
	return c == il.CatI16 || c == il.CatI32 || c == il.CatI64
}

// valueCategory classifies a Value's category given a function-local typing
// environment (SSA id -> declared type, populated from param/result types as
// the function is walked). isIntLiteral reports whether v is a bare integer
// constant (not the i1-tagged `true`/`false` form), which the category check
// treats as compatible with i16, i32, and i64 — a literal's width is fixed by
// the opcode consuming it, not by the literal itself. An i1 operand must be
// written as `true`/`false`; a bare integer literal does not satisfy it.
func valueCategory(v il.Value, env map[uint32]il.Type) (cat il.OperandCategory, isIntLiteral bool) {
	switch v.Kind {
	case il.KindTemp:
		t, ok := env[v.Temp]
		if !ok {
			return il.CatAny, false
		}
		return typeToCategory(t), false
	case il.KindConstInt:
		if v.IsBool {
			return il.CatI1, false
		}
		return il.CatI64, true
	case il.KindConstFloat:
		return il.CatF64, false
	case il.KindConstStr:
		return il.CatStr, false
	case il.KindGlobalAddr, il.KindNullPtr:
		return il.CatPtr, false
	default:
		return il.CatAny, false
	}
}

// categoriesCompatible reports whether an operand classified as (actual,
// isIntLiteral) satisfies an opcode's declared expected category.
func categoriesCompatible(expected, actual il.OperandCategory, isIntLiteral bool) bool {
	if expected == il.CatAny || expected == il.CatDynamic {
		return true
	}
	if isIntLiteral && isIntWidthCategory(expected) {
		return true
	}
	return expected == actual
}
