package vm

import "github.com/splanck/viper-sub015/internal/il"

// val resolves an operand Value to a runtime Slot. Temp reads the current
// frame's register file; the constant/global variants are self-contained and
// never touch f, but take it for a uniform call signature across every
// handler in this package.
func (vm *VM) val(f *Frame, v il.Value) Slot {
	switch v.Kind {
	case il.KindTemp:
		return f.get(v.Temp)
	case il.KindConstInt:
		return intSlot(v.Int, v.IsBool)
	case il.KindConstFloat:
		return floatSlot(v.Float)
	case il.KindConstStr:
		return strSlot(vm.internString(v.Str))
	case il.KindGlobalAddr:
		return vm.globalAddr(v.Global)
	case il.KindNullPtr:
		return ptrSlot(nil)
	default:
		return VoidSlot
	}
}

// operand is shorthand for resolving the i'th operand of in.
func (vm *VM) operand(f *Frame, in *il.Instr, i int) Slot {
	return vm.val(f, in.Operands[i])
}
