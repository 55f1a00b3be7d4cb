package vm

import "github.com/splanck/viper-sub015/internal/il"

// const/global-address opcodes just re-surface an already-resolved operand
// as the instruction's result (spec §4.4 "Constants" group).
func doConstF64(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(vm.operand(f, in, 0))
}

func doConstStr(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(vm.operand(f, in, 0))
}

func doConstNull(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(ptrSlot(nil))
}

func doGAddr(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(vm.operand(f, in, 0))
}

// doAlloca creates a frame-scoped memory cell sized in slots (spec §4.5's
// memory model is simplified here from the literal [u8] byte array to a
// slot-addressed cell — see DESIGN.md).
func doAlloca(vm *VM, f *Frame, in *il.Instr) opResult {
	n := vm.operand(f, in, 0).I
	if n < 1 {
		n = 1
	}
	return ret(ptrSlot(&Pointer{Cell: newCell(int(n)), Offset: 0}))
}

func doLoad(vm *VM, f *Frame, in *il.Instr) opResult {
	p := vm.operand(f, in, 0).Ptr
	if p == nil || !p.inBounds() {
		return trapResult(Bounds, 0, "load through invalid pointer")
	}
	return ret(p.Cell.Slots[p.Offset])
}

func doStore(vm *VM, f *Frame, in *il.Instr) opResult {
	p := vm.operand(f, in, 0).Ptr
	if p == nil || !p.inBounds() {
		return trapResult(Bounds, 0, "store through invalid pointer")
	}
	p.Cell.Slots[p.Offset] = vm.operand(f, in, 1)
	return next()
}

func doGEP(vm *VM, f *Frame, in *il.Instr) opResult {
	base := vm.operand(f, in, 0).Ptr
	delta := vm.operand(f, in, 1).I
	if base == nil {
		return trapResult(Bounds, 0, "gep on null pointer")
	}
	return ret(ptrSlot(&Pointer{Cell: base.Cell, Offset: base.Offset + int(delta)}))
}

func doAddrOf(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(vm.operand(f, in, 0))
}
