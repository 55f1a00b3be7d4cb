package vm

import (
	"math"

	"github.com/splanck/viper-sub015/internal/il"
)

func doFAdd(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(floatSlot(vm.operand(f, in, 0).F + vm.operand(f, in, 1).F))
}

func doFSub(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(floatSlot(vm.operand(f, in, 0).F - vm.operand(f, in, 1).F))
}

func doFMul(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(floatSlot(vm.operand(f, in, 0).F * vm.operand(f, in, 1).F))
}

func doFDiv(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(floatSlot(vm.operand(f, in, 0).F / vm.operand(f, in, 1).F))
}

// float compares (spec §4.4): Ord/Uno test for NaN rather than compare
// magnitude; the rest follow IEEE 754 ordered-comparison semantics, which is
// exactly what Go's native float64 operators already implement.
func doFCmpEQ(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(boolSlot(vm.operand(f, in, 0).F == vm.operand(f, in, 1).F))
}

func doFCmpNE(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(boolSlot(vm.operand(f, in, 0).F != vm.operand(f, in, 1).F))
}

func doFCmpLT(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(boolSlot(vm.operand(f, in, 0).F < vm.operand(f, in, 1).F))
}

func doFCmpLE(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(boolSlot(vm.operand(f, in, 0).F <= vm.operand(f, in, 1).F))
}

func doFCmpGT(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(boolSlot(vm.operand(f, in, 0).F > vm.operand(f, in, 1).F))
}

func doFCmpGE(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(boolSlot(vm.operand(f, in, 0).F >= vm.operand(f, in, 1).F))
}

func doFCmpOrd(vm *VM, f *Frame, in *il.Instr) opResult {
	a, b := vm.operand(f, in, 0).F, vm.operand(f, in, 1).F
	return ret(boolSlot(!math.IsNaN(a) && !math.IsNaN(b)))
}

func doFCmpUno(vm *VM, f *Frame, in *il.Instr) opResult {
	a, b := vm.operand(f, in, 0).F, vm.operand(f, in, 1).F
	return ret(boolSlot(math.IsNaN(a) || math.IsNaN(b)))
}
