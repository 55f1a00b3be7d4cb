package vm

import "github.com/splanck/viper-sub015/internal/il"

// wrap narrows a wrapping-arithmetic result back to the instruction's result
// width, matching spec §4.4's "wrapping" integer arithmetic group (Add, Sub,
// Mul, bitwise, shifts never trap).
func wrap(v int64, ty il.Type) int64 {
	switch ty {
	case il.I16:
		return int64(int16(v))
	case il.I32:
		return int64(int32(v))
	default:
		return v
	}
}

func doAdd(vm *VM, f *Frame, in *il.Instr) opResult {
	a, b := vm.operand(f, in, 0), vm.operand(f, in, 1)
	return ret(intSlot(wrap(a.I+b.I, in.ResultTy), false))
}

func doSub(vm *VM, f *Frame, in *il.Instr) opResult {
	a, b := vm.operand(f, in, 0), vm.operand(f, in, 1)
	return ret(intSlot(wrap(a.I-b.I, in.ResultTy), false))
}

func doMul(vm *VM, f *Frame, in *il.Instr) opResult {
	a, b := vm.operand(f, in, 0), vm.operand(f, in, 1)
	return ret(intSlot(wrap(a.I*b.I, in.ResultTy), false))
}

func doSDiv(vm *VM, f *Frame, in *il.Instr) opResult {
	a, b := vm.operand(f, in, 0), vm.operand(f, in, 1)
	if b.I == 0 {
		return trapResult(DivideByZero, 0, "sdiv by zero")
	}
	return ret(intSlot(wrap(a.I/b.I, in.ResultTy), false))
}

func doUDiv(vm *VM, f *Frame, in *il.Instr) opResult {
	a, b := vm.operand(f, in, 0), vm.operand(f, in, 1)
	if b.I == 0 {
		return trapResult(DivideByZero, 0, "udiv by zero")
	}
	return ret(intSlot(wrap(int64(uint64(a.I)/uint64(b.I)), in.ResultTy), false))
}

func doSRem(vm *VM, f *Frame, in *il.Instr) opResult {
	a, b := vm.operand(f, in, 0), vm.operand(f, in, 1)
	if b.I == 0 {
		return trapResult(DivideByZero, 0, "srem by zero")
	}
	return ret(intSlot(wrap(a.I%b.I, in.ResultTy), false))
}

func doURem(vm *VM, f *Frame, in *il.Instr) opResult {
	a, b := vm.operand(f, in, 0), vm.operand(f, in, 1)
	if b.I == 0 {
		return trapResult(DivideByZero, 0, "urem by zero")
	}
	return ret(intSlot(wrap(int64(uint64(a.I)%uint64(b.I)), in.ResultTy), false))
}

func doAnd(vm *VM, f *Frame, in *il.Instr) opResult {
	a, b := vm.operand(f, in, 0), vm.operand(f, in, 1)
	return ret(intSlot(wrap(a.I&b.I, in.ResultTy), false))
}

func doOr(vm *VM, f *Frame, in *il.Instr) opResult {
	a, b := vm.operand(f, in, 0), vm.operand(f, in, 1)
	return ret(intSlot(wrap(a.I|b.I, in.ResultTy), false))
}

func doXor(vm *VM, f *Frame, in *il.Instr) opResult {
	a, b := vm.operand(f, in, 0), vm.operand(f, in, 1)
	return ret(intSlot(wrap(a.I^b.I, in.ResultTy), false))
}

func doShl(vm *VM, f *Frame, in *il.Instr) opResult {
	a, b := vm.operand(f, in, 0), vm.operand(f, in, 1)
	return ret(intSlot(wrap(a.I<<uint(b.I&63), in.ResultTy), false))
}

func doLShr(vm *VM, f *Frame, in *il.Instr) opResult {
	a, b := vm.operand(f, in, 0), vm.operand(f, in, 1)
	return ret(intSlot(wrap(int64(uint64(a.I)>>uint(b.I&63)), in.ResultTy), false))
}

func doAShr(vm *VM, f *Frame, in *il.Instr) opResult {
	a, b := vm.operand(f, in, 0), vm.operand(f, in, 1)
	return ret(intSlot(wrap(a.I>>uint(b.I&63), in.ResultTy), false))
}

// checked arithmetic (spec §4.4 "checked integer" group): trap with Overflow
// on wraparound, detected via sign-of-operands comparison since the IL's
// widest integer is i64 and Go has no wider native type to widen into; an
// i16/i32 result also traps when it does not fit the result width.
func doIAddOvf(vm *VM, f *Frame, in *il.Instr) opResult {
	a, b := vm.operand(f, in, 0), vm.operand(f, in, 1)
	sum := a.I + b.I
	if (b.I > 0 && sum < a.I) || (b.I < 0 && sum > a.I) || wrap(sum, in.ResultTy) != sum {
		return trapResult(Overflow, 0, "integer addition overflow")
	}
	return ret(intSlot(wrap(sum, in.ResultTy), false))
}

func doISubOvf(vm *VM, f *Frame, in *il.Instr) opResult {
	a, b := vm.operand(f, in, 0), vm.operand(f, in, 1)
	diff := a.I - b.I
	if (b.I < 0 && diff < a.I) || (b.I > 0 && diff > a.I) || wrap(diff, in.ResultTy) != diff {
		return trapResult(Overflow, 0, "integer subtraction overflow")
	}
	return ret(intSlot(wrap(diff, in.ResultTy), false))
}

func doIMulOvf(vm *VM, f *Frame, in *il.Instr) opResult {
	a, b := vm.operand(f, in, 0), vm.operand(f, in, 1)
	prod := a.I * b.I
	if (a.I != 0 && prod/a.I != b.I) || wrap(prod, in.ResultTy) != prod {
		return trapResult(Overflow, 0, "integer multiplication overflow")
	}
	return ret(intSlot(wrap(prod, in.ResultTy), false))
}

func doSDivChk0(vm *VM, f *Frame, in *il.Instr) opResult { return doSDiv(vm, f, in) }
func doUDivChk0(vm *VM, f *Frame, in *il.Instr) opResult { return doUDiv(vm, f, in) }
func doSRemChk0(vm *VM, f *Frame, in *il.Instr) opResult { return doSRem(vm, f, in) }
func doURemChk0(vm *VM, f *Frame, in *il.Instr) opResult { return doURem(vm, f, in) }

func doIdxChk(vm *VM, f *Frame, in *il.Instr) opResult {
	idx, bound := vm.operand(f, in, 0), vm.operand(f, in, 1)
	if idx.I < 0 || idx.I >= bound.I {
		return trapResult(Bounds, 0, "index out of bounds")
	}
	return ret(intSlot(idx.I, false))
}

// integer compares (spec §4.4: result is always i1).
func doICmpEq(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(boolSlot(vm.operand(f, in, 0).I == vm.operand(f, in, 1).I))
}

func doICmpNe(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(boolSlot(vm.operand(f, in, 0).I != vm.operand(f, in, 1).I))
}

func doSCmpLT(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(boolSlot(vm.operand(f, in, 0).I < vm.operand(f, in, 1).I))
}

func doSCmpLE(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(boolSlot(vm.operand(f, in, 0).I <= vm.operand(f, in, 1).I))
}

func doSCmpGT(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(boolSlot(vm.operand(f, in, 0).I > vm.operand(f, in, 1).I))
}

func doSCmpGE(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(boolSlot(vm.operand(f, in, 0).I >= vm.operand(f, in, 1).I))
}

func doUCmpLT(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(boolSlot(uint64(vm.operand(f, in, 0).I) < uint64(vm.operand(f, in, 1).I)))
}

func doUCmpLE(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(boolSlot(uint64(vm.operand(f, in, 0).I) <= uint64(vm.operand(f, in, 1).I)))
}

func doUCmpGT(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(boolSlot(uint64(vm.operand(f, in, 0).I) > uint64(vm.operand(f, in, 1).I)))
}

func doUCmpGE(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(boolSlot(uint64(vm.operand(f, in, 0).I) >= uint64(vm.operand(f, in, 1).I)))
}
