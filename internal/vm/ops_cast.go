package vm

import (
	"math"

	"github.com/splanck/viper-sub015/internal/il"
)

func doSitofp(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(floatSlot(float64(vm.operand(f, in, 0).I)))
}

func doFptosi(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(intSlot(int64(vm.operand(f, in, 0).F), false))
}

func doCastSiToFp(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(floatSlot(float64(vm.operand(f, in, 0).I)))
}

func doCastUiToFp(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(floatSlot(float64(uint64(vm.operand(f, in, 0).I))))
}

// doCastFpToSiRteChk rounds to nearest (ties to even, via math.RoundToEven)
// and traps InvalidCast if the source is NaN, DomainError if it is Inf or out
// of i64 range (spec §4.4: "RTE" = round-to-even, "Chk" = checked).
func doCastFpToSiRteChk(vm *VM, f *Frame, in *il.Instr) opResult {
	v := vm.operand(f, in, 0).F
	if math.IsNaN(v) {
		return trapResult(InvalidCast, 0, "float-to-signed-int cast of NaN")
	}
	if math.IsInf(v, 0) {
		return trapResult(DomainError, 0, "float-to-signed-int cast of Inf")
	}
	r := math.RoundToEven(v)
	if r < math.MinInt64 || r >= math.MaxInt64 {
		return trapResult(DomainError, 0, "float-to-signed-int cast out of range")
	}
	return ret(intSlot(int64(r), false))
}

func doCastFpToUiRteChk(vm *VM, f *Frame, in *il.Instr) opResult {
	v := vm.operand(f, in, 0).F
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return trapResult(DomainError, 0, "float-to-unsigned-int cast of NaN/Inf/negative")
	}
	r := math.RoundToEven(v)
	if r >= math.MaxUint64 {
		return trapResult(DomainError, 0, "float-to-unsigned-int cast out of range")
	}
	return ret(intSlot(int64(uint64(r)), false))
}

// doCastSiNarrowChk traps Overflow if narrowing to the instruction's result
// width loses the value (spec §4.4 "narrow.chk").
func doCastSiNarrowChk(vm *VM, f *Frame, in *il.Instr) opResult {
	v := vm.operand(f, in, 0).I
	narrowed := wrap(v, in.ResultTy)
	if narrowed != v {
		return trapResult(Overflow, 0, "signed narrowing cast loses value")
	}
	return ret(intSlot(narrowed, false))
}

func doCastUiNarrowChk(vm *VM, f *Frame, in *il.Instr) opResult {
	v := uint64(vm.operand(f, in, 0).I)
	width := in.ResultTy.BitWidth()
	if width > 0 && width < 64 {
		mask := uint64(1)<<uint(width) - 1
		if v&^mask != 0 {
			return trapResult(Overflow, 0, "unsigned narrowing cast loses value")
		}
	}
	return ret(intSlot(int64(v), false))
}

func doTrunc1(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(boolSlot(vm.operand(f, in, 0).I != 0))
}

func doZext1(vm *VM, f *Frame, in *il.Instr) opResult {
	return ret(intSlot(vm.operand(f, in, 0).I, false))
}
