package vm

import "github.com/splanck/viper-sub015/internal/il"

func resolveArgs(vm *VM, f *Frame, vals []il.Value) []Slot {
	if len(vals) == 0 {
		return nil
	}
	args := make([]Slot, len(vals))
	for i, v := range vals {
		args[i] = vm.val(f, v)
	}
	return args
}

func target(f *Frame, label string) *il.BasicBlock {
	b, ok := f.Fn.Block(label)
	if !ok {
		return nil
	}
	return b
}

func doBr(vm *VM, f *Frame, in *il.Instr) opResult {
	tgt := target(f, in.Labels[0])
	return jumpTo(tgt, resolveArgs(vm, f, in.BrArgs[0]))
}

func doCBr(vm *VM, f *Frame, in *il.Instr) opResult {
	cond := vm.operand(f, in, 0)
	if cond.Bool() {
		return jumpTo(target(f, in.Labels[0]), resolveArgs(vm, f, in.BrArgs[0]))
	}
	return jumpTo(target(f, in.Labels[1]), resolveArgs(vm, f, in.BrArgs[1]))
}

// doSwitchI32 matches the scrutinee against SwitchVals in order, falling
// back to Labels[0] (the default) — spec §4.4: "Labels[0] is always the
// default arm".
func doSwitchI32(vm *VM, f *Frame, in *il.Instr) opResult {
	scrut := int32(vm.operand(f, in, 0).I)
	for i, cv := range in.SwitchVals {
		if cv == scrut {
			idx := i + 1
			return jumpTo(target(f, in.Labels[idx]), resolveArgs(vm, f, in.BrArgs[idx]))
		}
	}
	return jumpTo(target(f, in.Labels[0]), resolveArgs(vm, f, in.BrArgs[0]))
}

func doRet(vm *VM, f *Frame, in *il.Instr) opResult {
	if len(in.Operands) == 0 {
		return retFromFunction(VoidSlot)
	}
	return retFromFunction(vm.operand(f, in, 0))
}

func doTrap(vm *VM, f *Frame, in *il.Instr) opResult {
	return trapResult(RuntimeError, 0, "explicit trap")
}

func doTrapKind(vm *VM, f *Frame, in *il.Instr) opResult {
	kind := TrapKind(vm.operand(f, in, 0).I)
	return trapResult(kind, 0, "trap."+kind.String())
}

func doTrapErr(vm *VM, f *Frame, in *il.Instr) opResult {
	e := vm.operand(f, in, 0)
	if e.Err == nil {
		return trapResult(RuntimeError, 0, "trap.err with no carried error")
	}
	return opResult{tag: rTrap, trap: *e.Err, msg: "trap.err"}
}

func doTrapFromErr(vm *VM, f *Frame, in *il.Instr) opResult {
	return doTrapErr(vm, f, in)
}
