package vm

import "github.com/splanck/viper-sub015/internal/il"

// doCall dispatches to either a module-defined function or a runtime-bridge
// adapter by name (spec §4.7 step 2: "the callee name is looked up first in
// the module's function table, then in the bridge registry"). A callee's
// in.CallAttrs.Tail marks it eligible for frame reuse; this interpreter
// reuses Go's own call stack per activation instead of a literal frame-slot
// splice, so Tail is honored as a hint only — see DESIGN.md.
func doCall(vm *VM, f *Frame, in *il.Instr) opResult {
	args := make([]Slot, len(in.Operands))
	for i, v := range in.Operands {
		args[i] = vm.val(f, v)
	}

	if fn, ok := vm.module.FindFunction(in.Callee); ok {
		result, report := vm.callFunction(fn, args, f)
		if report != nil {
			return opResult{tag: rTrap, trap: VmError{Kind: report.Kind, Code: report.Code}, msg: report.Message}
		}
		return ret(result)
	}

	result, err := vm.callBridge(in.Callee, args)
	if err != nil {
		return trapResult(IOError, 0, err.Error())
	}
	return ret(result)
}

// doCallIndirect resolves its function-pointer operand to a global-address
// slot (populated from a GAddr of a function name) and otherwise behaves
// like doCall.
func doCallIndirect(vm *VM, f *Frame, in *il.Instr) opResult {
	fnSlot := vm.operand(f, in, 0)
	name := vm.funcPtrName(fnSlot)
	if name == "" {
		return trapResult(InvalidOperation, 0, "call.indirect through unresolved function pointer")
	}
	args := make([]Slot, len(in.Operands)-1)
	for i, v := range in.Operands[1:] {
		args[i] = vm.val(f, v)
	}

	fn, ok := vm.module.FindFunction(name)
	if !ok {
		return trapResult(InvalidOperation, 0, "call.indirect to unknown function "+name)
	}
	result, report := vm.callFunction(fn, args, f)
	if report != nil {
		return opResult{tag: rTrap, trap: VmError{Kind: report.Kind, Code: report.Code}, msg: report.Message}
	}
	return ret(result)
}
