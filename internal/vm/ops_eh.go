package vm

import "github.com/splanck/viper-sub015/internal/il"

// doEhPush installs a handler for the current frame's protected region
// (spec §4.6): the top of f.EhStack is consulted by the VM's trap-dispatch
// step whenever a later instruction in this frame traps.
func doEhPush(vm *VM, f *Frame, in *il.Instr) opResult {
	h := target(f, in.Labels[0])
	f.pushHandler(in.Labels[0], h)
	return next()
}

func doEhPop(vm *VM, f *Frame, in *il.Instr) opResult {
	f.popHandler()
	return next()
}

// doEhEntry is the handler block's first instruction marker; it carries no
// runtime effect of its own — the handler block's Error/ResumeTok params
// were already populated by the VM's trap-dispatch step before control
// transferred here (spec §4.6 step 2).
func doEhEntry(vm *VM, f *Frame, in *il.Instr) opResult {
	return next()
}

// doResumeSame re-raises the carried error to the handler above the one that
// is resuming (spec §4.6: "ResumeSame re-enters trap dispatch one level
// up"), by reporting a fresh trap of the same kind so the VM's existing
// propagation logic walks the remaining eh_stack.
func doResumeSame(vm *VM, f *Frame, in *il.Instr) opResult {
	tok := vm.operand(f, in, 0)
	if tok.Resume == nil {
		return trapResult(RuntimeError, 0, "resume.same with no resume token")
	}
	return opResult{tag: rTrap, trap: tok.Resume.Err, msg: "resume.same"}
}

// doResumeNext continues execution at the instruction immediately following
// the one that trapped (spec §4.6: "ResumeNext resumes
// the instruction after the one that trapped").
func doResumeNext(vm *VM, f *Frame, in *il.Instr) opResult {
	tok := vm.operand(f, in, 0)
	if tok.Resume == nil {
		return trapResult(RuntimeError, 0, "resume.next with no resume token")
	}
	f.Block = tok.Resume.ResumeBlock
	f.IP = tok.Resume.ResumeIP
	return opResult{tag: rGoto}
}

// doResumeLabel transfers to an explicit handler-chosen block (spec §4.6:
// "ResumeLabel lets the handler redirect control to any block in the same
// function").
func doResumeLabel(vm *VM, f *Frame, in *il.Instr) opResult {
	return jumpTo(target(f, in.Labels[0]), nil)
}

func doErrGetKind(vm *VM, f *Frame, in *il.Instr) opResult {
	e := vm.operand(f, in, 0)
	if e.Err == nil {
		return ret(intSlot(int64(RuntimeError), false))
	}
	return ret(intSlot(int64(e.Err.Kind), false))
}

func doErrGetCode(vm *VM, f *Frame, in *il.Instr) opResult {
	e := vm.operand(f, in, 0)
	if e.Err == nil {
		return ret(intSlot(0, false))
	}
	return ret(intSlot(int64(e.Err.Code), false))
}

func doErrGetIp(vm *VM, f *Frame, in *il.Instr) opResult {
	e := vm.operand(f, in, 0)
	if e.Err == nil {
		return ret(intSlot(0, false))
	}
	return ret(intSlot(int64(e.Err.IP), false))
}

func doErrGetLine(vm *VM, f *Frame, in *il.Instr) opResult {
	e := vm.operand(f, in, 0)
	if e.Err == nil {
		return ret(intSlot(0, false))
	}
	return ret(intSlot(int64(e.Err.Line), false))
}
