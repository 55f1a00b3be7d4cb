package vm

import "github.com/splanck/viper-sub015/internal/il"

// resultTag discriminates the four outcomes an opcode handler may produce
// (spec §4.5 step 5: "Next, JumpTo(block, args), Return(value), Trap(kind, info)").
type resultTag int

const (
	// rNext: no result, advance to the next instruction in this block.
	rNext resultTag = iota
	// rValue: produced a result for in.ResultID, advance to the next
	// instruction — the common case for every non-terminator opcode.
	rValue
	// rJump: block transfer via Frame.jumpTo (Br/CBr/SwitchI32/ResumeLabel).
	rJump
	// rReturn: this frame's OpRet executed; unwind to the caller.
	rReturn
	// rTrap: raise a VmError for the VM's trap-dispatch step to handle.
	rTrap
	// rGoto: handler already repositioned f.Block/f.IP itself (ResumeNext
	// reinstates a mid-block resume point that jumpTo's block-param-writing
	// contract doesn't model) — the dispatch loop must not touch either
	// field afterward.
	rGoto
)

// opResult is the uniform handler return value every dispatch strategy
// interprets identically — the mechanism that lets function-table,
// big-switch, and threaded dispatch share handler bodies verbatim (spec
// §4.5: "all three must produce identical observable behavior").
type opResult struct {
	tag resultTag

	jumpBlock *il.BasicBlock
	jumpArgs  []Slot

	retVal Slot

	trap VmError
	msg  string
}

func next() opResult { return opResult{tag: rNext} }

func jumpTo(block *il.BasicBlock, args []Slot) opResult {
	return opResult{tag: rJump, jumpBlock: block, jumpArgs: args}
}

// ret reports a produced value for a non-terminator opcode (the common
// case: arithmetic, compares, casts, loads, calls, ...). Despite the name,
// this is not a function return — see rReturn/retFromFunction for OpRet.
func ret(v Slot) opResult { return opResult{tag: rValue, retVal: v} }

// retFromFunction reports OpRet's frame-return value.
func retFromFunction(v Slot) opResult { return opResult{tag: rReturn, retVal: v} }

func trapResult(kind TrapKind, code int32, msg string) opResult {
	return opResult{tag: rTrap, trap: VmError{Kind: kind, Code: code}, msg: msg}
}
