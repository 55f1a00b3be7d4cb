package vm

import "github.com/splanck/viper-sub015/internal/il"

// HandlerRecord is one entry on a frame's eh_stack (spec §4.5): the block an
// active EhPush installed, and the instruction pointer at push time (kept
// for diagnostics; ResumeNext itself resumes after the trapping instruction,
// not after the push).
type HandlerRecord struct {
	HandlerLabel string
	Block        *il.BasicBlock
	IP           int
}

// Frame is one function activation (spec §4.5). Registers are sized by the
// function's max SSA id + 1 so every temp id and block param shares one flat
// array, exactly as spec §4.5's block-parameter-passing rule requires
// ("target block's parameter slots ... occupy the same SSA id space as
// regular temps").
type Frame struct {
	Fn        *il.Function
	Registers []Slot

	Block *il.BasicBlock
	IP    int

	EhStack     []HandlerRecord
	ActiveError *VmError

	Caller *Frame
}

func newFrame(fn *il.Function, caller *Frame) *Frame {
	return &Frame{
		Fn:        fn,
		Registers: make([]Slot, fn.MaxSSAID()+1),
		Block:     fn.Entry(),
		Caller:    caller,
	}
}

func (f *Frame) get(id uint32) Slot {
	if int(id) >= len(f.Registers) {
		return VoidSlot
	}
	return f.Registers[id]
}

func (f *Frame) set(id uint32, v Slot) {
	if int(id) < len(f.Registers) {
		f.Registers[id] = v
	}
}

// jumpTo transfers control to target, writing args into its block
// parameters first (spec §4.5: "the resulting slots are written to the
// target block's parameter slots ... before control transfers; ip resets to
// its first instruction").
func (f *Frame) jumpTo(target *il.BasicBlock, args []Slot) {
	for i, p := range target.Params {
		if i < len(args) {
			f.set(p.ID, args[i])
		}
	}
	f.Block = target
	f.IP = 0
}

func (f *Frame) pushHandler(label string, block *il.BasicBlock) {
	f.EhStack = append(f.EhStack, HandlerRecord{HandlerLabel: label, Block: block, IP: f.IP})
}

func (f *Frame) popHandler() (HandlerRecord, bool) {
	if len(f.EhStack) == 0 {
		return HandlerRecord{}, false
	}
	n := len(f.EhStack) - 1
	rec := f.EhStack[n]
	f.EhStack = f.EhStack[:n]
	return rec, true
}
