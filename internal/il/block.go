package il

// ParamAttrs are the optional attributes a Param may carry (spec §3.7).
type ParamAttrs struct {
	NoAlias  bool
	NoCapture bool
	NonNull  bool
}

// Param is used for both function parameters and block parameters (which
// serve as phi nodes, spec §3.4). Its ID lives in the same SSA namespace as
// instruction result ids.
type Param struct {
	ID    uint32
	Name  string
	Type  Type
	Attrs ParamAttrs
}

// BasicBlock is a labeled sequence of instructions ending in a terminator.
// Blocks own their instructions; ownership never crosses block boundaries.
type BasicBlock struct {
	Label        string
	Params       []Param
	Instructions []*Instr
}

// Terminated reports whether the block's last instruction is a terminator,
// matching the `terminated` invariant field from spec §3.4 (here computed
// rather than cached, so it can never drift from the instruction list).
func (b *BasicBlock) Terminated() bool {
	if len(b.Instructions) == 0 {
		return false
	}
	return b.Instructions[len(b.Instructions)-1].IsTerminator()
}

// Terminator returns the block's terminating instruction, or nil if the
// block is not terminated.
func (b *BasicBlock) Terminator() *Instr {
	if !b.Terminated() {
		return nil
	}
	return b.Instructions[len(b.Instructions)-1]
}
