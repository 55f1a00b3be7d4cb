package il

import "github.com/splanck/viper-sub015/internal/source"

// CallAttrs records the optional call-site attributes §3.3 names.
type CallAttrs struct {
	NoThrow  bool
	Pure     bool
	ReadOnly bool
	Tail     bool // marks a Call eligible for tail-call frame reuse (§4.5)
}

// Instr is the uniform instruction record (spec §3.3, §9: "the spec mandates
// a uniform record for simplicity"). Opcode-specific payloads — branch
// targets, switch arms, call callees — all live in the shared Labels/BrArgs
// arrays rather than opcode-specific struct variants.
type Instr struct {
	Op Opcode

	HasResult bool
	ResultID  uint32
	ResultTy  Type

	Operands []Value

	// Labels holds branch targets. Conventions by opcode:
	//   Br:        [target]
	//   CBr:       [trueTarget, falseTarget]
	//   SwitchI32: [defaultTarget, case0Target, case1Target, ...]
	//   ResumeLabel: [target]
	Labels []string

	// BrArgs holds one argument list per entry in Labels, evaluated in the
	// source frame before control transfers (spec §5 ordering rule).
	BrArgs [][]Value

	// SwitchVals holds one value per non-default entry in Labels (so
	// len(SwitchVals) == len(Labels)-1 for SwitchI32; unused otherwise).
	SwitchVals []int32

	Callee    string // Call
	CallAttrs CallAttrs

	Loc source.Pos
}

// IsTerminator reports whether this instruction ends its basic block.
func (in *Instr) IsTerminator() bool {
	return in.Op.IsTerminator()
}
