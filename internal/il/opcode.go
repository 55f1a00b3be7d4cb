package il

// Opcode is the closed instruction-opcode set (spec §4.4). Grouped in the
// same order as the catalogue table so OpInfo literals below read in
// lockstep with the spec.
type Opcode int

const (
	OpInvalid Opcode = iota

	// Integer arithmetic (wrapping)
	OpAdd
	OpSub
	OpMul
	OpSDiv
	OpUDiv
	OpSRem
	OpURem
	OpAnd
	OpOr
	OpXor
	OpShl
	OpLShr
	OpAShr

	// Checked integer
	OpIAddOvf
	OpISubOvf
	OpIMulOvf
	OpSDivChk0
	OpUDivChk0
	OpSRemChk0
	OpURemChk0
	OpIdxChk

	// Integer compare
	OpICmpEq
	OpICmpNe
	OpSCmpLT
	OpSCmpLE
	OpSCmpGT
	OpSCmpGE
	OpUCmpLT
	OpUCmpLE
	OpUCmpGT
	OpUCmpGE

	// Float arithmetic
	OpFAdd
	OpFSub
	OpFMul
	OpFDiv

	// Float compare
	OpFCmpEQ
	OpFCmpNE
	OpFCmpLT
	OpFCmpLE
	OpFCmpGT
	OpFCmpGE
	OpFCmpOrd
	OpFCmpUno

	// Casts
	OpSitofp
	OpFptosi
	OpCastSiToFp
	OpCastUiToFp
	OpCastFpToSiRteChk
	OpCastFpToUiRteChk
	OpCastSiNarrowChk
	OpCastUiNarrowChk
	OpTrunc1
	OpZext1

	// Constants
	OpConstF64
	OpConstStr
	OpConstNull
	OpGAddr

	// Memory
	OpAlloca
	OpLoad
	OpStore
	OpGEP
	OpAddrOf

	// Control
	OpBr
	OpCBr
	OpSwitchI32
	OpRet
	OpTrap
	OpTrapKind
	OpTrapErr
	OpTrapFromErr

	// Calls
	OpCall
	OpCallIndirect

	// Exception handling
	OpEhPush
	OpEhPop
	OpEhEntry
	OpResumeSame
	OpResumeNext
	OpResumeLabel
	OpErrGetKind
	OpErrGetCode
	OpErrGetIp
	OpErrGetLine

	opcodeCount
)

// OperandCategory constrains what an operand slot may hold (spec §4.3).
type OperandCategory int

const (
	CatAny OperandCategory = iota
	CatI1
	CatI16
	CatI32
	CatI64
	CatF64
	CatPtr
	CatStr
	CatError
	CatResumeTok
	CatDynamic  // category determined per-instruction (e.g. Store's value operand)
	CatInstrType // must equal the instruction's own result_type
)

// ResultArity constrains how many results an opcode may produce.
type ResultArity int

const (
	ResultNone ResultArity = iota
	ResultOne
	ResultOptional
)

// MemoryEffects records whether an opcode may read or write memory, for the
// optimizer shell's pass-preservation bookkeeping (spec §4.8) and the
// runtime bridge's effect tags (spec §4.7 reuses the same shape).
type MemoryEffects struct {
	Reads  bool
	Writes bool
}

// OpInfo is the single source-of-truth metadata record for one opcode
// (spec.md §9 design note: "the reader, verifier, and dispatcher all
// consume this table; handlers never re-state an opcode's arity").
type OpInfo struct {
	Opcode         Opcode
	Mnemonic       string
	MinOperands    int
	MaxOperands    int // -1 means unbounded (e.g. Call args, SwitchI32 arms)
	OperandCats    []OperandCategory
	ResultArity    ResultArity
	ResultCategory OperandCategory
	IsTerminator   bool
	SuccessorCount int // -1 means variable (SwitchI32)
	Effects        MemoryEffects
	MayTrap        bool
}

var opTable = buildOpTable()

func buildOpTable() map[Opcode]OpInfo {
	t := make(map[Opcode]OpInfo, opcodeCount)
	add := func(info OpInfo) {
		t[info.Opcode] = info
	}

	intBinop := func(op Opcode, mnemonic string, traps bool) {
		add(OpInfo{Opcode: op, Mnemonic: mnemonic, MinOperands: 2, MaxOperands: 2,
			OperandCats: []OperandCategory{CatInstrType, CatInstrType},
			ResultArity: ResultOne, ResultCategory: CatInstrType, MayTrap: traps})
	}
	intCmp := func(op Opcode, mnemonic string) {
		add(OpInfo{Opcode: op, Mnemonic: mnemonic, MinOperands: 2, MaxOperands: 2,
			OperandCats: []OperandCategory{CatDynamic, CatDynamic},
			ResultArity: ResultOne, ResultCategory: CatI1})
	}
	floatCmp := func(op Opcode, mnemonic string) {
		add(OpInfo{Opcode: op, Mnemonic: mnemonic, MinOperands: 2, MaxOperands: 2,
			OperandCats: []OperandCategory{CatF64, CatF64},
			ResultArity: ResultOne, ResultCategory: CatI1})
	}

	intBinop(OpAdd, "add", false)
	intBinop(OpSub, "sub", false)
	intBinop(OpMul, "mul", false)
	intBinop(OpSDiv, "sdiv", true)
	intBinop(OpUDiv, "udiv", true)
	intBinop(OpSRem, "srem", true)
	intBinop(OpURem, "urem", true)
	intBinop(OpAnd, "and", false)
	intBinop(OpOr, "or", false)
	intBinop(OpXor, "xor", false)
	intBinop(OpShl, "shl", false)
	intBinop(OpLShr, "lshr", false)
	intBinop(OpAShr, "ashr", false)

	intBinop(OpIAddOvf, "iaddovf", true)
	intBinop(OpISubOvf, "isubovf", true)
	intBinop(OpIMulOvf, "imulovf", true)
	intBinop(OpSDivChk0, "sdiv.chk0", true)
	intBinop(OpUDivChk0, "udiv.chk0", true)
	intBinop(OpSRemChk0, "srem.chk0", true)
	intBinop(OpURemChk0, "urem.chk0", true)
	add(OpInfo{Opcode: OpIdxChk, Mnemonic: "idx.chk", MinOperands: 2, MaxOperands: 2,
		OperandCats: []OperandCategory{CatI64, CatI64}, ResultArity: ResultOne,
		ResultCategory: CatI64, MayTrap: true})

	intCmp(OpICmpEq, "icmp.eq")
	intCmp(OpICmpNe, "icmp.ne")
	intCmp(OpSCmpLT, "scmp.lt")
	intCmp(OpSCmpLE, "scmp.le")
	intCmp(OpSCmpGT, "scmp.gt")
	intCmp(OpSCmpGE, "scmp.ge")
	intCmp(OpUCmpLT, "ucmp.lt")
	intCmp(OpUCmpLE, "ucmp.le")
	intCmp(OpUCmpGT, "ucmp.gt")
	intCmp(OpUCmpGE, "ucmp.ge")

	add(OpInfo{Opcode: OpFAdd, Mnemonic: "fadd", MinOperands: 2, MaxOperands: 2,
		OperandCats: []OperandCategory{CatF64, CatF64}, ResultArity: ResultOne, ResultCategory: CatF64})
	add(OpInfo{Opcode: OpFSub, Mnemonic: "fsub", MinOperands: 2, MaxOperands: 2,
		OperandCats: []OperandCategory{CatF64, CatF64}, ResultArity: ResultOne, ResultCategory: CatF64})
	add(OpInfo{Opcode: OpFMul, Mnemonic: "fmul", MinOperands: 2, MaxOperands: 2,
		OperandCats: []OperandCategory{CatF64, CatF64}, ResultArity: ResultOne, ResultCategory: CatF64})
	add(OpInfo{Opcode: OpFDiv, Mnemonic: "fdiv", MinOperands: 2, MaxOperands: 2,
		OperandCats: []OperandCategory{CatF64, CatF64}, ResultArity: ResultOne, ResultCategory: CatF64})

	floatCmp(OpFCmpEQ, "fcmp.eq")
	floatCmp(OpFCmpNE, "fcmp.ne")
	floatCmp(OpFCmpLT, "fcmp.lt")
	floatCmp(OpFCmpLE, "fcmp.le")
	floatCmp(OpFCmpGT, "fcmp.gt")
	floatCmp(OpFCmpGE, "fcmp.ge")
	floatCmp(OpFCmpOrd, "fcmp.ord")
	floatCmp(OpFCmpUno, "fcmp.uno")

	cast := func(op Opcode, mnemonic string, from OperandCategory, to OperandCategory, traps bool) {
		add(OpInfo{Opcode: op, Mnemonic: mnemonic, MinOperands: 1, MaxOperands: 1,
			OperandCats: []OperandCategory{from}, ResultArity: ResultOne, ResultCategory: to, MayTrap: traps})
	}
	cast(OpSitofp, "sitofp", CatI64, CatF64, false)
	cast(OpFptosi, "fptosi", CatF64, CatI64, false)
	cast(OpCastSiToFp, "cast.si2fp", CatI64, CatF64, false)
	cast(OpCastUiToFp, "cast.ui2fp", CatI64, CatF64, false)
	cast(OpCastFpToSiRteChk, "cast.fp2si.rtechk", CatF64, CatI64, true)
	cast(OpCastFpToUiRteChk, "cast.fp2ui.rtechk", CatF64, CatI64, true)
	cast(OpCastSiNarrowChk, "cast.si.narrow.chk", CatI64, CatInstrType, true)
	cast(OpCastUiNarrowChk, "cast.ui.narrow.chk", CatI64, CatInstrType, true)
	cast(OpTrunc1, "trunc1", CatI64, CatI1, false)
	cast(OpZext1, "zext1", CatI1, CatI64, false)

	add(OpInfo{Opcode: OpConstF64, Mnemonic: "const.f64", MinOperands: 1, MaxOperands: 1,
		OperandCats: []OperandCategory{CatF64}, ResultArity: ResultOne, ResultCategory: CatF64})
	add(OpInfo{Opcode: OpConstStr, Mnemonic: "const.str", MinOperands: 1, MaxOperands: 1,
		OperandCats: []OperandCategory{CatStr}, ResultArity: ResultOne, ResultCategory: CatStr})
	add(OpInfo{Opcode: OpConstNull, Mnemonic: "const.null", MinOperands: 0, MaxOperands: 0,
		ResultArity: ResultOne, ResultCategory: CatPtr})
	add(OpInfo{Opcode: OpGAddr, Mnemonic: "gaddr", MinOperands: 1, MaxOperands: 1,
		OperandCats: []OperandCategory{CatAny}, ResultArity: ResultOne, ResultCategory: CatPtr})

	add(OpInfo{Opcode: OpAlloca, Mnemonic: "alloca", MinOperands: 1, MaxOperands: 1,
		OperandCats: []OperandCategory{CatI64}, ResultArity: ResultOne, ResultCategory: CatPtr})
	add(OpInfo{Opcode: OpLoad, Mnemonic: "load", MinOperands: 1, MaxOperands: 1,
		OperandCats: []OperandCategory{CatPtr}, ResultArity: ResultOne, ResultCategory: CatInstrType,
		Effects: MemoryEffects{Reads: true}})
	add(OpInfo{Opcode: OpStore, Mnemonic: "store", MinOperands: 2, MaxOperands: 2,
		OperandCats: []OperandCategory{CatPtr, CatDynamic}, ResultArity: ResultNone,
		Effects: MemoryEffects{Writes: true}})
	add(OpInfo{Opcode: OpGEP, Mnemonic: "gep", MinOperands: 2, MaxOperands: 2,
		OperandCats: []OperandCategory{CatPtr, CatI64}, ResultArity: ResultOne, ResultCategory: CatPtr})
	add(OpInfo{Opcode: OpAddrOf, Mnemonic: "addrof", MinOperands: 1, MaxOperands: 1,
		OperandCats: []OperandCategory{CatPtr}, ResultArity: ResultOne, ResultCategory: CatPtr})

	add(OpInfo{Opcode: OpBr, Mnemonic: "br", MinOperands: 0, MaxOperands: -1,
		ResultArity: ResultNone, IsTerminator: true, SuccessorCount: 1})
	add(OpInfo{Opcode: OpCBr, Mnemonic: "cbr", MinOperands: 1, MaxOperands: -1,
		OperandCats: []OperandCategory{CatI1}, ResultArity: ResultNone, IsTerminator: true, SuccessorCount: 2})
	add(OpInfo{Opcode: OpSwitchI32, Mnemonic: "switch", MinOperands: 1, MaxOperands: -1,
		OperandCats: []OperandCategory{CatI32}, ResultArity: ResultNone, IsTerminator: true, SuccessorCount: -1})
	add(OpInfo{Opcode: OpRet, Mnemonic: "ret", MinOperands: 0, MaxOperands: 1,
		OperandCats: []OperandCategory{CatInstrType}, ResultArity: ResultNone, IsTerminator: true})
	add(OpInfo{Opcode: OpTrap, Mnemonic: "trap", MinOperands: 0, MaxOperands: 0,
		ResultArity: ResultNone, IsTerminator: true, MayTrap: true})
	add(OpInfo{Opcode: OpTrapKind, Mnemonic: "trap.kind", MinOperands: 1, MaxOperands: 1,
		OperandCats: []OperandCategory{CatI32}, ResultArity: ResultNone, IsTerminator: true, MayTrap: true})
	add(OpInfo{Opcode: OpTrapErr, Mnemonic: "trap.err", MinOperands: 1, MaxOperands: 1,
		OperandCats: []OperandCategory{CatError}, ResultArity: ResultNone, IsTerminator: true, MayTrap: true})
	add(OpInfo{Opcode: OpTrapFromErr, Mnemonic: "trap.fromerr", MinOperands: 1, MaxOperands: 1,
		OperandCats: []OperandCategory{CatError}, ResultArity: ResultNone, IsTerminator: true, MayTrap: true})

	add(OpInfo{Opcode: OpCall, Mnemonic: "call", MinOperands: 0, MaxOperands: -1,
		OperandCats: []OperandCategory{CatAny}, ResultArity: ResultOptional, ResultCategory: CatInstrType,
		Effects: MemoryEffects{Reads: true, Writes: true}, MayTrap: true})
	add(OpInfo{Opcode: OpCallIndirect, Mnemonic: "call.indirect", MinOperands: 1, MaxOperands: -1,
		OperandCats: []OperandCategory{CatPtr}, ResultArity: ResultOptional, ResultCategory: CatInstrType,
		Effects: MemoryEffects{Reads: true, Writes: true}, MayTrap: true})

	add(OpInfo{Opcode: OpEhPush, Mnemonic: "eh.push", MinOperands: 0, MaxOperands: 0,
		ResultArity: ResultNone})
	add(OpInfo{Opcode: OpEhPop, Mnemonic: "eh.pop", MinOperands: 0, MaxOperands: 0,
		ResultArity: ResultNone})
	add(OpInfo{Opcode: OpEhEntry, Mnemonic: "eh.entry", MinOperands: 0, MaxOperands: 0,
		ResultArity: ResultNone})
	add(OpInfo{Opcode: OpResumeSame, Mnemonic: "resume.same", MinOperands: 1, MaxOperands: 1,
		OperandCats: []OperandCategory{CatResumeTok}, ResultArity: ResultNone, IsTerminator: true})
	add(OpInfo{Opcode: OpResumeNext, Mnemonic: "resume.next", MinOperands: 1, MaxOperands: 1,
		OperandCats: []OperandCategory{CatResumeTok}, ResultArity: ResultNone, IsTerminator: true})
	add(OpInfo{Opcode: OpResumeLabel, Mnemonic: "resume.label", MinOperands: 1, MaxOperands: 1,
		OperandCats: []OperandCategory{CatResumeTok}, ResultArity: ResultNone, IsTerminator: true, SuccessorCount: 1})
	add(OpInfo{Opcode: OpErrGetKind, Mnemonic: "err.getkind", MinOperands: 1, MaxOperands: 1,
		OperandCats: []OperandCategory{CatError}, ResultArity: ResultOne, ResultCategory: CatI32})
	add(OpInfo{Opcode: OpErrGetCode, Mnemonic: "err.getcode", MinOperands: 1, MaxOperands: 1,
		OperandCats: []OperandCategory{CatError}, ResultArity: ResultOne, ResultCategory: CatI32})
	add(OpInfo{Opcode: OpErrGetIp, Mnemonic: "err.getip", MinOperands: 1, MaxOperands: 1,
		OperandCats: []OperandCategory{CatError}, ResultArity: ResultOne, ResultCategory: CatI64})
	add(OpInfo{Opcode: OpErrGetLine, Mnemonic: "err.getline", MinOperands: 1, MaxOperands: 1,
		OperandCats: []OperandCategory{CatError}, ResultArity: ResultOne, ResultCategory: CatI32})

	return t
}

var mnemonicTable = buildMnemonicTable()

func buildMnemonicTable() map[string]Opcode {
	m := make(map[string]Opcode, len(opTable))
	for op, info := range opTable {
		m[info.Mnemonic] = op
	}
	return m
}

// Info returns the metadata record for op. The zero OpInfo (Mnemonic=="")
// is returned for OpInvalid or any opcode absent from the table, which
// indicates caller error rather than a valid IL program.
func Info(op Opcode) OpInfo {
	return opTable[op]
}

// ByMnemonic resolves a textual opcode mnemonic to an Opcode.
func ByMnemonic(s string) (Opcode, bool) {
	op, ok := mnemonicTable[s]
	return op, ok
}

// IsTerminator reports whether op ends a basic block.
func (op Opcode) IsTerminator() bool {
	return opTable[op].IsTerminator
}

// String renders the opcode's canonical mnemonic.
func (op Opcode) String() string {
	if info, ok := opTable[op]; ok {
		return info.Mnemonic
	}
	return "invalid"
}
