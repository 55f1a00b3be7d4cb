package vm

import "github.com/splanck/viper-sub015/internal/il"

// opHandler is the shared signature every opcode's actual semantics are
// implemented behind (ops_arith.go, ops_float.go, ops_cast.go, ops_mem.go,
// ops_control.go, ops_call.go, ops_eh.go). Every DispatchStrategy below
// calls these same functions — the strategies differ only in how they pick
// which one to call per instruction, never in what the call does. This is
// what lets spec §4.5's "all three must produce identical observable
// behavior for every program" hold by construction rather than by testing
// alone (though vm_test.go also checks it directly).
type opHandler func(vm *VM, f *Frame, in *il.Instr) opResult

// DispatchStrategy selects the mechanism used to route from an opcode to its
// handler (spec §4.5).
type DispatchStrategy int

const (
	// DispatchFunctionTable looks the handler up in a map keyed by Opcode.
	DispatchFunctionTable DispatchStrategy = iota
	// DispatchBigSwitch routes through one large switch statement.
	DispatchBigSwitch
	// DispatchThreaded precomputes, once per block, a handler slice aligned
	// with that block's instruction list, so steady-state dispatch is an
	// array index rather than a map lookup or switch. Go has no first-class
	// computed-goto; this is the idiomatic approximation of "threaded code"
	// the spec gestures at — same handler functions, cheaper selection.
	DispatchThreaded
)

func (s DispatchStrategy) String() string {
	switch s {
	case DispatchFunctionTable:
		return "function-table"
	case DispatchBigSwitch:
		return "big-switch"
	case DispatchThreaded:
		return "threaded"
	default:
		return "unknown"
	}
}

var handlerTable = buildHandlerTable()

func buildHandlerTable() map[il.Opcode]opHandler {
	return map[il.Opcode]opHandler{
		il.OpAdd: doAdd, il.OpSub: doSub, il.OpMul: doMul,
		il.OpSDiv: doSDiv, il.OpUDiv: doUDiv, il.OpSRem: doSRem, il.OpURem: doURem,
		il.OpAnd: doAnd, il.OpOr: doOr, il.OpXor: doXor,
		il.OpShl: doShl, il.OpLShr: doLShr, il.OpAShr: doAShr,

		il.OpIAddOvf: doIAddOvf, il.OpISubOvf: doISubOvf, il.OpIMulOvf: doIMulOvf,
		il.OpSDivChk0: doSDivChk0, il.OpUDivChk0: doUDivChk0,
		il.OpSRemChk0: doSRemChk0, il.OpURemChk0: doURemChk0,
		il.OpIdxChk: doIdxChk,

		il.OpICmpEq: doICmpEq, il.OpICmpNe: doICmpNe,
		il.OpSCmpLT: doSCmpLT, il.OpSCmpLE: doSCmpLE, il.OpSCmpGT: doSCmpGT, il.OpSCmpGE: doSCmpGE,
		il.OpUCmpLT: doUCmpLT, il.OpUCmpLE: doUCmpLE, il.OpUCmpGT: doUCmpGT, il.OpUCmpGE: doUCmpGE,

		il.OpFAdd: doFAdd, il.OpFSub: doFSub, il.OpFMul: doFMul, il.OpFDiv: doFDiv,
		il.OpFCmpEQ: doFCmpEQ, il.OpFCmpNE: doFCmpNE, il.OpFCmpLT: doFCmpLT, il.OpFCmpLE: doFCmpLE,
		il.OpFCmpGT: doFCmpGT, il.OpFCmpGE: doFCmpGE, il.OpFCmpOrd: doFCmpOrd, il.OpFCmpUno: doFCmpUno,

		il.OpSitofp: doSitofp, il.OpFptosi: doFptosi,
		il.OpCastSiToFp: doCastSiToFp, il.OpCastUiToFp: doCastUiToFp,
		il.OpCastFpToSiRteChk: doCastFpToSiRteChk, il.OpCastFpToUiRteChk: doCastFpToUiRteChk,
		il.OpCastSiNarrowChk: doCastSiNarrowChk, il.OpCastUiNarrowChk: doCastUiNarrowChk,
		il.OpTrunc1: doTrunc1, il.OpZext1: doZext1,

		il.OpConstF64: doConstF64, il.OpConstStr: doConstStr, il.OpConstNull: doConstNull, il.OpGAddr: doGAddr,

		il.OpAlloca: doAlloca, il.OpLoad: doLoad, il.OpStore: doStore, il.OpGEP: doGEP, il.OpAddrOf: doAddrOf,

		il.OpBr: doBr, il.OpCBr: doCBr, il.OpSwitchI32: doSwitchI32, il.OpRet: doRet,
		il.OpTrap: doTrap, il.OpTrapKind: doTrapKind, il.OpTrapErr: doTrapErr, il.OpTrapFromErr: doTrapFromErr,

		il.OpCall: doCall, il.OpCallIndirect: doCallIndirect,

		il.OpEhPush: doEhPush, il.OpEhPop: doEhPop, il.OpEhEntry: doEhEntry,
		il.OpResumeSame: doResumeSame, il.OpResumeNext: doResumeNext, il.OpResumeLabel: doResumeLabel,
		il.OpErrGetKind: doErrGetKind, il.OpErrGetCode: doErrGetCode,
		il.OpErrGetIp: doErrGetIp, il.OpErrGetLine: doErrGetLine,
	}
}

// dispatchFunctionTable is a thin wrapper kept distinct from a direct map
// index so the three strategies read symmetrically at call sites.
func dispatchFunctionTable(vm *VM, f *Frame, in *il.Instr) opResult {
	h, ok := handlerTable[in.Op]
	if !ok {
		return trapResult(InvalidOperation, 0, "no handler registered for opcode "+in.Op.String())
	}
	return h(vm, f, in)
}

// dispatchBigSwitch routes through an explicit switch over every opcode,
// calling the identical handler functions the table strategy uses. Kept
// deliberately exhaustive (one case per opcode) rather than falling back to
// the table, so this strategy's code path is genuinely independent of the
// other two.
func dispatchBigSwitch(vm *VM, f *Frame, in *il.Instr) opResult {
	switch in.Op {
	case il.OpAdd:
		return doAdd(vm, f, in)
	case il.OpSub:
		return doSub(vm, f, in)
	case il.OpMul:
		return doMul(vm, f, in)
	case il.OpSDiv:
		return doSDiv(vm, f, in)
	case il.OpUDiv:
		return doUDiv(vm, f, in)
	case il.OpSRem:
		return doSRem(vm, f, in)
	case il.OpURem:
		return doURem(vm, f, in)
	case il.OpAnd:
		return doAnd(vm, f, in)
	case il.OpOr:
		return doOr(vm, f, in)
	case il.OpXor:
		return doXor(vm, f, in)
	case il.OpShl:
		return doShl(vm, f, in)
	case il.OpLShr:
		return doLShr(vm, f, in)
	case il.OpAShr:
		return doAShr(vm, f, in)
	case il.OpIAddOvf:
		return doIAddOvf(vm, f, in)
	case il.OpISubOvf:
		return doISubOvf(vm, f, in)
	case il.OpIMulOvf:
		return doIMulOvf(vm, f, in)
	case il.OpSDivChk0:
		return doSDivChk0(vm, f, in)
	case il.OpUDivChk0:
		return doUDivChk0(vm, f, in)
	case il.OpSRemChk0:
		return doSRemChk0(vm, f, in)
	case il.OpURemChk0:
		return doURemChk0(vm, f, in)
	case il.OpIdxChk:
		return doIdxChk(vm, f, in)
	case il.OpICmpEq:
		return doICmpEq(vm, f, in)
	case il.OpICmpNe:
		return doICmpNe(vm, f, in)
	case il.OpSCmpLT:
		return doSCmpLT(vm, f, in)
	case il.OpSCmpLE:
		return doSCmpLE(vm, f, in)
	case il.OpSCmpGT:
		return doSCmpGT(vm, f, in)
	case il.OpSCmpGE:
		return doSCmpGE(vm, f, in)
	case il.OpUCmpLT:
		return doUCmpLT(vm, f, in)
	case il.OpUCmpLE:
		return doUCmpLE(vm, f, in)
	case il.OpUCmpGT:
		return doUCmpGT(vm, f, in)
	case il.OpUCmpGE:
		return doUCmpGE(vm, f, in)
	case il.OpFAdd:
		return doFAdd(vm, f, in)
	case il.OpFSub:
		return doFSub(vm, f, in)
	case il.OpFMul:
		return doFMul(vm, f, in)
	case il.OpFDiv:
		return doFDiv(vm, f, in)
	case il.OpFCmpEQ:
		return doFCmpEQ(vm, f, in)
	case il.OpFCmpNE:
		return doFCmpNE(vm, f, in)
	case il.OpFCmpLT:
		return doFCmpLT(vm, f, in)
	case il.OpFCmpLE:
		return doFCmpLE(vm, f, in)
	case il.OpFCmpGT:
		return doFCmpGT(vm, f, in)
	case il.OpFCmpGE:
		return doFCmpGE(vm, f, in)
	case il.OpFCmpOrd:
		return doFCmpOrd(vm, f, in)
	case il.OpFCmpUno:
		return doFCmpUno(vm, f, in)
	case il.OpSitofp:
		return doSitofp(vm, f, in)
	case il.OpFptosi:
		return doFptosi(vm, f, in)
	case il.OpCastSiToFp:
		return doCastSiToFp(vm, f, in)
	case il.OpCastUiToFp:
		return doCastUiToFp(vm, f, in)
	case il.OpCastFpToSiRteChk:
		return doCastFpToSiRteChk(vm, f, in)
	case il.OpCastFpToUiRteChk:
		return doCastFpToUiRteChk(vm, f, in)
	case il.OpCastSiNarrowChk:
		return doCastSiNarrowChk(vm, f, in)
	case il.OpCastUiNarrowChk:
		return doCastUiNarrowChk(vm, f, in)
	case il.OpTrunc1:
		return doTrunc1(vm, f, in)
	case il.OpZext1:
		return doZext1(vm, f, in)
	case il.OpConstF64:
		return doConstF64(vm, f, in)
	case il.OpConstStr:
		return doConstStr(vm, f, in)
	case il.OpConstNull:
		return doConstNull(vm, f, in)
	case il.OpGAddr:
		return doGAddr(vm, f, in)
	case il.OpAlloca:
		return doAlloca(vm, f, in)
	case il.OpLoad:
		return doLoad(vm, f, in)
	case il.OpStore:
		return doStore(vm, f, in)
	case il.OpGEP:
		return doGEP(vm, f, in)
	case il.OpAddrOf:
		return doAddrOf(vm, f, in)
	case il.OpBr:
		return doBr(vm, f, in)
	case il.OpCBr:
		return doCBr(vm, f, in)
	case il.OpSwitchI32:
		return doSwitchI32(vm, f, in)
	case il.OpRet:
		return doRet(vm, f, in)
	case il.OpTrap:
		return doTrap(vm, f, in)
	case il.OpTrapKind:
		return doTrapKind(vm, f, in)
	case il.OpTrapErr:
		return doTrapErr(vm, f, in)
	case il.OpTrapFromErr:
		return doTrapFromErr(vm, f, in)
	case il.OpCall:
		return doCall(vm, f, in)
	case il.OpCallIndirect:
		return doCallIndirect(vm, f, in)
	case il.OpEhPush:
		return doEhPush(vm, f, in)
	case il.OpEhPop:
		return doEhPop(vm, f, in)
	case il.OpEhEntry:
		return doEhEntry(vm, f, in)
	case il.OpResumeSame:
		return doResumeSame(vm, f, in)
	case il.OpResumeNext:
		return doResumeNext(vm, f, in)
	case il.OpResumeLabel:
		return doResumeLabel(vm, f, in)
	case il.OpErrGetKind:
		return doErrGetKind(vm, f, in)
	case il.OpErrGetCode:
		return doErrGetCode(vm, f, in)
	case il.OpErrGetIp:
		return doErrGetIp(vm, f, in)
	case il.OpErrGetLine:
		return doErrGetLine(vm, f, in)
	default:
		return trapResult(InvalidOperation, 0, "no handler registered for opcode "+in.Op.String())
	}
}

// threadedBlock is a block's instruction list paired one-to-one with its
// resolved handlers, computed once and cached on the VM so repeat visits
// (loops) skip opcode resolution entirely.
type threadedBlock struct {
	handlers []opHandler
}

func (vm *VM) threadedHandlers(b *il.BasicBlock) *threadedBlock {
	if tb, ok := vm.threadCache[b]; ok {
		return tb
	}
	tb := &threadedBlock{handlers: make([]opHandler, len(b.Instructions))}
	for i, in := range b.Instructions {
		h, ok := handlerTable[in.Op]
		if !ok {
			h = func(vm *VM, f *Frame, in *il.Instr) opResult {
				return trapResult(InvalidOperation, 0, "no handler registered for opcode "+in.Op.String())
			}
		}
		tb.handlers[i] = h
	}
	vm.threadCache[b] = tb
	return tb
}

func dispatchThreaded(vm *VM, f *Frame, in *il.Instr) opResult {
	tb := vm.threadedHandlers(f.Block)
	if f.IP >= len(tb.handlers) {
		return trapResult(InvalidOperation, 0, "threaded dispatch ip out of range")
	}
	return tb.handlers[f.IP](vm, f, in)
}

func (vm *VM) dispatch(f *Frame, in *il.Instr) opResult {
	switch vm.config.Dispatch {
	case DispatchBigSwitch:
		return dispatchBigSwitch(vm, f, in)
	case DispatchThreaded:
		return dispatchThreaded(vm, f, in)
	default:
		return dispatchFunctionTable(vm, f, in)
	}
}
