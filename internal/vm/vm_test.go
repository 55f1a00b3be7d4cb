package vm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splanck/viper-sub015/internal/il"
)

func blk(label string, instrs ...*il.Instr) *il.BasicBlock {
	return &il.BasicBlock{Label: label, Instructions: instrs}
}

// helloModule is scenario S1: one bridge call, no return value.
func helloModule() *il.Module {
	return &il.Module{
		Version: "0.2.0",
		Externs: []*il.Extern{
			{Name: "Viper.Terminal.SayInt", Ret: il.Void, Params: []il.Type{il.I64}},
		},
		Functions: []*il.Function{
			{
				Name: "main", ReturnType: il.Void, Linkage: il.Export,
				Blocks: []*il.BasicBlock{
					blk("entry",
						&il.Instr{Op: il.OpCall, Callee: "Viper.Terminal.SayInt", Operands: []il.Value{il.ConstIntVal(42, false)}},
						&il.Instr{Op: il.OpRet},
					),
				},
			},
		},
	}
}

func TestRunHelloInteger(t *testing.T) {
	var out bytes.Buffer
	vm := NewVM(helloModule(), Config{Dispatch: DispatchFunctionTable, Trace: TraceConfig{Out: &out}})
	result, trap := vm.Run("main", nil)
	require.Nil(t, trap)
	assert.Equal(t, VoidSlot, result)
}

// checkedDivModule is scenario S2: an unhandled DivideByZero trap.
func checkedDivModule() *il.Module {
	return &il.Module{
		Version: "0.2.0",
		Functions: []*il.Function{
			{
				Name: "main", ReturnType: il.I64, Linkage: il.Export,
				Blocks: []*il.BasicBlock{
					blk("entry",
						&il.Instr{Op: il.OpSDivChk0, HasResult: true, ResultID: 0, ResultTy: il.I64,
							Operands: []il.Value{il.ConstIntVal(10, false), il.ConstIntVal(0, false)}},
						&il.Instr{Op: il.OpRet, Operands: []il.Value{il.TempVal(0)}},
					),
				},
			},
		},
	}
}

func TestRunCheckedDivisionTraps(t *testing.T) {
	vm := NewVM(checkedDivModule(), Config{Dispatch: DispatchFunctionTable})
	_, trap := vm.Run("main", nil)
	require.NotNil(t, trap)
	assert.Equal(t, DivideByZero, trap.Kind)
	assert.Equal(t, "main", trap.Function)
	assert.Equal(t, "entry", trap.Block)
}

// handledDivModule is scenario S3: a pushed handler resumes past the
// trapping instruction and the caller observes the value after resumption.
func handledDivModule() *il.Module {
	entry := blk("entry",
		&il.Instr{Op: il.OpEhPush, Labels: []string{"H"}},
		&il.Instr{Op: il.OpSDivChk0, HasResult: true, ResultID: 0, ResultTy: il.I64,
			Operands: []il.Value{il.ConstIntVal(10, false), il.ConstIntVal(0, false)}},
		&il.Instr{Op: il.OpRet, Operands: []il.Value{il.ConstIntVal(7, false)}},
	)
	handler := &il.BasicBlock{
		Label:  "H",
		Params: []il.Param{{ID: 1, Type: il.Error}, {ID: 2, Type: il.ResumeTok}},
		Instructions: []*il.Instr{
			{Op: il.OpEhEntry},
			{Op: il.OpErrGetKind, HasResult: true, ResultID: 3, ResultTy: il.I64, Operands: []il.Value{il.TempVal(1)}},
			{Op: il.OpResumeNext, Operands: []il.Value{il.TempVal(2)}},
		},
	}
	return &il.Module{
		Version: "0.2.0",
		Functions: []*il.Function{
			{Name: "main", ReturnType: il.I64, Linkage: il.Export, Blocks: []*il.BasicBlock{entry, handler}},
		},
	}
}

func TestRunHandledDivisionResumesNext(t *testing.T) {
	vm := NewVM(handledDivModule(), Config{Dispatch: DispatchFunctionTable})
	result, trap := vm.Run("main", nil)
	require.Nil(t, trap)
	assert.Equal(t, int64(7), result.I)
}

// switchModule is scenario S4: a SwitchI32 on value 2 must reach block "b",
// never "a" or the default "d".
func switchModule() *il.Module {
	entry := blk("entry",
		&il.Instr{
			Op:         il.OpSwitchI32,
			Operands:   []il.Value{il.ConstIntVal(2, false)},
			Labels:     []string{"d", "a", "b"},
			SwitchVals: []int32{1, 2},
			BrArgs:     [][]il.Value{nil, nil, nil},
		},
	)
	a := blk("a", &il.Instr{Op: il.OpRet, Operands: []il.Value{il.ConstIntVal(-1, false)}})
	b := blk("b", &il.Instr{Op: il.OpRet, Operands: []il.Value{il.ConstIntVal(99, false)}})
	d := blk("d", &il.Instr{Op: il.OpRet, Operands: []il.Value{il.ConstIntVal(-2, false)}})
	return &il.Module{
		Version: "0.2.0",
		Functions: []*il.Function{
			{Name: "main", ReturnType: il.I64, Linkage: il.Export, Blocks: []*il.BasicBlock{entry, d, a, b}},
		},
	}
}

func TestRunSwitchTakesMatchingCase(t *testing.T) {
	vm := NewVM(switchModule(), Config{Dispatch: DispatchFunctionTable})
	result, trap := vm.Run("main", nil)
	require.Nil(t, trap)
	assert.Equal(t, int64(99), result.I)
}

// TestDispatchStrategiesAgree runs the same modules under all three
// dispatch strategies and asserts they produce identical results, since
// every strategy is required to call the same underlying opcode handlers.
func TestDispatchStrategiesAgree(t *testing.T) {
	strategies := []DispatchStrategy{DispatchFunctionTable, DispatchBigSwitch, DispatchThreaded}

	for _, strat := range strategies {
		vm := NewVM(switchModule(), Config{Dispatch: strat})
		result, trap := vm.Run("main", nil)
		require.Nil(t, trap, "strategy %s", strat)
		assert.Equal(t, int64(99), result.I, "strategy %s", strat)
	}

	for _, strat := range strategies {
		vm := NewVM(checkedDivModule(), Config{Dispatch: strat})
		_, trap := vm.Run("main", nil)
		require.NotNil(t, trap, "strategy %s", strat)
		assert.Equal(t, DivideByZero, trap.Kind, "strategy %s", strat)
	}
}

// sumTailModule is scenario S6: a tail-recursive accumulator. Kept small
// here (stack growth is Go's own call stack, not independently bounded by
// this VM — see DESIGN.md's CallAttrs.Tail decision) but exercises deep
// recursion through the real call path.
func sumTailModule() *il.Module {
	// func sum(n i64, acc i64) -> i64 {
	//   entry: %c = icmp.eq n, 0; cbr %c, done, rec
	//   done: ret acc
	//   rec:  %acc2 = add acc, n; %n2 = sub n, 1; %r = call @sum(%n2, %acc2); ret %r
	// }
	entry := blk("entry",
		&il.Instr{Op: il.OpICmpEq, HasResult: true, ResultID: 2, ResultTy: il.I1,
			Operands: []il.Value{il.TempVal(0), il.ConstIntVal(0, false)}},
		&il.Instr{Op: il.OpCBr, Operands: []il.Value{il.TempVal(2)},
			Labels: []string{"done", "rec"}, BrArgs: [][]il.Value{nil, nil}},
	)
	done := blk("done", &il.Instr{Op: il.OpRet, Operands: []il.Value{il.TempVal(1)}})
	rec := blk("rec",
		&il.Instr{Op: il.OpAdd, HasResult: true, ResultID: 3, ResultTy: il.I64,
			Operands: []il.Value{il.TempVal(1), il.TempVal(0)}},
		&il.Instr{Op: il.OpSub, HasResult: true, ResultID: 4, ResultTy: il.I64,
			Operands: []il.Value{il.TempVal(0), il.ConstIntVal(1, false)}},
		&il.Instr{Op: il.OpCall, HasResult: true, ResultID: 5, ResultTy: il.I64, Callee: "sum",
			CallAttrs: il.CallAttrs{Tail: true},
			Operands:  []il.Value{il.TempVal(4), il.TempVal(3)}},
		&il.Instr{Op: il.OpRet, Operands: []il.Value{il.TempVal(5)}},
	)
	return &il.Module{
		Version: "0.2.0",
		Functions: []*il.Function{
			{
				Name: "sum", ReturnType: il.I64, Linkage: il.Export,
				Params: []il.Param{{ID: 0, Type: il.I64}, {ID: 1, Type: il.I64}},
				Blocks: []*il.BasicBlock{entry, done, rec},
			},
		},
	}
}

func TestRunTailRecursiveSum(t *testing.T) {
	vm := NewVM(sumTailModule(), Config{Dispatch: DispatchFunctionTable})
	result, trap := vm.Run("sum", []Slot{{Kind: SlotInt, I: 1000}, {Kind: SlotInt, I: 0}})
	require.Nil(t, trap)
	assert.Equal(t, int64(500500), result.I)
}

func TestCallBridgeRoundTripsSqrt(t *testing.T) {
	m := &il.Module{
		Version: "0.2.0",
		Externs: []*il.Extern{{Name: "Viper.Math.Sqrt", Ret: il.F64, Params: []il.Type{il.F64}}},
		Functions: []*il.Function{
			{Name: "main", ReturnType: il.F64, Linkage: il.Export, Blocks: []*il.BasicBlock{
				blk("entry",
					&il.Instr{Op: il.OpCall, HasResult: true, ResultID: 0, ResultTy: il.F64,
						Callee: "Viper.Math.Sqrt", Operands: []il.Value{il.ConstFloatVal(16)}},
					&il.Instr{Op: il.OpRet, Operands: []il.Value{il.TempVal(0)}},
				),
			}},
		},
	}
	vm := NewVM(m, Config{Dispatch: DispatchFunctionTable})
	result, trap := vm.Run("main", nil)
	require.Nil(t, trap)
	assert.Equal(t, 4.0, result.F)
}
