package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splanck/viper-sub015/internal/il"
	"github.com/splanck/viper-sub015/internal/source"
)

// helloIntegerModule mirrors scenario S1 (spec §8): call a terminal extern
// with a constant, then return void.
func helloIntegerModule() *il.Module {
	return &il.Module{
		Version: "0.2.0",
		Externs: []*il.Extern{
			{Name: "Viper.Terminal.SayInt", Ret: il.Void, Params: []il.Type{il.I64}},
		},
		Functions: []*il.Function{
			{
				Name: "main", ReturnType: il.Void, Linkage: il.Export,
				Blocks: []*il.BasicBlock{
					{Label: "entry", Instructions: []*il.Instr{
						{Op: il.OpCall, Callee: "Viper.Terminal.SayInt", Operands: []il.Value{il.ConstIntVal(42, false)}},
						{Op: il.OpRet},
					}},
				},
			},
		},
	}
}

func TestVerifyHelloIntegerOK(t *testing.T) {
	diags := Verify(helloIntegerModule())
	assert.False(t, diags.HasErrors(), "%v", diags)
}

func TestVerifyDuplicateName(t *testing.T) {
	m := helloIntegerModule()
	m.Globals = append(m.Globals, &il.Global{Name: "main", Type: il.I64})
	diags := Verify(m)
	require.True(t, diags.HasErrors())
	assert.Contains(t, diags.Errors()[0].Code, "VER001")
}

func TestVerifyExternSignatureMismatch(t *testing.T) {
	m := helloIntegerModule()
	m.Externs[0].Params = []il.Type{il.F64} // registry says I64
	diags := Verify(m)
	require.True(t, diags.HasErrors())
	found := false
	for _, d := range diags.Errors() {
		found = found || d.Code == "VER002"
	}
	assert.True(t, found)
}

func TestVerifyMissingTerminator(t *testing.T) {
	m := &il.Module{Version: "0.2.0", Functions: []*il.Function{
		{Name: "main", ReturnType: il.Void, Linkage: il.Export, Blocks: []*il.BasicBlock{
			{Label: "entry", Instructions: []*il.Instr{{Op: il.OpAdd, Operands: []il.Value{il.ConstIntVal(1, false), il.ConstIntVal(2, false)}, ResultTy: il.I64, HasResult: true, ResultID: 0}}},
		}},
	}}
	diags := Verify(m)
	require.True(t, diags.HasErrors())
	assert.Equal(t, "VER005", diags.Errors()[0].Code)
}

func TestVerifyEntryBlockWithParams(t *testing.T) {
	m := &il.Module{Version: "0.2.0", Functions: []*il.Function{
		{Name: "main", ReturnType: il.Void, Linkage: il.Export, Blocks: []*il.BasicBlock{
			{Label: "entry", Params: []il.Param{{ID: 0, Type: il.I64}}, Instructions: []*il.Instr{{Op: il.OpRet}}},
		}},
	}}
	diags := Verify(m)
	require.True(t, diags.HasErrors())
	codes := codesOf(diags)
	assert.Contains(t, codes, "VER006")
}

func TestVerifyBranchTargetMissing(t *testing.T) {
	m := &il.Module{Version: "0.2.0", Functions: []*il.Function{
		{Name: "main", ReturnType: il.Void, Linkage: il.Export, Blocks: []*il.BasicBlock{
			{Label: "entry", Instructions: []*il.Instr{{Op: il.OpBr, Labels: []string{"nope"}, BrArgs: [][]il.Value{nil}}}},
		}},
	}}
	diags := Verify(m)
	require.True(t, diags.HasErrors())
	assert.Contains(t, codesOf(diags), "VER008")
}

func TestVerifyBranchArgMismatch(t *testing.T) {
	m := &il.Module{Version: "0.2.0", Functions: []*il.Function{
		{Name: "main", ReturnType: il.Void, Linkage: il.Export, Blocks: []*il.BasicBlock{
			{Label: "entry", Instructions: []*il.Instr{{Op: il.OpBr, Labels: []string{"next"}, BrArgs: [][]il.Value{nil}}}},
			{Label: "next", Params: []il.Param{{ID: 1, Type: il.I64}}, Instructions: []*il.Instr{{Op: il.OpRet}}},
		}},
	}}
	diags := Verify(m)
	require.True(t, diags.HasErrors())
	assert.Contains(t, codesOf(diags), "VER009")
}

func TestVerifyOperandCategoryMismatch(t *testing.T) {
	m := &il.Module{Version: "0.2.0", Functions: []*il.Function{
		{Name: "main", ReturnType: il.Void, Linkage: il.Export, Blocks: []*il.BasicBlock{
			{Label: "entry", Instructions: []*il.Instr{
				{Op: il.OpAdd, Operands: []il.Value{il.ConstFloatVal(1.0), il.ConstIntVal(2, false)}, ResultTy: il.I64, HasResult: true, ResultID: 0},
				{Op: il.OpRet},
			}},
		}},
	}}
	diags := Verify(m)
	require.True(t, diags.HasErrors())
	assert.Contains(t, codesOf(diags), "VER013")
}

func TestVerifySSAUseBeforeDef(t *testing.T) {
	m := &il.Module{Version: "0.2.0", Functions: []*il.Function{
		{Name: "main", ReturnType: il.Void, Linkage: il.Export, Blocks: []*il.BasicBlock{
			{Label: "entry", Instructions: []*il.Instr{
				{Op: il.OpAdd, Operands: []il.Value{il.TempVal(5), il.ConstIntVal(2, false)}, ResultTy: il.I64, HasResult: true, ResultID: 0},
				{Op: il.OpRet},
			}},
		}},
	}}
	diags := Verify(m)
	require.True(t, diags.HasErrors())
	assert.Contains(t, codesOf(diags), "VER031")
}

func TestVerifyHandlerBlockShape(t *testing.T) {
	m := &il.Module{Version: "0.2.0", Functions: []*il.Function{
		{Name: "main", ReturnType: il.Void, Linkage: il.Export, Blocks: []*il.BasicBlock{
			{Label: "entry", Instructions: []*il.Instr{
				{Op: il.OpEhPush, Labels: []string{"handler"}},
				{Op: il.OpEhPop},
				{Op: il.OpRet},
			}},
			{Label: "handler", Instructions: []*il.Instr{{Op: il.OpRet}}},
		}},
	}}
	diags := Verify(m)
	require.True(t, diags.HasErrors())
	assert.Contains(t, codesOf(diags), "VER040")
}

func codesOf(diags source.List) []string {
	var out []string
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}
