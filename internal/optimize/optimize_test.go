package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splanck/viper-sub015/internal/il"
)

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
					{Label: "entry", Instructions: []*il.Instr{
						{Op: il.OpCall, Callee: "Viper.Terminal.SayInt", Operands: []il.Value{il.ConstIntVal(42, false)}},
						{Op: il.OpRet},
					}},
				},
			},
		},
	}
}

func TestDeadBlockElimRemovesUnreachableBlock(t *testing.T) {
	m := helloModule()
	fn := m.Functions[0]
	fn.Blocks = append(fn.Blocks, &il.BasicBlock{
		Label: "dead", Instructions: []*il.Instr{{Op: il.OpRet}},
	})

	changed := DeadBlockElim{}.RunFunction(fn)
	assert.True(t, changed)
	assert.Len(t, fn.Blocks, 1)
	assert.Equal(t, "entry", fn.Blocks[0].Label)
}

func TestDeadBlockElimKeepsReachableBlocks(t *testing.T) {
	m := helloModule()
	fn := m.Functions[0]
	fn.Blocks[0].Instructions = []*il.Instr{
		{Op: il.OpBr, Labels: []string{"next"}, BrArgs: [][]il.Value{nil}},
	}
	fn.Blocks = append(fn.Blocks, &il.BasicBlock{
		Label: "next", Instructions: []*il.Instr{{Op: il.OpRet}},
	})

	changed := DeadBlockElim{}.RunFunction(fn)
	assert.False(t, changed)
	assert.Len(t, fn.Blocks, 2)
}

func TestPruneUnreferencedFunctionsDropsDeadInternal(t *testing.T) {
	m := helloModule()
	m.Functions = append(m.Functions, &il.Function{
		Name: "unused", ReturnType: il.Void, Linkage: il.Internal,
		Blocks: []*il.BasicBlock{{Label: "entry", Instructions: []*il.Instr{{Op: il.OpRet}}}},
	})

	changed := PruneUnreferencedFunctions{}.RunModule(m)
	assert.True(t, changed)
	require.Len(t, m.Functions, 1)
	assert.Equal(t, "main", m.Functions[0].Name)
}

func TestPruneUnreferencedFunctionsKeepsCalled(t *testing.T) {
	m := helloModule()
	m.Functions = append(m.Functions, &il.Function{
		Name: "helper", ReturnType: il.Void, Linkage: il.Internal,
		Blocks: []*il.BasicBlock{{Label: "entry", Instructions: []*il.Instr{{Op: il.OpRet}}}},
	})
	m.Functions[0].Blocks[0].Instructions = []*il.Instr{
		{Op: il.OpCall, Callee: "helper"},
		{Op: il.OpRet},
	}

	changed := PruneUnreferencedFunctions{}.RunModule(m)
	assert.False(t, changed)
	assert.Len(t, m.Functions, 2)
}

func TestManagerRunVerifiesEachPass(t *testing.T) {
	m := helloModule()
	fn := m.Functions[0]
	fn.Blocks = append(fn.Blocks, &il.BasicBlock{
		Label: "dead", Instructions: []*il.Instr{{Op: il.OpRet}},
	})

	mgr := NewManager(true, DeadBlockElim{}, PruneUnreferencedFunctions{Keep: []string{"main"}})
	results, err := mgr.Run(m)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Changed)
	assert.Len(t, m.Functions[0].Blocks, 1)
}

func TestBuildManagerRejectsUnknownPass(t *testing.T) {
	_, err := BuildManager(Plan{Passes: []string{"not-a-real-pass"}}, Registry(nil))
	assert.Error(t, err)
}

func TestDefaultPlanBuildsManager(t *testing.T) {
	mgr, err := BuildManager(DefaultPlan(), Registry([]string{"main"}))
	require.NoError(t, err)
	assert.NotNil(t, mgr)
}
