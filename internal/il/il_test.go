package il

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeMnemonicRoundTrip(t *testing.T) {
	for _, ty := range []Type{Void, I1, I16, I32, I64, F64, Ptr, Str, Error, ResumeTok} {
		got, ok := TypeByMnemonic(ty.String())
		require.True(t, ok, ty.String())
		assert.Equal(t, ty, got)
	}
}

func TestValueEqualityMixesIsBool(t *testing.T) {
	boolTrue := ConstIntVal(1, true)
	intOne := ConstIntVal(1, false)

	assert.NotEqual(t, boolTrue, intOne)
	assert.NotEqual(t, boolTrue.Hash(), intOne.Hash())
	assert.True(t, boolTrue.Equal(ConstBoolVal(true)))
}

func TestValueStrings(t *testing.T) {
	assert.Equal(t, "%3", TempVal(3).String())
	assert.Equal(t, "@foo", GlobalAddrVal("foo").String())
	assert.Equal(t, "null", NullPtrVal().String())
}

func TestOpcodeMnemonicTableCovers(t *testing.T) {
	// Every opcode except OpInvalid must resolve back via its mnemonic.
	for op := OpAdd; op < opcodeCount; op++ {
		info := Info(op)
		require.NotEmpty(t, info.Mnemonic, "opcode %d missing metadata", op)
		resolved, ok := ByMnemonic(info.Mnemonic)
		require.True(t, ok)
		assert.Equal(t, op, resolved)
	}
}

func TestBlockTerminated(t *testing.T) {
	b := &BasicBlock{Label: "entry"}
	assert.False(t, b.Terminated())

	b.Instructions = append(b.Instructions, &Instr{Op: OpAdd, HasResult: true, ResultID: 1})
	assert.False(t, b.Terminated())

	b.Instructions = append(b.Instructions, &Instr{Op: OpRet})
	assert.True(t, b.Terminated())
	assert.Equal(t, OpRet, b.Terminator().Op)
}

func TestFunctionMaxSSAID(t *testing.T) {
	f := &Function{
		Params: []Param{{ID: 0}, {ID: 1}},
		Blocks: []*BasicBlock{
			{
				Label: "entry",
				Instructions: []*Instr{
					{Op: OpAdd, HasResult: true, ResultID: 5},
					{Op: OpRet},
				},
			},
		},
	}
	assert.Equal(t, uint32(5), f.MaxSSAID())
}

func TestModuleResolveName(t *testing.T) {
	m := &Module{
		Externs:   []*Extern{{Name: "puts", Ret: Void, Params: []Type{Str}}},
		Functions: []*Function{{Name: "main", Linkage: Export}},
		Globals:   []*Global{{Name: "counter", Type: I64}},
	}
	assert.True(t, m.ResolveName("puts"))
	assert.True(t, m.ResolveName("main"))
	assert.True(t, m.ResolveName("counter"))
	assert.False(t, m.ResolveName("missing"))
}
