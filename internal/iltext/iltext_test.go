package iltext

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splanck/viper-sub015/internal/il"
	"github.com/splanck/viper-sub015/internal/source"
)

// sampleModule builds the module from scenario S1 (spec.md §8): a call to
// an extern plus a void return.
func sampleModule() *il.Module {
	return &il.Module{
		Version: "0.2.0",
		Externs: []*il.Extern{
			{Name: "Viper.Terminal.SayInt", Ret: il.Void, Params: []il.Type{il.I64}},
		},
		Functions: []*il.Function{
			{
				Name:       "main",
				ReturnType: il.Void,
				Linkage:    il.Export,
				Blocks: []*il.BasicBlock{
					{
						Label: "entry",
						Instructions: []*il.Instr{
							{Op: il.OpCall, Callee: "Viper.Terminal.SayInt",
								Operands: []il.Value{il.ConstIntVal(42, false)}},
							{Op: il.OpRet},
						},
					},
				},
			},
		},
	}
}

func TestRoundTripPretty(t *testing.T) {
	m := sampleModule()
	text := WriteText(m, false)

	res := ParseText([]byte(text), "test.il", source.NewManager())
	require.True(t, res.IsOk(), "%v", res.Diags)

	if diff := cmp.Diff(m, res.Value); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCanonicalDeterministic(t *testing.T) {
	m := sampleModule()
	m.Externs = append(m.Externs, &il.Extern{Name: "AAA.First", Ret: il.Void})

	a := WriteText(m, true)
	b := WriteText(m, true)
	assert.Equal(t, a, b)

	// AAA.First sorts before Viper.Terminal.SayInt lexicographically.
	idxAAA := indexOf(a, "extern @AAA.First")
	idxViper := indexOf(a, "extern @Viper.Terminal.SayInt")
	require.True(t, idxAAA >= 0 && idxViper >= 0)
	assert.Less(t, idxAAA, idxViper)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func TestParseScenarioS4Switch(t *testing.T) {
	src := `il 0.2.0
func @main() -> void {
entry:
  switch %0, default: d(), 1: a(), 2: b()
a:
  ret
b:
  ret
d:
  ret
}
`
	res := ParseText([]byte(src), "s4.il", source.NewManager())
	require.True(t, res.IsOk(), "%v", res.Diags)

	entry, ok := res.Value.Functions[0].Block("entry")
	require.True(t, ok)
	sw := entry.Instructions[0]
	assert.Equal(t, il.OpSwitchI32, sw.Op)
	assert.Equal(t, []string{"d", "a", "b"}, sw.Labels)
	assert.Equal(t, []int32{1, 2}, sw.SwitchVals)
}

func TestParseRejectsUnknownOpcode(t *testing.T) {
	src := "il 0.2.0\nfunc @main() -> void {\nentry:\n  bogus %0\n  ret\n}\n"
	res := ParseText([]byte(src), "bad.il", source.NewManager())
	assert.False(t, res.IsOk())
	assert.True(t, res.Diags.HasErrors())
}

func TestParseCheckedDivision(t *testing.T) {
	src := `il 0.2.0
func @main() -> i64 {
entry:
  %0 = sdiv.chk0 10, 0 : i64
  ret %0
}
`
	res := ParseText([]byte(src), "s2.il", source.NewManager())
	require.True(t, res.IsOk(), "%v", res.Diags)
	instr := res.Value.Functions[0].Blocks[0].Instructions[0]
	assert.Equal(t, il.OpSDivChk0, instr.Op)
	assert.True(t, instr.HasResult)
	assert.Equal(t, il.I64, instr.ResultTy)
}
