package abi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splanck/viper-sub015/internal/il"
)

func TestBuiltinsRegistered(t *testing.T) {
	d, ok := Lookup("Viper.Terminal.SayInt")
	require.True(t, ok)
	assert.Equal(t, il.Void, d.Ret)
	assert.Equal(t, []il.Type{il.I64}, d.Params)
	assert.True(t, d.Effects.SideEffects)
}

func TestDescriptorMatches(t *testing.T) {
	d, _ := Lookup("Viper.Math.Sqrt")
	assert.True(t, d.Matches(il.F64, []il.Type{il.F64}))
	assert.False(t, d.Matches(il.I64, []il.Type{il.F64}))
	assert.False(t, d.Matches(il.F64, []il.Type{il.F64, il.F64}))
}

func TestLookupUnknownIsOpaque(t *testing.T) {
	_, ok := Lookup("Totally.Unknown")
	assert.False(t, ok)
}
