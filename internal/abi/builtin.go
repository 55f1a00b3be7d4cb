package abi

import "github.com/splanck/viper-sub015/internal/il"

// init populates the small, concrete subset of the runtime ABI surface
// named in SPEC_FULL.md §4 ("a minimal built-in runtime ABI implementation")
// so `cmd/viper run` has something real to call (scenario S1). Spec §6.3
// deliberately leaves the registry's contents unspecified beyond "it
// exists, externs must match it, every entry is complete" — this is one
// concrete population of it, grouped by category the way the teacher groups
// effects ("IO", "FS") in internal/effects/ops.go.
func init() {
	Register(&Descriptor{
		Name:    "Viper.Terminal.SayInt",
		Params:  []il.Type{il.I64},
		Ret:     il.Void,
		Effects: EffectTags{SideEffects: true, WritesMemory: true},
	})
	Register(&Descriptor{
		Name:    "Viper.Terminal.SayStr",
		Params:  []il.Type{il.Str},
		Ret:     il.Void,
		Effects: EffectTags{SideEffects: true, WritesMemory: true},
	})
	Register(&Descriptor{
		Name:    "Viper.Terminal.ReadLine",
		Params:  nil,
		Ret:     il.Str,
		Effects: EffectTags{SideEffects: true, ReadsMemory: true, MayTrap: true},
	})
	Register(&Descriptor{
		Name:    "Viper.Math.Sqrt",
		Params:  []il.Type{il.F64},
		Ret:     il.F64,
		Effects: EffectTags{MayTrap: true},
	})
	Register(&Descriptor{
		Name:    "Viper.Time.NowUnix",
		Params:  nil,
		Ret:     il.I64,
		Effects: EffectTags{SideEffects: true},
	})
}
