package verify

import (
	"github.com/splanck/viper-sub015/internal/il"
	"github.com/splanck/viper-sub015/internal/source"
)

// checkSSA enforces spec §4.3's "SSA" rules: every id is defined at most
// once, and every use is preceded (in the function's block/instruction
// listing order) by its definition — a function parameter, a block
// parameter, or an earlier instruction's result.
func checkSSA(f *il.Function, diags *source.List) {
	defined := make(map[uint32]bool, f.MaxSSAID()+1)
	define := func(id uint32) {
		if defined[id] {
			errorAt(diags, "VER030", f.Name, "", "%%%d is defined more than once", id)
		}
		defined[id] = true
	}
	useCheck := func(b *il.BasicBlock, v il.Value) {
		if v.Kind == il.KindTemp && !defined[v.Temp] {
			errorAt(diags, "VER031", f.Name, b.Label, "use of %%%d before its definition", v.Temp)
		}
	}

	for _, p := range f.Params {
		define(p.ID)
	}
	for _, b := range f.Blocks {
		for _, p := range b.Params {
			define(p.ID)
		}
		for _, in := range b.Instructions {
			for _, opd := range in.Operands {
				useCheck(b, opd)
			}
			for _, args := range in.BrArgs {
				for _, v := range args {
					useCheck(b, v)
				}
			}
			if in.HasResult {
				define(in.ResultID)
			}
		}
	}
}
