package optimize

import "github.com/splanck/viper-sub015/internal/il"

// PruneUnreferencedFunctions removes Internal-linkage functions no surviving
// Call, CallIndirect (via a GlobalAddr function-pointer operand), or Global
// initializer references by name (spec §4.8 example ModulePass). Export and
// Import linkage functions are never pruned — Export because a host may
// call them directly, Import because they have no body to begin with. Keep
// additionally protects names a caller knows are live roots even though
// nothing in the module itself references them, e.g. the entry function
// `cmd/viper run` is about to invoke.
type PruneUnreferencedFunctions struct {
	Keep []string
}

func (PruneUnreferencedFunctions) Name() string { return "prune-unreferenced-functions" }

func (PruneUnreferencedFunctions) Preserves() []Analysis {
	return []Analysis{AnalysisSSA, AnalysisDominance}
}

func (p PruneUnreferencedFunctions) RunModule(m *il.Module) bool {
	referenced := map[string]bool{}
	mark := func(name string) { referenced[name] = true }
	for _, k := range p.Keep {
		mark(k)
	}

	for _, g := range m.Globals {
		if g.Init != nil && g.Init.Kind == il.KindGlobalAddr {
			mark(g.Init.Global)
		}
	}
	for _, fn := range m.Functions {
		for _, b := range fn.Blocks {
			for _, in := range b.Instructions {
				if in.Op == il.OpCall {
					mark(in.Callee)
				}
				for _, v := range in.Operands {
					if v.Kind == il.KindGlobalAddr {
						mark(v.Global)
					}
				}
				for _, args := range in.BrArgs {
					for _, v := range args {
						if v.Kind == il.KindGlobalAddr {
							mark(v.Global)
						}
					}
				}
			}
		}
	}

	kept := make([]*il.Function, 0, len(m.Functions))
	changed := false
	for _, fn := range m.Functions {
		if fn.Linkage != il.Internal || referenced[fn.Name] {
			kept = append(kept, fn)
		} else {
			changed = true
		}
	}
	m.Functions = kept
	return changed
}
