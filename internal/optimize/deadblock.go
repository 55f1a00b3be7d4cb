package optimize

import "github.com/splanck/viper-sub015/internal/il"

// DeadBlockElim removes blocks unreachable from a function's entry block
// (spec §4.8 example pass). Since an unreachable block can never execute,
// deleting it cannot change VM-observable output — the core P8 invariant —
// and it invalidates reachability but preserves SSA (every remaining def
// still dominates its remaining uses; nothing that referenced a removed
// block's results survives, because nothing reachable could reference them).
type DeadBlockElim struct{}

func (DeadBlockElim) Name() string { return "dead-block-elim" }

func (DeadBlockElim) Preserves() []Analysis {
	return []Analysis{AnalysisSSA}
}

func (p DeadBlockElim) RunFunction(fn *il.Function) bool {
	if len(fn.Blocks) == 0 {
		return false
	}
	reachable := map[string]bool{fn.Blocks[0].Label: true}
	worklist := []string{fn.Blocks[0].Label}
	index := make(map[string]*il.BasicBlock, len(fn.Blocks))
	for _, b := range fn.Blocks {
		index[b.Label] = b
	}

	for len(worklist) > 0 {
		label := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		b, ok := index[label]
		if !ok || len(b.Instructions) == 0 {
			continue
		}
		// Every instruction's labels count, not just the terminator's: an
		// eh.push names its handler block, which runs when a trap fires.
		for _, in := range b.Instructions {
			for _, succ := range in.Labels {
				if !reachable[succ] {
					reachable[succ] = true
					worklist = append(worklist, succ)
				}
			}
		}
	}

	kept := make([]*il.BasicBlock, 0, len(fn.Blocks))
	changed := false
	for _, b := range fn.Blocks {
		if reachable[b.Label] {
			kept = append(kept, b)
		} else {
			changed = true
		}
	}
	fn.Blocks = kept
	return changed
}
