// Package abi defines the runtime bridge ABI registry (spec §4.7): a
// canonical table mapping runtime helper names to {params, ret, effect
// tags}. It is deliberately decoupled from internal/vm — the verifier
// cross-checks extern signatures against this registry without knowing how
// to invoke anything, and internal/vm binds adapters to these same names
// (internal/vm/bridge.go) without this package importing vm. The split
// mirrors the teacher's internal/effects package, where Registry holds
// operations but capability.go/ops.go never reach into the evaluator's
// internals directly.
package abi

import "github.com/splanck/viper-sub015/internal/il"

// EffectTags records the effect classification spec §4.7 requires every
// registry entry to declare.
type EffectTags struct {
	SideEffects  bool
	ReadsMemory  bool
	WritesMemory bool
	MayTrap      bool
}

// Descriptor is one runtime helper's canonical signature and effect tags.
type Descriptor struct {
	Name    string
	Params  []il.Type
	Ret     il.Type
	Effects EffectTags
}

// registry maps canonical helper names to their descriptors. Population
// happens via Register, typically from an init() in a file grouped by
// category (terminal, math, time, ...), mirroring internal/effects'
// RegisterOp-from-init pattern in the teacher.
var registry = make(map[string]*Descriptor)

// Register adds or replaces a descriptor. Panics on a nil descriptor or an
// empty name — both indicate a programming error in the registering code,
// not a condition a host embedder can recover from.
func Register(d *Descriptor) {
	if d == nil || d.Name == "" {
		panic("abi: invalid descriptor registration")
	}
	registry[d.Name] = d
}

// Lookup returns the descriptor for name, if registered. An unregistered
// name is not an error by itself — spec §4.7: "the verifier treats unknown
// extern names as opaque (no signature check possible)".
func Lookup(name string) (*Descriptor, bool) {
	d, ok := registry[name]
	return d, ok
}

// Matches reports whether an extern's declared signature matches the
// registry entry for its name. Used by the verifier's module-level ABI
// cross-check (spec §4.3).
func (d *Descriptor) Matches(ret il.Type, params []il.Type) bool {
	if d.Ret != ret {
		return false
	}
	if len(d.Params) != len(params) {
		return false
	}
	for i := range params {
		if d.Params[i] != params[i] {
			return false
		}
	}
	return true
}

// Names returns every registered helper name in no particular order;
// sorting is left to the caller.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	return names
}
