package optimize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Plan is the YAML document form of a pass sequence (spec §4.8: "the pass
// list is configurable, not hardcoded"), the same load-a-tagged-struct shape
// internal/config uses for VMConfig.
type Plan struct {
	Passes []string `yaml:"passes"`
	Verify bool     `yaml:"verify_each_pass"`
}

// LoadPlan reads a pass plan from path.
func LoadPlan(path string) (Plan, error) {
	var p Plan
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("optimize: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("optimize: parse %s: %w", path, err)
	}
	return p, nil
}

// DefaultPlan is the pass sequence used when no plan file is supplied.
func DefaultPlan() Plan {
	return Plan{Passes: []string{"dead-block-elim", "prune-unreferenced-functions"}, Verify: true}
}

// Registry resolves a pass name from a Plan to its implementation. Keep, for
// PruneUnreferencedFunctions, must be supplied by the caller (cmd/viper)
// since only it knows which function is the run's entry point.
func Registry(keepFunctions []string) map[string]any {
	return map[string]any{
		"dead-block-elim":              DeadBlockElim{},
		"prune-unreferenced-functions": PruneUnreferencedFunctions{Keep: keepFunctions},
	}
}

// BuildManager resolves a Plan's pass names against reg and constructs a
// Manager, or returns an error naming the first unknown pass.
func BuildManager(p Plan, reg map[string]any) (*Manager, error) {
	passes := make([]any, 0, len(p.Passes))
	for _, name := range p.Passes {
		impl, ok := reg[name]
		if !ok {
			return nil, fmt.Errorf("optimize: unknown pass %q", name)
		}
		passes = append(passes, impl)
	}
	return NewManager(p.Verify, passes...), nil
}
