// Package config loads the VM's runtime configuration (spec §6.4): which
// dispatch strategy to interpret with, the max-instruction-count safety
// valve, the poll-callback interval, and the trace/debug flags. It mirrors
// the teacher's internal/eval_harness.LoadSpec shape — a plain YAML-tagged
// struct unmarshaled with gopkg.in/yaml.v3 and then validated by hand —
// generalized from a benchmark spec file to a VM config file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Breakpoint is the YAML form of a debug breakpoint: either a function+block
// label pair or a file+line pair, mirroring internal/vm.Breakpoint (spec
// §4.9). vm.FromConfig does not carry File over; only Function, Block and
// Line reach the VM. Kept as its own type here (rather than importing internal/vm) so
// this package never depends on the VM it configures — cmd/viper is what
// wires the two together.
type Breakpoint struct {
	Function string `yaml:"function"`
	Block    string `yaml:"block"`
	File     string `yaml:"file"`
	Line     uint32 `yaml:"line"`
}

// TraceConfig is the YAML form of internal/vm.TraceConfig, minus the output
// writer (cmd/viper supplies that at construction time: os.Stdout).
type TraceConfig struct {
	ILTrace     bool `yaml:"il_trace"`
	SourceTrace bool `yaml:"source_trace"`
}

// DebugConfig is the YAML form of internal/vm.DebugConfig.
type DebugConfig struct {
	Enabled     bool         `yaml:"enabled"`
	Breakpoints []Breakpoint `yaml:"breakpoints"`
}

// VMConfig is the top-level document loaded from a `--config` YAML file
// (spec §6.4). Every field has a documented default so an absent or partial
// file still produces a usable configuration.
type VMConfig struct {
	// Dispatch selects the interpretation strategy: "function-table" (the
	// default), "big-switch", or "threaded".
	Dispatch string `yaml:"dispatch"`

	// MaxInstructions bounds total interpreted instructions across a run,
	// 0 means unbounded. Guards against runaway or malicious IL (spec §6.4).
	MaxInstructions uint64 `yaml:"max_instructions"`

	// PollInterval is how many instructions elapse between host
	// poll-callback invocations (spec §5: "the host may cancel a running
	// program between polls"). 0 disables polling.
	PollInterval uint64 `yaml:"poll_interval"`

	Trace TraceConfig `yaml:"trace"`
	Debug DebugConfig `yaml:"debug"`
}

// Default returns the configuration used when no file is supplied.
func Default() VMConfig {
	return VMConfig{Dispatch: "function-table", MaxInstructions: 0, PollInterval: 0}
}

// Load reads and validates a VMConfig document from path, layering it over
// Default() for any field the file omits.
func Load(path string) (VMConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the fields Load cannot express in the type system alone.
func (c VMConfig) Validate() error {
	switch c.Dispatch {
	case "", "function-table", "big-switch", "threaded":
	default:
		return fmt.Errorf("config: unknown dispatch strategy %q", c.Dispatch)
	}
	return nil
}
