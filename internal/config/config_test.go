package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() failed Validate: %v", err)
	}
	if cfg.Dispatch != "function-table" {
		t.Errorf("Default().Dispatch = %q, want function-table", cfg.Dispatch)
	}
}

func TestLoadLayersOverDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "vm.yml")

	content := `dispatch: threaded
max_instructions: 1000000
trace:
  il_trace: true
debug:
  enabled: true
  breakpoints:
    - function: main
      block: entry
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write test file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Dispatch != "threaded" {
		t.Errorf("Dispatch = %q, want threaded", cfg.Dispatch)
	}
	if cfg.MaxInstructions != 1000000 {
		t.Errorf("MaxInstructions = %d, want 1000000", cfg.MaxInstructions)
	}
	if !cfg.Trace.ILTrace {
		t.Error("Trace.ILTrace = false, want true")
	}
	if !cfg.Debug.Enabled || len(cfg.Debug.Breakpoints) != 1 {
		t.Fatalf("Debug = %+v, want one enabled breakpoint", cfg.Debug)
	}
	if cfg.Debug.Breakpoints[0].Function != "main" || cfg.Debug.Breakpoints[0].Block != "entry" {
		t.Errorf("unexpected breakpoint: %+v", cfg.Debug.Breakpoints[0])
	}
	// PollInterval was omitted from the file; it must keep Default()'s zero
	// value rather than being left unset in some other way.
	if cfg.PollInterval != 0 {
		t.Errorf("PollInterval = %d, want 0", cfg.PollInterval)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Error("Load of a missing file returned nil error")
	}
}

func TestLoadRejectsUnknownDispatch(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bad.yml")
	if err := os.WriteFile(path, []byte("dispatch: computed-goto\n"), 0644); err != nil {
		t.Fatalf("write test file: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load accepted an unknown dispatch strategy")
	}
}

func TestValidateAcceptsKnownStrategies(t *testing.T) {
	for _, d := range []string{"", "function-table", "big-switch", "threaded"} {
		cfg := VMConfig{Dispatch: d}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() for dispatch %q: %v", d, err)
		}
	}
}
