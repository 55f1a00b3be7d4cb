package vm

import "fmt"

// Breakpoint matches spec §4.9's "by block label within a function, or by
// source file+line".
type Breakpoint struct {
	Function string
	Block    string
	FileID   uint32
	Line     uint32
}

func (bp Breakpoint) matchesBlock(functionName, blockLabel string) bool {
	return bp.Block != "" && bp.Function == functionName && bp.Block == blockLabel
}

func (bp Breakpoint) matchesLoc(fileID, line uint32) bool {
	return bp.Block == "" && bp.FileID == fileID && bp.Line == line
}

// DebugConfig enables the debug controller at VM construction time.
type DebugConfig struct {
	Enabled     bool
	Breakpoints []Breakpoint
}

// DebugController implements spec §4.9's suspend/continue/step/inspect
// contract. `cmd/viper trace` only collects breakpoints (via peterh/liner)
// before the run starts; on a suspension the VM writes Inspect's output to
// the trace writer and carries on. Nothing in this repository calls Continue
// or Step.
type DebugController struct {
	enabled     bool
	breakpoints []Breakpoint
	stepBudget  int // >0 means "suspend again after this many more instructions"
	paused      bool
}

func newDebugController(cfg DebugConfig) *DebugController {
	return &DebugController{enabled: cfg.Enabled, breakpoints: cfg.Breakpoints}
}

// ShouldSuspend is asked before dispatching every instruction (spec §4.9).
func (d *DebugController) ShouldSuspend(f *Frame) bool {
	if d == nil || !d.enabled {
		return false
	}
	if d.stepBudget > 0 {
		d.stepBudget--
		if d.stepBudget == 0 {
			return true
		}
	}
	for _, bp := range d.breakpoints {
		if bp.matchesBlock(f.Fn.Name, f.Block.Label) && f.IP == 0 {
			return true
		}
		loc := f.Block.Instructions[f.IP].Loc
		if bp.matchesLoc(loc.FileID, loc.Line) {
			return true
		}
	}
	return false
}

// Continue resumes execution until the next breakpoint or program end.
func (d *DebugController) Continue() { d.stepBudget = 0 }

// Step arms the controller to suspend again after n more instructions.
func (d *DebugController) Step(n int) {
	if n <= 0 {
		n = 1
	}
	d.stepBudget = n
}

// Inspect renders the current frame's registers for interactive use (spec
// §4.9: "inspection of the current frame's registers and operand stack").
func (d *DebugController) Inspect(f *Frame) string {
	out := fmt.Sprintf("%s:%s ip=%d\n", f.Fn.Name, f.Block.Label, f.IP)
	for id, s := range f.Registers {
		out += fmt.Sprintf("  %%%d = %s\n", id, slotString(s))
	}
	return out
}
