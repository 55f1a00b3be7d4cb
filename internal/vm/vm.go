package vm

import (
	"fmt"
	"io"

	"github.com/splanck/viper-sub015/internal/config"
	"github.com/splanck/viper-sub015/internal/il"
)

// Config is the VM's runtime configuration once internal/config's YAML
// document has been resolved to concrete types (DispatchStrategy, a
// TraceConfig bound to a real io.Writer; breakpoints stay plain names and
// numbers matched as each instruction runs). FromConfig performs that
// resolution.
type Config struct {
	Dispatch        DispatchStrategy
	MaxInstructions uint64
	PollInterval    uint64
	Trace           TraceConfig
	Debug           DebugConfig
}

// PollFunc is invoked by the VM every PollInterval instructions (spec §5),
// giving a host the chance to cancel a running program. A non-nil error
// aborts the run with that error.
type PollFunc func() error

func dispatchStrategyFromString(s string) DispatchStrategy {
	switch s {
	case "big-switch":
		return DispatchBigSwitch
	case "threaded":
		return DispatchThreaded
	default:
		return DispatchFunctionTable
	}
}

// FromConfig adapts a loaded config.VMConfig into a VM Config, binding trace
// output to out and copying each breakpoint's Function, Block and Line.
// Breakpoints are not checked against any module here, and a breakpoint's
// File is not carried over: the copied Breakpoint's FileID is always 0.
func FromConfig(c config.VMConfig, out io.Writer) Config {
	bps := make([]Breakpoint, 0, len(c.Debug.Breakpoints))
	for _, b := range c.Debug.Breakpoints {
		bps = append(bps, Breakpoint{Function: b.Function, Block: b.Block, Line: b.Line})
	}
	return Config{
		Dispatch:        dispatchStrategyFromString(c.Dispatch),
		MaxInstructions: c.MaxInstructions,
		PollInterval:    c.PollInterval,
		Trace:           TraceConfig{ILTrace: c.Trace.ILTrace, SourceTrace: c.Trace.SourceTrace, Out: out},
		Debug:           DebugConfig{Enabled: c.Debug.Enabled, Breakpoints: bps},
	}
}

// VM interprets one il.Module. Construct with NewVM, run with Run.
type VM struct {
	module *il.Module
	config Config

	trace *traceSink
	debug *DebugController

	strings     []string
	stringIndex map[string]int
	globals     map[string]Slot

	threadCache map[*il.BasicBlock]*threadedBlock

	bridge map[string]Adapter

	instrCount uint64
	poll       PollFunc
}

// NewVM constructs a VM over module with cfg, binding module-level globals
// (spec §3.6) into runtime slots. GlobalAddr values referencing functions or
// externs resolve lazily by name; only Global entries with an Init constant
// are materialized here.
func NewVM(module *il.Module, cfg Config) *VM {
	vm := &VM{
		module:      module,
		config:      cfg,
		trace:       newTraceSink(cfg.Trace),
		debug:       newDebugController(cfg.Debug),
		stringIndex: make(map[string]int),
		globals:     make(map[string]Slot),
		threadCache: make(map[*il.BasicBlock]*threadedBlock),
		bridge:      make(map[string]Adapter),
	}
	registerBuiltinAdapters(vm)
	for _, g := range module.Globals {
		if g.Init != nil {
			vm.globals[g.Name] = vm.val(nil, *g.Init)
		}
	}
	return vm
}

// SetPoll installs the host cancellation hook (spec §5).
func (vm *VM) SetPoll(p PollFunc) { vm.poll = p }

func (vm *VM) internString(s string) int {
	if idx, ok := vm.stringIndex[s]; ok {
		return idx
	}
	idx := len(vm.strings)
	vm.strings = append(vm.strings, s)
	vm.stringIndex[s] = idx
	return idx
}

// InternString exposes the VM's string table to callers that need to build
// a Str-typed Slot from outside the package, e.g. a CLI driver translating
// argv into call arguments (spec §6.4's entry-point invocation).
func (vm *VM) InternString(s string) int {
	return vm.internString(s)
}

// StringAt returns the interned string at handle, used by runtime-bridge
// adapters that need to read a Slot's string payload.
func (vm *VM) StringAt(handle int) string {
	if handle < 0 || handle >= len(vm.strings) {
		return ""
	}
	return vm.strings[handle]
}

// globalAddr resolves a GlobalAddr operand. A function name resolves to a
// function-pointer slot (consumed by CallIndirect); a Global with an
// initializer resolves to its initial value; anything else is a null pointer
// (an extern, or an uninitialized Global).
func (vm *VM) globalAddr(name string) Slot {
	if _, ok := vm.module.FindFunction(name); ok {
		return Slot{Kind: SlotPtr, FuncName: name}
	}
	if s, ok := vm.globals[name]; ok {
		return s
	}
	return ptrSlot(nil)
}

func (vm *VM) funcPtrName(s Slot) string {
	return s.FuncName
}

// Run executes funcName to completion, returning its result (VoidSlot if the
// function's return type is Void) or the TrapReport of an unhandled trap
// (spec §6.5).
func (vm *VM) Run(funcName string, args []Slot) (Slot, *TrapReport) {
	fn, ok := vm.module.FindFunction(funcName)
	if !ok {
		return VoidSlot, &TrapReport{Kind: RuntimeError, Message: "unknown entry function " + funcName}
	}
	return vm.callFunction(fn, args, nil)
}

// callFunction is one frame activation. A non-nil *TrapReport return means
// the trap was unhandled by every handler in this frame's eh_stack and must
// propagate to the caller — modeled by simply returning up Go's own call
// stack rather than maintaining a separate explicit frame-stack structure
// (spec §4.6 step 3: "pop the frame, propagate to the caller's eh_stack").
func (vm *VM) callFunction(fn *il.Function, args []Slot, caller *Frame) (Slot, *TrapReport) {
	if fn.Linkage == il.Import {
		result, err := vm.callBridge(fn.Name, args)
		if err != nil {
			return VoidSlot, &TrapReport{Kind: IOError, Message: err.Error(), Function: fn.Name}
		}
		return result, nil
	}

	f := newFrame(fn, caller)
	for i, p := range fn.Params {
		if i < len(args) {
			f.set(p.ID, args[i])
		}
	}

	for {
		if f.Block == nil {
			return VoidSlot, &TrapReport{Kind: RuntimeError, Message: "fell off function with no block", Function: fn.Name}
		}
		if f.IP >= len(f.Block.Instructions) {
			return VoidSlot, &TrapReport{Kind: RuntimeError, Message: "fell off block without a terminator",
				Function: fn.Name, Block: f.Block.Label}
		}

		if vm.debug.ShouldSuspend(f) {
			fmt.Fprint(vm.config.Trace.Out, vm.debug.Inspect(f))
		}

		if err := vm.checkBudgetAndPoll(); err != nil {
			return VoidSlot, &TrapReport{Kind: RuntimeError, Message: err.Error(), Function: fn.Name, Block: f.Block.Label}
		}

		in := f.Block.Instructions[f.IP]
		result := vm.dispatch(f, in)

		switch result.tag {
		case rNext:
			vm.trace.emit(f, in.Op.String(), VoidSlot, false)
			f.IP++

		case rValue:
			vm.trace.emit(f, in.Op.String(), result.retVal, in.HasResult)
			if in.HasResult {
				f.set(in.ResultID, result.retVal)
			}
			f.IP++

		case rReturn:
			vm.trace.emit(f, in.Op.String(), result.retVal, false)
			return result.retVal, nil

		case rJump:
			vm.trace.emit(f, in.Op.String(), VoidSlot, false)
			f.jumpTo(result.jumpBlock, result.jumpArgs)

		case rGoto:
			vm.trace.emit(f, in.Op.String(), VoidSlot, false)
			// f.Block/f.IP already repositioned by the handler (ResumeNext).

		case rTrap:
			verr := result.trap
			verr.IP = uint64(f.IP)
			if in.Loc.IsKnown() {
				verr.Line = int32(in.Loc.Line)
			}
			vm.trace.emit(f, in.Op.String(), VoidSlot, false)
			if handled, cont := vm.dispatchTrap(f, verr); handled {
				f = cont
				continue
			}
			return VoidSlot, &TrapReport{
				Kind: verr.Kind, Code: verr.Code, Message: result.msg,
				Function: fn.Name, Block: f.Block.Label, IP: verr.IP,
				SourceLoc: in.Loc,
			}
		}
	}
}

// dispatchTrap walks f's eh_stack top-down (spec §4.6 step 1-2): if a
// handler is found, its block's (Error, ResumeTok) params are populated and
// control transfers there, continuing execution in the same frame. If
// f.EhStack is exhausted, the trap is unhandled in this frame.
func (vm *VM) dispatchTrap(f *Frame, verr VmError) (bool, *Frame) {
	rec, ok := f.popHandler()
	if !ok {
		return false, nil
	}
	// ResumeNext continues at the instruction after the one that actually
	// trapped (verr.IP), not after the EhPush that installed this handler —
	// the protected region is typically more than one instruction long.
	tok := &ResumeToken{Err: verr, ResumeBlock: f.Block, ResumeIP: int(verr.IP) + 1, HandlerDepth: len(f.EhStack)}
	f.ActiveError = &verr
	f.jumpTo(rec.Block, []Slot{errSlot(verr), resumeSlot(tok)})
	return true, f
}

func (vm *VM) checkBudgetAndPoll() error {
	vm.instrCount++
	if vm.config.MaxInstructions != 0 && vm.instrCount > vm.config.MaxInstructions {
		return fmt.Errorf("instruction budget of %d exceeded", vm.config.MaxInstructions)
	}
	if vm.poll != nil && vm.config.PollInterval != 0 && vm.instrCount%vm.config.PollInterval == 0 {
		return vm.poll()
	}
	return nil
}
