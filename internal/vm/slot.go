// Package vm implements the IL interpreter (spec.md §4.5-4.6, §4.9): the
// frame/slot runtime model, the three interchangeable opcode-dispatch
// strategies, structured trap/exception handling, the runtime-bridge call
// path, and the trace/debug hooks. Its shape mirrors the teacher's
// internal/eval package (a tagged runtime Value, a Frame-like evaluation
// context, an effect/capability bridge in internal/effects) generalized from
// AST-tree evaluation to straight-line SSA block interpretation.
package vm

// SlotKind tags the runtime variant carried by a Slot. It is its own closed
// set rather than a reuse of il.ValueKind: a Slot additionally carries the
// ResumeTok runtime handle that has no textual-operand counterpart in the IL
// object model (spec §3.1 lists ResumeTok as a type, never as a literal
// operand form).
type SlotKind int

const (
	SlotVoid SlotKind = iota
	SlotInt
	SlotFloat
	SlotStr
	SlotPtr
	SlotError
	SlotResumeTok
)

// Slot is the runtime value cell spec §4.5 describes as "large enough for
// i64, f64, raw pointer, or runtime string handle". IsBool marks an i1
// result so comparisons and i1 constants never get misread as i64 1, the
// same round-trip concern il.Value.Hash documents at the IL-text layer.
type Slot struct {
	Kind SlotKind

	I      int64
	IsBool bool

	F float64

	StrHandle int // index into VM.strings

	Ptr *Pointer

	// FuncName identifies a function-address value (produced by GAddr of a
	// function name), used by CallIndirect to resolve its callee.
	FuncName string

	Err *VmError

	Resume *ResumeToken
}

// VoidSlot is the result of any instruction whose result type is void.
var VoidSlot = Slot{Kind: SlotVoid}

func intSlot(v int64, isBool bool) Slot {
	return Slot{Kind: SlotInt, I: v, IsBool: isBool}
}

func boolSlot(b bool) Slot {
	v := int64(0)
	if b {
		v = 1
	}
	return Slot{Kind: SlotInt, I: v, IsBool: true}
}

func floatSlot(f float64) Slot       { return Slot{Kind: SlotFloat, F: f} }
func ptrSlot(p *Pointer) Slot        { return Slot{Kind: SlotPtr, Ptr: p} }
func strSlot(handle int) Slot        { return Slot{Kind: SlotStr, StrHandle: handle} }
func errSlot(e VmError) Slot         { return Slot{Kind: SlotError, Err: &e} }
func resumeSlot(t *ResumeToken) Slot { return Slot{Kind: SlotResumeTok, Resume: t} }

func (s Slot) Bool() bool { return s.I != 0 }

// Pointer is the VM's runtime pointer representation: an offset into a
// frame-scoped allocation cell. Alloca creates a new Cell; GEP advances
// Offset within the same Cell, and Load/Store bounds-check Offset against
// Cell.Slots.
type Pointer struct {
	Cell   *MemCell
	Offset int
}

// MemCell is one Alloca's backing storage — a contiguous run of slots, freed
// (eligible for GC) when its owning frame returns, matching spec §4.5's
// "Alloca is frame-scoped".
type MemCell struct {
	Slots []Slot
}

func newCell(n int) *MemCell {
	return &MemCell{Slots: make([]Slot, n)}
}

func (p *Pointer) inBounds() bool {
	return p != nil && p.Offset >= 0 && p.Offset < len(p.Cell.Slots)
}
