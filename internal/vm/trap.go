package vm

import (
	"fmt"

	"github.com/splanck/viper-sub015/internal/il"
	"github.com/splanck/viper-sub015/internal/source"
)

// TrapKind is the closed set of trap kinds from spec §4.6.
type TrapKind int

const (
	DivideByZero TrapKind = iota
	Overflow
	InvalidCast
	DomainError
	Bounds
	FileNotFound
	EOF
	IOError
	InvalidOperation
	RuntimeError
)

var trapKindNames = [...]string{
	DivideByZero: "DivideByZero", Overflow: "Overflow", InvalidCast: "InvalidCast",
	DomainError: "DomainError", Bounds: "Bounds", FileNotFound: "FileNotFound",
	EOF: "EOF", IOError: "IOError", InvalidOperation: "InvalidOperation",
	RuntimeError: "RuntimeError",
}

func (k TrapKind) String() string {
	if int(k) < 0 || int(k) >= len(trapKindNames) {
		return "Unknown"
	}
	return trapKindNames[k]
}

// VmError is the structured error spec §4.6 requires every checked opcode,
// bridge failure, or explicit Trap* instruction to construct.
type VmError struct {
	Kind TrapKind
	Code int32
	IP   uint64
	Line int32
}

// ResumeToken is the runtime handle a handler passes to a Resume*
// instruction (spec §4.6). It remembers the instruction after the one that
// trapped so ResumeNext can continue there, and the eh_stack depth at the
// trap. ResumeSame reaches the handler above this one because dispatch has
// already popped this handler. The VM never marks a token as used, so a
// token is not limited to a single Resume*.
type ResumeToken struct {
	Err          VmError
	ResumeBlock  *il.BasicBlock
	ResumeIP     int
	HandlerDepth int
	consumed     bool
}

// TrapReport is what a `run()` call returns when a trap propagates past
// every frame's eh_stack (spec §6.5, §4.6 step 3).
type TrapReport struct {
	Kind      TrapKind
	Code      int32
	Message   string
	Function  string
	Block     string
	IP        uint64
	SourceLoc source.Pos
}

// Error implements the error interface using the canonical trap format from
// spec §7: "trap: <kind> at <function>:<block> (ip=<n>) [file:line] — <message>".
// The bracketed part holds SourceLoc as line:col; no file name is printed.
func (r *TrapReport) Error() string {
	loc := ""
	if r.SourceLoc.IsKnown() {
		loc = fmt.Sprintf(" [%s]", r.SourceLoc)
	}
	return fmt.Sprintf("trap: %s at %s:%s (ip=%d)%s — %s", r.Kind, r.Function, r.Block, r.IP, loc, r.Message)
}
