package vm

import (
	"fmt"
	"io"
)

// TraceConfig enables the trace hook spec §4.9 describes: "a configurable
// output channel with flags {il_trace, source_trace}".
type TraceConfig struct {
	ILTrace     bool
	SourceTrace bool
	Out         io.Writer
}

// traceSink emits one deterministic record per dispatched instruction —
// deterministic meaning a record is a pure function of (function, block, ip,
// opcode, operand values), never of wall-clock time or map iteration order,
// so two runs of the same program produce byte-identical trace output.
type traceSink struct {
	cfg TraceConfig
}

func newTraceSink(cfg TraceConfig) *traceSink {
	return &traceSink{cfg: cfg}
}

func (t *traceSink) emit(f *Frame, opRepr string, result Slot, hasResult bool) {
	if t == nil || t.cfg.Out == nil || !t.cfg.ILTrace {
		return
	}
	if hasResult {
		fmt.Fprintf(t.cfg.Out, "[%s:%s:%d] %s -> %s\n", f.Fn.Name, f.Block.Label, f.IP, opRepr, slotString(result))
		return
	}
	fmt.Fprintf(t.cfg.Out, "[%s:%s:%d] %s\n", f.Fn.Name, f.Block.Label, f.IP, opRepr)
}

func slotString(s Slot) string {
	switch s.Kind {
	case SlotInt:
		if s.IsBool {
			return fmt.Sprintf("%t", s.I != 0)
		}
		return fmt.Sprintf("%d", s.I)
	case SlotFloat:
		return fmt.Sprintf("%g", s.F)
	case SlotStr:
		return fmt.Sprintf("str#%d", s.StrHandle)
	case SlotPtr:
		if s.Ptr == nil {
			return "null"
		}
		return fmt.Sprintf("ptr@%d", s.Ptr.Offset)
	case SlotResumeTok:
		return "resumetok"
	default:
		return "void"
	}
}
