package source

import "fmt"

// Severity classifies a Diagnostic. Hard errors abort the phase that raised
// them (spec §4.3: "structural errors abort"); advisory diagnostics are
// collected but do not prevent success.
type Severity int

const (
	SeverityAdvisory Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "advisory"
}

// Diagnostic is the structured error/warning type shared by the reader,
// verifier, and optimizer shell. Anchor differs by phase: the reader anchors
// at a raw source offset, the verifier at (function, block, instruction).
type Diagnostic struct {
	Code     string // phase-prefixed code, e.g. "PAR001", "VER014"
	Phase    string // "parse", "verify", "trap", "abi", "optimize"
	Severity Severity
	Pos      Pos
	Function string // verifier anchor: owning function name, if any
	Block    string // verifier anchor: owning block label, if any
	Message  string
}

// Error implements the error interface so a Diagnostic can be returned
// directly from fallible phase entry points.
func (d *Diagnostic) Error() string {
	return d.String()
}

// String renders the canonical format from spec §7:
//
//	<phase> <code>: <message> [line:col] (function:block)
func (d *Diagnostic) String() string {
	anchor := ""
	if d.Function != "" {
		if d.Block != "" {
			anchor = fmt.Sprintf(" (%s:%s)", d.Function, d.Block)
		} else {
			anchor = fmt.Sprintf(" (%s)", d.Function)
		}
	}
	loc := ""
	if d.Pos.IsKnown() {
		loc = fmt.Sprintf(" [%s]", d.Pos)
	}
	return fmt.Sprintf("%s %s: %s%s%s", d.Phase, d.Code, d.Message, loc, anchor)
}

// List is a collection of diagnostics produced by one phase invocation.
// HasErrors reports whether the phase must abort.
type List []*Diagnostic

// HasErrors reports whether any diagnostic in the list is a hard error.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the hard-error diagnostics.
func (l List) Errors() List {
	out := make(List, 0, len(l))
	for _, d := range l {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}
