package il

import (
	"fmt"
	"math"
	"strings"
)

// ValueKind tags the variant carried by a Value (spec §3.2).
type ValueKind int

const (
	KindTemp ValueKind = iota
	KindConstInt
	KindConstFloat
	KindConstStr
	KindGlobalAddr
	KindNullPtr
)

// Value is the tagged SSA value variant. All fields are comparable so Go's
// native `==` already gives structural equality; Hash mixes IsBool into the
// integer hash so i1 true and i64 1 (same bit pattern otherwise) never
// collide, per the design note in spec.md §9.
type Value struct {
	Kind ValueKind

	Temp uint32 // KindTemp

	Int    int64 // KindConstInt
	IsBool bool  // KindConstInt: true if this i64 represents an i1

	Float float64 // KindConstFloat

	Str string // KindConstStr

	Global string // KindGlobalAddr
}

// TempVal constructs a Temp(id) value.
func TempVal(id uint32) Value { return Value{Kind: KindTemp, Temp: id} }

// ConstIntVal constructs a ConstInt value. isBool must be true when v
// represents an i1 literal so the i1/i64 round-trip flag survives
// serialization.
func ConstIntVal(v int64, isBool bool) Value {
	return Value{Kind: KindConstInt, Int: v, IsBool: isBool}
}

// ConstBoolVal is shorthand for an i1 ConstInt.
func ConstBoolVal(b bool) Value {
	v := int64(0)
	if b {
		v = 1
	}
	return ConstIntVal(v, true)
}

// ConstFloatVal constructs a ConstFloat value.
func ConstFloatVal(v float64) Value { return Value{Kind: KindConstFloat, Float: v} }

// ConstStrVal constructs a ConstStr value.
func ConstStrVal(v string) Value { return Value{Kind: KindConstStr, Str: v} }

// GlobalAddrVal constructs a GlobalAddr value referencing a module-level
// extern, function, or global by name.
func GlobalAddrVal(name string) Value { return Value{Kind: KindGlobalAddr, Global: name} }

// NullPtrVal constructs the NullPtr value.
func NullPtrVal() Value { return Value{Kind: KindNullPtr} }

// Equal reports structural equality. Defined explicitly (rather than relying
// on callers to use `==`) so call sites read intention-revealing code and so
// the semantics stay documented in one place if the struct ever grows a
// non-comparable field.
func (v Value) Equal(o Value) bool {
	return v == o
}

// Hash returns a stable hash mixing IsBool into the integer case.
func (v Value) Hash() uint64 {
	const prime = 1099511628211
	h := uint64(14695981039346656037)
	mix := func(b byte) {
		h ^= uint64(b)
		h *= prime
	}
	mix(byte(v.Kind))
	switch v.Kind {
	case KindTemp:
		mixU32(&h, v.Temp)
	case KindConstInt:
		mixU64(&h, uint64(v.Int))
		if v.IsBool {
			mix(1)
		} else {
			mix(0)
		}
	case KindConstFloat:
		mixU64(&h, math.Float64bits(v.Float))
	case KindConstStr:
		for i := 0; i < len(v.Str); i++ {
			mix(v.Str[i])
		}
	case KindGlobalAddr:
		for i := 0; i < len(v.Global); i++ {
			mix(v.Global[i])
		}
	case KindNullPtr:
		mix(0xFF)
	}
	return h
}

func mixU32(h *uint64, v uint32) {
	for i := 0; i < 4; i++ {
		*h ^= uint64(byte(v >> (8 * i)))
		*h *= 1099511628211
	}
}

func mixU64(h *uint64, v uint64) {
	for i := 0; i < 8; i++ {
		*h ^= uint64(byte(v >> (8 * i)))
		*h *= 1099511628211
	}
}

// String renders the IL textual operand form (spec §4.1).
func (v Value) String() string {
	switch v.Kind {
	case KindTemp:
		return fmt.Sprintf("%%%d", v.Temp)
	case KindConstInt:
		if v.IsBool {
			if v.Int != 0 {
				return "true"
			}
			return "false"
		}
		return fmt.Sprintf("%d", v.Int)
	case KindConstFloat:
		s := fmt.Sprintf("%g", v.Float)
		if !strings.ContainsAny(s, ".eIN") {
			s += ".0" // keep integral floats lexing as floats, not ints
		}
		return s
	case KindConstStr:
		return fmt.Sprintf("%q", v.Str)
	case KindGlobalAddr:
		return "@" + v.Global
	case KindNullPtr:
		return "null"
	default:
		return "?"
	}
}
