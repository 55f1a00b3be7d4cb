package source

// Result carries either a value or a diagnostic list, mirroring the
// `Result<Module, Diagnostic>` contract spec.md §4.1 describes for
// parse_text. Phase entry points that can fail with multiple diagnostics
// return a Result instead of a bare (T, error) pair so callers can inspect
// every diagnostic, not just the first.
type Result[T any] struct {
	Value T
	Diags List
}

// Ok wraps a successful value with no diagnostics.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail wraps a zero value with the given diagnostics; at least one must be
// a hard error for the phase to be considered failed (see List.HasErrors).
func Fail[T any](diags List) Result[T] {
	var zero T
	return Result[T]{Value: zero, Diags: diags}
}

// IsOk reports whether the result carries no hard-error diagnostics.
func (r Result[T]) IsOk() bool {
	return !r.Diags.HasErrors()
}
