package source

// Symbol is an interned string id. Comparing two Symbols is a pointer-free
// integer comparison.
type Symbol uint32

// Interner deduplicates strings into Symbols. Zero value is ready to use.
// Not safe for concurrent use. The reader, verifier, and VM do not use it;
// they key names by plain strings.
type Interner struct {
	ids     map[string]Symbol
	strings []string
}

// NewInterner returns an empty Interner.
func NewInterner() *Interner {
	return &Interner{ids: make(map[string]Symbol)}
}

// Intern returns the Symbol for s, assigning a new one on first sight.
func (in *Interner) Intern(s string) Symbol {
	if in.ids == nil {
		in.ids = make(map[string]Symbol)
	}
	if id, ok := in.ids[s]; ok {
		return id
	}
	id := Symbol(len(in.strings))
	in.strings = append(in.strings, s)
	in.ids[s] = id
	return id
}

// Lookup returns the Symbol for s without interning it.
func (in *Interner) Lookup(s string) (Symbol, bool) {
	id, ok := in.ids[s]
	return id, ok
}

// String resolves a Symbol back to its string. Panics on an out-of-range id,
// which indicates a programmer error (a Symbol from a different Interner).
func (in *Interner) String(id Symbol) string {
	return in.strings[id]
}

// Len returns the number of distinct interned strings.
func (in *Interner) Len() int {
	return len(in.strings)
}
