package il

// Extern declares a runtime-bridge or external function signature (spec
// §3.6, §4.7). Its Name, if present in the runtime ABI registry, must match
// the registry's signature — checked by the verifier, not here.
type Extern struct {
	Name   string
	Ret    Type
	Params []Type
}

// Global is a module-level storage location. Init is nil for an
// uninitialized global (zero-valued at load).
type Global struct {
	Name string
	Type Type
	Init *Value
}

// Module owns its functions, externs, and globals (spec §3.6). Cross
// references between them are always by name; there is no cyclic ownership.
type Module struct {
	Version string
	Target  string // empty means unset

	Externs   []*Extern
	Globals   []*Global
	Functions []*Function
}

// FindFunction looks up a function by name.
func (m *Module) FindFunction(name string) (*Function, bool) {
	for _, f := range m.Functions {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// FindExtern looks up an extern by name.
func (m *Module) FindExtern(name string) (*Extern, bool) {
	for _, e := range m.Externs {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// FindGlobal looks up a global by name.
func (m *Module) FindGlobal(name string) (*Global, bool) {
	for _, g := range m.Globals {
		if g.Name == name {
			return g, true
		}
	}
	return nil, false
}

// ResolveName reports whether name refers to any extern, function, or
// global in the module — the check spec §3.6 requires for every `@name`
// operand.
func (m *Module) ResolveName(name string) bool {
	if _, ok := m.FindExtern(name); ok {
		return true
	}
	if _, ok := m.FindFunction(name); ok {
		return true
	}
	if _, ok := m.FindGlobal(name); ok {
		return true
	}
	return false
}
