// Package source provides the support layer shared by every phase of the
// Viper pipeline: source positions, structured diagnostics, and an interned
// symbol table. Nothing here is phase-specific; the reader, verifier, and VM
// all anchor their errors to the types defined here.
package source

import "fmt"

// Pos is a source location. FileID is opaque; callers resolve it to a path
// via a Manager. Line and Col are 1-based; zero means unknown (spec §6.2).
type Pos struct {
	FileID uint32
	Line   uint32
	Col    uint32
}

// IsKnown reports whether p carries real location information.
func (p Pos) IsKnown() bool {
	return p.Line != 0 || p.Col != 0
}

func (p Pos) String() string {
	if !p.IsKnown() {
		return "?"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Manager maps opaque file ids to file paths, the way a host embedding the
// VM is expected to (spec §6.2: "the host maps them to file paths via a
// source manager").
type Manager struct {
	paths []string
}

// NewManager returns an empty Manager; id 0 is reserved for "unknown file".
func NewManager() *Manager {
	return &Manager{paths: []string{"<unknown>"}}
}

// AddFile interns path and returns its file id.
func (m *Manager) AddFile(path string) uint32 {
	for i, p := range m.paths {
		if p == path {
			return uint32(i)
		}
	}
	m.paths = append(m.paths, path)
	return uint32(len(m.paths) - 1)
}

// Path resolves a file id back to its path, or "<unknown>" if out of range.
func (m *Manager) Path(id uint32) string {
	if int(id) >= len(m.paths) {
		return "<unknown>"
	}
	return m.paths[id]
}
