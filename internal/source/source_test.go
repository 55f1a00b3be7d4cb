package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosIsKnown(t *testing.T) {
	assert.False(t, Pos{}.IsKnown())
	assert.True(t, Pos{Line: 1, Col: 1}.IsKnown())
}

func TestManagerAddFileDedup(t *testing.T) {
	m := NewManager()
	id1 := m.AddFile("a.il")
	id2 := m.AddFile("b.il")
	id3 := m.AddFile("a.il")

	assert.Equal(t, id1, id3)
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, "a.il", m.Path(id1))
	assert.Equal(t, "<unknown>", m.Path(999))
}

func TestDiagnosticString(t *testing.T) {
	d := &Diagnostic{
		Code:     "VER005",
		Phase:    "verify",
		Severity: SeverityError,
		Pos:      Pos{Line: 3, Col: 1},
		Function: "main",
		Block:    "entry",
		Message:  "block has no terminator",
	}
	assert.Equal(t, "verify VER005: block has no terminator [3:1] (main:entry)", d.String())
}

func TestListHasErrors(t *testing.T) {
	l := List{
		{Severity: SeverityAdvisory},
		{Severity: SeverityError},
	}
	require.True(t, l.HasErrors())
	assert.Len(t, l.Errors(), 1)

	empty := List{{Severity: SeverityAdvisory}}
	assert.False(t, empty.HasErrors())
}

func TestInternerRoundTrip(t *testing.T) {
	in := NewInterner()
	a := in.Intern("foo")
	b := in.Intern("bar")
	c := in.Intern("foo")

	assert.Equal(t, a, c)
	assert.NotEqual(t, a, b)
	assert.Equal(t, "foo", in.String(a))
	assert.Equal(t, 2, in.Len())

	_, ok := in.Lookup("missing")
	assert.False(t, ok)
}
