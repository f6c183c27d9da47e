package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupByPath_ExtensionPrecedence(t *testing.T) {
	r := DefaultRegistry()

	d := r.LookupByPath("main.go")
	require.NotNil(t, d)
	assert.Equal(t, "go", d.ID)

	d = r.LookupByPath("src/app.test.tsx")
	require.NotNil(t, d)
	assert.Equal(t, "typescript", d.ID)
}

func TestLookupByPath_BasenameBeatsExtension(t *testing.T) {
	r := NewRegistry()
	r.Register(&Descriptor{ID: "generic-mk", Extensions: []string{".mk"}})
	r.Register(&Descriptor{ID: "make", Basenames: []string{"rules.mk"}})

	d := r.LookupByPath("/project/rules.mk")
	require.NotNil(t, d)
	assert.Equal(t, "make", d.ID)
}

func TestLookupByPath_LongestExtensionWins(t *testing.T) {
	r := NewRegistry()
	r.Register(&Descriptor{ID: "go", Extensions: []string{".go"}})
	r.Register(&Descriptor{ID: "protogo", Extensions: []string{".pb.go"}})

	d := r.LookupByPath("service.pb.go")
	require.NotNil(t, d)
	assert.Equal(t, "protogo", d.ID)

	d = r.LookupByPath("service.go")
	require.NotNil(t, d)
	assert.Equal(t, "go", d.ID)
}

func TestLookupByPath_Unknown(t *testing.T) {
	r := DefaultRegistry()
	assert.Nil(t, r.LookupByPath("README.md"))
}

func TestRegister_ConflictRecorded(t *testing.T) {
	r := NewRegistry()
	r.Register(&Descriptor{ID: "a", Extensions: []string{".x"}})
	r.Register(&Descriptor{ID: "b", Extensions: []string{".x"}})

	conflicts := r.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, "b", conflicts[0].Winner)
	assert.Equal(t, "a", conflicts[0].Loser)

	d := r.LookupByPath("f.x")
	require.NotNil(t, d)
	assert.Equal(t, "b", d.ID)
}
