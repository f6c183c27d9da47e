package difftool

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute_RemovedLineProducesOneHunk(t *testing.T) {
	e := NewEngine()
	fd := e.Compute("a.go", "a.go", "a\n// c\nb\n", "a\nb\n")
	assert := assert.New(t)
	assert.Len(fd.Hunks, 1)

	out := Unified(fd)
	assert.True(strings.Contains(out, "-// c"))
	assert.True(strings.Contains(out, "--- a/a.go"))
}

func TestCompute_IdenticalContentProducesNoHunks(t *testing.T) {
	e := NewEngine()
	fd := e.Compute("a.go", "a.go", "same\n", "same\n")
	assert.Empty(t, fd.Hunks)
	assert.Equal(t, "", Unified(fd))
}

func TestCompute_CachesIdenticalInputPair(t *testing.T) {
	e := NewEngine()
	fd1 := e.Compute("a.go", "a.go", "x\n", "y\n")
	fd2 := e.Compute("b.go", "b.go", "x\n", "y\n")
	assert.Equal(t, len(fd1.Hunks), len(fd2.Hunks))
	assert.Equal(t, "b.go", fd2.OldPath)
}
