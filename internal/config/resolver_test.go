package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_MergeOrderAndUnion(t *testing.T) {
	userGlobal, err := LoadDocument([]byte(`
remove_todos: true
preserve_patterns: ["FROM-USER"]
`))
	require.NoError(t, err)

	project, err := LoadDocument([]byte(`
preserve_patterns: ["FROM-PROJECT"]
patterns:
  "vendor/**":
    remove_docs: true
`))
	require.NoError(t, err)

	res := NewResolver()
	rs, err := res.Resolve(ResolveInput{
		Path:       "/repo/vendor/lib/file.go",
		UserGlobal: &Layer{Document: userGlobal, BaseDir: "/home/user"},
		ProjectChain: []Layer{
			{Document: project, BaseDir: "/repo"},
		},
	})
	require.NoError(t, err)

	assert.True(t, rs.RemoveTodos)
	assert.True(t, rs.RemoveDocs, "vendor/** pattern block should have applied")
	assert.ElementsMatch(t, []string{"FROM-USER", "FROM-PROJECT"}, rs.PreservePatterns)
}

func TestResolve_PatternDoesNotLeakOutsideScope(t *testing.T) {
	project, err := LoadDocument([]byte(`
patterns:
  "vendor/**":
    remove_docs: true
`))
	require.NoError(t, err)

	res := NewResolver()
	rs, err := res.Resolve(ResolveInput{
		Path: "/repo/internal/file.go",
		ProjectChain: []Layer{
			{Document: project, BaseDir: "/repo"},
		},
	})
	require.NoError(t, err)
	assert.False(t, rs.RemoveDocs)
}

func TestResolve_CLIOverridesWinLast(t *testing.T) {
	project, err := LoadDocument([]byte(`remove_todos: true`))
	require.NoError(t, err)

	res := NewResolver()
	rs, err := res.Resolve(ResolveInput{
		Path:         "f.go",
		ProjectChain: []Layer{{Document: project, BaseDir: "."}},
		CLI:          CLIOverrides{NoDefaultIgnores: true, ExtraPreservePatterns: []string{"CLI-PATTERN"}},
	})
	require.NoError(t, err)

	assert.True(t, rs.RemoveTodos)
	assert.False(t, rs.UseDefaultIgnores)
	assert.Contains(t, rs.PreservePatterns, "CLI-PATTERN")
}

func TestBuiltin_Defaults(t *testing.T) {
	rs := Builtin()
	assert.False(t, rs.RemoveTodos)
	assert.False(t, rs.RemoveFixmes)
	assert.False(t, rs.RemoveDocs)
	assert.True(t, rs.UseDefaultIgnores)
	assert.True(t, rs.RespectIgnoreFiles)
}
