package edit

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"husk/internal/config"
	"husk/internal/lang"
)

func parseGo(t *testing.T, source string) (*sitter.Node, []byte) {
	t.Helper()
	p := sitter.NewParser()
	p.SetLanguage(golang.GetLanguage())
	tree, err := p.ParseCtx(context.Background(), nil, []byte(source))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree.RootNode(), []byte(source)
}

func applyEdits(source []byte, edits []Edit) []byte {
	out := make([]byte, 0, len(source))
	var last uint32
	for _, e := range edits {
		out = append(out, source[last:e.Lo]...)
		if e.Mode == Inline && e.InsertSpace {
			out = append(out, ' ')
		}
		last = e.Hi
	}
	out = append(out, source[last:]...)
	return out
}

func goDescriptorForTest() *lang.Descriptor {
	return lang.DefaultRegistry().LookupByName("go")
}

func parsePython(t *testing.T, source string) (*sitter.Node, []byte) {
	t.Helper()
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	tree, err := p.ParseCtx(context.Background(), nil, []byte(source))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree.RootNode(), []byte(source)
}

func pythonDescriptorForTest() *lang.Descriptor {
	return lang.DefaultRegistry().LookupByName("python")
}

func TestPlan_WholeLineCommentRemoved(t *testing.T) {
	src := "package main\n\n// ordinary\n\nfunc main() {}\n"
	root, source := parseGo(t, src)

	edits, _ := Plan(root, source, goDescriptorForTest(), config.Builtin())
	got := string(applyEdits(source, edits))

	assert.Equal(t, "package main\n\nfunc main() {}\n", got)
}

func TestPlan_KeepMarkerSurvives(t *testing.T) {
	src := "package main\n\n// ordinary\n// ~keep this one\nfunc main() {}\n"
	root, source := parseGo(t, src)

	// Both comments sit directly above a declaration, so the default
	// rule set would treat the whole run as main's doc comment; forcing
	// doc removal isolates what this test checks: the marker overriding
	// removal on its own.
	rs := config.Builtin()
	rs.RemoveDocs = true
	edits, _ := Plan(root, source, goDescriptorForTest(), rs)
	got := string(applyEdits(source, edits))

	assert.Equal(t, "package main\n\n// ~keep this one\nfunc main() {}\n", got)
}

func TestPlan_BuildTagPreservedOrdinaryRemoved(t *testing.T) {
	src := "//go:build linux\n// ordinary\npackage main\n"
	root, source := parseGo(t, src)

	edits, _ := Plan(root, source, goDescriptorForTest(), config.Builtin())
	got := string(applyEdits(source, edits))

	assert.Equal(t, "//go:build linux\npackage main\n", got)
}

func TestPlan_DocCommentKeptByDefaultRemovedWithFlag(t *testing.T) {
	src := "package main\n\n// Frobnicate does a thing.\nfunc Frobnicate() {}\n"
	root, source := parseGo(t, src)

	edits, _ := Plan(root, source, goDescriptorForTest(), config.Builtin())
	assert.Contains(t, string(applyEdits(source, edits)), "// Frobnicate does a thing.")

	rs := config.Builtin()
	rs.RemoveDocs = true
	edits, _ = Plan(root, source, goDescriptorForTest(), rs)
	assert.NotContains(t, string(applyEdits(source, edits)), "// Frobnicate does a thing.")
}

func TestWouldFuseTokens_IdentifierAdjacency(t *testing.T) {
	source := []byte("a/*c*/b")
	assert.True(t, wouldFuseTokens(source, 1, 6))
}

func TestWouldFuseTokens_WhitespaceSeparatedNoFuse(t *testing.T) {
	source := []byte("a /*c*/ b")
	assert.False(t, wouldFuseTokens(source, 2, 7))
}

func TestPlan_BridgedBlankLinesCollapseToOne(t *testing.T) {
	src := "package main\n\n\n// ordinary\n\nfunc main() {}\n"
	root, source := parseGo(t, src)

	edits, _ := Plan(root, source, goDescriptorForTest(), config.Builtin())
	got := string(applyEdits(source, edits))

	assert.Equal(t, "package main\n\nfunc main() {}\n", got)
}

func TestPlan_WholeLineCommentProducesExactEditList(t *testing.T) {
	src := "package main\n\n// ordinary\n\nfunc main() {}\n"
	root, source := parseGo(t, src)

	edits, _ := Plan(root, source, goDescriptorForTest(), config.Builtin())

	// "// ordinary\n\n" starts right after "package main\n\n" (14 bytes in)
	// and the whole-line deletion bridges the blank line that follows it,
	// consuming through to "func".
	want := []Edit{
		{Lo: 14, Hi: 27, Mode: WholeLine},
	}
	if diff := cmp.Diff(want, edits); diff != "" {
		t.Errorf("edit list mismatch (-want +got):\n%s", diff)
	}
}

func TestPlan_ShebangOnlyPreservedAtFileStart(t *testing.T) {
	src := "x = 1\n#!/usr/bin/env python\n"
	root, source := parsePython(t, src)

	edits, _ := Plan(root, source, pythonDescriptorForTest(), config.Builtin())
	got := string(applyEdits(source, edits))

	assert.NotContains(t, got, "#!/usr/bin/env python",
		"a #! comment that isn't at byte 0 of the file is not a shebang and must still be removed")
}

func TestPlan_ShebangAtFileStartIsPreserved(t *testing.T) {
	src := "#!/usr/bin/env python\nx = 1\n"
	root, source := parsePython(t, src)

	edits, _ := Plan(root, source, pythonDescriptorForTest(), config.Builtin())
	got := string(applyEdits(source, edits))

	assert.Contains(t, got, "#!/usr/bin/env python")
}
