package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"husk/internal/edit"
	"husk/internal/grammar"
	"husk/internal/lang"
)

// TestMain guards every test in this package against a leaked worker-pool
// goroutine: Run's errgroup fan-out and its result collector must both
// fully drain before Run returns, so nothing here should still be running
// once a test completes.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDiscover_ExpandsDirectoryRecursively(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.go"), []byte("package a\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.go"), []byte("package b\n"), 0o644))

	paths, err := Discover([]string{root}, Options{})
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestDiscover_SkipsNestedRepoByDefault(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "vendor", "dep")
	require.NoError(t, os.MkdirAll(filepath.Join(nested, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "x.go"), []byte("package x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0o644))

	paths, err := Discover([]string{root}, Options{TraverseNestedRepos: false})
	require.NoError(t, err)
	assert.Len(t, paths, 1)
}

func TestDiscover_NonGitTreeHonorsGitignoreFallback(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "vendor"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "generated.pb.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "vendor", "dep.go"), []byte("package dep\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("vendor/\n*.pb.go\n"), 0o644))

	paths, err := Discover([]string{root}, Options{RespectIgnoreFiles: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "main.go"),
		filepath.Join(root, ".gitignore"),
	}, paths)
}

func TestAtomicWrite_ReplacesContentWithoutLeavingTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.go")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, atomicWrite(path, []byte("new"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSummary_ExitCodePrecedence(t *testing.T) {
	s := newSummary()
	s.absorb(FileResult{Path: "a.go", Changed: true})
	assert.Equal(t, 1, s.ExitCode())

	s.absorb(FileResult{Path: "b.go", Err: &FileError{Path: "b.go", Kind: WriteFailed}})
	assert.Equal(t, 2, s.ExitCode())
}

func TestSummary_NoChangesIsExitZero(t *testing.T) {
	s := newSummary()
	s.absorb(FileResult{Path: "a.go", Skipped: true, SkipWhy: "unrecognized file type"})
	assert.Equal(t, 0, s.ExitCode())
	assert.Equal(t, 1, s.FilesSkipped)
}

func TestRun_WriteModeRemovesOrdinaryCommentEndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	src := "package main\n\n// ordinary\n\nfunc main() {}\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	reg := lang.DefaultRegistry()
	loader, err := grammar.New(t.TempDir(), 8)
	require.NoError(t, err)

	summary, err := Run([]string{path}, reg, loader, Options{Mode: WriteMode})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.FilesChanged)
	assert.Equal(t, 0, summary.FilesErrored)

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package main\n\nfunc main() {}\n", string(out))
}

func TestRun_DryRunModeDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	src := "package main\n\n// ordinary\n\nfunc main() {}\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	reg := lang.DefaultRegistry()
	loader, err := grammar.New(t.TempDir(), 8)
	require.NoError(t, err)

	summary, err := Run([]string{path}, reg, loader, Options{Mode: DryRunMode})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.FilesChanged)

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, src, string(out))
}

func TestSummary_RenderAggregatesSkipsByReasonWithExamplePaths(t *testing.T) {
	s := newSummary()
	for i := 0; i < 5; i++ {
		s.absorb(FileResult{
			Path: filepath.Join("pkg", "file"+string(rune('a'+i))+".tf"),
			Err:  &FileError{Kind: UnsupportedLanguage, Language: "terraform"},
		})
	}

	out := s.Render(false)
	assert.Contains(t, out, "skipped: unsupported_language (terraform) (5 file(s))")
	assert.Contains(t, out, "... and 2 more")
	assert.Equal(t, 0, s.ExitCode(), "recoverable failures must never force exit code 2")

	verboseOut := s.Render(true)
	assert.NotContains(t, verboseOut, "... and 2 more")
}

func TestSummary_RenderAggregatesNonRecoverableErrorsSeparately(t *testing.T) {
	s := newSummary()
	s.absorb(FileResult{Path: "a.go", Err: &FileError{Kind: WriteFailed}})
	s.absorb(FileResult{Path: "b.go", Err: &FileError{Kind: WriteFailed}})

	out := s.Render(false)
	assert.Contains(t, out, "error: write_failed (2 file(s))")
	assert.Equal(t, 2, s.ExitCode())
}

func TestSummary_RenderWarningsMatchesOriginalWording(t *testing.T) {
	s := newSummary()
	s.absorb(FileResult{Path: "a.go", Warnings: []edit.Warning{
		{Path: "a.go", Line: 3, Text: "// SAFETY: do not remove", Signal: "safety"},
	}})

	out := s.Render(false)
	assert.Contains(t, out, "Warning: removed 1 potentially important comment. Re-run with `--dry-run --diff` to inspect.")
	assert.NotContains(t, out, "a.go:3", "example lines should only appear under verbose")

	verboseOut := s.Render(true)
	assert.Contains(t, verboseOut, "a.go:3 [safety] // SAFETY: do not remove")
}

func TestRun_MissingGrammarDegradesToSkipNotExitTwo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.tf")
	require.NoError(t, os.WriteFile(path, []byte("resource \"x\" \"y\" {}\n"), 0o644))

	reg := lang.NewRegistry()
	reg.Register(&lang.Descriptor{ID: "terraform-nogrammar", Extensions: []string{".tf"}, Grammar: lang.GrammarSource{Kind: lang.Static}})
	loader, err := grammar.New(t.TempDir(), 8)
	require.NoError(t, err)

	summary, err := Run([]string{path}, reg, loader, Options{Mode: WriteMode})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.FilesSkipped)
	assert.Equal(t, 0, summary.FilesErrored)
	assert.Equal(t, 0, summary.ExitCode())
}

func TestRun_UnrecognizedFileIsSkippedNotErrored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello\n"), 0o644))

	reg := lang.DefaultRegistry()
	loader, err := grammar.New(t.TempDir(), 8)
	require.NoError(t, err)

	summary, err := Run([]string{path}, reg, loader, Options{Mode: WriteMode})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.FilesSkipped)
	assert.Equal(t, 0, summary.FilesErrored)
}
