package grammar

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"husk/internal/lang"
)

func TestHandle_StaticResolvesAndCaches(t *testing.T) {
	dir := t.TempDir()
	l, err := New(dir, 8)
	require.NoError(t, err)

	reg := lang.DefaultRegistry()
	d := reg.LookupByName("go")
	require.NotNil(t, d)

	h1, err := l.Handle(d)
	require.NoError(t, err)
	require.NotNil(t, h1.Language)

	h2, err := l.Handle(d)
	require.NoError(t, err)
	assert.Same(t, h1, h2, "second Handle call should be served from the LRU")
}

func TestHandle_UnavailableLocalGrammar(t *testing.T) {
	dir := t.TempDir()
	l, err := New(dir, 8)
	require.NoError(t, err)

	d := &lang.Descriptor{ID: "terraform", Grammar: lang.GrammarSource{Kind: lang.Local, Path: ""}}
	_, err = l.Handle(d)
	require.Error(t, err)

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, Unavailable, gerr.Kind)
}

func TestHandle_StaticMissingBindingIsUnavailable(t *testing.T) {
	dir := t.TempDir()
	l, err := New(dir, 8)
	require.NoError(t, err)

	d := &lang.Descriptor{ID: "nothing", Grammar: lang.GrammarSource{Kind: lang.Static}}
	_, err = l.Handle(d)
	require.Error(t, err)

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, Unavailable, gerr.Kind)
}

func TestCacheEntries_ReflectsMaterializedGrammar(t *testing.T) {
	dir := t.TempDir()
	l, err := New(dir, 8)
	require.NoError(t, err)

	assert.Equal(t, dir, l.CacheDir())
	assert.Empty(t, l.CacheEntries())

	l.index.put("git:example@main:", indexEntry{
		SharedObject:     filepath.Join(dir, "example.so"),
		ResolvedRevision: "deadbeef",
		SourceDir:        filepath.Join(dir, "git", "example"),
	})

	entries := l.CacheEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "git:example@main:", entries[0].Key)
	assert.Equal(t, "deadbeef", entries[0].ResolvedRevision)
}

func TestCacheKey_DistinguishesBackends(t *testing.T) {
	git := &lang.Descriptor{ID: "make", Grammar: lang.GrammarSource{Kind: lang.Git, URL: "https://example.com/a"}}
	local := &lang.Descriptor{ID: "make", Grammar: lang.GrammarSource{Kind: lang.Local, Path: "/tmp/a"}}
	assert.NotEqual(t, cacheKey(git), cacheKey(local))
}
