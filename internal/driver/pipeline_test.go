package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"husk/internal/grammar"
	"husk/internal/lang"
)

// TestPipeline_DisablesGrammarAfterFirstFailure checks the bookkeeping
// process relies on to stop retrying loader.Handle for a language whose
// grammar already failed: grammarFailure reports nothing until
// disableGrammar records a failure, and a second record for the same
// language does not replace the first. It does not call process or
// loader.Handle itself.
func TestPipeline_DisablesGrammarAfterFirstFailure(t *testing.T) {
	loader, err := grammar.New(t.TempDir(), 8)
	require.NoError(t, err)

	reg := lang.NewRegistry()
	broken := &lang.Descriptor{ID: "broken", Extensions: []string{".broken"}, Grammar: lang.GrammarSource{Kind: lang.Git, URL: "https://example.invalid/nowhere"}}
	reg.Register(broken)

	p := newPipeline(reg, loader, Options{Mode: WriteMode})

	_, disabled := p.grammarFailure("broken")
	assert.False(t, disabled)

	p.disableGrammar("broken", assert.AnError)
	failure, disabled := p.grammarFailure("broken")
	require.True(t, disabled)
	assert.Equal(t, assert.AnError, failure)

	// A second disableGrammar call for the same language must not
	// overwrite the first recorded failure.
	p.disableGrammar("broken", assert.AnError)
	again, _ := p.grammarFailure("broken")
	assert.Equal(t, failure, again)
}
