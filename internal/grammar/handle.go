package grammar

import (
	sitter "github.com/smacker/go-tree-sitter"

	"husk/internal/lang"
)

// Handle is a resolved, ready-to-use grammar for one language. It is
// shared across every worker that parses that language; sitter.Parser
// values are not, so each caller gets its own via NewParser (§5's "shared
// immutable registry, per-worker parser instances").
type Handle struct {
	Descriptor *lang.Descriptor
	Language   *sitter.Language
}

// NewParser returns a fresh *sitter.Parser bound to this handle's
// language. Callers own the returned parser and must Close it when done.
func (h *Handle) NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(h.Language)
	return p
}
