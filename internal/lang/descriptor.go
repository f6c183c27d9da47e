// Package lang holds the canonical table of language identities: file
// matching, which AST node kinds count as comments, and the grammar each
// language is parsed with. It is the language descriptor registry (C1).
package lang

import sitter "github.com/smacker/go-tree-sitter"

// GrammarSourceKind tags the four ways a parser for a language can be
// obtained (§4.2, §9's "tagged value, not a class hierarchy").
type GrammarSourceKind int

const (
	// Static grammars are linked into the husk binary at build time.
	Static GrammarSourceKind = iota
	// Git grammars are cloned, compiled, and cached on first use.
	Git
	// Local grammars are compiled from a path on disk, without cloning.
	Local
	// Library grammars are loaded from a pre-built shared object.
	Library
)

// GrammarSource locates the parser for a language.
type GrammarSource struct {
	Kind GrammarSourceKind

	// Git fields.
	URL      string
	Revision string // empty means "upstream default branch"
	Subpath  string // grammar root within the repository

	// Local/Library fields.
	Path string

	// StaticLanguage supplies the already-linked tree-sitter language for
	// Kind == Static. Left nil for the other three kinds.
	StaticLanguage func() *sitter.Language
}

// DocPredicate decides whether a comment-shaped node (or, for languages
// where documentation isn't a distinct comment node at all, an arbitrary
// node such as a leading string-literal expression) documents the
// declaration that follows it. It receives the node, the node's parent,
// and the file's source bytes, since doc-ness in languages like Python
// depends on structural position, not node kind alone (§4.1).
type DocPredicate func(node, parent *sitter.Node, source []byte) bool

// Descriptor is the immutable, canonical description of one language.
// Two descriptors registered in the same Registry may not share an
// extension or basename; on conflict the later registration wins and the
// registry records the conflict (§3 "Uniqueness").
type Descriptor struct {
	// ID is the stable short name, e.g. "go", "python".
	ID string
	// DisplayName is shown in summaries and scaffold output.
	DisplayName string

	// Extensions are matched with the leading dot, e.g. ".go". Longest
	// match wins across descriptors (lookup policy, §4.1).
	Extensions []string
	// Basenames match a file's exact name with no extension involved,
	// e.g. "Makefile". Basename matches take precedence over extension
	// matches.
	Basenames []string

	// CommentKinds are tree-sitter node type names treated as ordinary
	// comments for this language.
	CommentKinds map[string]bool
	// DocKinds are node type names that are always documentation, for
	// languages where docs are a distinct grammar production (e.g. Rust's
	// doc comment nodes, when a grammar surfaces them as such).
	DocKinds map[string]bool
	// DocPredicate is consulted for node kinds not already in DocKinds,
	// to catch doc comments that share a node kind with ordinary comments
	// (Rust's `///` vs `//`) or aren't comment nodes at all (Python's
	// leading docstring expression statement).
	DocPredicate DocPredicate
	// DocCandidateKinds names node kinds that are not comments by default
	// but must be tested against DocPredicate because they can carry
	// documentation (Python's "expression_statement", for a leading
	// docstring). Nodes of these kinds are only treated as comment nodes
	// at all when DocPredicate accepts them.
	DocCandidateKinds map[string]bool

	// DefaultPreservePatterns seed a file's rule set in addition to the
	// global built-in directive patterns (§4.4 clause 7).
	DefaultPreservePatterns []string

	// IsScript marks languages whose files conventionally start with a
	// shebang line even without a recognized extension (§4.4 clause 6).
	IsScript bool

	// Grammar locates the parser backend for this language. A zero value
	// (Kind: Static, StaticLanguage: nil) means "no grammar available";
	// the File Driver treats such files as unsupported.
	Grammar GrammarSource

	// LanguageRemoveDocsOverride lets a language's own configuration
	// force documentation comments to be kept or removed regardless of
	// the file's resolved rule set (§6 Language key "remove_docs"). Nil
	// means "defer to the rule set", which is the default for every
	// built-in descriptor.
	LanguageRemoveDocsOverride *bool
}

// HasGrammar reports whether the descriptor names a usable grammar source.
func (d *Descriptor) HasGrammar() bool {
	if d.Grammar.Kind == Static {
		return d.Grammar.StaticLanguage != nil
	}
	return true
}
