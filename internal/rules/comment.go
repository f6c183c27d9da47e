// Package rules implements the preservation predicate (C4): a pure
// function from a comment's recorded shape and the file's resolved rule
// set to a keep/remove decision.
package rules

import "husk/internal/lang"

// CommentNode is a snapshot of one comment-shaped AST node, carrying
// everything the predicate needs without requiring it to touch the tree
// (§3 "Comment Node Record").
type CommentNode struct {
	StartByte uint32
	EndByte   uint32
	Kind      string
	Text      string
	Class     lang.NodeClass

	LeadingIndent string
	IsLineAlone   bool
	IsFirstOnLine bool
	IsLastOnLine  bool

	// IsShebang marks a `#!` line at the very start of a script file
	// (§4.4 clause 6). Computed by the caller, which knows the file's
	// offset-zero status; the predicate only needs the verdict.
	IsShebang bool

	// TrailsDirectiveLine marks a trailing comment whose code portion on
	// the same line is itself a preprocessor-style directive whose
	// semantics depend on the trailing comment (§4.4 clause 8), e.g.
	// `#endif // FOO`.
	TrailsDirectiveLine bool
}
