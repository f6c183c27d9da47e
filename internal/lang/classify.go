package lang

import sitter "github.com/smacker/go-tree-sitter"

// NodeClass is the outcome of classifying one AST node against a
// Descriptor: not a comment at all, an ordinary comment, or documentation.
type NodeClass int

const (
	NotComment NodeClass = iota
	OrdinaryComment
	DocComment
)

// Classify decides what role, if any, node plays for this language: a
// plain comment, a documentation comment, or neither. It is the single
// place that reconciles static node-kind tables with the optional
// doc-detection predicate (§4.1), so the edit planner (C5) never has to
// know which mechanism a given language uses.
func (d *Descriptor) Classify(node, parent *sitter.Node, source []byte) NodeClass {
	kind := node.Type()

	switch {
	case d.DocKinds[kind]:
		return DocComment
	case d.CommentKinds[kind]:
		if d.DocPredicate != nil && d.DocPredicate(node, parent, source) {
			return DocComment
		}
		return OrdinaryComment
	case d.DocCandidateKinds[kind]:
		if d.DocPredicate != nil && d.DocPredicate(node, parent, source) {
			return DocComment
		}
		return NotComment
	default:
		return NotComment
	}
}
