package edit

import (
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"husk/internal/config"
	"husk/internal/lang"
	"husk/internal/rules"
)

// Plan walks root depth-first (mirroring the teacher's tree-sitter
// visitNodes walk, generalized from a flat comment collector into a
// classify-then-decide pass) and returns the sorted, non-overlapping
// edits needed to remove every comment the rule set rejects, plus any
// advisories for removed-but-heuristically-notable comments.
func Plan(root *sitter.Node, source []byte, d *lang.Descriptor, rs config.RuleSet) ([]Edit, []Warning) {
	candidates := collectCandidates(root, nil, d, source)

	var wholeLine, trailing, inline []candidate
	var warnings []Warning

	for i := range candidates {
		c := &candidates[i]
		c.rec.IsShebang = c.node.StartByte() == 0 && isShebangText(c.rec.Text)

		c.rec.IsFirstOnLine = onlyLeadingWhitespaceBefore(source, c.node.StartByte())
		c.rec.IsLastOnLine = onlyWhitespaceAfter(source, c.node.EndByte())
		c.rec.IsLineAlone = c.rec.IsFirstOnLine && c.rec.IsLastOnLine

		if !c.rec.IsFirstOnLine && c.rec.IsLastOnLine {
			lineBegin := lineStart(source, c.node.StartByte())
			codeEnd := lastNonBlankByte(source, lineBegin, c.node.StartByte())
			c.rec.TrailsDirectiveLine = trailsDirectiveLine(string(source[lineBegin:codeEnd]))
		}

		if rules.Keep(c.rec, d, rs) {
			continue
		}

		if sig := looksImportant(c.rec.Text); sig != "" {
			warnings = append(warnings, Warning{Line: lineOf(source, c.node.StartByte()), Text: c.rec.Text, Signal: sig})
		}

		switch {
		case c.rec.IsLineAlone:
			wholeLine = append(wholeLine, *c)
		case c.rec.IsLastOnLine:
			trailing = append(trailing, *c)
		default:
			inline = append(inline, *c)
		}
	}

	var edits []Edit
	edits = append(edits, planWholeLine(source, wholeLine)...)
	edits = append(edits, planTrailing(source, trailing)...)
	edits = append(edits, planInline(source, inline)...)

	return dedupeOverlaps(edits), warnings
}

type candidate struct {
	node *sitter.Node
	rec  rules.CommentNode
}

// collectCandidates walks the tree once, classifying every node against
// the descriptor and recording a CommentNode for anything that is not
// NotComment. parent is threaded through for Classify's Python-docstring
// style structural checks.
func collectCandidates(node, parent *sitter.Node, d *lang.Descriptor, source []byte) []candidate {
	var out []candidate
	var walk func(n, p *sitter.Node)
	walk = func(n, p *sitter.Node) {
		if n == nil {
			return
		}
		class := d.Classify(n, p, source)
		if class != lang.NotComment {
			out = append(out, candidate{
				node: n,
				rec: rules.CommentNode{
					StartByte: n.StartByte(),
					EndByte:   n.EndByte(),
					Kind:      n.Type(),
					Text:      n.Content(source),
					Class:     class,
				},
			})
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i), n)
		}
	}
	walk(node, parent)
	sort.Slice(out, func(i, j int) bool { return out[i].node.StartByte() < out[j].node.StartByte() })
	return out
}

func isShebangText(text string) bool {
	return len(text) >= 2 && text[0] == '#' && text[1] == '!'
}

func lineOf(source []byte, offset uint32) int {
	line := 1
	for i := uint32(0); i < offset && i < uint32(len(source)); i++ {
		if source[i] == '\n' {
			line++
		}
	}
	return line
}

// dedupeOverlaps sorts edits by Lo (the wider edit first when two share a
// Lo) and drops any edit that starts before the previously kept one ends,
// implementing §4.5's "keep only the outermost edit" tie-break for nested
// comment nodes.
func dedupeOverlaps(edits []Edit) []Edit {
	sort.Slice(edits, func(i, j int) bool {
		if edits[i].Lo != edits[j].Lo {
			return edits[i].Lo < edits[j].Lo
		}
		return edits[i].Hi > edits[j].Hi
	})
	var out []Edit
	for _, e := range edits {
		if len(out) > 0 && e.Lo < out[len(out)-1].Hi {
			continue
		}
		out = append(out, e)
	}
	return out
}
