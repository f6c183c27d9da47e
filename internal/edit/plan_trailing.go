package edit

// planTrailing builds one edit per trailing comment: the range starts
// right after the last non-whitespace code byte on the line and ends at
// the comment's own end, so the code and the line's newline survive
// untouched (§4.5 "Trailing").
func planTrailing(source []byte, cands []candidate) []Edit {
	edits := make([]Edit, 0, len(cands))
	for _, c := range cands {
		lineBegin := lineStart(source, c.node.StartByte())
		lo := lastNonBlankByte(source, lineBegin, c.node.StartByte())
		edits = append(edits, Edit{Lo: lo, Hi: c.node.EndByte(), Mode: Trailing})
	}
	return edits
}
