package edit

// planInline builds one edit per inline comment: just the comment's own
// bytes, with a single space substituted when removing it would
// otherwise fuse the identifier- or operator-like tokens on either side
// of it (§4.5 "Inline").
func planInline(source []byte, cands []candidate) []Edit {
	edits := make([]Edit, 0, len(cands))
	for _, c := range cands {
		lo, hi := c.node.StartByte(), c.node.EndByte()
		edits = append(edits, Edit{Lo: lo, Hi: hi, Mode: Inline, InsertSpace: wouldFuseTokens(source, lo, hi)})
	}
	return edits
}

func wouldFuseTokens(source []byte, lo, hi uint32) bool {
	if lo == 0 || hi >= uint32(len(source)) {
		return false
	}
	before, after := source[lo-1], source[hi]
	if isIdentByte(before) && isIdentByte(after) {
		return true
	}
	if isOperatorByte(before) && isOperatorByte(after) {
		return true
	}
	return false
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isOperatorByte(b byte) bool {
	switch b {
	case '+', '-', '*', '/', '%', '<', '>', '=', '&', '|', '!', '^', ':':
		return true
	default:
		return false
	}
}
