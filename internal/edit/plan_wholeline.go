package edit

// planWholeLine merges adjacent whole-line comment removals into a
// single edit per run (§4.5 "Consecutive whole-line removals collapse to
// a single edit range") and, when a run sits between two existing blank
// regions, collapses the bridged blank lines down to one.
func planWholeLine(source []byte, cands []candidate) []Edit {
	var edits []Edit
	i := 0
	for i < len(cands) {
		j := i
		lo := lineStart(source, cands[i].node.StartByte())
		hi := lineEndWithNewline(source, cands[i].node.StartByte())

		for j+1 < len(cands) {
			nextLineStart := lineStart(source, cands[j+1].node.StartByte())
			if nextLineStart != hi {
				break
			}
			hi = lineEndWithNewline(source, cands[j+1].node.StartByte())
			j++
		}

		blankBefore := countBlankLinesBefore(source, lo)
		blankAfter := 0
		if hi < uint32(len(source)) {
			blankAfter = countBlankLinesAfter(source, hi)
		}

		if blankBefore > 0 && blankAfter > 0 {
			for k := 0; k < blankAfter; k++ {
				hi = lineEndWithNewline(source, hi)
			}
			for k := 0; k < blankBefore-1; k++ {
				lo = lineStart(source, lo-1)
			}
		}

		edits = append(edits, Edit{Lo: lo, Hi: hi, Mode: WholeLine})
		i = j + 1
	}
	return edits
}
