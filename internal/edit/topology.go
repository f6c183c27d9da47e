package edit

import "bytes"

// lineStart returns the byte offset of the first byte of the line
// containing offset.
func lineStart(source []byte, offset uint32) uint32 {
	i := bytes.LastIndexByte(source[:offset], '\n')
	if i < 0 {
		return 0
	}
	return uint32(i + 1)
}

// lineEndWithNewline returns the offset just past the line's terminating
// '\n' containing offset, or len(source) if the line has none.
func lineEndWithNewline(source []byte, offset uint32) uint32 {
	i := bytes.IndexByte(source[offset:], '\n')
	if i < 0 {
		return uint32(len(source))
	}
	return offset + uint32(i) + 1
}

// lineEndNoNewline returns the offset of the line's terminating '\n'
// containing offset, or len(source) if the line has none.
func lineEndNoNewline(source []byte, offset uint32) uint32 {
	i := bytes.IndexByte(source[offset:], '\n')
	if i < 0 {
		return uint32(len(source))
	}
	return offset + uint32(i)
}

func isBlankRange(b []byte) bool {
	for _, c := range b {
		if c != ' ' && c != '\t' && c != '\r' {
			return false
		}
	}
	return true
}

// isBlankLine reports whether the line starting at lineStart(source, off)
// contains only whitespace.
func isBlankLine(source []byte, off uint32) bool {
	start := lineStart(source, off)
	end := lineEndNoNewline(source, start)
	return isBlankRange(source[start:end])
}

// onlyLeadingWhitespaceBefore reports whether everything from the start
// of the node's line up to its start byte is whitespace, i.e. the node
// is the first significant content on its line.
func onlyLeadingWhitespaceBefore(source []byte, nodeStart uint32) bool {
	start := lineStart(source, nodeStart)
	return isBlankRange(source[start:nodeStart])
}

// onlyWhitespaceAfter reports whether everything from the node's end
// byte to the end of its line is whitespace, i.e. nothing but newline
// follows it on that line.
func onlyWhitespaceAfter(source []byte, nodeEnd uint32) bool {
	end := lineEndNoNewline(source, nodeEnd)
	if nodeEnd > end {
		return true
	}
	return isBlankRange(source[nodeEnd:end])
}

// lastNonBlankByte returns the offset just past the last non-whitespace
// byte on the line ending at lineEnd (exclusive), starting the scan no
// earlier than lineStart. Returns lineStart if the line up to lineEnd is
// entirely whitespace.
func lastNonBlankByte(source []byte, start, end uint32) uint32 {
	for end > start {
		c := source[end-1]
		if c != ' ' && c != '\t' && c != '\r' {
			return end
		}
		end--
	}
	return start
}

// countBlankLinesBefore counts consecutive blank lines immediately
// preceding the line that starts at lineOffset.
func countBlankLinesBefore(source []byte, lineOffset uint32) int {
	count := 0
	off := lineOffset
	for off > 0 {
		prevEnd := off - 1 // the '\n' ending the previous line
		prevStart := lineStart(source, prevEnd)
		if !isBlankRange(source[prevStart:prevEnd]) {
			break
		}
		count++
		off = prevStart
	}
	return count
}

// countBlankLinesAfter counts consecutive blank lines immediately
// following lineEndOffset (which must itself be the start of the next
// line, i.e. just past a '\n').
func countBlankLinesAfter(source []byte, lineEndOffset uint32) int {
	count := 0
	off := lineEndOffset
	for off < uint32(len(source)) {
		end := lineEndNoNewline(source, off)
		if !isBlankRange(source[off:end]) {
			break
		}
		count++
		if end >= uint32(len(source)) {
			off = end
			break
		}
		off = end + 1
	}
	return count
}
