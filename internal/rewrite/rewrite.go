// Package rewrite applies an Edit Planner's edit list to source bytes in
// a single left-to-right sweep (C6), the forward-splice counterpart to
// the teacher's reverse-order in-place splice for a flat comment list.
package rewrite

import "husk/internal/edit"

// Apply deletes every edit's byte range from source, substituting a
// single space for Inline edits flagged InsertSpace, and reports whether
// the result differs from the input. edits must already be sorted
// ascending by Lo and non-overlapping, the contract Plan guarantees.
func Apply(source []byte, edits []edit.Edit) ([]byte, bool) {
	if len(edits) == 0 {
		return source, false
	}

	out := make([]byte, 0, len(source))
	var last uint32
	for _, e := range edits {
		out = append(out, source[last:e.Lo]...)
		if e.Mode == edit.Inline && e.InsertSpace {
			out = append(out, ' ')
		}
		last = e.Hi
	}
	out = append(out, source[last:]...)
	return out, true
}
