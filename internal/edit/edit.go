// Package edit walks a parsed syntax tree and a resolved rule set into a
// sorted, non-overlapping list of byte-range deletions that implement
// §4.5's whitespace policy, then hands that list to the rewriter (C5).
package edit

// Mode governs how the bytes immediately around a deleted range are
// treated when the edit is applied (§4.5).
type Mode int

const (
	// Inline deletes just the comment's own bytes; a single space may be
	// substituted to keep adjacent tokens from merging.
	Inline Mode = iota
	// WholeLine deletes a comment's entire line, indentation and
	// trailing newline included.
	WholeLine
	// Trailing deletes a comment and the whitespace separating it from
	// the code preceding it on the same line, leaving the code and the
	// line's newline untouched.
	Trailing
)

// Edit is a half-open byte range to delete from the source, plus the
// whitespace-handling mode that produced it (§3 "Edit").
type Edit struct {
	Lo, Hi      uint32
	Mode        Mode
	InsertSpace bool // only meaningful for Mode == Inline
}

// Warning is an advisory the planner emits for a removed comment that
// matched a "looks important" heuristic without matching any active
// preservation rule (§7 "Warning channel").
type Warning struct {
	Path   string
	Line   int
	Text   string
	Signal string
}
