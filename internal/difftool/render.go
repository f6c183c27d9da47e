package difftool

import (
	"fmt"
	"strings"
)

// Unified renders fd as a standard unified-diff text block, the form
// --diff prints per file (§6).
func Unified(fd *FileDiff) string {
	if len(fd.Hunks) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", fd.OldPath)
	fmt.Fprintf(&b, "+++ b/%s\n", fd.NewPath)

	for _, h := range fd.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, l := range h.Lines {
			switch l.Type {
			case LineContext:
				b.WriteString(" " + l.Content + "\n")
			case LineRemoved:
				b.WriteString("-" + l.Content + "\n")
			case LineAdded:
				b.WriteString("+" + l.Content + "\n")
			}
		}
	}
	return b.String()
}
