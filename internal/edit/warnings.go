package edit

import "strings"

// heuristicSignals are substrings that make a removed comment worth
// flagging in verbose output even though nothing in the active rule set
// asked for it to be kept (§7 "Warning channel").
var heuristicSignals = []string{"NOTE", "HACK", "WARNING", "IMPORTANT", "XXX"}

func looksImportant(text string) string {
	upper := strings.ToUpper(text)
	for _, sig := range heuristicSignals {
		if strings.Contains(upper, sig) {
			return sig
		}
	}
	return ""
}
