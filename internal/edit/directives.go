package edit

import "regexp"

// trailingDirectiveLines matches the code portion of a line whose
// trailing comment is bound to that code by the directive's own
// semantics (§4.4 clause 8), e.g. a C preprocessor conditional's
// end-of-block marker.
var trailingDirectiveLines = regexp.MustCompile(`^\s*#\s*(endif|else|elif|ifdef|ifndef)\b`)

func trailsDirectiveLine(codeOnLine string) bool {
	return trailingDirectiveLines.MatchString(codeOnLine)
}
