package rules

// generatedFileMarkers are substrings that mark a comment as part of an
// auto-generated file header, independent of language — the same family
// of markers the teacher's code-element scanner checks for when tagging
// a file as generated, generalized here into the always-on preservation
// table instead of a one-shot file classification.
var generatedFileMarkers = []string{
	"Code generated by",
	"DO NOT EDIT",
	"GENERATED FILE",
	"This file was autogenerated",
	"Auto-generated",
	"@generated",
}

// globalDirectivePatterns are preservation substrings applied to every
// language regardless of its own DefaultPreservePatterns, covering
// directive families too generic to belong to one language's descriptor.
func globalDirectivePatterns() []string {
	return append([]string(nil), generatedFileMarkers...)
}
