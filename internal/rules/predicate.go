package rules

import (
	"regexp"
	"strings"

	"husk/internal/config"
	"husk/internal/lang"
)

var (
	todoWord  = regexp.MustCompile(`(?i)\bTODO\b`)
	fixmeWord = regexp.MustCompile(`(?i)\bFIXME\b`)
)

// Keep implements §4.4: a comment is kept if any of the eight clauses
// hold, and removed otherwise. It is a pure function of the comment's
// recorded shape, its language descriptor, and the resolved rule set —
// no tree access.
func Keep(c CommentNode, d *lang.Descriptor, rs config.RuleSet) bool {
	// Clause 6: shebang always wins, before anything else is consulted.
	if c.IsShebang {
		return true
	}

	// Clause 1: explicit marker.
	if strings.Contains(c.Text, "~keep") {
		return true
	}

	// Clause 2/3: TODO/FIXME, gated on the corresponding removal flag.
	if todoWord.MatchString(c.Text) && !rs.RemoveTodos {
		return true
	}
	if fixmeWord.MatchString(c.Text) && !rs.RemoveFixmes {
		return true
	}

	// Clause 4: documentation comments, gated on remove_docs, with a
	// per-language override taking precedence over the rule set when
	// configured.
	if c.Class == lang.DocComment {
		removeDocs := rs.RemoveDocs
		if d != nil && d.LanguageRemoveDocsOverride != nil {
			removeDocs = *d.LanguageRemoveDocsOverride
		}
		if !removeDocs {
			return true
		}
	}

	// Clause 5: active preservation patterns from the rule set.
	if matchesAny(c.Text, rs.PreservePatterns) {
		return true
	}

	// Clause 7: built-in per-language and global directive patterns.
	if rs.UseDefaultIgnores {
		if d != nil && matchesAny(c.Text, d.DefaultPreservePatterns) {
			return true
		}
		if matchesAny(c.Text, globalDirectivePatterns()) {
			return true
		}
	}

	// Clause 8: trailing comment bound to a preprocessor directive's
	// trailing context, independent of use_default_ignores — the
	// directive's own semantics require it, not a style preference.
	if c.TrailsDirectiveLine {
		return true
	}

	return false
}

// matchesAny reports whether text contains pattern as a substring, or,
// for patterns ending in "*", whether text begins with that prefix.
func matchesAny(text string, patterns []string) bool {
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if strings.HasSuffix(p, "*") {
			if strings.HasPrefix(text, strings.TrimSuffix(p, "*")) {
				return true
			}
			continue
		}
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
