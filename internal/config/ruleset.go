package config

// RuleSet is the effective, per-file configuration the Preservation
// Predicate (C4) and the Edit Planner (C5) consult. It is built fresh for
// every file and never mutated once returned.
type RuleSet struct {
	RemoveTodos       bool
	RemoveFixmes      bool
	RemoveDocs        bool
	UseDefaultIgnores bool
	RespectIgnoreFiles bool
	TraverseNestedRepos bool

	// PreservePatterns is the union of every active preservation pattern,
	// in the order they were merged in, for diagnostic rendering.
	PreservePatterns []string
}

// Builtin returns husk's built-in defaults: nothing removed beyond plain
// comments, default ignore patterns active, nested repositories and
// ignore files respected.
func Builtin() RuleSet {
	return RuleSet{
		RemoveTodos:         false,
		RemoveFixmes:        false,
		RemoveDocs:          false,
		UseDefaultIgnores:   true,
		RespectIgnoreFiles:  true,
		TraverseNestedRepos: false,
	}
}

// overlay applies a GlobalSection on top of r: set scalars replace, unset
// ones (nil) leave r unchanged, and preservation patterns are unioned
// rather than replaced (§4.3 "lists ... are unioned unless a rule-set
// property explicitly disables defaults").
func (r RuleSet) overlay(g GlobalSection) RuleSet {
	out := r
	if g.RemoveTodos != nil {
		out.RemoveTodos = *g.RemoveTodos
	}
	if g.RemoveFixmes != nil {
		out.RemoveFixmes = *g.RemoveFixmes
	}
	if g.RemoveDocs != nil {
		out.RemoveDocs = *g.RemoveDocs
	}
	if g.UseDefaultIgnores != nil {
		out.UseDefaultIgnores = *g.UseDefaultIgnores
	}
	if g.RespectGitignore != nil {
		out.RespectIgnoreFiles = *g.RespectGitignore
	}
	if g.TraverseGitRepos != nil {
		out.TraverseNestedRepos = *g.TraverseGitRepos
	}
	out.PreservePatterns = unionPatterns(out.PreservePatterns, g.PreservePatterns)
	return out
}

func unionPatterns(existing, added []string) []string {
	if len(added) == 0 {
		return existing
	}
	seen := make(map[string]bool, len(existing))
	out := append([]string(nil), existing...)
	for _, p := range existing {
		seen[p] = true
	}
	for _, p := range added {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
