package config

import (
	"husk/internal/lang"
)

// ApplyLanguageConfig merges each document's Language section into the
// registry, in the order given (built-in, user-global, project chain —
// the same root-to-leaf order Resolve uses for rule sets). A spec naming
// an ID already registered extends that descriptor in place; an unknown
// ID registers a brand-new one. This is the one place configuration
// mutates the registry, and it must run to completion before the
// registry is handed to any worker (§5 "built once at startup ... and
// thereafter immutable").
func ApplyLanguageConfig(reg *lang.Registry, docs ...*Document) {
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		for _, spec := range doc.Languages {
			applyOne(reg, spec)
		}
	}
}

func applyOne(reg *lang.Registry, spec LanguageSpec) {
	d := reg.LookupByName(spec.Name)
	if d == nil {
		d = &lang.Descriptor{
			ID:           spec.Name,
			DisplayName:  spec.Name,
			CommentKinds: map[string]bool{},
			DocKinds:     map[string]bool{},
		}
	} else {
		clone := *d
		clone.CommentKinds = cloneSet(d.CommentKinds)
		clone.DocKinds = cloneSet(d.DocKinds)
		clone.DefaultPreservePatterns = append([]string(nil), d.DefaultPreservePatterns...)
		d = &clone
	}

	d.Extensions = append(d.Extensions, spec.Extensions...)
	for _, kind := range spec.CommentNodes {
		d.CommentKinds[kind] = true
	}
	for _, kind := range spec.DocCommentNodes {
		d.DocKinds[kind] = true
	}
	d.DefaultPreservePatterns = append(d.DefaultPreservePatterns, spec.PreservePatterns...)
	if spec.RemoveDocs != nil {
		// Per-language remove_docs override is consulted by the
		// Preservation Predicate alongside the rule set; recorded on the
		// descriptor since it is a language property, not a per-file one.
		d.LanguageRemoveDocsOverride = spec.RemoveDocs
	}

	applyGrammarSpec(d, spec.Grammar)
	reg.Register(d)
}

func applyGrammarSpec(d *lang.Descriptor, g GrammarSourceSpec) {
	switch g.Type {
	case "git":
		d.Grammar = lang.GrammarSource{Kind: lang.Git, URL: g.URL, Revision: g.Branch, Subpath: g.Path}
	case "local":
		d.Grammar = lang.GrammarSource{Kind: lang.Local, Path: g.Path}
	case "library":
		d.Grammar = lang.GrammarSource{Kind: lang.Library, Path: g.Path}
	}
}

func cloneSet(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
