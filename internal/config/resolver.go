package config

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Layer is one already-loaded configuration document plus the directory
// it was found in, which pattern blocks inside it match paths relative
// to. The File Driver discovers and loads these; the Resolver only
// merges them, doing no I/O of its own.
type Layer struct {
	Document *Document
	BaseDir  string
}

// ResolveInput bundles everything Resolve needs for one file: the file's
// own path (for pattern matching), husk's optional user-global layer, the
// project configuration chain in root-to-leaf order, and the CLI flags
// for this run.
type ResolveInput struct {
	Path         string
	UserGlobal   *Layer
	ProjectChain []Layer
	CLI          CLIOverrides
}

// Resolver merges configuration layers into a RuleSet. It holds no
// mutable state of its own beyond the per-process language registry
// hook (see ApplyLanguageConfig); Resolve itself is a pure function of
// its input.
type Resolver struct{}

// NewResolver returns a Resolver. There is currently nothing to
// construct; the type exists so call sites read the same way C1/C2's
// constructors do and so future per-run state (e.g. a warm pattern-match
// cache) has somewhere to live without changing callers.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve implements the merge order from §4.3: built-in defaults, user
// global, each project layer root-to-leaf, then the pattern-scoped
// overrides of every layer (in that same layer order) that match Path,
// then CLI overrides last.
func (res *Resolver) Resolve(in ResolveInput) (RuleSet, error) {
	rs := Builtin()

	layers := in.ProjectChain
	if in.UserGlobal != nil {
		layers = append([]Layer{*in.UserGlobal}, in.ProjectChain...)
	}
	for _, layer := range layers {
		if layer.Document != nil {
			rs = rs.overlay(layer.Document.Global)
		}
	}
	for _, layer := range layers {
		rs = res.mergePatterns(rs, layer, in.Path)
	}
	rs = in.CLI.apply(rs)
	return rs, nil
}

func (res *Resolver) mergePatterns(rs RuleSet, layer Layer, path string) RuleSet {
	doc := layer.Document
	if doc == nil {
		return rs
	}

	rel := path
	if layer.BaseDir != "" {
		if r, err := filepath.Rel(layer.BaseDir, path); err == nil {
			rel = filepath.ToSlash(r)
		}
	}

	for pattern, block := range doc.Patterns {
		if patternMatches(pattern, rel) {
			rs = rs.overlay(block.GlobalSection)
		}
	}
	return rs
}

// patternMatches implements §4.3's "standard file-glob semantics
// including **". An absolute leading slash in the pattern is treated as
// rooted at the defining configuration's base directory, matching
// doublestar's own convention for "**".
func patternMatches(pattern, rel string) bool {
	pattern = strings.TrimPrefix(pattern, "/")
	ok, err := doublestar.Match(pattern, rel)
	return err == nil && ok
}
