// Package scaffold implements the "husk init" cold-start configuration
// generator (C8): it tallies which languages a project tree actually
// contains and writes out a starter configuration document, either
// "smart" (only the languages observed) or comprehensive (every built-in
// and registered descriptor), grounded on the teacher's own
// detectLanguageFromFiles/detectDependencies cold-start scan, generalized
// from "name the one primary language" to "tally every descriptor seen".
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"husk/internal/config"
	"husk/internal/lang"
)

// Options configures one scaffold run.
type Options struct {
	Root          string
	Comprehensive bool
	Interactive   bool
	OutputPath    string
	Force         bool

	// Confirm is consulted in Interactive mode before overwriting an
	// existing OutputPath; it is a seam for cmd/husk to wire to stdin,
	// and for tests to supply a canned answer without touching a
	// terminal.
	Confirm func(prompt string) bool
}

// Stats summarizes what Generate observed while walking Root.
type Stats struct {
	FilesScanned  int
	ByLanguage    map[string]int
	Unrecognized  int
}

// Generate walks opts.Root, tallies files against reg's descriptors, and
// returns the configuration document it would write plus the stats it
// tallied. It does not mutate any source file (§4.8 "does not mutate
// source files"); writing the document to disk is a separate step
// (Write) so callers can inspect or render the document first.
func Generate(reg *lang.Registry, opts Options) (*config.Document, Stats, error) {
	stats := Stats{ByLanguage: make(map[string]int)}

	err := filepath.WalkDir(opts.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if name != "." && name != filepath.Base(opts.Root) && len(name) > 0 && name[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		stats.FilesScanned++
		if desc := reg.LookupByPath(path); desc != nil {
			stats.ByLanguage[desc.ID]++
		} else {
			stats.Unrecognized++
		}
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("scan %s: %w", opts.Root, err)
	}

	var descriptors []*lang.Descriptor
	if opts.Comprehensive {
		descriptors = reg.All()
	} else {
		for _, d := range reg.All() {
			if stats.ByLanguage[d.ID] > 0 {
				descriptors = append(descriptors, d)
			}
		}
	}
	sort.Slice(descriptors, func(i, j int) bool { return descriptors[i].ID < descriptors[j].ID })

	doc := &config.Document{
		Global: config.GlobalSection{},
	}
	for _, d := range descriptors {
		doc.Languages = append(doc.Languages, languageSpec(d))
	}

	return doc, stats, nil
}

func languageSpec(d *lang.Descriptor) config.LanguageSpec {
	spec := config.LanguageSpec{
		Name:             d.ID,
		Extensions:       append([]string(nil), d.Extensions...),
		PreservePatterns: append([]string(nil), d.DefaultPreservePatterns...),
	}
	for kind := range d.CommentKinds {
		spec.CommentNodes = append(spec.CommentNodes, kind)
	}
	for kind := range d.DocKinds {
		spec.DocCommentNodes = append(spec.DocCommentNodes, kind)
	}
	sort.Strings(spec.CommentNodes)
	sort.Strings(spec.DocCommentNodes)

	if d.Grammar.Kind != lang.Static {
		spec.Grammar = grammarSpec(d)
	}
	return spec
}

func grammarSpec(d *lang.Descriptor) config.GrammarSourceSpec {
	g := d.Grammar
	switch g.Kind {
	case lang.Git:
		return config.GrammarSourceSpec{Type: "git", URL: g.URL, Branch: g.Revision, Path: g.Subpath}
	case lang.Local:
		return config.GrammarSourceSpec{Type: "local", Path: g.Path}
	case lang.Library:
		return config.GrammarSourceSpec{Type: "library", Path: g.Path}
	default:
		return config.GrammarSourceSpec{}
	}
}

// Write renders doc and writes it to opts.OutputPath, honoring Force and
// the Interactive confirmation seam (§6 "init" flags). It refuses to
// overwrite a pre-existing file unless Force is set or the caller
// confirms interactively.
func Write(doc *config.Document, opts Options) error {
	if _, err := os.Stat(opts.OutputPath); err == nil && !opts.Force {
		if !opts.Interactive || opts.Confirm == nil {
			return fmt.Errorf("%s already exists; pass --force to overwrite", opts.OutputPath)
		}
		if !opts.Confirm(fmt.Sprintf("overwrite %s?", opts.OutputPath)) {
			return fmt.Errorf("%s already exists; not overwritten", opts.OutputPath)
		}
	}

	data, err := Render(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(opts.OutputPath, data, 0o644)
}
