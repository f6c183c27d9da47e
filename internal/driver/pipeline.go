package driver

import (
	"context"
	"fmt"
	"os"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"husk/internal/config"
	"husk/internal/difftool"
	"husk/internal/edit"
	"husk/internal/grammar"
	"husk/internal/lang"
	"husk/internal/rewrite"
)

// FileResult is one worker's outcome for one path (§7's per-file record).
type FileResult struct {
	Path     string
	Language string
	Changed  bool
	Skipped  bool
	SkipWhy  string
	Diff     string
	Warnings []edit.Warning
	Err      *FileError
}

// pipeline bundles the shared, run-scoped dependencies every worker goroutine
// reads concurrently: the language registry and grammar loader are safe for
// concurrent use by construction (C1's registry is read-only post-setup,
// C2's loader serializes first-touch materialization internally), and the
// config.Resolver is a pure function with no state at all.
type pipeline struct {
	registry *lang.Registry
	loader   *grammar.Loader
	resolver *config.Resolver
	diff     *difftool.Engine
	opts     Options

	mu          sync.Mutex
	badGrammars map[string]error // language ID -> the failure that disabled it for this run
}

func newPipeline(reg *lang.Registry, loader *grammar.Loader, opts Options) *pipeline {
	return &pipeline{
		registry: reg,
		loader:   loader,
		resolver: config.NewResolver(),
		diff:     difftool.NewEngine(),
		opts:     opts,
	}
}

// grammarFailure returns the error that disabled id's grammar earlier in
// this run, if any. Once a language's grammar fails to materialize, every
// later file of that language short-circuits to the same failure instead
// of retrying the clone/compile, satisfying §4.2's "disables removal for
// files of that language only" for the rest of the run.
func (p *pipeline) grammarFailure(id string) (error, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	err, ok := p.badGrammars[id]
	return err, ok
}

func (p *pipeline) disableGrammar(id string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.badGrammars == nil {
		p.badGrammars = make(map[string]error)
	}
	if _, exists := p.badGrammars[id]; !exists {
		p.badGrammars[id] = err
	}
}

// process runs one file end to end: read, classify, resolve rules, parse,
// plan edits, rewrite, and then either write, diff, or no-op according to
// the run Mode. It never panics on a per-file problem; every failure comes
// back as FileResult.Err so Run can isolate it per §7's propagation policy.
func (p *pipeline) process(path string) FileResult {
	res := FileResult{Path: path}

	source, err := os.ReadFile(path)
	if err != nil {
		res.Err = &FileError{Path: path, Kind: UnreadablePath, Err: err}
		return res
	}

	d := p.registry.LookupByPath(path)
	if d == nil {
		res.Skipped = true
		res.SkipWhy = "unrecognized file type"
		return res
	}
	res.Language = d.ID

	if !d.HasGrammar() {
		res.Err = &FileError{Path: path, Kind: UnsupportedLanguage, Language: d.ID, Err: fmt.Errorf("no grammar configured for %s", d.ID)}
		return res
	}

	if failure, disabled := p.grammarFailure(d.ID); disabled {
		res.Err = &FileError{Path: path, Kind: GrammarUnavailable, Language: d.ID, Err: failure}
		return res
	}

	rs, err := p.resolver.Resolve(config.ResolveInput{
		Path:         path,
		UserGlobal:   p.opts.UserGlobal,
		ProjectChain: p.opts.ProjectChain,
		CLI:          p.opts.CLI,
	})
	if err != nil {
		res.Err = &FileError{Path: path, Kind: ConfigInvalid, Err: err}
		return res
	}

	handle, err := p.loader.Handle(d)
	if err != nil {
		p.disableGrammar(d.ID, err)
		res.Err = &FileError{Path: path, Kind: GrammarUnavailable, Language: d.ID, Err: err}
		return res
	}

	parser := handle.NewParser()
	defer parser.Close()
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil || tree == nil {
		res.Err = &FileError{Path: path, Kind: ParseFailed, Language: d.ID, Err: err}
		return res
	}

	edits, warnings := edit.Plan(rootNode(tree), source, d, rs)
	for i := range warnings {
		warnings[i].Path = path
	}
	res.Warnings = warnings

	rewritten, changed := rewrite.Apply(source, edits)
	res.Changed = changed
	if !changed {
		return res
	}

	switch p.opts.Mode {
	case WriteMode:
		info, statErr := os.Stat(path)
		perm := os.FileMode(0o644)
		if statErr == nil {
			perm = info.Mode().Perm()
		}
		if err := atomicWrite(path, rewritten, perm); err != nil {
			res.Err = &FileError{Path: path, Kind: WriteFailed, Err: err}
		}
	case DryRunMode:
		// nothing further to do; Changed already reflects the outcome.
	case DiffMode:
		fd := p.diff.Compute(path, path, string(source), string(rewritten))
		res.Diff = difftool.Unified(fd)
	}

	return res
}

func rootNode(tree *sitter.Tree) *sitter.Node {
	return tree.RootNode()
}
