// Package driver discovers candidate files, fans them out to a bounded
// worker pool, wires the Language Registry, Grammar Loader,
// Configuration Resolver, Edit Planner, and Source Rewriter per file,
// and aggregates the run into a single Summary (C7).
package driver

import (
	"runtime"

	"husk/internal/config"
)

// Mode selects what the driver does with a changed file.
type Mode int

const (
	// WriteMode rewrites changed files in place.
	WriteMode Mode = iota
	// DryRunMode reports what would change without writing.
	DryRunMode
	// DiffMode is DryRunMode plus a per-file unified diff.
	DiffMode
)

// Options configures one run, gathering the CLI surface from §6.
type Options struct {
	Mode    Mode
	Threads int
	CLI     config.CLIOverrides
	Verbose bool

	// UserGlobal and ProjectChain are pre-loaded by the caller (path
	// discovery and file I/O are the driver's job; the Resolver itself
	// stays I/O-free per §4.3) and passed straight through to
	// config.Resolver for every file.
	UserGlobal   *config.Layer
	ProjectChain []config.Layer

	// RespectIgnoreFiles and TraverseNestedRepos mirror the rule-set
	// keys of the same name but govern path discovery, which happens
	// before any per-file rule set is resolved.
	RespectIgnoreFiles  bool
	TraverseNestedRepos bool
}

func (o Options) workerCount() int {
	if o.Threads > 0 {
		return o.Threads
	}
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	return n
}
