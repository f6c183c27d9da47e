package driver

import (
	"fmt"
	"sort"
	"strings"

	"husk/internal/edit"
)

// maxSummaryExamples caps how many example paths the default (non-verbose)
// render shows per aggregated skip/error group; verbose reveals the rest.
// maxWarningExamples caps the total warning lines shown, mirroring the
// original uncomment CLI's MAX = 20.
const (
	maxSummaryExamples = 3
	maxWarningExamples = 20
)

// skipGroup collects every path that hit the same degraded outcome, so the
// run summary can report one aggregated line per reason instead of one line
// per file (§7 "Propagation policy": "aggregated into a single summary line
// with example paths (verbose reveals all)").
type skipGroup struct {
	reason string
	paths  []string
}

// Summary aggregates one run's outcome across every discovered file (§7).
type Summary struct {
	FilesScanned int
	FilesChanged int
	FilesSkipped int
	FilesErrored int

	// Skips buckets recoverable per-file outcomes (unrecognized file type,
	// UnsupportedLanguage, ParseFailed, GrammarUnavailable) by reasonKey.
	// None of these move the exit code; they degrade to "pass through
	// unchanged" per §7.
	Skips map[string]*skipGroup
	// Errors buckets non-recoverable per-file failures (UnreadablePath,
	// WriteFailed, ConfigInvalid) by ErrorKind. Any entry here forces exit
	// code 2.
	Errors map[string]*skipGroup

	Diffs        []string // populated only in DiffMode, in completion order
	ChangedPaths []string
	Warnings     []edit.Warning
}

func newSummary() *Summary {
	return &Summary{
		Skips:  make(map[string]*skipGroup),
		Errors: make(map[string]*skipGroup),
	}
}

func (s *Summary) absorb(r FileResult) {
	s.FilesScanned++

	if r.Err != nil {
		if r.Err.Kind.Recoverable() {
			s.FilesSkipped++
			addToGroup(s.Skips, r.Err.reasonKey(), r.Path)
		} else {
			s.FilesErrored++
			addToGroup(s.Errors, r.Err.Kind.String(), r.Path)
		}
		return
	}
	if r.Skipped {
		s.FilesSkipped++
		addToGroup(s.Skips, r.SkipWhy, r.Path)
		return
	}
	if r.Changed {
		s.FilesChanged++
		s.ChangedPaths = append(s.ChangedPaths, r.Path)
		if r.Diff != "" {
			s.Diffs = append(s.Diffs, r.Diff)
		}
	}
	s.Warnings = append(s.Warnings, r.Warnings...)
}

func addToGroup(groups map[string]*skipGroup, reason, path string) {
	g, ok := groups[reason]
	if !ok {
		g = &skipGroup{reason: reason}
		groups[reason] = g
	}
	g.paths = append(g.paths, path)
}

// ExitCode implements §6/§7: 0 when the run completed with nothing left to
// report beyond informational output, 1 when at least one file changed (or
// would change, in DryRunMode/DiffMode) and no errors occurred, 2 when any
// file errored regardless of how many files also changed cleanly. Recoverable
// outcomes in Skips never reach here — only Errors can force exit code 2.
func (s *Summary) ExitCode() int {
	switch {
	case s.FilesErrored > 0:
		return 2
	case s.FilesChanged > 0:
		return 1
	default:
		return 0
	}
}

// Render writes the human-readable run report the CLI prints to stdout,
// matching the buffered-then-flushed completion-order output §5 requires
// from a worker-pool run (workers never write to stdout directly).
func (s *Summary) Render(verbose bool) string {
	var b strings.Builder

	for _, d := range s.Diffs {
		b.WriteString(d)
	}

	if verbose {
		sort.Strings(s.ChangedPaths)
		for _, p := range s.ChangedPaths {
			fmt.Fprintf(&b, "cleaned %s\n", p)
		}
	}

	renderGroups(&b, "skipped", s.Skips, verbose)
	renderGroups(&b, "error", s.Errors, verbose)
	renderWarnings(&b, s.Warnings, verbose)

	fmt.Fprintf(&b, "%d scanned, %d changed, %d skipped, %d errored\n",
		s.FilesScanned, s.FilesChanged, s.FilesSkipped, s.FilesErrored)

	return b.String()
}

// renderGroups prints one aggregated line per reason with a handful of
// example paths, verbose listing every path instead of just the first few.
// This is what §7 means by "aggregated into a single summary line with
// example paths (verbose reveals all)" for UnsupportedLanguage/ParseFailed,
// and by "surfaced once... with the first few affected paths as examples"
// for GrammarUnavailable.
func renderGroups(b *strings.Builder, label string, groups map[string]*skipGroup, verbose bool) {
	if len(groups) == 0 {
		return
	}
	reasons := make([]string, 0, len(groups))
	for reason := range groups {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)

	for _, reason := range reasons {
		g := groups[reason]
		paths := append([]string(nil), g.paths...)
		sort.Strings(paths)

		shown := paths
		if !verbose && len(shown) > maxSummaryExamples {
			shown = shown[:maxSummaryExamples]
		}
		fmt.Fprintf(b, "%s: %s (%d file(s))\n", label, reason, len(paths))
		fmt.Fprintf(b, "  Examples:\n")
		for _, p := range shown {
			fmt.Fprintf(b, "  - %s\n", p)
		}
		if !verbose && len(paths) > len(shown) {
			fmt.Fprintf(b, "  ... and %d more\n", len(paths)-len(shown))
		}
	}
}

// renderWarnings reproduces the original uncomment CLI's summary wording
// (_examples/original_source/src/main.rs) for comments removed despite
// looking important: a one-line count plus, in verbose mode, up to
// maxWarningExamples "path:line [signal] text" examples.
func renderWarnings(b *strings.Builder, warnings []edit.Warning, verbose bool) {
	if len(warnings) == 0 {
		return
	}

	plural := "s"
	if len(warnings) == 1 {
		plural = ""
	}
	fmt.Fprintf(b, "Warning: removed %d potentially important comment%s. Re-run with `--dry-run --diff` to inspect.\n",
		len(warnings), plural)

	if !verbose {
		return
	}

	fmt.Fprintln(b, "Examples:")
	shown := warnings
	if len(shown) > maxWarningExamples {
		shown = shown[:maxWarningExamples]
	}
	for _, w := range shown {
		fmt.Fprintf(b, "  - %s:%d [%s] %s\n", w.Path, w.Line, w.Signal, w.Text)
	}
}
