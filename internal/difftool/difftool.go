// Package difftool computes per-file unified diffs for the --diff run
// mode (§6), adapted from the teacher's line-level diff engine built on
// sergi/go-diff.
package difftool

import (
	"strings"
	"sync"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineType classifies one line of a computed diff.
type LineType int

const (
	LineContext LineType = iota
	LineAdded
	LineRemoved
)

// Line is a single rendered line within a Hunk.
type Line struct {
	OldLineNum int
	NewLineNum int
	Content    string
	Type       LineType
}

// Hunk is one contiguous group of changed lines plus surrounding
// context.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []Line
}

// FileDiff is the computed diff between a file's old and new content.
type FileDiff struct {
	OldPath, NewPath string
	Hunks            []Hunk
}

// Engine computes diffs with a result cache keyed on the exact input
// pair, so a dry-run driver that recomputes a diff it already produced
// for the summary doesn't redo the work.
type Engine struct {
	dmp   *diffmatchpatch.DiffMatchPatch
	cache sync.Map
}

// NewEngine returns an Engine tuned for whole-file code diffs: no
// timeout, since correctness matters more than latency for a batch tool.
func NewEngine() *Engine {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	return &Engine{dmp: dmp}
}

type cacheKey struct{ oldHash, newHash uint64 }

// Compute returns the FileDiff between oldContent and newContent, using
// sergi/go-diff's line-granularity mode to avoid within-line noise on
// pure comment removal.
func (e *Engine) Compute(oldPath, newPath, oldContent, newContent string) *FileDiff {
	key := cacheKey{hash(oldContent), hash(newContent)}
	if cached, ok := e.cache.Load(key); ok {
		fd := *cached.(*FileDiff)
		fd.OldPath, fd.NewPath = oldPath, newPath
		return &fd
	}

	a, b, lineArray := e.dmp.DiffLinesToChars(oldContent, newContent)
	diffs := e.dmp.DiffMain(a, b, false)
	diffs = e.dmp.DiffCleanupSemantic(diffs)
	diffs = e.dmp.DiffCharsToLines(diffs, lineArray)

	fd := &FileDiff{OldPath: oldPath, NewPath: newPath, Hunks: groupIntoHunks(diffsToOperations(diffs), 3)}
	e.cache.Store(key, fd)
	return fd
}

func hash(s string) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime64
	}
	return h
}

type operation struct {
	typ              LineType
	oldLine, newLine int // -1 when not applicable
	content          string
}

func diffsToOperations(diffs []diffmatchpatch.Diff) []operation {
	var ops []operation
	oldLine, newLine := 0, 0

	for _, d := range diffs {
		lines := strings.Split(d.Text, "\n")
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		for _, line := range lines {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				ops = append(ops, operation{LineContext, oldLine, newLine, line})
				oldLine++
				newLine++
			case diffmatchpatch.DiffDelete:
				ops = append(ops, operation{LineRemoved, oldLine, -1, line})
				oldLine++
			case diffmatchpatch.DiffInsert:
				ops = append(ops, operation{LineAdded, -1, newLine, line})
				newLine++
			}
		}
	}
	return ops
}

func groupIntoHunks(ops []operation, context int) []Hunk {
	if len(ops) == 0 {
		return nil
	}

	var hunks []Hunk
	var current *Hunk
	lastChange := -1

	for i, op := range ops {
		if op.typ != LineContext {
			if current == nil {
				start := i - context
				if start < 0 {
					start = 0
				}
				current = &Hunk{}
				for j := start; j < i; j++ {
					current.Lines = append(current.Lines, toLine(ops[j]))
				}
				current.OldStart = ops[start].oldLine + 1
				current.NewStart = ops[start].newLine + 1
			}
			lastChange = i
		}

		if current != nil {
			current.Lines = append(current.Lines, toLine(op))
			if op.typ == LineContext && i-lastChange > context {
				trimTo := len(current.Lines) - (i - lastChange - context)
				if trimTo > 0 && trimTo < len(current.Lines) {
					current.Lines = current.Lines[:trimTo]
				}
				computeCounts(current)
				hunks = append(hunks, *current)
				current = nil
			}
		}
	}

	if current != nil && len(current.Lines) > 0 {
		computeCounts(current)
		hunks = append(hunks, *current)
	}
	return hunks
}

func toLine(op operation) Line {
	return Line{OldLineNum: op.oldLine + 1, NewLineNum: op.newLine + 1, Content: op.content, Type: op.typ}
}

func computeCounts(h *Hunk) {
	for _, l := range h.Lines {
		if l.Type == LineRemoved || l.Type == LineContext {
			h.OldCount++
		}
		if l.Type == LineAdded || l.Type == LineContext {
			h.NewCount++
		}
	}
}
