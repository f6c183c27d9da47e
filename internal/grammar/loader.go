// Package grammar resolves a language descriptor's GrammarSource into a
// ready-to-use tree-sitter Handle, materializing Git and Local backends on
// first use and caching the result both in process and on disk (C2).
package grammar

import (
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"husk/internal/lang"
)

// Loader resolves and caches grammar Handles. One Loader is shared by
// every worker in a run; resolution of a given language happens at most
// once even when many workers request it concurrently, via the
// singleflight group.
type Loader struct {
	cacheDir string
	lru      *lru.Cache[string, *Handle]
	index    *cacheIndex
	group    singleflight.Group
}

// New returns a Loader that caches compiled/cloned grammars under cacheDir
// and keeps up to maxHandles resolved languages in memory.
func New(cacheDir string, maxHandles int) (*Loader, error) {
	if maxHandles <= 0 {
		maxHandles = 32
	}
	c, err := lru.New[string, *Handle](maxHandles)
	if err != nil {
		return nil, err
	}
	return &Loader{
		cacheDir: cacheDir,
		lru:      c,
		index:    newCacheIndex(cacheDir),
	}, nil
}

// Handle resolves d's grammar, serving from the in-memory LRU when
// present and otherwise materializing it exactly once regardless of how
// many goroutines call Handle for the same descriptor concurrently.
func (l *Loader) Handle(d *lang.Descriptor) (*Handle, error) {
	if !d.HasGrammar() {
		return nil, newError(d.ID, Unavailable, nil)
	}

	key := cacheKey(d)
	if h, ok := l.lru.Get(key); ok {
		return h, nil
	}

	v, err, _ := l.group.Do(key, func() (interface{}, error) {
		if h, ok := l.lru.Get(key); ok {
			return h, nil
		}
		h, err := l.resolve(d)
		if err != nil {
			return nil, err
		}
		l.lru.Add(key, h)
		return h, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Handle), nil
}

// Flush persists the on-disk cache index. Callers invoke this once at the
// end of a run; grammar materialization otherwise only touches the index
// in memory.
func (l *Loader) Flush() error {
	return l.index.save()
}

// CacheDir returns the directory this Loader persists compiled grammars
// and its index under.
func (l *Loader) CacheDir() string {
	return l.cacheDir
}

// CacheEntry is a read-only view of one materialized grammar, for
// reporting what the persisted cache currently holds (§6 "Persisted
// state") without exposing the index's internal locking.
type CacheEntry struct {
	Key              string
	SharedObject     string
	ResolvedRevision string
	SourceDir        string
}

// CacheEntries returns every grammar the on-disk index currently
// remembers materializing, in the shape `init --comprehensive` prints.
func (l *Loader) CacheEntries() []CacheEntry {
	l.index.mu.Lock()
	defer l.index.mu.Unlock()

	entries := make([]CacheEntry, 0, len(l.index.Entries))
	for key, e := range l.index.Entries {
		entries = append(entries, CacheEntry{
			Key:              key,
			SharedObject:     e.SharedObject,
			ResolvedRevision: e.ResolvedRevision,
			SourceDir:        e.SourceDir,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

func (l *Loader) resolve(d *lang.Descriptor) (*Handle, error) {
	switch d.Grammar.Kind {
	case lang.Static:
		return l.resolveStatic(d)
	case lang.Git:
		return l.resolveGit(d)
	case lang.Local:
		return l.resolveLocal(d)
	case lang.Library:
		return l.resolveLibrary(d)
	default:
		return nil, newError(d.ID, Unavailable, nil)
	}
}

func cacheKey(d *lang.Descriptor) string {
	g := d.Grammar
	switch g.Kind {
	case lang.Git:
		return "git:" + g.URL + "@" + g.Revision + ":" + g.Subpath
	case lang.Local:
		return "local:" + g.Path
	case lang.Library:
		return "library:" + g.Path
	default:
		return "static:" + d.ID
	}
}
