package grammar

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// indexEntry records what the loader materialized for one cache key, so a
// later process (or a later run in the same process, after an LRU evict)
// can skip cloning or compiling again.
type indexEntry struct {
	// SharedObject is the path to the compiled grammar's loadable object,
	// for Git and Local backends.
	SharedObject string `json:"shared_object"`
	// ResolvedRevision is the commit the Git backend actually checked
	// out, recorded even when GrammarSource.Revision was left empty.
	ResolvedRevision string `json:"resolved_revision,omitempty"`
	// SourceDir is the on-disk clone or copy the shared object was built
	// from, kept so a cache-clean pass can find it.
	SourceDir string `json:"source_dir,omitempty"`
}

// cacheIndex is the on-disk manifest of materialized grammars, persisted
// as a single JSON document under the loader's cache directory. It follows
// the same load-once/mark-dirty/save-on-demand shape as the teacher's file
// content cache.
type cacheIndex struct {
	mu      sync.Mutex
	path    string
	dirty   bool
	Entries map[string]indexEntry `json:"entries"`
}

func newCacheIndex(dir string) *cacheIndex {
	idx := &cacheIndex{
		path:    filepath.Join(dir, "index.json"),
		Entries: make(map[string]indexEntry),
	}
	idx.load()
	return idx
}

func (c *cacheIndex) load() {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if err != nil {
		return
	}
	var entries map[string]indexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return
	}
	c.Entries = entries
}

func (c *cacheIndex) get(key string) (indexEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.Entries[key]
	return e, ok
}

func (c *cacheIndex) put(key string, e indexEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Entries[key] = e
	c.dirty = true
}

func (c *cacheIndex) save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c.Entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return err
	}
	c.dirty = false
	return nil
}
