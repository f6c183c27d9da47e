package grammar

import (
	"fmt"
	"os"

	"husk/internal/lang"
)

// resolveLocal compiles a grammar checked out at a user-configured path on
// disk, without any clone step. Used for grammars husk cannot redistribute
// fetch instructions for (e.g. forked HCL grammars).
func (l *Loader) resolveLocal(d *lang.Descriptor) (*Handle, error) {
	if d.Grammar.Path == "" {
		return nil, newError(d.ID, Unavailable, fmt.Errorf("no local grammar path configured for %q", d.ID))
	}
	if _, err := os.Stat(d.Grammar.Path); err != nil {
		return nil, newError(d.ID, Unavailable, err)
	}

	key := cacheKey(d)
	if entry, ok := l.index.get(key); ok && entry.SharedObject != "" {
		if lang_, err := loadSharedObject(entry.SharedObject, symbolName(d)); err == nil {
			return &Handle{Descriptor: d, Language: lang_}, nil
		}
	}

	soPath, err := compileGrammar(l.cacheDir, d.ID, d.Grammar.Path)
	if err != nil {
		return nil, newError(d.ID, CompileFailed, err)
	}

	handleLang, err := loadSharedObject(soPath, symbolName(d))
	if err != nil {
		return nil, newError(d.ID, Incompatible, err)
	}

	l.index.put(key, indexEntry{SharedObject: soPath, SourceDir: d.Grammar.Path})
	return &Handle{Descriptor: d, Language: handleLang}, nil
}
