package grammar

import (
	"husk/internal/lang"
)

// resolveLibrary loads a grammar from an already-built shared object,
// skipping compilation entirely. This is the backend for grammars a user
// has pre-built themselves and pointed husk's config at directly.
func (l *Loader) resolveLibrary(d *lang.Descriptor) (*Handle, error) {
	if d.Grammar.Path == "" {
		return nil, newError(d.ID, Unavailable, nil)
	}
	handleLang, err := loadSharedObject(d.Grammar.Path, symbolName(d))
	if err != nil {
		return nil, newError(d.ID, Incompatible, err)
	}
	return &Handle{Descriptor: d, Language: handleLang}, nil
}
