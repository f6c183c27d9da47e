package grammar

import "husk/internal/lang"

func (l *Loader) resolveStatic(d *lang.Descriptor) (*Handle, error) {
	if d.Grammar.StaticLanguage == nil {
		return nil, newError(d.ID, Unavailable, nil)
	}
	return &Handle{Descriptor: d, Language: d.Grammar.StaticLanguage()}, nil
}
