//go:build linux || darwin

package grammar

/*
#include <dlfcn.h>
#include <stdlib.h>

typedef void *(*ts_language_fn)(void);

static void *husk_call_language_fn(void *sym) {
	ts_language_fn fn = (ts_language_fn)sym;
	return fn();
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	sitter "github.com/smacker/go-tree-sitter"
)

// loadSharedObject dlopens a compiled tree-sitter grammar and calls its
// exported `tree_sitter_<name>` constructor to obtain the TSLanguage
// pointer, which sitter.NewLanguage wraps into a usable *sitter.Language.
// This is how Git and Local backend grammars become usable without a
// statically-linked Go binding, generalizing the static-binding-only
// approach the teacher shipped with into the dynamic path §4.2 requires.
func loadSharedObject(path, symbol string) (*sitter.Language, error) {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	handle := C.dlopen(cPath, C.RTLD_NOW)
	if handle == nil {
		return nil, fmt.Errorf("dlopen %s: %s", path, C.GoString(C.dlerror()))
	}

	cSym := C.CString(symbol)
	defer C.free(unsafe.Pointer(cSym))

	sym := C.dlsym(handle, cSym)
	if sym == nil {
		return nil, fmt.Errorf("dlsym %s in %s: %s", symbol, path, C.GoString(C.dlerror()))
	}

	ptr := C.husk_call_language_fn(sym)
	return sitter.NewLanguage(unsafe.Pointer(ptr)), nil
}
