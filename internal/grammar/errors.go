package grammar

import "fmt"

// Kind categorizes why a grammar could not be resolved, so callers (the
// File Driver's per-file error handling, the scaffold's capability probe)
// can react without string-matching error text.
type Kind int

const (
	// Unavailable means the descriptor names no usable grammar source at
	// all (e.g. a Local backend with an empty Path).
	Unavailable Kind = iota
	// Incompatible means a grammar was obtained but its ABI or language
	// version does not match what husk's tree-sitter binding expects.
	Incompatible
	// NetworkUnavailable means a Git backend needed a clone or fetch and
	// the network call failed.
	NetworkUnavailable
	// CompileFailed means a fetched or local grammar source could not be
	// built into a loadable shared object.
	CompileFailed
)

func (k Kind) String() string {
	switch k {
	case Unavailable:
		return "unavailable"
	case Incompatible:
		return "incompatible"
	case NetworkUnavailable:
		return "network_unavailable"
	case CompileFailed:
		return "compile_failed"
	default:
		return "unknown"
	}
}

// Error is returned by Loader.Handle when a grammar cannot be resolved.
// It carries the language ID and Kind so a caller can decide whether the
// failure is retryable (NetworkUnavailable) or permanent (Unavailable,
// Incompatible, CompileFailed).
type Error struct {
	Language string
	Kind     Kind
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("grammar %s: %s: %v", e.Language, e.Kind, e.Err)
	}
	return fmt.Sprintf("grammar %s: %s", e.Language, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(language string, kind Kind, err error) *Error {
	return &Error{Language: language, Kind: kind, Err: err}
}
