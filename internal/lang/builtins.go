package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	tstypescript "github.com/smacker/go-tree-sitter/typescript/typescript"
)

// DefaultRegistry returns a Registry populated with husk's built-in
// descriptors: the statically-linked languages from the tree-sitter
// bindings codenerd already vendors (Go, Python, Rust, JavaScript,
// TypeScript), plus two descriptors that exist specifically to exercise
// the dynamic backends (§4.2): Make files resolve to a grammar fetched
// over Git on first use, and Terraform/HCL resolves to a grammar compiled
// from a local checkout, since neither ships as a static tree-sitter
// binding in the pack.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(goDescriptor())
	r.Register(pythonDescriptor())
	r.Register(rustDescriptor())
	r.Register(javascriptDescriptor())
	r.Register(typescriptDescriptor())
	r.Register(makeDescriptor())
	r.Register(terraformDescriptor())
	return r
}

func goDescriptor() *Descriptor {
	return &Descriptor{
		ID:           "go",
		DisplayName:  "Go",
		Extensions:   []string{".go"},
		CommentKinds: map[string]bool{"comment": true},
		DocPredicate: goDocPredicate,
		DefaultPreservePatterns: []string{
			"//go:build", "// +build", "//go:generate", "//go:embed", "//go:linkname",
			"//nolint", "//lint:", "// nolint",
		},
		Grammar: GrammarSource{Kind: Static, StaticLanguage: golang.GetLanguage},
	}
}

// goDocPredicate treats a run of immediately-adjacent comments that sits
// with no blank line before a sibling function, method, type, const, var,
// or import declaration as that declaration's doc comment, the convention
// godoc itself follows. The declaration is not required to be top-level.
func goDocPredicate(node, parent *sitter.Node, source []byte) bool {
	if node == nil || node.Type() != "comment" {
		return false
	}
	cur := node
	for {
		next := cur.NextSibling()
		if next == nil || !adjacentLines(cur, next, source) {
			return false
		}
		if next.Type() == "comment" {
			cur = next
			continue
		}
		switch next.Type() {
		case "function_declaration", "method_declaration", "type_declaration",
			"const_declaration", "var_declaration", "import_declaration":
			return true
		default:
			return false
		}
	}
}

// adjacentLines reports whether b starts on the line immediately after a
// ends, i.e. no blank line separates them.
func adjacentLines(a, b *sitter.Node, source []byte) bool {
	if a == nil || b == nil || b.StartByte() < a.EndByte() {
		return false
	}
	gap := source[a.EndByte():b.StartByte()]
	return strings.Count(string(gap), "\n") <= 1
}

func pythonDescriptor() *Descriptor {
	return &Descriptor{
		ID:           "python",
		DisplayName:  "Python",
		Extensions:   []string{".py", ".pyi"},
		IsScript:     true,
		CommentKinds:      map[string]bool{"comment": true},
		DocCandidateKinds: map[string]bool{"expression_statement": true},
		DocPredicate:      pythonDocPredicate,
		DefaultPreservePatterns: []string{
			"# noqa", "# type:", "# pragma:", "# pylint:",
		},
		Grammar: GrammarSource{Kind: Static, StaticLanguage: python.GetLanguage},
	}
}

// pythonDocPredicate implements §4.1's indented-block doc rule: a
// free-standing string-literal expression statement whose parent is a
// module, class, or function body and whose position within that body is
// the first significant (non-comment) child is a docstring.
func pythonDocPredicate(node, parent *sitter.Node, source []byte) bool {
	if node == nil || node.Type() != "expression_statement" || node.NamedChildCount() != 1 {
		return false
	}
	child := node.NamedChild(0)
	if child == nil || child.Type() != "string" {
		return false
	}
	if parent == nil {
		return false
	}
	switch parent.Type() {
	case "module", "block":
	default:
		return false
	}
	grand := parent.Parent()
	if parent.Type() == "block" {
		if grand == nil {
			return false
		}
		switch grand.Type() {
		case "function_definition", "class_definition":
		default:
			return false
		}
	}
	for i := 0; i < int(parent.NamedChildCount()); i++ {
		c := parent.NamedChild(i)
		if c.Type() == "comment" {
			continue
		}
		return c.Equal(node)
	}
	return false
}

func rustDescriptor() *Descriptor {
	return &Descriptor{
		ID:           "rust",
		DisplayName:  "Rust",
		Extensions:   []string{".rs"},
		CommentKinds: map[string]bool{"line_comment": true, "block_comment": true},
		DocPredicate: rustDocPredicate,
		DefaultPreservePatterns: []string{
			"#[allow", "#[warn", "#[deny", "#[forbid", "#[cfg",
		},
		Grammar: GrammarSource{Kind: Static, StaticLanguage: rust.GetLanguage},
	}
}

// rustDocPredicate distinguishes `///` and `//!` doc comments from plain
// `//` line comments, and `/**`/`/*!` doc blocks from plain block
// comments; the grammar reuses the same node kinds for both.
func rustDocPredicate(node, parent *sitter.Node, source []byte) bool {
	if node == nil {
		return false
	}
	text := node.Content(source)
	switch node.Type() {
	case "line_comment":
		return strings.HasPrefix(text, "///") || strings.HasPrefix(text, "//!")
	case "block_comment":
		return strings.HasPrefix(text, "/**") || strings.HasPrefix(text, "/*!")
	default:
		return false
	}
}

func javascriptDescriptor() *Descriptor {
	return &Descriptor{
		ID:           "javascript",
		DisplayName:  "JavaScript",
		Extensions:   []string{".js", ".jsx", ".mjs", ".cjs"},
		IsScript:     true,
		CommentKinds: map[string]bool{"comment": true},
		DocPredicate: jsDocPredicate,
		DefaultPreservePatterns: []string{
			"eslint-disable", "eslint-enable", "prettier-ignore", "istanbul ignore",
			"@ts-ignore", "@ts-expect-error",
		},
		Grammar: GrammarSource{Kind: Static, StaticLanguage: javascript.GetLanguage},
	}
}

func typescriptDescriptor() *Descriptor {
	d := javascriptDescriptor()
	d.ID = "typescript"
	d.DisplayName = "TypeScript"
	d.Extensions = []string{".ts", ".tsx"}
	d.Grammar = GrammarSource{Kind: Static, StaticLanguage: tstypescript.GetLanguage}
	return d
}

// jsDocPredicate treats a `/** ... */` block comment as JSDoc, the only
// widely used documentation-comment convention in this family.
func jsDocPredicate(node, parent *sitter.Node, source []byte) bool {
	if node == nil || node.Type() != "comment" {
		return false
	}
	return strings.HasPrefix(node.Content(source), "/**")
}

// makeDescriptor exists to exercise the Git grammar backend: no tree-sitter
// binding for Makefiles is vendored statically, so resolving a parser for
// this descriptor forces the loader through clone-compile-cache (§4.2).
func makeDescriptor() *Descriptor {
	return &Descriptor{
		ID:           "make",
		DisplayName:  "Makefile",
		Basenames:    []string{"Makefile", "makefile", "GNUmakefile"},
		Extensions:   []string{".mk"},
		CommentKinds: map[string]bool{"comment": true},
		Grammar: GrammarSource{
			Kind: Git,
			URL:  "https://github.com/alemuller/tree-sitter-make",
		},
	}
}

// terraformDescriptor exercises the Local grammar backend: husk expects a
// checked-out tree-sitter-hcl grammar on disk (e.g. vendored by the user's
// global config) rather than fetching one, since HCL grammars vary across
// Terraform/HCL2 forks.
func terraformDescriptor() *Descriptor {
	return &Descriptor{
		ID:           "terraform",
		DisplayName:  "Terraform",
		Extensions:   []string{".tf", ".tfvars"},
		CommentKinds: map[string]bool{"comment": true},
		Grammar: GrammarSource{
			Kind: Local,
			Path: "", // populated by user config; empty means "not configured"
		},
	}
}
