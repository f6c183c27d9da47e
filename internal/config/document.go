// Package config resolves the effective rule set for a source file by
// merging built-in defaults, user-global configuration, a project
// configuration chain, pattern-scoped overrides, and command-line
// overrides (C3).
package config

import (
	"bytes"
	"fmt"

	"github.com/spf13/viper"
)

// GlobalSection mirrors the "Global" keys a configuration document may
// set, at either the document's top level or inside a pattern block.
type GlobalSection struct {
	RemoveTodos       *bool    `mapstructure:"remove_todos" yaml:"remove_todos,omitempty"`
	RemoveFixmes      *bool    `mapstructure:"remove_fixme" yaml:"remove_fixme,omitempty"`
	RemoveDocs        *bool    `mapstructure:"remove_docs" yaml:"remove_docs,omitempty"`
	PreservePatterns  []string `mapstructure:"preserve_patterns" yaml:"preserve_patterns,omitempty"`
	UseDefaultIgnores *bool    `mapstructure:"use_default_ignores" yaml:"use_default_ignores,omitempty"`
	RespectGitignore  *bool    `mapstructure:"respect_gitignore" yaml:"respect_gitignore,omitempty"`
	TraverseGitRepos  *bool    `mapstructure:"traverse_git_repos" yaml:"traverse_git_repos,omitempty"`
}

// GrammarSourceSpec is the configuration-file shape of a language's
// grammar source (§6 "Grammar source").
type GrammarSourceSpec struct {
	Type   string `mapstructure:"type" yaml:"type,omitempty"` // "git", "local", "library"
	URL    string `mapstructure:"url" yaml:"url,omitempty"`
	Branch string `mapstructure:"branch" yaml:"branch,omitempty"`
	Path   string `mapstructure:"path" yaml:"path,omitempty"`
}

// LanguageSpec is one entry of a document's "Language" section.
type LanguageSpec struct {
	Name             string            `mapstructure:"name" yaml:"name"`
	Extensions       []string          `mapstructure:"extensions" yaml:"extensions,omitempty"`
	CommentNodes     []string          `mapstructure:"comment_nodes" yaml:"comment_nodes,omitempty"`
	DocCommentNodes  []string          `mapstructure:"doc_comment_nodes" yaml:"doc_comment_nodes,omitempty"`
	PreservePatterns []string          `mapstructure:"preserve_patterns" yaml:"preserve_patterns,omitempty"`
	RemoveDocs       *bool             `mapstructure:"remove_docs" yaml:"remove_docs,omitempty"`
	Grammar          GrammarSourceSpec `mapstructure:"grammar" yaml:"grammar,omitempty"`
}

// PatternBlock is the value half of a "Pattern block" entry: a glob key
// mapping to settings scoped to paths matching that glob.
type PatternBlock struct {
	GlobalSection `mapstructure:",squash" yaml:",inline"`
}

// Document is one parsed configuration file: husk's built-in defaults,
// a user's global config, and every file found walking a project's
// configuration-traversal chain are each loaded into one Document.
type Document struct {
	Global    GlobalSection           `mapstructure:",squash" yaml:",inline"`
	Languages []LanguageSpec          `mapstructure:"languages" yaml:"languages,omitempty"`
	Patterns  map[string]PatternBlock `mapstructure:"patterns" yaml:"patterns,omitempty"`
}

// LoadDocument parses YAML configuration bytes into a Document. This is
// the one I/O-adjacent seam in the package: it takes bytes, not a path,
// so file discovery and walking remain the File Driver's job (§4.3 "the
// resolver does not perform I/O").
func LoadDocument(data []byte) (*Document, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	var doc Document
	if err := v.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &doc, nil
}
