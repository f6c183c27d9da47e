package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverProjectChain_RootToLeafOrder(t *testing.T) {
	root := t.TempDir()
	leaf := filepath.Join(root, "sub")
	if err := os.MkdirAll(leaf, 0o755); err != nil {
		t.Fatal(err)
	}

	writeConfig := func(dir, removeTodos string) {
		content := "remove_todos: " + removeTodos + "\n"
		if err := os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	writeConfig(root, "false")
	writeConfig(leaf, "true")

	chain, err := discoverProjectChain(leaf)
	if err != nil {
		t.Fatalf("discoverProjectChain returned error: %v", err)
	}
	if len(chain) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(chain))
	}
	if chain[0].BaseDir != root {
		t.Fatalf("expected root layer first, got %s", chain[0].BaseDir)
	}
	if chain[1].BaseDir != leaf {
		t.Fatalf("expected leaf layer last, got %s", chain[1].BaseDir)
	}
}

func TestDiscoverProjectChain_NoConfigFilesIsEmpty(t *testing.T) {
	root := t.TempDir()

	chain, err := discoverProjectChain(root)
	if err != nil {
		t.Fatalf("discoverProjectChain returned error: %v", err)
	}
	if len(chain) != 0 {
		t.Fatalf("expected no layers, got %d", len(chain))
	}
}

func TestLoadUserGlobal_MissingFileIsNilNotError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	layer, err := loadUserGlobal()
	if err != nil {
		t.Fatalf("loadUserGlobal returned error: %v", err)
	}
	if layer != nil {
		t.Fatalf("expected nil layer when no global config exists, got %+v", layer)
	}
}
