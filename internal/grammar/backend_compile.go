package grammar

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// compileGrammar builds a tree-sitter grammar's generated parser.c (and
// scanner.c or scanner.cc, when the grammar has a hand-written external
// scanner) with cc into a shared object loadSharedObject can dlopen,
// writing the result to
// cacheDir/compiled/<id>.so.
func compileGrammar(cacheDir, id, sourceDir string) (string, error) {
	srcDir := filepath.Join(sourceDir, "src")
	parserC := filepath.Join(srcDir, "parser.c")
	if _, err := os.Stat(parserC); err != nil {
		return "", fmt.Errorf("grammar source missing src/parser.c: %w", err)
	}

	args := []string{"-shared", "-fPIC", "-O2", "-I", srcDir, "-o"}
	outDir := filepath.Join(cacheDir, "compiled")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	outPath := filepath.Join(outDir, id+".so")
	args = append(args, outPath, parserC)

	if scanner := filepath.Join(srcDir, "scanner.c"); fileExists(scanner) {
		args = append(args, scanner)
	} else if scannerCC := filepath.Join(srcDir, "scanner.cc"); fileExists(scannerCC) {
		args = append(args, scannerCC)
	}

	cmd := exec.Command("cc", args...)
	cmd.Dir = srcDir
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("cc failed: %w: %s", err, out)
	}
	return outPath, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
