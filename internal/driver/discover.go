package driver

import (
	"bufio"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover expands each input argument — a literal file, a directory to
// recurse into, or a glob pattern — into a deduplicated list of candidate
// file paths in discovery order (arguments in the order given, each
// directory in its walk order), honoring ignore files the same way the driver's
// nested-repository boundary does: if the tree is a git repository, ask
// git itself (matching the CLI shape of shelling out to
// `git check-ignore`); otherwise fall back to a `.gitignore` found at the
// walk root, if any, parsed into doublestar patterns and matched by hand.
func Discover(args []string, opts Options) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if !seen[abs] {
			seen[abs] = true
			out = append(out, path)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err == nil && info.IsDir():
			if err := walkDir(arg, opts, add); err != nil {
				return nil, err
			}
		case err == nil:
			add(arg)
		default:
			matches, gerr := doublestar.FilepathGlob(arg)
			if gerr != nil || len(matches) == 0 {
				return nil, &FileError{Path: arg, Kind: UnreadablePath, Err: err}
			}
			for _, m := range matches {
				add(m)
			}
		}
	}
	return out, nil
}

func walkDir(root string, opts Options, add func(string)) error {
	gitRoot := findGitRoot(root)

	var fallbackPatterns []string
	if opts.RespectIgnoreFiles && gitRoot == "" {
		fallbackPatterns = loadIgnorePatterns(root)
	}

	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			if name != "." && name != filepath.Base(root) {
				if name == ".git" {
					return filepath.SkipDir
				}
				if !opts.TraverseNestedRepos && path != root {
					if _, statErr := os.Stat(filepath.Join(path, ".git")); statErr == nil {
						return filepath.SkipDir
					}
				}
				if matchesAnyIgnorePattern(root, path, fallbackPatterns) {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if opts.RespectIgnoreFiles {
			if gitRoot != "" {
				if isGitIgnored(path) {
					return nil
				}
			} else if matchesAnyIgnorePattern(root, path, fallbackPatterns) {
				return nil
			}
		}

		add(path)
		return nil
	})
}

// loadIgnorePatterns reads root's .gitignore, if one exists, and returns
// its non-blank, non-comment lines as doublestar glob patterns. It only
// looks at the walk root: honoring every nested .gitignore the way git
// itself does would mean reimplementing git's directory-precedence rules,
// which the git-shell path already handles for repositories.
func loadIgnorePatterns(root string) []string {
	f, err := os.Open(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, strings.TrimPrefix(strings.TrimSuffix(line, "/"), "/"))
	}
	return patterns
}

// matchesAnyIgnorePattern reports whether path, made relative to root,
// matches one of patterns. A pattern with no slash matches the basename
// at any depth (git's "anchored only if it contains a slash" rule);
// anything else is matched against the full relative path.
func matchesAnyIgnorePattern(root, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(rel)

	for _, pat := range patterns {
		if strings.Contains(pat, "/") {
			if ok, _ := doublestar.Match(pat, rel); ok {
				return true
			}
			continue
		}
		if ok, _ := doublestar.Match(pat, base); ok {
			return true
		}
	}
	return false
}

// findGitRoot walks upward from dir looking for a .git directory,
// returning "" if none is found short of the filesystem root.
func findGitRoot(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		if info, err := os.Stat(filepath.Join(abs, ".git")); err == nil && info.IsDir() {
			return abs
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return ""
		}
		abs = parent
	}
}

// isGitIgnored shells out to `git check-ignore`, the same interface the
// CLI-shape reference tool uses, so husk inherits a user's full
// .gitignore hierarchy without reimplementing gitignore pattern
// semantics.
func isGitIgnored(path string) bool {
	return exec.Command("git", "check-ignore", "-q", path).Run() == nil
}
