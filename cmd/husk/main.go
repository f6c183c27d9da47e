// Command husk removes comments from source files while preserving the
// ones that carry meaning: linter directives, build tags, shebangs,
// documentation, and anything a file or the caller explicitly marks to
// keep.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"husk/internal/config"
	"husk/internal/driver"
	"husk/internal/grammar"
	"husk/internal/lang"
	"husk/internal/logging"
	"husk/internal/scaffold"
)

const configFileName = ".husk.yaml"

var (
	flagRemoveTodo    bool
	flagRemoveFixme   bool
	flagRemoveDoc     bool
	flagIgnorePattern []string
	flagNoDefaults    bool
	flagDryRun        bool
	flagDiff          bool
	flagThreads       int
	flagConfigPath    string
	flagVerbose       bool
	flagNoGitignore   bool

	flagComprehensive bool
	flagInteractive   bool
	flagOutput        string
	flagForce         bool
)

var exitCode int

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	os.Exit(exitCode)
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "husk [paths...]",
		Short: "Strip comments from source files, keeping the ones that matter",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Init(flagVerbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
		RunE: runClean,
	}

	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "include examples of skipped/unsupported files and warnings in the summary")

	cmd.Flags().BoolVarP(&flagRemoveTodo, "remove-todo", "r", false, "remove TODO comments")
	cmd.Flags().BoolVarP(&flagRemoveFixme, "remove-fixme", "f", false, "remove FIXME comments")
	cmd.Flags().BoolVarP(&flagRemoveDoc, "remove-doc", "d", false, "remove documentation comments")
	cmd.Flags().StringArrayVarP(&flagIgnorePattern, "ignore-patterns", "i", nil, "additional preservation pattern (repeatable)")
	cmd.Flags().BoolVar(&flagNoDefaults, "no-default-ignores", false, "disable built-in per-language directive patterns")
	cmd.Flags().BoolVarP(&flagDryRun, "dry-run", "n", false, "report what would change; do not write")
	cmd.Flags().BoolVar(&flagDiff, "diff", false, "dry-run plus a per-file unified diff")
	cmd.Flags().IntVar(&flagThreads, "threads", 0, "override the worker count (default: host parallelism)")
	cmd.Flags().StringVar(&flagConfigPath, "config", "", "use a specific configuration file instead of discovery")
	cmd.Flags().BoolVar(&flagNoGitignore, "no-gitignore", false, "do not honor .gitignore (or its non-git fallback) when discovering files")

	cmd.AddCommand(initCmd())
	return cmd
}

func runClean(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	mode := driver.WriteMode
	switch {
	case flagDiff:
		mode = driver.DiffMode
	case flagDryRun:
		mode = driver.DryRunMode
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	userGlobal, err := loadUserGlobal()
	if err != nil {
		return &config.InvalidError{Source: "<user-global>", Err: err}
	}

	var projectChain []config.Layer
	if flagConfigPath != "" {
		layer, err := loadLayer(flagConfigPath)
		if err != nil {
			return &config.InvalidError{Source: flagConfigPath, Err: err}
		}
		projectChain = []config.Layer{*layer}
	} else {
		projectChain, err = discoverProjectChain(cwd)
		if err != nil {
			return &config.InvalidError{Source: cwd, Err: err}
		}
	}

	opts := driver.Options{
		Mode:    mode,
		Threads: flagThreads,
		Verbose: flagVerbose,
		CLI: config.CLIOverrides{
			RemoveTodos:           flagRemoveTodo,
			RemoveFixmes:          flagRemoveFixme,
			RemoveDocs:            flagRemoveDoc,
			NoDefaultIgnores:      flagNoDefaults,
			ExtraPreservePatterns: flagIgnorePattern,
		},
		UserGlobal:         userGlobal,
		ProjectChain:       projectChain,
		RespectIgnoreFiles: !flagNoGitignore,
	}

	reg := lang.DefaultRegistry()

	docs := make([]*config.Document, 0, len(projectChain)+1)
	if userGlobal != nil {
		docs = append(docs, userGlobal.Document)
	}
	for _, layer := range projectChain {
		docs = append(docs, layer.Document)
	}
	config.ApplyLanguageConfig(reg, docs...)

	if flagVerbose {
		for _, c := range reg.Conflicts() {
			fmt.Fprintln(os.Stderr, "descriptor conflict:", lang.DescribeConflict(c))
		}
	}

	cacheDir, err := defaultCacheDir()
	if err != nil {
		return err
	}
	loader, err := grammar.New(cacheDir, 64)
	if err != nil {
		return err
	}

	summary, err := driver.Run(args, reg, loader, opts)
	if err != nil {
		return err
	}

	fmt.Print(summary.Render(flagVerbose))
	exitCode = summary.ExitCode()
	return nil
}

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a starter husk configuration for this project",
		RunE:  runInit,
	}
	cmd.Flags().BoolVar(&flagComprehensive, "comprehensive", false, "cover every built-in and well-known language, not just the ones observed")
	cmd.Flags().BoolVar(&flagInteractive, "interactive", false, "prompt before overwriting an existing configuration file")
	cmd.Flags().StringVar(&flagOutput, "output", configFileName, "path to write the generated configuration")
	cmd.Flags().BoolVar(&flagForce, "force", false, "overwrite an existing configuration file without prompting")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	reg := lang.DefaultRegistry()
	doc, stats, err := scaffold.Generate(reg, scaffold.Options{Root: root, Comprehensive: flagComprehensive})
	if err != nil {
		return err
	}

	err = scaffold.Write(doc, scaffold.Options{
		OutputPath:  flagOutput,
		Force:       flagForce,
		Interactive: flagInteractive,
		Confirm:     confirmPrompt,
	})
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d files scanned, %d languages recognized, %d unrecognized)\n",
		flagOutput, stats.FilesScanned, len(stats.ByLanguage), stats.Unrecognized)

	if flagComprehensive {
		if err := reportCacheContents(); err != nil {
			return err
		}
	}
	return nil
}

// reportCacheContents prints what the grammar loader's on-disk cache
// currently holds, the persisted-state surface `--comprehensive` exists
// to make visible when it widens the language set to every descriptor
// the registry knows, not just the ones this project's files triggered.
func reportCacheContents() error {
	cacheDir, err := defaultCacheDir()
	if err != nil {
		return err
	}
	loader, err := grammar.New(cacheDir, 64)
	if err != nil {
		return err
	}

	entries := loader.CacheEntries()
	fmt.Printf("grammar cache: %s (%d materialized)\n", loader.CacheDir(), len(entries))
	for _, e := range entries {
		switch {
		case e.ResolvedRevision != "":
			fmt.Printf("  %s -> %s @ %s\n", e.Key, e.SharedObject, e.ResolvedRevision)
		default:
			fmt.Printf("  %s -> %s\n", e.Key, e.SharedObject)
		}
	}
	return nil
}

func confirmPrompt(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	var answer string
	fmt.Fscanln(os.Stdin, &answer)
	return answer == "y" || answer == "Y"
}

func loadUserGlobal() (*config.Layer, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil
	}
	path := filepath.Join(home, configFileName)
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	return loadLayer(path)
}

func loadLayer(path string) (*config.Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := config.LoadDocument(data)
	if err != nil {
		return nil, err
	}
	return &config.Layer{Document: doc, BaseDir: filepath.Dir(path)}, nil
}

// discoverProjectChain walks upward from dir to the filesystem root,
// collecting every configFileName found, then reverses the result so the
// chain is root-to-leaf as config.Resolver.Resolve requires (§4.3).
func discoverProjectChain(dir string) ([]config.Layer, error) {
	var chain []config.Layer

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		candidate := filepath.Join(abs, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			layer, err := loadLayer(candidate)
			if err != nil {
				return nil, err
			}
			chain = append(chain, *layer)
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			break
		}
		abs = parent
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

func defaultCacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "husk"), nil
	}
	return filepath.Join(dir, "husk"), nil
}
