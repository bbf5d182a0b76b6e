package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/cslint/formatter"
	"github.com/gnolang/cslint/internal"
	tt "github.com/gnolang/cslint/internal/types"
	"github.com/gnolang/cslint/lint"
)

var (
	ignoreRules    string
	ignorePaths    string
	lintJsonOutput bool
	outPath        string
	cacheDir       string
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Lint stylesheet files and directories",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := newEngine(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}

		if cacheDir != "" {
			cache, err := internal.NewCache(cacheDir)
			if err != nil {
				logger.Fatal("Failed to open cache", zap.String("dir", cacheDir), zap.Error(err))
			}
			engine.UseCache(cache)
		}

		applyIgnores(engine, ignoreRules, ignorePaths)

		count, err := runNormalLintProcess(ctx, logger, engine, args, os.Stdout, lintJsonOutput, outPath)
		if err != nil {
			logger.Error("Error processing files", zap.Error(err))
			os.Exit(1)
		}
		if count > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	lintCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of lint rules to ignore")
	lintCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths to ignore")
	lintCmd.Flags().BoolVar(&lintJsonOutput, "json", false, "Output issues in JSON format")
	lintCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	lintCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Directory for the lint result cache (disabled when empty)")
}

func applyIgnores(engine lint.LintEngine, rules, paths string) {
	for _, rule := range splitList(rules) {
		engine.IgnoreRule(rule)
	}
	for _, path := range splitList(paths) {
		engine.IgnorePath(path)
	}
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// runNormalLintProcess lints paths, prints the result to w and returns
// the number of issues found.
func runNormalLintProcess(ctx context.Context, logger *zap.Logger, engine lint.LintEngine, paths []string, w io.Writer, isJson bool, jsonOutput string) (int, error) {
	issues, err := lint.ProcessFiles(ctx, logger, engine, paths, lint.ProcessFile)
	if err != nil {
		return 0, err
	}

	if err := printIssues(logger, w, issues, isJson, jsonOutput); err != nil {
		return 0, err
	}
	return len(issues), nil
}

func groupByFile(issues []tt.Issue) (map[string][]tt.Issue, []string) {
	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}

	sortedFiles := make([]string, 0, len(issuesByFile))
	for filename := range issuesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)
	return issuesByFile, sortedFiles
}

func printIssues(logger *zap.Logger, w io.Writer, issues []tt.Issue, isJson bool, jsonOutput string) error {
	issuesByFile, sortedFiles := groupByFile(issues)

	if !isJson {
		for _, filename := range sortedFiles {
			printFileIssues(logger, w, filename, issuesByFile[filename])
		}
		return nil
	}

	d, err := json.Marshal(issuesByFile)
	if err != nil {
		return fmt.Errorf("error marshalling issues to JSON: %w", err)
	}
	if jsonOutput == "" {
		_, err = fmt.Fprintln(w, string(d))
		return err
	}
	if err := os.WriteFile(jsonOutput, d, 0o644); err != nil {
		return fmt.Errorf("error writing JSON output file: %w", err)
	}
	return nil
}

func printFileIssues(logger *zap.Logger, w io.Writer, filename string, issues []tt.Issue) {
	sourceCode, err := internal.ReadSourceCode(filename)
	if err != nil {
		logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
		return
	}
	fmt.Fprintln(w, formatter.GenerateFormattedIssue(issues, sourceCode))
}
