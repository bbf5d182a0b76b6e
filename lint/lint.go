package lint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gnolang/cslint/internal"
	"github.com/gnolang/cslint/internal/lints"
	"github.com/gnolang/cslint/internal/stylesheet"
	tt "github.com/gnolang/cslint/internal/types"
	"github.com/gnolang/cslint/scanner"
)

// DefaultConfigFile is the configuration file looked up when none is given.
const DefaultConfigFile = ".cslint.yaml"

type LintEngine interface {
	Run(filePath string) ([]tt.Issue, error)
	RunSource(source []byte) ([]tt.Issue, error)
	IgnoreRule(rule string)
	IgnorePath(path string)
}

// New builds an engine from the configuration file at configurationPath.
// An empty path means no configuration: every rule keeps its default.
func New(rootDir string, configurationPath string) (*internal.Engine, error) {
	config, err := LoadConfig(configurationPath)
	if err != nil {
		return nil, err
	}

	return NewWithConfig(rootDir, config)
}

// NewWithConfig builds an engine from an already loaded configuration.
func NewWithConfig(rootDir string, config Config) (*internal.Engine, error) {
	return internal.NewEngine(rootDir, config.Rules)
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	sources [][]byte,
	processor func(LintEngine, []byte) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		issues, err := processor(engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

// ProcessPath lints a single file or every stylesheet below a directory.
// Files in a directory are processed by a bounded pool of workers; a file
// that fails is logged and skipped.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			if logger != nil {
				logger.Warn("Skipping non-stylesheet file", zap.String("file", path))
			}
			return nil, nil
		}
		return processor(engine, path)
	}

	files, err := scanner.New(path, stylesheet.Extensions...).Scan()
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", path, err)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetVisibility(isatty.IsTerminal(os.Stderr.Fd())),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	// results are stored per file so the output order does not depend on scheduling
	results := make([][]tt.Issue, len(files))

	// limit the number of workers
	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	var ctxErr error
	for i, file := range files {
		if ctxErr = ctx.Err(); ctxErr != nil {
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
		case sem <- struct{}{}:
		}
		if ctxErr != nil {
			break
		}

		wg.Add(1)
		go func(i int, fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			fileIssues, err := processor(engine, fp)
			if err != nil {
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
			} else {
				results[i] = fileIssues
			}
			_ = bar.Add(1)
		}(i, file.Path)
	}
	wg.Wait()
	_ = bar.Finish()

	if ctxErr != nil {
		return nil, ctxErr
	}

	var issues []tt.Issue
	for _, r := range results {
		issues = append(issues, r...)
	}
	return issues, nil
}

func ProcessFile(engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(filePath)
}

func ProcessSource(engine LintEngine, source []byte) ([]tt.Issue, error) {
	return engine.RunSource(source)
}

func hasDesiredExtension(path string) bool {
	return scanner.New("", stylesheet.Extensions...).Matches(path)
}

// Config represents the overall configuration with a name and a slice of rules.
type Config struct {
	Name  string                   `yaml:"name"`
	Rules map[string]tt.ConfigRule `yaml:"rules"`
}

// DefaultConfig returns the configuration written by "cslint init".
func DefaultConfig() (Config, error) {
	lt, gt := 10.0, -10.0
	var options yaml.Node
	err := options.Encode(lints.NumericConstantOptions{
		Properties: []string{"z-index", "transition-duration", "animation-duration"},
		AllowLt:    &lt,
		AllowGt:    &gt,
	})
	if err != nil {
		return Config{}, err
	}

	return Config{
		Name: "cslint",
		Rules: map[string]tt.ConfigRule{
			lints.ValueNoNumericConstants: {
				Severity: tt.SeverityError,
				Options:  options,
			},
		},
	}, nil
}

// LoadConfig reads a configuration file. An empty path yields an empty config.
func LoadConfig(configurationPath string) (Config, error) {
	var config Config
	if configurationPath == "" {
		return config, nil
	}

	// Read the configuration file
	f, err := os.Open(configurationPath)
	if err != nil {
		return config, fmt.Errorf("error opening configuration: %w", err)
	}
	defer f.Close()

	// Parse the configuration file
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("error parsing configuration %s: %w", configurationPath, err)
	}

	return config, nil
}

// WriteConfig writes config to path as YAML.
func WriteConfig(path string, config Config) error {
	d, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error encoding configuration: %w", err)
	}
	if err := os.WriteFile(path, d, 0o644); err != nil {
		return fmt.Errorf("error writing configuration: %w", err)
	}
	return nil
}

// SortIssues orders issues by file name, then by position.
func SortIssues(issues []tt.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Filename != issues[j].Filename {
			return issues[i].Filename < issues[j].Filename
		}
		return issues[i].Start.Offset < issues[j].Start.Offset
	})
}
