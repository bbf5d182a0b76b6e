package internal

import (
	"crypto/md5"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/gnolang/cslint/internal/lints"
	"github.com/gnolang/cslint/internal/nolint"
	"github.com/gnolang/cslint/internal/stylesheet"
	tt "github.com/gnolang/cslint/internal/types"
)

// Engine manages the linting process.
type Engine struct {
	rootDir      string
	ignoredRules map[string]bool
	ignoredPaths []string
	rules        map[string]LintRule
	cache        *Cache
	configHash   string
	mu           sync.RWMutex
}

// NewEngine creates a new lint engine.
// Rules with invalid options are rejected here rather than skipped at run time.
func NewEngine(rootDir string, rules map[string]tt.ConfigRule) (*Engine, error) {
	engine := &Engine{
		rootDir:      rootDir,
		ignoredRules: make(map[string]bool),
	}
	if err := engine.applyRules(rules); err != nil {
		return nil, err
	}

	hash, err := hashConfig(rules)
	if err != nil {
		return nil, err
	}
	engine.configHash = hash

	return engine, nil
}

// Define the ruleConstructor type
type ruleConstructor func() LintRule

// Define the ruleMap type
type ruleMap map[string]ruleConstructor

// Create a map to hold the mappings of rule names to their constructors
var allRuleConstructors = ruleMap{
	lints.ValueNoNumericConstants: NewValueNoNumericConstantsRule,
}

// RuleNames returns the names of all known rules, sorted.
func RuleNames() []string {
	names := make([]string, 0, len(allRuleConstructors))
	for name := range allRuleConstructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) error {
	e.rules = make(map[string]LintRule)
	e.registerDefaultRules()

	// Iterate over the rules and apply severity and options
	for key, rule := range rules {
		newRuleCstr := allRuleConstructors[key]
		if newRuleCstr == nil {
			return fmt.Errorf("unknown rule %q", key)
		}
		if rule.Severity == tt.SeverityOff {
			delete(e.rules, key)
			continue
		}

		r := e.findRule(key)
		if r == nil {
			r = newRuleCstr()
		}
		if configurable, ok := r.(ConfigurableRule); ok {
			if err := configurable.Configure(&rule.Options); err != nil {
				return fmt.Errorf("rule %s: invalid options: %w", key, err)
			}
		}
		r.SetSeverity(rule.Severity)
		e.rules[key] = r
	}
	return nil
}

func (e *Engine) registerDefaultRules() {
	// iterate over allRuleConstructors and add them to the rules map if severity is not off
	for key, newRuleCstr := range allRuleConstructors {
		newRule := newRuleCstr()
		if newRule.Severity() != tt.SeverityOff {
			e.rules[key] = newRule
		}
	}
}

func (e *Engine) findRule(name string) LintRule {
	if rule, ok := e.rules[name]; ok {
		return rule
	}
	return nil
}

// EnabledRules returns the names of the rules that will run, sorted.
func (e *Engine) EnabledRules() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var names []string
	for name := range e.rules {
		if !e.ignoredRules[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// UseCache makes Run reuse results for files whose content and
// configuration did not change.
func (e *Engine) UseCache(cache *Cache) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = cache
}

// Run applies all lint rules to the given file and returns a slice of Issues.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	if e.isIgnoredPath(filename) {
		return nil, nil
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	e.mu.RLock()
	cache := e.cache
	e.mu.RUnlock()

	if cache != nil {
		if issues, ok := cache.Get(filename, content, e.configHash); ok {
			return issues, nil
		}
	}

	issues, err := e.run(filename, content)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.Set(filename, content, e.configHash, issues); err != nil {
			return nil, fmt.Errorf("error caching results: %w", err)
		}
	}
	return issues, nil
}

// RunSource applies all lint rules to the given source and returns a slice of Issues.
func (e *Engine) RunSource(source []byte) ([]tt.Issue, error) {
	return e.run("", source)
}

func (e *Engine) run(filename string, content []byte) ([]tt.Issue, error) {
	sheet, err := stylesheet.Parse(filename, content)
	if err != nil {
		return nil, fmt.Errorf("error parsing content: %w", err)
	}

	nolintMgr := nolint.ParseComments(sheet)

	e.mu.RLock()
	rules := make([]LintRule, 0, len(e.rules))
	for name, rule := range e.rules {
		if !e.ignoredRules[name] {
			rules = append(rules, rule)
		}
	}
	e.mu.RUnlock()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		allIssues []tt.Issue
		errs      []error
	)
	for _, rule := range rules {
		wg.Add(1)
		go func(r LintRule) {
			defer wg.Done()
			issues, err := r.Check(sheet)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", r.Name(), err))
				return
			}
			allIssues = append(allIssues, filterNolintIssues(nolintMgr, issues)...)
		}(rule)
	}
	wg.Wait()

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	sort.SliceStable(allIssues, func(i, j int) bool {
		if allIssues[i].Start.Offset != allIssues[j].Start.Offset {
			return allIssues[i].Start.Offset < allIssues[j].Start.Offset
		}
		return allIssues[i].Rule < allIssues[j].Rule
	})
	return allIssues, nil
}

func (e *Engine) IgnoreRule(rule string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ignoredRules[rule] = true
}

// IgnorePath skips files matching path, either as a glob pattern or as a
// directory prefix.
func (e *Engine) IgnorePath(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ignoredPaths = append(e.ignoredPaths, filepath.Clean(path))
}

func (e *Engine) isIgnoredPath(filename string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	cleaned := filepath.Clean(filename)
	for _, pattern := range e.ignoredPaths {
		if cleaned == pattern || strings.HasPrefix(cleaned, pattern+string(filepath.Separator)) {
			return true
		}
		if ok, _ := filepath.Match(pattern, cleaned); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(cleaned)); ok {
			return true
		}
	}
	return false
}

// filterNolintIssues filters issues based on nolint comments.
func filterNolintIssues(mgr *nolint.Manager, issues []tt.Issue) []tt.Issue {
	if mgr == nil {
		return issues
	}
	filtered := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		if !mgr.IsNolint(issue.Start, issue.Rule) {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

func hashConfig(rules map[string]tt.ConfigRule) (string, error) {
	d, err := yaml.Marshal(rules)
	if err != nil {
		return "", fmt.Errorf("error hashing configuration: %w", err)
	}
	return fmt.Sprintf("%x", md5.Sum(d)), nil
}

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a `SourceCode` struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return NewSourceCode(content), nil
}

// NewSourceCode splits content into lines.
func NewSourceCode(content []byte) *SourceCode {
	return &SourceCode{Lines: strings.Split(string(content), "\n")}
}
