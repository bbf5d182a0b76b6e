package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/gnolang/cslint/internal/lints"
	"github.com/gnolang/cslint/internal/types"
)

const testConfig = `
value-no-numeric-constants:
  severity: WARNING
  options:
    properties: [z-index, margin]
    allowLt: 10
    allowGt: -10
`

// createTempDir creates a temporary directory and returns its path.
// It also registers a cleanup function to remove the directory after the test.
func createTempDir(t testing.TB, prefix string) string {
	tempDir, err := os.MkdirTemp("", prefix)
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })
	return tempDir
}

func parseRules(t testing.TB, config string) map[string]types.ConfigRule {
	var rules map[string]types.ConfigRule
	require.NoError(t, yaml.Unmarshal([]byte(config), &rules))
	return rules
}

func writeFile(t testing.TB, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(".", parseRules(t, testConfig))
	require.NoError(t, err)
	assert.Equal(t, []string{lints.ValueNoNumericConstants}, engine.EnabledRules())
	assert.Equal(t, types.SeverityWarning, engine.rules[lints.ValueNoNumericConstants].Severity())
	assert.NotEmpty(t, engine.configHash)
}

func TestNewEngineWithoutConfig(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(".", nil)
	require.NoError(t, err)
	assert.Empty(t, engine.EnabledRules())

	issues, err := engine.RunSource([]byte("a { z-index: 0 }"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		config string
	}{
		{
			name:   "unknown rule",
			config: "no-such-rule:\n  severity: ERROR\n",
		},
		{
			name:   "missing properties",
			config: "value-no-numeric-constants:\n  severity: ERROR\n",
		},
		{
			name:   "bad bound",
			config: "value-no-numeric-constants:\n  options:\n    properties: [a]\n    allowLt: x\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewEngine(".", parseRules(t, tt.config))
			assert.Error(t, err)
		})
	}
}

func TestNewEngineRuleOff(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(".", parseRules(t, "value-no-numeric-constants:\n  severity: OFF\n"))
	require.NoError(t, err)
	assert.Empty(t, engine.EnabledRules())
}

func TestEngine_IgnoreRule(t *testing.T) {
	t.Parallel()
	engine, err := NewEngine(".", parseRules(t, testConfig))
	require.NoError(t, err)

	engine.IgnoreRule(lints.ValueNoNumericConstants)
	assert.True(t, engine.ignoredRules[lints.ValueNoNumericConstants])

	issues, err := engine.RunSource([]byte("a { z-index: 100 }"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngine_Run(t *testing.T) {
	t.Parallel()

	tempDir := createTempDir(t, "engine_test")
	path := writeFile(t, tempDir, "style.css", `a {
  z-index: 100;
  z-index: 5;
  margin: 0 0 0 0; /* nolint */
  margin: calc(0);
  padding: 0;
}
`)

	engine, err := NewEngine(tempDir, parseRules(t, testConfig))
	require.NoError(t, err)

	issues, err := engine.Run(path)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	assert.Equal(t, "100", issues[0].Value)
	assert.Equal(t, 2, issues[0].Start.Line)
	assert.Equal(t, path, issues[0].Filename)
	assert.Equal(t, types.SeverityWarning, issues[0].Severity)

	assert.Equal(t, "calc(0)", issues[1].Value)
	assert.Equal(t, 5, issues[1].Start.Line)
}

func TestEngine_RunParseError(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(".", parseRules(t, testConfig))
	require.NoError(t, err)

	_, err = engine.RunSource([]byte("a { z-index: 1"))
	assert.Error(t, err)

	_, err = engine.Run(filepath.Join(createTempDir(t, "missing"), "nope.css"))
	assert.Error(t, err)
}

func TestEngine_IgnorePath(t *testing.T) {
	t.Parallel()

	tempDir := createTempDir(t, "ignore_test")
	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "vendor"), 0o755))
	vendored := writeFile(t, tempDir, filepath.Join("vendor", "lib.css"), "a { z-index: 100 }")
	minified := writeFile(t, tempDir, "app.min.css", "a { z-index: 100 }")
	kept := writeFile(t, tempDir, "app.css", "a { z-index: 100 }")

	engine, err := NewEngine(tempDir, parseRules(t, testConfig))
	require.NoError(t, err)
	engine.IgnorePath(filepath.Join(tempDir, "vendor"))
	engine.IgnorePath("*.min.css")

	for _, path := range []string{vendored, minified} {
		issues, err := engine.Run(path)
		require.NoError(t, err)
		assert.Empty(t, issues, path)
	}

	issues, err := engine.Run(kept)
	require.NoError(t, err)
	assert.Len(t, issues, 1)
}

func TestEngine_RunUsesCache(t *testing.T) {
	t.Parallel()

	tempDir := createTempDir(t, "cache_engine_test")
	path := writeFile(t, tempDir, "style.css", "a { z-index: 100 }")

	cache, err := NewCache(filepath.Join(tempDir, ".cache"))
	require.NoError(t, err)

	engine, err := NewEngine(tempDir, parseRules(t, testConfig))
	require.NoError(t, err)
	engine.UseCache(cache)

	first, err := engine.Run(path)
	require.NoError(t, err)
	require.Len(t, first, 1)

	cached, ok := cache.Get(path, []byte("a { z-index: 100 }"), engine.configHash)
	require.True(t, ok)
	assert.Equal(t, first, cached)

	second, err := engine.Run(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRuleNames(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"value-no-numeric-constants"}, RuleNames())
}

func TestReadSourceCode(t *testing.T) {
	t.Parallel()

	tempDir := createTempDir(t, "source_test")
	path := writeFile(t, tempDir, "a.css", "a {\n  top: 0;\n}")

	source, err := ReadSourceCode(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a {", "  top: 0;", "}"}, source.Lines)
}
