package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gnolang/cslint/internal/lints"
	tt "github.com/gnolang/cslint/internal/types"
	"github.com/gnolang/cslint/lint"
)

func TestExplainValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, explainValue(&buf, "calc(0px + 0)"))

	expected := `value: "calc(0px + 0)"
round 1:
  numeric-literal  "calc(0px + 0)"
  zero-list        "calc(0+0)"
  binary-operator  "calc(0)"
  wrapped-zero     "0"
verdict: numeric constant
`
	assert.Equal(t, expected, buf.String())

	buf.Reset()
	require.NoError(t, explainValue(&buf, "auto"))
	assert.Contains(t, buf.String(), "round 1:\n")
	assert.NotContains(t, buf.String(), "round 2:")
	assert.Contains(t, buf.String(), "verdict: not a numeric constant\n")
}

func TestSplitList(t *testing.T) {
	t.Parallel()
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
}

func TestInitConfigurationFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, initConfigurationFile(path))

	config, err := lint.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "cslint", config.Name)
	require.Contains(t, config.Rules, lints.ValueNoNumericConstants)
	assert.Equal(t, tt.SeverityError, config.Rules[lints.ValueNoNumericConstants].Severity)

	engine, err := lint.NewWithConfig(".", config)
	require.NoError(t, err)
	assert.Equal(t, []string{lints.ValueNoNumericConstants}, engine.EnabledRules())
}

func TestNewEngineWithMissingConfig(t *testing.T) {
	t.Parallel()
	_, err := newEngine(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRunNormalLintProcess(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	file := filepath.Join(dir, "style.css")
	require.NoError(t, os.WriteFile(file, []byte("a {\n  z-index: 100;\n  z-index: 5;\n}\n"), 0o644))

	config, err := lint.DefaultConfig()
	require.NoError(t, err)
	engine, err := lint.NewWithConfig(dir, config)
	require.NoError(t, err)

	logger := zap.NewNop()

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		count, err := runNormalLintProcess(context.Background(), logger, engine, []string{file}, &buf, false, "")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Contains(t, buf.String(), lints.ValueNoNumericConstants)
		assert.Contains(t, buf.String(), `Unexpected numeric constant value "100" for property "z-index"`)
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		count, err := runNormalLintProcess(context.Background(), logger, engine, []string{file}, &buf, true, "")
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		var byFile map[string][]tt.Issue
		require.NoError(t, json.Unmarshal(buf.Bytes(), &byFile))
		require.Len(t, byFile[file], 1)
		assert.Equal(t, "100", byFile[file][0].Value)
		assert.Equal(t, 2, byFile[file][0].Start.Line)
		assert.Equal(t, 12, byFile[file][0].Start.Column)
	})

	t.Run("json file", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "out.json")
		var buf bytes.Buffer
		_, err := runNormalLintProcess(context.Background(), logger, engine, []string{file}, &buf, true, out)
		require.NoError(t, err)
		assert.Empty(t, buf.String())

		d, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(d), `"Value":"100"`)
	})
}
