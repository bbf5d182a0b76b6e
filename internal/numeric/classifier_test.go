package numeric

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNumericConstant(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{name: "zero", value: "0", expected: true},
		{name: "integer", value: "10", expected: true},
		{name: "negative decimal", value: "-3.5", expected: true},
		{name: "leading dot", value: ".5", expected: true},
		{name: "trailing dot stays behind", value: "5.", expected: false},
		{name: "unit", value: "10px", expected: true},
		{name: "negative unit", value: "-3.5em", expected: true},
		{name: "percent", value: "50%", expected: true},
		{name: "upper case unit", value: "0PX", expected: true},
		{name: "shorthand list", value: "0px 0px 0px 0px", expected: true},
		{name: "mixed list collapses numbers first", value: "0 10px 0 0", expected: true},
		{name: "sum of zeroes", value: "0+0", expected: true},
		{name: "chained sum", value: "0+0+0", expected: true},
		{name: "chained product needs another round", value: "0*0*0", expected: true},
		{name: "spaced sum", value: "0 + 0", expected: true},
		{name: "non-zero operands are numbers too", value: "1+1", expected: true},
		{name: "product", value: "0*0", expected: true},
		{name: "division with spaces", value: "10px / 2", expected: true},
		{name: "parenthesized", value: "(0)", expected: true},
		{name: "calc", value: "calc(0)", expected: true},
		{name: "calc upper case", value: "CALC(0)", expected: true},
		{name: "webkit calc", value: "-webkit-calc(0)", expected: true},
		{name: "moz calc", value: "-moz-calc(0)", expected: true},
		{name: "calc of unit sum", value: "calc(1px + 0px)", expected: true},
		{name: "nested calc", value: "calc(calc(2px * 3) - (4))", expected: true},
		{name: "empty", value: "", expected: false},
		{name: "keyword", value: "red", expected: false},
		{name: "auto", value: "auto", expected: false},
		{name: "custom property", value: "var(--x)", expected: false},
		{name: "keyword after zero", value: "auto 0", expected: false},
		{name: "border shorthand", value: "solid 1px red", expected: false},
		{name: "calc with variable", value: "calc(var(--gap) * 2)", expected: false},
		{name: "other function", value: "translate(0)", expected: false},
		{name: "comma list", value: "0, 0", expected: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, IsNumericConstant(tt.value))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		value  string
		result string
		rounds int
	}{
		{value: "0", result: "0", rounds: 0},
		{value: "red", result: "red", rounds: 0},
		{value: "10px", result: "0", rounds: 1},
		{value: "0+0+0", result: "0", rounds: 1},
		{value: "0*0*0", result: "0", rounds: 2},
		{value: "auto 0", result: "auto0", rounds: 1},
		{value: "translate(10px)", result: "translate0", rounds: 1},
	}

	for _, tt := range tests {
		result, rounds := Normalize(tt.value)
		assert.Equal(t, tt.result, result, tt.value)
		assert.Equal(t, tt.rounds, rounds, tt.value)
	}
}

func TestNormalizeRoundsBoundedByLength(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"0+0+0+0+0+0+0+0",
		"((((0))))",
		"calc(calc(calc(0)))",
		"1 2 3 4 5 6 7 8 9",
		strings.Repeat("0*", 50) + "0",
		strings.Repeat("(", 20) + "0" + strings.Repeat(")", 20),
		"-webkit-calc(-moz-calc(calc(0+0)))",
		"0px 0em 0% 0rem",
	}

	for _, in := range inputs {
		result, rounds := Normalize(in)
		assert.LessOrEqual(t, rounds, len(in), in)
		assert.Equal(t, "0", result, in)
	}
}

func TestTrace(t *testing.T) {
	t.Parallel()

	rounds := Trace("0*0*0")
	require.Len(t, rounds, 2)

	assert.Equal(t, "0*0*0", rounds[0].Input)
	assert.Equal(t, "0*0", rounds[0].Output())
	assert.Equal(t, "0*0", rounds[1].Input)
	assert.Equal(t, "0", rounds[1].Output())

	unchanged := Trace("red")
	require.Len(t, unchanged, 1)
	assert.Equal(t, "red", unchanged[0].Output())

	steps := Trace("calc(1px + 0px)")[0].Steps
	assert.Equal(t, [4]string{"calc(0px + 0px)", "calc(0+0)", "calc(0)", "0"}, steps)
}

func TestPassNames(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"numeric-literal", "zero-list", "binary-operator", "wrapped-zero"}, PassNames())
}

func TestIsNumericConstantConcurrent(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.True(t, IsNumericConstant("calc(0px + 0px)"))
				assert.False(t, IsNumericConstant("auto"))
			}
		}()
	}
	wg.Wait()
}
