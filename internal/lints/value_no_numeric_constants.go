package lints

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gnolang/cslint/internal/numeric"
	"github.com/gnolang/cslint/internal/stylesheet"
	tt "github.com/gnolang/cslint/internal/types"
)

const ValueNoNumericConstants = "value-no-numeric-constants"

var errNoProperties = errors.New("properties must be a non-empty list of property names")

// NumericConstantOptions configures the value-no-numeric-constants rule.
//
// When AllowLt and AllowGt are not equal, values that read as a plain
// number strictly between them are not checked. A missing bound is
// unbounded on its side.
type NumericConstantOptions struct {
	Properties []string `yaml:"properties"`
	AllowLt    *float64 `yaml:"allowLt,omitempty"`
	AllowGt    *float64 `yaml:"allowGt,omitempty"`
}

// DecodeNumericConstantOptions decodes and validates the options node of
// the rule configuration.
func DecodeNumericConstantOptions(node *yaml.Node) (NumericConstantOptions, error) {
	var opts NumericConstantOptions
	if node == nil || node.Kind == 0 {
		return opts, errNoProperties
	}
	if node.Kind != yaml.MappingNode {
		return opts, fmt.Errorf("line %d: options must be a mapping", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "properties":
			props, err := decodeStringList(value)
			if err != nil {
				return opts, err
			}
			opts.Properties = props
		case "allowLt":
			n, err := decodeNumber(key.Value, value)
			if err != nil {
				return opts, err
			}
			opts.AllowLt = &n
		case "allowGt":
			n, err := decodeNumber(key.Value, value)
			if err != nil {
				return opts, err
			}
			opts.AllowGt = &n
		default:
			return opts, fmt.Errorf("line %d: unknown option %q", key.Line, key.Value)
		}
	}

	return opts, opts.Validate()
}

func decodeStringList(node *yaml.Node) ([]string, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: %w", node.Line, errNoProperties)
	}
	props := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.ScalarNode || item.ShortTag() != "!!str" {
			return nil, fmt.Errorf("line %d: property name must be a string, got %q", item.Line, item.Value)
		}
		props = append(props, item.Value)
	}
	return props, nil
}

func decodeNumber(name string, node *yaml.Node) (float64, error) {
	tag := node.ShortTag()
	if node.Kind != yaml.ScalarNode || (tag != "!!int" && tag != "!!float") {
		return 0, fmt.Errorf("line %d: %s must be a number, got %q", node.Line, name, node.Value)
	}
	var n float64
	if err := node.Decode(&n); err != nil {
		return 0, fmt.Errorf("line %d: %s: %w", node.Line, name, err)
	}
	return n, nil
}

// Validate reports whether the options can drive the rule.
func (o NumericConstantOptions) Validate() error {
	if len(o.Properties) == 0 {
		return errNoProperties
	}
	for i, p := range o.Properties {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("properties[%d]: empty property name", i)
		}
	}
	for name, bound := range map[string]*float64{"allowLt": o.AllowLt, "allowGt": o.AllowGt} {
		if bound != nil && math.IsNaN(*bound) {
			return fmt.Errorf("%s must be a number", name)
		}
	}
	return nil
}

// NumericConstantChecker decides which declarations carry a disallowed
// numeric constant.
type NumericConstantChecker struct {
	properties map[string]struct{}
	hasRange   bool
	allowLt    float64
	allowGt    float64
}

func NewNumericConstantChecker(opts NumericConstantOptions) (*NumericConstantChecker, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	c := &NumericConstantChecker{
		properties: make(map[string]struct{}, len(opts.Properties)),
		allowLt:    math.Inf(1),
		allowGt:    math.Inf(-1),
	}
	for _, p := range opts.Properties {
		c.properties[NormalizeProperty(p)] = struct{}{}
	}

	switch {
	case opts.AllowLt == nil && opts.AllowGt == nil:
	case opts.AllowLt != nil && opts.AllowGt != nil:
		c.hasRange = *opts.AllowLt != *opts.AllowGt
	default:
		c.hasRange = true
	}
	if opts.AllowLt != nil {
		c.allowLt = *opts.AllowLt
	}
	if opts.AllowGt != nil {
		c.allowGt = *opts.AllowGt
	}
	return c, nil
}

// Rejects reports whether a declaration of prop with value is a violation.
func (c *NumericConstantChecker) Rejects(prop, value string) bool {
	if _, ok := c.properties[NormalizeProperty(prop)]; !ok {
		return false
	}
	if c.hasRange {
		if n, ok := CoerceNumber(value); ok && n < c.allowLt && n > c.allowGt {
			return false
		}
	}
	return numeric.IsNumericConstant(value)
}

// DetectNumericConstants reports declarations whose value is a numeric constant.
func DetectNumericConstants(sheet *stylesheet.Sheet, checker *NumericConstantChecker, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue
	for _, decl := range sheet.Decls {
		if !checker.Rejects(decl.Prop, decl.Value) {
			continue
		}

		index := numeric.FindReportOffset(decl.Text, len(decl.Prop))
		issues = append(issues, tt.Issue{
			Rule:     ValueNoNumericConstants,
			Category: "style",
			Filename: sheet.Filename,
			Message:  fmt.Sprintf(`Unexpected numeric constant value "%s" for property "%s"`, decl.Value, decl.Prop),
			Note:     "the value reduces to a constant; use a variable or a named value instead",
			Value:    decl.Value,
			Start:    sheet.Position(decl.Offset + index),
			End:      sheet.Position(decl.Offset + len(decl.Text) - 1),
			Severity: severity,
		})
	}
	return issues, nil
}
