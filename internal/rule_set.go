package internal

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gnolang/cslint/internal/lints"
	"github.com/gnolang/cslint/internal/stylesheet"
	tt "github.com/gnolang/cslint/internal/types"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check runs the lint rule on the given sheet and returns a slice of Issues.
	Check(sheet *stylesheet.Sheet) ([]tt.Issue, error)

	// Name returns the name of the lint rule.
	Name() string

	// Severity returns the severity of the lint rule.
	Severity() tt.Severity

	// SetSeverity sets the severity of the lint rule.
	SetSeverity(tt.Severity)
}

// ConfigurableRule is a LintRule that takes options from the configuration file.
type ConfigurableRule interface {
	LintRule
	Configure(options *yaml.Node) error
}

// -----------------------------------------------------------------------------

type ValueNoNumericConstantsRule struct {
	severity tt.Severity
	checker  *lints.NumericConstantChecker
}

// NewValueNoNumericConstantsRule returns the rule switched off: it has no
// properties to check until it is configured.
func NewValueNoNumericConstantsRule() LintRule {
	return &ValueNoNumericConstantsRule{
		severity: tt.SeverityOff,
	}
}

func (r *ValueNoNumericConstantsRule) Configure(options *yaml.Node) error {
	opts, err := lints.DecodeNumericConstantOptions(options)
	if err != nil {
		return err
	}
	checker, err := lints.NewNumericConstantChecker(opts)
	if err != nil {
		return err
	}
	r.checker = checker
	return nil
}

func (r *ValueNoNumericConstantsRule) Check(sheet *stylesheet.Sheet) ([]tt.Issue, error) {
	if r.checker == nil {
		return nil, fmt.Errorf("rule is not configured")
	}
	return lints.DetectNumericConstants(sheet, r.checker, r.severity)
}

func (r *ValueNoNumericConstantsRule) Name() string {
	return lints.ValueNoNumericConstants
}

func (r *ValueNoNumericConstantsRule) Severity() tt.Severity {
	return r.severity
}

func (r *ValueNoNumericConstantsRule) SetSeverity(severity tt.Severity) {
	r.severity = severity
}
