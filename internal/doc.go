// Package internal provides the core of the cslint stylesheet linter.
//
// Key components:
//
// Engine: coordinates the linting process. It owns the configured rules,
// parses each stylesheet once, runs every enabled rule on it concurrently
// and drops issues suppressed by nolint comments.
//
// LintRule: the contract every rule implements. Rules that take options
// from the configuration file also implement ConfigurableRule; invalid
// options make NewEngine fail.
//
// Cache: an on-disk cache of results keyed by file content and
// configuration.
//
// Usage:
//
//	engine, err := internal.NewEngine(".", config.Rules)
//	if err != nil {
//	    // handle error
//	}
//
//	issues, err := engine.Run("path/to/style.css")
//	if err != nil {
//	    // handle error
//	}
//
//	for _, issue := range issues {
//	    fmt.Printf("Found issue: %s at %s\n", issue.Message, issue.Start)
//	}
package internal
