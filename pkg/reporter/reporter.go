// Package reporter renders decode results in text, table, JSON, Markdown and HTML.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gifdec/pkg/runner"
)

// Reporter formats and writes decode results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of problems reported (failed files plus
	// warnings) and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatMarkdown:
		return NewMarkdownReporter(opts), nil
	case FormatHTML:
		return NewHTMLReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// countProblems returns the number of failed files plus warnings.
func countProblems(result *runner.Result) int {
	if result == nil {
		return 0
	}
	return result.Stats.FilesErrored + result.Stats.WarningsTotal
}
