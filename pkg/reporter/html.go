package reporter

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/yaklabco/gifdec/pkg/runner"
)

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.2em 0.6em; }
</style>
</head>
<body>
`

const htmlFoot = "</body>\n</html>\n"

// HTMLReporter renders the Markdown report to a standalone HTML page.
type HTMLReporter struct {
	opts Options
	md   goldmark.Markdown
	bw   *bufio.Writer
}

// NewHTMLReporter creates a new HTML reporter.
func NewHTMLReporter(opts Options) *HTMLReporter {
	return &HTMLReporter{
		opts: opts,
		md:   goldmark.New(goldmark.WithExtensions(extension.GFM)),
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *HTMLReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	var body bytes.Buffer
	if err := r.md.Convert([]byte(BuildMarkdown(result, r.opts)), &body); err != nil {
		return 0, fmt.Errorf("render html: %w", err)
	}

	fmt.Fprintf(r.bw, htmlHead, html.EscapeString(r.opts.title()))
	if _, err := body.WriteTo(r.bw); err != nil {
		return 0, fmt.Errorf("write html: %w", err)
	}
	fmt.Fprint(r.bw, htmlFoot)

	return countProblems(result), nil
}
