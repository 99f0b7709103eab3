package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/gifdec/internal/ui/pretty"
	"github.com/yaklabco/gifdec/pkg/runner"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TableReporter formats results as a styled table with color-coded rows.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, getTerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. With Verbose set, each decoded file is
// followed by its frame table.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No GIF files found."))
		}
		return 0, nil
	}

	display := *result
	display.Files = make([]runner.FileOutcome, len(result.Files))
	for i, file := range result.Files {
		file.Path = r.opts.displayPath(file.Path)
		display.Files[i] = file
	}

	fmt.Fprint(r.bw, r.formatter.FormatTable(&display))

	if r.opts.Verbose {
		for _, file := range display.Files {
			frames := r.formatter.FormatFileTable(file)
			if frames == "" {
				continue
			}
			fmt.Fprintln(r.bw)
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.Path, file.Summary))
			fmt.Fprint(r.bw, frames)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	}

	return countProblems(result), nil
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
