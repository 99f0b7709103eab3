package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/gifdec/internal/ui/pretty"
	"github.com/yaklabco/gifdec/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
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

	for i, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("report: %w", err)
		}

		path := r.opts.displayPath(file.Path)
		switch {
		case file.Error != nil:
			fmt.Fprint(r.bw, r.styles.FormatError(path, file.Error))
		case r.opts.Compact:
			r.writeCompact(path, file.Summary)
		default:
			if i > 0 {
				fmt.Fprintln(r.bw)
			}
			r.writeFile(path, file)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return countProblems(result), nil
}

func (r *TextReporter) writeCompact(path string, sum *runner.Summary) {
	parts := []string{
		fmt.Sprintf("%dx%d", sum.Width, sum.Height),
		fmt.Sprintf("%d frames", sum.FrameCount),
		pretty.FormatDuration(sum.Duration),
		pretty.FormatLoop(sum),
	}
	if n := len(sum.Warnings); n > 0 {
		parts = append(parts, r.styles.Warning.Render(fmt.Sprintf("%d warnings", n)))
	}
	fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(path), strings.Join(parts, ", "))
}

func (r *TextReporter) writeFile(path string, file runner.FileOutcome) {
	sum := file.Summary
	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, sum))

	fmt.Fprint(r.bw, r.styles.FormatField("Duration", pretty.FormatDuration(sum.Duration)))
	fmt.Fprint(r.bw, r.styles.FormatField("Playback", pretty.FormatLoop(sum)))
	fmt.Fprint(r.bw, r.styles.FormatField("Global colors", fmt.Sprintf("%d", sum.GlobalColors)))
	if r.opts.Verbose {
		fmt.Fprint(r.bw, r.styles.FormatField("Bytes", fmt.Sprintf("%d of %d consumed", sum.Consumed, sum.Size)))
		fmt.Fprint(r.bw, r.styles.FormatField("SHA-256", file.Info.Digest()))
	}
	for _, app := range sum.Applications {
		fmt.Fprint(r.bw, r.styles.FormatField("Application", app))
	}
	for _, comment := range sum.Comments {
		fmt.Fprint(r.bw, r.styles.FormatField("Comment", r.styles.Comment.Render(commentText(comment))))
	}

	if r.opts.Verbose {
		for _, fr := range sum.Frames {
			fmt.Fprintf(r.bw, "  %s %s\n",
				r.styles.Label.Render(fmt.Sprintf("frame %d:", fr.Index+1)),
				frameLine(fr))
		}
	}

	for _, w := range sum.Warnings {
		fmt.Fprint(r.bw, r.styles.FormatWarning(w))
	}
}

// frameLine describes one frame on a single line.
func frameLine(fr runner.FrameRow) string {
	delay := pretty.FormatDuration(fr.Delay)
	if !fr.HasDelay {
		delay += " (default)"
	}
	return fmt.Sprintf("%dx%d at (%d,%d), delay %s, dispose %s, flags %s",
		fr.Width, fr.Height, fr.Left, fr.Top, delay, fr.Disposal, pretty.FrameFlags(fr))
}

// maxCommentLen caps the length of comments shown in reports.
const maxCommentLen = 200

// commentText prepares a comment extension for display. Comments holding
// binary data are replaced with a placeholder.
func commentText(comment string) string {
	if enry.IsBinary([]byte(comment)) {
		return fmt.Sprintf("<binary comment, %d bytes>", len(comment))
	}
	comment = strings.Join(strings.Fields(comment), " ")
	if runes := []rune(comment); len(runes) > maxCommentLen {
		return string(runes[:maxCommentLen]) + "..."
	}
	return comment
}
