package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/gifdec/internal/ui/pretty"
	"github.com/yaklabco/gifdec/pkg/runner"
)

// MarkdownReporter formats results as a GitHub Flavored Markdown document.
type MarkdownReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewMarkdownReporter creates a new Markdown reporter.
func NewMarkdownReporter(opts Options) *MarkdownReporter {
	return &MarkdownReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *MarkdownReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if _, err := r.bw.WriteString(BuildMarkdown(result, r.opts)); err != nil {
		return 0, fmt.Errorf("write markdown: %w", err)
	}
	return countProblems(result), nil
}

// markdownEscaper escapes characters with meaning inside GFM table cells and inline text.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", "&lt;",
	">", "&gt;",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// BuildMarkdown renders result as a Markdown document with one overview
// table plus a section per decoded file.
func BuildMarkdown(result *runner.Result, opts Options) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(opts.title()))

	if result == nil || len(result.Files) == 0 {
		b.WriteString("No GIF files found.\n")
		return b.String()
	}

	b.WriteString("| File | Size | Frames | Duration | Playback | Status |\n")
	b.WriteString("| --- | ---: | ---: | ---: | --- | --- |\n")
	for _, file := range result.Files {
		row := pretty.FileToTableRow(file)
		row.Cells[0] = opts.displayPath(file.Path)
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = escapeMarkdown(cell)
		}
		fmt.Fprintf(&b, "| %s |\n", strings.Join(cells, " | "))
	}

	for _, file := range result.Files {
		if file.Error != nil {
			continue
		}
		writeMarkdownFile(&b, opts.displayPath(file.Path), file.Summary)
	}

	if opts.ShowSummary {
		stats := result.Stats
		b.WriteString("\n## Summary\n\n")
		fmt.Fprintf(&b, "- Files decoded: %d of %d\n", stats.FilesDecoded, stats.FilesDiscovered)
		fmt.Fprintf(&b, "- Frames: %d\n", stats.FramesTotal)
		fmt.Fprintf(&b, "- Failed: %d\n", stats.FilesErrored)
		fmt.Fprintf(&b, "- Warnings: %d\n", stats.WarningsTotal)
	}

	return b.String()
}

func writeMarkdownFile(b *strings.Builder, path string, sum *runner.Summary) {
	fmt.Fprintf(b, "\n## %s\n\n", escapeMarkdown(path))
	fmt.Fprintf(b, "- Version: GIF%s\n", escapeMarkdown(sum.Version))
	fmt.Fprintf(b, "- Screen: %dx%d\n", sum.Width, sum.Height)
	fmt.Fprintf(b, "- Global colors: %d\n", sum.GlobalColors)
	fmt.Fprintf(b, "- Playback: %s\n", pretty.FormatLoop(sum))
	for _, app := range sum.Applications {
		fmt.Fprintf(b, "- Application: `%s`\n", strings.ReplaceAll(app, "`", "'"))
	}
	for _, comment := range sum.Comments {
		fmt.Fprintf(b, "- Comment: %s\n", escapeMarkdown(commentText(comment)))
	}

	if len(sum.Frames) > 0 {
		b.WriteString("\n| # | Rect | Delay | Disposal | Flags | Colors |\n")
		b.WriteString("| ---: | --- | ---: | --- | --- | ---: |\n")
		for _, fr := range sum.Frames {
			row := pretty.FrameToTableRow(fr)
			cells := make([]string, len(row.Cells))
			for i, cell := range row.Cells {
				cells[i] = escapeMarkdown(cell)
			}
			fmt.Fprintf(b, "| %s |\n", strings.Join(cells, " | "))
		}
	}

	if len(sum.Warnings) > 0 {
		b.WriteString("\n**Warnings**\n\n")
		for _, w := range sum.Warnings {
			fmt.Fprintf(b, "- %s (`%s`)\n", escapeMarkdown(w.String()), w.Code)
		}
	}
}
