package pretty

import (
	"fmt"
	"strings"
	"time"

	"github.com/yaklabco/gifdec/pkg/runner"
)

// plural returns "<n> <word>" with an "s" appended when n != 1.
func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files decoded, 42 frames, 1 failed, 2 with warnings".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No GIF files found") + "\n"
	}

	parts := []string{
		plural(stats.FilesDecoded, "file") + " decoded",
		plural(stats.FramesTotal, "frame"),
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	if stats.FilesWithWarnings > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d with warnings", stats.FilesWithWarnings)))
	}

	line := strings.Join(parts, ", ")
	if stats.FilesErrored == 0 && stats.FilesWithWarnings == 0 {
		line = s.Success.Render(line)
	}
	return line + "\n"
}

// FormatFileHeader formats the heading line for one file.
func (s *Styles) FormatFileHeader(path string, sum *runner.Summary) string {
	if sum == nil {
		return s.FilePath.Render(path)
	}
	return fmt.Sprintf("%s %s",
		s.FilePath.Render(path),
		s.Dim.Render(fmt.Sprintf("(GIF%s, %dx%d, %s)", sum.Version, sum.Width, sum.Height, plural(sum.FrameCount, "frame"))),
	)
}

// FormatField formats an indented "label: value" line.
func (s *Styles) FormatField(label, value string) string {
	return fmt.Sprintf("  %s %s\n", s.Label.Render(label+":"), s.Value.Render(value))
}

// FormatWarning formats one decode warning as an indented line.
func (s *Styles) FormatWarning(w runner.Warning) string {
	return fmt.Sprintf("  %s %s %s\n", s.Warning.Render("warning"), w.String(), s.Dim.Render("("+w.Code+")"))
}

// FormatError formats a file error line.
func (s *Styles) FormatError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n", s.FilePath.Render(path), s.Error.Render(fmt.Sprintf("error: %v", err)))
}

// FormatLoop describes how an animation repeats.
func FormatLoop(sum *runner.Summary) string {
	switch {
	case !sum.HasLoop:
		return "plays once"
	case sum.Plays == 0:
		return "loops forever"
	default:
		return fmt.Sprintf("plays %d times", sum.Plays)
	}
}

// FormatDuration renders d in milliseconds below a second and in seconds above.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// FormatSummary formats run statistics as a multi-line block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var b strings.Builder

	b.WriteString(s.Bold.Render("Summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %d\n", s.Label.Render("Files found:"), stats.FilesDiscovered)
	fmt.Fprintf(&b, "  %s %d\n", s.Label.Render("Files decoded:"), stats.FilesDecoded)
	fmt.Fprintf(&b, "  %s %d\n", s.Label.Render("Frames:"), stats.FramesTotal)
	fmt.Fprintf(&b, "  %s %s\n", s.Label.Render("Bytes read:"), FormatBytes(stats.BytesRead))

	if stats.FilesErrored > 0 {
		fmt.Fprintf(&b, "  %s %s\n", s.Label.Render("Failed:"), s.Error.Render(fmt.Sprintf("%d", stats.FilesErrored)))
	}
	if stats.WarningsTotal > 0 {
		fmt.Fprintf(&b, "  %s %s\n", s.Label.Render("Warnings:"),
			s.Warning.Render(fmt.Sprintf("%d in %s", stats.WarningsTotal, plural(stats.FilesWithWarnings, "file"))))
	}
	if stats.FilesTruncated > 0 {
		fmt.Fprintf(&b, "  %s %d\n", s.Label.Render("Truncated:"), stats.FilesTruncated)
	}

	if stats.FilesErrored == 0 && stats.WarningsTotal == 0 && stats.FilesDiscovered > 0 {
		b.WriteString(s.Success.Render("All files decoded cleanly"))
		b.WriteString("\n")
	}

	return b.String()
}
