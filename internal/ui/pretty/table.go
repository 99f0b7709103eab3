package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gifdec/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minFileWidth     = 20
	minStatusWidth   = 12
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// RowLevel selects the style applied to a table row.
type RowLevel int

const (
	RowNormal RowLevel = iota
	RowWarning
	RowError
)

// Column describes one table column.
type Column struct {
	Title string
	// Min is the narrowest the column may be shrunk to when fitting the terminal.
	Min int
	// Path truncates from the left so the file name stays visible.
	Path bool
	// Right aligns cells to the right edge.
	Right bool
}

// TableRow is one row of cells; len(Cells) matches the column count.
type TableRow struct {
	Cells []string
	Level RowLevel
}

// TableFormatter renders styled, width-limited tables.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// Format renders columns and row groups. Groups are divided by a light
// separator; the table is framed by heavy separators.
func (t *TableFormatter) Format(columns []Column, groups [][]TableRow) string {
	if len(columns) == 0 || len(groups) == 0 {
		return ""
	}

	widths := t.columnWidths(columns, groups)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(columns, widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for i, group := range groups {
		if i > 0 {
			builder.WriteString(t.formatSeparator(widths, lightSeparator))
			builder.WriteString("\n")
		}
		for _, row := range group {
			builder.WriteString(t.formatRow(columns, row, widths))
			builder.WriteString("\n")
		}
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")
	return builder.String()
}

// FileColumns are the columns of the per-run file table.
func FileColumns() []Column {
	return []Column{
		{Title: "FILE", Min: minFileWidth, Path: true},
		{Title: "SIZE", Min: 9, Right: true},
		{Title: "FRAMES", Min: 6, Right: true},
		{Title: "DURATION", Min: 8, Right: true},
		{Title: "LOOP", Min: 8},
		{Title: "STATUS", Min: minStatusWidth},
	}
}

// FrameColumns are the columns of the per-file frame table.
func FrameColumns() []Column {
	return []Column{
		{Title: "#", Min: 3, Right: true},
		{Title: "RECT", Min: 12},
		{Title: "DELAY", Min: 6, Right: true},
		{Title: "DISPOSAL", Min: 8},
		{Title: "FLAGS", Min: 5},
		{Title: "COLORS", Min: 6, Right: true},
	}
}

// FormatTable renders one row per file in result.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(result.Files))
	for _, file := range result.Files {
		rows = append(rows, FileToTableRow(file))
	}
	return t.Format(FileColumns(), [][]TableRow{rows})
}

// FormatFileTable renders the frames of one decoded file.
func (t *TableFormatter) FormatFileTable(file runner.FileOutcome) string {
	if file.Summary == nil || len(file.Summary.Frames) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(file.Summary.Frames))
	for _, fr := range file.Summary.Frames {
		rows = append(rows, FrameToTableRow(fr))
	}
	return t.Format(FrameColumns(), [][]TableRow{rows})
}

// FileToTableRow converts a file outcome to a table row.
func FileToTableRow(file runner.FileOutcome) TableRow {
	if file.Error != nil {
		return TableRow{
			Cells: []string{file.Path, "-", "-", "-", "-", "error: " + file.Error.Error()},
			Level: RowError,
		}
	}

	sum := file.Summary
	status := "ok"
	level := RowNormal
	if n := len(sum.Warnings); n > 0 {
		status = plural(n, "warning")
		level = RowWarning
	}

	return TableRow{
		Cells: []string{
			file.Path,
			FormatBytes(file.Info.Size),
			fmt.Sprintf("%d", sum.FrameCount),
			FormatDuration(sum.Duration),
			FormatLoop(sum),
			status,
		},
		Level: level,
	}
}

// FrameToTableRow converts a frame summary row to a table row.
func FrameToTableRow(fr runner.FrameRow) TableRow {
	delay := FormatDuration(fr.Delay)
	if !fr.HasDelay {
		delay += "*"
	}

	level := RowNormal
	if !fr.Complete {
		level = RowWarning
	}

	return TableRow{
		Cells: []string{
			fmt.Sprintf("%d", fr.Index+1),
			fmt.Sprintf("%dx%d+%d+%d", fr.Width, fr.Height, fr.Left, fr.Top),
			delay,
			fr.Disposal,
			FrameFlags(fr),
			fmt.Sprintf("%d", fr.Colors),
		},
		Level: level,
	}
}

// FrameFlags abbreviates frame properties: I interlaced, L local color
// table, T transparency, ! incomplete pixel data.
func FrameFlags(fr runner.FrameRow) string {
	var flags strings.Builder
	if fr.Interlaced {
		flags.WriteByte('I')
	}
	if fr.LocalTable {
		flags.WriteByte('L')
	}
	if fr.Transparent >= 0 {
		flags.WriteByte('T')
	}
	if !fr.Complete {
		flags.WriteByte('!')
	}
	if flags.Len() == 0 {
		return "-"
	}
	return flags.String()
}

// FormatBytes renders a byte count with a binary unit.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// columnWidths sizes each column to its widest cell, then shrinks the
// widest columns toward their minimum until the table fits the terminal.
func (t *TableFormatter) columnWidths(columns []Column, groups [][]TableRow) []int {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col.Title)
	}
	for _, group := range groups {
		for _, row := range group {
			for i := range columns {
				if i < len(row.Cells) && len(row.Cells[i]) > widths[i] {
					widths[i] = len(row.Cells[i])
				}
			}
		}
	}

	for t.totalWidth(widths) > t.termWidth {
		widest := -1
		for i, col := range columns {
			if widths[i] <= max(col.Min, len(col.Title)) {
				continue
			}
			if widest < 0 || widths[i] > widths[widest] {
				widest = i
			}
		}
		if widest < 0 {
			break
		}
		widths[widest]--
	}

	return widths
}

func (t *TableFormatter) totalWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w
	}
	return total + tablePadding*(len(widths)-1)
}

func (t *TableFormatter) formatHeader(columns []Column, widths []int) string {
	cells := make([]string, len(columns))
	for i, col := range columns {
		cells[i] = pad(col.Title, widths[i], col.Right)
	}
	return t.styles.TableHeader.Render(strings.TrimRight(strings.Join(cells, strings.Repeat(" ", tablePadding)), " "))
}

func (t *TableFormatter) formatSeparator(widths []int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.totalWidth(widths)))
}

func (t *TableFormatter) formatRow(columns []Column, row TableRow, widths []int) string {
	cells := make([]string, len(columns))
	for i, col := range columns {
		var cell string
		if i < len(row.Cells) {
			cell = row.Cells[i]
		}
		if col.Path {
			cell = truncateFilePath(cell, widths[i])
		} else {
			cell = truncateString(cell, widths[i])
		}
		cells[i] = pad(cell, widths[i], col.Right)
	}

	line := strings.TrimRight(strings.Join(cells, strings.Repeat(" ", tablePadding)), " ")
	return t.rowStyle(row.Level).Render(line)
}

func (t *TableFormatter) rowStyle(level RowLevel) lipgloss.Style {
	if !t.colorEnabled {
		return lipgloss.NewStyle()
	}
	switch level {
	case RowError:
		return t.styles.TableErrorRow
	case RowWarning:
		return t.styles.TableWarnRow
	default:
		return lipgloss.NewStyle()
	}
}

func pad(s string, width int, right bool) string {
	if right {
		return fmt.Sprintf("%*s", width, s)
	}
	return fmt.Sprintf("%-*s", width, s)
}

// truncateString truncates a string to maxLen, adding ellipsis if needed.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
