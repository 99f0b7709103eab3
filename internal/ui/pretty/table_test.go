package pretty

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gifdec/pkg/fsutil"
	"github.com/yaklabco/gifdec/pkg/runner"
)

func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "fits", in: "short", max: 10, want: "short"},
		{name: "ellipsis", in: "a long message", max: 8, want: "a lon..."},
		{name: "tiny", in: "abcdef", max: 2, want: "ab"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, truncateString(testCase.in, testCase.max))
		})
	}
}

func TestTruncateFilePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a/b.gif", truncateFilePath("a/b.gif", 20))
	assert.Equal(t, ".../c/d.gif", truncateFilePath("aaaa/bbbb/c/d.gif", 11))
	assert.Equal(t, "gif", truncateFilePath("x.gif", 3))
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.5 KiB", FormatBytes(1536))
	assert.Equal(t, "2.0 MiB", FormatBytes(2<<20))
}

func TestFrameFlags(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-", FrameFlags(runner.FrameRow{Transparent: -1, Complete: true}))
	assert.Equal(t, "ILT!", FrameFlags(runner.FrameRow{Interlaced: true, LocalTable: true, Transparent: 0}))
}

func TestTableFormatter_FormatTable(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		{
			Path: "ok.gif",
			Info: fsutil.FileInfo{Size: 100},
			Summary: &runner.Summary{
				FrameCount: 2, Duration: 200 * time.Millisecond, HasLoop: true, Plays: 0,
			},
		},
		{Path: "bad.gif", Error: errors.New("file not found")},
	}}

	out := NewTableFormatter(NewStyles(false), false, 120).FormatTable(result)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "FILE"))
	assert.Equal(t, strings.Repeat("=", len(lines[1])), lines[1])
	assert.Contains(t, lines[2], "ok.gif")
	assert.Contains(t, lines[2], "100 B")
	assert.Contains(t, lines[2], "200ms")
	assert.Contains(t, lines[2], "loops forever")
	assert.Contains(t, lines[2], "ok")
	assert.Contains(t, lines[3], "error: file not found")
}

func TestTableFormatter_FitsTerminal(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("dir/", 30) + "frame.gif"
	result := &runner.Result{Files: []runner.FileOutcome{
		{Path: long, Summary: &runner.Summary{Plays: 1}},
	}}

	out := NewTableFormatter(NewStyles(false), false, 80).FormatTable(result)

	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 80)
	}
	assert.Contains(t, out, "...")
	assert.Contains(t, out, "frame.gif")
}

func TestTableFormatter_FormatFileTable(t *testing.T) {
	t.Parallel()

	file := runner.FileOutcome{
		Path: "a.gif",
		Summary: &runner.Summary{Frames: []runner.FrameRow{
			{Index: 0, Width: 4, Height: 3, Delay: 100 * time.Millisecond, Disposal: "none", Transparent: -1, Colors: 2, Complete: true},
			{Index: 1, Left: 1, Top: 2, Width: 2, Height: 1, Delay: 100 * time.Millisecond, Disposal: "background", Transparent: 1, Colors: 4},
		}},
	}

	out := NewTableFormatter(NewStyles(false), false, 0).FormatFileTable(file)

	assert.Contains(t, out, "4x3+0+0")
	assert.Contains(t, out, "2x1+1+2")
	assert.Contains(t, out, "100ms*")
	assert.Contains(t, out, "background")
	assert.Contains(t, out, "T!")
	assert.Empty(t, NewTableFormatter(NewStyles(false), false, 0).FormatFileTable(runner.FileOutcome{}))
}
