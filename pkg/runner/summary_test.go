package runner_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gifdec/internal/giftest"
	"github.com/yaklabco/gifdec/pkg/frame"
	"github.com/yaklabco/gifdec/pkg/gif"
	"github.com/yaklabco/gifdec/pkg/runner"
)

func summarize(data []byte) *runner.Summary {
	res := gif.Decode(data)
	return runner.Summarize(res, frame.Extract(res, false))
}

func warningCodes(sum *runner.Summary) []string {
	codes := make([]string, 0, len(sum.Warnings))
	for _, w := range sum.Warnings {
		codes = append(codes, w.Code)
	}
	return codes
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	sum := summarize(giftest.New(4, 3, palette).
		Loop(2).
		Comment("hello").
		GraphicControl(2, 7, 1).
		Image(giftest.Image{Left: 1, Top: 1, Width: 2, Height: 2, Interlaced: true, Indices: []byte{0, 1, 1, 0}}).
		Image(giftest.Image{Width: 1, Height: 1, Palette: [][3]byte{{9, 9, 9}}, Indices: []byte{0}}).
		Trailer().
		Bytes())

	assert.Equal(t, "89a", sum.Version)
	assert.Equal(t, 4, sum.Width)
	assert.Equal(t, 3, sum.Height)
	assert.Equal(t, 2, sum.GlobalColors)
	assert.True(t, sum.HasLoop)
	assert.Equal(t, 2, sum.LoopCount)
	assert.Equal(t, 3, sum.Plays)
	assert.Equal(t, 2, sum.FrameCount)
	assert.Equal(t, 70*time.Millisecond+frame.DefaultDelay, sum.Duration)
	assert.Equal(t, []string{"hello"}, sum.Comments)
	assert.Equal(t, []string{"NETSCAPE2.0"}, sum.Applications)
	assert.True(t, sum.HasTrailer)
	assert.Empty(t, sum.Warnings)

	require.Len(t, sum.Frames, 2)
	first := sum.Frames[0]
	assert.Equal(t, runner.FrameRow{
		Index: 0, Left: 1, Top: 1, Width: 2, Height: 2,
		Delay: 70 * time.Millisecond, HasDelay: true,
		Disposal: "background", Transparent: 1, Interlaced: true,
		Colors: 2, Complete: true,
	}, first)

	second := sum.Frames[1]
	assert.True(t, second.LocalTable)
	assert.False(t, second.HasDelay)
	assert.Equal(t, -1, second.Transparent)
}

func TestSummarize_Warnings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want []string
	}{
		{
			name: "missing trailer",
			data: giftest.New(1, 1, palette).
				Image(giftest.Image{Width: 1, Height: 1, Indices: []byte{0}}).
				Bytes(),
			want: []string{runner.WarnMissingTrailer},
		},
		{
			name: "trailing data",
			data: giftest.New(1, 1, palette).
				Image(giftest.Image{Width: 1, Height: 1, Indices: []byte{0}}).
				Trailer().
				Raw(0, 0).
				Bytes(),
			want: []string{runner.WarnTrailingData},
		},
		{
			name: "no frames",
			data: giftest.New(1, 1, palette).Trailer().Bytes(),
			want: []string{runner.WarnNoFrames},
		},
		{
			name: "no color table",
			data: giftest.New(1, 1, nil).
				Image(giftest.Image{Width: 1, Height: 1, Indices: []byte{0}}).
				Trailer().
				Bytes(),
			want: []string{runner.WarnNoColorTable},
		},
		{
			name: "out of bounds",
			data: giftest.New(1, 1, palette).
				Image(giftest.Image{Left: 1, Width: 1, Height: 1, Indices: []byte{0}}).
				Trailer().
				Bytes(),
			want: []string{runner.WarnOutOfBounds},
		},
		{
			name: "truncated",
			data: giftest.New(2, 2, palette).
				Image(giftest.Image{Width: 2, Height: 2, Raw: []byte{}}).
				Trailer().
				Bytes(),
			want: []string{runner.WarnTruncated},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, warningCodes(summarize(testCase.data)))
		})
	}
}

func TestWarning_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "no image blocks", runner.Warning{Frame: -1, Message: "no image blocks"}.String())
	assert.Equal(t, "frame 2: truncated", runner.Warning{Frame: 1, Message: "truncated"}.String())
}
