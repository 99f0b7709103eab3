package runner

import (
	"fmt"
	"time"

	"github.com/yaklabco/gifdec/pkg/frame"
	"github.com/yaklabco/gifdec/pkg/gif"
	"github.com/yaklabco/gifdec/pkg/playback"
)

// Warning codes.
const (
	WarnNotGIF         = "not-gif"
	WarnMissingTrailer = "missing-trailer"
	WarnTrailingData   = "trailing-data"
	WarnNoFrames       = "no-frames"
	WarnTruncated      = "truncated"
	WarnNoColorTable   = "no-color-table"
	WarnOutOfBounds    = "out-of-bounds"
)

// Warning is a recoverable problem found while decoding. Frame is the
// zero-based frame index, or -1 for file-level warnings.
type Warning struct {
	Frame   int    `json:"frame"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	if w.Frame < 0 {
		return w.Message
	}
	return fmt.Sprintf("frame %d: %s", w.Frame+1, w.Message)
}

// FrameRow describes one frame. Transparent is -1 when the frame has no
// transparent index.
type FrameRow struct {
	Index       int           `json:"index"`
	Left        int           `json:"left"`
	Top         int           `json:"top"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Delay       time.Duration `json:"delay"`
	HasDelay    bool          `json:"has_delay"`
	Disposal    string        `json:"disposal"`
	Transparent int           `json:"transparent"`
	Interlaced  bool          `json:"interlaced"`
	LocalTable  bool          `json:"local_color_table"`
	Colors      int           `json:"colors"`
	Complete    bool          `json:"complete"`
}

// Summary describes a decoded file.
type Summary struct {
	Version      string        `json:"version"`
	Width        int           `json:"width"`
	Height       int           `json:"height"`
	GlobalColors int           `json:"global_colors"`
	Background   int           `json:"background_index"`
	HasLoop      bool          `json:"has_loop"`
	LoopCount    int           `json:"loop_count"`
	Plays        int           `json:"plays"`
	FrameCount   int           `json:"frame_count"`
	Duration     time.Duration `json:"duration"`
	Comments     []string      `json:"comments,omitempty"`
	Applications []string      `json:"applications,omitempty"`
	HasTrailer   bool          `json:"has_trailer"`
	Consumed     int           `json:"consumed"`
	Size         int           `json:"size"`
	Frames       []FrameRow    `json:"frames"`
	Warnings     []Warning     `json:"warnings,omitempty"`
}

// Summarize describes res and the frames extracted from it.
func Summarize(res *gif.ParseResult, frames []frame.Frame) *Summary {
	anim := playback.NewAnimation(res, frames)

	sum := &Summary{
		Version:      res.Header.Version,
		Width:        res.Screen.Width,
		Height:       res.Screen.Height,
		GlobalColors: len(res.GlobalColorTable),
		Background:   res.Screen.BackgroundIndex,
		HasLoop:      anim.HasLoop,
		LoopCount:    anim.LoopCount,
		Plays:        anim.Plays(),
		FrameCount:   len(frames),
		Duration:     anim.Duration(),
		Comments:     res.Comments(),
		Applications: res.Applications(),
		HasTrailer:   res.HasTrailer,
		Consumed:     res.Consumed,
		Size:         res.Size,
		Frames:       make([]FrameRow, 0, len(frames)),
	}

	if res.Header.Signature != "GIF" {
		sum.warn(-1, WarnNotGIF, fmt.Sprintf("signature %q is not GIF", res.Header.Signature))
	}
	switch {
	case !res.HasTrailer:
		sum.warn(-1, WarnMissingTrailer, "stream ends without a trailer")
	case res.Consumed+1 < res.Size:
		sum.warn(-1, WarnTrailingData, fmt.Sprintf("%d bytes after the trailer", res.Size-res.Consumed-1))
	}
	if len(frames) == 0 {
		sum.warn(-1, WarnNoFrames, "no image blocks")
	}

	images := res.Images()
	screen := frame.Rect{Width: res.Screen.Width, Height: res.Screen.Height}.Bounds()

	for i := range frames {
		f := &frames[i]
		row := FrameRow{
			Index:       i,
			Left:        f.Dims.Left,
			Top:         f.Dims.Top,
			Width:       f.Dims.Width,
			Height:      f.Dims.Height,
			Delay:       f.Delay,
			HasDelay:    f.HasDelay,
			Disposal:    f.Disposal.String(),
			Transparent: f.TransparentIndex,
			Interlaced:  f.Interlaced,
			LocalTable:  i < len(images) && images[i].LocalColorTable != nil,
			Colors:      len(f.ColorTable),
			Complete:    f.Complete(),
		}
		sum.Frames = append(sum.Frames, row)

		if !row.Complete {
			sum.warn(i, WarnTruncated,
				fmt.Sprintf("image data truncated (%d of %d pixels)", f.Decoded, len(f.Pixels)))
		}
		if len(f.ColorTable) == 0 {
			sum.warn(i, WarnNoColorTable, "no color table; rendering black")
		}
		if !f.Dims.Bounds().In(screen) {
			sum.warn(i, WarnOutOfBounds, "extends past the logical screen")
		}
	}

	return sum
}

func (s *Summary) warn(frameIndex int, code, message string) {
	s.Warnings = append(s.Warnings, Warning{Frame: frameIndex, Code: code, Message: message})
}

// Truncated reports whether any frame ran out of image data.
func (s *Summary) Truncated() bool {
	for _, row := range s.Frames {
		if !row.Complete {
			return true
		}
	}
	return false
}
