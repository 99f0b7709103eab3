// Package playback schedules and composites decoded GIF frames.
//
// An Animation is immutable and may be shared. Per-viewer state lives in a
// Player or a Compositor, which are not safe for concurrent use.
package playback

import (
	"time"

	"github.com/yaklabco/gifdec/pkg/frame"
	"github.com/yaklabco/gifdec/pkg/gif"
)

// Animation is a decoded frame sequence with its screen size and looping.
type Animation struct {
	Frames []frame.Frame
	Width  int
	Height int
	// LoopCount is the NETSCAPE2.0 repeat count. Zero means forever.
	LoopCount int
	// HasLoop is false when the file declares no looping, in which case the
	// frames play once.
	HasLoop bool
}

// NewAnimation wraps frames extracted from res.
func NewAnimation(res *gif.ParseResult, frames []frame.Frame) *Animation {
	anim := &Animation{Frames: frames}
	if res != nil {
		anim.Width = res.Screen.Width
		anim.Height = res.Screen.Height
		anim.LoopCount, anim.HasLoop = res.LoopCount()
	}
	return anim
}

// Load decodes data and extracts its frames without RGBA patches.
func Load(data []byte) *Animation {
	res := gif.Decode(data)
	return NewAnimation(res, frame.Extract(res, false))
}

// Plays returns how many times the sequence is shown. Zero means forever.
func (a *Animation) Plays() int {
	if !a.HasLoop {
		return 1
	}
	if a.LoopCount == 0 {
		return 0
	}
	return a.LoopCount + 1
}

// Duration is the length of one pass through the frames.
func (a *Animation) Duration() time.Duration {
	var total time.Duration
	for i := range a.Frames {
		total += frameDelay(&a.Frames[i])
	}
	return total
}

func frameDelay(f *frame.Frame) time.Duration {
	if f.Delay <= 0 {
		return frame.DefaultDelay
	}
	return f.Delay
}
