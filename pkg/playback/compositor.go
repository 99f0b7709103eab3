package playback

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/yaklabco/gifdec/pkg/gif"
)

// Compositor draws frames onto a screen-sized canvas.
//
// Before frame i is drawn, the rectangle of frame i-1 is cleared if that
// frame asked for background disposal. Every other disposal leaves the
// canvas as it was. Transparent pixels never overwrite the canvas.
type Compositor struct {
	anim   *Animation
	canvas *image.RGBA
	// drawn is the number of frames already composited onto canvas.
	drawn int
}

// NewCompositor returns a compositor with a transparent canvas.
func NewCompositor(anim *Animation) *Compositor {
	return &Compositor{
		anim:   anim,
		canvas: image.NewRGBA(image.Rect(0, 0, anim.Width, anim.Height)),
	}
}

// Render returns the canvas after frames 0 through i. Moving forward reuses
// the previous state; moving back recomposes from frame 0. The returned image
// is owned by the compositor and changes on the next call.
func (c *Compositor) Render(i int) *image.RGBA {
	frames := c.anim.Frames
	if i < 0 || i >= len(frames) {
		return c.canvas
	}
	if i < c.drawn-1 {
		c.clear(c.canvas.Bounds())
		c.drawn = 0
	}
	for c.drawn <= i {
		c.step(c.drawn)
		c.drawn++
	}
	return c.canvas
}

// Snapshot is Render followed by a copy the caller may keep.
func (c *Compositor) Snapshot(i int) *image.RGBA {
	src := c.Render(i)
	out := image.NewRGBA(src.Bounds())
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Src)
	return out
}

func (c *Compositor) step(i int) {
	frames := c.anim.Frames
	if i > 0 {
		prev := &frames[i-1]
		if prev.Disposal == gif.DisposalBackground {
			c.clear(prev.Dims.Bounds())
		}
	}

	f := &frames[i]
	rect := f.Dims.Bounds()
	draw.Draw(c.canvas, rect, f.Image(), rect.Min, draw.Over)
}

func (c *Compositor) clear(rect image.Rectangle) {
	draw.Draw(c.canvas, rect, image.Transparent, image.Point{}, draw.Src)
}
