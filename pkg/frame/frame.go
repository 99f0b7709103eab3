// Package frame turns parsed GIF image blocks into decoded frames.
package frame

import (
	"image"
	"image/color"
	"time"

	"github.com/yaklabco/gifdec/pkg/gif"
	"github.com/yaklabco/gifdec/pkg/interlace"
	"github.com/yaklabco/gifdec/pkg/lzw"
)

// DefaultDelay applies to frames with no delay of their own.
const DefaultDelay = 100 * time.Millisecond

// delayUnit is the GIF delay tick.
const delayUnit = 10 * time.Millisecond

// Rect is a frame's position and size on the logical screen.
type Rect struct {
	Left, Top, Width, Height int
}

// Bounds returns r as an image rectangle in screen coordinates.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Left+r.Width, r.Top+r.Height)
}

// Frame is one decoded image. Frames are not modified after Extract returns
// and may be shared between goroutines.
type Frame struct {
	// Pixels holds Width*Height color indices in natural row order.
	Pixels []byte
	Dims   Rect
	// ColorTable is the local table if present, else the global one. It may
	// be nil.
	ColorTable gif.ColorTable

	// Delay is DefaultDelay when HasDelay is false.
	Delay       time.Duration
	HasDelay    bool
	Disposal    gif.Disposal
	HasDisposal bool
	// TransparentIndex is -1 when no transparent color is set.
	TransparentIndex int

	// Patch holds RGBA bytes when requested from Extract.
	Patch []byte

	Interlaced bool
	// Decoded is how many indices the LZW data produced before it ran out.
	Decoded int
}

// Transparent returns the transparent color index if one is set.
func (f *Frame) Transparent() (int, bool) {
	return f.TransparentIndex, f.TransparentIndex >= 0
}

// Complete reports whether the image data covered every pixel.
func (f *Frame) Complete() bool {
	return f.Decoded >= len(f.Pixels)
}

// Image returns the frame as an NRGBA image placed at its screen offset.
// The stored patch is used when present.
func (f *Frame) Image() *image.NRGBA {
	pix := f.Patch
	if pix == nil {
		pix = Rasterize(f.Pixels, f.ColorTable, f.TransparentIndex)
	}
	return &image.NRGBA{
		Pix:    pix,
		Stride: 4 * f.Dims.Width,
		Rect:   f.Dims.Bounds(),
	}
}

// Paletted returns the frame as a paletted image placed at its screen offset.
// The palette is padded with opaque black to cover every index in use.
func (f *Frame) Paletted() *image.Paletted {
	size := len(f.ColorTable)
	for _, index := range f.Pixels {
		size = max(size, int(index)+1)
	}

	palette := make(color.Palette, size)
	for i := range palette {
		rgb := f.ColorTable.Lookup(i)
		alpha := uint8(0xff)
		if i == f.TransparentIndex {
			alpha = 0
		}
		palette[i] = color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: alpha}
	}

	return &image.Paletted{
		Pix:     f.Pixels,
		Stride:  f.Dims.Width,
		Rect:    f.Dims.Bounds(),
		Palette: palette,
	}
}

// Rasterize maps indices through table into RGBA bytes. Indices outside the
// table become opaque black and the transparent index gets zero alpha.
func Rasterize(pixels []byte, table gif.ColorTable, transparent int) []byte {
	out := make([]byte, 4*len(pixels))
	for i, index := range pixels {
		rgb := table.Lookup(int(index))
		o := 4 * i
		out[o] = rgb.R
		out[o+1] = rgb.G
		out[o+2] = rgb.B
		if int(index) == transparent {
			out[o+3] = 0
		} else {
			out[o+3] = 0xff
		}
	}
	return out
}

// job pairs an image block with the graphic control that precedes it.
type job struct {
	image   *gif.Image
	control *gif.GraphicControl
	global  gif.ColorTable
}

// plan walks the blocks in stream order. A graphic control extension applies
// to the next image only.
func plan(res *gif.ParseResult) []job {
	if res == nil {
		return nil
	}
	var (
		jobs    []job
		pending *gif.GraphicControl
	)
	for _, block := range res.Blocks {
		switch {
		case block.GraphicControl != nil:
			pending = block.GraphicControl
		case block.Image != nil:
			jobs = append(jobs, job{image: block.Image, control: pending, global: res.GlobalColorTable})
			pending = nil
		}
	}
	return jobs
}

func (j job) build(wantPatch bool) Frame {
	desc := j.image.Descriptor
	pixels, decoded := lzw.DecompressN(j.image.MinCodeSize, j.image.Data, desc.PixelCount())
	if desc.Interlaced {
		pixels = interlace.Deinterlace(pixels, desc.Width)
	}

	table := j.image.LocalColorTable
	if table == nil {
		table = j.global
	}

	f := Frame{
		Pixels:           pixels,
		Dims:             Rect{Left: desc.Left, Top: desc.Top, Width: desc.Width, Height: desc.Height},
		ColorTable:       table,
		Delay:            DefaultDelay,
		TransparentIndex: -1,
		Interlaced:       desc.Interlaced,
		Decoded:          decoded,
	}

	if gce := j.control; gce != nil {
		f.Delay = Delay(gce.Delay)
		f.HasDelay = true
		f.Disposal = gce.Disposal
		f.HasDisposal = true
		if gce.HasTransparent {
			f.TransparentIndex = gce.TransparentIndex
		}
	}

	if wantPatch {
		f.Patch = Rasterize(f.Pixels, f.ColorTable, f.TransparentIndex)
	}
	return f
}

// Delay converts a delay in hundredths of a second, treating zero as 10.
func Delay(centiseconds int) time.Duration {
	if centiseconds == 0 {
		centiseconds = 10
	}
	return time.Duration(centiseconds) * delayUnit
}
