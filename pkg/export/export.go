// Package export writes decoded frames to PNG files.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"path/filepath"
	"runtime"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gifdec/internal/logging"
	"github.com/yaklabco/gifdec/pkg/config"
	"github.com/yaklabco/gifdec/pkg/fsutil"
	"github.com/yaklabco/gifdec/pkg/playback"
)

var (
	// ErrUnknownFilter is returned for a scaling filter name that is not recognized.
	ErrUnknownFilter = errors.New("unknown scaling filter")

	// ErrInvalidScale is returned for a scale that is not a positive finite number.
	ErrInvalidScale = errors.New("invalid scale")
)

// Options controls frame export.
type Options struct {
	// Dir is the output directory. It is created if missing.
	Dir string

	// Base is the file name prefix. Files are named <Base>-<n>.png with n
	// starting at 1.
	Base string

	// Mode selects raw patches or composited screens. Empty means raw.
	Mode config.ExportMode

	// Scale multiplies the output size. Zero means 1.
	Scale float64

	// Filter names the scaler used when Scale != 1. Empty means nearest.
	Filter string

	// Workers bounds concurrent PNG encoding. 0 means NumCPU.
	Workers int
}

// FromConfig builds Options from the export section of cfg.
func FromConfig(cfg config.ExportConfig, base string) Options {
	return Options{
		Dir:    cfg.Dir,
		Base:   base,
		Mode:   cfg.Mode,
		Scale:  cfg.Scale,
		Filter: cfg.Filter,
	}
}

// Written describes one exported file.
type Written struct {
	Path string
	// Changed is false when the file already held identical content.
	Changed bool
}

// Scaler returns the x/image/draw scaler for a filter name.
func Scaler(name string) (draw.Scaler, error) {
	switch name {
	case "", config.FilterNearest:
		return draw.NearestNeighbor, nil
	case config.FilterBilinear:
		return draw.ApproxBiLinear, nil
	case config.FilterCatmullRom:
		return draw.CatmullRom, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
}

// FileName returns the name of frame i (zero-based).
func FileName(base string, i int) string {
	return fmt.Sprintf("%s-%d.png", base, i+1)
}

// Frames writes every frame of anim as a PNG and returns the files in
// frame order.
func Frames(ctx context.Context, anim *playback.Animation, opts Options) ([]Written, error) {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}
	if scale < 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidScale, opts.Scale)
	}
	scaler, err := Scaler(opts.Filter)
	if err != nil {
		return nil, err
	}
	mode := opts.Mode
	if mode == "" {
		mode = config.ExportRaw
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("unknown export mode %q", mode)
	}

	if opts.Dir != "" {
		if err := fsutil.EnsureDir(opts.Dir); err != nil {
			return nil, err
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	logger := logging.FromContext(ctx)
	logger.Debug("exporting frames",
		logging.FieldFrames, len(anim.Frames),
		logging.FieldMode, mode,
		logging.FieldScale, scale)

	written := make([]Written, len(anim.Frames))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	// Composite frames depend on their predecessors, so rendering stays on
	// this goroutine and only encoding fans out.
	var compositor *playback.Compositor
	if mode == config.ExportComposite {
		compositor = playback.NewCompositor(anim)
	}

	for i := range anim.Frames {
		if err := groupCtx.Err(); err != nil {
			break
		}

		var img image.Image
		if compositor != nil {
			img = compositor.Snapshot(i)
		} else {
			img = anim.Frames[i].Image()
		}
		path := filepath.Join(opts.Dir, FileName(opts.Base, i))

		group.Go(func() error {
			content, err := EncodePNG(Resize(img, scale, scaler))
			if err != nil {
				return fmt.Errorf("frame %d: %w", i+1, err)
			}
			changed, err := fsutil.WriteAtomicIfChanged(groupCtx, path, content, 0)
			if err != nil {
				return fmt.Errorf("frame %d: %w", i+1, err)
			}
			written[i] = Written{Path: path, Changed: changed}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("export cancelled: %w", err)
	}

	logger.Debug("exported frames", logging.FieldFramesWritten, len(written), logging.FieldOutput, opts.Dir)
	return written, nil
}

// Resize scales img by factor into a new image anchored at the origin.
// A factor of 1 only moves the image to the origin. An empty image becomes a
// single transparent pixel, since PNG has no zero-sized images.
func Resize(img image.Image, factor float64, scaler draw.Scaler) image.Image {
	src := img.Bounds()
	if src.Empty() {
		return image.NewNRGBA(image.Rect(0, 0, 1, 1))
	}
	width := max(1, int(math.Round(float64(src.Dx())*factor)))
	height := max(1, int(math.Round(float64(src.Dy())*factor)))

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	if factor == 1 {
		draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
		return dst
	}
	scaler.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}

// EncodePNG encodes img with the default compression level.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
