package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gifdec/internal/logging"
	"github.com/yaklabco/gifdec/pkg/config"
	"github.com/yaklabco/gifdec/pkg/frame"
	"github.com/yaklabco/gifdec/pkg/fsutil"
	"github.com/yaklabco/gifdec/pkg/gif"
)

// ErrTooManyPixels is recorded on a FileOutcome whose images declare more
// pixels in total than the configured max_pixels.
var ErrTooManyPixels = errors.New("image too large")

// Runner decodes discovered files with a bounded worker pool.
type Runner struct{}

// New creates a new Runner.
func New() *Runner {
	return &Runner{}
}

// Run discovers files under opts.Paths and decodes them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// A file that cannot be read, or that fails the signature check in strict
// mode, is recorded on its FileOutcome and does not stop the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	cfg := opts.effectiveConfig()
	logger := logging.FromContext(ctx)
	logger.Debug("decoding", logging.FieldFiles, len(files), logging.FieldJobs, jobs)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	group, groupCtx := errgroup.WithContext(ctx)

	for range jobs {
		group.Go(func() error {
			r.worker(groupCtx, workCh, outCh, cfg, opts.KeepFrames)
			return nil
		})
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		_ = group.Wait()
		close(outCh)
	}()

	// Workers finish out of order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	logger.Debug("decoded",
		logging.FieldFilesDecoded, result.Stats.FilesDecoded,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldFrames, result.Stats.FramesTotal)

	return result, nil
}

func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	cfg *config.Config,
	keepFrames bool,
) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := DecodeFile(ctx, path, cfg)
		if !keepFrames {
			outcome.Frames = nil
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// DecodeFile reads and decodes a single file. Frames are always populated on
// success. A nil cfg means defaults.
func DecodeFile(ctx context.Context, path string, cfg *config.Config) FileOutcome {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	outcome := FileOutcome{Path: path}

	data, info, err := fsutil.ReadFile(ctx, path, cfg.MaxFileSize)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Info = *info

	var res *gif.ParseResult
	if cfg.Strict {
		res, err = gif.DecodeStrict(data)
		if err != nil {
			outcome.Error = fmt.Errorf("%s: %w", path, err)
			return outcome
		}
	} else {
		res = gif.Decode(data)
	}

	if declared := declaredPixels(res); cfg.MaxPixels > 0 && declared > cfg.MaxPixels {
		outcome.Error = fmt.Errorf("%s: %w: %d pixels declared, limit %d",
			path, ErrTooManyPixels, declared, cfg.MaxPixels)
		return outcome
	}

	outcome.Frames = frame.Extract(res, cfg.Patches)
	outcome.Summary = Summarize(res, outcome.Frames)

	logger := logging.FromContext(ctx)
	logger.Debug("decoded file",
		logging.FieldPath, path,
		logging.FieldBytes, len(data),
		logging.FieldConsumed, res.Consumed,
		logging.FieldFrames, len(outcome.Frames))
	for _, w := range outcome.Summary.Warnings {
		logger.Debug("decode warning", logging.FieldPath, path, logging.FieldWarning, w.String())
	}

	return outcome
}

// declaredPixels sums width*height over every image block. Frame extraction
// allocates at least this many bytes.
func declaredPixels(res *gif.ParseResult) int64 {
	var total int64
	for _, img := range res.Images() {
		total += int64(img.Descriptor.PixelCount())
	}
	return total
}
