package frame

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gifdec/pkg/gif"
)

// Extract decodes every image block of res, in stream order. Non-image blocks
// produce no frame. When wantPatch is set each frame carries an RGBA patch.
func Extract(res *gif.ParseResult, wantPatch bool) []Frame {
	jobs := plan(res)
	frames := make([]Frame, len(jobs))
	for i, j := range jobs {
		frames[i] = j.build(wantPatch)
	}
	return frames
}

// ExtractParallel is Extract with frames decoded on up to workers goroutines.
// The result order is stream order. The only error is a cancelled context.
func ExtractParallel(ctx context.Context, res *gif.ParseResult, wantPatch bool, workers int) ([]Frame, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := plan(res)
	frames := make([]Frame, len(jobs))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, j := range jobs {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			frames[i] = j.build(wantPatch)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}
