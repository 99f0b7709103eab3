package playback

import (
	"context"
	"image"
	"time"
)

// FrameFunc receives each composited frame. The image is only valid for the
// duration of the call.
type FrameFunc func(index int, img image.Image) error

// Run plays anim in real time, calling fn as each frame comes on screen and
// waiting its delay before the next. It returns when the animation finishes,
// fn fails, or ctx is done.
func Run(ctx context.Context, anim *Animation, fn FrameFunc) error {
	if len(anim.Frames) == 0 {
		return nil
	}

	comp := NewCompositor(anim)
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	plays := anim.Plays()
	for play := 0; plays == 0 || play < plays; play++ {
		for i := range anim.Frames {
			if err := fn(i, comp.Render(i)); err != nil {
				return err
			}

			timer.Reset(frameDelay(&anim.Frames[i]))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	return nil
}
