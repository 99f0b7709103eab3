package cli

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gifdec/internal/ui/pretty"
	"github.com/yaklabco/gifdec/pkg/config"
	"github.com/yaklabco/gifdec/pkg/playback"
	"github.com/yaklabco/gifdec/pkg/runner"
)

type playFlags struct {
	limit    time.Duration
	simulate bool
}

func newPlayCommand() *cobra.Command {
	var cfg config.Config
	flags := &playFlags{}

	cmd := &cobra.Command{
		Use:   "play <file.gif>",
		Short: "Play a GIF's frame schedule in real time",
		Long: `Play a GIF in real time and print a line as each frame comes on screen.

Looping follows the file: without a NETSCAPE2.0 extension the frames play
once, a loop count of zero repeats until interrupted. Use --for to stop
after a fixed time, or --simulate to print the schedule without waiting.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, args[0], &cfg, flags)
		},
	}

	cmd.Flags().DurationVar(&flags.limit, "for", 0, "stop after this long (0 = until the animation ends)")
	cmd.Flags().BoolVar(&flags.simulate, "simulate", false, "print the schedule for one pass without waiting")
	cmd.Flags().BoolVar(&cfg.Strict, "strict", false, "reject files that are not GIFs")

	return cmd
}

func runPlay(cmd *cobra.Command, path string, cliCfg *config.Config, flags *playFlags) error {
	ctx := commandContext(cmd)

	loaded, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	outcome := runner.DecodeFile(ctx, path, loaded.Config)
	if outcome.Error != nil {
		return outcome.Error
	}
	anim := outcome.Animation()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%dx%d, %d frames, %s per pass, %s\n",
		anim.Width, anim.Height, len(anim.Frames),
		pretty.FormatDuration(anim.Duration()), pretty.FormatLoop(outcome.Summary))

	if flags.simulate {
		for _, entry := range Schedule(anim, anim.Duration()) {
			fmt.Fprintf(out, "%8s  frame %d\n", pretty.FormatDuration(entry.At), entry.Frame+1)
		}
		return nil
	}

	if flags.limit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flags.limit)
		defer cancel()
	}

	start := time.Now()
	err = playback.Run(ctx, anim, func(i int, _ image.Image) error {
		_, werr := fmt.Fprintf(out, "%8s  frame %d\n", pretty.FormatDuration(time.Since(start).Round(time.Millisecond)), i+1)
		return werr
	})
	if errors.Is(err, context.DeadlineExceeded) && flags.limit > 0 {
		return nil
	}
	if err != nil {
		return fmt.Errorf("play: %w", err)
	}
	return nil
}

// ScheduleEntry is a frame change at a point in playback time.
type ScheduleEntry struct {
	At    time.Duration
	Frame int
}

// Schedule steps a Player through span of playback and returns each frame
// change, starting with frame 0 at time zero. The clock advances in 10ms
// ticks, the resolution of GIF delays.
func Schedule(anim *playback.Animation, span time.Duration) []ScheduleEntry {
	if len(anim.Frames) == 0 {
		return nil
	}

	const tick = 10 * time.Millisecond

	player := playback.NewPlayer(anim)
	entries := []ScheduleEntry{{At: 0, Frame: 0}}
	for at := tick; at < span && !player.Done(); at += tick {
		if player.Advance(tick) {
			entries = append(entries, ScheduleEntry{At: at, Frame: player.Index()})
		}
	}
	return entries
}
