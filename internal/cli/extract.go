package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gifdec/internal/logging"
	"github.com/yaklabco/gifdec/pkg/config"
	"github.com/yaklabco/gifdec/pkg/export"
	"github.com/yaklabco/gifdec/pkg/runner"
)

type extractFlags struct {
	out    string
	prefix string
	mode   string
	filter string
}

func newExtractCommand() *cobra.Command {
	var cfg config.Config
	flags := &extractFlags{}

	cmd := &cobra.Command{
		Use:   "extract <file.gif>",
		Short: "Write the frames of a GIF as PNG images",
		Long: `Decode a GIF and write each frame as a PNG image named <prefix>-<n>.png.

In raw mode each frame is written at its own size. In composite mode each
image is the full logical screen after the frame is drawn, with disposal
applied the way a browser would.`,
		Example: `  gifdec extract anim.gif                          # Frames into ./anim_frames
  gifdec extract anim.gif -o out --mode composite  # Full-screen frames
  gifdec extract anim.gif --scale 4                # Upscale with nearest neighbor`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], &cfg, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "output directory (default <name>_frames)")
	cmd.Flags().StringVar(&flags.prefix, "prefix", "", "file name prefix (default the input name)")
	cmd.Flags().StringVar(&flags.mode, "mode", "", "export mode: raw, composite")
	cmd.Flags().Float64Var(&cfg.Export.Scale, "scale", 0, "scale factor for written images")
	cmd.Flags().StringVar(&flags.filter, "filter", "", "scaling filter: nearest, bilinear, catmull-rom")
	cmd.Flags().BoolVar(&cfg.Strict, "strict", false, "reject files that are not GIFs")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel encoders (0 = auto)")

	return cmd
}

func runExtract(cmd *cobra.Command, path string, cliCfg *config.Config, flags *extractFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	if flags.mode != "" {
		mode := config.ExportMode(flags.mode)
		if !mode.IsValid() {
			return fmt.Errorf("%w: unknown export mode %q", ErrInvalidUsage, flags.mode)
		}
		cliCfg.Export.Mode = mode
	}
	if flags.filter != "" {
		if _, err := export.Scaler(flags.filter); err != nil {
			return err
		}
		cliCfg.Export.Filter = flags.filter
	}
	if cliCfg.Export.Scale < 0 {
		return fmt.Errorf("%w: %g", export.ErrInvalidScale, cliCfg.Export.Scale)
	}
	if flags.out != "" {
		cliCfg.Export.Dir = flags.out
	}

	loaded, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg := loaded.Config

	outcome := runner.DecodeFile(ctx, path, cfg)
	if outcome.Error != nil {
		return outcome.Error
	}
	for _, w := range outcome.Summary.Warnings {
		logger.Warn("decode warning", logging.FieldPath, path, logging.FieldWarning, w.String())
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	opts := export.FromConfig(cfg.Export, name)
	if flags.prefix != "" {
		opts.Base = flags.prefix
	}
	if opts.Dir == "" {
		opts.Dir = name + "_frames"
	}
	opts.Workers = cfg.Jobs

	written, err := export.Frames(ctx, outcome.Animation(), opts)
	if err != nil {
		return fmt.Errorf("export frames: %w", err)
	}

	changed := 0
	for _, w := range written {
		if w.Changed {
			changed++
		}
	}

	logger.Info("extracted frames",
		logging.FieldPath, path,
		logging.FieldFramesWritten, changed,
		logging.FieldFrames, len(written),
		logging.FieldOutput, opts.Dir,
	)
	fmt.Fprintf(cmd.OutOrStdout(), "%d frames written to %s (%d unchanged)\n",
		len(written), opts.Dir, len(written)-changed)

	return nil
}
