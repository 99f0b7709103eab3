package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gifdec/internal/logging"
	"github.com/yaklabco/gifdec/pkg/config"
	"github.com/yaklabco/gifdec/pkg/reporter"
	"github.com/yaklabco/gifdec/pkg/runner"
)

type inspectFlags struct {
	format          string
	ignore          []string
	includeVendored bool
	followSymlinks  bool
	failOnWarnings  bool
	noSummary       bool
	title           string
}

func newInspectCommand() *cobra.Command {
	var cfg config.Config
	flags := &inspectFlags{}

	cmd := &cobra.Command{
		Use:     "inspect [paths...]",
		Aliases: []string{"info"},
		Short:   "Decode GIF files and report their structure",
		Long: `Decode GIF files and report their structure and any problems found.

By default, inspects all .gif files in the current directory and its
subdirectories. Hidden and vendored directories are skipped.`,
		Example: `  gifdec inspect                      # Inspect current directory
  gifdec inspect anim.gif -v          # Show per-frame detail
  gifdec inspect --format json out/   # Machine-readable output
  gifdec inspect --strict             # Fail on files without a GIF signature`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, table, json, markdown, html")
	cmd.Flags().BoolVar(&cfg.Strict, "strict", false, "reject files that are not GIFs instead of warning")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().Int64Var(&cfg.MaxFileSize, "max-file-size", 0, "skip files larger than this many bytes (0 = config default)")
	cmd.Flags().Int64Var(&cfg.MaxPixels, "max-pixels", 0, "reject files declaring more pixels than this (0 = config default)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.includeVendored, "include-vendored", false, "descend into vendored directories")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")
	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "include per-frame detail")
	cmd.Flags().BoolVar(&cfg.Compact, "compact", false, "one line per file; minified JSON")
	cmd.Flags().BoolVar(&flags.failOnWarnings, "fail-on-warnings", false, "exit with status 2 when any warning is reported")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the run summary")
	cmd.Flags().StringVar(&flags.title, "title", "", "document title for markdown and html output")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *inspectFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	if flags.format != "" {
		if _, err := reporter.ParseFormat(flags.format); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
		cliCfg.Format = config.OutputFormat(flags.format)
	}
	cliCfg.Ignore = flags.ignore

	loaded, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg := loaded.Config

	runOpts := runner.Options{
		Paths:           args,
		WorkingDir:      loaded.WorkDir,
		Extensions:      runner.DefaultExtensions(),
		ExcludeGlobs:    cfg.Ignore,
		IncludeVendored: flags.includeVendored,
		FollowSymlinks:  flags.followSymlinks,
		Jobs:            cfg.Jobs,
		Config:          cfg,
	}

	logger.Debug("starting inspect run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New().Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("inspect run failed: %w", err)
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode(cmd),
		ShowSummary: !flags.noSummary,
		Verbose:     cliCfg.Verbose,
		Compact:     cliCfg.Compact,
		Title:       flags.title,
		WorkingDir:  loaded.WorkDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result, flags.failOnWarnings) {
	case ExitDecodeFailures:
		return ErrDecodeFailures
	case ExitWarnings:
		return ErrWarningsFound
	default:
		return nil
	}
}
