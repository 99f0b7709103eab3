package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gifdec/internal/configloader"
	"github.com/yaklabco/gifdec/internal/logging"
	"github.com/yaklabco/gifdec/pkg/config"
)

// loadedConfig is the merged configuration for one command invocation.
type loadedConfig struct {
	Config  *config.Config
	Result  *configloader.LoadResult
	WorkDir string
}

// loadConfig merges file, environment and flag configuration. cliCfg holds
// only the values set by flags.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*loadedConfig, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	if cfg.LogLevel != "" && !debugEnabled(cmd) {
		logging.SetLevel(cfg.LogLevel)
	}

	logger.Debug("configuration resolved",
		logging.FieldStrict, cfg.Strict,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldFormat, cfg.Format,
		logging.FieldMode, cfg.Export.Mode,
		logging.FieldScale, cfg.Export.Scale,
	)

	return &loadedConfig{Config: cfg, Result: loadResult, WorkDir: workDir}, nil
}

// commandContext returns the command's context, falling back to Background.
// The default logger is attached so library code can log through it.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

func debugEnabled(cmd *cobra.Command) bool {
	debug, err := cmd.Flags().GetBool("debug")
	return err == nil && debug
}

// colorMode reads the persistent --color flag.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}
