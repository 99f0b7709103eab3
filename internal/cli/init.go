package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gifdec/internal/configloader"
	"github.com/yaklabco/gifdec/internal/logging"
	"github.com/yaklabco/gifdec/pkg/config"
	"github.com/yaklabco/gifdec/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gifdec configuration file",
		Long: `Create a new .gifdec.yml configuration file in the current directory.

When the file already exists and stdin is a terminal, you are asked before
it is overwritten. Otherwise --force is required.`,
		Example: `  gifdec init                     Create minimal .gifdec.yml
  gifdec init --full              Write every setting with its default
  gifdec init --format json       Create .gifdec.json instead
  gifdec init -o custom.yml       Write to a custom file path`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags, configloader.IsInteractive())
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "write every setting with its default value")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default .gifdec.yml or .gifdec.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags, interactive bool) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrInvalidUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.ProjectConfigFiles[0]
		if flags.format == "json" {
			outputPath = ".gifdec.json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && !flags.force {
		if !interactive {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrInvalidUsage, outputPath)
		}
		ok, err := configloader.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(),
			fmt.Sprintf("%s already exists. Overwrite?", outputPath))
		if err != nil {
			return fmt.Errorf("confirm overwrite: %w", err)
		}
		if !ok {
			logger.Info("left existing file unchanged", logging.FieldPath, outputPath)
			return nil
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	return nil
}
