package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gifdec/internal/configloader"
	"github.com/yaklabco/gifdec/pkg/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration",
		Long:  `Inspect the configuration gifdec resolves from files, environment and flags.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := loadConfig(cmd, &config.Config{})
			if err != nil {
				return err
			}

			header := "# effective configuration"
			for _, path := range loaded.Result.LoadedFrom {
				header += "\n# loaded from " + path
			}
			content, err := loaded.Config.ToYAMLWithHeader(header)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(content)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "paths",
		Short: "List the configuration files that were found",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := loadConfig(cmd, &config.Config{})
			if err != nil {
				return err
			}

			paths := loaded.Result.Paths
			out := cmd.OutOrStdout()
			for _, entry := range []struct{ name, path string }{
				{"system", paths.System},
				{"user", paths.User},
				{"project", paths.Project},
				{"explicit", paths.Explicit},
			} {
				path := entry.path
				if path == "" {
					path = "-"
				}
				fmt.Fprintf(out, "%-8s  %s\n", entry.name, path)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "env",
		Short: "List supported environment variables",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, _ []string) {
			vars := configloader.ListEnvVars()
			out := cmd.OutOrStdout()
			for _, name := range slices.Sorted(maps.Keys(vars)) {
				fmt.Fprintf(out, "%-22s  %s\n", name, vars[name])
			}
		},
	})

	return cmd
}
