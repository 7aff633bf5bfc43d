package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rulekit/rulekit/internal/domain"
)

const configFileName = ".rulekit.yaml"

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .rulekit.yaml configuration file",
		Long:  "Create a .rulekit.yaml with the default scan settings.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, configFileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", configFileName)
				}
			}

			if err := os.WriteFile(dest, []byte(generateConfig()), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configFileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .rulekit.yaml")

	return cmd
}

func generateConfig() string {
	cfg := domain.DefaultConfig()

	return fmt.Sprintf(`# RuleKit configuration
# See: https://github.com/rulekit/rulekit

pattern: %q
concurrency: %d
top_errors: %d
cache_size: %d

# exclude_paths:
#   - drafts
#   - archive
`, cfg.Pattern, cfg.Concurrency, cfg.TopErrors, cfg.CacheSize)
}
