package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rulekit/rulekit/internal/adapters/outbound/tui"
)

func newMigrateCmd() *cobra.Command {
	var (
		preview    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "migrate <source> [target]",
		Short: "Rewrite non-conforming rule documents into the canonical layout",
		Long:  "Re-classify every rule document under source and rewrite those missing required fields into a conforming frontmatter + body layout. Without a target, files are rewritten in place.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]
			target := source
			if len(args) > 1 {
				target = args[1]
			}

			_, migrateSvc, _, err := newServices(source)
			if err != nil {
				return fmt.Errorf("initializing services: %w", err)
			}

			outcome, err := migrateSvc.Migrate(cmd.Context(), source, target, preview)
			if err != nil {
				return fmt.Errorf("migrate failed: %w", err)
			}

			if jsonOutput {
				if err := encodeJSON(cmd, outcome); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderMigration(outcome))
			}

			if outcome.FailedFiles > 0 {
				return fmt.Errorf("%d file(s) could not be migrated", outcome.FailedFiles)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&preview, "preview", "n", false, "Report what would change without writing")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
