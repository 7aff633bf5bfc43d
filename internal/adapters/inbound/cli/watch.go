package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rulekit/rulekit/internal/adapters/inbound/watch"
	"github.com/rulekit/rulekit/internal/adapters/outbound/tui"
	"github.com/rulekit/rulekit/internal/domain"
)

func newWatchCmd() *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-validate rule documents as they change",
		Long:  "Watch a directory and re-run validation on every rule document that is created or modified. Runs until interrupted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			validateSvc, _, store, err := newServices(root)
			if err != nil {
				return fmt.Errorf("initializing services: %w", err)
			}

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))

			w := watch.New(validateSvc, store, pattern, logger)
			w.OnResult = func(r domain.ValidationResult) {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderFileResult(r))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return w.Watch(ctx, root)
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "Filename pattern (default from .rulekit.yaml, *.mdc)")

	return cmd
}
