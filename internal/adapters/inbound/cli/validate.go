package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rulekit/rulekit/internal/adapters/outbound/gitinfo"
	historyAdapter "github.com/rulekit/rulekit/internal/adapters/outbound/history"
	"github.com/rulekit/rulekit/internal/adapters/outbound/tui"
	"github.com/rulekit/rulekit/internal/domain"
)

func newValidateCmd() *cobra.Command {
	var (
		pattern    string
		jsonOutput bool
		ciMode     bool
		minHealth  float64
		history    bool
	)

	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate rule documents",
		Long:  "Validate a single rule document or every matching document under a directory, and report errors, warnings, and directory health.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			validateSvc, _, _, err := newServices(path)
			if err != nil {
				return fmt.Errorf("initializing services: %w", err)
			}

			info, statErr := os.Stat(path)
			if statErr == nil && !info.IsDir() {
				result := validateSvc.ValidateFile(path)
				if jsonOutput {
					return encodeJSON(cmd, result)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderFileResult(result))
				if !result.IsValid {
					return fmt.Errorf("%s is invalid: %d error(s)", path, len(result.Errors))
				}
				return nil
			}

			results, stats := validateSvc.ValidateDirectory(cmd.Context(), path, pattern)

			if history {
				appendHistory(path, stats)
			}

			if jsonOutput {
				report := struct {
					Stats   domain.DirectoryStats     `json:"stats"`
					Results []domain.ValidationResult `json:"results"`
				}{stats, results}
				if err := encodeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderDirectoryReport(results, stats))
			}

			if ciMode && stats.HealthScore < minHealth {
				return fmt.Errorf("health score %.1f%% is below the required %.1f%%", stats.HealthScore, minHealth)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "Filename pattern (default from .rulekit.yaml, *.mdc)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if health score is below --min")
	cmd.Flags().Float64Var(&minHealth, "min", 100, "Minimum health score for CI mode")
	cmd.Flags().BoolVar(&history, "history", false, "Append the health score to .rulekit/history")

	return cmd
}

// appendHistory records the scan in the health history, stamped with the
// current commit when the directory is a git repo. Best effort.
func appendHistory(root string, stats domain.DirectoryStats) {
	entry := domain.HealthEntry{
		Timestamp:   time.Now().UTC(),
		TotalFiles:  stats.TotalFiles,
		ValidFiles:  stats.ValidFiles,
		HealthScore: stats.HealthScore,
	}

	var git domain.GitInfo = gitinfo.New()
	if git.IsGitRepo(root) {
		if hash, err := git.CommitHash(root); err == nil {
			entry.CommitHash = hash
		}
	}

	var store domain.HistoryStore = historyAdapter.New()
	_ = store.Append(root, entry)
}

func encodeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
