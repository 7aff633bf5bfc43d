package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rulekit/rulekit/internal/adapters/outbound/frontmatter"
	"github.com/rulekit/rulekit/internal/domain"
)

func newClassifyCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "classify <file>",
		Short: "Print the behavioral type of a rule document",
		Long:  "Run only the type classifier on a single document: explicit type field, declarative markers, then metadata inference.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			content := string(data)
			parsed := frontmatter.New().Parse(content)
			ruleType := domain.Classify(content, parsed.Metadata)

			if jsonOutput {
				return encodeJSON(cmd, struct {
					FilePath string          `json:"file_path"`
					RuleType domain.RuleType `json:"rule_type"`
				}{args[0], ruleType})
			}

			fmt.Fprintln(cmd.OutOrStdout(), ruleType)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
