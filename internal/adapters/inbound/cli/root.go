package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rulekit",
		Short:         "Keep your rule documents healthy",
		Long:          "RuleKit validates rule documents (frontmatter + body), classifies them into behavioral types, reports directory health, and migrates non-conforming files into the canonical layout.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newClassifyCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
