package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/rulekit/rulekit/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the RuleKit MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var rootPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start RuleKit MCP server (stdio)",
		Long:  "Start the RuleKit MCP server using stdio transport. This lets AI coding assistants validate, classify, and migrate rule documents.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if rootPath == "" {
				rootPath = "."
			}
			s := mcpadapter.NewRuleKitMCPServer(rootPath)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&rootPath, "path", "", "Rules directory (defaults to current working directory)")

	return cmd
}
