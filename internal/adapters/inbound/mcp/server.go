package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewRuleKitMCPServer creates a new MCP server with all RuleKit tools and
// resources registered. The rootPath is the rules directory to operate on.
func NewRuleKitMCPServer(rootPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"rulekit",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, rootPath)
	registerResources(s, rootPath)

	return s
}
