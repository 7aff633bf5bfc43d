package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	configAdapter "github.com/rulekit/rulekit/internal/adapters/outbound/config"
	"github.com/rulekit/rulekit/internal/adapters/outbound/history"
	"github.com/rulekit/rulekit/internal/domain"
)

// registerResources registers all RuleKit MCP resources on the given server.
func registerResources(s *server.MCPServer, rootPath string) {
	// 1. rulekit://health - current directory health
	s.AddResource(
		mcplib.NewResource(
			"rulekit://health",
			"Directory Health",
			mcplib.WithResourceDescription("Aggregated validation stats for the rules directory"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHealthResource(rootPath),
	)

	// 2. rulekit://schema - required fields per rule type
	s.AddResource(
		mcplib.NewResource(
			"rulekit://schema",
			"Rule Schema",
			mcplib.WithResourceDescription("Required metadata fields for each rule type"),
			mcplib.WithMIMEType("application/json"),
		),
		handleSchemaResource(),
	)

	// 3. rulekit://config - effective scan configuration
	s.AddResource(
		mcplib.NewResource(
			"rulekit://config",
			"Configuration",
			mcplib.WithResourceDescription("Effective configuration for the rules directory"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(rootPath),
	)

	// 4. rulekit://history - recorded health scores
	s.AddResource(
		mcplib.NewResource(
			"rulekit://history",
			"Health History",
			mcplib.WithResourceDescription("Previously recorded health scores for the rules directory"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(rootPath),
	)
}

func handleHealthResource(rootPath string) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		validateSvc, _, err := newServices(rootPath)
		if err != nil {
			return nil, fmt.Errorf("initializing services: %w", err)
		}

		_, stats := validateSvc.ValidateDirectory(ctx, rootPath, "")
		return textResource("rulekit://health", stats)
	}
}

func handleSchemaResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		schema := make(map[domain.RuleType][]string, len(domain.RuleTypes))
		for _, t := range domain.RuleTypes {
			schema[t] = domain.RequiredFields(t)
		}
		return textResource("rulekit://schema", schema)
	}
}

func handleConfigResource(rootPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := configAdapter.New().Load(rootPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return textResource("rulekit://config", cfg)
	}
}

func handleHistoryResource(rootPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		entries, err := history.New().Load(rootPath)
		if err != nil {
			return nil, fmt.Errorf("loading history: %w", err)
		}
		return textResource("rulekit://history", entries)
	}
}

func textResource(uri string, v interface{}) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
