package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	cacheAdapter "github.com/rulekit/rulekit/internal/adapters/outbound/cache"
	configAdapter "github.com/rulekit/rulekit/internal/adapters/outbound/config"
	"github.com/rulekit/rulekit/internal/adapters/outbound/frontmatter"
	"github.com/rulekit/rulekit/internal/adapters/outbound/scanner"
	"github.com/rulekit/rulekit/internal/application"
	"github.com/rulekit/rulekit/internal/domain"
)

// registerTools registers all RuleKit MCP tools on the given server.
func registerTools(s *server.MCPServer, rootPath string) {
	// 1. rulekit_validate_file
	s.AddTool(
		mcplib.NewTool("rulekit_validate_file",
			mcplib.WithDescription("Validate a single rule document and return errors, warnings, and type as JSON"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to the rule document"),
			),
		),
		handleValidateFile(),
	)

	// 2. rulekit_validate_directory
	s.AddTool(
		mcplib.NewTool("rulekit_validate_directory",
			mcplib.WithDescription("Validate every rule document under a directory and return per-file results plus health stats"),
			mcplib.WithString("path", mcplib.Description("Directory to scan (defaults to the server root)")),
			mcplib.WithString("pattern", mcplib.Description("Filename pattern (default *.mdc)")),
		),
		handleValidateDirectory(rootPath),
	)

	// 3. rulekit_classify
	s.AddTool(
		mcplib.NewTool("rulekit_classify",
			mcplib.WithDescription("Classify a rule document into always, auto, agent, or manual"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to the rule document"),
			),
		),
		handleClassify(),
	)

	// 4. rulekit_migrate
	s.AddTool(
		mcplib.NewTool("rulekit_migrate",
			mcplib.WithDescription("Rewrite non-conforming rule documents into the canonical layout and return the migration outcome"),
			mcplib.WithString("source", mcplib.Description("Source directory (defaults to the server root)")),
			mcplib.WithString("target", mcplib.Description("Target directory (defaults to source)")),
			mcplib.WithBoolean("preview", mcplib.Description("Report what would change without writing")),
		),
		handleMigrate(rootPath),
	)
}

// newServices wires the standard adapters and services for a root.
func newServices(root string) (*application.ValidateService, *application.MigrateService, error) {
	loader := configAdapter.New()

	cfg, err := loader.Load(root)
	if err != nil {
		cfg = domain.DefaultConfig()
	}

	store, err := cacheAdapter.New(cfg.CacheSize)
	if err != nil {
		return nil, nil, err
	}

	par := frontmatter.New()
	sc := scanner.New()

	return application.NewValidateService(par, sc, store, loader),
		application.NewMigrateService(par, sc, store, loader), nil
}

func handleValidateFile() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		validateSvc, _, err := newServices(".")
		if err != nil {
			return errorResult(fmt.Sprintf("initializing services: %v", err)), nil
		}

		return jsonResult(validateSvc.ValidateFile(file))
	}
}

func handleValidateDirectory(rootPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()

		path := rootPath
		if p, ok := args["path"].(string); ok && p != "" {
			path = p
		}
		pattern, _ := args["pattern"].(string)

		validateSvc, _, err := newServices(path)
		if err != nil {
			return errorResult(fmt.Sprintf("initializing services: %v", err)), nil
		}

		results, stats := validateSvc.ValidateDirectory(ctx, path, pattern)

		report := struct {
			Stats   domain.DirectoryStats     `json:"stats"`
			Results []domain.ValidationResult `json:"results"`
		}{stats, results}
		return jsonResult(report)
	}
}

func handleClassify() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		data, err := os.ReadFile(file)
		if err != nil {
			return errorResult(fmt.Sprintf("reading file: %v", err)), nil
		}

		content := string(data)
		parsed := frontmatter.New().Parse(content)
		ruleType := domain.Classify(content, parsed.Metadata)

		return jsonResult(struct {
			FilePath string          `json:"file_path"`
			RuleType domain.RuleType `json:"rule_type"`
		}{file, ruleType})
	}
}

func handleMigrate(rootPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()

		source := rootPath
		if s, ok := args["source"].(string); ok && s != "" {
			source = s
		}
		target := source
		if t, ok := args["target"].(string); ok && t != "" {
			target = t
		}
		preview, _ := args["preview"].(bool)

		_, migrateSvc, err := newServices(source)
		if err != nil {
			return errorResult(fmt.Sprintf("initializing services: %v", err)), nil
		}

		outcome, err := migrateSvc.Migrate(ctx, source, target, preview)
		if err != nil {
			return errorResult(fmt.Sprintf("migrate failed: %v", err)), nil
		}
		return jsonResult(outcome)
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
