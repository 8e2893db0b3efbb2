package domain

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CatalogInput represents the MCP tool input for listing the catalog.
type CatalogInput struct {
	Locale string `json:"locale,omitempty" jsonschema:"optional locale for labels"`
}

// CatalogResult represents the MCP tool output for listing the catalog.
type CatalogResult struct {
	Locale     string        `json:"locale" jsonschema:"resolved locale"`
	Categories []CountResult `json:"categories" jsonschema:"categories in display order"`
	Presets    []string      `json:"presets" jsonschema:"preset names"`
}

// CatalogTool defines the MCP tool schema for listing the catalog.
func CatalogTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "loot_catalog",
		Description: "Lists loot categories with their supply limits and the available presets",
	}
}

// CatalogHandler executes a catalog request.
func CatalogHandler(svc LootService) mcp.ToolHandlerFor[CatalogInput, CatalogResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input CatalogInput) (*mcp.CallToolResult, CatalogResult, error) {
		view := svc.Catalog(input.Locale)
		result := CatalogResult{
			Locale:     view.Locale,
			Categories: countResults(view.Categories),
			Presets:    view.Presets,
		}
		ids := make([]string, 0, len(result.Categories))
		for _, c := range result.Categories {
			ids = append(ids, c.CategoryID)
		}
		return textResult(strings.Join(ids, ", ")), result, nil
	}
}
