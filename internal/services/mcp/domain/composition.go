package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SetCountInput represents the MCP tool input for setting a category count.
type SetCountInput struct {
	SessionID  string `json:"session_id,omitempty" jsonschema:"session identifier (defaults to current session)"`
	CategoryID string `json:"category_id" jsonschema:"category identifier, see loot_catalog"`
	Count      int    `json:"count" jsonschema:"requested count; negative values are ignored"`
}

// SetCountTool defines the MCP tool schema for setting a category count.
func SetCountTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "loot_set_count",
		Description: "Sets how many tokens of a category go into the bag on the next build",
	}
}

// SetCountHandler executes a set count request.
func SetCountHandler(svc LootService, getContext func() Context) mcp.ToolHandlerFor[SetCountInput, SessionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SetCountInput) (*mcp.CallToolResult, SessionResult, error) {
		sessionID, err := resolveSessionID(input.SessionID, getContext)
		if err != nil {
			return nil, SessionResult{}, toolError(svc, "", err)
		}
		view, err := svc.SetCount(ctx, sessionID, input.CategoryID, input.Count)
		if err != nil {
			return nil, SessionResult{}, toolError(svc, sessionID, err)
		}
		result := sessionResult(view)
		return textResult(fmt.Sprintf("configured %d", result.ConfiguredSize)), result, nil
	}
}

// ApplyPresetInput represents the MCP tool input for applying a preset.
type ApplyPresetInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"session identifier (defaults to current session)"`
	Preset    string `json:"preset" jsonschema:"preset name (blank, sample)"`
}

// ApplyPresetTool defines the MCP tool schema for applying a preset.
func ApplyPresetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "loot_apply_preset",
		Description: "Replaces every category count with a named preset",
	}
}

// ApplyPresetHandler executes an apply preset request.
func ApplyPresetHandler(svc LootService, getContext func() Context) mcp.ToolHandlerFor[ApplyPresetInput, SessionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ApplyPresetInput) (*mcp.CallToolResult, SessionResult, error) {
		sessionID, err := resolveSessionID(input.SessionID, getContext)
		if err != nil {
			return nil, SessionResult{}, toolError(svc, "", err)
		}
		view, err := svc.ApplyPreset(ctx, sessionID, input.Preset)
		if err != nil {
			return nil, SessionResult{}, toolError(svc, sessionID, err)
		}
		result := sessionResult(view)
		return textResult(fmt.Sprintf("preset %s: configured %d", input.Preset, result.ConfiguredSize)), result, nil
	}
}

// ClearTool defines the MCP tool schema for clearing counts.
func ClearTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "loot_clear",
		Description: "Sets every category count to zero",
	}
}

// ClearHandler executes a clear counts request.
func ClearHandler(svc LootService, getContext func() Context) mcp.ToolHandlerFor[SessionRefInput, SessionResult] {
	return sessionMutation(svc, getContext, svc.ClearCounts)
}
