package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/lootbag/internal/services/loot/app"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// WarningResult is a localized build shortfall.
type WarningResult struct {
	CategoryID string `json:"category_id" jsonschema:"category that ran short"`
	Requested  int    `json:"requested" jsonschema:"tokens requested"`
	Available  int    `json:"available" jsonschema:"tokens in the supply"`
	Message    string `json:"message" jsonschema:"localized warning"`
}

// BuildResult represents the MCP tool output for building the bag.
type BuildResult struct {
	SessionID string          `json:"session_id" jsonschema:"session identifier"`
	Size      int             `json:"size" jsonschema:"tokens in the bag"`
	Warnings  []WarningResult `json:"warnings,omitempty" jsonschema:"non-fatal shortfalls"`
}

// BuildTool defines the MCP tool schema for building the bag.
func BuildTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "loot_build",
		Description: "Fills the bag from the configured counts, replacing any previous bag and history",
	}
}

// BuildHandler executes a build request.
func BuildHandler(svc LootService, getContext func() Context) mcp.ToolHandlerFor[SessionRefInput, BuildResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SessionRefInput) (*mcp.CallToolResult, BuildResult, error) {
		sessionID, err := resolveSessionID(input.SessionID, getContext)
		if err != nil {
			return nil, BuildResult{}, toolError(svc, "", err)
		}
		view, err := svc.Build(ctx, sessionID)
		if err != nil {
			return nil, BuildResult{}, toolError(svc, sessionID, err)
		}
		result := BuildResult{SessionID: view.SessionID, Size: view.Size}
		lines := []string{fmt.Sprintf("bag holds %d tokens", view.Size)}
		for _, w := range view.Warnings {
			result.Warnings = append(result.Warnings, WarningResult{
				CategoryID: w.CategoryID,
				Requested:  w.Requested,
				Available:  w.Available,
				Message:    w.Message,
			})
			lines = append(lines, w.Message)
		}
		return textResult(strings.Join(lines, "\n")), result, nil
	}
}

// DrawInput represents the MCP tool input for drawing tokens.
type DrawInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"session identifier (defaults to current session)"`
	Count     *int   `json:"count,omitempty" jsonschema:"tokens to draw, defaults to 1"`
}

// TokenResult is a drawn token.
type TokenResult struct {
	ID    string `json:"id" jsonschema:"template identifier"`
	Label string `json:"label" jsonschema:"localized label"`
}

// DrawResult represents the MCP tool output for a draw.
type DrawResult struct {
	SessionID string        `json:"session_id" jsonschema:"session identifier"`
	Tokens    []TokenResult `json:"tokens" jsonschema:"drawn tokens in draw order"`
	Remaining int           `json:"remaining" jsonschema:"tokens left in the bag"`
}

// DrawTool defines the MCP tool schema for drawing tokens.
func DrawTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "loot_draw",
		Description: "Draws tokens from the bag at random without replacement",
	}
}

// DrawHandler executes a draw request.
func DrawHandler(svc LootService, getContext func() Context) mcp.ToolHandlerFor[DrawInput, DrawResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DrawInput) (*mcp.CallToolResult, DrawResult, error) {
		sessionID, err := resolveSessionID(input.SessionID, getContext)
		if err != nil {
			return nil, DrawResult{}, toolError(svc, "", err)
		}
		n := 1
		if input.Count != nil {
			n = *input.Count
		}
		view, err := svc.Draw(ctx, sessionID, n)
		if err != nil {
			return nil, DrawResult{}, toolError(svc, sessionID, err)
		}
		result := DrawResult{
			SessionID: view.SessionID,
			Tokens:    tokenResults(view.Tokens),
			Remaining: view.Remaining,
		}
		return textResult(fmt.Sprintf("%s (%d left)", joinLabels(result.Tokens), result.Remaining)), result, nil
	}
}

// RemainingRowResult is one label of the remaining-count report.
type RemainingRowResult struct {
	CategoryID string `json:"category_id,omitempty" jsonschema:"category identifier, empty for fallback rows"`
	Label      string `json:"label" jsonschema:"localized category label or raw token id"`
	Count      int    `json:"count" jsonschema:"tokens left"`
	Fallback   bool   `json:"fallback,omitempty" jsonschema:"true when no category accounts for the token"`
}

// RemainingResult represents the MCP tool output for remaining counts.
type RemainingResult struct {
	SessionID string               `json:"session_id" jsonschema:"session identifier"`
	Total     int                  `json:"total" jsonschema:"tokens left in the bag"`
	Rows      []RemainingRowResult `json:"rows" jsonschema:"counts grouped by category label"`
}

// RemainingTool defines the MCP tool schema for remaining counts.
func RemainingTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "loot_remaining",
		Description: "Reports tokens left in the bag grouped by category",
	}
}

// RemainingHandler executes a remaining counts request.
func RemainingHandler(svc LootService, getContext func() Context) mcp.ToolHandlerFor[SessionRefInput, RemainingResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SessionRefInput) (*mcp.CallToolResult, RemainingResult, error) {
		sessionID, err := resolveSessionID(input.SessionID, getContext)
		if err != nil {
			return nil, RemainingResult{}, toolError(svc, "", err)
		}
		view, err := svc.Remaining(ctx, sessionID)
		if err != nil {
			return nil, RemainingResult{}, toolError(svc, sessionID, err)
		}
		result := RemainingResult{
			SessionID: view.SessionID,
			Total:     view.Total,
			Rows:      make([]RemainingRowResult, 0, len(view.Rows)),
		}
		var parts []string
		for _, row := range view.Rows {
			result.Rows = append(result.Rows, RemainingRowResult{
				CategoryID: row.CategoryID,
				Label:      row.Label,
				Count:      row.Count,
				Fallback:   row.Fallback,
			})
			if row.Count > 0 {
				parts = append(parts, fmt.Sprintf("%s %d", row.Label, row.Count))
			}
		}
		return textResult(fmt.Sprintf("%d left: %s", view.Total, strings.Join(parts, ", "))), result, nil
	}
}

// HistoryInput represents the MCP tool input for listing draws.
type HistoryInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"session identifier (defaults to current session)"`
	Filter    string `json:"filter,omitempty" jsonschema:"optional AIP-160 filter over token, category, label, seq, size, ts"`
}

// HistoryEntryResult is one draw.
type HistoryEntryResult struct {
	Seq       int           `json:"seq" jsonschema:"draw number since the last build"`
	Timestamp string        `json:"timestamp" jsonschema:"RFC3339 time of the draw"`
	Tokens    []TokenResult `json:"tokens" jsonschema:"tokens drawn"`
}

// HistoryResult represents the MCP tool output for listing draws.
type HistoryResult struct {
	SessionID string               `json:"session_id" jsonschema:"session identifier"`
	Entries   []HistoryEntryResult `json:"entries" jsonschema:"matching draws, most recent first"`
	Totals    map[string]int       `json:"totals" jsonschema:"resources gained across all draws"`
}

// HistoryTool defines the MCP tool schema for listing draws.
func HistoryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "loot_history",
		Description: "Lists draws, most recent first, optionally filtered",
	}
}

// HistoryHandler executes a history request.
func HistoryHandler(svc LootService, getContext func() Context) mcp.ToolHandlerFor[HistoryInput, HistoryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input HistoryInput) (*mcp.CallToolResult, HistoryResult, error) {
		sessionID, err := resolveSessionID(input.SessionID, getContext)
		if err != nil {
			return nil, HistoryResult{}, toolError(svc, "", err)
		}
		view, err := svc.History(ctx, sessionID, input.Filter)
		if err != nil {
			return nil, HistoryResult{}, toolError(svc, sessionID, err)
		}
		result := HistoryResult{
			SessionID: view.SessionID,
			Entries:   make([]HistoryEntryResult, 0, len(view.Entries)),
			Totals:    view.Totals,
		}
		if result.Totals == nil {
			result.Totals = map[string]int{}
		}
		lines := make([]string, 0, len(view.Entries))
		for _, e := range view.Entries {
			entry := HistoryEntryResult{
				Seq:       e.Seq,
				Timestamp: formatTimestamp(e.Timestamp),
				Tokens:    tokenResults(e.Tokens),
			}
			result.Entries = append(result.Entries, entry)
			lines = append(lines, fmt.Sprintf("#%d %s", entry.Seq, joinLabels(entry.Tokens)))
		}
		return textResult(strings.Join(lines, "\n")), result, nil
	}
}

func tokenResults(tokens []app.TokenView) []TokenResult {
	out := make([]TokenResult, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, TokenResult{ID: t.ID, Label: t.Label})
	}
	return out
}

func joinLabels(tokens []TokenResult) string {
	labels := make([]string, len(tokens))
	for i, t := range tokens {
		labels[i] = t.Label
	}
	return strings.Join(labels, ", ")
}
