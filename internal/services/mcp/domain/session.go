package domain

import (
	"context"
	"fmt"

	"github.com/louisbranch/lootbag/internal/services/loot/app"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SessionCreateInput represents the MCP tool input for creating a loot session.
type SessionCreateInput struct {
	Seed   *uint64 `json:"seed,omitempty" jsonschema:"optional seed to replay a previous run"`
	Preset string  `json:"preset,omitempty" jsonschema:"optional preset applied after creation (blank, sample)"`
	Locale string  `json:"locale,omitempty" jsonschema:"optional locale for labels and messages (en-US, pt-BR)"`
}

// CountResult is one category row.
type CountResult struct {
	CategoryID string `json:"category_id" jsonschema:"category identifier"`
	Label      string `json:"label" jsonschema:"localized category label"`
	Kind       string `json:"kind" jsonschema:"direct or random"`
	Count      int    `json:"count" jsonschema:"requested count"`
	Max        int    `json:"max,omitempty" jsonschema:"supply size for random categories"`
}

// SessionResult represents a session's configuration and pool state.
type SessionResult struct {
	ID             string        `json:"id" jsonschema:"session identifier"`
	Seed           int64         `json:"seed" jsonschema:"seed driving this session's randomness"`
	SeedSource     string        `json:"seed_source" jsonschema:"client when supplied, server when generated"`
	Locale         string        `json:"locale" jsonschema:"resolved locale"`
	ConfiguredSize int           `json:"configured_size" jsonschema:"sum of requested counts"`
	PoolSize       int           `json:"pool_size" jsonschema:"tokens left in the bag"`
	Composition    []CountResult `json:"composition" jsonschema:"requested counts per category"`
	Ignored        []string      `json:"ignored,omitempty" jsonschema:"keys the operation skipped"`
}

// SessionCreateTool defines the MCP tool schema for creating a loot session.
func SessionCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "loot_session_create",
		Description: "Creates a loot bag session and makes it the current session for later calls",
	}
}

// SessionCreateHandler executes a session create request.
func SessionCreateHandler(svc LootService, setContext func(Context)) mcp.ToolHandlerFor[SessionCreateInput, SessionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SessionCreateInput) (*mcp.CallToolResult, SessionResult, error) {
		view, err := svc.NewSession(ctx, app.SessionOptions{
			Seed:   input.Seed,
			Preset: input.Preset,
			Locale: input.Locale,
		})
		if err != nil {
			return nil, SessionResult{}, toolError(svc, "", err)
		}
		if setContext != nil {
			setContext(Context{SessionID: view.ID})
		}
		result := sessionResult(view)
		return textResult(fmt.Sprintf("session %s (seed %d)", result.ID, result.Seed)), result, nil
	}
}

// SessionRefInput names a session; blank means the current one.
type SessionRefInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"session identifier (defaults to current session)"`
}

// ResetTool defines the MCP tool schema for resetting a session.
func ResetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "loot_reset",
		Description: "Empties the bag and draw history while keeping the configured counts",
	}
}

// ResetHandler executes a session reset request.
func ResetHandler(svc LootService, getContext func() Context) mcp.ToolHandlerFor[SessionRefInput, SessionResult] {
	return sessionMutation(svc, getContext, svc.Reset)
}

func sessionMutation(svc LootService, getContext func() Context, op func(context.Context, string) (app.SessionView, error)) mcp.ToolHandlerFor[SessionRefInput, SessionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SessionRefInput) (*mcp.CallToolResult, SessionResult, error) {
		sessionID, err := resolveSessionID(input.SessionID, getContext)
		if err != nil {
			return nil, SessionResult{}, toolError(svc, "", err)
		}
		view, err := op(ctx, sessionID)
		if err != nil {
			return nil, SessionResult{}, toolError(svc, sessionID, err)
		}
		result := sessionResult(view)
		return textResult(fmt.Sprintf("configured %d, pool %d", result.ConfiguredSize, result.PoolSize)), result, nil
	}
}

func sessionResult(view app.SessionView) SessionResult {
	result := SessionResult{
		ID:             view.ID,
		Seed:           view.Seed,
		SeedSource:     view.SeedSource,
		Locale:         view.Locale,
		ConfiguredSize: view.ConfiguredSize,
		PoolSize:       view.PoolSize,
		Composition:    countResults(view.Composition),
		Ignored:        view.Ignored,
	}
	return result
}

func countResults(rows []app.CountView) []CountResult {
	out := make([]CountResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, CountResult{
			CategoryID: row.CategoryID,
			Label:      row.Label,
			Kind:       row.Kind,
			Count:      row.Count,
			Max:        row.Max,
		})
	}
	return out
}
