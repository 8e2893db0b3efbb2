package domain

import (
	"context"
	"time"

	"github.com/louisbranch/lootbag/internal/services/loot/app"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// LootService is the loot application surface the tools call.
type LootService interface {
	NewSession(ctx context.Context, opts app.SessionOptions) (app.SessionView, error)
	SetCount(ctx context.Context, sessionID, categoryID string, n int) (app.SessionView, error)
	ApplyPreset(ctx context.Context, sessionID, name string) (app.SessionView, error)
	ClearCounts(ctx context.Context, sessionID string) (app.SessionView, error)
	Build(ctx context.Context, sessionID string) (app.BuildView, error)
	Draw(ctx context.Context, sessionID string, n int) (app.DrawView, error)
	Remaining(ctx context.Context, sessionID string) (app.RemainingView, error)
	History(ctx context.Context, sessionID, filter string) (app.HistoryView, error)
	Reset(ctx context.Context, sessionID string) (app.SessionView, error)
	Catalog(locale string) app.CatalogView
	Localize(sessionID string, err error) string
}

// ToolError carries a localized message for the MCP client while keeping
// the domain error for callers that inspect codes.
type ToolError struct {
	Message string
	Err     error
}

func (e *ToolError) Error() string { return e.Message }

func (e *ToolError) Unwrap() error { return e.Err }

func toolError(svc LootService, sessionID string, err error) error {
	return &ToolError{Message: svc.Localize(sessionID, err), Err: err}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
