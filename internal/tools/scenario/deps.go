package scenario

import (
	"context"

	"github.com/louisbranch/lootbag/internal/services/loot/app"
)

// lootService is the application surface scenario steps drive.
type lootService interface {
	NewSession(ctx context.Context, opts app.SessionOptions) (app.SessionView, error)
	Session(ctx context.Context, sessionID string) (app.SessionView, error)
	CloseSession(ctx context.Context, sessionID string) error
	SetCount(ctx context.Context, sessionID, categoryID string, n int) (app.SessionView, error)
	ApplyPreset(ctx context.Context, sessionID, name string) (app.SessionView, error)
	ClearCounts(ctx context.Context, sessionID string) (app.SessionView, error)
	Build(ctx context.Context, sessionID string) (app.BuildView, error)
	Draw(ctx context.Context, sessionID string, n int) (app.DrawView, error)
	Remaining(ctx context.Context, sessionID string) (app.RemainingView, error)
	History(ctx context.Context, sessionID, filter string) (app.HistoryView, error)
	Reset(ctx context.Context, sessionID string) (app.SessionView, error)
}

// runnerDeps bundles injectable dependencies for runner construction.
type runnerDeps struct {
	service lootService
}
