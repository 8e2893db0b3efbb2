package scenario

import (
	"context"
	"strings"

	"github.com/louisbranch/lootbag/internal/services/loot/app"
)

func (r *Runner) failf(format string, args ...any) error {
	return r.assertions.Failf(format, args...)
}

func (r *Runner) assertf(format string, args ...any) error {
	return r.assertions.Assertf(format, args...)
}

// ensureSession opens a session on first use with the scenario's seed and locale.
func (r *Runner) ensureSession(ctx context.Context, state *scenarioState) error {
	if state.sessionID != "" {
		return nil
	}
	view, err := r.service.NewSession(ctx, app.SessionOptions{
		Seed:   state.seed,
		Locale: state.locale,
	})
	if err != nil {
		return err
	}
	state.sessionID = view.ID
	r.logf("session %s (seed %d, %s)", view.ID, view.Seed, view.SeedSource)
	return nil
}

func requiredString(args map[string]any, key string) string {
	value, ok := args[key]
	if !ok {
		return ""
	}
	text, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(text)
}

func readInt(args map[string]any, key string) (int, bool) {
	value, ok := args[key]
	if !ok {
		return 0, false
	}
	switch typed := value.(type) {
	case int:
		return typed, true
	case float64:
		return int(typed), true
	default:
		return 0, false
	}
}

func optionalString(args map[string]any, key, fallback string) string {
	value, ok := args[key]
	if !ok {
		return fallback
	}
	text, ok := value.(string)
	if !ok {
		return fallback
	}
	return strings.TrimSpace(text)
}

func optionalInt(args map[string]any, key string, fallback int) int {
	value, ok := readInt(args, key)
	if !ok {
		return fallback
	}
	return value
}
