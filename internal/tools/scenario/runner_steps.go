package scenario

import (
	"context"
	"sort"
	"strings"

	"github.com/louisbranch/lootbag/internal/services/loot/app"
)

func (r *Runner) runStep(ctx context.Context, state *scenarioState, step Step) error {
	switch step.Kind {
	case "seed":
		return r.runSeedStep(ctx, state, step)
	case "locale":
		return r.runLocaleStep(ctx, state, step)
	case "preset":
		return r.runPresetStep(ctx, state, step)
	case "set":
		return r.runSetStep(ctx, state, step)
	case "clear":
		return r.runClearStep(ctx, state)
	case "build":
		return r.runBuildStep(ctx, state, step)
	case "draw":
		return r.runDrawStep(ctx, state, step)
	case "draw_all":
		return r.runDrawAllStep(ctx, state)
	case "reset":
		return r.runResetStep(ctx, state)
	case "expect_remaining":
		return r.runExpectRemainingStep(ctx, state, step)
	case "expect_configured":
		return r.runExpectConfiguredStep(ctx, state, step)
	case "expect_totals":
		return r.runExpectTotalsStep(ctx, state, step)
	case "expect_history":
		return r.runExpectHistoryStep(ctx, state, step)
	default:
		return r.failf("unknown step kind %q", step.Kind)
	}
}

// runSeedStep starts a fresh session driven by the given seed.
func (r *Runner) runSeedStep(ctx context.Context, state *scenarioState, step Step) error {
	seed, ok := step.Args["value"].(uint64)
	if !ok {
		return r.failf("seed must be a non-negative integer")
	}
	state.seed = &seed
	r.closeSession(state)
	return r.ensureSession(ctx, state)
}

// runLocaleStep starts a fresh session rendering labels in the given locale.
func (r *Runner) runLocaleStep(ctx context.Context, state *scenarioState, step Step) error {
	locale := requiredString(step.Args, "value")
	if locale == "" {
		return r.failf("locale is required")
	}
	state.locale = locale
	r.closeSession(state)
	return r.ensureSession(ctx, state)
}

func (r *Runner) runPresetStep(ctx context.Context, state *scenarioState, step Step) error {
	if err := r.ensureSession(ctx, state); err != nil {
		return err
	}
	view, err := r.service.ApplyPreset(ctx, state.sessionID, requiredString(step.Args, "name"))
	if err != nil {
		return err
	}
	if len(view.Ignored) > 0 {
		r.logf("preset ignored keys: %s", strings.Join(view.Ignored, ", "))
	}
	return nil
}

func (r *Runner) runSetStep(ctx context.Context, state *scenarioState, step Step) error {
	if err := r.ensureSession(ctx, state); err != nil {
		return err
	}
	count, ok := readInt(step.Args, "count")
	if !ok {
		return r.failf("set count must be an integer")
	}
	view, err := r.service.SetCount(ctx, state.sessionID, requiredString(step.Args, "category"), count)
	if err != nil {
		return err
	}
	if len(view.Ignored) > 0 {
		r.logf("set ignored: %s %d", strings.Join(view.Ignored, ", "), count)
	}
	return nil
}

func (r *Runner) runClearStep(ctx context.Context, state *scenarioState) error {
	if err := r.ensureSession(ctx, state); err != nil {
		return err
	}
	_, err := r.service.ClearCounts(ctx, state.sessionID)
	return err
}

func (r *Runner) runBuildStep(ctx context.Context, state *scenarioState, step Step) error {
	if err := r.ensureSession(ctx, state); err != nil {
		return err
	}
	view, err := r.service.Build(ctx, state.sessionID)
	if err != nil {
		return err
	}
	for _, w := range view.Warnings {
		r.logf("warning: %s", w.Message)
	}
	if want, ok := readInt(step.Args, "expect_warnings"); ok && len(view.Warnings) != want {
		if err := r.assertf("build warnings = %d, want %d", len(view.Warnings), want); err != nil {
			return err
		}
	}
	if want, ok := readInt(step.Args, "expect_size"); ok && view.Size != want {
		if err := r.assertf("bag size = %d, want %d", view.Size, want); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runDrawStep(ctx context.Context, state *scenarioState, step Step) error {
	if err := r.ensureSession(ctx, state); err != nil {
		return err
	}
	count := optionalInt(step.Args, "count", 1)
	return r.draw(ctx, state, count)
}

// runDrawAllStep empties the bag. An empty bag is left as is.
func (r *Runner) runDrawAllStep(ctx context.Context, state *scenarioState) error {
	if err := r.ensureSession(ctx, state); err != nil {
		return err
	}
	remaining, err := r.service.Remaining(ctx, state.sessionID)
	if err != nil {
		return err
	}
	if remaining.Total == 0 {
		r.logf("draw_all: bag is empty")
		return nil
	}
	return r.draw(ctx, state, remaining.Total)
}

func (r *Runner) draw(ctx context.Context, state *scenarioState, count int) error {
	view, err := r.service.Draw(ctx, state.sessionID, count)
	if err != nil {
		return err
	}
	labels := make([]string, 0, len(view.Tokens))
	for _, token := range view.Tokens {
		labels = append(labels, token.Label)
	}
	r.logf("drew %s (%d left)", strings.Join(labels, ", "), view.Remaining)
	return nil
}

func (r *Runner) runResetStep(ctx context.Context, state *scenarioState) error {
	if err := r.ensureSession(ctx, state); err != nil {
		return err
	}
	_, err := r.service.Reset(ctx, state.sessionID)
	return err
}

// runExpectRemainingStep compares remaining counts. Keys other than total
// match a category ID or its label.
func (r *Runner) runExpectRemainingStep(ctx context.Context, state *scenarioState, step Step) error {
	if err := r.ensureSession(ctx, state); err != nil {
		return err
	}
	view, err := r.service.Remaining(ctx, state.sessionID)
	if err != nil {
		return err
	}
	for _, key := range sortedKeys(step.Args) {
		want, ok := readInt(step.Args, key)
		if !ok {
			return r.failf("expect_remaining %s must be an integer", key)
		}
		if key == "total" {
			if view.Total != want {
				if err := r.assertf("remaining total = %d, want %d", view.Total, want); err != nil {
					return err
				}
			}
			continue
		}
		got, found := remainingFor(view, key)
		if !found {
			return r.failf("expect_remaining: unknown category %q", key)
		}
		if got != want {
			if err := r.assertf("remaining %s = %d, want %d", key, got, want); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) runExpectConfiguredStep(ctx context.Context, state *scenarioState, step Step) error {
	if err := r.ensureSession(ctx, state); err != nil {
		return err
	}
	want, ok := readInt(step.Args, "value")
	if !ok {
		return r.failf("expect_configured value must be an integer")
	}
	view, err := r.service.Session(ctx, state.sessionID)
	if err != nil {
		return err
	}
	if view.ConfiguredSize != want {
		return r.assertf("configured size = %d, want %d", view.ConfiguredSize, want)
	}
	return nil
}

// runExpectTotalsStep compares resources gained across every draw since the
// last build. Resources left out of the table are not checked.
func (r *Runner) runExpectTotalsStep(ctx context.Context, state *scenarioState, step Step) error {
	if err := r.ensureSession(ctx, state); err != nil {
		return err
	}
	view, err := r.service.History(ctx, state.sessionID, "")
	if err != nil {
		return err
	}
	for _, key := range sortedKeys(step.Args) {
		want, ok := readInt(step.Args, key)
		if !ok {
			return r.failf("expect_totals %s must be an integer", key)
		}
		if got := view.Totals[key]; got != want {
			if err := r.assertf("total %s = %d, want %d", key, got, want); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) runExpectHistoryStep(ctx context.Context, state *scenarioState, step Step) error {
	if err := r.ensureSession(ctx, state); err != nil {
		return err
	}
	want, ok := readInt(step.Args, "count")
	if !ok {
		return r.failf("expect_history count must be an integer")
	}
	filter := optionalString(step.Args, "filter", "")
	view, err := r.service.History(ctx, state.sessionID, filter)
	if err != nil {
		return err
	}
	if len(view.Entries) != want {
		if filter != "" {
			return r.assertf("history entries matching %q = %d, want %d", filter, len(view.Entries), want)
		}
		return r.assertf("history entries = %d, want %d", len(view.Entries), want)
	}
	return nil
}

func (r *Runner) runExpectErrorStep(state *scenarioState, step Step) error {
	code := requiredString(step.Args, "code")
	if code == "" {
		return r.failf("expect_error code is required")
	}
	state.expectErr = code
	return nil
}

func remainingFor(view app.RemainingView, key string) (int, bool) {
	for _, row := range view.Rows {
		if row.CategoryID == key || strings.EqualFold(row.Label, key) {
			return row.Count, true
		}
	}
	return 0, false
}

func sortedKeys(args map[string]any) []string {
	keys := make([]string, 0, len(args))
	for key := range args {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

