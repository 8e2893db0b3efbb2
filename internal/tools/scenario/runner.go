package scenario

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	apperrors "github.com/louisbranch/lootbag/internal/platform/errors"
	"github.com/louisbranch/lootbag/internal/platform/timeouts"
	"github.com/louisbranch/lootbag/internal/services/loot/app"
	"github.com/louisbranch/lootbag/internal/services/loot/domain/catalog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/louisbranch/lootbag/internal/tools/scenario"

// Config controls scenario execution.
type Config struct {
	Timeout     time.Duration
	Assertions  AssertionMode
	Verbose     bool
	Logger      *log.Logger
	Locale      string
	CatalogFile string
}

// DefaultConfig returns default runner configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:    timeouts.ScenarioStep,
		Assertions: AssertionStrict,
		Verbose:    false,
	}
}

// Runner executes Lua scenarios against an in-process loot service.
type Runner struct {
	service    lootService
	assertions Assertions
	logger     *log.Logger
	verbose    bool
	timeout    time.Duration
	locale     string
}

// NewRunner prepares a scenario runner with its own loot service.
func NewRunner(cfg Config) (*Runner, error) {
	opts := []app.Option{}
	if path := strings.TrimSpace(cfg.CatalogFile); path != "" {
		cat, err := catalog.LoadFile(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, app.WithCatalog(cat))
	}
	if locale := strings.TrimSpace(cfg.Locale); locale != "" {
		opts = append(opts, app.WithLocale(locale))
	}
	return newRunnerWithDeps(cfg, runnerDeps{service: app.NewService(opts...)})
}

// newRunnerWithDeps builds a Runner from pre-built dependencies.
// Config defaults (logger, timeout) are applied here so they are testable.
func newRunnerWithDeps(cfg Config, deps runnerDeps) (*Runner, error) {
	if deps.service == nil {
		return nil, errors.New("loot service is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = timeouts.ScenarioStep
	}

	return &Runner{
		service:    deps.service,
		assertions: Assertions{Mode: cfg.Assertions, Logger: logger},
		logger:     logger,
		verbose:    cfg.Verbose,
		timeout:    timeout,
		locale:     strings.TrimSpace(cfg.Locale),
	}, nil
}

// RunFile loads and executes a scenario file.
func RunFile(ctx context.Context, cfg Config, path string) error {
	runner, err := NewRunner(cfg)
	if err != nil {
		return err
	}
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		return err
	}
	return runner.RunScenario(ctx, scenario)
}

// RunScenario executes the scenario steps in order.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) (err error) {
	if scenario == nil {
		return errors.New("scenario is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := otel.Tracer(tracerName).Start(ctx, "scenario.run")
	span.SetAttributes(
		attribute.String("scenario.name", scenario.Name),
		attribute.Int("scenario.steps", len(scenario.Steps)),
		attribute.String("scenario.assertions", r.assertions.Mode.String()),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	r.logf("scenario start: %s (%d steps)", scenario.Name, len(scenario.Steps))
	state := &scenarioState{locale: r.locale}
	defer r.closeSession(state)

	for index, step := range scenario.Steps {
		stepNumber := index + 1
		r.logf("step %d/%d start: %s", stepNumber, len(scenario.Steps), step.Kind)
		stepStart := time.Now()
		stepCtx, cancel := context.WithTimeout(ctx, r.timeout)
		err := r.runStepWithExpectation(stepCtx, state, step)
		cancel()
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", stepNumber, step.Kind, err)
		}
		r.logf("step %d/%d done: %s (%s)", stepNumber, len(scenario.Steps), step.Kind, time.Since(stepStart))
	}
	if state.expectErr != "" {
		if err := r.assertf("expected error %s, but the scenario ended", state.expectErr); err != nil {
			return err
		}
	}
	r.logf("scenario done: %s", scenario.Name)
	return nil
}

// runStepWithExpectation runs step and checks it against a pending
// expect_error. Without one, step errors fail the run.
func (r *Runner) runStepWithExpectation(ctx context.Context, state *scenarioState, step Step) error {
	if step.Kind == "expect_error" {
		return r.runExpectErrorStep(state, step)
	}
	want := state.expectErr
	state.expectErr = ""
	err := r.runStep(ctx, state, step)
	if want == "" {
		return err
	}
	if err == nil {
		return r.assertf("expected error %s, got none", want)
	}
	if got := string(apperrors.GetCode(err)); got != want {
		return r.assertf("expected error %s, got %s (%v)", want, got, err)
	}
	r.logf("expected error %s: %v", want, err)
	return nil
}

func (r *Runner) closeSession(state *scenarioState) {
	if state.sessionID == "" {
		return
	}
	if err := r.service.CloseSession(context.Background(), state.sessionID); err != nil {
		r.logf("close session %s: %v", state.sessionID, err)
	}
	state.sessionID = ""
}

func (r *Runner) logf(format string, args ...any) {
	if !r.verbose || r.logger == nil {
		return
	}
	r.logger.Printf(format, args...)
}
