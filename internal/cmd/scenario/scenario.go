// Package scenario parses scenario command flags and runs Lua loot scripts.
package scenario

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"time"

	platformcmd "github.com/louisbranch/lootbag/internal/platform/cmd"
	"github.com/louisbranch/lootbag/internal/tools/scenario"
)

// Config holds scenario command configuration.
type Config struct {
	Scenario    string        `env:"LOOTBAG_SCENARIO_FILE"`
	Assertions  bool          `env:"LOOTBAG_SCENARIO_ASSERT"  envDefault:"true"`
	Verbose     bool          `env:"LOOTBAG_SCENARIO_VERBOSE"`
	Timeout     time.Duration `env:"LOOTBAG_SCENARIO_TIMEOUT" envDefault:"10s"`
	Locale      string        `env:"LOOTBAG_LOCALE"           envDefault:"en-US"`
	CatalogFile string        `env:"LOOTBAG_CATALOG_FILE"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario lua file")
	fs.BoolVar(&cfg.Assertions, "assert", cfg.Assertions, "enable assertions (disable to log expectations)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout per step")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for labels and messages")
	fs.StringVar(&cfg.CatalogFile, "catalog", cfg.CatalogFile, "path to a JSON loot catalog")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the scenario command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if cfg.Scenario == "" {
		return errors.New("scenario path is required")
	}

	mode := scenario.AssertionStrict
	if !cfg.Assertions {
		mode = scenario.AssertionLogOnly
	}

	logger := log.New(errOut, "", 0)
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceScenario, func(ctx context.Context) error {
		return scenario.RunFile(ctx, scenario.Config{
			Timeout:     cfg.Timeout,
			Assertions:  mode,
			Verbose:     cfg.Verbose,
			Logger:      logger,
			Locale:      cfg.Locale,
			CatalogFile: cfg.CatalogFile,
		}, cfg.Scenario)
	})
}
