// Package lootbag parses the lootbag command flags and runs the interactive bag.
package lootbag

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	platformcmd "github.com/louisbranch/lootbag/internal/platform/cmd"
	"github.com/louisbranch/lootbag/internal/services/loot/app"
	"github.com/louisbranch/lootbag/internal/services/loot/domain/catalog"
)

// Config holds lootbag command configuration.
type Config struct {
	Locale      string `env:"LOOTBAG_LOCALE"       envDefault:"en-US"`
	Seed        string `env:"LOOTBAG_SEED"`
	CatalogFile string `env:"LOOTBAG_CATALOG_FILE"`
	Preset      string `env:"LOOTBAG_PRESET"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for labels and messages (en-US, pt-BR)")
	fs.StringVar(&cfg.Seed, "seed", cfg.Seed, "seed for a reproducible session")
	fs.StringVar(&cfg.CatalogFile, "catalog", cfg.CatalogFile, "path to a JSON loot catalog")
	fs.StringVar(&cfg.Preset, "preset", cfg.Preset, "preset applied at startup")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts an interactive loot bag session reading commands from in.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	if in == nil {
		return fmt.Errorf("input is required")
	}
	if out == nil {
		out = io.Discard
	}
	seed, err := parseSeed(cfg.Seed)
	if err != nil {
		return err
	}
	svc, err := newService(cfg)
	if err != nil {
		return err
	}
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceLootbag, func(ctx context.Context) error {
		view, err := svc.NewSession(ctx, app.SessionOptions{
			Seed:   seed,
			Preset: cfg.Preset,
			Locale: cfg.Locale,
		})
		if err != nil {
			return fmt.Errorf("start session: %s", svc.Localize("", err))
		}
		return newREPL(svc, view, out).run(ctx, in)
	})
}

func newService(cfg Config) (*app.Service, error) {
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
	return app.NewService(opts...), nil
}

func parseSeed(raw string) (*uint64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	seed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid seed %q: %w", raw, err)
	}
	return &seed, nil
}
