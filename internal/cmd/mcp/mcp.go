// Package mcp parses MCP command flags and serves loot tools over stdio.
package mcp

import (
	"context"
	"flag"

	platformcmd "github.com/louisbranch/lootbag/internal/platform/cmd"
	mcpservice "github.com/louisbranch/lootbag/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	Locale      string `env:"LOOTBAG_LOCALE"       envDefault:"en-US"`
	CatalogFile string `env:"LOOTBAG_CATALOG_FILE"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "default locale for sessions (en-US, pt-BR)")
	fs.StringVar(&cfg.CatalogFile, "catalog", cfg.CatalogFile, "path to a JSON loot catalog")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceMCP, func(ctx context.Context) error {
		return mcpservice.Run(ctx, mcpservice.Config{
			Locale:      cfg.Locale,
			CatalogFile: cfg.CatalogFile,
		})
	})
}
