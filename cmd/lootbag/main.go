// Package main runs the interactive loot bag.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	lootbagcmd "github.com/louisbranch/lootbag/internal/cmd/lootbag"
	platformcmd "github.com/louisbranch/lootbag/internal/platform/cmd"
	"github.com/louisbranch/lootbag/internal/platform/config"
)

func main() {
	cfg, err := lootbagcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	log.SetPrefix(platformcmd.LogPrefix(platformcmd.ServiceLootbag))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := lootbagcmd.Run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}
