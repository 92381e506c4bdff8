// Package main provides a CLI that writes random Plush genomes as JSON lines.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	plushcmd "github.com/louisbranch/plush/internal/cmd/plush"
	platformcmd "github.com/louisbranch/plush/internal/platform/cmd"
	"github.com/louisbranch/plush/internal/platform/config"
)

func main() {
	cfg, err := plushcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[PLUSH] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = platformcmd.RunWithTelemetry(ctx, platformcmd.ServicePlush, func(ctx context.Context) error {
		return plushcmd.Run(ctx, cfg, os.Stdout)
	})
	if err != nil {
		log.Printf("generate genomes: %v", err)
		config.Exitf("%s", plushcmd.ErrorMessage(cfg, err))
	}
}
