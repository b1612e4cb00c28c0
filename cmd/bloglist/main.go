package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	bloglistcmd "github.com/reettakoskinen/fullstack-part5/internal/cmd/bloglist"
	"github.com/reettakoskinen/fullstack-part5/internal/platform/config"
)

func main() {
	cfg, err := bloglistcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[BLOGLIST] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bloglistcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
