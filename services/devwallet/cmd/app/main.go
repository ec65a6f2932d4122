package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"learnplatform/services/devwallet/internal/cli"
)

func main() {
	log.SetFlags(0)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		log.Printf("devwallet: %v", err)
		stop()
		os.Exit(1)
	}
}
