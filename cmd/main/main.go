package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"comparador/client/internal/cli"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("Failed to read .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		log.Fatalf("❌ %v", err)
	}
}
