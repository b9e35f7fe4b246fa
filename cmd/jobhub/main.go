package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/law-makers/jobhub/internal/cli"
)

func main() {
	// Cancel in-flight fetches on interrupt; rendered fetches release their
	// browser when the context ends.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
