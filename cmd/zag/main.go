package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

// Set via -ldflags at build time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "zag:", err)
		os.Exit(1)
	}
}
