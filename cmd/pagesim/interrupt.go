package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// cancelOnInterrupt returns a context cancelled on SIGINT or SIGTERM, so an
// auto-played run stops stepping and still prints what it has so far.
func cancelOnInterrupt(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(c)
		select {
		case <-c:
			slog.Info("interrupted, stopping auto-play")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
