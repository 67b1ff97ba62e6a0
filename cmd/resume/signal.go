package main

import (
	"context"
	"os/signal"
)

// notifyContext returns a context that is canceled when a shutdown signal
// is received, so a running browser or converter is stopped and temp files
// are removed. Call stop() to release resources.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
