package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WaitForShutdown returns a channel closed on SIGINT, SIGTERM or when ctx is
// done.
func (a *App) WaitForShutdown(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(interrupt)

		select {
		case sig := <-interrupt:
			a.Logger.Info("Shutdown signal received", "signal", sig.String())
		case <-ctx.Done():
			a.Logger.Info("Application context cancelled")
		}
	}()
	return done
}
