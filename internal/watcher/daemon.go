package watcher

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Run starts the watcher and blocks until ctx is done or SIGINT/SIGTERM
// arrives, then stops it.
func (w *Watcher) Run(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	select {
	case sig := <-sigCh:
		w.log.Infow("received signal, shutting down", "signal", sig.String())
	case <-ctx.Done():
	}

	if err := w.Stop(); err != nil {
		return fmt.Errorf("failed to stop watcher: %w", err)
	}
	return nil
}
