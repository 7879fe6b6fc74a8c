package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// New returns a context that is canceled on SIGINT or SIGTERM, and the
// function that cancels it explicitly.
func New() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-signalCh:
		case <-ctx.Done():
		}
		signal.Stop(signalCh)
		cancel()
	}()

	return ctx, cancel
}
