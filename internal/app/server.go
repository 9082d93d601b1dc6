package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// Start binds the listen address and serves in the background. The
// returned channel closes on SIGINT, SIGTERM or SIGHUP.
func (a *App) Start() (<-chan struct{}, error) {
	ln, err := net.Listen("tcp", a.httpServer.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", a.httpServer.Addr, err)
	}
	a.addr = ln.Addr().String()

	terminateChan := make(chan struct{})

	go func() {
		slog.Info("http server listening", "address", a.addr)

		if err := a.httpServer.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to serve http server", "error", err)
			os.Exit(1)
		}
	}()

	go func() {
		ctx, stop := signal.NotifyContext(a.ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
		defer stop()

		<-ctx.Done()
		slog.Info("termination requested", "because", context.Cause(ctx))
		close(terminateChan)
	}()

	return terminateChan, nil
}

// Addr returns the bound listen address once Start has succeeded.
func (a *App) Addr() string {
	return a.addr
}

// Stop shuts the listener down first and lets in-flight requests finish.
// The root context stays live until their background work is done, then
// module and config resources are released newest first.
func (a *App) Stop(ctx context.Context) {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to close resources", "name", "HTTP Server", "error", err)
	}

	slog.InfoContext(ctx, "waiting for all goroutine to finish")
	if err := a.goroutine.Wait(); err != nil {
		slog.ErrorContext(ctx, "error from goroutines executions", "error", err)
	}
	slog.InfoContext(ctx, "all goroutines have finished successfully")

	if a.cancel != nil {
		a.cancel()
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", c.name, "error", err)
		}
	}

	slog.InfoContext(ctx, "application gracefully shutdown")
}
