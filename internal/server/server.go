// internal/server/server.go
//
// HTTP server construction and graceful shutdown.
//
// Timeouts:
//
//   - ReadTimeout  - abort slow-loris headers (10 s)
//   - WriteTimeout - cap total response time; must exceed the slowest
//     spreadsheet round-trip (30 s)
//   - IdleTimeout  - close keep-alives on idle clients (60 s)
//
// Run blocks until the context is canceled or the listener fails, then
// drains in-flight requests for up to shutdownGrace.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const shutdownGrace = 10 * time.Second

// New constructs an *http.Server with the service's standard timeouts.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Run serves until ctx is canceled, then shuts down gracefully.  It returns
// nil on a clean shutdown.
func Run(ctx context.Context, srv *http.Server) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
