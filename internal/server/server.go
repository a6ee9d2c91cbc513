// Package server runs the HTTP front-end of the client form.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"clientes-form/internal/clientapi"
	"clientes-form/internal/config"
	"clientes-form/internal/handler"
	"clientes-form/internal/render"
	"clientes-form/internal/validation"

	"go.uber.org/zap"
)

// Run serves the form on cfg.Addr until ctx is done, then shuts down
// gracefully.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	views, err := render.New()
	if err != nil {
		return err
	}
	api := clientapi.New(cfg, log)
	h := handler.New(log, api, validation.New().Check, views)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h.Routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: writeTimeout(cfg.RequestTimeout),
		IdleTimeout:  120 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}
	log.Info("Starting client form server", zap.String("addr", ln.Addr().String()), zap.String("api_url", cfg.APIURL))

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, failed := <-serveErr:
		if failed {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctxShutdown)
}

// writeTimeout leaves room for the upstream call behind a form post. An
// unbounded upstream call gets an unbounded write.
func writeTimeout(upstream time.Duration) time.Duration {
	if upstream <= 0 {
		return 0
	}
	return upstream + 10*time.Second
}
