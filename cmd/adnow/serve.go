package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cristianoliveira/adnow/cmd"
	"github.com/cristianoliveira/adnow/internal/catalog"
	"github.com/cristianoliveira/adnow/internal/colors"
	"github.com/cristianoliveira/adnow/internal/config"
	"github.com/cristianoliveira/adnow/internal/domain"
	"github.com/cristianoliveira/adnow/internal/httpapi"
	"github.com/spf13/cobra"
)

const (
	serveReadTimeout     = 10 * time.Second
	serveWriteTimeout    = 30 * time.Second
	serveShutdownTimeout = 10 * time.Second
)

type serveClient interface {
	CatalogStore() *catalog.Store
	ConfiguredSort() domain.SortKey
}

// NewServeCmd creates the serve command with explicit dependencies.
func NewServeCmd(client serveClient) *cobra.Command {
	if client == nil {
		panic("NewServeCmd: client dependency cannot be nil")
	}

	var addr string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog as a JSON API",
		Long: `Serve the catalog read side over HTTP.

USAGE:
    adnow serve [--addr host:port]

ENDPOINTS:
    GET  /health
    GET  /metrics
    GET  /api/sellers?q=&category=&sort=
    GET  /api/sellers/{id}
    GET  /api/categories
    GET  /api/featured
    POST /api/reload`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = config.Get("serve_addr", "127.0.0.1:8080")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", addr, err)
			}
			return Serve(ctx, client, ln)
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: serve_addr)")
	return serveCmd
}

// Serve runs the API on ln until ctx is done, then shuts down gracefully.
// The catalog is loaded up front; a failure is logged and retried per request.
func Serve(ctx context.Context, client serveClient, ln net.Listener) error {
	store := client.CatalogStore()
	if _, err := store.Load(ctx); err != nil {
		colors.Warning(fmt.Sprintf("catalog not loaded yet: %v", err))
	}

	svc := httpapi.NewService(store, httpapi.WithDefaultSort(client.ConfiguredSort()))
	srv := &http.Server{
		Handler:      svc.Router(),
		ReadTimeout:  serveReadTimeout,
		WriteTimeout: serveWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	colors.Info(fmt.Sprintf("Serving catalog on http://%s", ln.Addr()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	colors.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func init() {
	cmd.RootCmd.AddCommand(NewServeCmd(coreClient))
}
