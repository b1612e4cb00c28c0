// Package app wires the bloglist service runtime.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/reettakoskinen/fullstack-part5/internal/platform/timeouts"
	"github.com/reettakoskinen/fullstack-part5/internal/services/bloglist/api/rest"
	"github.com/reettakoskinen/fullstack-part5/internal/services/bloglist/domain"
	"github.com/reettakoskinen/fullstack-part5/internal/services/bloglist/storage/sqlite"
	"github.com/reettakoskinen/fullstack-part5/internal/services/bloglist/token"
)

const defaultPort = 3003

// RuntimeConfig controls bloglist service startup and dependency wiring.
type RuntimeConfig struct {
	Port   int
	DBPath string
	// TestRoutes exposes the database reset route used by end-to-end
	// test suites. Never enable it in production.
	TestRoutes bool
	Token      token.Config
}

// Run starts the bloglist HTTP runtime until context cancellation.
func Run(ctx context.Context, cfg RuntimeConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return fmt.Errorf("database path is required")
	}
	if len(cfg.Token.Secret) == 0 {
		return fmt.Errorf("token secret is required")
	}
	if cfg.Port < 0 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open bloglist database: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Printf("close bloglist database: %v", closeErr)
		}
	}()

	gate := domain.NewGate(cfg.Token, store)
	blogs := domain.NewBlogService(store, domain.BlogServiceConfig{})
	creds := domain.NewCredentialService(store, cfg.Token, domain.CredentialServiceConfig{})

	var reset domain.ResetStore
	if cfg.TestRoutes {
		reset = store
		log.Printf("bloglist test routes enabled")
	}
	handler := rest.NewHandler(gate, blogs, creds, reset)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return fmt.Errorf("listen on bloglist port %d: %w", cfg.Port, err)
	}

	server := &http.Server{
		Handler:           handler.Routes(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()

	log.Printf("bloglist server listening at %v", listener.Addr())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown bloglist server: %w", err)
		}
		err := <-serveErr
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
