package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"commerce/storefront/internal/config"
	"commerce/storefront/internal/transport/web/mw"
	"commerce/storefront/internal/transport/web/v1/account"
	"commerce/storefront/internal/transport/web/v1/health"
	"commerce/storefront/internal/transport/web/v1/shop"

	log "github.com/sirupsen/logrus"
)

// Handlers groups the endpoint sets mounted by the router
type Handlers struct {
	Account *account.Handler
	Shop    *shop.Handler
	Health  *health.Handler
	Auth    mw.AuthDeps
}

type Server struct {
	server          *http.Server
	shutdownTimeout time.Duration
}

func New(cfg config.ServerConfig, h Handlers) *Server {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(h),
		ReadTimeout:       time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(cfg.WriteTimeout) * time.Second,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, shutdownTimeout: time.Duration(cfg.ShutdownTimeout) * time.Second}
}

// Run serves until ctx is done, then shuts the server down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("🌐 HTTP server listening on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced to shutdown: %w", err)
	}
	log.Info("🛑 HTTP server stopped")
	return <-errCh
}
